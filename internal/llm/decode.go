package llm

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/mattgrange/winescout/constants"
	"github.com/mattgrange/winescout/internal/entity"
)

// DecodeWinesReply turns a raw model reply into wine records. The reply is
// untrusted text: the payload may sit inside a ```json fence, may be
// almost-JSON, and field values may be strings, numbers, or nulls. The
// fallback chain is fence strip -> strict JSON -> jsonrepair -> schema
// validation -> per-field coercion.
func DecodeWinesReply(reply string) ([]entity.WineRecord, error) {
	payload := StripCodeFence(reply)

	var doc map[string]any
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(payload)
		if repairErr != nil {
			return nil, fmt.Errorf("decode reply: %w (repair: %v)", err, repairErr)
		}
		if err := json.Unmarshal([]byte(repaired), &doc); err != nil {
			return nil, fmt.Errorf("decode repaired reply: %w", err)
		}
		payload = repaired
	}

	if err := ValidateJSONAgainstSchema(BuildWineListJSONSchema(), []byte(payload)); err != nil {
		return nil, fmt.Errorf("reply envelope: %w", err)
	}

	rawWines, _ := doc["wines"].([]any)
	records := make([]entity.WineRecord, 0, len(rawWines))
	for _, rw := range rawWines {
		m, ok := rw.(map[string]any)
		if !ok {
			continue
		}
		mainType := fieldString(m, "main_type")
		// Known synonyms collapse onto the enum; unrecognized values pass
		// through untouched so nothing the model saw is lost.
		if mt, ok := constants.CanonicalMainType(mainType); ok {
			mainType = string(mt)
		}
		records = append(records, entity.WineRecord{
			ID:       fieldString(m, "id"),
			Producer: fieldString(m, "producer"),
			Name:     fieldString(m, "name"),
			Type:     fieldString(m, "type"),
			MainType: mainType,
			Region:   fieldString(m, "region"),
			Country:  fieldString(m, "country"),
			Vintage:  fieldString(m, "vintage"),
			Price:    fieldString(m, "price"),
			Size:     fieldString(m, "size"),
		})
	}
	return records, nil
}

// StripCodeFence extracts the payload from an optional ```json fence. Without
// a fence the whole reply is treated as the payload.
func StripCodeFence(reply string) string {
	if idx := strings.Index(reply, "```json"); idx >= 0 {
		rest := reply[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			rest = rest[:end]
		}
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(reply)
}

// fieldString coerces a decoded JSON value to a string column. Nulls and
// missing keys become "", numbers keep their printed form ("2020", not
// "2020.00").
func fieldString(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}
