package constants

import "strings"

// NotAvailable is the explicit absence marker carried through enrichment
// output columns. A failed or partial lookup fills with this value rather
// than dropping the row.
const NotAvailable = "N/A"

// MainType is the coarse wine classification used for filtering.
type MainType string

const (
	Red       MainType = "RED"
	White     MainType = "WHITE"
	Rose      MainType = "ROSE"
	Sparkling MainType = "SPARKLING"
	Orange    MainType = "ORANGE"
	OtherWine MainType = "OTHER"
)

var allMainTypes = []MainType{Red, White, Rose, Sparkling, Orange, OtherWine}

// MainTypesAsStrings returns the main type enum as plain strings, in stable
// order, for prompts and schema enums.
func MainTypesAsStrings() []string {
	result := make([]string, len(allMainTypes))
	for i, t := range allMainTypes {
		result[i] = string(t)
	}
	return result
}

// ServingSizes holds the allowed values for the size field.
var ServingSizes = []string{"glass", "bottle", "half-bottle", "magnum"}

// CanonicalMainType maps free-form model output onto the enum. Unrecognized
// input returns OTHER and false.
func CanonicalMainType(input string) (MainType, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(input))
	switch normalized {
	case "RED":
		return Red, true
	case "WHITE":
		return White, true
	case "ROSE", "ROSÉ":
		return Rose, true
	case "SPARKLING", "CHAMPAGNE":
		return Sparkling, true
	case "ORANGE", "AMBER":
		return Orange, true
	}
	return OtherWine, false
}
