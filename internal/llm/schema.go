package llm

// BuildWineListJSONSchema returns a JSON-Schema (draft 2020-12 subset) for the
// reply envelope as a generic map. Only the envelope is strict: a reply must
// carry a "wines" array of objects. Field values stay loose because the model
// mixes nulls, strings, and bare numbers; coercion happens after validation.
func BuildWineListJSONSchema() map[string]any {
	wine := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":        looseScalar(),
			"producer":  looseScalar(),
			"name":      looseScalar(),
			"type":      looseScalar(),
			"main_type": looseScalar(),
			"region":    looseScalar(),
			"country":   looseScalar(),
			"vintage":   looseScalar(),
			"price":     looseScalar(),
			"size":      looseScalar(),
		},
	}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"wines": map[string]any{
				"type":  "array",
				"items": wine,
			},
		},
		"required": []string{"wines"},
	}
}

func looseScalar() map[string]any {
	return map[string]any{
		"type": []string{"string", "number", "integer", "null"},
	}
}
