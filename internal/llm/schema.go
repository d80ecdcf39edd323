package llm

// BuildItemsJSONSchema returns the JSON Schema the model's array reply must
// satisfy: a list of {name, quantity, unit, price} records.
func BuildItemsJSONSchema() map[string]any {
	return map[string]any{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type":    "array",
		"items": map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"required":             []string{"name", "price"},
			"properties": map[string]any{
				"name": map[string]any{
					"type":      "string",
					"minLength": 1,
				},
				"quantity": map[string]any{
					"type":             "number",
					"exclusiveMinimum": 0,
				},
				"unit": map[string]any{
					"type": "string",
				},
				"price": map[string]any{
					"type":    "number",
					"minimum": 0,
				},
			},
		},
	}
}
