package casestudy

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Schema reflects the JSON Schema describing a dataset document.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: true,
		ExpandedStruct:            true,
	}

	schema := r.Reflect(&Dataset{})
	schema.Title = "Case Study Dataset"
	schema.Description = "Documented incidents with their long-form reports."
	return schema
}

// SchemaJSON returns the indented schema document with a trailing newline.
func SchemaJSON() ([]byte, error) {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
