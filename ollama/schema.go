package ollama

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// SchemaFor reflects v into a JSON schema suitable for the Format field of a
// request, constraining the model's output to that shape. Nested types are
// inlined because the service does not resolve $ref.
//
//	type verdict struct {
//	    Label      string  `json:"label"`
//	    Confidence float64 `json:"confidence"`
//	}
//	format, err := ollama.SchemaFor(verdict{})
func SchemaFor(v any) (json.RawMessage, error) {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	schema := r.Reflect(v)
	schema.Version = ""
	schema.ID = ""

	data, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}
