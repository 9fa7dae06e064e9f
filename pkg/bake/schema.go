package bake

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Schema returns a JSON schema for the bake file format, for editor
// integration and CI validation of hand-written bake files.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{
		ExpandedStruct: true,
		KeyNamer:       func(s string) string { return s },
	}

	schema := r.Reflect(&File{})
	schema.Title = "axon bake file"
	schema.Description = "Declarative container build targets consumed by an external build engine."

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	return data, nil
}
