package types

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// ParametersJSONSchema returns the JSON schema describing the parameters
// file, for editor tooling and external callers.
func ParametersJSONSchema() (string, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = true
	schema := r.Reflect(Parameters{})

	jsonSchemaBytes, err := json.Marshal(schema)
	if err != nil {
		return "", err
	}

	return string(jsonSchemaBytes), nil
}
