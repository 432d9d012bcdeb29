package challenge

import "github.com/invopop/jsonschema"

// Schema reflects the JSON Schema of the challenge descriptor.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}
	schema := reflector.Reflect(&Challenge{})
	schema.Title = "lifegate challenge"
	schema.Description = "Declarative puzzle level: setup placements, test scenarios and simulation budget."
	return schema
}
