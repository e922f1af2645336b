package protocol

import "github.com/invopop/jsonschema"

// FrameSchema reflects the inbound frame shape as a JSON Schema so the wire
// contract can be checked against server fixtures without hand-maintaining a
// field list.
func FrameSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{DoNotReference: true}
	return reflector.Reflect(frame{})
}
