package check

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// JSON Schemas for the two provider payload shapes. Payloads are validated
// against these before parsing so that shape drift upstream surfaces as a
// MalformedResponseError instead of a zero-value parse.

const acceptabilitySchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "anyOf": [
    {"type": "array", "items": {"$ref": "#/definitions/label"}},
    {"type": "array", "items": {"type": "array", "items": {"$ref": "#/definitions/label"}}}
  ],
  "definitions": {
    "label": {
      "type": "object",
      "required": ["label", "score"],
      "properties": {
        "label": {"type": "string"},
        "score": {"type": "number"}
      }
    }
  }
}`

const correctionSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "anyOf": [
    {"type": "array", "items": {"$ref": "#/definitions/generation"}},
    {"$ref": "#/definitions/generation"}
  ],
  "definitions": {
    "generation": {
      "type": "object",
      "required": ["generated_text"],
      "properties": {
        "generated_text": {"type": "string"}
      }
    }
  }
}`

// validatePayload checks a raw provider payload against the schema for its
// model kind.
func validatePayload(raw []byte, kind ModelKind) error {
	schema := acceptabilitySchema
	if kind == KindCorrection {
		schema = correctionSchema
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewStringLoader(string(raw)),
	)
	if err != nil {
		return &MalformedResponseError{Kind: kind, Message: "payload is not valid JSON", Cause: err}
	}
	if !result.Valid() {
		messages := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			messages = append(messages, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
		}
		return &MalformedResponseError{Kind: kind, Message: strings.Join(messages, "; ")}
	}
	return nil
}
