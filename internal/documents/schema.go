package documents

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrPayloadInvalid marks payloads rejected by schema validation.
var ErrPayloadInvalid = errors.New("extracted document payload is invalid")

// extractedDocumentSchema is the persisted shape of a reconciled document.
// Payloads are validated before they are written so a malformed engine
// response can never reach the store.
const extractedDocumentSchema = `{
	"type": "object",
	"required": ["documentType", "extractedData", "confidence", "sources"],
	"properties": {
		"documentType": {
			"type": "string",
			"enum": ["WAGE_STATEMENT", "PAY_STUB", "BANK_STATEMENT", "UNKNOWN"]
		},
		"extractedData": {"type": "object"},
		"confidence": {"type": "number", "minimum": 0, "maximum": 1},
		"sources": {
			"type": "object",
			"required": ["engineA", "engineB"],
			"properties": {
				"engineA": {"$ref": "#/definitions/engineResult"},
				"engineB": {"$ref": "#/definitions/engineResult"}
			}
		}
	},
	"definitions": {
		"engineResult": {
			"type": "object",
			"required": ["engine", "documentType", "confidence"],
			"properties": {
				"engine": {"type": "string"},
				"documentType": {"type": "string"},
				"confidence": {"type": "number", "minimum": 0, "maximum": 1}
			}
		}
	}
}`

var schemaLoader = gojsonschema.NewStringLoader(extractedDocumentSchema)

// ValidatePayload checks a serialized ExtractedDocument against the
// persisted shape.
func ValidatePayload(payload []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}

	messages := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		messages = append(messages, e.String())
	}
	return fmt.Errorf("%w: %s", ErrPayloadInvalid, strings.Join(messages, "; "))
}
