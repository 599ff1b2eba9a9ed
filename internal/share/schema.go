package share

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// exchangeSchema validates the shape of an exchange file before any profile
// is decoded: a JSON object of profile documents. Unknown document fields
// are allowed for forward compatibility; known fields must carry the right
// types.
const exchangeSchema = `{
  "type": "object",
  "additionalProperties": {
    "type": "object",
    "properties": {
      "tier40_gifts":  {"type": "array", "items": {"type": "integer"}},
      "tier60_gifts":  {"type": "array", "items": {"type": "integer"}},
      "tier180_gifts": {"type": "array", "items": {"type": "integer"}},
      "tier240_gifts": {"type": "array", "items": {"type": "integer"}},
      "gift_quantities": {
        "type": "object",
        "additionalProperties": {"type": "integer", "minimum": 0}
      },
      "start_level": {"type": "integer", "minimum": 1},
      "start_exp":   {"type": "integer", "minimum": 0},
      "is_linked":   {"type": "boolean"}
    }
  }
}`

const schemaURL = "schema://profile-exchange.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(exchangeSchema))
		if err != nil {
			compileErr = fmt.Errorf("parse exchange schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add exchange schema: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

func validate(data []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return &InvalidFileError{Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	if err := schema.Validate(instance); err != nil {
		return &InvalidFileError{Err: err}
	}
	return nil
}
