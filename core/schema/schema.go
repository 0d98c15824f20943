// Package schema validates JSON configuration documents against JSON
// schemas.
package schema

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/xeipuuv/gojsonschema"
)

// Validator validates JSON documents against a set of compiled schemas
// keyed by their $id.
type Validator struct {
	schemaValidators map[string]*gojsonschema.Schema
}

// NewValidator compiles the given schema strings. Every schema must carry
// a $id which becomes its lookup key.
func NewValidator(schemas ...string) (*Validator, error) {
	type schema struct {
		ID string `json:"$id"`
	}
	validator := Validator{schemaValidators: make(map[string]*gojsonschema.Schema)}
	for _, str := range schemas {
		s := schema{}
		err := json.Unmarshal([]byte(str), &s)
		if err != nil {
			return nil, fmt.Errorf("parse error '%v' in schema: '%s'", err, str)
		}
		if s.ID == "" {
			return nil, fmt.Errorf("schema does not contain $id: '%s'", str)
		}
		compiled, err := gojsonschema.NewSchemaLoader().Compile(gojsonschema.NewStringLoader(str))
		if err != nil {
			return nil, fmt.Errorf("cannot compile schema %s: %s", s.ID, err)
		}
		validator.schemaValidators[s.ID] = compiled
	}
	return &validator, nil
}

// HasSchema returns true if schemaID is known
func (v *Validator) HasSchema(schemaID string) bool {
	_, ok := v.schemaValidators[schemaID]
	return ok
}

// ValidateBytes validates the given json document against schemaID. If no
// error is returned, the document is valid.
func (v *Validator) ValidateBytes(document []byte, schemaID string) error {
	return v.validate(gojsonschema.NewBytesLoader(document), schemaID)
}

// ValidateStruct validates the given value against schemaID. If no error
// is returned, the value is valid.
func (v *Validator) ValidateStruct(document interface{}, schemaID string) error {
	return v.validate(gojsonschema.NewGoLoader(document), schemaID)
}

func (v *Validator) validate(loader gojsonschema.JSONLoader, schemaID string) error {
	compiled, ok := v.schemaValidators[schemaID]
	if !ok {
		return fmt.Errorf("there is no schema %s", schemaID)
	}
	result, err := compiled.Validate(loader)
	if err != nil {
		return fmt.Errorf("cannot validate with schema %s: %s", schemaID, err)
	}
	if !result.Valid() {
		msg := "the document is not valid:\n"
		for _, e := range result.Errors() {
			msg += fmt.Sprintf("- %s\n", e)
		}
		return errors.New(msg)
	}
	return nil
}
