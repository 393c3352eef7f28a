// Package contentmodel parses the project's content-model JSON documents
// and emits a runtime-validator module from them.
package contentmodel

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/go-json-experiment/json"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// EnumOption is one closed-string choice of a string field's validation.
type EnumOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Validation is a string field's optional validation rule.
type Validation struct {
	Enum []EnumOption `json:"enum,omitempty"`
}

// FieldShape is one `json` node: a scalar field, or an object field with
// nested (necessarily non-object) fields.
type FieldShape struct {
	Type       string       `json:"type"`
	Kind       string       `json:"kind,omitempty"`
	Validation *Validation  `json:"validation,omitempty"`
	Help       string       `json:"help,omitempty"`
	Fields     []SubField   `json:"fields,omitempty"`
}

// SubField is an object field's member: a non-object FieldShape plus its
// own name/label.
type SubField struct {
	Name  string `json:"name"`
	Label string `json:"label,omitempty"`
	FieldShape
}

// Entry is one top-level content-model declaration.
type Entry struct {
	Name  string     `json:"name"`
	Label string     `json:"label,omitempty"`
	JSON  FieldShape `json:"json"`
}

const schemaID = "https://trunkery.internal/content-model-entries.json"

var (
	compiledSchema     *jsonschema.Schema
	compiledSchemaOnce sync.Once
	compiledSchemaErr  error
)

func schema() (*jsonschema.Schema, error) {
	compiledSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(entrySchemaJSON))
		if err != nil {
			compiledSchemaErr = fmt.Errorf("parse embedded content-model schema: %w", err)
			return
		}
		if err := compiler.AddResource(schemaID, doc); err != nil {
			compiledSchemaErr = fmt.Errorf("add embedded content-model schema: %w", err)
			return
		}
		compiledSchema, compiledSchemaErr = compiler.Compile(schemaID)
	})
	return compiledSchema, compiledSchemaErr
}

// Parse validates data (a JSON array of entries) against the fixed schema
// and decodes it into Entry values.
func Parse(data []byte) ([]Entry, error) {
	s, err := schema()
	if err != nil {
		return nil, err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse content model: %w", err)
	}
	if err := s.Validate(inst); err != nil {
		return nil, fmt.Errorf("content model does not match the expected shape: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode content model: %w", err)
	}
	return entries, nil
}
