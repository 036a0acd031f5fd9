package utils

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

type SchemaType string

const (
	TypeObject  SchemaType = "OBJECT"
	TypeArray   SchemaType = "ARRAY"
	TypeString  SchemaType = "STRING"
	TypeNumber  SchemaType = "NUMBER"
	TypeInteger SchemaType = "INTEGER"
	TypeBoolean SchemaType = "BOOLEAN"
)

// Schema declares the JSON shape a backend must answer with. The JSON encoding
// is the Gemini dialect (upper-case type names).
type Schema struct {
	Type        SchemaType         `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

func StringSchema(description string) *Schema {
	return &Schema{Type: TypeString, Description: description}
}

func ArraySchema(items *Schema) *Schema {
	return &Schema{Type: TypeArray, Items: items}
}

func ObjectSchema(properties map[string]*Schema, required ...string) *Schema {
	return &Schema{Type: TypeObject, Properties: properties, Required: required}
}

// Validate checks a value produced by json.Unmarshal into `any` against the schema.
// Required keys must be present and non-null; unknown keys are ignored.
func (s *Schema) Validate(v any) error {
	return s.validate("$", v)
}

func (s *Schema) validate(path string, v any) error {
	switch s.Type {
	case TypeObject:
		obj, ok := v.(map[string]any)
		if !ok {
			return mismatch(path, "object")
		}
		for _, key := range s.Required {
			if val, present := obj[key]; !present || val == nil {
				return fmt.Errorf("%w: %s.%s is required", ErrSchemaMismatch, path, key)
			}
		}
		for key, prop := range s.Properties {
			val, present := obj[key]
			if !present || val == nil {
				continue
			}
			if err := prop.validate(path+"."+key, val); err != nil {
				return err
			}
		}
	case TypeArray:
		arr, ok := v.([]any)
		if !ok {
			return mismatch(path, "array")
		}
		if s.Items == nil {
			return nil
		}
		for i, item := range arr {
			if err := s.Items.validate(fmt.Sprintf("%s[%d]", path, i), item); err != nil {
				return err
			}
		}
	case TypeString:
		if _, ok := v.(string); !ok {
			return mismatch(path, "string")
		}
	case TypeNumber:
		if _, ok := v.(float64); !ok {
			return mismatch(path, "number")
		}
	case TypeInteger:
		f, ok := v.(float64)
		if !ok || f != math.Trunc(f) {
			return mismatch(path, "integer")
		}
	case TypeBoolean:
		if _, ok := v.(bool); !ok {
			return mismatch(path, "boolean")
		}
	}
	return nil
}

func mismatch(path, want string) error {
	return fmt.Errorf("%w: %s: expected %s", ErrSchemaMismatch, path, want)
}

// JSONSchema renders the schema in standard JSON Schema form (lower-case types),
// for backends that speak it.
func (s *Schema) JSONSchema() map[string]any {
	out := map[string]any{"type": strings.ToLower(string(s.Type))}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if s.Type == TypeObject {
		props := make(map[string]any, len(s.Properties))
		for name, prop := range s.Properties {
			props[name] = prop.JSONSchema()
		}
		out["properties"] = props
		if len(s.Required) > 0 {
			out["required"] = s.Required
		}
	}
	if s.Items != nil {
		out["items"] = s.Items.JSONSchema()
	}
	return out
}

// DecodeWithSchema cleans a model reply, validates it against schema and decodes it into out.
func DecodeWithSchema(text string, schema *Schema, out any) error {
	cleaned := CleanJSONResponse(text)
	if cleaned == "" {
		return ErrEmptyAIResponse
	}

	var raw any
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	if schema != nil {
		if err := schema.Validate(raw); err != nil {
			return err
		}
	}
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	return nil
}
