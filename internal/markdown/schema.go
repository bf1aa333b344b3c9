package markdown

import (
	"strings"
	"time"
)

// FieldType selects the typed accessor used to extract a header field.
type FieldType int

const (
	FieldString FieldType = iota
	// FieldOptionalString extracts to *string and stays nil when absent.
	FieldOptionalString
	FieldInt
	FieldBool
	FieldStrings
	FieldDate
)

// Field describes one header key of a content kind.
type Field struct {
	Key      string
	Type     FieldType
	Required bool
	// NonEmpty rejects blank strings for required string fields.
	NonEmpty bool
	Default  any
}

// Schema lists the header fields of a content kind in extraction order.
type Schema struct {
	Name   string
	Fields []Field
}

// Parse splits, decodes, and extracts a document header in one step and
// returns the header together with the raw Markdown body.
func (s Schema) Parse(source []byte) (Header, string, error) {
	block, body, err := SplitHeader(source)
	if err != nil {
		return Header{}, "", err
	}
	tree, err := DecodeHeader(block)
	if err != nil {
		return Header{}, "", err
	}
	header, err := s.Extract(tree)
	if err != nil {
		return Header{}, "", err
	}
	return header, body, nil
}

// Extract applies the schema to a decoded tree. Fields are checked in
// declaration order and the first failure is returned. Optional fields that
// are absent or of the wrong type take their default.
func (s Schema) Extract(tree Tree) (Header, error) {
	values := make(map[string]any, len(s.Fields))
	for _, field := range s.Fields {
		value, err := extractField(tree, field)
		if err != nil {
			return Header{}, err
		}
		values[field.Key] = value
	}
	return Header{kind: s.Name, values: values}, nil
}

func extractField(tree Tree, field Field) (any, error) {
	missing := &HeaderError{Kind: ErrMissingField, Field: field.Key}

	switch field.Type {
	case FieldString:
		value, ok := tree.GetString(field.Key)
		if ok && field.NonEmpty && strings.TrimSpace(value) == "" {
			ok = false
		}
		if !ok {
			if field.Required {
				return nil, missing
			}
			def, _ := field.Default.(string)
			return def, nil
		}
		return value, nil

	case FieldOptionalString:
		value, ok := tree.GetString(field.Key)
		if !ok {
			if field.Required {
				return nil, missing
			}
			return (*string)(nil), nil
		}
		return &value, nil

	case FieldInt:
		value, ok := tree.GetInt(field.Key)
		if !ok {
			if field.Required {
				return nil, missing
			}
			def, _ := field.Default.(int)
			return def, nil
		}
		return value, nil

	case FieldBool:
		value, ok := tree.GetBool(field.Key)
		if !ok {
			if field.Required {
				return nil, missing
			}
			def, _ := field.Default.(bool)
			return def, nil
		}
		return value, nil

	case FieldStrings:
		value, ok := tree.GetStrings(field.Key)
		if !ok {
			if field.Required {
				return nil, missing
			}
			return []string{}, nil
		}
		return value, nil

	case FieldDate:
		value, ok, err := tree.dateValue(field.Key)
		if err != nil {
			return nil, err
		}
		if !ok {
			if field.Required {
				return nil, missing
			}
			return time.Time{}, nil
		}
		return value, nil
	}
	return nil, missing
}

// Header holds the typed field values extracted by a Schema with defaults
// already applied. Accessors return zero values for unknown keys.
type Header struct {
	kind   string
	values map[string]any
}

// Kind returns the schema name the header was extracted with.
func (h Header) Kind() string {
	return h.kind
}

func (h Header) String(key string) string {
	value, _ := h.values[key].(string)
	return value
}

func (h Header) OptionalString(key string) *string {
	value, _ := h.values[key].(*string)
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}

func (h Header) Int(key string) int {
	value, _ := h.values[key].(int)
	return value
}

func (h Header) Bool(key string) bool {
	value, _ := h.values[key].(bool)
	return value
}

// Strings returns a copy of a list field; never nil.
func (h Header) Strings(key string) []string {
	value, _ := h.values[key].([]string)
	return append([]string{}, value...)
}

func (h Header) Date(key string) time.Time {
	value, _ := h.values[key].(time.Time)
	return value
}

