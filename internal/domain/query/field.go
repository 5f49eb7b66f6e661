package query

import "strings"

// FieldType is the declared value type of a Field.
// It selects the formatting rules applied to the field's operands.
type FieldType int

const (
	// TypeString is a free text field
	TypeString FieldType = iota
	// TypeInteger is a whole number field
	TypeInteger
	// TypeDecimal is a fixed point number field (prices, quantities)
	TypeDecimal
	// TypeBoolean is a flag field
	TypeBoolean
	// TypeDate is a timestamp field
	TypeDate
)

var fieldTypeNames = map[FieldType]string{
	TypeString:  "string",
	TypeInteger: "integer",
	TypeDecimal: "decimal",
	TypeBoolean: "boolean",
	TypeDate:    "date",
}

var fieldTypeAliases = map[string]FieldType{
	"string":    TypeString,
	"text":      TypeString,
	"varchar":   TypeString,
	"int":       TypeInteger,
	"integer":   TypeInteger,
	"long":      TypeInteger,
	"decimal":   TypeDecimal,
	"double":    TypeDecimal,
	"float":     TypeDecimal,
	"number":    TypeDecimal,
	"bool":      TypeBoolean,
	"boolean":   TypeBoolean,
	"date":      TypeDate,
	"datetime":  TypeDate,
	"timestamp": TypeDate,
}

// String returns the canonical name of the type
func (t FieldType) String() string {
	if name, ok := fieldTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// IsValid returns true if the type is one of the declared field types
func (t FieldType) IsValid() bool {
	_, ok := fieldTypeNames[t]
	return ok
}

// ParseFieldType resolves a type name (case-insensitive, common aliases allowed)
func ParseFieldType(name string) (FieldType, error) {
	if t, ok := fieldTypeAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return t, nil
	}
	return TypeString, &TranslationError{Err: ErrUnknownFieldType, Detail: name}
}

// Field identifies the attribute a comparison applies to
type Field struct {
	Name string
	Type FieldType
}

// NewField creates a field with the given name and declared type
func NewField(name string, t FieldType) Field {
	return Field{Name: name, Type: t}
}

// String returns the field name
func (f Field) String() string {
	return f.Name
}
