package query

import (
	"errors"
	"strings"
)

var (
	// ErrUnsupportedOperator indicates an operator missing from the grammar's mnemonic table
	ErrUnsupportedOperator = errors.New("query: unsupported operator")
	// ErrArityMismatch indicates a wrong number of operand values for the operator
	ErrArityMismatch = errors.New("query: operator arity mismatch")
	// ErrTypeMismatch indicates a value the field's declared type cannot represent
	ErrTypeMismatch = errors.New("query: value does not match field type")
	// ErrEmptyGroup indicates a logical node with fewer than two children
	ErrEmptyGroup = errors.New("query: logical group needs at least two children")
	// ErrNilExpression indicates a missing expression node
	ErrNilExpression = errors.New("query: nil expression")
	// ErrUnknownFieldType indicates an unrecognised field type name
	ErrUnknownFieldType = errors.New("query: unknown field type")
	// ErrEmptyFieldName indicates a comparison without a field name
	ErrEmptyFieldName = errors.New("query: empty field name")
	// ErrInvalidFieldName indicates a field name outside the identifier alphabet
	ErrInvalidFieldName = errors.New("query: invalid field name")
)

// TranslationError reports why an expression could not be rendered.
// It wraps one of the package sentinels so callers can use errors.Is.
type TranslationError struct {
	Field    string
	Operator string
	Detail   string
	Err      error
}

// Error implements the error interface
func (e *TranslationError) Error() string {
	var b strings.Builder
	b.WriteString(e.Err.Error())
	if e.Field != "" {
		b.WriteString(": field ")
		b.WriteString(e.Field)
	}
	if e.Operator != "" {
		b.WriteString(", operator ")
		b.WriteString(e.Operator)
	}
	if e.Detail != "" {
		b.WriteString(" (")
		b.WriteString(e.Detail)
		b.WriteString(")")
	}
	return b.String()
}

// Unwrap returns the underlying sentinel
func (e *TranslationError) Unwrap() error {
	return e.Err
}

// NewTranslationError creates an error for a comparison
func NewTranslationError(err error, c *Comparison, detail string) *TranslationError {
	te := &TranslationError{Err: err, Detail: detail}
	if c != nil {
		te.Field = c.Field.Name
		te.Operator = c.Operator.String()
	}
	return te
}

// IsTranslationError reports whether err is a translation failure
func IsTranslationError(err error) bool {
	var te *TranslationError
	return errors.As(err, &te)
}
