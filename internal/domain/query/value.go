package query

import (
	"time"

	"github.com/shopspring/decimal"
)

// Value is a typed literal used as the operand of a comparison.
// The set of implementations is closed: only types of this package
// satisfy it.
type Value interface {
	valueNode()
}

// StringValue is a text literal
type StringValue string

// IntegerValue is a whole number literal
type IntegerValue int64

// DecimalValue is a fixed point literal
type DecimalValue struct {
	decimal.Decimal
}

// BooleanValue is a flag literal
type BooleanValue bool

// DateValue is a timestamp literal
type DateValue struct {
	time.Time
}

// NullValue stands for the absence of an operand
type NullValue struct{}

// ListValue is an ordered multi-value operand used by in, not-in and between
type ListValue []Value

func (StringValue) valueNode()  {}
func (IntegerValue) valueNode() {}
func (DecimalValue) valueNode() {}
func (BooleanValue) valueNode() {}
func (DateValue) valueNode()    {}
func (NullValue) valueNode()    {}
func (ListValue) valueNode()    {}

// String creates a string literal
func String(s string) Value { return StringValue(s) }

// Integer creates an integer literal
func Integer(i int64) Value { return IntegerValue(i) }

// Decimal creates a decimal literal
func Decimal(d decimal.Decimal) Value { return DecimalValue{d} }

// Bool creates a boolean literal
func Bool(b bool) Value { return BooleanValue(b) }

// Date creates a date literal
func Date(t time.Time) Value { return DateValue{t} }

// Null returns the null literal
func Null() Value { return NullValue{} }

// List creates a multi-value operand, preserving the given order
func List(values ...Value) Value {
	return ListValue(values)
}

// Values flattens an operand into the list of scalar values it carries.
// A nil or null operand carries no value.
func Values(v Value) []Value {
	switch x := v.(type) {
	case nil, NullValue:
		return nil
	case ListValue:
		return []Value(x)
	default:
		return []Value{v}
	}
}
