package magento

import (
	"errors"
	"fmt"
	"strings"

	"github.com/erp/connector/internal/domain/query"
)

// ErrUnsupportedFilter indicates an expression the gateway's list filters cannot carry
var ErrUnsupportedFilter = errors.New("magento: filter cannot be sent to the gateway")

// AssociativeEntity is a key/value pair of the SOAP v2 API
type AssociativeEntity struct {
	Key   string `xml:"key" json:"key"`
	Value string `xml:"value" json:"value"`
}

// ComplexFilter is a `field => (operator, value)` condition of a list call
type ComplexFilter struct {
	Key   string            `xml:"key" json:"key"`
	Value AssociativeEntity `xml:"value" json:"value"`
}

// Filters is the filter argument of the gateway's list operations.
// Conditions are conjunctive.
type Filters struct {
	Filter        []AssociativeEntity `xml:"filter>complexObjectArray,omitempty" json:"filter,omitempty"`
	ComplexFilter []ComplexFilter     `xml:"complex_filter>complexObjectArray,omitempty" json:"complex_filter,omitempty"`
}

// IsEmpty returns true if the filters carry no condition
func (f *Filters) IsEmpty() bool {
	return f == nil || len(f.Filter) == 0 && len(f.ComplexFilter) == 0
}

// Filters converts an expression into the gateway's filter structure.
// Only conjunctions of comparisons are representable; a nil expression
// yields empty filters.
func (t *Translator) Filters(expr query.Expression) (*Filters, error) {
	filters := &Filters{}
	if expr == nil {
		return filters, nil
	}
	if err := t.collect(expr, filters); err != nil {
		return nil, err
	}
	return filters, nil
}

func (t *Translator) collect(expr query.Expression, filters *Filters) error {
	switch e := expr.(type) {
	case *query.Comparison:
		if e == nil {
			return &query.TranslationError{Err: query.ErrNilExpression}
		}
		mnemonic, values, err := t.operands(e)
		if err != nil {
			return err
		}
		texts := make([]string, len(values))
		for i, v := range values {
			texts[i] = v.text
		}
		if e.Operator.Arity() == query.ArityNone {
			texts = []string{NumericBoolean.True}
		}
		filters.ComplexFilter = append(filters.ComplexFilter, ComplexFilter{
			Key: e.Field.Name,
			Value: AssociativeEntity{
				Key:   mnemonic,
				Value: strings.Join(texts, t.grammar.ArgumentSeparator),
			},
		})
		return nil
	case *query.And:
		if e == nil {
			return &query.TranslationError{Err: query.ErrNilExpression}
		}
		if len(e.Children) < 2 {
			return emptyGroup("and", len(e.Children))
		}
		for _, child := range e.Children {
			if err := t.collect(child, filters); err != nil {
				return err
			}
		}
		return nil
	case *query.Or:
		return fmt.Errorf("%w: disjunctions are not supported by list filters", ErrUnsupportedFilter)
	default:
		return &query.TranslationError{Err: query.ErrNilExpression, Detail: fmt.Sprintf("%T", expr)}
	}
}

// ParseFilters parses a native filter string into the gateway's filter
// structure. Blank input yields empty filters.
func ParseFilters(p *Parser, t *Translator, filter string) (*Filters, error) {
	expr, err := p.Parse(filter)
	if err != nil {
		return nil, err
	}
	return t.Filters(expr)
}
