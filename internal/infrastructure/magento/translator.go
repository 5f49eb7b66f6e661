package magento

import (
	"fmt"
	"strings"

	"github.com/erp/connector/internal/domain/query"
)

// Translator renders query expressions into the native filter grammar.
// It holds no mutable state and is safe for concurrent use.
type Translator struct {
	grammar *Grammar
}

// NewTranslator creates a translator for the given grammar
func NewTranslator(grammar *Grammar) (*Translator, error) {
	if grammar == nil {
		grammar = DefaultGrammar()
	}
	if err := grammar.Validate(); err != nil {
		return nil, err
	}
	return &Translator{grammar: grammar}, nil
}

// Grammar returns the dialect the translator renders
func (t *Translator) Grammar() *Grammar {
	return t.grammar
}

// Translate renders an expression tree as a native filter string.
// Either the whole tree renders or an error is returned; there is no
// partial output.
func (t *Translator) Translate(expr query.Expression) (string, error) {
	clauses, err := t.clauses(expr)
	if err != nil {
		return "", err
	}
	return strings.Join(clauses, t.grammar.ClauseSeparator), nil
}

// TranslateQuery renders the filter of a query. A query without filter
// renders as the empty string; sort and pagination are not part of the
// native filter.
func (t *Translator) TranslateQuery(q query.Query) (string, error) {
	if q.Filter == nil {
		return "", nil
	}
	return t.Translate(q.Filter)
}

// clauses renders expr as a sequence of top-level clauses.
// AND children flatten into the sequence; an OR group is a single clause.
func (t *Translator) clauses(expr query.Expression) ([]string, error) {
	switch e := expr.(type) {
	case *query.Comparison:
		if e == nil {
			return nil, &query.TranslationError{Err: query.ErrNilExpression}
		}
		clause, err := t.comparison(e)
		if err != nil {
			return nil, err
		}
		return []string{clause}, nil
	case *query.And:
		if e == nil {
			return nil, &query.TranslationError{Err: query.ErrNilExpression}
		}
		if len(e.Children) < 2 {
			return nil, emptyGroup("and", len(e.Children))
		}
		out := make([]string, 0, len(e.Children))
		for _, child := range e.Children {
			cs, err := t.clauses(child)
			if err != nil {
				return nil, err
			}
			out = append(out, cs...)
		}
		return out, nil
	case *query.Or:
		if e == nil {
			return nil, &query.TranslationError{Err: query.ErrNilExpression}
		}
		group, err := t.orGroup(e)
		if err != nil {
			return nil, err
		}
		return []string{group}, nil
	default:
		return nil, &query.TranslationError{Err: query.ErrNilExpression, Detail: fmt.Sprintf("%T", expr)}
	}
}

// orGroup renders an OR node as one bracketed group
func (t *Translator) orGroup(e *query.Or) (string, error) {
	if len(e.Children) < 2 {
		return "", emptyGroup("or", len(e.Children))
	}
	members := make([]string, 0, len(e.Children))
	for _, child := range e.Children {
		cs, err := t.clauses(child)
		if err != nil {
			return "", err
		}
		member := strings.Join(cs, t.grammar.ClauseSeparator)
		// A conjunction inside a group is bracketed to keep the group unambiguous
		if _, ok := child.(*query.And); ok {
			member = t.grammar.OrOpen + member + t.grammar.OrClose
		}
		members = append(members, member)
	}
	return t.grammar.OrOpen + strings.Join(members, t.grammar.OrSeparator) + t.grammar.OrClose, nil
}

// comparison renders a leaf as mnemonic(field,value[,value...])
func (t *Translator) comparison(c *query.Comparison) (string, error) {
	mnemonic, values, err := t.operands(c)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(mnemonic)
	b.WriteByte('(')
	b.WriteString(c.Field.Name)
	for _, v := range values {
		b.WriteString(t.grammar.ArgumentSeparator)
		if v.quoted {
			b.WriteString(quote(v.text))
		} else {
			b.WriteString(v.text)
		}
	}
	b.WriteByte(')')
	return b.String(), nil
}

// operands validates a comparison and formats its values.
// Null checks yield the grammar's null literal and ignore the supplied value.
func (t *Translator) operands(c *query.Comparison) (string, []operand, error) {
	if strings.TrimSpace(c.Field.Name) == "" {
		return "", nil, query.NewTranslationError(query.ErrEmptyFieldName, c, "")
	}
	// Field names are written unquoted, so they must read back as one identifier
	if !isWord(c.Field.Name) {
		return "", nil, query.NewTranslationError(query.ErrInvalidFieldName, c,
			"only letters, digits, '_' and '.' are allowed")
	}
	if !c.Operator.IsValid() {
		return "", nil, query.NewTranslationError(query.ErrUnsupportedOperator, c, "")
	}
	mnemonic, ok := t.grammar.mnemonic(c.Operator)
	if !ok {
		return "", nil, query.NewTranslationError(query.ErrUnsupportedOperator, c, "no native mnemonic")
	}

	if c.Operator.Arity() == query.ArityNone {
		return mnemonic, []operand{{text: t.grammar.NullLiteral}}, nil
	}

	values := query.Values(c.Value)
	if !c.Operator.CheckArity(values) {
		return "", nil, query.NewTranslationError(query.ErrArityMismatch, c,
			fmt.Sprintf("got %d values", len(values)))
	}

	format, ok := formatters[c.Field.Type]
	if !ok {
		return "", nil, query.NewTranslationError(query.ErrUnknownFieldType, c, c.Field.Type.String())
	}

	out := make([]operand, 0, len(values))
	for _, v := range values {
		if _, nested := v.(query.ListValue); nested {
			return "", nil, query.NewTranslationError(query.ErrArityMismatch, c, "nested list")
		}
		if _, null := v.(query.NullValue); null {
			return "", nil, query.NewTranslationError(query.ErrTypeMismatch, c, "null operand")
		}
		op, err := format(t.grammar, c.Field, v)
		if err != nil {
			return "", nil, query.NewTranslationError(query.ErrTypeMismatch, c,
				fmt.Sprintf("%s field cannot hold %s", c.Field.Type, describe(v)))
		}
		out = append(out, op)
	}
	return mnemonic, out, nil
}

func emptyGroup(kind string, n int) error {
	return &query.TranslationError{
		Err:    query.ErrEmptyGroup,
		Detail: fmt.Sprintf("%s with %d children", kind, n),
	}
}

// describe names a value for error messages
func describe(v query.Value) string {
	switch x := v.(type) {
	case query.StringValue:
		return fmt.Sprintf("string %q", string(x))
	case query.IntegerValue:
		return fmt.Sprintf("integer %d", int64(x))
	case query.DecimalValue:
		return "decimal " + x.String()
	case query.BooleanValue:
		return fmt.Sprintf("boolean %t", bool(x))
	case query.DateValue:
		return "date " + x.Format(DefaultDateLayout)
	default:
		return fmt.Sprintf("%T", v)
	}
}
