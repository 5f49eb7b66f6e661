package magento

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/erp/connector/internal/domain/query"
)

const (
	// DefaultClauseSeparator joins the clauses of the top-level (AND) stream
	DefaultClauseSeparator = ", "
	// DefaultArgumentSeparator joins the arguments inside a clause
	DefaultArgumentSeparator = ","
	// DefaultOrSeparator joins the members of an OR group.
	// Grammars differ between platform versions, so it is configurable.
	DefaultOrSeparator = " or "
	// DefaultOrOpen opens an OR group
	DefaultOrOpen = "("
	// DefaultOrClose closes an OR group
	DefaultOrClose = ")"
	// DefaultDateLayout is the platform's date format
	DefaultDateLayout = "2006-01-02 15:04:05"
	// DefaultNullLiteral is rendered as the operand of null checks
	DefaultNullLiteral = "null"
)

// Errors for grammar configuration
var (
	ErrGrammarMissingMnemonics  = errors.New("magento: grammar has no mnemonics")
	ErrGrammarDuplicateMnemonic = errors.New("magento: grammar maps two operators to the same mnemonic")
	ErrGrammarMissingSeparator  = errors.New("magento: grammar separators are required")
	ErrGrammarMissingDateLayout = errors.New("magento: grammar date layout is required")
	ErrGrammarAmbiguousOr       = errors.New("magento: grammar OR separator equals the clause separator")
)

// BooleanFormat is the textual form of a boolean field's true and false values
type BooleanFormat struct {
	True  string
	False string
}

var (
	// TextBoolean renders booleans as true/false
	TextBoolean = BooleanFormat{True: "true", False: "false"}
	// NumericBoolean renders booleans as 1/0, as the platform's flag columns expect
	NumericBoolean = BooleanFormat{True: "1", False: "0"}
)

// Format returns the text for b
func (f BooleanFormat) Format(b bool) string {
	if b {
		return f.True
	}
	return f.False
}

// Grammar describes a native filter dialect.
// Everything a platform version may change is data here, so adding a
// dialect does not touch the translator.
type Grammar struct {
	// Mnemonics maps each supported operator to its native code
	Mnemonics map[query.Operator]string
	// ClauseSeparator joins top-level clauses (AND semantics)
	ClauseSeparator string
	// ArgumentSeparator joins the field and values inside a clause
	ArgumentSeparator string
	// OrSeparator joins the members of an OR group
	OrSeparator string
	// OrOpen and OrClose bracket an OR group
	OrOpen  string
	OrClose string
	// DateLayout is the Go layout of date operands
	DateLayout string
	// Location is the zone date operands are rendered in (nil means UTC)
	Location *time.Location
	// NullLiteral is the operand rendered by null checks
	NullLiteral string
	// Booleans is the default boolean format
	Booleans BooleanFormat
	// BooleanOverrides maps field names to a field-specific boolean format
	BooleanOverrides map[string]BooleanFormat
}

// DefaultMnemonics is the operator table of the SOAP v2 list filters
func DefaultMnemonics() map[query.Operator]string {
	return map[query.Operator]string{
		query.Equals:         "eq",
		query.NotEquals:      "neq",
		query.LessThan:       "lt",
		query.LessOrEqual:    "lteq",
		query.GreaterThan:    "gt",
		query.GreaterOrEqual: "gteq",
		query.Like:           "like",
		query.NotLike:        "nlike",
		query.In:             "in",
		query.NotIn:          "nin",
		query.Between:        "between",
		query.IsNull:         "null",
		query.IsNotNull:      "notnull",
	}
}

// DefaultGrammar returns the platform's default filter dialect
func DefaultGrammar() *Grammar {
	return &Grammar{
		Mnemonics:         DefaultMnemonics(),
		ClauseSeparator:   DefaultClauseSeparator,
		ArgumentSeparator: DefaultArgumentSeparator,
		OrSeparator:       DefaultOrSeparator,
		OrOpen:            DefaultOrOpen,
		OrClose:           DefaultOrClose,
		DateLayout:        DefaultDateLayout,
		Location:          time.UTC,
		NullLiteral:       DefaultNullLiteral,
		Booleans:          TextBoolean,
		BooleanOverrides: map[string]BooleanFormat{
			"is_active": NumericBoolean,
		},
	}
}

// Validate validates the grammar and fills optional defaults
func (g *Grammar) Validate() error {
	if len(g.Mnemonics) == 0 {
		return ErrGrammarMissingMnemonics
	}
	seen := make(map[string]query.Operator, len(g.Mnemonics))
	for op, m := range g.Mnemonics {
		if prev, ok := seen[m]; ok && prev != op {
			return ErrGrammarDuplicateMnemonic
		}
		seen[m] = op
	}
	if strings.TrimSpace(g.ClauseSeparator) == "" || strings.TrimSpace(g.OrSeparator) == "" ||
		g.ArgumentSeparator == "" || g.OrOpen == "" || g.OrClose == "" {
		return ErrGrammarMissingSeparator
	}
	if strings.TrimSpace(g.OrSeparator) == strings.TrimSpace(g.ClauseSeparator) {
		return ErrGrammarAmbiguousOr
	}
	if g.DateLayout == "" {
		return ErrGrammarMissingDateLayout
	}
	if g.NullLiteral == "" {
		g.NullLiteral = DefaultNullLiteral
	}
	if g.Booleans.True == "" && g.Booleans.False == "" {
		g.Booleans = TextBoolean
	}
	return nil
}

// mnemonic returns the native code of op
func (g *Grammar) mnemonic(op query.Operator) (string, bool) {
	m, ok := g.Mnemonics[op]
	return m, ok
}

// operator returns the operator of a native code
func (g *Grammar) operator(mnemonic string) (query.Operator, bool) {
	for op, m := range g.Mnemonics {
		if m == mnemonic {
			return op, true
		}
	}
	return 0, false
}

// booleanFormat returns the boolean format of a field
func (g *Grammar) booleanFormat(field string) BooleanFormat {
	if f, ok := g.BooleanOverrides[field]; ok {
		return f
	}
	return g.Booleans
}

// ---------------------------------------------------------------------------
// Value formatting
// ---------------------------------------------------------------------------

// operand is a formatted value: its text and whether the grammar quotes it
type operand struct {
	text   string
	quoted bool
}

// formatFunc renders a value for a field of a given declared type
type formatFunc func(g *Grammar, field query.Field, v query.Value) (operand, error)

// formatters is the type -> formatting-rule table
var formatters = map[query.FieldType]formatFunc{
	query.TypeString:  formatString,
	query.TypeInteger: formatInteger,
	query.TypeDecimal: formatDecimal,
	query.TypeBoolean: formatBoolean,
	query.TypeDate:    formatDate,
}

var errNotRepresentable = errors.New("not representable")

func formatString(g *Grammar, field query.Field, v query.Value) (operand, error) {
	switch x := v.(type) {
	case query.StringValue:
		return operand{text: string(x), quoted: true}, nil
	case query.IntegerValue:
		return operand{text: strconv.FormatInt(int64(x), 10), quoted: true}, nil
	case query.DecimalValue:
		return operand{text: x.String(), quoted: true}, nil
	case query.BooleanValue:
		return operand{text: g.booleanFormat(field.Name).Format(bool(x)), quoted: true}, nil
	case query.DateValue:
		return operand{text: g.formatTime(x.Time), quoted: true}, nil
	}
	return operand{}, errNotRepresentable
}

func formatInteger(_ *Grammar, _ query.Field, v query.Value) (operand, error) {
	switch x := v.(type) {
	case query.IntegerValue:
		return operand{text: strconv.FormatInt(int64(x), 10)}, nil
	case query.DecimalValue:
		if x.Equal(x.Truncate(0)) {
			return operand{text: x.Truncate(0).String()}, nil
		}
	case query.StringValue:
		if i, err := strconv.ParseInt(strings.TrimSpace(string(x)), 10, 64); err == nil {
			return operand{text: strconv.FormatInt(i, 10)}, nil
		}
	}
	return operand{}, errNotRepresentable
}

func formatDecimal(_ *Grammar, _ query.Field, v query.Value) (operand, error) {
	switch x := v.(type) {
	case query.IntegerValue:
		return operand{text: strconv.FormatInt(int64(x), 10)}, nil
	case query.DecimalValue:
		return operand{text: x.String()}, nil
	case query.StringValue:
		if d, err := decimal.NewFromString(strings.TrimSpace(string(x))); err == nil {
			return operand{text: d.String()}, nil
		}
	}
	return operand{}, errNotRepresentable
}

func formatBoolean(g *Grammar, field query.Field, v query.Value) (operand, error) {
	f := g.booleanFormat(field.Name)
	switch x := v.(type) {
	case query.BooleanValue:
		return operand{text: f.Format(bool(x))}, nil
	case query.IntegerValue:
		if x == 0 || x == 1 {
			return operand{text: f.Format(x == 1)}, nil
		}
	case query.StringValue:
		if b, err := strconv.ParseBool(strings.TrimSpace(string(x))); err == nil {
			return operand{text: f.Format(b)}, nil
		}
	}
	return operand{}, errNotRepresentable
}

// formatDate renders dates quoted: the platform layout contains a space
func formatDate(g *Grammar, _ query.Field, v query.Value) (operand, error) {
	switch x := v.(type) {
	case query.DateValue:
		return operand{text: g.formatTime(x.Time), quoted: true}, nil
	case query.StringValue:
		s := strings.TrimSpace(string(x))
		for _, layout := range []string{g.DateLayout, time.RFC3339, time.DateOnly} {
			if t, err := time.Parse(layout, s); err == nil {
				return operand{text: g.formatTime(t), quoted: true}, nil
			}
		}
	}
	return operand{}, errNotRepresentable
}

// formatTime renders an instant in the grammar's zone, so equal instants
// render equally whatever offset they were written with
func (g *Grammar) formatTime(t time.Time) string {
	loc := g.Location
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(g.DateLayout)
}

// quote renders text as a single-quoted literal
func quote(text string) string {
	var b strings.Builder
	b.Grow(len(text) + 2)
	b.WriteByte('\'')
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '\'' || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte('\'')
	return b.String()
}
