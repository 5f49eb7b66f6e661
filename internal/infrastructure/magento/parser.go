package magento

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/erp/connector/internal/domain/query"
)

// ErrInvalidFilter indicates a malformed native filter string
var ErrInvalidFilter = errors.New("magento: invalid filter")

// Parser reads native filter strings back into expression trees.
// Field types are inferred from the literals, so parsing then translating
// a translator's output reproduces it.
type Parser struct {
	grammar *Grammar
	orWord  string
	comma   string
	open    string
	close   string
}

// NewParser creates a parser for the given grammar
func NewParser(grammar *Grammar) (*Parser, error) {
	if grammar == nil {
		grammar = DefaultGrammar()
	}
	if err := grammar.Validate(); err != nil {
		return nil, err
	}
	return &Parser{
		grammar: grammar,
		orWord:  strings.TrimSpace(grammar.OrSeparator),
		comma:   strings.TrimSpace(grammar.ClauseSeparator),
		open:    strings.TrimSpace(grammar.OrOpen),
		close:   strings.TrimSpace(grammar.OrClose),
	}, nil
}

// Parse parses a native filter. Blank input means no filter and yields nil.
func (p *Parser) Parse(filter string) (query.Expression, error) {
	if strings.TrimSpace(filter) == "" {
		return nil, nil
	}
	s := &scanner{p: p, src: filter}
	items, _, err := s.sequence(false)
	if err != nil {
		return nil, err
	}
	s.skipSpace()
	if !s.done() {
		return nil, s.errorf("unexpected %q", s.rest())
	}
	return conjunction(items), nil
}

type separator int

const (
	sepAnd separator = iota
	sepOr
)

// scanner is the cursor of a single Parse call
type scanner struct {
	p   *Parser
	src string
	pos int
}

func (s *scanner) done() bool   { return s.pos >= len(s.src) }
func (s *scanner) rest() string { return s.src[s.pos:] }

func (s *scanner) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: at offset %d: %s", ErrInvalidFilter, s.pos, fmt.Sprintf(format, args...))
}

func (s *scanner) skipSpace() {
	for !s.done() && unicode.IsSpace(rune(s.src[s.pos])) {
		s.pos++
	}
}

// accept consumes tok if the input continues with it
func (s *scanner) accept(tok string) bool {
	if tok != "" && strings.HasPrefix(s.rest(), tok) {
		s.pos += len(tok)
		return true
	}
	return false
}

// acceptWord consumes a word-like separator only when it ends at a boundary
func (s *scanner) acceptWord(word string) bool {
	if !strings.HasPrefix(s.rest(), word) {
		return false
	}
	end := s.pos + len(word)
	if isWord(word) && end < len(s.src) && isIdentChar(s.src[end]) {
		return false
	}
	s.pos = end
	return true
}

// sequence parses members joined by clause or OR separators.
// Inside a group it stops before the closing bracket.
func (s *scanner) sequence(inGroup bool) ([]query.Expression, []separator, error) {
	var items []query.Expression
	var seps []separator
	for {
		s.skipSpace()
		item, err := s.member()
		if err != nil {
			return nil, nil, err
		}
		items = append(items, item)

		s.skipSpace()
		switch {
		case s.accept(s.p.comma):
			seps = append(seps, sepAnd)
		case inGroup && s.acceptWord(s.p.orWord):
			seps = append(seps, sepOr)
		default:
			return items, seps, nil
		}
	}
}

// member parses a clause or a bracketed group
func (s *scanner) member() (query.Expression, error) {
	if !s.accept(s.p.open) {
		return s.clause()
	}
	items, seps, err := s.sequence(true)
	if err != nil {
		return nil, err
	}
	s.skipSpace()
	if !s.accept(s.p.close) {
		return nil, s.errorf("missing %q", s.p.close)
	}
	if len(items) < 2 {
		return nil, s.errorf("group with a single member")
	}
	kind := seps[0]
	for _, sep := range seps[1:] {
		if sep != kind {
			return nil, s.errorf("group mixes %q and %q", s.p.comma, s.p.orWord)
		}
	}
	if kind == sepOr {
		return query.NewOr(items...), nil
	}
	return query.NewAnd(items...), nil
}

// clause parses mnemonic(field[,literal...])
func (s *scanner) clause() (query.Expression, error) {
	start := s.pos
	mnemonic := s.ident()
	if mnemonic == "" {
		return nil, s.errorf("expected a clause")
	}
	op, ok := s.p.grammar.operator(mnemonic)
	if !ok {
		return nil, &query.TranslationError{Err: query.ErrUnsupportedOperator, Operator: mnemonic,
			Detail: fmt.Sprintf("at offset %d", start)}
	}
	s.skipSpace()
	if !s.accept("(") {
		return nil, s.errorf("expected '(' after %s", mnemonic)
	}
	s.skipSpace()
	field := s.ident()
	if field == "" {
		return nil, s.errorf("expected a field name in %s", mnemonic)
	}

	var values []query.Value
	for {
		s.skipSpace()
		if s.accept(")") {
			break
		}
		if !s.accept(s.p.grammar.ArgumentSeparator) {
			return nil, s.errorf("expected %q or ')' in %s", s.p.grammar.ArgumentSeparator, mnemonic)
		}
		s.skipSpace()
		v, err := s.literal()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}

	return comparison(op, field, values), nil
}

func (s *scanner) ident() string {
	start := s.pos
	for !s.done() && isIdentChar(s.src[s.pos]) {
		s.pos++
	}
	return s.src[start:s.pos]
}

// literal parses a quoted string, a number, a keyword or a bare word
func (s *scanner) literal() (query.Value, error) {
	if s.accept("'") {
		var b strings.Builder
		for !s.done() {
			c := s.src[s.pos]
			s.pos++
			switch c {
			case '\\':
				if s.done() {
					return nil, s.errorf("dangling escape")
				}
				b.WriteByte(s.src[s.pos])
				s.pos++
			case '\'':
				return query.String(b.String()), nil
			default:
				b.WriteByte(c)
			}
		}
		return nil, s.errorf("unterminated string")
	}

	start := s.pos
	for !s.done() {
		c := s.src[s.pos]
		if c == ')' || strings.HasPrefix(s.rest(), s.p.grammar.ArgumentSeparator) {
			break
		}
		s.pos++
	}
	word := strings.TrimSpace(s.src[start:s.pos])
	if word == "" {
		return nil, s.errorf("empty value")
	}
	switch word {
	case s.p.grammar.NullLiteral:
		return query.Null(), nil
	case "true":
		return query.Bool(true), nil
	case "false":
		return query.Bool(false), nil
	}
	if i, err := strconv.ParseInt(word, 10, 64); err == nil {
		return query.Integer(i), nil
	}
	if d, err := decimal.NewFromString(word); err == nil && strings.ContainsAny(word, ".") {
		return query.Decimal(d), nil
	}
	return query.String(word), nil
}

// comparison builds a leaf, inferring the field type from its literals
func comparison(op query.Operator, field string, values []query.Value) *query.Comparison {
	var operands []query.Value
	for _, v := range values {
		if _, ok := v.(query.NullValue); !ok {
			operands = append(operands, v)
		}
	}

	f := query.NewField(field, inferType(operands))

	var value query.Value
	switch {
	case op.Arity() == query.ArityNone || len(operands) == 0:
		value = query.Null()
	case op.Arity() == query.ArityOne && len(operands) == 1:
		value = operands[0]
	default:
		value = query.List(operands...)
	}
	return query.Compare(f, op, value)
}

// inferType picks the narrowest type holding every operand.
// Integers mixed with decimals widen to decimal; anything else mixed is a string.
func inferType(operands []query.Value) query.FieldType {
	if len(operands) == 0 {
		return query.TypeString
	}
	t := typeOf(operands[0])
	for _, v := range operands[1:] {
		next := typeOf(v)
		switch {
		case next == t:
		case isNumeric(t) && isNumeric(next):
			t = query.TypeDecimal
		default:
			return query.TypeString
		}
	}
	return t
}

func typeOf(v query.Value) query.FieldType {
	switch v.(type) {
	case query.IntegerValue:
		return query.TypeInteger
	case query.DecimalValue:
		return query.TypeDecimal
	case query.BooleanValue:
		return query.TypeBoolean
	default:
		return query.TypeString
	}
}

func isNumeric(t query.FieldType) bool {
	return t == query.TypeInteger || t == query.TypeDecimal
}

// conjunction folds top-level items into a single expression
func conjunction(items []query.Expression) query.Expression {
	var flat []query.Expression
	for _, item := range items {
		if and, ok := item.(*query.And); ok {
			flat = append(flat, and.Children...)
			continue
		}
		flat = append(flat, item)
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return query.NewAnd(flat...)
}

func isIdentChar(c byte) bool {
	return c == '_' || c == '.' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isWord(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isIdentChar(s[i]) {
			return false
		}
	}
	return s != ""
}
