package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/erp/connector/internal/domain/integration"
	"github.com/erp/connector/internal/domain/query"
	"github.com/erp/connector/internal/infrastructure/magento"
)

// MaxExpressionDepth bounds the nesting of an expression tree in a request
const MaxExpressionDepth = 16

// Expression node types
const (
	NodeComparison = "comparison"
	NodeAnd        = "and"
	NodeOr         = "or"
)

var (
	// ErrInvalidNode indicates an expression node of unknown type
	ErrInvalidNode = errors.New("dto: invalid expression node")
	// ErrExpressionTooDeep indicates an expression nested beyond MaxExpressionDepth
	ErrExpressionTooDeep = errors.New("dto: expression nesting too deep")
)

// dateLayouts are the accepted layouts of date operands, tried in order
var dateLayouts = []string{time.RFC3339, magento.DefaultDateLayout, "2006-01-02"}

// ExpressionNode is the JSON form of a query expression.
// Comparisons carry a field, an operator and either value or values;
// and/or nodes carry children.
type ExpressionNode struct {
	Type      string            `json:"type" binding:"required,oneof=comparison and or"`
	Field     string            `json:"field,omitempty" binding:"required_if=Type comparison,max=255,excludesall=0x2C0x7C ()'\\\""`
	FieldType string            `json:"field_type,omitempty"`
	Operator  string            `json:"operator,omitempty" binding:"required_if=Type comparison"`
	Value     json.RawMessage   `json:"value,omitempty"`
	Values    []json.RawMessage `json:"values,omitempty"`
	Children  []*ExpressionNode `json:"children,omitempty" binding:"omitempty,dive,required"`
}

// ToExpression converts the node into a query expression.
// Fields without field_type take their type from the entity's metadata,
// and default to string.
func (n *ExpressionNode) ToExpression(entity integration.EntityType) (query.Expression, error) {
	return n.toExpression(entity, 1)
}

func (n *ExpressionNode) toExpression(entity integration.EntityType, depth int) (query.Expression, error) {
	if n == nil {
		return nil, &query.TranslationError{Err: query.ErrNilExpression}
	}
	if depth > MaxExpressionDepth {
		return nil, fmt.Errorf("%w (max %d)", ErrExpressionTooDeep, MaxExpressionDepth)
	}

	switch strings.ToLower(n.Type) {
	case NodeComparison:
		return n.comparison(entity)
	case NodeAnd, NodeOr:
		children := make([]query.Expression, 0, len(n.Children))
		for _, child := range n.Children {
			expr, err := child.toExpression(entity, depth+1)
			if err != nil {
				return nil, err
			}
			children = append(children, expr)
		}
		if strings.EqualFold(n.Type, NodeAnd) {
			return query.NewAnd(children...), nil
		}
		return query.NewOr(children...), nil
	default:
		return nil, fmt.Errorf("%w: type %q", ErrInvalidNode, n.Type)
	}
}

func (n *ExpressionNode) comparison(entity integration.EntityType) (query.Expression, error) {
	op, err := query.ParseOperator(strings.ToLower(strings.TrimSpace(n.Operator)))
	if err != nil {
		return nil, err
	}
	field, err := n.field(entity)
	if err != nil {
		return nil, err
	}
	value, err := n.value(field, op)
	if err != nil {
		return nil, err
	}
	return query.Compare(field, op, value), nil
}

func (n *ExpressionNode) field(entity integration.EntityType) (query.Field, error) {
	if n.FieldType != "" {
		t, err := query.ParseFieldType(n.FieldType)
		if err != nil {
			return query.Field{}, err
		}
		return query.NewField(n.Field, t), nil
	}
	if f, ok := magento.LookupField(entity, n.Field); ok {
		return f, nil
	}
	return query.NewField(n.Field, query.TypeString), nil
}

func (n *ExpressionNode) value(field query.Field, op query.Operator) (query.Value, error) {
	if op.Arity() == query.ArityNone {
		return query.Null(), nil
	}
	if len(n.Values) > 0 {
		values := make([]query.Value, 0, len(n.Values))
		for _, raw := range n.Values {
			v, err := decodeValue(field, raw)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		return query.List(values...), nil
	}
	if len(n.Value) == 0 {
		return nil, &query.TranslationError{
			Err:      query.ErrArityMismatch,
			Field:    field.Name,
			Operator: op.String(),
			Detail:   "missing value",
		}
	}
	return decodeValue(field, n.Value)
}

// decodeValue reads a JSON operand as a literal of the field's type
func decodeValue(field query.Field, raw json.RawMessage) (query.Value, error) {
	raw = bytes.TrimSpace(raw)
	if bytes.Equal(raw, []byte("null")) {
		return query.Null(), nil
	}

	switch field.Type {
	case query.TypeString:
		return decodeText(field, raw)
	case query.TypeInteger:
		var i int64
		if err := json.Unmarshal(raw, &i); err != nil {
			return nil, mismatch(field, raw)
		}
		return query.Integer(i), nil
	case query.TypeDecimal:
		var d decimal.Decimal
		if err := d.UnmarshalJSON(raw); err != nil {
			return nil, mismatch(field, raw)
		}
		return query.Decimal(d), nil
	case query.TypeBoolean:
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, mismatch(field, raw)
		}
		return query.Bool(b), nil
	case query.TypeDate:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, mismatch(field, raw)
		}
		t, ok := parseDate(s)
		if !ok {
			return nil, mismatch(field, raw)
		}
		return query.Date(t), nil
	default:
		return nil, &query.TranslationError{Err: query.ErrUnknownFieldType, Field: field.Name}
	}
}

// decodeText reads a string operand. Numbers and booleans keep their JSON
// text; arrays and objects are rejected, lists go in "values".
func decodeText(field query.Field, raw json.RawMessage) (query.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, mismatch(field, raw)
	}
	switch x := v.(type) {
	case string:
		return query.String(x), nil
	case json.Number:
		return query.String(x.String()), nil
	case bool:
		return query.String(strconv.FormatBool(x)), nil
	default:
		return nil, mismatch(field, raw)
	}
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func mismatch(field query.Field, raw json.RawMessage) error {
	return &query.TranslationError{
		Err:    query.ErrTypeMismatch,
		Field:  field.Name,
		Detail: fmt.Sprintf("%s field got %s", field.Type, raw),
	}
}

// FromExpression converts a query expression into its JSON form.
// It returns nil for a nil expression.
func FromExpression(expr query.Expression) *ExpressionNode {
	switch e := expr.(type) {
	case *query.Comparison:
		node := &ExpressionNode{
			Type:      NodeComparison,
			Field:     e.Field.Name,
			FieldType: e.Field.Type.String(),
			Operator:  e.Operator.String(),
		}
		if e.Operator.Arity() == query.ArityNone {
			return node
		}
		if list, ok := e.Value.(query.ListValue); ok {
			for _, v := range list {
				node.Values = append(node.Values, encodeValue(v))
			}
			return node
		}
		node.Value = encodeValue(e.Value)
		return node
	case *query.And:
		return group(NodeAnd, e.Children)
	case *query.Or:
		return group(NodeOr, e.Children)
	default:
		return nil
	}
}

func group(kind string, children []query.Expression) *ExpressionNode {
	node := &ExpressionNode{Type: kind, Children: make([]*ExpressionNode, 0, len(children))}
	for _, child := range children {
		node.Children = append(node.Children, FromExpression(child))
	}
	return node
}

func encodeValue(v query.Value) json.RawMessage {
	var out any
	switch x := v.(type) {
	case query.StringValue:
		out = string(x)
	case query.IntegerValue:
		out = int64(x)
	case query.DecimalValue:
		return json.RawMessage(x.String())
	case query.BooleanValue:
		out = bool(x)
	case query.DateValue:
		out = x.UTC().Format(magento.DefaultDateLayout)
	default:
		return json.RawMessage("null")
	}
	b, err := json.Marshal(out)
	if err != nil {
		return json.RawMessage("null")
	}
	return b
}
