package dto

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/connector/internal/domain/integration"
	"github.com/erp/connector/internal/domain/query"
)

func raw(s string) json.RawMessage {
	return json.RawMessage(s)
}

func comparisonNode(field, op string, value string) *ExpressionNode {
	return &ExpressionNode{Type: NodeComparison, Field: field, Operator: op, Value: raw(value)}
}

func TestExpressionNode_ToExpression(t *testing.T) {
	createdAt := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		entity integration.EntityType
		node   *ExpressionNode
		want   query.Expression
	}{
		{
			name:   "field type from metadata",
			entity: integration.EntityOrders,
			node:   comparisonNode("customer_id", "equals", "500"),
			want: query.Compare(query.NewField("customer_id", query.TypeInteger),
				query.Equals, query.Integer(500)),
		},
		{
			name: "unknown field defaults to string",
			node: comparisonNode("name", "equals", "500"),
			want: query.Compare(query.NewField("name", query.TypeString),
				query.Equals, query.String("500")),
		},
		{
			name: "explicit field type with values",
			node: &ExpressionNode{
				Type: NodeComparison, Field: "qty", FieldType: "decimal", Operator: "between",
				Values: []json.RawMessage{raw("10"), raw(`"20.5"`)},
			},
			want: query.Compare(query.NewField("qty", query.TypeDecimal), query.Between,
				query.List(query.Decimal(decimal.RequireFromString("10")), query.Decimal(decimal.RequireFromString("20.5")))),
		},
		{
			name:   "date operand",
			entity: integration.EntityInvoices,
			node:   comparisonNode("created_at", "greater-than", `"2024-03-01 10:30:00"`),
			want: query.Compare(query.NewField("created_at", query.TypeDate),
				query.GreaterThan, query.Date(createdAt)),
		},
		{
			name:   "rfc3339 date operand",
			entity: integration.EntityInvoices,
			node:   comparisonNode("created_at", "less-than", `"2024-03-01T10:30:00Z"`),
			want: query.Compare(query.NewField("created_at", query.TypeDate),
				query.LessThan, query.Date(createdAt)),
		},
		{
			name:   "boolean operand",
			entity: integration.EntityShipments,
			node:   comparisonNode("is_active", "equals", "true"),
			want: query.Compare(query.NewField("is_active", query.TypeBoolean),
				query.Equals, query.Bool(true)),
		},
		{
			name:   "null check ignores value",
			entity: integration.EntityOrders,
			node:   &ExpressionNode{Type: NodeComparison, Field: "customer_id", Operator: "is-null"},
			want: query.Compare(query.NewField("customer_id", query.TypeInteger),
				query.IsNull, query.Null()),
		},
		{
			name:   "or of and",
			entity: integration.EntityOrders,
			node: &ExpressionNode{Type: NodeOr, Children: []*ExpressionNode{
				comparisonNode("status", "equals", `"pending"`),
				{Type: NodeAnd, Children: []*ExpressionNode{
					comparisonNode("status", "equals", `"holded"`),
					comparisonNode("grand_total", "greater-than", "100"),
				}},
			}},
			want: query.NewOr(
				query.Compare(query.NewField("status", query.TypeString), query.Equals, query.String("pending")),
				query.NewAnd(
					query.Compare(query.NewField("status", query.TypeString), query.Equals, query.String("holded")),
					query.Compare(query.NewField("grand_total", query.TypeDecimal), query.GreaterThan,
						query.Decimal(decimal.RequireFromString("100"))),
				),
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.node.ToExpression(tt.entity)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpressionNode_ToExpression_Errors(t *testing.T) {
	deep := comparisonNode("name", "equals", `"x"`)
	for i := 0; i < MaxExpressionDepth; i++ {
		deep = &ExpressionNode{Type: NodeAnd, Children: []*ExpressionNode{deep, deep}}
	}

	tests := []struct {
		name    string
		entity  integration.EntityType
		node    *ExpressionNode
		wantErr error
	}{
		{"unknown operator", "", comparisonNode("name", "approx", `"x"`), query.ErrUnsupportedOperator},
		{"integer mismatch", integration.EntityOrders, comparisonNode("customer_id", "equals", `"abc"`), query.ErrTypeMismatch},
		{"bad date", integration.EntityOrders, comparisonNode("created_at", "equals", `"yesterday"`), query.ErrTypeMismatch},
		{"bad boolean", integration.EntityShipments, comparisonNode("is_active", "equals", `"maybe"`), query.ErrTypeMismatch},
		{"missing value", "", &ExpressionNode{Type: NodeComparison, Field: "name", Operator: "equals"}, query.ErrArityMismatch},
		{"unknown field type", "", &ExpressionNode{Type: NodeComparison, Field: "name", FieldType: "blob", Operator: "equals", Value: raw("1")}, query.ErrUnknownFieldType},
		{"unknown node type", "", &ExpressionNode{Type: "xor"}, ErrInvalidNode},
		{"nil child", "", &ExpressionNode{Type: NodeAnd, Children: []*ExpressionNode{nil}}, query.ErrNilExpression},
		{"too deep", "", deep, ErrExpressionTooDeep},
		{"array for a string field", integration.EntityOrders, comparisonNode("status", "in", `["pending","holded"]`), query.ErrTypeMismatch},
		{"object for a string field", "", comparisonNode("name", "equals", `{"a":1}`), query.ErrTypeMismatch},
		{"array inside values", "", &ExpressionNode{Type: NodeComparison, Field: "name", Operator: "in", Values: []json.RawMessage{raw(`"a"`), raw(`["b"]`)}}, query.ErrTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.node.ToExpression(tt.entity)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExpressionNode_ToExpression_StringOperands(t *testing.T) {
	status := query.NewField("status", query.TypeString)

	tests := []struct {
		name  string
		value string
		want  query.Value
	}{
		{"string", `"pending"`, query.String("pending")},
		{"integer keeps its text", `42`, query.String("42")},
		{"decimal keeps its text", `1.50`, query.String("1.50")},
		{"boolean", `false`, query.String("false")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := comparisonNode("status", "equals", tt.value).ToExpression(integration.EntityOrders)
			require.NoError(t, err)
			assert.Equal(t, query.Compare(status, query.Equals, tt.want), got)
		})
	}

	t.Run("list goes in values", func(t *testing.T) {
		node := &ExpressionNode{
			Type: NodeComparison, Field: "status", Operator: "in",
			Values: []json.RawMessage{raw(`"pending"`), raw(`"holded"`)},
		}
		got, err := node.ToExpression(integration.EntityOrders)
		require.NoError(t, err)
		assert.Equal(t, query.Compare(status, query.In, query.List(query.String("pending"), query.String("holded"))), got)
	})
}

func TestExpressionNode_DateOffsets(t *testing.T) {
	plusTwo, err := comparisonNode("created_at", "greater-than", `"2024-03-01T10:30:00+02:00"`).ToExpression(integration.EntityOrders)
	require.NoError(t, err)
	utc, err := comparisonNode("created_at", "greater-than", `"2024-03-01T08:30:00Z"`).ToExpression(integration.EntityOrders)
	require.NoError(t, err)

	a := plusTwo.(*query.Comparison).Value.(query.DateValue)
	b := utc.(*query.Comparison).Value.(query.DateValue)
	assert.True(t, a.Equal(b.Time))

	assert.JSONEq(t, `"2024-03-01 08:30:00"`, string(FromExpression(plusTwo).Value))
}

func TestFromExpression(t *testing.T) {
	expr := query.NewAnd(
		query.Compare(query.NewField("name", query.TypeString), query.Like, query.String("mar%")),
		query.Compare(query.NewField("age", query.TypeInteger), query.LessThan, query.Integer(30)),
		query.Compare(query.NewField("grand_total", query.TypeDecimal), query.Between,
			query.List(query.Decimal(decimal.RequireFromString("10")), query.Decimal(decimal.RequireFromString("20.5")))),
		query.NewOr(
			query.Compare(query.NewField("is_active", query.TypeBoolean), query.Equals, query.Bool(false)),
			query.Compare(query.NewField("customer_id", query.TypeInteger), query.IsNull, query.Null()),
		),
		query.Compare(query.NewField("created_at", query.TypeDate), query.GreaterOrEqual,
			query.Date(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))),
	)

	node := FromExpression(expr)
	require.NotNil(t, node)
	assert.Equal(t, NodeAnd, node.Type)
	require.Len(t, node.Children, 5)
	assert.Equal(t, "less-than", node.Children[1].Operator)
	assert.Equal(t, "integer", node.Children[1].FieldType)
	assert.JSONEq(t, "30", string(node.Children[1].Value))
	assert.Len(t, node.Children[2].Values, 2)
	assert.Empty(t, node.Children[3].Children[1].Value)

	back, err := node.ToExpression("")
	require.NoError(t, err)
	assert.Equal(t, expr, back)

	assert.Nil(t, FromExpression(nil))
}

func TestTranslateRequest_ToQuery(t *testing.T) {
	req := TranslateRequest{
		Entity: "orders",
		Filter: comparisonNode("customer_id", "equals", "500"),
		Sort:   []SortRequest{{Field: "created_at", Direction: "desc"}, {Field: "increment_id"}},
		Page:   &PageRequest{Offset: 10, Limit: 5},
	}

	q, err := req.ToQuery()
	require.NoError(t, err)
	assert.Equal(t, "orders", q.Entity)
	assert.Equal(t, query.Compare(query.NewField("customer_id", query.TypeInteger), query.Equals, query.Integer(500)), q.Filter)
	assert.Equal(t, []query.Sort{
		{Field: "created_at", Direction: query.SortDescending},
		{Field: "increment_id", Direction: query.SortAscending},
	}, q.Sort)
	assert.Equal(t, &query.Page{Offset: 10, Limit: 5}, q.Page)

	empty, err := (&TranslateRequest{}).ToQuery()
	require.NoError(t, err)
	assert.Nil(t, empty.Filter)
}

func TestTranslateRequest_Binding(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"entity":"orders","filter":{"type":"comparison","field":"status","operator":"equals","value":"pending"}}`, false},
		{"no filter", `{"entity":"orders"}`, false},
		{"unknown entity", `{"entity":"customers"}`, true},
		{"comparison without field", `{"filter":{"type":"comparison","operator":"equals","value":1}}`, true},
		{"bad node type", `{"filter":{"type":"xor"}}`, true},
		{"nested invalid child", `{"filter":{"type":"and","children":[{"type":"comparison","field":"a"}]}}`, true},
		{"field with clause separator", `{"filter":{"type":"comparison","field":"status,'x'), neq(state","operator":"equals","value":"y"}}`, true},
		{"field with space", `{"filter":{"type":"comparison","field":"bad name","operator":"equals","value":"y"}}`, true},
		{"field with bracket", `{"filter":{"type":"comparison","field":"a)","operator":"equals","value":"y"}}`, true},
		{"dotted field", `{"filter":{"type":"comparison","field":"order.status","operator":"equals","value":"y"}}`, false},
		{"bad sort direction", `{"sort":[{"field":"a","direction":"up"}]}`, true},
		{"limit too large", `{"page":{"offset":0,"limit":5000}}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req TranslateRequest
			require.NoError(t, json.NewDecoder(strings.NewReader(tt.body)).Decode(&req))
			err := binding.Validator.ValidateStruct(&req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewEntityMetadataResponse(t *testing.T) {
	resp := NewEntityMetadataResponse(integration.EntityOrders, []query.Field{
		query.NewField("customer_id", query.TypeInteger),
		query.NewField("created_at", query.TypeDate),
	})

	assert.Equal(t, "orders", resp.Entity)
	assert.Equal(t, []FieldResponse{{Name: "customer_id", Type: "integer"}, {Name: "created_at", Type: "date"}}, resp.Fields)
}
