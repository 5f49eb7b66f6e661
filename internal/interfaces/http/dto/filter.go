package dto

import (
	"github.com/erp/connector/internal/domain/integration"
	"github.com/erp/connector/internal/domain/query"
	"github.com/erp/connector/internal/infrastructure/magento"
)

// TranslateRequest is the body of POST /filters/translate
type TranslateRequest struct {
	Entity string          `json:"entity" binding:"omitempty,oneof=orders shipments invoices"`
	Filter *ExpressionNode `json:"filter"`
	Sort   []SortRequest   `json:"sort,omitempty" binding:"omitempty,dive"`
	Page   *PageRequest    `json:"page,omitempty"`
}

// SortRequest is a sort key of a query
type SortRequest struct {
	Field     string `json:"field" binding:"required"`
	Direction string `json:"direction" binding:"omitempty,oneof=asc desc"`
}

// PageRequest is the requested result window
type PageRequest struct {
	Offset int `json:"offset" binding:"min=0"`
	Limit  int `json:"limit" binding:"min=0,max=1000"`
}

// ToQuery converts the request into a query
func (r *TranslateRequest) ToQuery() (query.Query, error) {
	q := query.Query{Entity: r.Entity}
	if r.Filter != nil {
		expr, err := r.Filter.ToExpression(integration.EntityType(r.Entity))
		if err != nil {
			return query.Query{}, err
		}
		q.Filter = expr
	}
	for _, s := range r.Sort {
		dir := query.SortAscending
		if s.Direction == string(query.SortDescending) {
			dir = query.SortDescending
		}
		q.Sort = append(q.Sort, query.Sort{Field: s.Field, Direction: dir})
	}
	if r.Page != nil {
		q.Page = &query.Page{Offset: r.Page.Offset, Limit: r.Page.Limit}
	}
	return q, nil
}

// TranslateResponse is the native form of a translated query.
// Filters is set only when the gateway's list filters can carry the query.
type TranslateResponse struct {
	Entity            string           `json:"entity,omitempty"`
	Filter            string           `json:"filter"`
	Filters           *magento.Filters `json:"filters,omitempty"`
	GatewayCompatible bool             `json:"gateway_compatible"`
}

// ParseRequest is the body of POST /filters/parse
type ParseRequest struct {
	Filter string `json:"filter" binding:"max=8192"`
}

// ParseResponse is the structured form of a native filter
type ParseResponse struct {
	// Filter is the input re-rendered in canonical form
	Filter            string           `json:"filter"`
	Expression        *ExpressionNode  `json:"expression,omitempty"`
	Filters           *magento.Filters `json:"filters,omitempty"`
	GatewayCompatible bool             `json:"gateway_compatible"`
}

// FieldResponse is a queryable field of an entity
type FieldResponse struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// EntityMetadataResponse lists the queryable fields of an entity
type EntityMetadataResponse struct {
	Entity string          `json:"entity"`
	Fields []FieldResponse `json:"fields"`
}

// MetadataResponse lists the queryable entities
type MetadataResponse struct {
	Entities []string `json:"entities"`
}

// NewEntityMetadataResponse converts entity fields into a response
func NewEntityMetadataResponse(entity integration.EntityType, fields []query.Field) EntityMetadataResponse {
	resp := EntityMetadataResponse{
		Entity: entity.String(),
		Fields: make([]FieldResponse, 0, len(fields)),
	}
	for _, f := range fields {
		resp.Fields = append(resp.Fields, FieldResponse{Name: f.Name, Type: f.Type.String()})
	}
	return resp
}
