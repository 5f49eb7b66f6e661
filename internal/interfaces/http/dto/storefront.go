package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/erp/connector/internal/domain/integration"
)

// OrderResponse is a storefront order
type OrderResponse struct {
	IncrementID   string          `json:"increment_id"`
	OrderID       string          `json:"order_id"`
	CustomerID    string          `json:"customer_id,omitempty"`
	CustomerEmail string          `json:"customer_email,omitempty"`
	Status        string          `json:"status"`
	State         string          `json:"state"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	Currency      string          `json:"currency,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     *time.Time      `json:"updated_at,omitempty"`
}

// OrderItemResponse is an order line
type OrderItemResponse struct {
	ItemID     string          `json:"item_id"`
	ProductID  string          `json:"product_id"`
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	QtyOrdered decimal.Decimal `json:"qty_ordered"`
	Price      decimal.Decimal `json:"price"`
}

// OrderInfoResponse is an order with its lines
type OrderInfoResponse struct {
	OrderResponse
	Items []OrderItemResponse `json:"items"`
}

// ShipmentResponse is an order shipment
type ShipmentResponse struct {
	IncrementID string          `json:"increment_id"`
	ShipmentID  string          `json:"shipment_id"`
	OrderID     string          `json:"order_id"`
	TotalQty    decimal.Decimal `json:"total_qty"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	Tracks      []TrackResponse `json:"tracks,omitempty"`
}

// TrackResponse is a shipment tracking number
type TrackResponse struct {
	TrackID     string `json:"track_id"`
	CarrierCode string `json:"carrier_code"`
	Title       string `json:"title"`
	Number      string `json:"number"`
}

// InvoiceResponse is an order invoice
type InvoiceResponse struct {
	IncrementID string          `json:"increment_id"`
	InvoiceID   string          `json:"invoice_id"`
	OrderID     string          `json:"order_id"`
	State       string          `json:"state"`
	GrandTotal  decimal.Decimal `json:"grand_total"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CarrierResponse is a shipping carrier
type CarrierResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// StockItemResponse is the inventory level of a product
type StockItemResponse struct {
	ProductID string          `json:"product_id"`
	SKU       string          `json:"sku"`
	Qty       decimal.Decimal `json:"qty"`
	InStock   bool            `json:"in_stock"`
}

// QueryResponse holds the rows of a storefront query
type QueryResponse struct {
	Entity    string             `json:"entity"`
	Filter    string             `json:"filter"`
	Total     int                `json:"total"`
	Orders    []OrderResponse    `json:"orders,omitempty"`
	Shipments []ShipmentResponse `json:"shipments,omitempty"`
	Invoices  []InvoiceResponse  `json:"invoices,omitempty"`
}

// OrderCommentRequest is the body of POST /storefront/orders/:id/comments
type OrderCommentRequest struct {
	Status  string `json:"status" binding:"required"`
	Comment string `json:"comment" binding:"max=4096"`
	Notify  bool   `json:"notify"`
}

// StockItemsRequest is the query of GET /storefront/stock-items
type StockItemsRequest struct {
	IDs []string `form:"id" binding:"required,min=1,max=100,dive,required"`
}

// NewOrderResponse converts a domain order
func NewOrderResponse(o integration.Order) OrderResponse {
	resp := OrderResponse{
		IncrementID:   o.IncrementID,
		OrderID:       o.OrderID,
		CustomerID:    o.CustomerID,
		CustomerEmail: o.CustomerEmail,
		Status:        o.Status,
		State:         o.State,
		GrandTotal:    o.GrandTotal,
		Currency:      o.Currency,
		CreatedAt:     o.CreatedAt,
	}
	if !o.UpdatedAt.IsZero() {
		updated := o.UpdatedAt
		resp.UpdatedAt = &updated
	}
	return resp
}

// NewOrderInfoResponse converts a domain order with its lines
func NewOrderInfoResponse(o *integration.OrderInfo) OrderInfoResponse {
	resp := OrderInfoResponse{
		OrderResponse: NewOrderResponse(o.Order),
		Items:         make([]OrderItemResponse, 0, len(o.Items)),
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ItemID:     item.ItemID,
			ProductID:  item.ProductID,
			SKU:        item.SKU,
			Name:       item.Name,
			QtyOrdered: item.QtyOrdered,
			Price:      item.Price,
		})
	}
	return resp
}

// NewShipmentResponse converts a domain shipment
func NewShipmentResponse(s integration.Shipment) ShipmentResponse {
	resp := ShipmentResponse{
		IncrementID: s.IncrementID,
		ShipmentID:  s.ShipmentID,
		OrderID:     s.OrderID,
		TotalQty:    s.TotalQty,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
	}
	for _, t := range s.Tracks {
		resp.Tracks = append(resp.Tracks, TrackResponse(t))
	}
	return resp
}

// NewInvoiceResponse converts a domain invoice
func NewInvoiceResponse(i integration.Invoice) InvoiceResponse {
	return InvoiceResponse(i)
}

// NewQueryResponse converts a query result
func NewQueryResponse(r *integration.QueryResult) QueryResponse {
	resp := QueryResponse{
		Entity: r.Entity.String(),
		Filter: r.Filter,
		Total:  r.Total,
	}
	for _, o := range r.Orders {
		resp.Orders = append(resp.Orders, NewOrderResponse(o))
	}
	for _, s := range r.Shipments {
		resp.Shipments = append(resp.Shipments, NewShipmentResponse(s))
	}
	for _, i := range r.Invoices {
		resp.Invoices = append(resp.Invoices, NewInvoiceResponse(i))
	}
	return resp
}

// NewCarrierResponses converts domain carriers
func NewCarrierResponses(carriers []integration.Carrier) []CarrierResponse {
	out := make([]CarrierResponse, 0, len(carriers))
	for _, c := range carriers {
		out = append(out, CarrierResponse(c))
	}
	return out
}

// NewStockItemResponses converts domain stock items
func NewStockItemResponses(items []integration.StockItem) []StockItemResponse {
	out := make([]StockItemResponse, 0, len(items))
	for _, s := range items {
		out = append(out, StockItemResponse(s))
	}
	return out
}
