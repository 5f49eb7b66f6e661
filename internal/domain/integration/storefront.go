package integration

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/erp/connector/internal/domain/query"
)

// ---------------------------------------------------------------------------
// Storefront Errors
// ---------------------------------------------------------------------------

var (
	// Gateway errors
	ErrGatewayNotConfigured = errors.New("integration: storefront gateway not configured")
	ErrGatewayRequestFailed = errors.New("integration: storefront request failed")
	ErrGatewayInvalidReply  = errors.New("integration: invalid storefront response")
	ErrSessionUnavailable   = errors.New("integration: storefront session unavailable")

	// Input errors
	ErrInvalidOrderID    = errors.New("integration: order ID is required")
	ErrInvalidShipmentID = errors.New("integration: shipment ID is required")
	ErrInvalidInvoiceID  = errors.New("integration: invoice ID is required")
	ErrInvalidQuoteID    = errors.New("integration: shopping cart quote ID is required")
	ErrInvalidItemQty    = errors.New("integration: invalid item quantity")
	ErrNoStockItemIDs    = errors.New("integration: at least one product ID or SKU is required")
	ErrUnknownEntity     = errors.New("integration: unknown entity type")

	// Result errors
	ErrOrderNotFound    = errors.New("integration: order not found")
	ErrShipmentNotFound = errors.New("integration: shipment not found")
	ErrInvoiceNotFound  = errors.New("integration: invoice not found")
	ErrOperationRefused = errors.New("integration: storefront refused the operation")
)

// ---------------------------------------------------------------------------
// EntityType represents a queryable storefront listing
// ---------------------------------------------------------------------------

// EntityType represents a queryable storefront listing
type EntityType string

const (
	// EntityOrders is the sales order listing
	EntityOrders EntityType = "orders"
	// EntityShipments is the shipment listing
	EntityShipments EntityType = "shipments"
	// EntityInvoices is the invoice listing
	EntityInvoices EntityType = "invoices"
	// EntityStockItems is the inventory stock item listing
	EntityStockItems EntityType = "stock_items"
)

// IsValid returns true if the entity type is valid
func (e EntityType) IsValid() bool {
	switch e {
	case EntityOrders, EntityShipments, EntityInvoices, EntityStockItems:
		return true
	default:
		return false
	}
}

// IsFilterable returns true if the listing accepts a native filter
func (e EntityType) IsFilterable() bool {
	switch e {
	case EntityOrders, EntityShipments, EntityInvoices:
		return true
	default:
		return false
	}
}

// String returns the string representation of EntityType
func (e EntityType) String() string {
	return string(e)
}

// ParseEntityType resolves an entity type name (case-insensitive)
func ParseEntityType(name string) (EntityType, error) {
	e := EntityType(strings.ToLower(strings.TrimSpace(name)))
	if !e.IsValid() {
		return "", ErrUnknownEntity
	}
	return e, nil
}

// ---------------------------------------------------------------------------
// Value Objects
// ---------------------------------------------------------------------------

// Order represents a sales order listed by the storefront
type Order struct {
	// IncrementID is the customer-facing order number
	IncrementID string
	// OrderID is the storefront's internal order ID
	OrderID string
	// CustomerID is the buyer's customer ID (empty for guests)
	CustomerID string
	// CustomerEmail is the buyer's email
	CustomerEmail string
	// Status is the order status code (pending, processing, holded, ...)
	Status string
	// State is the order state
	State string
	// GrandTotal is the total amount charged
	GrandTotal decimal.Decimal
	// Currency is the order currency code
	Currency string
	// CreatedAt is when the order was placed
	CreatedAt time.Time
	// UpdatedAt is when the order last changed
	UpdatedAt time.Time
}

// OrderItem represents an order line
type OrderItem struct {
	ItemID     string
	ProductID  string
	SKU        string
	Name       string
	QtyOrdered decimal.Decimal
	Price      decimal.Decimal
}

// OrderInfo is an order with its lines
type OrderInfo struct {
	Order
	Items []OrderItem
}

// ShipmentTrack is a tracking number attached to a shipment
type ShipmentTrack struct {
	TrackID     string
	CarrierCode string
	Title       string
	Number      string
}

// Shipment represents an order shipment
type Shipment struct {
	IncrementID string
	ShipmentID  string
	OrderID     string
	TotalQty    decimal.Decimal
	IsActive    bool
	CreatedAt   time.Time
	Tracks      []ShipmentTrack
}

// Invoice represents an order invoice
type Invoice struct {
	IncrementID string
	InvoiceID   string
	OrderID     string
	State       string
	GrandTotal  decimal.Decimal
	IsActive    bool
	CreatedAt   time.Time
}

// Carrier is a shipping carrier available for an order
type Carrier struct {
	Code string
	Name string
}

// StockItem is the inventory level of a product
type StockItem struct {
	ProductID string
	SKU       string
	Qty       decimal.Decimal
	InStock   bool
}

// ItemQty is a quantity of an order line, used to ship or invoice part of an order
type ItemQty struct {
	OrderItemID int
	Qty         decimal.Decimal
}

// Validate validates the item quantity
func (q ItemQty) Validate() error {
	if q.OrderItemID <= 0 || !q.Qty.IsPositive() {
		return ErrInvalidItemQty
	}
	return nil
}

// CartProduct is a product added to a shopping cart
type CartProduct struct {
	ProductID string
	SKU       string
	Qty       decimal.Decimal
}

// CommentOptions controls how a comment is recorded and notified
type CommentOptions struct {
	// Notify sends the comment to the customer
	Notify bool
	// IncludeInEmail includes the comment text in the notification
	IncludeInEmail bool
}

// ---------------------------------------------------------------------------
// Storefront Port Interface
// ---------------------------------------------------------------------------

// Storefront defines the port interface for the remote storefront.
// List operations take a native filter string, usually produced by
// translating a query.Expression.
type Storefront interface {
	// ---------------------------------------------------------------------------
	// Order Operations
	// ---------------------------------------------------------------------------

	ListOrders(ctx context.Context, filter string) ([]Order, error)
	GetOrder(ctx context.Context, orderID string) (*OrderInfo, error)
	HoldOrder(ctx context.Context, orderID string) error
	UnholdOrder(ctx context.Context, orderID string) error
	CancelOrder(ctx context.Context, orderID string) error
	AddOrderComment(ctx context.Context, orderID, status, comment string, notify bool) error

	// ---------------------------------------------------------------------------
	// Shipment Operations
	// ---------------------------------------------------------------------------

	ListOrdersShipments(ctx context.Context, filter string) ([]Shipment, error)
	GetOrderShipment(ctx context.Context, shipmentID string) (*Shipment, error)
	AddOrderShipmentComment(ctx context.Context, shipmentID, comment string, opts CommentOptions) error
	GetOrderShipmentCarriers(ctx context.Context, orderID string) ([]Carrier, error)
	AddOrderShipmentTrack(ctx context.Context, shipmentID, carrierCode, title, trackNumber string) (string, error)
	DeleteOrderShipmentTrack(ctx context.Context, shipmentID, trackID string) error
	CreateOrderShipment(ctx context.Context, orderID string, items []ItemQty, comment string, opts CommentOptions) (string, error)

	// ---------------------------------------------------------------------------
	// Invoice Operations
	// ---------------------------------------------------------------------------

	ListOrdersInvoices(ctx context.Context, filter string) ([]Invoice, error)
	GetOrderInvoice(ctx context.Context, invoiceID string) (*Invoice, error)
	AddOrderInvoiceComment(ctx context.Context, invoiceID, comment string, opts CommentOptions) error
	CreateOrderInvoice(ctx context.Context, orderID string, items []ItemQty, comment string, opts CommentOptions) (string, error)
	CaptureOrderInvoice(ctx context.Context, invoiceID string) error
	VoidOrderInvoice(ctx context.Context, invoiceID string) error
	CancelOrderInvoice(ctx context.Context, invoiceID string) error

	// ---------------------------------------------------------------------------
	// Inventory and Cart Operations
	// ---------------------------------------------------------------------------

	ListInventoryStockItems(ctx context.Context, idsOrSkus []string) ([]StockItem, error)
	CreateShoppingCart(ctx context.Context, storeID string) (int, error)
	AddShoppingCartProducts(ctx context.Context, quoteID int, products []CartProduct, storeID string) error
	CreateShoppingCartOrder(ctx context.Context, quoteID int, storeID string) (string, error)

	// ---------------------------------------------------------------------------
	// Query Operations
	// ---------------------------------------------------------------------------

	// ToNativeQuery renders a query's filter in the storefront's native grammar
	ToNativeQuery(q query.Query) (string, error)
	// Query runs a structured query against the listing named by q.Entity
	Query(ctx context.Context, q query.Query) (*QueryResult, error)
	// MetadataKeys lists the queryable entity types
	MetadataKeys() []EntityType
	// Metadata returns the queryable fields of an entity type
	Metadata(entity EntityType) ([]query.Field, error)
}

// QueryResult holds the rows returned by Query; only the slice matching
// the queried entity is set.
type QueryResult struct {
	Entity    EntityType
	Filter    string
	Total     int
	Orders    []Order
	Shipments []Shipment
	Invoices  []Invoice
}
