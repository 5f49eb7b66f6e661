package magento

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Sales Order Types
// ---------------------------------------------------------------------------

// SalesOrderListEntity is a row of salesOrderList
type SalesOrderListEntity struct {
	IncrementID       string `xml:"increment_id" json:"increment_id"`
	OrderID           string `xml:"order_id" json:"order_id"`
	CustomerID        string `xml:"customer_id,omitempty" json:"customer_id,omitempty"`
	CustomerEmail     string `xml:"customer_email,omitempty" json:"customer_email,omitempty"`
	Status            string `xml:"status" json:"status"`
	State             string `xml:"state" json:"state"`
	GrandTotal        string `xml:"grand_total" json:"grand_total"`
	OrderCurrencyCode string `xml:"order_currency_code,omitempty" json:"order_currency_code,omitempty"`
	CreatedAt         string `xml:"created_at" json:"created_at"`
	UpdatedAt         string `xml:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// SalesOrderItemEntity is an order line of salesOrderInfo
type SalesOrderItemEntity struct {
	ItemID     string `xml:"item_id" json:"item_id"`
	ProductID  string `xml:"product_id" json:"product_id"`
	SKU        string `xml:"sku" json:"sku"`
	Name       string `xml:"name" json:"name"`
	QtyOrdered string `xml:"qty_ordered" json:"qty_ordered"`
	Price      string `xml:"price" json:"price"`
}

// SalesOrderEntity is the result of salesOrderInfo
type SalesOrderEntity struct {
	SalesOrderListEntity
	Items []SalesOrderItemEntity `xml:"items>complexObjectArray" json:"items"`
}

// ---------------------------------------------------------------------------
// Shipment Types
// ---------------------------------------------------------------------------

// SalesOrderShipmentTrackEntity is a tracking number of a shipment
type SalesOrderShipmentTrackEntity struct {
	TrackID     string `xml:"track_id" json:"track_id"`
	CarrierCode string `xml:"carrier_code" json:"carrier_code"`
	Title       string `xml:"title" json:"title"`
	Number      string `xml:"number" json:"number"`
}

// SalesOrderShipmentEntity is a row of salesOrderShipmentList / salesOrderShipmentInfo
type SalesOrderShipmentEntity struct {
	IncrementID string                          `xml:"increment_id" json:"increment_id"`
	ShipmentID  string                          `xml:"shipment_id" json:"shipment_id"`
	OrderID     string                          `xml:"order_id" json:"order_id"`
	TotalQty    string                          `xml:"total_qty" json:"total_qty"`
	IsActive    string                          `xml:"is_active" json:"is_active"`
	CreatedAt   string                          `xml:"created_at" json:"created_at"`
	Tracks      []SalesOrderShipmentTrackEntity `xml:"tracks>complexObjectArray,omitempty" json:"tracks,omitempty"`
}

// OrderItemIDQty is the quantity of an order line to ship or invoice
type OrderItemIDQty struct {
	OrderItemID int     `xml:"order_item_id" json:"order_item_id"`
	Qty         float64 `xml:"qty" json:"qty"`
}

// ---------------------------------------------------------------------------
// Invoice Types
// ---------------------------------------------------------------------------

// SalesOrderInvoiceEntity is a row of salesOrderInvoiceList / salesOrderInvoiceInfo
type SalesOrderInvoiceEntity struct {
	IncrementID string `xml:"increment_id" json:"increment_id"`
	InvoiceID   string `xml:"invoice_id" json:"invoice_id"`
	OrderID     string `xml:"order_id" json:"order_id"`
	State       string `xml:"state" json:"state"`
	GrandTotal  string `xml:"grand_total" json:"grand_total"`
	IsActive    string `xml:"is_active" json:"is_active"`
	CreatedAt   string `xml:"created_at" json:"created_at"`
}

// ---------------------------------------------------------------------------
// Inventory and Cart Types
// ---------------------------------------------------------------------------

// CatalogInventoryStockItemEntity is a row of catalogInventoryStockItemList
type CatalogInventoryStockItemEntity struct {
	ProductID string `xml:"product_id" json:"product_id"`
	SKU       string `xml:"sku" json:"sku"`
	Qty       string `xml:"qty" json:"qty"`
	IsInStock string `xml:"is_in_stock" json:"is_in_stock"`
}

// ShoppingCartProductEntity is a product added to a quote
type ShoppingCartProductEntity struct {
	ProductID string  `xml:"product_id,omitempty" json:"product_id,omitempty"`
	SKU       string  `xml:"sku,omitempty" json:"sku,omitempty"`
	Qty       float64 `xml:"qty" json:"qty"`
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// ParseDecimal parses a decimal string, returns zero if invalid
func ParseDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseFlag parses a SOAP flag column ("1"/"0", "true"/"false")
func ParseFlag(s string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	return err == nil && b
}

// flag renders a boolean as a SOAP string flag
func flag(b bool) string {
	return NumericBoolean.Format(b)
}

// flagInt renders a boolean as a SOAP integer flag
func flagInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// parseTimestamp parses a platform timestamp, returns zero time if invalid
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(DefaultDateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
