package magento

import (
	"context"
	"errors"
)

// Port is the remote SOAP v2 handler of the storefront.
// Implementations marshal each call into the vendor's request objects;
// the connector only depends on this call/return contract.
type Port interface {
	SalesOrderList(ctx context.Context, sessionID string, filters *Filters) ([]SalesOrderListEntity, error)
	SalesOrderInfo(ctx context.Context, sessionID, orderIncrementID string) (*SalesOrderEntity, error)
	SalesOrderHold(ctx context.Context, sessionID, orderIncrementID string) (bool, error)
	SalesOrderUnhold(ctx context.Context, sessionID, orderIncrementID string) (bool, error)
	SalesOrderCancel(ctx context.Context, sessionID, orderIncrementID string) (bool, error)
	SalesOrderAddComment(ctx context.Context, sessionID, orderIncrementID, status, comment, notify string) (bool, error)

	SalesOrderShipmentList(ctx context.Context, sessionID string, filters *Filters) ([]SalesOrderShipmentEntity, error)
	SalesOrderShipmentInfo(ctx context.Context, sessionID, shipmentIncrementID string) (*SalesOrderShipmentEntity, error)
	SalesOrderShipmentAddComment(ctx context.Context, sessionID, shipmentIncrementID, comment, email, includeInEmail string) (bool, error)
	SalesOrderShipmentGetCarriers(ctx context.Context, sessionID, orderIncrementID string) ([]AssociativeEntity, error)
	SalesOrderShipmentAddTrack(ctx context.Context, sessionID, shipmentIncrementID, carrier, title, trackNumber string) (int, error)
	SalesOrderShipmentRemoveTrack(ctx context.Context, sessionID, shipmentIncrementID, trackID string) (bool, error)
	SalesOrderShipmentCreate(ctx context.Context, sessionID, orderIncrementID string, itemsQty []OrderItemIDQty, comment string, email, includeComment int) (string, error)

	SalesOrderInvoiceList(ctx context.Context, sessionID string, filters *Filters) ([]SalesOrderInvoiceEntity, error)
	SalesOrderInvoiceInfo(ctx context.Context, sessionID, invoiceIncrementID string) (*SalesOrderInvoiceEntity, error)
	SalesOrderInvoiceAddComment(ctx context.Context, sessionID, invoiceIncrementID, comment, email, includeComment string) (bool, error)
	SalesOrderInvoiceCreate(ctx context.Context, sessionID, orderIncrementID string, itemsQty []OrderItemIDQty, comment, email, includeComment string) (string, error)
	SalesOrderInvoiceCapture(ctx context.Context, sessionID, invoiceIncrementID string) (bool, error)
	SalesOrderInvoiceVoid(ctx context.Context, sessionID, invoiceIncrementID string) (bool, error)
	SalesOrderInvoiceCancel(ctx context.Context, sessionID, invoiceIncrementID string) (bool, error)

	CatalogInventoryStockItemList(ctx context.Context, sessionID string, products []string) ([]CatalogInventoryStockItemEntity, error)

	ShoppingCartCreate(ctx context.Context, sessionID, storeID string) (int, error)
	ShoppingCartProductAdd(ctx context.Context, sessionID string, quoteID int, products []ShoppingCartProductEntity, storeID string) (bool, error)
	ShoppingCartOrder(ctx context.Context, sessionID string, quoteID int, storeID string) (string, error)
}

// SessionProvider supplies the session token sent with every call.
// Login and token refresh are the provider's concern.
type SessionProvider interface {
	Session(ctx context.Context) (string, error)
}

// ErrEmptySession indicates a static session without token
var ErrEmptySession = errors.New("magento: empty session token")

// StaticSession is a SessionProvider returning a fixed token
type StaticSession string

// Session returns the fixed token
func (s StaticSession) Session(_ context.Context) (string, error) {
	if s == "" {
		return "", ErrEmptySession
	}
	return string(s), nil
}
