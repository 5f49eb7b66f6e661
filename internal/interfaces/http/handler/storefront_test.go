package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/erp/connector/internal/domain/integration"
	"github.com/erp/connector/internal/domain/query"
	"github.com/erp/connector/internal/infrastructure/magento"
	"github.com/erp/connector/internal/interfaces/http/dto"
	"github.com/erp/connector/internal/interfaces/http/middleware"
)

// MockStorefront is a mock implementation of integration.Storefront
type MockStorefront struct {
	mock.Mock
}

func (m *MockStorefront) ListOrders(ctx context.Context, filter string) ([]integration.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.Order), args.Error(1)
}

func (m *MockStorefront) GetOrder(ctx context.Context, orderID string) (*integration.OrderInfo, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.OrderInfo), args.Error(1)
}

func (m *MockStorefront) HoldOrder(ctx context.Context, orderID string) error {
	return m.Called(ctx, orderID).Error(0)
}

func (m *MockStorefront) UnholdOrder(ctx context.Context, orderID string) error {
	return m.Called(ctx, orderID).Error(0)
}

func (m *MockStorefront) CancelOrder(ctx context.Context, orderID string) error {
	return m.Called(ctx, orderID).Error(0)
}

func (m *MockStorefront) AddOrderComment(ctx context.Context, orderID, status, comment string, notify bool) error {
	return m.Called(ctx, orderID, status, comment, notify).Error(0)
}

func (m *MockStorefront) ListOrdersShipments(ctx context.Context, filter string) ([]integration.Shipment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.Shipment), args.Error(1)
}

func (m *MockStorefront) GetOrderShipment(ctx context.Context, shipmentID string) (*integration.Shipment, error) {
	args := m.Called(ctx, shipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.Shipment), args.Error(1)
}

func (m *MockStorefront) AddOrderShipmentComment(ctx context.Context, shipmentID, comment string, opts integration.CommentOptions) error {
	return m.Called(ctx, shipmentID, comment, opts).Error(0)
}

func (m *MockStorefront) GetOrderShipmentCarriers(ctx context.Context, orderID string) ([]integration.Carrier, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.Carrier), args.Error(1)
}

func (m *MockStorefront) AddOrderShipmentTrack(ctx context.Context, shipmentID, carrierCode, title, trackNumber string) (string, error) {
	args := m.Called(ctx, shipmentID, carrierCode, title, trackNumber)
	return args.String(0), args.Error(1)
}

func (m *MockStorefront) DeleteOrderShipmentTrack(ctx context.Context, shipmentID, trackID string) error {
	return m.Called(ctx, shipmentID, trackID).Error(0)
}

func (m *MockStorefront) CreateOrderShipment(ctx context.Context, orderID string, items []integration.ItemQty, comment string, opts integration.CommentOptions) (string, error) {
	args := m.Called(ctx, orderID, items, comment, opts)
	return args.String(0), args.Error(1)
}

func (m *MockStorefront) ListOrdersInvoices(ctx context.Context, filter string) ([]integration.Invoice, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.Invoice), args.Error(1)
}

func (m *MockStorefront) GetOrderInvoice(ctx context.Context, invoiceID string) (*integration.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.Invoice), args.Error(1)
}

func (m *MockStorefront) AddOrderInvoiceComment(ctx context.Context, invoiceID, comment string, opts integration.CommentOptions) error {
	return m.Called(ctx, invoiceID, comment, opts).Error(0)
}

func (m *MockStorefront) CreateOrderInvoice(ctx context.Context, orderID string, items []integration.ItemQty, comment string, opts integration.CommentOptions) (string, error) {
	args := m.Called(ctx, orderID, items, comment, opts)
	return args.String(0), args.Error(1)
}

func (m *MockStorefront) CaptureOrderInvoice(ctx context.Context, invoiceID string) error {
	return m.Called(ctx, invoiceID).Error(0)
}

func (m *MockStorefront) VoidOrderInvoice(ctx context.Context, invoiceID string) error {
	return m.Called(ctx, invoiceID).Error(0)
}

func (m *MockStorefront) CancelOrderInvoice(ctx context.Context, invoiceID string) error {
	return m.Called(ctx, invoiceID).Error(0)
}

func (m *MockStorefront) ListInventoryStockItems(ctx context.Context, idsOrSkus []string) ([]integration.StockItem, error) {
	args := m.Called(ctx, idsOrSkus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.StockItem), args.Error(1)
}

func (m *MockStorefront) CreateShoppingCart(ctx context.Context, storeID string) (int, error) {
	args := m.Called(ctx, storeID)
	return args.Int(0), args.Error(1)
}

func (m *MockStorefront) AddShoppingCartProducts(ctx context.Context, quoteID int, products []integration.CartProduct, storeID string) error {
	return m.Called(ctx, quoteID, products, storeID).Error(0)
}

func (m *MockStorefront) CreateShoppingCartOrder(ctx context.Context, quoteID int, storeID string) (string, error) {
	args := m.Called(ctx, quoteID, storeID)
	return args.String(0), args.Error(1)
}

func (m *MockStorefront) ToNativeQuery(q query.Query) (string, error) {
	args := m.Called(q)
	return args.String(0), args.Error(1)
}

func (m *MockStorefront) Query(ctx context.Context, q query.Query) (*integration.QueryResult, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.QueryResult), args.Error(1)
}

func (m *MockStorefront) MetadataKeys() []integration.EntityType {
	return m.Called().Get(0).([]integration.EntityType)
}

func (m *MockStorefront) Metadata(entity integration.EntityType) ([]query.Field, error) {
	args := m.Called(entity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]query.Field), args.Error(1)
}

var _ integration.Storefront = (*MockStorefront)(nil)

func newStorefrontRouter(sf *MockStorefront) *gin.Engine {
	middleware.SetupValidator()
	h := NewStorefrontHandler(sf)

	router := gin.New()
	router.Use(middleware.RequestID())
	router.POST("/storefront/query", h.Query)
	router.GET("/storefront/orders/:id", h.GetOrder)
	router.POST("/storefront/orders/:id/hold", h.HoldOrder)
	router.POST("/storefront/orders/:id/unhold", h.UnholdOrder)
	router.POST("/storefront/orders/:id/cancel", h.CancelOrder)
	router.POST("/storefront/orders/:id/comments", h.AddOrderComment)
	router.GET("/storefront/orders/:id/carriers", h.GetOrderCarriers)
	router.GET("/storefront/shipments/:id", h.GetShipment)
	router.GET("/storefront/invoices/:id", h.GetInvoice)
	router.GET("/storefront/stock-items", h.ListStockItems)
	return router
}

func TestStorefrontHandler_Query(t *testing.T) {
	t.Run("runs structured query", func(t *testing.T) {
		sf := new(MockStorefront)
		sf.On("Query", mock.Anything, mock.MatchedBy(func(q query.Query) bool {
			c, ok := q.Filter.(*query.Comparison)
			return ok && q.Entity == "orders" && c.Field.Name == "status" && q.Page != nil && q.Page.Limit == 10
		})).Return(&integration.QueryResult{
			Entity: integration.EntityOrders,
			Filter: "eq(status,'pending')",
			Total:  1,
			Orders: []integration.Order{{
				IncrementID: "100000001",
				Status:      "pending",
				GrandTotal:  decimal.RequireFromString("12.50"),
				CreatedAt:   time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC),
			}},
		}, nil)

		w := doJSON(newStorefrontRouter(sf), http.MethodPost, "/storefront/query", `{
			"entity": "orders",
			"filter": {"type": "comparison", "field": "status", "operator": "equals", "value": "pending"},
			"page": {"offset": 0, "limit": 10}
		}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp dto.QueryResponse
		decodeData(t, w, &resp)
		assert.Equal(t, "orders", resp.Entity)
		assert.Equal(t, "eq(status,'pending')", resp.Filter)
		assert.Equal(t, 1, resp.Total)
		require.Len(t, resp.Orders, 1)
		assert.Equal(t, "100000001", resp.Orders[0].IncrementID)
		sf.AssertExpectations(t)
	})

	t.Run("entity required", func(t *testing.T) {
		sf := new(MockStorefront)
		w := doJSON(newStorefrontRouter(sf), http.MethodPost, "/storefront/query", `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidationRequired, decodeError(t, w).Code)
		sf.AssertNotCalled(t, "Query", mock.Anything, mock.Anything)
	})

	t.Run("unsupported filter", func(t *testing.T) {
		sf := new(MockStorefront)
		sf.On("Query", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("list orders: %w", magento.ErrUnsupportedFilter))

		w := doJSON(newStorefrontRouter(sf), http.MethodPost, "/storefront/query", `{"entity": "orders"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, dto.ErrCodeUnsupportedFilter, decodeError(t, w).Code)
	})
}

func TestStorefrontHandler_GetOrder(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"found", nil, http.StatusOK, ""},
		{"not found", integration.ErrOrderNotFound, http.StatusNotFound, dto.ErrCodeNotFound},
		{"gateway down", integration.ErrSessionUnavailable, http.StatusServiceUnavailable, dto.ErrCodeGatewayUnavailable},
		{"gateway failed", integration.ErrGatewayRequestFailed, http.StatusBadGateway, dto.ErrCodeGatewayFailed},
		{"invalid reply", integration.ErrGatewayInvalidReply, http.StatusBadGateway, dto.ErrCodeGatewayFailed},
		{"unexpected", fmt.Errorf("boom"), http.StatusInternalServerError, dto.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sf := new(MockStorefront)
			if tt.err != nil {
				sf.On("GetOrder", mock.Anything, "100000001").Return(nil, tt.err)
			} else {
				sf.On("GetOrder", mock.Anything, "100000001").Return(&integration.OrderInfo{
					Order: integration.Order{IncrementID: "100000001", Status: "processing"},
					Items: []integration.OrderItem{{ItemID: "1", SKU: "ABC-1", QtyOrdered: decimal.NewFromInt(2)}},
				}, nil)
			}

			w := doJSON(newStorefrontRouter(sf), http.MethodGet, "/storefront/orders/100000001", "")
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			if tt.code != "" {
				errInfo := decodeError(t, w)
				assert.Equal(t, tt.code, errInfo.Code)
				if tt.code == dto.ErrCodeInternal {
					assert.NotContains(t, errInfo.Message, "boom")
				}
				return
			}

			var resp dto.OrderInfoResponse
			decodeData(t, w, &resp)
			assert.Equal(t, "100000001", resp.IncrementID)
			require.Len(t, resp.Items, 1)
			assert.Equal(t, "ABC-1", resp.Items[0].SKU)
		})
	}
}

func TestStorefrontHandler_OrderActions(t *testing.T) {
	actions := []struct {
		path   string
		method string
	}{
		{"hold", "HoldOrder"},
		{"unhold", "UnholdOrder"},
		{"cancel", "CancelOrder"},
	}

	for _, a := range actions {
		t.Run(a.path, func(t *testing.T) {
			sf := new(MockStorefront)
			sf.On(a.method, mock.Anything, "100000001").Return(nil)

			w := doJSON(newStorefrontRouter(sf), http.MethodPost, "/storefront/orders/100000001/"+a.path, "")
			assert.Equal(t, http.StatusOK, w.Code)
			sf.AssertExpectations(t)
		})
	}

	t.Run("refused", func(t *testing.T) {
		sf := new(MockStorefront)
		sf.On("CancelOrder", mock.Anything, "100000001").
			Return(fmt.Errorf("%w: salesOrderCancel", integration.ErrOperationRefused))

		w := doJSON(newStorefrontRouter(sf), http.MethodPost, "/storefront/orders/100000001/cancel", "")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, dto.ErrCodeOperationRefused, decodeError(t, w).Code)
	})
}

func TestStorefrontHandler_AddOrderComment(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		sf := new(MockStorefront)
		sf.On("AddOrderComment", mock.Anything, "100000001", "processing", "Packed", true).Return(nil)

		w := doJSON(newStorefrontRouter(sf), http.MethodPost, "/storefront/orders/100000001/comments",
			`{"status": "processing", "comment": "Packed", "notify": true}`)
		assert.Equal(t, http.StatusCreated, w.Code)
		sf.AssertExpectations(t)
	})

	t.Run("status required", func(t *testing.T) {
		sf := new(MockStorefront)

		w := doJSON(newStorefrontRouter(sf), http.MethodPost, "/storefront/orders/100000001/comments", `{"comment": "x"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		errInfo := decodeError(t, w)
		assert.Equal(t, dto.ErrCodeValidation, errInfo.Code)
		require.Len(t, errInfo.Details, 1)
		assert.Equal(t, "status", errInfo.Details[0].Field)
	})
}

func TestStorefrontHandler_Lookups(t *testing.T) {
	sf := new(MockStorefront)
	sf.On("GetOrderShipmentCarriers", mock.Anything, "100000001").
		Return([]integration.Carrier{{Code: "ups", Name: "United Parcel Service"}}, nil)
	sf.On("GetOrderShipment", mock.Anything, "200000001").
		Return(&integration.Shipment{IncrementID: "200000001", IsActive: true}, nil)
	sf.On("GetOrderInvoice", mock.Anything, "300000001").
		Return(nil, integration.ErrInvoiceNotFound)
	sf.On("ListInventoryStockItems", mock.Anything, []string{"ABC-1", "42"}).
		Return([]integration.StockItem{{SKU: "ABC-1", Qty: decimal.NewFromInt(5), InStock: true}}, nil)
	router := newStorefrontRouter(sf)

	w := doJSON(router, http.MethodGet, "/storefront/orders/100000001/carriers", "")
	require.Equal(t, http.StatusOK, w.Code)
	var carriers []dto.CarrierResponse
	decodeData(t, w, &carriers)
	assert.Equal(t, "ups", carriers[0].Code)

	w = doJSON(router, http.MethodGet, "/storefront/shipments/200000001", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/storefront/invoices/300000001", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, http.MethodGet, "/storefront/stock-items?id=ABC-1&id=42", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var items []dto.StockItemResponse
	decodeData(t, w, &items)
	require.Len(t, items, 1)
	assert.Equal(t, "ABC-1", items[0].SKU)

	w = doJSON(router, http.MethodGet, "/storefront/stock-items", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	sf.AssertExpectations(t)
}
