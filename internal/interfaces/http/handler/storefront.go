package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/erp/connector/internal/domain/integration"
	"github.com/erp/connector/internal/infrastructure/logger"
	"github.com/erp/connector/internal/interfaces/http/dto"
	"github.com/erp/connector/internal/interfaces/http/middleware"
)

// StorefrontHandler exposes storefront operations over HTTP
type StorefrontHandler struct {
	BaseHandler
	storefront integration.Storefront
}

// NewStorefrontHandler creates a new StorefrontHandler
func NewStorefrontHandler(storefront integration.Storefront) *StorefrontHandler {
	return &StorefrontHandler{storefront: storefront}
}

// Query runs a structured query against a storefront listing.
// POST /storefront/query
func (h *StorefrontHandler) Query(c *gin.Context) {
	var req dto.TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	if req.Entity == "" {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidationRequired, "entity is required")
		return
	}

	q, err := req.ToQuery()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	result, err := h.storefront.Query(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	logger.L(c.Request.Context()).Debug("Storefront query",
		zap.String("entity", result.Entity.String()),
		zap.String("filter", result.Filter),
		zap.Int("total", result.Total),
	)
	h.Success(c, dto.NewQueryResponse(result))
}

// GetOrder returns an order with its lines.
// GET /storefront/orders/:id
func (h *StorefrontHandler) GetOrder(c *gin.Context) {
	order, err := h.storefront.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewOrderInfoResponse(order))
}

// HoldOrder puts an order on hold.
// POST /storefront/orders/:id/hold
func (h *StorefrontHandler) HoldOrder(c *gin.Context) {
	h.orderAction(c, "hold", h.storefront.HoldOrder)
}

// UnholdOrder releases a held order.
// POST /storefront/orders/:id/unhold
func (h *StorefrontHandler) UnholdOrder(c *gin.Context) {
	h.orderAction(c, "unhold", h.storefront.UnholdOrder)
}

// CancelOrder cancels an order.
// POST /storefront/orders/:id/cancel
func (h *StorefrontHandler) CancelOrder(c *gin.Context) {
	h.orderAction(c, "cancel", h.storefront.CancelOrder)
}

func (h *StorefrontHandler) orderAction(c *gin.Context, action string, fn func(ctx context.Context, orderID string) error) {
	orderID := c.Param("id")
	if err := fn(c.Request.Context(), orderID); err != nil {
		h.HandleError(c, err)
		return
	}
	logger.L(c.Request.Context()).Info("Order updated",
		zap.String("order_id", orderID),
		zap.String("action", action),
	)
	h.Success(c, gin.H{"order_id": orderID, "action": action})
}

// AddOrderComment adds a status comment to an order.
// POST /storefront/orders/:id/comments
func (h *StorefrontHandler) AddOrderComment(c *gin.Context) {
	var req dto.OrderCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	orderID := c.Param("id")
	if err := h.storefront.AddOrderComment(c.Request.Context(), orderID, req.Status, req.Comment, req.Notify); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, gin.H{"order_id": orderID, "status": req.Status})
}

// GetOrderCarriers lists the carriers available to ship an order.
// GET /storefront/orders/:id/carriers
func (h *StorefrontHandler) GetOrderCarriers(c *gin.Context) {
	carriers, err := h.storefront.GetOrderShipmentCarriers(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewCarrierResponses(carriers))
}

// GetShipment returns a shipment with its tracks.
// GET /storefront/shipments/:id
func (h *StorefrontHandler) GetShipment(c *gin.Context) {
	shipment, err := h.storefront.GetOrderShipment(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewShipmentResponse(*shipment))
}

// GetInvoice returns an invoice.
// GET /storefront/invoices/:id
func (h *StorefrontHandler) GetInvoice(c *gin.Context) {
	invoice, err := h.storefront.GetOrderInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewInvoiceResponse(*invoice))
}

// ListStockItems returns inventory levels by product ID or SKU.
// GET /storefront/stock-items?id=...
func (h *StorefrontHandler) ListStockItems(c *gin.Context) {
	var req dto.StockItemsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	items, err := h.storefront.ListInventoryStockItems(c.Request.Context(), req.IDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewStockItemResponses(items))
}
