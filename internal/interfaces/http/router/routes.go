package router

import (
	"github.com/erp/connector/internal/interfaces/http/handler"
)

// SystemRoutes builds the liveness and info routes
func SystemRoutes(h *handler.SystemHandler) *DomainGroup {
	return NewDomainGroup("system", "/system").
		GET("/ping", h.Ping).
		GET("/info", h.GetSystemInfo)
}

// FilterRoutes builds the filter translation and metadata routes
func FilterRoutes(h *handler.FilterHandler) *DomainGroup {
	return NewDomainGroup("filters", "/").
		POST("/filters/translate", h.Translate).
		POST("/filters/parse", h.Parse).
		GET("/metadata", h.ListMetadata).
		GET("/metadata/:entity", h.GetMetadata)
}

// StorefrontRoutes builds the routes backed by a live storefront connection
func StorefrontRoutes(h *handler.StorefrontHandler) *DomainGroup {
	return NewDomainGroup("storefront", "/storefront").
		POST("/query", h.Query).
		GET("/orders/:id", h.GetOrder).
		POST("/orders/:id/hold", h.HoldOrder).
		POST("/orders/:id/unhold", h.UnholdOrder).
		POST("/orders/:id/cancel", h.CancelOrder).
		POST("/orders/:id/comments", h.AddOrderComment).
		GET("/orders/:id/carriers", h.GetOrderCarriers).
		GET("/shipments/:id", h.GetShipment).
		GET("/invoices/:id", h.GetInvoice).
		GET("/stock-items", h.ListStockItems)
}
