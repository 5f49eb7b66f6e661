// Package integration defines how the rest of the system talks to a remote
// storefront: orders, shipments, invoices, inventory and shopping carts.
//
// Key concepts:
//   - Storefront: the gateway port, implemented by infrastructure/magento
//   - CarrierCache: optional cache of shipping carriers per order
//   - EntityType: the listings that accept a native filter
//   - Order, Shipment, Invoice, StockItem: values returned by the gateway
//
// Only interfaces and value types live here; the SOAP-facing adapter and the
// cache implementations sit in the infrastructure layer.
package integration
