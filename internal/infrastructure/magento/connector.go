package magento

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/erp/connector/internal/domain/integration"
	"github.com/erp/connector/internal/domain/query"
	"github.com/erp/connector/internal/infrastructure/logger"
	"github.com/erp/connector/internal/infrastructure/telemetry"
)

// TracerName names the tracer of gateway call spans
const TracerName = "github.com/erp/connector/magento"

// errRefused is returned by call bodies when the gateway answers false
var errRefused = errors.New("refused")

// Connector implements the Storefront port on top of the SOAP v2 Port
type Connector struct {
	port       Port
	sessions   SessionProvider
	config     *Config
	translator *Translator
	parser     *Parser
	carriers   integration.CarrierCache
	logger     *zap.Logger
	tracer     trace.Tracer
	metrics    *telemetry.ConnectorMetrics
}

// Option configures a Connector
type Option func(*Connector)

// WithLogger sets the connector's logger
func WithLogger(l *zap.Logger) Option {
	return func(c *Connector) {
		c.logger = l
	}
}

// WithCarrierCache caches shipment carriers in the given cache
func WithCarrierCache(cache integration.CarrierCache) Option {
	return func(c *Connector) {
		c.carriers = cache
	}
}

// WithTracer sets the tracer used for gateway call spans
func WithTracer(t trace.Tracer) Option {
	return func(c *Connector) {
		c.tracer = t
	}
}

// WithMetrics records gateway calls in m
func WithMetrics(m *telemetry.ConnectorMetrics) Option {
	return func(c *Connector) {
		c.metrics = m
	}
}

// NewConnector creates a connector calling port with the provider's session
func NewConnector(port Port, sessions SessionProvider, config *Config, opts ...Option) (*Connector, error) {
	if port == nil || sessions == nil {
		return nil, integration.ErrGatewayNotConfigured
	}
	if config == nil {
		config = NewConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	translator, err := NewTranslator(config.Grammar)
	if err != nil {
		return nil, err
	}
	parser, err := NewParser(config.Grammar)
	if err != nil {
		return nil, err
	}

	c := &Connector{
		port:       port,
		sessions:   sessions,
		config:     config,
		translator: translator,
		parser:     parser,
		logger:     zap.NewNop(),
		tracer:     otel.Tracer(TracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Translator returns the connector's filter translator
func (c *Connector) Translator() *Translator {
	return c.translator
}

// Parser returns the connector's filter parser
func (c *Connector) Parser() *Parser {
	return c.parser
}

// ---------------------------------------------------------------------------
// Order Operations
// ---------------------------------------------------------------------------

// ListOrders lists the orders matching a native filter (blank for all)
func (c *Connector) ListOrders(ctx context.Context, filter string) ([]integration.Order, error) {
	filters, err := ParseFilters(c.parser, c.translator, filter)
	if err != nil {
		return nil, err
	}

	var orders []integration.Order
	err = c.call(ctx, "salesOrderList", func(ctx context.Context, session string) error {
		rows, err := c.port.SalesOrderList(ctx, session, filters)
		if err != nil {
			return err
		}
		orders = make([]integration.Order, 0, len(rows))
		for i := range rows {
			orders = append(orders, convertOrder(&rows[i]))
		}
		return nil
	})
	return orders, err
}

// GetOrder retrieves an order with its lines
func (c *Connector) GetOrder(ctx context.Context, orderID string) (*integration.OrderInfo, error) {
	if orderID == "" {
		return nil, integration.ErrInvalidOrderID
	}

	var info *integration.OrderInfo
	err := c.call(ctx, "salesOrderInfo", func(ctx context.Context, session string) error {
		entity, err := c.port.SalesOrderInfo(ctx, session, orderID)
		if err != nil {
			return err
		}
		if entity == nil {
			return integration.ErrOrderNotFound
		}
		info = convertOrderInfo(entity)
		return nil
	})
	return info, err
}

// HoldOrder puts an order on hold
func (c *Connector) HoldOrder(ctx context.Context, orderID string) error {
	if orderID == "" {
		return integration.ErrInvalidOrderID
	}
	return c.call(ctx, "salesOrderHold", func(ctx context.Context, session string) error {
		return accepted(c.port.SalesOrderHold(ctx, session, orderID))
	})
}

// UnholdOrder releases an order from hold
func (c *Connector) UnholdOrder(ctx context.Context, orderID string) error {
	if orderID == "" {
		return integration.ErrInvalidOrderID
	}
	return c.call(ctx, "salesOrderUnhold", func(ctx context.Context, session string) error {
		return accepted(c.port.SalesOrderUnhold(ctx, session, orderID))
	})
}

// CancelOrder cancels an order
func (c *Connector) CancelOrder(ctx context.Context, orderID string) error {
	if orderID == "" {
		return integration.ErrInvalidOrderID
	}
	return c.call(ctx, "salesOrderCancel", func(ctx context.Context, session string) error {
		return accepted(c.port.SalesOrderCancel(ctx, session, orderID))
	})
}

// AddOrderComment adds a comment to an order and optionally changes its status
func (c *Connector) AddOrderComment(ctx context.Context, orderID, status, comment string, notify bool) error {
	if orderID == "" {
		return integration.ErrInvalidOrderID
	}
	return c.call(ctx, "salesOrderAddComment", func(ctx context.Context, session string) error {
		return accepted(c.port.SalesOrderAddComment(ctx, session, orderID, status, comment, flag(notify)))
	})
}

// ---------------------------------------------------------------------------
// Shipment Operations
// ---------------------------------------------------------------------------

// ListOrdersShipments lists the shipments matching a native filter (blank for all)
func (c *Connector) ListOrdersShipments(ctx context.Context, filter string) ([]integration.Shipment, error) {
	filters, err := ParseFilters(c.parser, c.translator, filter)
	if err != nil {
		return nil, err
	}

	var shipments []integration.Shipment
	err = c.call(ctx, "salesOrderShipmentList", func(ctx context.Context, session string) error {
		rows, err := c.port.SalesOrderShipmentList(ctx, session, filters)
		if err != nil {
			return err
		}
		shipments = make([]integration.Shipment, 0, len(rows))
		for i := range rows {
			shipments = append(shipments, convertShipment(&rows[i]))
		}
		return nil
	})
	return shipments, err
}

// GetOrderShipment retrieves a shipment with its tracking numbers
func (c *Connector) GetOrderShipment(ctx context.Context, shipmentID string) (*integration.Shipment, error) {
	if shipmentID == "" {
		return nil, integration.ErrInvalidShipmentID
	}

	var shipment *integration.Shipment
	err := c.call(ctx, "salesOrderShipmentInfo", func(ctx context.Context, session string) error {
		entity, err := c.port.SalesOrderShipmentInfo(ctx, session, shipmentID)
		if err != nil {
			return err
		}
		if entity == nil {
			return integration.ErrShipmentNotFound
		}
		s := convertShipment(entity)
		shipment = &s
		return nil
	})
	return shipment, err
}

// AddOrderShipmentComment adds a comment to a shipment
func (c *Connector) AddOrderShipmentComment(ctx context.Context, shipmentID, comment string, opts integration.CommentOptions) error {
	if shipmentID == "" {
		return integration.ErrInvalidShipmentID
	}
	return c.call(ctx, "salesOrderShipmentAddComment", func(ctx context.Context, session string) error {
		return accepted(c.port.SalesOrderShipmentAddComment(ctx, session, shipmentID, comment,
			flag(opts.Notify), flag(opts.IncludeInEmail)))
	})
}

// GetOrderShipmentCarriers lists the carriers available to ship an order.
// Results are cached per order when a carrier cache is configured.
func (c *Connector) GetOrderShipmentCarriers(ctx context.Context, orderID string) ([]integration.Carrier, error) {
	if orderID == "" {
		return nil, integration.ErrInvalidOrderID
	}

	if c.carriers != nil && c.config.CarrierCacheTTL > 0 {
		cached, found, err := c.carriers.GetCarriers(ctx, orderID)
		if err != nil {
			logger.WithLogger(ctx, c.logger).Warn("carrier cache lookup failed",
				zap.String("order_id", orderID), zap.Error(err))
		} else if found {
			return cached, nil
		}
	}

	var carriers []integration.Carrier
	err := c.call(ctx, "salesOrderShipmentGetCarriers", func(ctx context.Context, session string) error {
		rows, err := c.port.SalesOrderShipmentGetCarriers(ctx, session, orderID)
		if err != nil {
			return err
		}
		carriers = make([]integration.Carrier, 0, len(rows))
		for _, row := range rows {
			carriers = append(carriers, integration.Carrier{Code: row.Key, Name: row.Value})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if c.carriers != nil && c.config.CarrierCacheTTL > 0 {
		if err := c.carriers.SetCarriers(ctx, orderID, carriers, c.config.CarrierCacheTTL); err != nil {
			logger.WithLogger(ctx, c.logger).Warn("carrier cache store failed",
				zap.String("order_id", orderID), zap.Error(err))
		}
	}
	return carriers, nil
}

// AddOrderShipmentTrack adds a tracking number to a shipment and returns the track ID
func (c *Connector) AddOrderShipmentTrack(ctx context.Context, shipmentID, carrierCode, title, trackNumber string) (string, error) {
	if shipmentID == "" {
		return "", integration.ErrInvalidShipmentID
	}

	var trackID string
	err := c.call(ctx, "salesOrderShipmentAddTrack", func(ctx context.Context, session string) error {
		id, err := c.port.SalesOrderShipmentAddTrack(ctx, session, shipmentID, carrierCode, title, trackNumber)
		if err != nil {
			return err
		}
		if id <= 0 {
			return integration.ErrGatewayInvalidReply
		}
		trackID = strconv.Itoa(id)
		return nil
	})
	return trackID, err
}

// DeleteOrderShipmentTrack removes a tracking number from a shipment
func (c *Connector) DeleteOrderShipmentTrack(ctx context.Context, shipmentID, trackID string) error {
	if shipmentID == "" {
		return integration.ErrInvalidShipmentID
	}
	return c.call(ctx, "salesOrderShipmentRemoveTrack", func(ctx context.Context, session string) error {
		return accepted(c.port.SalesOrderShipmentRemoveTrack(ctx, session, shipmentID, trackID))
	})
}

// CreateOrderShipment ships order lines and returns the shipment increment ID
func (c *Connector) CreateOrderShipment(ctx context.Context, orderID string, items []integration.ItemQty, comment string, opts integration.CommentOptions) (string, error) {
	if orderID == "" {
		return "", integration.ErrInvalidOrderID
	}
	qtys, err := convertItemQtys(items)
	if err != nil {
		return "", err
	}

	var shipmentID string
	err = c.call(ctx, "salesOrderShipmentCreate", func(ctx context.Context, session string) error {
		id, err := c.port.SalesOrderShipmentCreate(ctx, session, orderID, qtys, comment,
			flagInt(opts.Notify), flagInt(opts.IncludeInEmail))
		shipmentID, err = incrementID(id, err)
		return err
	})
	return shipmentID, err
}

// ---------------------------------------------------------------------------
// Invoice Operations
// ---------------------------------------------------------------------------

// ListOrdersInvoices lists the invoices matching a native filter (blank for all)
func (c *Connector) ListOrdersInvoices(ctx context.Context, filter string) ([]integration.Invoice, error) {
	filters, err := ParseFilters(c.parser, c.translator, filter)
	if err != nil {
		return nil, err
	}

	var invoices []integration.Invoice
	err = c.call(ctx, "salesOrderInvoiceList", func(ctx context.Context, session string) error {
		rows, err := c.port.SalesOrderInvoiceList(ctx, session, filters)
		if err != nil {
			return err
		}
		invoices = make([]integration.Invoice, 0, len(rows))
		for i := range rows {
			invoices = append(invoices, convertInvoice(&rows[i]))
		}
		return nil
	})
	return invoices, err
}

// GetOrderInvoice retrieves an invoice
func (c *Connector) GetOrderInvoice(ctx context.Context, invoiceID string) (*integration.Invoice, error) {
	if invoiceID == "" {
		return nil, integration.ErrInvalidInvoiceID
	}

	var invoice *integration.Invoice
	err := c.call(ctx, "salesOrderInvoiceInfo", func(ctx context.Context, session string) error {
		entity, err := c.port.SalesOrderInvoiceInfo(ctx, session, invoiceID)
		if err != nil {
			return err
		}
		if entity == nil {
			return integration.ErrInvoiceNotFound
		}
		inv := convertInvoice(entity)
		invoice = &inv
		return nil
	})
	return invoice, err
}

// AddOrderInvoiceComment adds a comment to an invoice
func (c *Connector) AddOrderInvoiceComment(ctx context.Context, invoiceID, comment string, opts integration.CommentOptions) error {
	if invoiceID == "" {
		return integration.ErrInvalidInvoiceID
	}
	return c.call(ctx, "salesOrderInvoiceAddComment", func(ctx context.Context, session string) error {
		return accepted(c.port.SalesOrderInvoiceAddComment(ctx, session, invoiceID, comment,
			flag(opts.Notify), flag(opts.IncludeInEmail)))
	})
}

// CreateOrderInvoice invoices order lines and returns the invoice increment ID
func (c *Connector) CreateOrderInvoice(ctx context.Context, orderID string, items []integration.ItemQty, comment string, opts integration.CommentOptions) (string, error) {
	if orderID == "" {
		return "", integration.ErrInvalidOrderID
	}
	qtys, err := convertItemQtys(items)
	if err != nil {
		return "", err
	}

	var invoiceID string
	err = c.call(ctx, "salesOrderInvoiceCreate", func(ctx context.Context, session string) error {
		id, err := c.port.SalesOrderInvoiceCreate(ctx, session, orderID, qtys, comment,
			flag(opts.Notify), flag(opts.IncludeInEmail))
		invoiceID, err = incrementID(id, err)
		return err
	})
	return invoiceID, err
}

// CaptureOrderInvoice captures the payment of an invoice
func (c *Connector) CaptureOrderInvoice(ctx context.Context, invoiceID string) error {
	if invoiceID == "" {
		return integration.ErrInvalidInvoiceID
	}
	return c.call(ctx, "salesOrderInvoiceCapture", func(ctx context.Context, session string) error {
		return accepted(c.port.SalesOrderInvoiceCapture(ctx, session, invoiceID))
	})
}

// VoidOrderInvoice voids an invoice
func (c *Connector) VoidOrderInvoice(ctx context.Context, invoiceID string) error {
	if invoiceID == "" {
		return integration.ErrInvalidInvoiceID
	}
	return c.call(ctx, "salesOrderInvoiceVoid", func(ctx context.Context, session string) error {
		return accepted(c.port.SalesOrderInvoiceVoid(ctx, session, invoiceID))
	})
}

// CancelOrderInvoice cancels an invoice
func (c *Connector) CancelOrderInvoice(ctx context.Context, invoiceID string) error {
	if invoiceID == "" {
		return integration.ErrInvalidInvoiceID
	}
	return c.call(ctx, "salesOrderInvoiceCancel", func(ctx context.Context, session string) error {
		return accepted(c.port.SalesOrderInvoiceCancel(ctx, session, invoiceID))
	})
}

// ---------------------------------------------------------------------------
// Inventory and Cart Operations
// ---------------------------------------------------------------------------

// ListInventoryStockItems lists the stock levels of products given by ID or SKU
func (c *Connector) ListInventoryStockItems(ctx context.Context, idsOrSkus []string) ([]integration.StockItem, error) {
	if len(idsOrSkus) == 0 {
		return nil, integration.ErrNoStockItemIDs
	}

	var items []integration.StockItem
	err := c.call(ctx, "catalogInventoryStockItemList", func(ctx context.Context, session string) error {
		rows, err := c.port.CatalogInventoryStockItemList(ctx, session, idsOrSkus)
		if err != nil {
			return err
		}
		items = make([]integration.StockItem, 0, len(rows))
		for _, row := range rows {
			items = append(items, integration.StockItem{
				ProductID: row.ProductID,
				SKU:       row.SKU,
				Qty:       ParseDecimal(row.Qty),
				InStock:   ParseFlag(row.IsInStock),
			})
		}
		return nil
	})
	return items, err
}

// CreateShoppingCart creates an empty quote and returns its ID
func (c *Connector) CreateShoppingCart(ctx context.Context, storeID string) (int, error) {
	var quoteID int
	err := c.call(ctx, "shoppingCartCreate", func(ctx context.Context, session string) error {
		id, err := c.port.ShoppingCartCreate(ctx, session, c.store(storeID))
		if err != nil {
			return err
		}
		if id <= 0 {
			return integration.ErrGatewayInvalidReply
		}
		quoteID = id
		return nil
	})
	return quoteID, err
}

// AddShoppingCartProducts adds products to a quote
func (c *Connector) AddShoppingCartProducts(ctx context.Context, quoteID int, products []integration.CartProduct, storeID string) error {
	if quoteID <= 0 {
		return integration.ErrInvalidQuoteID
	}
	entities := make([]ShoppingCartProductEntity, 0, len(products))
	for _, p := range products {
		if !p.Qty.IsPositive() {
			return fmt.Errorf("%w: product %s%s", integration.ErrInvalidItemQty, p.ProductID, p.SKU)
		}
		entities = append(entities, ShoppingCartProductEntity{
			ProductID: p.ProductID,
			SKU:       p.SKU,
			Qty:       p.Qty.InexactFloat64(),
		})
	}
	return c.call(ctx, "shoppingCartProductAdd", func(ctx context.Context, session string) error {
		return accepted(c.port.ShoppingCartProductAdd(ctx, session, quoteID, entities, c.store(storeID)))
	})
}

// CreateShoppingCartOrder places the order of a quote and returns the order increment ID
func (c *Connector) CreateShoppingCartOrder(ctx context.Context, quoteID int, storeID string) (string, error) {
	if quoteID <= 0 {
		return "", integration.ErrInvalidQuoteID
	}
	var orderID string
	err := c.call(ctx, "shoppingCartOrder", func(ctx context.Context, session string) error {
		id, err := c.port.ShoppingCartOrder(ctx, session, quoteID, c.store(storeID))
		orderID, err = incrementID(id, err)
		return err
	})
	return orderID, err
}

// ---------------------------------------------------------------------------
// Query Operations
// ---------------------------------------------------------------------------

// ToNativeQuery renders a query's filter in the native grammar
func (c *Connector) ToNativeQuery(q query.Query) (string, error) {
	return c.translator.TranslateQuery(q)
}

// Query translates q and runs it against the listing named by q.Entity.
// Pagination is applied to the returned rows; sort keys are not sent.
func (c *Connector) Query(ctx context.Context, q query.Query) (*integration.QueryResult, error) {
	entity, err := integration.ParseEntityType(q.Entity)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, q.Entity)
	}
	if !entity.IsFilterable() {
		return nil, fmt.Errorf("%w: %s cannot be queried", integration.ErrUnknownEntity, entity)
	}

	filter, err := c.ToNativeQuery(q)
	if err != nil {
		return nil, err
	}
	logger.WithLogger(ctx, c.logger).Debug("running native query",
		zap.String("entity", entity.String()), zap.String("filter", filter))

	result := &integration.QueryResult{Entity: entity, Filter: filter}
	switch entity {
	case integration.EntityOrders:
		rows, err := c.ListOrders(ctx, filter)
		if err != nil {
			return nil, err
		}
		start, end := q.Page.Apply(len(rows))
		result.Total, result.Orders = len(rows), rows[start:end]
	case integration.EntityShipments:
		rows, err := c.ListOrdersShipments(ctx, filter)
		if err != nil {
			return nil, err
		}
		start, end := q.Page.Apply(len(rows))
		result.Total, result.Shipments = len(rows), rows[start:end]
	case integration.EntityInvoices:
		rows, err := c.ListOrdersInvoices(ctx, filter)
		if err != nil {
			return nil, err
		}
		start, end := q.Page.Apply(len(rows))
		result.Total, result.Invoices = len(rows), rows[start:end]
	}
	return result, nil
}

// MetadataKeys lists the queryable entity types
func (c *Connector) MetadataKeys() []integration.EntityType {
	return MetadataKeys()
}

// Metadata returns the queryable fields of an entity type
func (c *Connector) Metadata(entity integration.EntityType) ([]query.Field, error) {
	return Metadata(entity)
}

// ---------------------------------------------------------------------------
// Internal Helpers
// ---------------------------------------------------------------------------

// call runs one gateway operation with a fresh session and a request ID
func (c *Connector) call(ctx context.Context, method string, fn func(ctx context.Context, session string) error) (err error) {
	requestID := uuid.New().String()
	ctx, span := c.tracer.Start(ctx, "storefront."+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("gateway.method", method),
			attribute.String("gateway.request_id", requestID),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	log := logger.WithLogger(ctx, c.logger).With(
		zap.String("method", method),
		zap.String("gateway_request_id", requestID),
	)

	session, err := c.sessions.Session(ctx)
	if err != nil {
		log.Warn("storefront session unavailable", zap.Error(err))
		return fmt.Errorf("%w: %v", integration.ErrSessionUnavailable, err)
	}

	start := time.Now()
	err = fn(ctx, session)
	latency := time.Since(start)
	c.metrics.RecordGatewayCall(ctx, method, latency, err)

	switch {
	case err == nil:
		log.Debug("storefront call succeeded", zap.Duration("latency", latency))
		return nil
	case errors.Is(err, errRefused):
		log.Warn("storefront refused call", zap.Duration("latency", latency))
		return fmt.Errorf("%w: %s", integration.ErrOperationRefused, method)
	case errors.Is(err, integration.ErrGatewayInvalidReply):
		log.Error("storefront reply carried no identifier", zap.Duration("latency", latency))
		return fmt.Errorf("%w: %s", integration.ErrGatewayInvalidReply, method)
	case errors.Is(err, integration.ErrOrderNotFound),
		errors.Is(err, integration.ErrShipmentNotFound),
		errors.Is(err, integration.ErrInvoiceNotFound):
		return err
	default:
		log.Error("storefront call failed", zap.Duration("latency", latency), zap.Error(err))
		return fmt.Errorf("%w: %s: %v", integration.ErrGatewayRequestFailed, method, err)
	}
}

// accepted maps a boolean gateway reply to an error
func accepted(ok bool, err error) error {
	if err != nil {
		return err
	}
	if !ok {
		return errRefused
	}
	return nil
}

// incrementID rejects a successful create reply that names no entity
func incrementID(id string, err error) (string, error) {
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(id) == "" {
		return "", integration.ErrGatewayInvalidReply
	}
	return id, nil
}

func (c *Connector) store(storeID string) string {
	if storeID == "" {
		return c.config.DefaultStoreID
	}
	return storeID
}

func convertItemQtys(items []integration.ItemQty) ([]OrderItemIDQty, error) {
	out := make([]OrderItemIDQty, 0, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("%w: order item %d", err, item.OrderItemID)
		}
		out = append(out, OrderItemIDQty{OrderItemID: item.OrderItemID, Qty: item.Qty.InexactFloat64()})
	}
	return out, nil
}

func convertOrder(e *SalesOrderListEntity) integration.Order {
	return integration.Order{
		IncrementID:   e.IncrementID,
		OrderID:       e.OrderID,
		CustomerID:    e.CustomerID,
		CustomerEmail: e.CustomerEmail,
		Status:        e.Status,
		State:         e.State,
		GrandTotal:    ParseDecimal(e.GrandTotal),
		Currency:      e.OrderCurrencyCode,
		CreatedAt:     parseTimestamp(e.CreatedAt),
		UpdatedAt:     parseTimestamp(e.UpdatedAt),
	}
}

func convertOrderInfo(e *SalesOrderEntity) *integration.OrderInfo {
	info := &integration.OrderInfo{
		Order: convertOrder(&e.SalesOrderListEntity),
		Items: make([]integration.OrderItem, 0, len(e.Items)),
	}
	for _, item := range e.Items {
		info.Items = append(info.Items, integration.OrderItem{
			ItemID:     item.ItemID,
			ProductID:  item.ProductID,
			SKU:        item.SKU,
			Name:       item.Name,
			QtyOrdered: ParseDecimal(item.QtyOrdered),
			Price:      ParseDecimal(item.Price),
		})
	}
	return info
}

func convertShipment(e *SalesOrderShipmentEntity) integration.Shipment {
	s := integration.Shipment{
		IncrementID: e.IncrementID,
		ShipmentID:  e.ShipmentID,
		OrderID:     e.OrderID,
		TotalQty:    ParseDecimal(e.TotalQty),
		IsActive:    ParseFlag(e.IsActive),
		CreatedAt:   parseTimestamp(e.CreatedAt),
	}
	for _, track := range e.Tracks {
		s.Tracks = append(s.Tracks, integration.ShipmentTrack{
			TrackID:     track.TrackID,
			CarrierCode: track.CarrierCode,
			Title:       track.Title,
			Number:      track.Number,
		})
	}
	return s
}

func convertInvoice(e *SalesOrderInvoiceEntity) integration.Invoice {
	return integration.Invoice{
		IncrementID: e.IncrementID,
		InvoiceID:   e.InvoiceID,
		OrderID:     e.OrderID,
		State:       e.State,
		GrandTotal:  ParseDecimal(e.GrandTotal),
		IsActive:    ParseFlag(e.IsActive),
		CreatedAt:   parseTimestamp(e.CreatedAt),
	}
}

// Ensure Connector implements Storefront interface
var _ integration.Storefront = (*Connector)(nil)
