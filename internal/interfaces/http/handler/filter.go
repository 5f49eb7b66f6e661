package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/erp/connector/internal/domain/integration"
	"github.com/erp/connector/internal/infrastructure/logger"
	"github.com/erp/connector/internal/infrastructure/magento"
	"github.com/erp/connector/internal/infrastructure/telemetry"
	"github.com/erp/connector/internal/interfaces/http/dto"
	"github.com/erp/connector/internal/interfaces/http/middleware"
)

// Filter actions recorded in metrics
const (
	actionTranslate = "translate"
	actionParse     = "parse"
)

// FilterHandler translates between JSON expressions and native filters.
// It needs no storefront connection.
type FilterHandler struct {
	BaseHandler
	translator *magento.Translator
	parser     *magento.Parser
	metrics    *telemetry.ConnectorMetrics
}

// NewFilterHandler creates a new FilterHandler. metrics may be nil.
func NewFilterHandler(translator *magento.Translator, parser *magento.Parser, metrics *telemetry.ConnectorMetrics) *FilterHandler {
	return &FilterHandler{
		translator: translator,
		parser:     parser,
		metrics:    metrics,
	}
}

// Translate renders a JSON expression as a native filter.
// POST /filters/translate
func (h *FilterHandler) Translate(c *gin.Context) {
	var req dto.TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	ctx := c.Request.Context()
	start := time.Now()
	resp, err := h.translate(&req)
	h.metrics.RecordFilter(ctx, actionTranslate, req.Entity, time.Since(start), err)
	if err != nil {
		logger.L(ctx).Warn("Filter translation failed",
			zap.String("entity", req.Entity),
			zap.Error(err),
		)
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

func (h *FilterHandler) translate(req *dto.TranslateRequest) (*dto.TranslateResponse, error) {
	q, err := req.ToQuery()
	if err != nil {
		return nil, err
	}
	filter, err := h.translator.TranslateQuery(q)
	if err != nil {
		return nil, err
	}

	resp := &dto.TranslateResponse{Entity: req.Entity, Filter: filter}
	filters, err := h.translator.Filters(q.Filter)
	switch {
	case err == nil:
		resp.Filters = filters
		resp.GatewayCompatible = true
	case !errors.Is(err, magento.ErrUnsupportedFilter):
		return nil, err
	}
	return resp, nil
}

// Parse reads a native filter back into its JSON expression.
// POST /filters/parse
func (h *FilterHandler) Parse(c *gin.Context) {
	var req dto.ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	ctx := c.Request.Context()
	start := time.Now()
	resp, err := h.parse(req.Filter)
	h.metrics.RecordFilter(ctx, actionParse, "", time.Since(start), err)
	if err != nil {
		logger.L(ctx).Warn("Filter parse failed", zap.Error(err))
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

func (h *FilterHandler) parse(filter string) (*dto.ParseResponse, error) {
	expr, err := h.parser.Parse(filter)
	if err != nil {
		return nil, err
	}
	canonical := ""
	if expr != nil {
		if canonical, err = h.translator.Translate(expr); err != nil {
			return nil, err
		}
	}

	resp := &dto.ParseResponse{
		Filter:     canonical,
		Expression: dto.FromExpression(expr),
	}
	filters, err := h.translator.Filters(expr)
	switch {
	case err == nil:
		resp.Filters = filters
		resp.GatewayCompatible = true
	case !errors.Is(err, magento.ErrUnsupportedFilter):
		return nil, err
	}
	return resp, nil
}

// ListMetadata lists the queryable entities.
// GET /metadata
func (h *FilterHandler) ListMetadata(c *gin.Context) {
	keys := magento.MetadataKeys()
	resp := dto.MetadataResponse{Entities: make([]string, 0, len(keys))}
	for _, k := range keys {
		resp.Entities = append(resp.Entities, k.String())
	}
	h.Success(c, resp)
}

// GetMetadata lists the queryable fields of an entity.
// GET /metadata/:entity
func (h *FilterHandler) GetMetadata(c *gin.Context) {
	entity, err := integration.ParseEntityType(c.Param("entity"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	fields, err := magento.Metadata(entity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewEntityMetadataResponse(entity, fields))
}
