package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/erp/connector/internal/domain/integration"
	"github.com/erp/connector/internal/domain/query"
	"github.com/erp/connector/internal/infrastructure/magento"
	"github.com/erp/connector/internal/interfaces/http/dto"
	"github.com/erp/connector/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString(middleware.RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(middleware.RequestIDHeader)
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// ErrorWithCode sends an error response, deriving status code from error code
func (h *BaseHandler) ErrorWithCode(c *gin.Context, code, message string) {
	h.Error(c, dto.GetHTTPStatus(code), code, message)
}

// HandleError converts connector errors to HTTP responses.
// Unknown errors become 500 without leaking their text.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)

	code, ok := errorCode(err)
	if !ok {
		h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred")
		return
	}
	h.ErrorWithCode(c, code, err.Error())
}

// errorMapping maps a sentinel error to a response code
type errorMapping struct {
	err  error
	code string
}

// errorMappings is checked in order; the first sentinel found in the chain wins
var errorMappings = []errorMapping{
	{query.ErrUnsupportedOperator, dto.ErrCodeUnsupportedOperator},
	{query.ErrArityMismatch, dto.ErrCodeArityMismatch},
	{query.ErrTypeMismatch, dto.ErrCodeTypeMismatch},
	{query.ErrUnknownFieldType, dto.ErrCodeTypeMismatch},
	{query.ErrEmptyGroup, dto.ErrCodeInvalidExpression},
	{query.ErrNilExpression, dto.ErrCodeInvalidExpression},
	{query.ErrEmptyFieldName, dto.ErrCodeInvalidExpression},
	{query.ErrInvalidFieldName, dto.ErrCodeInvalidExpression},
	{dto.ErrInvalidNode, dto.ErrCodeInvalidExpression},
	{dto.ErrExpressionTooDeep, dto.ErrCodeInvalidExpression},
	{magento.ErrInvalidFilter, dto.ErrCodeInvalidFilter},
	{magento.ErrUnsupportedFilter, dto.ErrCodeUnsupportedFilter},

	{integration.ErrUnknownEntity, dto.ErrCodeUnknownEntity},
	{integration.ErrOrderNotFound, dto.ErrCodeNotFound},
	{integration.ErrShipmentNotFound, dto.ErrCodeNotFound},
	{integration.ErrInvoiceNotFound, dto.ErrCodeNotFound},
	{integration.ErrInvalidOrderID, dto.ErrCodeValidationRequired},
	{integration.ErrInvalidShipmentID, dto.ErrCodeValidationRequired},
	{integration.ErrInvalidInvoiceID, dto.ErrCodeValidationRequired},
	{integration.ErrInvalidQuoteID, dto.ErrCodeValidationRequired},
	{integration.ErrNoStockItemIDs, dto.ErrCodeValidationRequired},
	{integration.ErrInvalidItemQty, dto.ErrCodeValidationFormat},
	{integration.ErrOperationRefused, dto.ErrCodeOperationRefused},
	{integration.ErrGatewayNotConfigured, dto.ErrCodeGatewayUnavailable},
	{integration.ErrSessionUnavailable, dto.ErrCodeGatewayUnavailable},
	{integration.ErrGatewayRequestFailed, dto.ErrCodeGatewayFailed},
	{integration.ErrGatewayInvalidReply, dto.ErrCodeGatewayFailed},
}

func errorCode(err error) (string, bool) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return m.code, true
		}
	}
	return "", false
}
