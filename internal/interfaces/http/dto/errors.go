package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for request validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeValidationRequired is used when a required field is missing
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	// ErrCodeValidationFormat is used when a field has invalid format
	ErrCodeValidationFormat = "ERR_VALIDATION_FORMAT"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
	// ErrCodeRequestTooLarge is used when the body exceeds the size limit
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
	// ErrCodeRateLimited is used when a client sends too many requests
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeUnknownEntity is used for an unknown storefront listing
	ErrCodeUnknownEntity = "ERR_UNKNOWN_ENTITY"
)

// Filter error codes
const (
	// ErrCodeInvalidExpression is used for malformed expression trees
	ErrCodeInvalidExpression = "ERR_INVALID_EXPRESSION"
	// ErrCodeUnsupportedOperator is used when an operator has no native form
	ErrCodeUnsupportedOperator = "ERR_UNSUPPORTED_OPERATOR"
	// ErrCodeArityMismatch is used when an operator gets the wrong number of values
	ErrCodeArityMismatch = "ERR_ARITY_MISMATCH"
	// ErrCodeTypeMismatch is used when a value does not fit the field type
	ErrCodeTypeMismatch = "ERR_TYPE_MISMATCH"
	// ErrCodeInvalidFilter is used when a native filter string cannot be parsed
	ErrCodeInvalidFilter = "ERR_INVALID_FILTER"
	// ErrCodeUnsupportedFilter is used when a filter cannot be sent to the gateway
	ErrCodeUnsupportedFilter = "ERR_UNSUPPORTED_FILTER"
)

// Gateway error codes
const (
	// ErrCodeGatewayUnavailable is used when no storefront session can be obtained
	ErrCodeGatewayUnavailable = "ERR_GATEWAY_UNAVAILABLE"
	// ErrCodeGatewayFailed is used when the storefront call fails
	ErrCodeGatewayFailed = "ERR_GATEWAY_FAILED"
	// ErrCodeOperationRefused is used when the storefront answers false
	ErrCodeOperationRefused = "ERR_OPERATION_REFUSED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationFormat:   http.StatusBadRequest,

	// Input errors
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeRateLimited:     http.StatusTooManyRequests,

	// Resource errors
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeUnknownEntity: http.StatusNotFound,

	// Filter errors -> 400, except filters the gateway cannot carry
	ErrCodeInvalidExpression:   http.StatusBadRequest,
	ErrCodeUnsupportedOperator: http.StatusBadRequest,
	ErrCodeArityMismatch:       http.StatusBadRequest,
	ErrCodeTypeMismatch:        http.StatusBadRequest,
	ErrCodeInvalidFilter:       http.StatusBadRequest,
	ErrCodeUnsupportedFilter:   http.StatusUnprocessableEntity,

	// Gateway errors
	ErrCodeGatewayUnavailable: http.StatusServiceUnavailable,
	ErrCodeGatewayFailed:      http.StatusBadGateway,
	ErrCodeOperationRefused:   http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
