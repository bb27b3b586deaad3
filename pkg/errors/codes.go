package errors

import "net/http"

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes.
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeUnauthorized       ErrorCode = "COMMON_003"
	ErrCodeNotFound           ErrorCode = "COMMON_004"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_005"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_006"
	ErrCodeTimeout            ErrorCode = "COMMON_007"
	ErrCodeValidation         ErrorCode = "COMMON_008"
	ErrCodeSerialization      ErrorCode = "COMMON_009"
	ErrCodeUnknown            ErrorCode = "COMMON_000"

	CodeOK ErrorCode = "OK"
)

// Query interpretation error codes.
const (
	// ErrCodeInvalidQuery marks a query that could not be interpreted at
	// all (non-string input on an API boundary, empty query text).
	ErrCodeInvalidQuery ErrorCode = "QRY_001"

	// ErrCodeNoElementsFound marks a query that contained no recognizable
	// element names, symbols, or formula-like tokens. It is a "no results"
	// condition for the caller, never a crash.
	ErrCodeNoElementsFound ErrorCode = "QRY_002"

	// ErrCodeEmptyCriteria marks an internal invariant violation: criteria
	// construction reached with an empty symbol list.
	ErrCodeEmptyCriteria ErrorCode = "QRY_003"
)

// Upstream (Materials Project) error codes.
const (
	// ErrCodeUpstreamUnavailable marks a transport-level failure reaching
	// the materials database. Never retried automatically.
	ErrCodeUpstreamUnavailable ErrorCode = "UPS_001"

	// ErrCodeUpstreamRejected marks an authentication or validation failure
	// reported by the materials database (bad API key, malformed field).
	ErrCodeUpstreamRejected ErrorCode = "UPS_002"
)

// Configuration error codes.
const (
	// ErrCodeMissingAPIKey marks a request that reached a search path
	// without an API key; the caller must short-circuit before criteria
	// building.
	ErrCodeMissingAPIKey ErrorCode = "CFG_001"

	// ErrCodeInvalidConfig marks an invalid configuration value.
	ErrCodeInvalidConfig ErrorCode = "CFG_002"
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,

	ErrCodeInvalidQuery:    http.StatusBadRequest,
	ErrCodeNoElementsFound: http.StatusUnprocessableEntity,
	ErrCodeEmptyCriteria:   http.StatusInternalServerError,

	ErrCodeUpstreamUnavailable: http.StatusBadGateway,
	ErrCodeUpstreamRejected:    http.StatusUnauthorized,

	ErrCodeMissingAPIKey: http.StatusUnauthorized,
	ErrCodeInvalidConfig: http.StatusInternalServerError,
}

// HTTPStatus returns the HTTP status code for c, defaulting to 500 for
// unmapped codes.
func (c ErrorCode) HTTPStatus() int {
	if s, ok := ErrorCodeHTTPStatus[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}
