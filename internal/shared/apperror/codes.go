package apperror

import "net/http"

// Kode yang dikirim dashboard ke browser. Sebagian besar diturunkan dari
// status HTTP backend absensi lewat ForBackendStatus.
const (
	// Client errors (4xx)
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeTooMany      = "TOO_MANY_REQUESTS"
	// backend menjawab 2xx tapi envelope status:false
	CodeRejected = "REJECTED"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeBadGateway         = "BAD_GATEWAY"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// ForBackendStatus memetakan status non-2xx dari backend ke kode dan status
// yang diteruskan ke client. Status lain (termasuk 5xx backend) jadi 502.
func ForBackendStatus(status int) (string, int) {
	switch status {
	case http.StatusUnauthorized:
		return CodeUnauthorized, status
	case http.StatusForbidden:
		return CodeForbidden, status
	case http.StatusNotFound:
		return CodeNotFound, status
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return CodeInvalidInput, status
	case http.StatusConflict:
		return CodeConflict, status
	case http.StatusTooManyRequests:
		return CodeTooMany, status
	default:
		return CodeBadGateway, http.StatusBadGateway
	}
}
