package backend

import (
	"errors"
	"fmt"
	"net/http"

	"attendance-dashboard/internal/shared/apperror"
)

// TransportError: request tidak pernah mendapat response yang bisa dibaca
// (DNS, koneksi ditolak, timeout, body rusak).
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPStatusError: backend menjawab dengan status non-2xx.
type HTTPStatusError struct {
	StatusCode int
	Message    string
}

func (e *HTTPStatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// ApplicationError: status 2xx tetapi envelope berisi status=false.
type ApplicationError struct {
	Message string
}

func (e *ApplicationError) Error() string {
	if e.Message == "" {
		return "request was rejected by the backend"
	}
	return e.Message
}

// ToAppError memetakan taksonomi error backend ke AppError untuk response
// dashboard. Error lain dikembalikan apa adanya.
func ToAppError(err error) error {
	if err == nil {
		return nil
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return apperror.Wrap(err, apperror.ErrBackendUnavailable.Code, apperror.ErrBackendUnavailable.Message, apperror.ErrBackendUnavailable.HTTPStatus)
	}

	var appErr *ApplicationError
	if errors.As(err, &appErr) {
		return apperror.Wrap(err, apperror.CodeRejected, appErr.Error(), http.StatusUnprocessableEntity)
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		code, status := apperror.ForBackendStatus(statusErr.StatusCode)
		return apperror.Wrap(err, code, statusMessage(code, statusErr), status)
	}

	return err
}

func statusMessage(code string, err *HTTPStatusError) string {
	switch code {
	case apperror.CodeConflict, apperror.CodeBadGateway:
		return err.Error()
	case apperror.CodeTooMany:
		return "Too many requests to attendance service"
	}
	if err.Message != "" {
		return err.Message
	}

	switch code {
	case apperror.CodeUnauthorized:
		return "Session expired, please log in again"
	case apperror.CodeForbidden:
		return apperror.ErrForbidden.Message
	case apperror.CodeNotFound:
		return apperror.ErrNotFound.Message
	default:
		return apperror.ErrInvalidInput.Message
	}
}
