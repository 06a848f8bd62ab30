package autherrors

import (
	"net/http"

	"attendance-dashboard/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Email atau password salah",
		http.StatusUnauthorized,
	)
	ErrTokenExpired = apperror.New(
		apperror.CodeUnauthorized,
		"Token sudah kedaluwarsa, silakan login ulang",
		http.StatusUnauthorized,
	)
	ErrMissingToken = apperror.New(
		apperror.CodeBadGateway,
		"Attendance service did not return a token",
		http.StatusBadGateway,
	)
	ErrSessionStore = apperror.New(
		apperror.CodeServiceUnavailable,
		"Session could not be stored, please try again",
		http.StatusServiceUnavailable,
	)
)
