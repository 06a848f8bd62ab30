package qrerrors

import (
	"net/http"

	"attendance-dashboard/internal/shared/apperror"
)

var (
	ErrEmptyToken = apperror.New(
		apperror.CodeBadGateway,
		"Attendance service returned an empty QR token",
		http.StatusBadGateway,
	)
	ErrInvalidSize = apperror.New(
		apperror.CodeInvalidInput,
		"size must be between 128 and 1024",
		http.StatusBadRequest,
	)
)
