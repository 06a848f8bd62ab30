package scheduleerrors

import (
	"net/http"

	"attendance-dashboard/internal/shared/apperror"
)

var (
	ErrIncompleteWeek = apperror.New(
		apperror.CodeInvalidInput,
		"working hours must contain exactly one entry for each day of the week",
		http.StatusBadRequest,
	)
	ErrInvalidTime = apperror.New(
		apperror.CodeInvalidInput,
		"time must use HH:MM format",
		http.StatusBadRequest,
	)
	ErrInvalidTimeRange = apperror.New(
		apperror.CodeInvalidInput,
		"end_time must be after start_time",
		http.StatusBadRequest,
	)
	ErrInvalidHolidayID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid holiday id",
		http.StatusBadRequest,
	)
)
