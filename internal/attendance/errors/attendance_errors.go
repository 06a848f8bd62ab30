package attendanceerrors

import (
	"net/http"

	"attendance-dashboard/internal/shared/apperror"
)

var (
	ErrInvalidRecordID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid attendance record id",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"date_from must be before or equal date_to",
		http.StatusBadRequest,
	)
)
