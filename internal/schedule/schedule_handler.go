package schedule

import (
	"net/http"
	"strconv"

	scheduleerrors "attendance-dashboard/internal/schedule/errors"
	"attendance-dashboard/internal/shared/apperror"
	"attendance-dashboard/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetWorkingHours(c *gin.Context) {
	data, err := h.service.GetWorkingHours(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, data, nil)
}

func (h *Handler) UpdateWorkingHours(c *gin.Context) {
	var req UpdateWorkingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	data, err := h.service.UpdateWorkingHours(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, data, nil)
}

func (h *Handler) ListHolidays(c *gin.Context) {
	var q HolidayQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	data, err := h.service.ListHolidays(c.Request.Context(), q.Year)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, data, nil)
}

func (h *Handler) CreateHoliday(c *gin.Context) {
	var req CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	data, err := h.service.CreateHoliday(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, data, nil)
}

func (h *Handler) DeleteHoliday(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.FromError(c, scheduleerrors.ErrInvalidHolidayID)
		return
	}

	if err := h.service.DeleteHoliday(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id}, nil)
}
