package qr

import (
	"net/http"

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

func (h *Handler) Current(c *gin.Context) {
	tok, err := h.service.CurrentToken(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, tok, nil)
}

func (h *Handler) Image(c *gin.Context) {
	var q ImageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	png, err := h.service.Image(c.Request.Context(), q.Size)
	if err != nil {
		response.FromError(c, err)
		return
	}

	// token QR berganti periodik, jangan di-cache browser
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}

func (h *Handler) ClockIn(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	data, err := h.service.ClockIn(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, data, nil)
}

func (h *Handler) ClockOut(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	data, err := h.service.ClockOut(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, data, nil)
}
