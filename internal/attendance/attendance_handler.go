package attendance

import (
	"net/http"
	"strconv"

	attendanceerrors "attendance-dashboard/internal/attendance/errors"
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

func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	res, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		response.FromError(c, err)
		return
	}

	meta := response.NewPaginationMeta(res.Total, res.Page, res.Limit)
	response.Success(c, http.StatusOK, res.Items, &meta)
}

// Detail mengembalikan state fetcher. Saat gagal, state tetap dikirim
// sebagai error.details supaya dashboard bisa menampilkan pesan backend.
func (h *Handler) Detail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.FromError(c, attendanceerrors.ErrInvalidRecordID)
		return
	}

	state, err := h.service.Detail(c.Request.Context(), id)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, state)
		return
	}
	response.Success(c, http.StatusOK, state, nil)
}
