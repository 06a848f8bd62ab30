package rbac

import (
	"net/http"
	"strings"

	"attendance-dashboard/internal/domain"
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

type enforceBody struct {
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

// Enforce mengecek satu permission untuk role session saat ini.
func (h *Handler) Enforce(c *gin.Context) {
	var body enforceBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	allowed, err := h.service.Enforce(domain.EnforceRequest{
		Role:     c.GetString("role"),
		Resource: strings.TrimSpace(body.Resource),
		Action:   strings.TrimSpace(body.Action),
	})
	if err != nil {
		response.FromError(c, apperror.Wrap(err, apperror.CodeInternalError, apperror.ErrInternal.Message, http.StatusInternalServerError))
		return
	}

	response.Success(c, http.StatusOK, domain.EnforceResponse{Allowed: allowed}, nil)
}

func (h *Handler) Permissions(c *gin.Context) {
	role := c.GetString("role")
	perms, err := h.service.Permissions(role)
	if err != nil {
		response.FromError(c, apperror.Wrap(err, apperror.CodeInternalError, apperror.ErrInternal.Message, http.StatusInternalServerError))
		return
	}

	response.Success(c, http.StatusOK, domain.RolePermissionsResponse{Role: role, Permissions: perms}, nil)
}
