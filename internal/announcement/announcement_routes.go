package announcement

import (
	"attendance-dashboard/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, requireSession gin.HandlerFunc, rbac middleware.RBACService) {
	announcements := r.Group("/announcements")
	announcements.Use(requireSession)
	{
		announcements.GET("", middleware.RBACAuthorize(rbac, "announcement", "read"), h.List)
		announcements.GET("/:id", middleware.RBACAuthorize(rbac, "announcement", "read"), h.GetByID)

		write := middleware.RBACAuthorize(rbac, "announcement", "write")
		announcements.POST("", write, h.Create)
		announcements.PUT("/:id", write, h.Update)
		announcements.DELETE("/:id", write, h.Delete)
	}
}
