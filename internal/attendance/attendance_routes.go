package attendance

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, requireSession gin.HandlerFunc) {
	attendances := r.Group("/attendances")
	attendances.Use(requireSession)
	{
		attendances.GET("", h.List)
		attendances.GET("/:id", h.Detail)
	}
}
