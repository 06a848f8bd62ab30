package schedule

import (
	"attendance-dashboard/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, requireSession gin.HandlerFunc, rbac middleware.RBACService) {
	schedule := r.Group("/schedule")
	schedule.Use(requireSession)
	{
		read := middleware.RBACAuthorize(rbac, "schedule", "read")
		write := middleware.RBACAuthorize(rbac, "schedule", "write")

		schedule.GET("/working-hours", read, h.GetWorkingHours)
		schedule.PUT("/working-hours", write, h.UpdateWorkingHours)

		schedule.GET("/holidays", read, h.ListHolidays)
		schedule.POST("/holidays", write, h.CreateHoliday)
		schedule.DELETE("/holidays/:id", write, h.DeleteHoliday)
	}
}
