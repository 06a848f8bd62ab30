package qr

import (
	"attendance-dashboard/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RouteDeps mengumpulkan middleware yang dibutuhkan route QR.
type RouteDeps struct {
	RequireSession gin.HandlerFunc
	RBAC           middleware.RBACService
	Idempotency    gin.HandlerFunc
}

func RegisterRoutes(r *gin.RouterGroup, h *Handler, deps RouteDeps) {
	qr := r.Group("/qr")
	qr.Use(deps.RequireSession)
	{
		qr.GET("", middleware.RBACAuthorize(deps.RBAC, "qr", "display"), h.Current)
		qr.GET("/image.png", middleware.RBACAuthorize(deps.RBAC, "qr", "display"), h.Image)

		scan := []gin.HandlerFunc{
			middleware.RBACAuthorize(deps.RBAC, "attendance", "create"),
			middleware.RateLimitBySession(0.2, 3),
		}
		if deps.Idempotency != nil {
			scan = append(scan, deps.Idempotency)
		}
		withScan := func(handler gin.HandlerFunc) []gin.HandlerFunc {
			return append(append([]gin.HandlerFunc{}, scan...), handler)
		}
		qr.POST("/clock-in", withScan(h.ClockIn)...)
		qr.POST("/clock-out", withScan(h.ClockOut)...)
	}
}
