package auth

import (
	"attendance-dashboard/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, requireSession gin.HandlerFunc) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(0.08, 5), handler.Login)
		auth.POST("/logout", handler.Logout)
		auth.GET("/me", requireSession, middleware.RateLimitBySession(2, 5), handler.Me)
	}
}
