package app

import (
	"time"

	"attendance-dashboard/internal/announcement"
	"attendance-dashboard/internal/attendance"
	"attendance-dashboard/internal/auth"
	"attendance-dashboard/internal/bootstrap"
	"attendance-dashboard/internal/config"
	"attendance-dashboard/internal/credential"
	"attendance-dashboard/internal/middleware"
	"attendance-dashboard/internal/qr"
	"attendance-dashboard/internal/rbac"
	"attendance-dashboard/internal/schedule"
	"attendance-dashboard/internal/shared/backend"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = 10 * time.Minute

type moduleDeps struct {
	cfg    config.Config
	client *backend.Client
	chain  *credential.Chain
	rdb    *redis.Client
	audit  bootstrap.AuditLogger
}

func registerModules(router *gin.Engine, d moduleDeps) error {
	// --- Repositories ---
	rbacRepo, err := rbac.NewRepository(d.cfg.RBACPolicyFile)
	if err != nil {
		return err
	}
	authRepo := auth.NewRepository(d.client)
	attendanceRepo := attendance.NewRepository(d.client)
	qrRepo := qr.NewRepository(d.client)
	announcementRepo := announcement.NewRepository(d.client)
	scheduleRepo := schedule.NewRepository(d.client)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)
	if err := rbacService.LoadPolicy(); err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(authRepo, d.chain, d.audit, auth.Options{
		SessionTTL:  d.cfg.SessionTTL,
		RememberTTL: d.cfg.RememberTTL,
	})
	attendanceService := attendance.NewService(attendanceRepo)
	qrService := qr.NewService(qrRepo, d.audit)
	announcementService := announcement.NewService(announcementRepo, d.audit)
	scheduleService := schedule.NewService(scheduleRepo, d.rdb, d.audit)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, d.cfg.IsProduction())
	attendanceHandler := attendance.NewHandler(attendanceService)
	qrHandler := qr.NewHandler(qrService)
	announcementHandler := announcement.NewHandler(announcementService)
	scheduleHandler := schedule.NewHandler(scheduleService)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Middleware ---
	requireSession := middleware.RequireSession(d.chain)

	// *redis.Client nil tidak boleh masuk sebagai redis.Cmdable
	var idempotency gin.HandlerFunc
	if d.rdb != nil {
		idempotency = middleware.Idempotency(d.rdb, idempotencyTTL)
	}

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, requireSession)
		attendance.RegisterRoutes(api, attendanceHandler, requireSession)
		qr.RegisterRoutes(api, qrHandler, qr.RouteDeps{
			RequireSession: requireSession,
			RBAC:           rbacService,
			Idempotency:    idempotency,
		})
		announcement.RegisterRoutes(api, announcementHandler, requireSession, rbacService)
		schedule.RegisterRoutes(api, scheduleHandler, requireSession, rbacService)
		rbac.RegisterRoutes(api, rbacHandler, requireSession)
	}

	return nil
}
