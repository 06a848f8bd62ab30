package app

import (
	"context"
	"net/http"
	"time"

	"attendance-dashboard/internal/bootstrap"
	"attendance-dashboard/internal/config"
	"attendance-dashboard/internal/credential"
	"attendance-dashboard/internal/middleware"
	"attendance-dashboard/internal/shared/backend"
	"attendance-dashboard/internal/shared/connection"
	"attendance-dashboard/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const sessionSweepInterval = time.Minute

// App menyimpan dependency yang perlu ditutup saat shutdown.
type App struct {
	Audit   bootstrap.AuditLogger
	closers []func()
}

// Close dipanggil setelah HTTP server berhenti, urutan terbalik dari pembuatan.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func BuildApp(router *gin.Engine, cfg config.Config) (*App, error) {
	logger := zap.L().Named("app")
	a := &App{}

	ctx, cancel := context.WithCancel(context.Background())
	a.closers = append(a.closers, cancel)

	// 1. Setup Infrastructure
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		client, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
		if err != nil {
			a.Close()
			return nil, err
		}
		rdb = client
		a.closers = append(a.closers, func() { _ = rdb.Close() })
		logger.Info("redis connection established", zap.String("addr", cfg.RedisAddr))
	} else {
		logger.Warn("REDIS_ADDR not set, remembered sessions will not survive a restart")
	}

	// 2. Credential store: persistent (remember me) + session
	persistent, sessions, sweepers := credentialStores(rdb)
	go sweepSessions(ctx, sessionSweepInterval, logger, sweepers...)
	chain := credential.NewChain(persistent, sessions, logger)

	client := backend.New(cfg.BackendURL, chain,
		backend.WithHTTPClient(&http.Client{Timeout: cfg.BackendTimeout}),
		backend.WithLogger(logger),
	)

	// 3. Audit pipeline
	audit, stopAudit, err := startAudit(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Audit = audit
	a.closers = append(a.closers, stopAudit)

	// 4. Global middleware
	router.Use(middleware.RequestID(), middleware.ContextLogger(zap.L()))
	if !cfg.IsProduction() {
		router.Use(middleware.CORS(cfg.CORSOrigins))
	}

	router.GET("/healthz", func(c *gin.Context) {
		status := gin.H{"backend_url": client.BaseURL(), "redis": "disabled"}
		if rdb != nil {
			status["redis"] = "ok"
			if err := rdb.Ping(c.Request.Context()).Err(); err != nil {
				status["redis"] = err.Error()
			}
		}
		response.Success(c, http.StatusOK, status, nil)
	})

	// 5. Register Modules & Routes
	if err := registerModules(router, moduleDeps{
		cfg:    cfg,
		client: client,
		chain:  chain,
		rdb:    rdb,
		audit:  audit,
	}); err != nil {
		a.Close()
		return nil, err
	}

	return a, nil
}

type sweeper interface {
	Sweep() int
}

// credentialStores menyiapkan store persistent dan session. Tanpa Redis,
// store persistent juga di memory sehingga ikut disapu berkala.
func credentialStores(rdb *redis.Client) (credential.Store, *credential.MemoryStore, []sweeper) {
	sessions := credential.NewMemoryStore()
	if rdb != nil {
		return credential.NewRedisStore(rdb), sessions, []sweeper{sessions}
	}

	persistent := credential.NewMemoryStore()
	return persistent, sessions, []sweeper{persistent, sessions}
}

func sweepSessions(ctx context.Context, interval time.Duration, logger *zap.Logger, stores ...sweeper) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, store := range stores {
				if n := store.Sweep(); n > 0 {
					logger.Debug("expired sessions removed", zap.Int("count", n))
				}
			}
		}
	}
}
