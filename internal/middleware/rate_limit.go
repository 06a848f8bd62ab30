package middleware

import (
	"net/http"
	"sync"

	"attendance-dashboard/internal/shared/apperror"
	"attendance-dashboard/internal/shared/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type KeyedRateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       *sync.Mutex
	r        rate.Limit // jumlah request per detik
	b        int        // burst (kapasitas kantong)
}

func NewKeyedRateLimiter(r rate.Limit, b int) *KeyedRateLimiter {
	return &KeyedRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		mu:       &sync.Mutex{},
		r:        r,
		b:        b,
	}
}

func (l *KeyedRateLimiter) GetLimiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(l.r, l.b)
		l.limiters[key] = limiter
	}

	return limiter
}

func tooMany(c *gin.Context, message string) {
	response.AbortWithError(c, apperror.New(apperror.CodeTooMany, message, http.StatusTooManyRequests))
}

// RateLimitByIP dipakai untuk endpoint login.
func RateLimitByIP(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewKeyedRateLimiter(r, b)
	return func(c *gin.Context) {
		if !limiter.GetLimiter(c.ClientIP()).Allow() {
			tooMany(c, "Too many requests from this IP")
			return
		}
		c.Next()
	}
}

// RateLimitBySession: r = request per detik, b = burst. Harus dipasang
// setelah RequireSession.
func RateLimitBySession(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewKeyedRateLimiter(r, b)
	return func(c *gin.Context) {
		sid := c.GetString("session_id")
		if sid == "" {
			c.Next()
			return
		}
		if !limiter.GetLimiter(sid).Allow() {
			tooMany(c, "Too many requests from this session")
			return
		}
		c.Next()
	}
}
