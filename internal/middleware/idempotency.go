package middleware

import (
	"fmt"
	"net/http"
	"time"

	"attendance-dashboard/internal/shared/apperror"
	"attendance-dashboard/internal/shared/contextutil"
	"attendance-dashboard/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const IdempotencyHeader = "Idempotency-Key"

var ErrDuplicateSubmission = apperror.New(
	apperror.CodeConflict,
	"Permintaan Anda sedang atau sudah diproses, mohon tunggu sebentar.",
	http.StatusConflict,
)

func IdempotencyKey(path, sessionID, key string) string {
	return fmt.Sprintf("idemp:%s:%s:%s", path, sessionID, key)
}

// Idempotency mencegah clock-in/clock-out terkirim dua kali dengan
// Idempotency-Key yang sama. Key dipegang selama ttl kalau request sukses,
// dan dilepas lagi kalau gagal supaya user bisa mencoba ulang.
func Idempotency(rdb redis.Cmdable, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader(IdempotencyHeader)
		if rdb == nil || idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		logger := contextutil.GetLogger(ctx, zap.L())
		lockKey := IdempotencyKey(c.FullPath(), c.GetString("session_id"), idempKey)

		// ATOMIC LOCK (SetNX): kalau key sudah ada berarti request sama pernah masuk
		isNew, err := rdb.SetNX(ctx, lockKey, "locked", ttl).Result()
		if err != nil {
			logger.Warn("idempotency lock unavailable, continuing", zap.Error(err))
			c.Next()
			return
		}
		if !isNew {
			response.AbortWithError(c, ErrDuplicateSubmission)
			return
		}

		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			if err := rdb.Del(ctx, lockKey).Err(); err != nil {
				logger.Warn("failed to release idempotency lock", zap.String("key", lockKey), zap.Error(err))
			}
		}
	}
}
