package middleware

import (
	"context"

	"attendance-dashboard/internal/credential"
	"attendance-dashboard/internal/shared/apperror"
	"attendance-dashboard/internal/shared/contextutil"
	"attendance-dashboard/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	SessionCookie = "sid"
	SessionHeader = "X-Session-ID"
)

// SessionResolver dipenuhi oleh *credential.Chain.
type SessionResolver interface {
	Lookup(ctx context.Context, sessionID string) (string, bool)
	Role(ctx context.Context, sessionID string) string
}

// SessionID membaca session dashboard dari cookie, lalu header (dipakai CLI).
func SessionID(c *gin.Context) string {
	if sid, err := c.Cookie(SessionCookie); err == nil && sid != "" {
		return sid
	}
	return c.GetHeader(SessionHeader)
}

func RequireSession(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := SessionID(c)
		if sid == "" {
			response.AbortWithError(c, apperror.ErrUnauthorized)
			return
		}

		ctx := c.Request.Context()
		token, ok := resolver.Lookup(ctx, sid)
		if !ok {
			response.AbortWithError(c, apperror.ErrUnauthorized)
			return
		}

		var userID string
		role := ""
		if claims, err := credential.ParseClaims(token); err == nil {
			role = claims.Role
			userID = claims.Subject
		}
		if role == "" {
			role = credential.NormalizeRole(resolver.Role(ctx, sid))
		}

		c.Set("session_id", sid)
		c.Set("user_id", userID)
		c.Set("role", role)

		ctx = contextutil.WithSessionID(ctx, sid)
		ctx = contextutil.WithRole(ctx, role)
		ctx = contextutil.WithLogger(ctx, contextutil.GetLogger(ctx, zap.L()).With(
			zap.String("session_id", sid),
			zap.String("role", role),
		))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
