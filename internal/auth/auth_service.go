package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	autherrors "attendance-dashboard/internal/auth/errors"
	"attendance-dashboard/internal/bootstrap"
	"attendance-dashboard/internal/credential"
	"attendance-dashboard/internal/events"
	"attendance-dashboard/internal/shared/backend"
	"attendance-dashboard/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionStore dipenuhi oleh *credential.Chain.
type SessionStore interface {
	Save(ctx context.Context, sessionID, token string, remember bool, ttl time.Duration) error
	SaveRole(ctx context.Context, sessionID, role string, remember bool, ttl time.Duration) error
	Clear(ctx context.Context, sessionID string) error
}

type Options struct {
	SessionTTL  time.Duration
	RememberTTL time.Duration
}

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	Me(ctx context.Context) (json.RawMessage, error)
}

type service struct {
	repo         Repository
	sessions     SessionStore
	audit        bootstrap.AuditLogger
	opts         Options
	now          func() time.Time
	newSessionID func() string
	logger       *zap.Logger
}

func NewService(repo Repository, sessions SessionStore, audit bootstrap.AuditLogger, opts Options) Service {
	return &service{
		repo:         repo,
		sessions:     sessions,
		audit:        audit,
		opts:         opts,
		now:          time.Now,
		newSessionID: uuid.NewString,
		logger:       zap.L().Named("auth.service"),
	}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	// 1. Kredensial diverifikasi backend
	res, err := s.repo.Login(ctx, email, req.Password)
	if err != nil {
		return LoginResult{}, mapLoginError(err)
	}
	if res.Token == "" {
		return LoginResult{}, autherrors.ErrMissingToken
	}

	// 2. Role dan umur token dari claims; token opaque memakai data user
	fallback := s.opts.SessionTTL
	if req.Remember {
		fallback = s.opts.RememberTTL
	}
	ttl := fallback
	role := ""
	if claims, err := credential.ParseClaims(res.Token); err == nil {
		role = claims.Role
		ttl = claims.TTL(s.now(), fallback)
		if ttl <= 0 {
			return LoginResult{}, autherrors.ErrTokenExpired
		}
		if !req.Remember && ttl > fallback {
			ttl = fallback
		}
	}
	if role == "" {
		var u userRole
		if len(res.User) > 0 && json.Unmarshal(res.User, &u) == nil {
			role = credential.NormalizeRole(u.Role)
		}
	}

	// 3. Simpan token di store sesuai pilihan "remember me"
	sid := s.newSessionID()
	log := contextutil.GetLogger(ctx, s.logger)
	if err := s.sessions.Save(ctx, sid, res.Token, req.Remember, ttl); err != nil {
		log.Error("save session token failed", zap.Error(err))
		return LoginResult{}, autherrors.ErrSessionStore
	}
	if role != "" {
		if err := s.sessions.SaveRole(ctx, sid, role, req.Remember, ttl); err != nil {
			log.Warn("save session role failed", zap.Error(err))
		}
	}

	auditCtx := contextutil.WithRole(contextutil.WithSessionID(ctx, sid), role)
	s.audit.Log(auditCtx, bootstrap.AuditLog{
		Action:  events.EventLogin,
		Message: "user logged in",
		Meta: map[string]any{
			"email":    email,
			"remember": req.Remember,
		},
	})

	return LoginResult{
		SessionID: sid,
		Remember:  req.Remember,
		TTL:       ttl,
		User:      res.User,
		Role:      role,
	}, nil
}

// Logout tetap menghapus session lokal walaupun backend menolak atau mati.
func (s *service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	ctx = contextutil.WithSessionID(ctx, sessionID)
	log := contextutil.GetLogger(ctx, s.logger)

	if err := s.repo.Logout(ctx); err != nil {
		log.Warn("backend logout failed, clearing local session anyway", zap.Error(err))
	}

	if err := s.sessions.Clear(ctx, sessionID); err != nil {
		log.Error("clear session failed", zap.Error(err))
		return autherrors.ErrSessionStore
	}

	s.audit.Log(ctx, bootstrap.AuditLog{
		Action:  events.EventLogout,
		Message: "user logged out",
	})
	return nil
}

func (s *service) Me(ctx context.Context) (json.RawMessage, error) {
	user, err := s.repo.Me(ctx)
	if err != nil {
		return nil, backend.ToAppError(err)
	}
	return user, nil
}

func mapLoginError(err error) error {
	var statusErr *backend.HTTPStatusError
	if errors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case http.StatusUnauthorized, http.StatusUnprocessableEntity, http.StatusBadRequest:
			return autherrors.ErrInvalidCredentials
		}
	}
	var appErr *backend.ApplicationError
	if errors.As(err, &appErr) {
		return autherrors.ErrInvalidCredentials
	}
	return backend.ToAppError(err)
}
