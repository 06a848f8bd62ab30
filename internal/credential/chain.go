package credential

import (
	"context"
	"errors"
	"time"

	"attendance-dashboard/internal/shared/contextutil"

	"go.uber.org/zap"
)

// Chain membaca token per session browser: store persistent lebih dulu,
// lalu store session. Session ID diambil dari context request.
type Chain struct {
	persistent Store
	session    Store
	logger     *zap.Logger
}

func NewChain(persistent, session Store, logger *zap.Logger) *Chain {
	if logger == nil {
		logger = zap.L()
	}
	return &Chain{
		persistent: persistent,
		session:    session,
		logger:     logger.Named("credential.chain"),
	}
}

func (c *Chain) Token(ctx context.Context) (string, bool) {
	sid := contextutil.GetSessionID(ctx)
	if sid == "" {
		return "", false
	}
	return c.Lookup(ctx, sid)
}

// Lookup sama dengan Token tetapi session ID diberikan langsung.
func (c *Chain) Lookup(ctx context.Context, sessionID string) (string, bool) {
	return c.lookup(ctx, sessionID, TokenKey)
}

// Role mengembalikan role yang disimpan saat login, "" kalau tidak ada.
func (c *Chain) Role(ctx context.Context, sessionID string) string {
	role, _ := c.lookup(ctx, sessionID, RoleKey)
	return role
}

// Store yang error dianggap kosong supaya store lain masih bisa dicoba.
func (c *Chain) lookup(ctx context.Context, sessionID, key string) (string, bool) {
	for _, s := range []struct {
		name  string
		store Store
	}{{"persistent", c.persistent}, {"session", c.session}} {
		if s.store == nil {
			continue
		}
		value, ok, err := s.store.Get(ctx, sessionID, key)
		if err != nil {
			contextutil.GetLogger(ctx, c.logger).Warn("credential store read failed",
				zap.String("store", s.name),
				zap.String("key", key),
				zap.Error(err),
			)
			continue
		}
		if ok && value != "" {
			return value, true
		}
	}
	return "", false
}

// Save menyimpan token. remember=true memakai store persistent.
func (c *Chain) Save(ctx context.Context, sessionID, token string, remember bool, ttl time.Duration) error {
	return c.save(ctx, sessionID, TokenKey, token, remember, ttl)
}

// SaveRole menyimpan role user di store yang sama dengan tokennya.
func (c *Chain) SaveRole(ctx context.Context, sessionID, role string, remember bool, ttl time.Duration) error {
	return c.save(ctx, sessionID, RoleKey, role, remember, ttl)
}

func (c *Chain) save(ctx context.Context, sessionID, key, value string, remember bool, ttl time.Duration) error {
	target := c.session
	if remember {
		target = c.persistent
	}
	if target == nil {
		return errors.New("credential store is not configured")
	}
	return target.Set(ctx, sessionID, key, value, ttl)
}

// Clear menghapus token dan role dari kedua store.
func (c *Chain) Clear(ctx context.Context, sessionID string) error {
	var errs []error
	for _, s := range []Store{c.persistent, c.session} {
		if s == nil {
			continue
		}
		for _, key := range []string{TokenKey, RoleKey} {
			if err := s.Delete(ctx, sessionID, key); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
