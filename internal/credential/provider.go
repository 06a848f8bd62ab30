package credential

import (
	"context"
	"time"
)

// TokenKey adalah nama key tempat bearer token disimpan, baik di store
// persistent maupun di store session.
const TokenKey = "token"

// RoleKey menyimpan role user hasil login, dipakai kalau token bukan JWT.
const RoleKey = "role"

// Provider menyediakan bearer token untuk request ke backend.
// ok=false berarti token tidak ada dan header Authorization tidak dikirim.
type Provider interface {
	Token(ctx context.Context) (token string, ok bool)
}

type ProviderFunc func(ctx context.Context) (string, bool)

func (f ProviderFunc) Token(ctx context.Context) (string, bool) { return f(ctx) }

// Static selalu mengembalikan token yang sama. Dipakai CLI dan test.
func Static(token string) Provider {
	return ProviderFunc(func(context.Context) (string, bool) {
		return token, token != ""
	})
}

//go:generate mockgen -source=provider.go -destination=mock/store_mock.go -package=mock
type Store interface {
	Get(ctx context.Context, sessionID, key string) (string, bool, error)
	Set(ctx context.Context, sessionID, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, sessionID, key string) error
}
