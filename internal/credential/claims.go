package credential

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrOpaqueToken dikembalikan saat token backend bukan JWT.
var ErrOpaqueToken = errors.New("token is not a jwt")

// Claims adalah isi token yang relevan untuk dashboard. Signature tidak
// diverifikasi di sini: backend tetap satu-satunya pihak yang memvalidasi token.
type Claims struct {
	Subject   string
	Name      string
	Role      string
	ExpiresAt time.Time
}

func ParseClaims(token string) (Claims, error) {
	if strings.Count(token, ".") != 2 {
		return Claims{}, ErrOpaqueToken
	}

	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil {
		return Claims{}, err
	}

	var c Claims
	if sub, err := mc.GetSubject(); err == nil {
		c.Subject = sub
	}
	if c.Subject == "" {
		c.Subject = stringClaim(mc, "user_id")
	}
	c.Name = stringClaim(mc, "name")
	c.Role = NormalizeRole(stringClaim(mc, "role"))
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	return c, nil
}

// TTL menghitung umur simpan token. Tanpa exp, fallback yang dipakai.
func (c Claims) TTL(now time.Time, fallback time.Duration) time.Duration {
	if c.ExpiresAt.IsZero() {
		return fallback
	}
	ttl := c.ExpiresAt.Sub(now)
	if ttl <= 0 {
		return 0
	}
	return ttl
}

func NormalizeRole(role string) string {
	return strings.ToUpper(strings.TrimSpace(role))
}

func stringClaim(mc jwt.MapClaims, key string) string {
	switch v := mc[key].(type) {
	case string:
		return v
	default:
		return ""
	}
}
