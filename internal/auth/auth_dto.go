package auth

import (
	"encoding/json"
	"time"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Remember bool   `json:"remember"`
}

// BackendLoginResponse adalah isi data dari POST /api/auth/login.
type BackendLoginResponse struct {
	Token string          `json:"token"`
	User  json.RawMessage `json:"user"`
}

type LoginResult struct {
	SessionID string
	Remember  bool
	TTL       time.Duration
	User      json.RawMessage
	Role      string
}

// SessionResponse dikirim ke browser. Token tidak pernah ikut dikirim.
type SessionResponse struct {
	User      json.RawMessage `json:"user"`
	Role      string          `json:"role,omitempty"`
	Remember  bool            `json:"remember"`
	ExpiresIn int64           `json:"expires_in,omitempty"`
}

type userRole struct {
	Role string `json:"role"`
}
