package qr

const (
	DefaultImageSize = 320
	MinImageSize     = 128
	MaxImageSize     = 1024
)

// TokenResponse adalah QR aktif yang diterbitkan backend. Isi token
// tidak diinterpretasi dashboard.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at,omitempty"`
}

// ScanRequest dipakai untuk clock-in maupun clock-out.
type ScanRequest struct {
	QRToken   string   `json:"qr_token" binding:"required,max=512"`
	Latitude  *float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
}

type ImageQuery struct {
	Size int `form:"size" binding:"omitempty,min=128,max=1024"`
}
