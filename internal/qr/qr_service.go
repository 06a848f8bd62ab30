package qr

import (
	"context"
	"encoding/json"

	"attendance-dashboard/internal/bootstrap"
	"attendance-dashboard/internal/events"
	qrerrors "attendance-dashboard/internal/qr/errors"
	"attendance-dashboard/internal/shared/backend"

	"github.com/skip2/go-qrcode"
)

type Service interface {
	CurrentToken(ctx context.Context) (TokenResponse, error)
	Image(ctx context.Context, size int) ([]byte, error)
	ClockIn(ctx context.Context, req ScanRequest) (json.RawMessage, error)
	ClockOut(ctx context.Context, req ScanRequest) (json.RawMessage, error)
}

type service struct {
	repo  Repository
	audit bootstrap.AuditLogger
}

func NewService(repo Repository, audit bootstrap.AuditLogger) Service {
	return &service{repo: repo, audit: audit}
}

func (s *service) CurrentToken(ctx context.Context) (TokenResponse, error) {
	tok, err := s.repo.CurrentToken(ctx)
	if err != nil {
		return TokenResponse{}, backend.ToAppError(err)
	}
	if tok.Token == "" {
		return TokenResponse{}, qrerrors.ErrEmptyToken
	}
	return tok, nil
}

// Image me-render token QR aktif sebagai PNG.
func (s *service) Image(ctx context.Context, size int) ([]byte, error) {
	if size == 0 {
		size = DefaultImageSize
	}
	if size < MinImageSize || size > MaxImageSize {
		return nil, qrerrors.ErrInvalidSize
	}

	tok, err := s.CurrentToken(ctx)
	if err != nil {
		return nil, err
	}
	return qrcode.Encode(tok.Token, qrcode.Medium, size)
}

func (s *service) ClockIn(ctx context.Context, req ScanRequest) (json.RawMessage, error) {
	return s.scan(ctx, events.EventClockIn, req, s.repo.ClockIn)
}

func (s *service) ClockOut(ctx context.Context, req ScanRequest) (json.RawMessage, error) {
	return s.scan(ctx, events.EventClockOut, req, s.repo.ClockOut)
}

func (s *service) scan(
	ctx context.Context,
	action string,
	req ScanRequest,
	call func(context.Context, ScanRequest) (json.RawMessage, error),
) (json.RawMessage, error) {
	data, err := call(ctx, req)
	if err != nil {
		return nil, backend.ToAppError(err)
	}

	meta := map[string]any{}
	if req.Latitude != nil && req.Longitude != nil {
		meta["latitude"] = *req.Latitude
		meta["longitude"] = *req.Longitude
	}
	s.audit.Log(ctx, bootstrap.AuditLog{
		Action:  action,
		Message: "attendance recorded by qr scan",
		Meta:    meta,
	})
	return data, nil
}
