package qr

import (
	"context"
	"encoding/json"
	"net/http"

	"attendance-dashboard/internal/shared/backend"
)

const (
	tokenPath    = "/api/attendance/qr"
	clockInPath  = "/api/attendance/clock-in"
	clockOutPath = "/api/attendance/clock-out"
)

//go:generate mockgen -source=qr_repo.go -destination=mock/qr_repo_mock.go -package=mock
type Repository interface {
	CurrentToken(ctx context.Context) (TokenResponse, error)
	ClockIn(ctx context.Context, req ScanRequest) (json.RawMessage, error)
	ClockOut(ctx context.Context, req ScanRequest) (json.RawMessage, error)
}

type repository struct {
	client *backend.Client
}

func NewRepository(client *backend.Client) Repository {
	return &repository{client: client}
}

func (r *repository) CurrentToken(ctx context.Context) (TokenResponse, error) {
	var out TokenResponse
	_, err := r.client.Get(ctx, tokenPath, nil, &out)
	return out, err
}

func (r *repository) ClockIn(ctx context.Context, req ScanRequest) (json.RawMessage, error) {
	return r.scan(ctx, clockInPath, req)
}

func (r *repository) ClockOut(ctx context.Context, req ScanRequest) (json.RawMessage, error) {
	return r.scan(ctx, clockOutPath, req)
}

func (r *repository) scan(ctx context.Context, path string, req ScanRequest) (json.RawMessage, error) {
	env, err := r.client.Send(ctx, http.MethodPost, path, req, nil)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}
