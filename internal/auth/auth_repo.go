package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"attendance-dashboard/internal/shared/backend"
)

const (
	loginPath  = "/api/auth/login"
	logoutPath = "/api/auth/logout"
	mePath     = "/api/auth/me"
)

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock
type Repository interface {
	Login(ctx context.Context, email, password string) (BackendLoginResponse, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (json.RawMessage, error)
}

type repository struct {
	client *backend.Client
}

func NewRepository(client *backend.Client) Repository {
	return &repository{client: client}
}

func (r *repository) Login(ctx context.Context, email, password string) (BackendLoginResponse, error) {
	var out BackendLoginResponse
	_, err := r.client.Send(ctx, http.MethodPost, loginPath, map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	return out, err
}

func (r *repository) Logout(ctx context.Context) error {
	_, err := r.client.Send(ctx, http.MethodPost, logoutPath, nil, nil)
	return err
}

func (r *repository) Me(ctx context.Context) (json.RawMessage, error) {
	env, err := r.client.Get(ctx, mePath, nil, nil)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}
