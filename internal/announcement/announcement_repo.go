package announcement

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"attendance-dashboard/internal/shared/backend"
)

const basePath = "/api/announcements"

func itemPath(id int64) string {
	return fmt.Sprintf("%s/%d", basePath, id)
}

//go:generate mockgen -source=announcement_repo.go -destination=mock/announcement_repo_mock.go -package=mock
type Repository interface {
	List(ctx context.Context, q ListQuery) (ListResult, error)
	GetByID(ctx context.Context, id int64) (json.RawMessage, error)
	Create(ctx context.Context, req AnnouncementRequest) (json.RawMessage, error)
	Update(ctx context.Context, id int64, req AnnouncementRequest) (json.RawMessage, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	client *backend.Client
}

func NewRepository(client *backend.Client) Repository {
	return &repository{client: client}
}

func (r *repository) List(ctx context.Context, q ListQuery) (ListResult, error) {
	env, err := r.client.Get(ctx, basePath, q.Values(), nil)
	if err != nil {
		return ListResult{}, err
	}

	res := ListResult{Items: env.Data, Page: q.Page, Limit: q.PerPage}
	if len(res.Items) == 0 {
		res.Items = json.RawMessage("[]")
	}
	if meta, ok := env.DecodeMeta(); ok {
		res.Total = meta.Total
		res.Page = meta.CurrentPage
		res.Limit = meta.PerPage
	}
	return res, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (json.RawMessage, error) {
	env, err := r.client.Get(ctx, itemPath(id), nil, nil)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (r *repository) Create(ctx context.Context, req AnnouncementRequest) (json.RawMessage, error) {
	env, err := r.client.Send(ctx, http.MethodPost, basePath, req, nil)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (r *repository) Update(ctx context.Context, id int64, req AnnouncementRequest) (json.RawMessage, error) {
	env, err := r.client.Send(ctx, http.MethodPut, itemPath(id), req, nil)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	_, err := r.client.Send(ctx, http.MethodDelete, itemPath(id), nil, nil)
	return err
}
