package attendance

import (
	"context"
	"encoding/json"

	"attendance-dashboard/internal/attendancedetail"
	"attendance-dashboard/internal/shared/backend"
)

const listPath = "/api/attendance"

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	List(ctx context.Context, q ListQuery) (ListResult, error)
	GetDetail(ctx context.Context, recordID int64) (json.RawMessage, error)
}

type repository struct {
	client *backend.Client
	detail *attendancedetail.BackendLoader
}

func NewRepository(client *backend.Client) Repository {
	return &repository{client: client, detail: attendancedetail.NewBackendLoader(client)}
}

func (r *repository) List(ctx context.Context, q ListQuery) (ListResult, error) {
	env, err := r.client.Get(ctx, listPath, q.Values(), nil)
	if err != nil {
		return ListResult{}, err
	}

	res := ListResult{Items: env.Data, Page: q.Page, Limit: q.PerPage}
	if len(res.Items) == 0 {
		res.Items = json.RawMessage("[]")
	}
	if meta, ok := env.DecodeMeta(); ok {
		res.Total = meta.Total
		if meta.CurrentPage > 0 {
			res.Page = meta.CurrentPage
		}
		if meta.PerPage > 0 {
			res.Limit = meta.PerPage
		}
	}
	return res, nil
}

func (r *repository) GetDetail(ctx context.Context, recordID int64) (json.RawMessage, error) {
	return r.detail.GetDetail(ctx, recordID)
}
