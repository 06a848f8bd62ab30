package attendancedetail

import (
	"context"
	"encoding/json"
	"fmt"

	"attendance-dashboard/internal/shared/backend"
)

// Loader mengambil satu record attendance detail.
type Loader interface {
	GetDetail(ctx context.Context, recordID int64) (json.RawMessage, error)
}

type LoaderFunc func(ctx context.Context, recordID int64) (json.RawMessage, error)

func (f LoaderFunc) GetDetail(ctx context.Context, recordID int64) (json.RawMessage, error) {
	return f(ctx, recordID)
}

func DetailPath(recordID int64) string {
	return fmt.Sprintf("/api/attendance/%d", recordID)
}

// BackendLoader membaca GET /api/attendance/{id}. Isi data tidak diinterpretasi.
type BackendLoader struct {
	client *backend.Client
}

func NewBackendLoader(client *backend.Client) *BackendLoader {
	return &BackendLoader{client: client}
}

func (l *BackendLoader) GetDetail(ctx context.Context, recordID int64) (json.RawMessage, error) {
	env, err := l.client.Get(ctx, DetailPath(recordID), nil, nil)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}
