package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"attendance-dashboard/internal/shared/backend"
)

const (
	workingHoursPath = "/api/working-hours"
	holidaysPath     = "/api/holidays"
)

//go:generate mockgen -source=schedule_repo.go -destination=mock/schedule_repo_mock.go -package=mock
type Repository interface {
	GetWorkingHours(ctx context.Context) (json.RawMessage, error)
	UpdateWorkingHours(ctx context.Context, req UpdateWorkingHoursRequest) (json.RawMessage, error)
	ListHolidays(ctx context.Context, year int) (json.RawMessage, error)
	CreateHoliday(ctx context.Context, req CreateHolidayRequest) (json.RawMessage, error)
	DeleteHoliday(ctx context.Context, id int64) error
}

type repository struct {
	client *backend.Client
}

func NewRepository(client *backend.Client) Repository {
	return &repository{client: client}
}

func (r *repository) GetWorkingHours(ctx context.Context) (json.RawMessage, error) {
	env, err := r.client.Get(ctx, workingHoursPath, nil, nil)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (r *repository) UpdateWorkingHours(ctx context.Context, req UpdateWorkingHoursRequest) (json.RawMessage, error) {
	env, err := r.client.Send(ctx, http.MethodPut, workingHoursPath, req, nil)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (r *repository) ListHolidays(ctx context.Context, year int) (json.RawMessage, error) {
	var q url.Values
	if year > 0 {
		q = url.Values{"year": []string{strconv.Itoa(year)}}
	}
	env, err := r.client.Get(ctx, holidaysPath, q, nil)
	if err != nil {
		return nil, err
	}
	if len(env.Data) == 0 {
		return json.RawMessage("[]"), nil
	}
	return env.Data, nil
}

func (r *repository) CreateHoliday(ctx context.Context, req CreateHolidayRequest) (json.RawMessage, error) {
	env, err := r.client.Send(ctx, http.MethodPost, holidaysPath, req, nil)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (r *repository) DeleteHoliday(ctx context.Context, id int64) error {
	_, err := r.client.Send(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", holidaysPath, id), nil, nil)
	return err
}
