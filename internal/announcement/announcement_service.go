package announcement

import (
	"context"
	"encoding/json"
	"time"

	announcementerrors "attendance-dashboard/internal/announcement/errors"
	"attendance-dashboard/internal/bootstrap"
	"attendance-dashboard/internal/events"
	"attendance-dashboard/internal/shared/backend"
)

const (
	defaultPage    = 1
	defaultPerPage = 10
)

type Service interface {
	List(ctx context.Context, q ListQuery) (ListResult, error)
	GetByID(ctx context.Context, id int64) (json.RawMessage, error)
	Create(ctx context.Context, req AnnouncementRequest) (json.RawMessage, error)
	Update(ctx context.Context, id int64, req AnnouncementRequest) (json.RawMessage, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo  Repository
	audit bootstrap.AuditLogger
}

func NewService(repo Repository, audit bootstrap.AuditLogger) Service {
	return &service{repo: repo, audit: audit}
}

func (s *service) List(ctx context.Context, q ListQuery) (ListResult, error) {
	if q.Page < 1 {
		q.Page = defaultPage
	}
	if q.PerPage < 1 {
		q.PerPage = defaultPerPage
	}

	res, err := s.repo.List(ctx, q)
	if err != nil {
		return ListResult{}, backend.ToAppError(err)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (json.RawMessage, error) {
	if id <= 0 {
		return nil, announcementerrors.ErrInvalidID
	}
	data, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, backend.ToAppError(err)
	}
	return data, nil
}

func (s *service) Create(ctx context.Context, req AnnouncementRequest) (json.RawMessage, error) {
	req, err := normalize(req)
	if err != nil {
		return nil, err
	}

	data, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, backend.ToAppError(err)
	}

	s.audit.Log(ctx, bootstrap.AuditLog{
		Action:  events.EventAnnouncementCreated,
		Message: "announcement created",
		Meta:    map[string]any{"title": req.Title, "priority": req.Priority},
	})
	return data, nil
}

func (s *service) Update(ctx context.Context, id int64, req AnnouncementRequest) (json.RawMessage, error) {
	if id <= 0 {
		return nil, announcementerrors.ErrInvalidID
	}
	req, err := normalize(req)
	if err != nil {
		return nil, err
	}

	data, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, backend.ToAppError(err)
	}

	s.audit.Log(ctx, bootstrap.AuditLog{
		Action:  events.EventAnnouncementUpdated,
		Message: "announcement updated",
		Meta:    map[string]any{"announcement_id": id, "title": req.Title},
	})
	return data, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return announcementerrors.ErrInvalidID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return backend.ToAppError(err)
	}

	s.audit.Log(ctx, bootstrap.AuditLog{
		Action:  events.EventAnnouncementDeleted,
		Message: "announcement deleted",
		Meta:    map[string]any{"announcement_id": id},
	})
	return nil
}

// normalize mengisi priority default dan memastikan expire_date > publish_date.
func normalize(req AnnouncementRequest) (AnnouncementRequest, error) {
	if req.Priority == "" {
		req.Priority = PriorityNormal
	}
	if req.PublishDate == nil || req.ExpireDate == nil {
		return req, nil
	}

	publish, err := time.Parse(time.DateOnly, *req.PublishDate)
	if err != nil {
		return req, announcementerrors.ErrInvalidDateFormat
	}
	expire, err := time.Parse(time.DateOnly, *req.ExpireDate)
	if err != nil {
		return req, announcementerrors.ErrInvalidDateFormat
	}
	if !expire.After(publish) {
		return req, announcementerrors.ErrInvalidDateRange
	}
	return req, nil
}
