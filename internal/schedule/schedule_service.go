package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"attendance-dashboard/internal/bootstrap"
	"attendance-dashboard/internal/events"
	scheduleerrors "attendance-dashboard/internal/schedule/errors"
	"attendance-dashboard/internal/shared/backend"
	"attendance-dashboard/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	WorkingHoursKeyPrefix = "schedule:working-hours:"
	HolidaysKeyPrefix     = "schedule:holidays:"

	CacheTTL = 5 * time.Minute
)

// Cache disimpan per session karena isi response backend bergantung pada
// token pemanggil.
func GetWorkingHoursKey(sessionID string) string {
	return WorkingHoursKeyPrefix + sessionID
}

// Holidays disimpan dalam satu hash per session, field = tahun ("all" bila
// tanpa filter), supaya invalidasi cukup satu DEL.
func GetHolidaysKey(sessionID string) string {
	return HolidaysKeyPrefix + sessionID
}

func holidayField(year int) string {
	if year <= 0 {
		return "all"
	}
	return fmt.Sprintf("%d", year)
}

type Service interface {
	GetWorkingHours(ctx context.Context) (json.RawMessage, error)
	UpdateWorkingHours(ctx context.Context, req UpdateWorkingHoursRequest) (json.RawMessage, error)
	ListHolidays(ctx context.Context, year int) (json.RawMessage, error)
	CreateHoliday(ctx context.Context, req CreateHolidayRequest) (json.RawMessage, error)
	DeleteHoliday(ctx context.Context, id int64) error
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	audit  bootstrap.AuditLogger
	logger *zap.Logger
}

// NewService: rdb boleh nil, cache dilewati.
func NewService(repo Repository, rdb *redis.Client, audit bootstrap.AuditLogger) Service {
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		audit:  audit,
		logger: zap.L().Named("schedule.service"),
	}
}

func (s *service) GetWorkingHours(ctx context.Context) (json.RawMessage, error) {
	sid := contextutil.GetSessionID(ctx)
	cacheKey := GetWorkingHoursKey(sid)

	if s.rdb != nil && sid != "" {
		if cached, err := s.rdb.Get(ctx, cacheKey).Bytes(); err == nil && json.Valid(cached) {
			return json.RawMessage(cached), nil
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		data, err := s.repo.GetWorkingHours(ctx)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil && sid != "" {
			if err := s.rdb.Set(ctx, cacheKey, []byte(data), CacheTTL).Err(); err != nil {
				s.log(ctx).Warn("failed to cache working hours", zap.String("key", cacheKey), zap.Error(err))
			}
		}
		return data, nil
	})
	if err != nil {
		return nil, backend.ToAppError(err)
	}
	return v.(json.RawMessage), nil
}

func (s *service) UpdateWorkingHours(ctx context.Context, req UpdateWorkingHoursRequest) (json.RawMessage, error) {
	if err := validateWeek(req.WorkingHours); err != nil {
		return nil, err
	}

	data, err := s.repo.UpdateWorkingHours(ctx, req)
	if err != nil {
		return nil, backend.ToAppError(err)
	}

	s.invalidate(ctx, GetWorkingHoursKey(contextutil.GetSessionID(ctx)))
	s.audit.Log(ctx, bootstrap.AuditLog{
		Action:  events.EventWorkingHoursUpdated,
		Message: "working hours updated",
		Meta:    map[string]any{"working_days": countWorkingDays(req.WorkingHours)},
	})
	return data, nil
}

func (s *service) ListHolidays(ctx context.Context, year int) (json.RawMessage, error) {
	sid := contextutil.GetSessionID(ctx)
	cacheKey := GetHolidaysKey(sid)
	field := holidayField(year)

	if s.rdb != nil && sid != "" {
		if cached, err := s.rdb.HGet(ctx, cacheKey, field).Bytes(); err == nil && json.Valid(cached) {
			return json.RawMessage(cached), nil
		}
	}

	v, err, _ := s.sf.Do(cacheKey+":"+field, func() (interface{}, error) {
		data, err := s.repo.ListHolidays(ctx, year)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil && sid != "" {
			if err := s.rdb.HSet(ctx, cacheKey, field, []byte(data)).Err(); err != nil {
				s.log(ctx).Warn("failed to cache holidays", zap.String("key", cacheKey), zap.Error(err))
				return data, nil
			}
			if err := s.rdb.Expire(ctx, cacheKey, CacheTTL).Err(); err != nil {
				s.log(ctx).Warn("failed to set holidays cache ttl", zap.String("key", cacheKey), zap.Error(err))
			}
		}
		return data, nil
	})
	if err != nil {
		return nil, backend.ToAppError(err)
	}
	return v.(json.RawMessage), nil
}

func (s *service) CreateHoliday(ctx context.Context, req CreateHolidayRequest) (json.RawMessage, error) {
	data, err := s.repo.CreateHoliday(ctx, req)
	if err != nil {
		return nil, backend.ToAppError(err)
	}

	s.invalidate(ctx, GetHolidaysKey(contextutil.GetSessionID(ctx)))
	s.audit.Log(ctx, bootstrap.AuditLog{
		Action:  events.EventHolidayCreated,
		Message: "holiday created",
		Meta:    map[string]any{"name": req.Name, "date": req.Date},
	})
	return data, nil
}

func (s *service) DeleteHoliday(ctx context.Context, id int64) error {
	if id <= 0 {
		return scheduleerrors.ErrInvalidHolidayID
	}
	if err := s.repo.DeleteHoliday(ctx, id); err != nil {
		return backend.ToAppError(err)
	}

	s.invalidate(ctx, GetHolidaysKey(contextutil.GetSessionID(ctx)))
	s.audit.Log(ctx, bootstrap.AuditLog{
		Action:  events.EventHolidayDeleted,
		Message: "holiday deleted",
		Meta:    map[string]any{"holiday_id": id},
	})
	return nil
}

func (s *service) invalidate(ctx context.Context, key string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		s.log(ctx).Error("failed to invalidate cache", zap.String("key", key), zap.Error(err))
	}
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

func validateWeek(hours []WorkingHour) error {
	if len(hours) != 7 {
		return scheduleerrors.ErrIncompleteWeek
	}

	var seen [7]bool
	for _, h := range hours {
		if h.Day < 0 || h.Day > 6 || seen[h.Day] {
			return scheduleerrors.ErrIncompleteWeek
		}
		seen[h.Day] = true

		if !h.IsWorkingDay {
			continue
		}
		start, err := time.Parse("15:04", h.StartTime)
		if err != nil {
			return scheduleerrors.ErrInvalidTime
		}
		end, err := time.Parse("15:04", h.EndTime)
		if err != nil {
			return scheduleerrors.ErrInvalidTime
		}
		if !end.After(start) {
			return scheduleerrors.ErrInvalidTimeRange
		}
	}
	return nil
}

func countWorkingDays(hours []WorkingHour) int {
	n := 0
	for _, h := range hours {
		if h.IsWorkingDay {
			n++
		}
	}
	return n
}
