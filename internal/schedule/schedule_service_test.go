package schedule_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"attendance-dashboard/internal/bootstrap"
	"attendance-dashboard/internal/events"
	"attendance-dashboard/internal/schedule"
	scheduleerrors "attendance-dashboard/internal/schedule/errors"
	"attendance-dashboard/internal/shared/apperror"
	"attendance-dashboard/internal/shared/backend"
	"attendance-dashboard/internal/shared/contextutil"

	scheduleMock "attendance-dashboard/internal/schedule/mock"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeAudit struct {
	mu      sync.Mutex
	entries []bootstrap.AuditLog
}

func (f *fakeAudit) Log(ctx context.Context, entry bootstrap.AuditLog) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, entry)
}

const hoursJSON = `[{"day":1,"is_working_day":true,"start_time":"08:00","end_time":"17:00"}]`

func week() []schedule.WorkingHour {
	hours := make([]schedule.WorkingHour, 0, 7)
	for d := 0; d < 7; d++ {
		working := d >= 1 && d <= 5
		h := schedule.WorkingHour{Day: schedule.Weekday(d), IsWorkingDay: working}
		if working {
			h.StartTime, h.EndTime = "08:00", "17:00"
		}
		hours = append(hours, h)
	}
	return hours
}

func sessionCtx() context.Context {
	return contextutil.WithSessionID(context.Background(), "sid-1")
}

func TestScheduleService_GetWorkingHours(t *testing.T) {
	ctx := sessionCtx()
	key := schedule.GetWorkingHoursKey("sid-1")

	t.Run("cache hit skips backend", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := scheduleMock.NewMockRepository(ctrl)
		rdb, mock := redismock.NewClientMock()
		svc := schedule.NewService(repo, rdb, &fakeAudit{})

		mock.ExpectGet(key).SetVal(hoursJSON)

		data, err := svc.GetWorkingHours(ctx)
		require.NoError(t, err)
		assert.JSONEq(t, hoursJSON, string(data))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cache miss loads and stores", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := scheduleMock.NewMockRepository(ctrl)
		rdb, mock := redismock.NewClientMock()
		svc := schedule.NewService(repo, rdb, &fakeAudit{})

		mock.ExpectGet(key).RedisNil()
		repo.EXPECT().GetWorkingHours(ctx).Return(json.RawMessage(hoursJSON), nil)
		mock.ExpectSet(key, []byte(hoursJSON), schedule.CacheTTL).SetVal("OK")

		data, err := svc.GetWorkingHours(ctx)
		require.NoError(t, err)
		assert.JSONEq(t, hoursJSON, string(data))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("redis down still serves from backend", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := scheduleMock.NewMockRepository(ctrl)
		rdb, mock := redismock.NewClientMock()
		svc := schedule.NewService(repo, rdb, &fakeAudit{})

		mock.ExpectGet(key).SetErr(errors.New("connection refused"))
		repo.EXPECT().GetWorkingHours(ctx).Return(json.RawMessage(hoursJSON), nil)
		mock.ExpectSet(key, []byte(hoursJSON), schedule.CacheTTL).SetErr(errors.New("connection refused"))

		data, err := svc.GetWorkingHours(ctx)
		require.NoError(t, err)
		assert.JSONEq(t, hoursJSON, string(data))
	})

	t.Run("without redis", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := scheduleMock.NewMockRepository(ctrl)
		svc := schedule.NewService(repo, nil, &fakeAudit{})

		repo.EXPECT().GetWorkingHours(ctx).Return(nil, &backend.TransportError{Method: "GET", URL: "/api/working-hours", Err: errors.New("dial tcp")})

		_, err := svc.GetWorkingHours(ctx)
		assert.Equal(t, http.StatusServiceUnavailable, apperror.ToHTTP(err).Status)
	})
}

func TestScheduleService_GetWorkingHours_Singleflight(t *testing.T) {
	ctx := sessionCtx()
	ctrl := gomock.NewController(t)
	repo := scheduleMock.NewMockRepository(ctrl)
	svc := schedule.NewService(repo, nil, &fakeAudit{})

	release := make(chan struct{})
	repo.EXPECT().GetWorkingHours(gomock.Any()).DoAndReturn(func(ctx context.Context) (json.RawMessage, error) {
		<-release
		return json.RawMessage(hoursJSON), nil
	}).Times(1)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, err := svc.GetWorkingHours(ctx)
			assert.NoError(t, err)
			assert.JSONEq(t, hoursJSON, string(data))
		}()
	}

	// beri waktu goroutine lain bergabung ke flight yang sama
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
}

func TestScheduleService_UpdateWorkingHours(t *testing.T) {
	ctx := sessionCtx()

	t.Run("invalidates cache and audits", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := scheduleMock.NewMockRepository(ctrl)
		rdb, mock := redismock.NewClientMock()
		audit := &fakeAudit{}
		svc := schedule.NewService(repo, rdb, audit)

		req := schedule.UpdateWorkingHoursRequest{WorkingHours: week()}
		repo.EXPECT().UpdateWorkingHours(ctx, req).Return(json.RawMessage(`{"updated":true}`), nil)
		mock.ExpectDel(schedule.GetWorkingHoursKey("sid-1")).SetVal(1)

		_, err := svc.UpdateWorkingHours(ctx, req)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
		if assert.Len(t, audit.entries, 1) {
			assert.Equal(t, events.EventWorkingHoursUpdated, audit.entries[0].Action)
			assert.Equal(t, 5, audit.entries[0].Meta["working_days"])
		}
	})

	tests := []struct {
		name   string
		mutate func([]schedule.WorkingHour) []schedule.WorkingHour
		want   error
	}{
		{"six days", func(h []schedule.WorkingHour) []schedule.WorkingHour { return h[:6] }, scheduleerrors.ErrIncompleteWeek},
		{"duplicate day", func(h []schedule.WorkingHour) []schedule.WorkingHour { h[0].Day = 1; return h }, scheduleerrors.ErrIncompleteWeek},
		{"bad time", func(h []schedule.WorkingHour) []schedule.WorkingHour { h[1].StartTime = "8am"; return h }, scheduleerrors.ErrInvalidTime},
		{"end before start", func(h []schedule.WorkingHour) []schedule.WorkingHour { h[2].EndTime = "07:00"; return h }, scheduleerrors.ErrInvalidTimeRange},
		{"off day ignores times", func(h []schedule.WorkingHour) []schedule.WorkingHour { h[0].StartTime = "x"; return h }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := scheduleMock.NewMockRepository(ctrl)
			svc := schedule.NewService(repo, nil, &fakeAudit{})

			req := schedule.UpdateWorkingHoursRequest{WorkingHours: tt.mutate(week())}
			if tt.want == nil {
				repo.EXPECT().UpdateWorkingHours(ctx, req).Return(json.RawMessage(`{}`), nil)
			}

			_, err := svc.UpdateWorkingHours(ctx, req)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestScheduleService_Holidays(t *testing.T) {
	ctx := sessionCtx()
	key := schedule.GetHolidaysKey("sid-1")
	holidays := `[{"id":1,"name":"Tahun Baru","date":"2025-01-01"}]`

	t.Run("list caches per year", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := scheduleMock.NewMockRepository(ctrl)
		rdb, mock := redismock.NewClientMock()
		svc := schedule.NewService(repo, rdb, &fakeAudit{})

		mock.ExpectHGet(key, "2025").RedisNil()
		repo.EXPECT().ListHolidays(ctx, 2025).Return(json.RawMessage(holidays), nil)
		mock.ExpectHSet(key, "2025", []byte(holidays)).SetVal(1)
		mock.ExpectExpire(key, schedule.CacheTTL).SetVal(true)

		data, err := svc.ListHolidays(ctx, 2025)
		require.NoError(t, err)
		assert.JSONEq(t, holidays, string(data))

		mock.ExpectHGet(key, "all").SetVal(holidays)
		data, err = svc.ListHolidays(ctx, 0)
		require.NoError(t, err)
		assert.JSONEq(t, holidays, string(data))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("expire failure is logged and data still served", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		logCtx := contextutil.WithLogger(ctx, zap.New(core))

		ctrl := gomock.NewController(t)
		repo := scheduleMock.NewMockRepository(ctrl)
		rdb, mock := redismock.NewClientMock()
		svc := schedule.NewService(repo, rdb, &fakeAudit{})

		mock.ExpectHGet(key, "2025").RedisNil()
		repo.EXPECT().ListHolidays(logCtx, 2025).Return(json.RawMessage(holidays), nil)
		mock.ExpectHSet(key, "2025", []byte(holidays)).SetVal(1)
		mock.ExpectExpire(key, schedule.CacheTTL).SetErr(errors.New("redis timeout"))

		data, err := svc.ListHolidays(logCtx, 2025)
		require.NoError(t, err)
		assert.JSONEq(t, holidays, string(data))
		assert.NoError(t, mock.ExpectationsWereMet())

		entries := logs.FilterMessage("failed to set holidays cache ttl").All()
		if assert.Len(t, entries, 1) {
			assert.Equal(t, key, entries[0].ContextMap()["key"])
		}
	})

	t.Run("create and delete invalidate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := scheduleMock.NewMockRepository(ctrl)
		rdb, mock := redismock.NewClientMock()
		audit := &fakeAudit{}
		svc := schedule.NewService(repo, rdb, audit)

		req := schedule.CreateHolidayRequest{Name: "Idul Fitri", Date: "2025-03-31"}
		repo.EXPECT().CreateHoliday(ctx, req).Return(json.RawMessage(`{"id":2}`), nil)
		mock.ExpectDel(key).SetVal(1)
		repo.EXPECT().DeleteHoliday(ctx, int64(2)).Return(nil)
		mock.ExpectDel(key).SetVal(1)

		_, err := svc.CreateHoliday(ctx, req)
		require.NoError(t, err)
		require.NoError(t, svc.DeleteHoliday(ctx, 2))
		assert.NoError(t, mock.ExpectationsWereMet())

		if assert.Len(t, audit.entries, 2) {
			assert.Equal(t, events.EventHolidayCreated, audit.entries[0].Action)
			assert.Equal(t, events.EventHolidayDeleted, audit.entries[1].Action)
		}
	})

	t.Run("delete invalid id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := schedule.NewService(scheduleMock.NewMockRepository(ctrl), nil, &fakeAudit{})
		assert.ErrorIs(t, svc.DeleteHoliday(ctx, 0), scheduleerrors.ErrInvalidHolidayID)
	})
}
