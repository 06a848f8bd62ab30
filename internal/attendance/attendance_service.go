package attendance

import (
	"context"
	"time"

	"attendance-dashboard/internal/attendancedetail"
	attendanceerrors "attendance-dashboard/internal/attendance/errors"
	"attendance-dashboard/internal/shared/backend"
	"attendance-dashboard/internal/shared/contextutil"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, q ListQuery) (ListResult, error)
	Detail(ctx context.Context, recordID int64) (attendancedetail.State, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository) Service {
	return &service{repo: repo, logger: zap.L().Named("attendance.service")}
}

func (s *service) List(ctx context.Context, q ListQuery) (ListResult, error) {
	if q.Page < 1 {
		q.Page = defaultPage
	}
	if q.PerPage < 1 {
		q.PerPage = defaultPerPage
	}

	if q.DateFrom != "" && q.DateTo != "" {
		from, errFrom := time.Parse(time.DateOnly, q.DateFrom)
		to, errTo := time.Parse(time.DateOnly, q.DateTo)
		if errFrom != nil || errTo != nil || from.After(to) {
			return ListResult{}, attendanceerrors.ErrInvalidDateRange
		}
	}

	res, err := s.repo.List(ctx, q)
	if err != nil {
		return ListResult{}, backend.ToAppError(err)
	}
	return res, nil
}

// Detail menjalankan satu siklus fetcher untuk recordID dan mengembalikan
// state akhirnya. Error backend dikembalikan juga dalam bentuk AppError.
func (s *service) Detail(ctx context.Context, recordID int64) (attendancedetail.State, error) {
	if recordID <= 0 {
		return attendancedetail.State{}, attendanceerrors.ErrInvalidRecordID
	}

	var fetchErr error
	f := attendancedetail.New(s.repo,
		attendancedetail.WithLogger(contextutil.GetLogger(ctx, s.logger)),
		attendancedetail.WithOnError(func(err error) { fetchErr = err }),
	)
	f.Set(ctx, &recordID, true)
	f.Wait()

	return f.State(), backend.ToAppError(fetchErr)
}
