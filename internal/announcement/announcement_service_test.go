package announcement_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"attendance-dashboard/internal/announcement"
	announcementerrors "attendance-dashboard/internal/announcement/errors"
	"attendance-dashboard/internal/bootstrap"
	"attendance-dashboard/internal/events"
	"attendance-dashboard/internal/shared/apperror"
	"attendance-dashboard/internal/shared/backend"

	announcementMock "attendance-dashboard/internal/announcement/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeAudit struct {
	entries []bootstrap.AuditLog
}

func (f *fakeAudit) Log(ctx context.Context, entry bootstrap.AuditLog) {
	f.entries = append(f.entries, entry)
}

func strPtr(s string) *string { return &s }

func setupServiceTest(t *testing.T) (announcement.Service, *announcementMock.MockRepository, *fakeAudit) {
	ctrl := gomock.NewController(t)
	repo := announcementMock.NewMockRepository(ctrl)
	audit := &fakeAudit{}
	return announcement.NewService(repo, audit), repo, audit
}

func TestAnnouncementService_List(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := setupServiceTest(t)

	repo.EXPECT().
		List(ctx, announcement.ListQuery{Page: 1, PerPage: 10}).
		Return(announcement.ListResult{Items: json.RawMessage(`[]`), Page: 1, Limit: 10}, nil)

	res, err := svc.List(ctx, announcement.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Page)
}

func TestAnnouncementService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("default priority and audit", func(t *testing.T) {
		svc, repo, audit := setupServiceTest(t)
		repo.EXPECT().
			Create(ctx, announcement.AnnouncementRequest{Title: "Libur", Content: "Kantor tutup", Priority: "normal"}).
			Return(json.RawMessage(`{"id":3}`), nil)

		data, err := svc.Create(ctx, announcement.AnnouncementRequest{Title: "Libur", Content: "Kantor tutup"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":3}`, string(data))
		if assert.Len(t, audit.entries, 1) {
			assert.Equal(t, events.EventAnnouncementCreated, audit.entries[0].Action)
		}
	})

	t.Run("expire before publish", func(t *testing.T) {
		svc, _, audit := setupServiceTest(t)
		_, err := svc.Create(ctx, announcement.AnnouncementRequest{
			Title:       "Rapat",
			Content:     "Rapat bulanan",
			PublishDate: strPtr("2024-05-10"),
			ExpireDate:  strPtr("2024-05-10"),
		})
		assert.ErrorIs(t, err, announcementerrors.ErrInvalidDateRange)
		assert.Empty(t, audit.entries)
	})

	t.Run("backend validation error", func(t *testing.T) {
		svc, repo, audit := setupServiceTest(t)
		repo.EXPECT().Create(ctx, gomock.Any()).
			Return(nil, &backend.HTTPStatusError{StatusCode: http.StatusUnprocessableEntity, Message: "title taken"})

		_, err := svc.Create(ctx, announcement.AnnouncementRequest{Title: "A", Content: "B"})
		assert.Equal(t, apperror.CodeInvalidInput, apperror.ToHTTP(err).Code)
		assert.Empty(t, audit.entries)
	})
}

func TestAnnouncementService_UpdateDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid id never reaches backend", func(t *testing.T) {
		svc, _, _ := setupServiceTest(t)
		_, err := svc.Update(ctx, 0, announcement.AnnouncementRequest{Title: "A", Content: "B"})
		assert.ErrorIs(t, err, announcementerrors.ErrInvalidID)
		assert.ErrorIs(t, svc.Delete(ctx, -1), announcementerrors.ErrInvalidID)
	})

	t.Run("delete not found", func(t *testing.T) {
		svc, repo, audit := setupServiceTest(t)
		repo.EXPECT().Delete(ctx, int64(9)).Return(&backend.HTTPStatusError{StatusCode: http.StatusNotFound})

		err := svc.Delete(ctx, 9)
		assert.Equal(t, http.StatusNotFound, apperror.ToHTTP(err).Status)
		assert.Empty(t, audit.entries)
	})

	t.Run("update audited", func(t *testing.T) {
		svc, repo, audit := setupServiceTest(t)
		repo.EXPECT().Update(ctx, int64(4), gomock.Any()).Return(json.RawMessage(`{"id":4}`), nil)

		_, err := svc.Update(ctx, 4, announcement.AnnouncementRequest{Title: "A", Content: "B", Priority: "high"})
		require.NoError(t, err)
		if assert.Len(t, audit.entries, 1) {
			assert.Equal(t, events.EventAnnouncementUpdated, audit.entries[0].Action)
			assert.Equal(t, int64(4), audit.entries[0].Meta["announcement_id"])
		}
	})
}
