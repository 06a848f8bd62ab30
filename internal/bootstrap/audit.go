package bootstrap

import (
	"context"
	"time"

	"attendance-dashboard/internal/events"
	"attendance-dashboard/internal/shared/contextutil"

	"github.com/oklog/ulid/v2"
)

// AuditLogger mencatat aksi penting user (login, clock-in, perubahan data).
// Log tidak boleh menggagalkan request, jadi tidak ada error yang dikembalikan.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}

type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

// NewAuditEvent melengkapi entry dengan id ULID dan metadata request.
func NewAuditEvent(ctx context.Context, entry AuditLog, now time.Time) events.AuditEvent {
	md := contextutil.ExtractMetadata(ctx)
	return events.AuditEvent{
		ID:         ulid.Make().String(),
		EventType:  entry.Action,
		RequestID:  md.RequestID,
		SessionID:  md.SessionID,
		Role:       md.Role,
		Message:    entry.Message,
		Meta:       entry.Meta,
		OccurredAt: now.UTC(),
	}
}
