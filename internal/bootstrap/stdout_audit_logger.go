package bootstrap

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type StdoutAuditLogger struct {
	logger *zap.Logger
}

func NewStdoutAuditLogger() *StdoutAuditLogger {
	return &StdoutAuditLogger{logger: zap.L().Named("audit")}
}

func (l *StdoutAuditLogger) Log(ctx context.Context, entry AuditLog) {
	event := NewAuditEvent(ctx, entry, time.Now())
	l.logger.Info("audit event",
		zap.String("id", event.ID),
		zap.String("timestamp", event.OccurredAt.Format(time.RFC3339)),
		zap.String("action", event.EventType),
		zap.String("message", event.Message),
		zap.String("request_id", event.RequestID),
		zap.String("session_id", event.SessionID),
		zap.Any("meta", event.Meta),
	)
}
