package consumer

import (
	"context"
	"encoding/json"

	"attendance-dashboard/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader dipenuhi oleh *kafkago.Reader.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumeAuditEvents membaca topic audit sampai ctx selesai. Pesan yang
// tidak bisa di-decode di-commit dan dilewati. Kalau handle gagal, pesan
// tidak di-commit sehingga dibaca ulang oleh consumer group berikutnya.
func ConsumeAuditEvents(
	ctx context.Context,
	reader MessageReader,
	handle func(events.AuditEvent) error,
	logger *zap.Logger,
) error {
	log := logger.Named("kafka.consumer.audit")
	log.Info("audit consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("audit consumer stopped")
				return nil
			}
			return err
		}

		var event events.AuditEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode audit event failed", zap.Int64("offset", msg.Offset), zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := handle(event); err != nil {
			log.Error("handle audit event failed", zap.String("event_id", event.ID), zap.Error(err))
			return err
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit audit message failed", zap.Error(err))
			continue
		}
	}
}
