package app

import (
	"context"

	"attendance-dashboard/internal/events"
	"attendance-dashboard/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type AuditTailConfig struct {
	Broker  string
	Topic   string
	GroupID string
	// FromBeginning membaca dari offset pertama, selain itu hanya event baru.
	FromBeginning bool
}

// RunAuditTail membaca topic audit sampai ctx selesai dan memanggil handle
// untuk setiap event.
func RunAuditTail(ctx context.Context, cfg AuditTailConfig, handle func(events.AuditEvent) error) error {
	logger := zap.L().Named("app.consumer")

	startOffset := kafkago.LastOffset
	if cfg.FromBeginning {
		startOffset = kafkago.FirstOffset
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.Broker},
		Topic:          cfg.Topic,
		GroupID:        cfg.GroupID,
		CommitInterval: 0,
		StartOffset:    startOffset,
	})
	defer reader.Close()

	return consumer.ConsumeAuditEvents(ctx, reader, handle, logger)
}
