package producer

import (
	"context"
	"time"

	"attendance-dashboard/internal/messaging/kafka"

	"go.uber.org/zap"
)

const (
	batchSize           = 50
	defaultPollInterval = 3 * time.Second
	finalFlushTimeout   = 5 * time.Second
)

// ProcessOutboxEvents mengirim event pending secara periodik sampai ctx
// selesai. Sisa event dicoba dikirim sekali lagi sebelum worker berhenti.
func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}

	log := logger.Named("kafka.producer.worker")
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	log.Info("audit outbox worker started", zap.Duration("poll_interval", pollInterval))
	defer log.Info("audit outbox worker stopped")

	for {
		select {
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.Background(), finalFlushTimeout)
			defer cancel()
			if err := ProcessPendingEvents(flushCtx, repo, writer, log); err != nil {
				log.Error("final outbox flush failed", zap.Error(err))
			}
			return
		case <-ticker.C:
			if err := ProcessPendingEvents(ctx, repo, writer, log); err != nil {
				log.Error("process outbox events failed", zap.Error(err))
			}
		}
	}
}

// ProcessPendingEvents mengirim satu batch event pending. Kegagalan publish
// per event dicatat ke outbox dan tidak dikembalikan sebagai error.
func ProcessPendingEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
) error {
	batch, err := repo.ListPending(ctx, batchSize)
	if err != nil || len(batch) == 0 {
		return err
	}

	results := publishBatch(ctx, writer, batch)

	sent := 0
	for i, event := range batch {
		if pubErr := results[i]; pubErr != nil {
			logger.Warn("publish audit event failed",
				zap.String("outbox_id", event.ID),
				zap.String("event_type", event.EventType),
				zap.Int("retry", event.RetryCount),
				zap.Error(pubErr),
			)
			_ = repo.MarkFailed(ctx, event.ID, pubErr.Error())
			continue
		}

		if err := repo.MarkSent(ctx, event.ID); err != nil {
			logger.Error("mark outbox sent failed", zap.String("outbox_id", event.ID), zap.Error(err))
			continue
		}
		sent++
	}

	logger.Debug("audit batch published", zap.Int("sent", sent), zap.Int("total", len(batch)))
	return nil
}
