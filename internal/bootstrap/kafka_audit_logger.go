package bootstrap

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"attendance-dashboard/internal/messaging/kafka"
	"attendance-dashboard/internal/messaging/kafka/producer"

	"go.uber.org/zap"
)

// KafkaAuditLogger menaruh audit event di outbox memori; worker producer
// yang mengirimnya ke Kafka secara periodik.
type KafkaAuditLogger struct {
	outbox   kafka.OutboxRepository
	writer   producer.MessageWriter
	interval time.Duration
	logger   *zap.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewKafkaAuditLogger(outbox kafka.OutboxRepository, writer producer.MessageWriter, interval time.Duration) *KafkaAuditLogger {
	return &KafkaAuditLogger{
		outbox:   outbox,
		writer:   writer,
		interval: interval,
		logger:   zap.L().Named("audit.kafka"),
	}
}

// Start menjalankan worker pengirim. Panggil Close saat shutdown.
func (l *KafkaAuditLogger) Start(ctx context.Context) {
	ctx, l.cancel = context.WithCancel(ctx)
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		producer.ProcessOutboxEvents(ctx, l.outbox, l.writer, l.logger, l.interval)
	}()
}

func (l *KafkaAuditLogger) Log(ctx context.Context, entry AuditLog) {
	event := NewAuditEvent(ctx, entry, time.Now())

	payload, err := json.Marshal(event)
	if err != nil {
		l.logger.Error("encode audit event failed", zap.String("action", entry.Action), zap.Error(err))
		return
	}

	key := event.SessionID
	if key == "" {
		key = event.ID
	}

	if err := l.outbox.Create(ctx, kafka.OutboxEvent{
		ID:        event.ID,
		EventType: event.EventType,
		Key:       key,
		Payload:   payload,
	}); err != nil {
		l.logger.Warn("audit event dropped", zap.String("action", entry.Action), zap.Error(err))
	}
}

// Close menghentikan worker dan menunggu flush terakhir selesai.
func (l *KafkaAuditLogger) Close() {
	if l.cancel != nil {
		l.cancel()
	}
	l.wg.Wait()
}
