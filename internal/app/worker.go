package app

import (
	"context"
	"time"

	"attendance-dashboard/internal/bootstrap"
	"attendance-dashboard/internal/config"
	"attendance-dashboard/internal/messaging/kafka"
	"attendance-dashboard/internal/shared/connection"

	"go.uber.org/zap"
)

const (
	auditOutboxCapacity   = 1000
	auditOutboxMaxRetries = 5
	auditPollInterval     = 3 * time.Second
)

// startAudit memilih tujuan audit log. Tanpa KAFKA_BROKER audit hanya
// ditulis ke log proses.
func startAudit(ctx context.Context, cfg config.Config) (bootstrap.AuditLogger, func(), error) {
	if cfg.KafkaBroker == "" {
		return bootstrap.NewStdoutAuditLogger(), func() {}, nil
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, cfg.AuditTopic, 5)
	if err != nil {
		return nil, nil, err
	}

	outbox := kafka.NewMemoryOutbox(auditOutboxCapacity, auditOutboxMaxRetries)
	auditLogger := bootstrap.NewKafkaAuditLogger(outbox, kafkaWriter, auditPollInterval)
	auditLogger.Start(ctx)

	zap.L().Named("app.worker").Info("audit events published to kafka",
		zap.String("broker", cfg.KafkaBroker),
		zap.String("topic", cfg.AuditTopic),
	)

	stop := func() {
		auditLogger.Close()
		if n := outbox.Dropped(); n > 0 {
			zap.L().Warn("audit events dropped", zap.Int("count", n))
		}
		_ = kafkaWriter.Close()
	}
	return auditLogger, stop, nil
}
