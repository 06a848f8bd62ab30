package producer

import (
	"context"
	"errors"

	"attendance-dashboard/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
)

// MessageWriter dipenuhi oleh *kafkago.Writer. Topic ditentukan oleh writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

func toMessage(event kafka.OutboxEvent) kafkago.Message {
	return kafkago.Message{
		Key:   []byte(event.Key),
		Value: event.Payload,
		Headers: []kafkago.Header{
			{Key: "event_id", Value: []byte(event.ID)},
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	}
}

// publishBatch mengirim semua event dalam satu WriteMessages dan
// mengembalikan error per event, urut sesuai input (nil = terkirim).
func publishBatch(ctx context.Context, writer MessageWriter, batch []kafka.OutboxEvent) []error {
	msgs := make([]kafkago.Message, len(batch))
	for i, event := range batch {
		msgs[i] = toMessage(event)
	}

	results := make([]error, len(batch))
	err := writer.WriteMessages(ctx, msgs...)
	if err == nil {
		return results
	}

	// kafkago.Writer mengembalikan WriteErrors kalau hanya sebagian message gagal
	var writeErrs kafkago.WriteErrors
	if errors.As(err, &writeErrs) && len(writeErrs) == len(batch) {
		copy(results, writeErrs)
		return results
	}
	for i := range results {
		results[i] = err
	}
	return results
}
