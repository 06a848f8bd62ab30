package kafka

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryOutbox_Lifecycle(t *testing.T) {
	ctx := context.Background()
	o := NewMemoryOutbox(2, 1)

	assert.NoError(t, o.Create(ctx, OutboxEvent{ID: "a"}))
	assert.NoError(t, o.Create(ctx, OutboxEvent{ID: "b"}))
	assert.ErrorIs(t, o.Create(ctx, OutboxEvent{ID: "c"}), ErrOutboxFull)
	assert.Equal(t, 1, o.Dropped())

	pending, err := o.ListPending(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, []OutboxEvent{{ID: "a"}}, pending)

	assert.NoError(t, o.MarkSent(ctx, "a"))
	assert.Equal(t, 1, o.Len())

	assert.NoError(t, o.MarkFailed(ctx, "b", "broker down"))
	pending, _ = o.ListPending(ctx, 10)
	assert.Equal(t, 1, pending[0].RetryCount)
	assert.Equal(t, "broker down", pending[0].LastError)

	// retry kedua melewati maxRetries
	assert.NoError(t, o.MarkFailed(ctx, "b", "broker down"))
	assert.Equal(t, 0, o.Len())
	assert.Equal(t, 2, o.Dropped())
}
