package kafka

import (
	"context"
	"errors"
	"sync"
)

var ErrOutboxFull = errors.New("outbox is full")

type OutboxEvent struct {
	ID         string
	EventType  string
	Key        string
	Payload    []byte
	RetryCount int
	LastError  string
}

//go:generate mockgen -source=outbox.go -destination=mock/outbox_mock.go -package=mock
type OutboxRepository interface {
	Create(ctx context.Context, event OutboxEvent) error
	ListPending(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string) error
}

// MemoryOutbox menampung event di memori proses sampai worker berhasil
// mengirimnya. Event yang gagal lebih dari maxRetries kali dibuang.
type MemoryOutbox struct {
	mu         sync.Mutex
	pending    []OutboxEvent
	capacity   int
	maxRetries int
	dropped    int
}

func NewMemoryOutbox(capacity, maxRetries int) *MemoryOutbox {
	if capacity <= 0 {
		capacity = 1000
	}
	return &MemoryOutbox{capacity: capacity, maxRetries: maxRetries}
}

func (o *MemoryOutbox) Create(_ context.Context, event OutboxEvent) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.pending) >= o.capacity {
		o.dropped++
		return ErrOutboxFull
	}
	o.pending = append(o.pending, event)
	return nil
}

func (o *MemoryOutbox) ListPending(_ context.Context, limit int) ([]OutboxEvent, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if limit <= 0 || limit > len(o.pending) {
		limit = len(o.pending)
	}
	out := make([]OutboxEvent, limit)
	copy(out, o.pending[:limit])
	return out, nil
}

func (o *MemoryOutbox) MarkSent(_ context.Context, id string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if i := o.indexOf(id); i >= 0 {
		o.pending = append(o.pending[:i], o.pending[i+1:]...)
	}
	return nil
}

func (o *MemoryOutbox) MarkFailed(_ context.Context, id string, reason string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	i := o.indexOf(id)
	if i < 0 {
		return nil
	}
	o.pending[i].RetryCount++
	o.pending[i].LastError = reason
	if o.pending[i].RetryCount > o.maxRetries {
		o.pending = append(o.pending[:i], o.pending[i+1:]...)
		o.dropped++
	}
	return nil
}

func (o *MemoryOutbox) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.pending)
}

// Dropped menghitung event yang dibuang karena penuh atau retry habis.
func (o *MemoryOutbox) Dropped() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.dropped
}

func (o *MemoryOutbox) indexOf(id string) int {
	for i := range o.pending {
		if o.pending[i].ID == id {
			return i
		}
	}
	return -1
}
