package app

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"attendance-dashboard/internal/credential"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type countingSweeper struct {
	calls atomic.Int32
}

func (s *countingSweeper) Sweep() int {
	s.calls.Add(1)
	return 1
}

func TestCredentialStores(t *testing.T) {
	t.Run("without redis both memory stores are swept", func(t *testing.T) {
		persistent, sessions, sweepers := credentialStores(nil)

		mem, ok := persistent.(*credential.MemoryStore)
		if assert.True(t, ok) {
			assert.NotSame(t, sessions, mem)
			if assert.Len(t, sweepers, 2) {
				assert.Same(t, mem, sweepers[0])
				assert.Same(t, sessions, sweepers[1])
			}
		}
	})

	t.Run("with redis only the session store is swept", func(t *testing.T) {
		rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
		defer rdb.Close()

		persistent, sessions, sweepers := credentialStores(rdb)

		assert.IsType(t, &credential.RedisStore{}, persistent)
		if assert.Len(t, sweepers, 1) {
			assert.Same(t, sessions, sweepers[0])
		}
	})
}

func TestSweepSessions(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	a, b := &countingSweeper{}, &countingSweeper{}

	done := make(chan struct{})
	go func() {
		sweepSessions(ctx, 5*time.Millisecond, zap.NewNop(), a, b)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return a.calls.Load() > 0 && b.calls.Load() > 0
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}
