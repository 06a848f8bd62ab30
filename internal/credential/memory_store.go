package credential

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore menyimpan nilai di memori proses. Isinya hilang saat proses
// restart, sama seperti session storage browser yang hilang saat tab ditutup.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func memoryKey(sessionID, key string) string {
	return sessionID + ":" + key
}

func (s *MemoryStore) Get(_ context.Context, sessionID, key string) (string, bool, error) {
	k := memoryKey(sessionID, key)

	s.mu.RLock()
	e, ok := s.entries[k]
	s.mu.RUnlock()
	if !ok {
		return "", false, nil
	}

	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		s.mu.Lock()
		// cek ulang, bisa saja sudah di-Set lagi di antara dua lock
		if cur, still := s.entries[k]; still && cur == e {
			delete(s.entries, k)
		}
		s.mu.Unlock()
		return "", false, nil
	}
	return e.value, true, nil
}

func (s *MemoryStore) Set(_ context.Context, sessionID, key, value string, ttl time.Duration) error {
	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	s.entries[memoryKey(sessionID, key)] = e
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID, key string) error {
	s.mu.Lock()
	delete(s.entries, memoryKey(sessionID, key))
	s.mu.Unlock()
	return nil
}

// Sweep membuang entry yang sudah expired. Dipanggil berkala oleh app.
func (s *MemoryStore) Sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for k, e := range s.entries {
		if !e.expiresAt.IsZero() && !now.Before(e.expiresAt) {
			delete(s.entries, k)
			removed++
		}
	}
	return removed
}
