package attendancedetail

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// State adalah snapshot hasil fetch. IsLoading dan IsError tidak pernah
// true bersamaan.
type State struct {
	Data      json.RawMessage `json:"data"`
	IsLoading bool            `json:"isLoading"`
	IsError   bool            `json:"isError"`
	Error     string          `json:"error,omitempty"`
}

type Option func(*Fetcher)

func WithOnSuccess(fn func(data json.RawMessage)) Option {
	return func(f *Fetcher) { f.onSuccess = fn }
}

func WithOnError(fn func(err error)) Option {
	return func(f *Fetcher) { f.onError = fn }
}

// WithOnChange dipanggil setiap kali state diganti, termasuk saat loading dimulai.
func WithOnChange(fn func(State)) Option {
	return func(f *Fetcher) { f.onChange = fn }
}

func WithLogger(l *zap.Logger) Option {
	return func(f *Fetcher) {
		if l != nil {
			f.logger = l.Named("attendancedetail.fetcher")
		}
	}
}

// Fetcher memegang state satu tampilan attendance detail. Perubahan
// recordID/enabled lewat Set otomatis memicu fetch di background.
//
// Fetch yang sedang berjalan tidak dibatalkan saat input berubah: response
// yang selesai paling akhir yang menentukan state (last-write-wins).
type Fetcher struct {
	loader    Loader
	onSuccess func(json.RawMessage)
	onError   func(error)
	onChange  func(State)
	logger    *zap.Logger

	mu       sync.Mutex
	recordID *int64
	enabled  bool
	state    State

	inflight sync.WaitGroup
}

func New(loader Loader, opts ...Option) *Fetcher {
	f := &Fetcher{
		loader:  loader,
		enabled: true,
		logger:  zap.L().Named("attendancedetail.fetcher"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Set mengganti subject fetcher. Kalau recordID atau enabled berubah, Fetch
// dijalankan di goroutine terpisah dan Set mengembalikan true.
func (f *Fetcher) Set(ctx context.Context, recordID *int64, enabled bool) bool {
	f.mu.Lock()
	if sameID(f.recordID, recordID) && f.enabled == enabled {
		f.mu.Unlock()
		return false
	}
	f.recordID = copyID(recordID)
	f.enabled = enabled
	f.mu.Unlock()

	f.inflight.Add(1)
	go func() {
		defer f.inflight.Done()
		f.Fetch(ctx)
	}()
	return true
}

// Fetch menjalankan satu percobaan fetch secara sinkron dan mengembalikan
// state setelah selesai. Tanpa recordID atau saat disabled, state di-reset
// dan tidak ada request ke backend.
func (f *Fetcher) Fetch(ctx context.Context) State {
	f.mu.Lock()
	id := copyID(f.recordID)
	enabled := f.enabled

	if id == nil || !enabled {
		f.state = State{}
		snap := f.state
		f.mu.Unlock()
		f.notify(snap)
		return snap
	}

	f.state.IsLoading = true
	f.state.IsError = false
	f.state.Error = ""
	snap := f.state
	f.mu.Unlock()
	f.notify(snap)

	f.logger.Debug("fetching attendance detail", zap.Int64("record_id", *id))
	data, err := f.loader.GetDetail(ctx, *id)

	f.mu.Lock()
	if err != nil {
		// data lama dipertahankan: lebih baik tampil basi daripada kosong
		f.state.IsError = true
		f.state.Error = err.Error()
	} else {
		f.state.Data = data
	}
	f.state.IsLoading = false
	snap = f.state
	f.mu.Unlock()

	f.notify(snap)
	if err != nil {
		f.logger.Warn("fetch attendance detail failed", zap.Int64("record_id", *id), zap.Error(err))
		if f.onError != nil {
			f.onError(err)
		}
		return snap
	}
	if f.onSuccess != nil {
		f.onSuccess(data)
	}
	return snap
}

// Mutate menjalankan ulang Fetch, dipakai setelah ada perubahan data di tempat lain.
func (f *Fetcher) Mutate(ctx context.Context) State {
	return f.Fetch(ctx)
}

func (f *Fetcher) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Wait menunggu semua fetch background yang dipicu Set selesai.
func (f *Fetcher) Wait() {
	f.inflight.Wait()
}

func (f *Fetcher) notify(s State) {
	if f.onChange != nil {
		f.onChange(s)
	}
}

func sameID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
