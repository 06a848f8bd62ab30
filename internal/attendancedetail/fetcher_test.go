package attendancedetail_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"attendance-dashboard/internal/attendancedetail"
	"attendance-dashboard/internal/credential"
	"attendance-dashboard/internal/shared/backend"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func id(v int64) *int64 { return &v }

type fakeBackend struct {
	srv   *httptest.Server
	hits  atomic.Int32
	mu    sync.Mutex
	paths []string
}

func newFakeBackend(t *testing.T, h http.HandlerFunc) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{}
	fb.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fb.hits.Add(1)
		fb.mu.Lock()
		fb.paths = append(fb.paths, r.URL.Path)
		fb.mu.Unlock()
		h(w, r)
	}))
	t.Cleanup(fb.srv.Close)
	return fb
}

func (fb *fakeBackend) loader() attendancedetail.Loader {
	client := backend.New(fb.srv.URL, credential.Static("tok"),
		backend.WithHTTPClient(fb.srv.Client()),
		backend.WithLogger(zap.NewNop()),
	)
	return attendancedetail.NewBackendLoader(client)
}

func newFetcher(fb *fakeBackend, opts ...attendancedetail.Option) *attendancedetail.Fetcher {
	return attendancedetail.New(fb.loader(), append([]attendancedetail.Option{attendancedetail.WithLogger(zap.NewNop())}, opts...)...)
}

func TestFetcher_NoRecordOrDisabled_NoNetworkCall(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":true,"data":{"id":1}}`))
	})
	f := newFetcher(fb)
	ctx := context.Background()

	assert.False(t, f.Set(ctx, nil, true), "initial subject is already absent")
	assert.Equal(t, attendancedetail.State{}, f.Fetch(ctx))

	assert.True(t, f.Set(ctx, id(1), false))
	f.Wait()
	assert.Equal(t, attendancedetail.State{}, f.State())
	assert.Equal(t, int32(0), fb.hits.Load())
}

func TestFetcher_Success(t *testing.T) {
	var gotAuth string
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"status":true,"data":{"id":42,"status":"PRESENT","clock_in":"08:01"}}`))
	})

	var successCalls atomic.Int32
	f := newFetcher(fb, attendancedetail.WithOnSuccess(func(json.RawMessage) { successCalls.Add(1) }))

	f.Set(context.Background(), id(42), true)
	f.Wait()

	st := f.State()
	assert.JSONEq(t, `{"id":42,"status":"PRESENT","clock_in":"08:01"}`, string(st.Data))
	assert.False(t, st.IsLoading)
	assert.False(t, st.IsError)
	assert.Empty(t, st.Error)
	assert.Equal(t, int32(1), successCalls.Load())
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, []string{"/api/attendance/42"}, fb.paths)
}

func TestFetcher_ApplicationErrorKeepsStaleData(t *testing.T) {
	var reject atomic.Bool
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if reject.Load() {
			_, _ = w.Write([]byte(`{"status":false,"message":"X"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":true,"data":{"id":3}}`))
	})

	var gotErr error
	f := newFetcher(fb, attendancedetail.WithOnError(func(err error) { gotErr = err }))
	ctx := context.Background()

	f.Set(ctx, id(3), true)
	f.Wait()
	require.JSONEq(t, `{"id":3}`, string(f.State().Data))

	reject.Store(true)
	st := f.Mutate(ctx)

	assert.True(t, st.IsError)
	assert.False(t, st.IsLoading)
	assert.Equal(t, "X", st.Error)
	assert.JSONEq(t, `{"id":3}`, string(st.Data))
	assert.EqualError(t, gotErr, "X")
}

func TestFetcher_NetworkFailureKeepsStaleData(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":true,"data":{"id":4,"status":"LATE"}}`))
	})

	var gotErr error
	f := newFetcher(fb, attendancedetail.WithOnError(func(err error) { gotErr = err }))
	ctx := context.Background()

	f.Set(ctx, id(4), true)
	f.Wait()
	require.JSONEq(t, `{"id":4,"status":"LATE"}`, string(f.State().Data))

	fb.srv.Close()
	st := f.Mutate(ctx)

	assert.True(t, st.IsError)
	assert.False(t, st.IsLoading)
	assert.Contains(t, st.Error, "transport error")
	assert.JSONEq(t, `{"id":4,"status":"LATE"}`, string(st.Data))

	var transportErr *backend.TransportError
	assert.ErrorAs(t, gotErr, &transportErr)
	assert.Equal(t, int32(1), fb.hits.Load())
}

func TestFetcher_HTTPStatusError(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	f := newFetcher(fb)

	f.Set(context.Background(), id(9), true)
	f.Wait()

	st := f.State()
	assert.True(t, st.IsError)
	assert.False(t, st.IsLoading)
	assert.Contains(t, st.Error, "500")
	assert.Nil(t, st.Data)
}

func TestFetcher_MutateIssuesExactlyOneMoreRequest(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":true,"data":{"id":5}}`))
	})
	f := newFetcher(fb)
	ctx := context.Background()

	f.Set(ctx, id(5), true)
	f.Wait()
	require.Equal(t, int32(1), fb.hits.Load())

	f.Mutate(ctx)
	assert.Equal(t, int32(2), fb.hits.Load())
	assert.Equal(t, []string{"/api/attendance/5", "/api/attendance/5"}, fb.paths)
}

func TestFetcher_SetSameSubjectDoesNotRefetch(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":true,"data":{}}`))
	})
	f := newFetcher(fb)
	ctx := context.Background()

	assert.True(t, f.Set(ctx, id(1), true))
	f.Wait()
	assert.False(t, f.Set(ctx, id(1), true))
	f.Wait()
	assert.Equal(t, int32(1), fb.hits.Load())
}

func TestFetcher_ClearingSubjectResetsData(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":true,"data":{"id":1}}`))
	})
	f := newFetcher(fb)
	ctx := context.Background()

	f.Set(ctx, id(1), true)
	f.Wait()
	require.NotNil(t, f.State().Data)

	f.Set(ctx, nil, true)
	f.Wait()
	assert.Equal(t, attendancedetail.State{}, f.State())
	assert.Equal(t, int32(1), fb.hits.Load())
}

func TestFetcher_LoadingAndErrorNeverBothTrue(t *testing.T) {
	release := make(chan struct{})
	var fail atomic.Bool
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
		if fail.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"status":true,"data":{"id":1}}`))
	})

	var mu sync.Mutex
	var seen []attendancedetail.State
	f := newFetcher(fb, attendancedetail.WithOnChange(func(s attendancedetail.State) {
		mu.Lock()
		seen = append(seen, s)
		mu.Unlock()
	}))
	ctx := context.Background()

	fail.Store(true)
	f.Set(ctx, id(1), true)
	assert.Eventually(t, func() bool { return f.State().IsLoading }, time.Second, 5*time.Millisecond)
	release <- struct{}{}
	f.Wait()
	require.True(t, f.State().IsError)

	// refetch clears the previous error while loading
	fail.Store(false)
	done := make(chan attendancedetail.State)
	go func() { done <- f.Mutate(ctx) }()
	assert.Eventually(t, func() bool {
		s := f.State()
		return s.IsLoading && !s.IsError && s.Error == ""
	}, time.Second, 5*time.Millisecond)
	release <- struct{}{}
	final := <-done
	assert.False(t, final.IsError)

	mu.Lock()
	defer mu.Unlock()
	assert.NotEmpty(t, seen)
	for _, s := range seen {
		assert.False(t, s.IsLoading && s.IsError)
	}
}

func TestFetcher_LateResponseWinsByCompletionOrder(t *testing.T) {
	startedA := make(chan struct{})
	releaseA := make(chan struct{})
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/attendance/1":
			close(startedA)
			<-releaseA
			_, _ = w.Write([]byte(`{"status":true,"data":{"id":1}}`))
		default:
			_, _ = w.Write([]byte(`{"status":true,"data":{"id":2}}`))
		}
	})
	f := newFetcher(fb)
	ctx := context.Background()

	f.Set(ctx, id(1), true)
	<-startedA

	f.Set(ctx, id(2), true)
	assert.Eventually(t, func() bool {
		return string(f.State().Data) == `{"id":2}`
	}, time.Second, 5*time.Millisecond)

	close(releaseA)
	f.Wait()

	// the stale response for record 1 settled last, so it owns the state
	assert.JSONEq(t, `{"id":1}`, string(f.State().Data))
	assert.False(t, f.State().IsLoading)
}

func TestFetcher_WithLoaderFunc(t *testing.T) {
	var calls []int64
	loader := attendancedetail.LoaderFunc(func(ctx context.Context, recordID int64) (json.RawMessage, error) {
		calls = append(calls, recordID)
		return json.RawMessage(`{"ok":true}`), nil
	})
	f := attendancedetail.New(loader, attendancedetail.WithLogger(zap.NewNop()))

	f.Set(context.Background(), id(77), true)
	f.Wait()

	assert.Equal(t, []int64{77}, calls)
	assert.JSONEq(t, `{"ok":true}`, string(f.State().Data))
}
