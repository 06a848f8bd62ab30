package cli_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"attendance-dashboard/internal/attendancedetail"
	"attendance-dashboard/internal/cli"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := cli.NewRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func decodeStates(t *testing.T, out string) []attendancedetail.State {
	t.Helper()
	var states []attendancedetail.State
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		var s attendancedetail.State
		require.NoError(t, json.Unmarshal([]byte(line), &s), line)
		states = append(states, s)
	}
	return states
}

func TestAttendanceGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/attendance/42", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"status":true,"data":{"id":42,"status":"PRESENT"}}`))
	}))
	defer srv.Close()

	out, err := runCmd(t, "attendance", "get", "42", "--backend", srv.URL, "--token", "tok-1")
	require.NoError(t, err)

	states := decodeStates(t, out)
	require.Len(t, states, 1)
	assert.False(t, states[0].IsLoading)
	assert.False(t, states[0].IsError)
	assert.JSONEq(t, `{"id":42,"status":"PRESENT"}`, string(states[0].Data))
}

func TestAttendanceGet_Errors(t *testing.T) {
	t.Run("backend rejects", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":false,"message":"Record not found"}`))
		}))
		defer srv.Close()

		out, err := runCmd(t, "attendance", "get", "7", "--backend", srv.URL)
		require.Error(t, err)
		states := decodeStates(t, out)
		require.Len(t, states, 1)
		assert.True(t, states[0].IsError)
		assert.Equal(t, "Record not found", states[0].Error)
	})

	t.Run("invalid id", func(t *testing.T) {
		_, err := runCmd(t, "attendance", "get", "abc", "--backend", "http://unused.test")
		assert.ErrorContains(t, err, "invalid record id")
	})

	t.Run("missing backend", func(t *testing.T) {
		t.Setenv("NEXT_PUBLIC_BACKEND_URL", "")
		_, err := runCmd(t, "attendance", "get", "1", "--backend", "")
		assert.ErrorContains(t, err, "--backend")
	})
}

func TestAttendanceWatch(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		if n == 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprintf(w, `{"status":true,"data":{"id":5,"version":%d}}`, n)
	}))
	defer srv.Close()

	out, err := runCmd(t, "attendance", "watch", "5", "--backend", srv.URL, "--interval", "10ms", "--count", "3")
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())

	states := decodeStates(t, out)
	require.Len(t, states, 3)
	assert.JSONEq(t, `{"id":5,"version":1}`, string(states[0].Data))

	// gagal: data lama tetap ditampilkan
	assert.True(t, states[1].IsError)
	assert.JSONEq(t, `{"id":5,"version":1}`, string(states[1].Data))

	assert.False(t, states[2].IsError)
	assert.JSONEq(t, `{"id":5,"version":3}`, string(states[2].Data))
}

func TestAttendanceWatch_BadInterval(t *testing.T) {
	_, err := runCmd(t, "attendance", "watch", "5", "--backend", "http://unused.test", "--interval", "0s")
	assert.ErrorContains(t, err, "--interval")
}
