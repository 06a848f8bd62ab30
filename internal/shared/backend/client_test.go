package backend_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"attendance-dashboard/internal/credential"
	"attendance-dashboard/internal/shared/apperror"
	"attendance-dashboard/internal/shared/backend"
	"attendance-dashboard/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newClient(t *testing.T, h http.HandlerFunc, creds credential.Provider) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return backend.New(srv.URL+"/", creds, backend.WithHTTPClient(srv.Client()), backend.WithLogger(zap.NewNop()))
}

func TestClient_Get_SendsHeadersAndDecodesData(t *testing.T) {
	var got *http.Request
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r
		_, _ = w.Write([]byte(`{"status":true,"data":{"id":7,"name":"Ayu"},"meta":{"current_page":2,"per_page":10,"total":31,"last_page":4}}`))
	}, credential.Static("tok-123"))

	ctx := contextutil.WithRequestID(context.Background(), "rid-9")
	var out struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	env, err := c.Get(ctx, "/api/attendance/7", url.Values{"page": {"2"}}, &out)
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "/api/attendance/7", got.URL.Path)
	assert.Equal(t, "2", got.URL.Query().Get("page"))
	assert.Equal(t, "application/json", got.Header.Get("Accept"))
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.Equal(t, "Bearer tok-123", got.Header.Get("Authorization"))
	assert.Equal(t, "rid-9", got.Header.Get("X-Request-ID"))

	assert.Equal(t, 7, out.ID)
	assert.Equal(t, "Ayu", out.Name)

	meta, ok := env.DecodeMeta()
	assert.True(t, ok)
	assert.Equal(t, int64(31), meta.Total)
	assert.Equal(t, 4, meta.LastPage)
}

func TestClient_NoTokenOmitsAuthorization(t *testing.T) {
	var auth string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"status":true}`))
	}, credential.Static(""))

	_, err := c.Get(context.Background(), "/api/auth/me", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, auth)
}

func TestClient_Send_EncodesBody(t *testing.T) {
	var body map[string]any
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusNoContent)
	}, nil)

	_, err := c.Send(context.Background(), http.MethodPost, "/api/attendance/clock-in", map[string]string{"qr_token": "q1"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "q1", body["qr_token"])
}

func TestClient_ErrorTaxonomy(t *testing.T) {
	t.Run("application error keeps backend message", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":false,"message":"QR code expired"}`))
		}, nil)

		_, err := c.Get(context.Background(), "/x", nil, nil)
		var appErr *backend.ApplicationError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "QR code expired", err.Error())
	})

	t.Run("status error contains code and message", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"status":false,"message":"db down"}`))
		}, nil)

		_, err := c.Get(context.Background(), "/x", nil, nil)
		var statusErr *backend.HTTPStatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
		assert.Contains(t, err.Error(), "500")
		assert.Contains(t, err.Error(), "db down")
	})

	t.Run("status error with html body", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`<html>bad gateway</html>`))
		}, nil)

		_, err := c.Get(context.Background(), "/x", nil, nil)
		assert.EqualError(t, err, "request failed with status 502")
	})

	t.Run("malformed success body is a transport error", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":tru`))
		}, nil)

		_, err := c.Get(context.Background(), "/x", nil, nil)
		var transportErr *backend.TransportError
		assert.True(t, errors.As(err, &transportErr))
	})

	t.Run("unreachable backend is a transport error", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		base := srv.URL
		srv.Close()

		c := backend.New(base, nil, backend.WithLogger(zap.NewNop()))
		_, err := c.Get(context.Background(), "/x", nil, nil)
		var transportErr *backend.TransportError
		assert.True(t, errors.As(err, &transportErr))
	})
}

func TestToAppError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"transport", &backend.TransportError{Method: "GET", URL: "u", Err: errors.New("refused")}, http.StatusServiceUnavailable, apperror.CodeServiceUnavailable},
		{"application", &backend.ApplicationError{Message: "already clocked in"}, http.StatusUnprocessableEntity, apperror.CodeRejected},
		{"unauthorized", &backend.HTTPStatusError{StatusCode: 401}, http.StatusUnauthorized, apperror.CodeUnauthorized},
		{"forbidden", &backend.HTTPStatusError{StatusCode: 403}, http.StatusForbidden, apperror.CodeForbidden},
		{"not found", &backend.HTTPStatusError{StatusCode: 404}, http.StatusNotFound, apperror.CodeNotFound},
		{"validation", &backend.HTTPStatusError{StatusCode: 422, Message: "title taken"}, http.StatusUnprocessableEntity, apperror.CodeInvalidInput},
		{"server", &backend.HTTPStatusError{StatusCode: 500}, http.StatusBadGateway, apperror.CodeBadGateway},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			httpErr := apperror.ToHTTP(backend.ToAppError(tc.err))
			assert.Equal(t, tc.status, httpErr.Status)
			assert.Equal(t, tc.code, httpErr.Code)
		})
	}

	assert.Equal(t, "Session expired, please log in again",
		apperror.ToHTTP(backend.ToAppError(&backend.HTTPStatusError{StatusCode: 401})).Message)
	assert.Equal(t, "title taken",
		apperror.ToHTTP(backend.ToAppError(&backend.HTTPStatusError{StatusCode: 422, Message: "title taken"})).Message)

	assert.Nil(t, backend.ToAppError(nil))
	plain := errors.New("plain")
	assert.Same(t, plain, backend.ToAppError(plain))
}
