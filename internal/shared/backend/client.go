package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"attendance-dashboard/internal/credential"
	"attendance-dashboard/internal/shared/contextutil"

	"go.uber.org/zap"
)

// batas body error yang dibaca, supaya halaman error HTML besar tidak ikut dimuat
const maxErrorBody = 64 << 10

type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      credential.Provider
	logger     *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l.Named("backend.client")
		}
	}
}

// New membuat client ke backend attendance. creds dipanggil di setiap request
// untuk mengambil bearer token; nil berarti request dikirim tanpa Authorization.
func New(baseURL string, creds credential.Provider, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		creds:      creds,
		logger:     zap.L().Named("backend.client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

// Do mengirim request dan mengembalikan envelope yang status-nya true.
// Semua kegagalan dikembalikan sebagai *TransportError, *HTTPStatusError
// atau *ApplicationError.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body any) (*Envelope, error) {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, &TransportError{Method: method, URL: fullURL, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if c.creds != nil {
		if token, ok := c.creds.Token(ctx); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	if rid := contextutil.GetRequestID(ctx); rid != "" {
		req.Header.Set("X-Request-ID", rid)
	}

	log := contextutil.GetLogger(ctx, c.logger)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, &TransportError{Method: method, URL: fullURL, Err: err}
	}
	defer resp.Body.Close()

	log.Debug("backend response",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var env Envelope
		_ = json.Unmarshal(raw, &env)
		return nil, &HTTPStatusError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	var env Envelope
	err = json.NewDecoder(resp.Body).Decode(&env)
	switch {
	case errors.Is(err, io.EOF):
		// body kosong (mis. 204) dianggap sukses tanpa data
		env.Status = true
	case err != nil:
		return nil, &TransportError{Method: method, URL: fullURL, Err: fmt.Errorf("decode envelope: %w", err)}
	}

	if !env.Status {
		return nil, &ApplicationError{Message: env.Message}
	}
	return &env, nil
}

// Get mengirim GET dan men-decode field data ke out (boleh nil).
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) (*Envelope, error) {
	env, err := c.Do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	return env, decodeData(env, out)
}

// Send dipakai untuk POST/PUT/DELETE dengan body JSON.
func (c *Client) Send(ctx context.Context, method, path string, body, out any) (*Envelope, error) {
	env, err := c.Do(ctx, method, path, nil, body)
	if err != nil {
		return nil, err
	}
	return env, decodeData(env, out)
}

func decodeData(env *Envelope, out any) error {
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}
