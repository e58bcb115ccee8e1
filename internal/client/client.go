// Package client is the single integration point with the study backend: a
// JSON-over-HTTP wrapper that carries the student's bearer token and mirrors
// it into a durable store.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"oabstudy/internal/models"
	"oabstudy/internal/session"
)

// DefaultBaseURL is used when no origin is configured.
const DefaultBaseURL = "https://oab.doutoraia.com"

// Options configures a Client. The zero value talks to DefaultBaseURL with a
// plain http.Client and no logging.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *log.Logger
}

// RequestOptions describes a single call to Request.
type RequestOptions struct {
	Method  string // GET when empty
	Body    any    // encoded as JSON when non-nil
	Headers http.Header
}

// Client is safe for concurrent use. It does not serialize, deduplicate or
// retry calls; concurrent token updates resolve as last writer wins.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
	store   session.TokenStore

	mu    sync.RWMutex
	token string
}

// New builds a client. When store is non-nil the previously saved token is
// loaded from it. No network I/O happens here.
func New(ctx context.Context, opts Options, store session.TokenStore) (*Client, error) {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	c := &Client{
		baseURL: baseURL,
		http:    httpClient,
		logger:  opts.Logger,
		store:   store,
	}

	if store != nil {
		token, ok, err := store.Load(ctx, session.TokenKey)
		if err != nil {
			return nil, fmt.Errorf("load saved token: %w", err)
		}
		if ok {
			c.token = token
		}
	}

	return c, nil
}

// BaseURL returns the origin all paths are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetToken switches the client to the authenticated state and persists the
// token when a store is attached.
func (c *Client) SetToken(ctx context.Context, token string) error {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	if c.store != nil {
		if err := c.store.Save(ctx, session.TokenKey, token); err != nil {
			return fmt.Errorf("persist token: %w", err)
		}
	}
	return nil
}

// ClearToken switches the client back to anonymous. Clearing an anonymous
// client is a no-op apart from the store delete.
func (c *Client) ClearToken(ctx context.Context) error {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()

	if c.store != nil {
		if err := c.store.Delete(ctx, session.TokenKey); err != nil {
			return fmt.Errorf("remove token: %w", err)
		}
	}
	return nil
}

// Token returns the current bearer token, empty when anonymous.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Authenticated reports whether a token is set. It says nothing about whether
// the server still accepts it.
func (c *Client) Authenticated() bool {
	return c.Token() != ""
}

// Request performs one call against the configured origin and returns the
// raw JSON body of a 2xx answer. It never retries.
func (c *Client) Request(ctx context.Context, path string, opts RequestOptions) (json.RawMessage, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if opts.Body != nil {
		payload, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	for name, values := range opts.Headers {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	raw, err := do(c.http, req)
	if err != nil {
		c.logf("%s %s: %v", method, path, err)
		return nil, err
	}
	c.logf("%s %s: ok", method, path)

	if !json.Valid(raw) {
		err := fmt.Errorf("invalid JSON in response to %s %s", method, path)
		return nil, &APIError{Kind: KindDecode, Message: err.Error(), Err: err}
	}

	return json.RawMessage(raw), nil
}

// do sends req and returns the body of a 2xx answer. Every failure is an
// *APIError of kind transport or http.
func do(hc *http.Client, req *http.Request) ([]byte, error) {
	resp, err := hc.Do(req)
	if err != nil {
		return nil, &APIError{Kind: KindTransport, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Kind: KindTransport, Message: err.Error(), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			Kind:    KindHTTP,
			Status:  resp.StatusCode,
			Message: errorMessage(raw, resp.StatusCode),
		}
	}
	return raw, nil
}

// errorMessage extracts the server's message from an error body. Any JSON
// value counts as parsed; only an object can carry a message.
func errorMessage(raw []byte, status int) string {
	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		return msgUnknownError
	}

	obj, _ := body.(map[string]any)
	switch msg := obj["message"].(type) {
	case string:
		if msg != "" {
			return msg
		}
	case float64:
		if msg != 0 {
			return strconv.FormatFloat(msg, 'f', -1, 64)
		}
	case bool:
		if msg {
			return "true"
		}
	case nil:
	default:
		return fmt.Sprint(msg)
	}
	return msgStatusPrefix + strconv.Itoa(status)
}

func (c *Client) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}

// call runs Request and decodes the envelope. On any failure it returns nil,
// never a partially filled value.
func call[T any](ctx context.Context, c *Client, path string, opts RequestOptions) (*models.Envelope[T], error) {
	raw, err := c.Request(ctx, path, opts)
	if err != nil {
		return nil, err
	}

	env := new(models.Envelope[T])
	if err := json.Unmarshal(raw, env); err != nil {
		return nil, &APIError{
			Kind:    KindDecode,
			Message: fmt.Sprintf("decode response of %s: %v", path, err),
			Err:     err,
		}
	}
	return env, nil
}
