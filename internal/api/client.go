// Package api is the single outgoing-request pipeline to the asset-management
// backend. Every call carries the current bearer credential; non-2xx responses
// surface as *APIError with the backend-supplied message.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "assetdesk/cli/internal/api"

// Client issues JSON requests against the backend base URL. The credential is
// attached at issue time, so a SetCredential call is atomic with respect to
// subsequently issued requests. No retry, no timeout, no caching: every call
// is a single fire-and-await operation and failures propagate to the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tracer     trace.Tracer
	requests   metric.Int64Counter

	mu         sync.RWMutex
	credential string
}

// NewClient returns a Client for the given base URL. httpClient may be nil;
// a default client without a timeout is used then.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	counter, err := otel.Meter(instrumentationName).Int64Counter(
		"assetdesk.api.requests",
		metric.WithDescription("Outgoing backend API requests by method and status."),
	)
	if err != nil {
		counter = nil
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		tracer:     otel.Tracer(instrumentationName),
		requests:   counter,
	}
}

// SetCredential replaces the default bearer credential for all subsequent
// calls. An empty token clears it; such calls carry no Authorization header.
func (c *Client) SetCredential(token string) {
	c.mu.Lock()
	c.credential = token
	c.mu.Unlock()
}

// Credential returns the current default bearer credential ("" when unset).
func (c *Client) Credential() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.credential
}

// Get issues GET path and decodes the JSON response into out (ignored if nil).
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues POST path with the JSON-encoded body (nil for no body).
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Patch issues PATCH path with the JSON-encoded body (nil for no body).
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

// Put issues PUT path with the JSON-encoded body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Delete issues DELETE path.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	ctx, span := c.tracer.Start(ctx, method+" "+routeOf(path),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		),
	)
	defer span.End()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			span.SetStatus(codes.Error, "encode request body")
			return fmt.Errorf("api: encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		span.SetStatus(codes.Error, "build request")
		return fmt.Errorf("api: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cred := c.Credential(); cred != "" {
		req.Header.Set("Authorization", "Bearer "+cred)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.count(ctx, method, 0)
		span.SetStatus(codes.Error, "transport")
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.count(ctx, method, resp.StatusCode)
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		span.SetStatus(codes.Error, "read response")
		return fmt.Errorf("api: read %s %s response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		span.SetStatus(codes.Error, resp.Status)
		return newAPIError(resp.StatusCode, resp.Status, raw)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		span.SetStatus(codes.Error, "decode response")
		return fmt.Errorf("api: decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) count(ctx context.Context, method string, status int) {
	if c.requests == nil {
		return
	}
	c.requests.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.Int("http.response.status_code", status),
		),
	)
}

// routeOf strips the query string so span names stay low-cardinality.
func routeOf(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		return path[:i]
	}
	return path
}

// APIError is a structured backend rejection: the HTTP status code plus the
// human-readable message from the error payload's "msg" field.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: backend returned %d: %s", e.StatusCode, e.Message)
}

// errorBody is the backend's error payload shape.
type errorBody struct {
	Msg string `json:"msg"`
}

func newAPIError(statusCode int, status string, raw []byte) *APIError {
	var eb errorBody
	if err := json.Unmarshal(raw, &eb); err == nil && eb.Msg != "" {
		return &APIError{StatusCode: statusCode, Message: eb.Msg}
	}
	return &APIError{StatusCode: statusCode, Message: status}
}

// IsAuthError reports whether err is a backend rejection of the credential
// (401 or 403). Such errors downgrade the session instead of surfacing.
func IsAuthError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}
