// Package backend is the typed client for the TA management REST API.
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
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/asdos-web/internal/middleware"
	"github.com/noah-isme/asdos-web/internal/observability"
)

const maxResponseBytes = 4 << 20

// ErrUnavailable wraps transport failures: the backend could not be reached or
// answered with something that is not JSON.
var ErrUnavailable = errors.New("backend unavailable")

// ErrInvalidID reports a resource id that would change the backend path when
// joined, such as "" or "..".
var ErrInvalidID = errors.New("invalid resource id")

// APIError is a non-success answer from the backend.
type APIError struct {
	StatusCode int
	Status     string
	Messages   []string
}

func (e *APIError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("backend responded %d", e.StatusCode)
	}
	return fmt.Sprintf("backend responded %d: %s", e.StatusCode, strings.Join(e.Messages, "; "))
}

// Message returns the backend's first message, or a generic one.
func (e *APIError) Message() string {
	if len(e.Messages) > 0 {
		return e.Messages[0]
	}
	return http.StatusText(e.StatusCode)
}

// IsStatus reports whether err is an APIError with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// Config defines how the client reaches the backend.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	Transport http.RoundTripper
	Logger    zerolog.Logger
}

// Client calls the backend on behalf of a signed-in user, forwarding their
// token as a bearer credential.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	tracer  trace.Tracer
	logger  zerolog.Logger
}

// New builds a client for cfg.BaseURL.
func New(cfg Config) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("backend url %q must be absolute", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(transport),
		},
		tracer: otel.Tracer("github.com/noah-isme/asdos-web/internal/backend"),
		logger: cfg.Logger.With().Str("component", "backend_client").Logger(),
	}, nil
}

// call describes one backend request. endpoint names the operation for
// metrics and tracing.
type call struct {
	endpoint string
	method   string
	path     []string
	query    url.Values
	token    string
	body     interface{}
	// strict requires an envelope status of "accept" even on 2xx answers.
	strict bool
}

// envelope is the wrapper some endpoints use. Others answer with the bare
// payload, so every field is optional.
type envelope struct {
	Status   string          `json:"status"`
	Message  json.RawMessage `json:"message"`
	Messages json.RawMessage `json:"messages"`
	Error    json.RawMessage `json:"error"`
	Data     json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, req call, out interface{}) error {
	if err := checkSegments(req.path); err != nil {
		return fmt.Errorf("%s: %w", req.endpoint, err)
	}

	ctx, span := c.tracer.Start(ctx, "backend."+req.endpoint, trace.WithAttributes(
		attribute.String("http.method", req.method),
		attribute.String("backend.path", "/"+strings.Join(req.path, "/")),
	))
	defer span.End()

	start := time.Now()
	status, err := c.send(ctx, req, out)
	observability.BackendLatency().WithLabelValues(req.endpoint, req.method).Observe(time.Since(start).Seconds())

	if err != nil {
		label := "transport"
		if status > 0 {
			label = strconv.Itoa(status)
		}
		observability.BackendFailures().WithLabelValues(req.endpoint, label).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Warn().
			Err(err).
			Str("correlation_id", middleware.CorrelationIDFromContext(ctx)).
			Str("endpoint", req.endpoint).
			Int("status", status).
			Msg("backend call failed")
		return err
	}

	span.SetAttributes(attribute.Int("http.status_code", status))
	return nil
}

func (c *Client) send(ctx context.Context, req call, out interface{}) (int, error) {
	target := c.baseURL.JoinPath(req.path...)
	if len(req.query) > 0 {
		target.RawQuery = req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return 0, fmt.Errorf("encode %s request: %w", req.endpoint, err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target.String(), body)
	if err != nil {
		return 0, fmt.Errorf("build %s request: %w", req.endpoint, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}
	if id := middleware.CorrelationIDFromContext(ctx); id != "" {
		httpReq.Header.Set(middleware.CorrelationHeader, id)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrUnavailable, req.endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("%w: read %s response: %v", ErrUnavailable, req.endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, newAPIError(resp.StatusCode, raw)
	}

	if req.strict {
		env, ok := parseEnvelope(raw)
		if ok && env.Status != "" && !strings.EqualFold(env.Status, "accept") {
			return resp.StatusCode, newAPIError(http.StatusBadRequest, raw)
		}
	}

	if err := decodePayload(raw, out); err != nil {
		return resp.StatusCode, fmt.Errorf("%w: decode %s response: %v", ErrUnavailable, req.endpoint, err)
	}

	return resp.StatusCode, nil
}

// segments splits a slash-separated route into path elements and appends each
// id escaped as a single element.
func segments(route string, ids ...string) []string {
	parts := strings.Split(strings.Trim(route, "/"), "/")
	for _, id := range ids {
		parts = append(parts, url.PathEscape(id))
	}
	return parts
}

func checkSegments(parts []string) error {
	for _, part := range parts {
		switch part {
		case "", ".", "..":
			return fmt.Errorf("%w: %q", ErrInvalidID, part)
		}
	}
	return nil
}

func newAPIError(status int, raw []byte) *APIError {
	apiErr := &APIError{StatusCode: status}
	if env, ok := parseEnvelope(raw); ok {
		apiErr.Status = env.Status
		apiErr.Messages = append(apiErr.Messages, messages(env.Message)...)
		apiErr.Messages = append(apiErr.Messages, messages(env.Messages)...)
		apiErr.Messages = append(apiErr.Messages, messages(env.Error)...)
		return apiErr
	}
	if text := strings.TrimSpace(string(raw)); text != "" && len(text) < 512 {
		apiErr.Messages = []string{text}
	}
	return apiErr
}

func parseEnvelope(raw []byte) (envelope, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return envelope{}, false
	}
	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return envelope{}, false
	}
	return env, true
}

// messages flattens a message field that may be a string, a list of strings
// or an object of field errors.
func messages(raw json.RawMessage) []string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		if single = strings.TrimSpace(single); single != "" {
			return []string{single}
		}
		return nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}

	var fields map[string]string
	if err := json.Unmarshal(raw, &fields); err == nil {
		out := make([]string, 0, len(fields))
		for field, msg := range fields {
			out = append(out, field+": "+msg)
		}
		sort.Strings(out)
		return out
	}

	return []string{string(raw)}
}

// decodePayload unwraps a data envelope when present and otherwise decodes the
// body as the payload itself.
func decodePayload(raw []byte, out interface{}) error {
	if out == nil {
		return nil
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}

	if trimmed[0] == '{' {
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &probe); err != nil {
			return err
		}
		if data, ok := probe["data"]; ok && string(data) != "null" {
			return json.Unmarshal(data, out)
		}
	}

	return json.Unmarshal(trimmed, out)
}
