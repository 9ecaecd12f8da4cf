// Package gateway is the HTTP client every call to the banking API goes
// through. It attaches the bearer token, normalises error responses and
// applies the offline fallback policy.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/vault42/console/internal/api/metrics"
	"github.com/vault42/console/internal/core/domain"
	"github.com/vault42/console/internal/core/ports"
)

const (
	headerContentType   = "Content-Type"
	headerAuthorization = "Authorization"
	// Required by the tunnelling proxy used in development.
	headerSkipBrowserWarning = "ngrok-skip-browser-warning"

	mimeJSON = "application/json"
)

// Client implements ports.Gateway.
type Client struct {
	baseURL  string
	tokens   ports.TokenProvider
	http     *http.Client
	fallback FallbackPolicy
	headers  map[string]string
	log      zerolog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client. No timeout is set by
// default.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithFallback(p FallbackPolicy) Option {
	return func(c *Client) { c.fallback = p }
}

func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithHeader adds a header sent on every JSON request.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers[key] = value }
}

// New builds a Client. tokens may be nil for unauthenticated use.
func New(baseURL string, tokens ports.TokenProvider, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		tokens:   tokens,
		http:     &http.Client{},
		fallback: NoFallback(),
		headers:  make(map[string]string),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ ports.Gateway = (*Client)(nil)

// Do sends a JSON request and decodes the JSON response into out.
func (c *Client) Do(ctx context.Context, req ports.Request, out any) error {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, req.Path, err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+req.Path, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, req.Path, err)
	}
	httpReq.Header.Set(headerContentType, mimeJSON)
	httpReq.Header.Set(headerSkipBrowserWarning, "true")
	for k, v := range c.headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Header {
		httpReq.Header.Set(k, v)
	}
	c.authorize(httpReq)

	family := endpointFamily(req.Path)
	start := time.Now()
	resp, err := c.http.Do(httpReq)
	metrics.GatewayRequestDuration.WithLabelValues(family).Observe(time.Since(start).Seconds())
	if err != nil {
		return c.onTransportError(ctx, method, req.Path, family, err, out)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.GatewayRequestsTotal.WithLabelValues(family, "network_error").Inc()
		return &domain.NetworkError{Method: method, Path: req.Path, Err: err}
	}

	if !success(resp.StatusCode) {
		metrics.GatewayRequestsTotal.WithLabelValues(family, "api_error").Inc()
		return apiError(resp.StatusCode, payload)
	}

	metrics.GatewayRequestsTotal.WithLabelValues(family, "ok").Inc()
	return decode(method, req.Path, payload, out)
}

// onTransportError handles requests that never produced a response.
func (c *Client) onTransportError(ctx context.Context, method, path, family string, cause error, out any) error {
	netErr := &domain.NetworkError{Method: method, Path: path, Err: cause}

	// A caller that gave up does not get demo data.
	if ctx.Err() != nil {
		metrics.GatewayRequestsTotal.WithLabelValues(family, "network_error").Inc()
		return netErr
	}

	payload, ok := c.fallback.Lookup(path)
	if !ok {
		metrics.GatewayRequestsTotal.WithLabelValues(family, "network_error").Inc()
		return netErr
	}

	c.log.Warn().
		Err(cause).
		Str("method", method).
		Str("path", path).
		Msg("api request failed, serving fallback data")
	metrics.GatewayRequestsTotal.WithLabelValues(family, "fallback").Inc()
	return decode(method, path, payload, out)
}

// Download fetches a binary payload such as a report PDF.
func (c *Client) Download(ctx context.Context, method, path string) ([]byte, error) {
	if method == "" {
		method = http.MethodGet
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	httpReq.Header.Set(headerSkipBrowserWarning, "true")
	c.authorize(httpReq)

	family := endpointFamily(path)
	start := time.Now()
	resp, err := c.http.Do(httpReq)
	metrics.GatewayRequestDuration.WithLabelValues(family).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.GatewayRequestsTotal.WithLabelValues(family, "network_error").Inc()
		return nil, &domain.NetworkError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		metrics.GatewayRequestsTotal.WithLabelValues(family, "api_error").Inc()
		return nil, &domain.APIError{
			Status:  resp.StatusCode,
			Message: "Failed to download report: " + http.StatusText(resp.StatusCode),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.GatewayRequestsTotal.WithLabelValues(family, "network_error").Inc()
		return nil, &domain.NetworkError{Method: method, Path: path, Err: err}
	}
	metrics.GatewayRequestsTotal.WithLabelValues(family, "ok").Inc()
	return data, nil
}

// Upload posts fields and a single file part named "file" as multipart form
// data. The multipart boundary sets the content type.
func (c *Client) Upload(ctx context.Context, path string, fields map[string]string, file domain.UploadFile, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := w.WriteField(k, fields[k]); err != nil {
			return fmt.Errorf("write form field %s: %w", k, err)
		}
	}

	name := file.Name
	if name == "" {
		name = "upload"
	}
	part, err := w.CreateFormFile("file", name)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(file.Content); err != nil {
		return fmt.Errorf("write form file: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close multipart writer: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("build POST %s: %w", path, err)
	}
	httpReq.Header.Set(headerContentType, w.FormDataContentType())
	httpReq.Header.Set(headerSkipBrowserWarning, "true")
	c.authorize(httpReq)

	family := endpointFamily(path)
	start := time.Now()
	resp, err := c.http.Do(httpReq)
	metrics.GatewayRequestDuration.WithLabelValues(family).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.GatewayRequestsTotal.WithLabelValues(family, "network_error").Inc()
		return &domain.NetworkError{Method: http.MethodPost, Path: path, Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.GatewayRequestsTotal.WithLabelValues(family, "network_error").Inc()
		return &domain.NetworkError{Method: http.MethodPost, Path: path, Err: err}
	}
	if !success(resp.StatusCode) {
		metrics.GatewayRequestsTotal.WithLabelValues(family, "api_error").Inc()
		return apiError(resp.StatusCode, payload)
	}
	metrics.GatewayRequestsTotal.WithLabelValues(family, "ok").Inc()
	return decode(http.MethodPost, path, payload, out)
}

// Ping reports whether the API host answers at all. Any HTTP status counts.
func (c *Client) Ping(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	httpReq.Header.Set(headerSkipBrowserWarning, "true")
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

func (c *Client) authorize(r *http.Request) {
	if c.tokens == nil {
		return
	}
	if token, ok := c.tokens.Token(); ok && token != "" {
		r.Header.Set(headerAuthorization, "Bearer "+token)
	}
}

func success(code int) bool {
	return code >= 200 && code < 300
}

type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

// apiError extracts a readable message from an error response: "detail",
// then "message", then the status text.
func apiError(status int, payload []byte) *domain.APIError {
	var body errorBody
	if err := json.Unmarshal(payload, &body); err == nil {
		if msg := detailMessage(body.Detail); msg != "" {
			return &domain.APIError{Status: status, Message: msg, Structured: true}
		}
		if body.Message != "" {
			return &domain.APIError{Status: status, Message: body.Message, Structured: true}
		}
	}
	return &domain.APIError{Status: status, Message: "API Error: " + http.StatusText(status)}
}

// detailMessage accepts a plain string detail or renders any other JSON
// value (validation error lists) verbatim.
func detailMessage(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func decode(method, path string, payload []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// endpointFamily is the first path segment, used as a low-cardinality label.
func endpointFamily(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "root"
	}
	return path
}

