// Package apiclient is the remote accessor for the store API: one HTTP
// request per operation, JSON or multipart encoded.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const maxBody = 10 << 20

type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the traced default client.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

func WithTimeout(d time.Duration) Option { return func(c *Client) { c.http.Timeout = d } }

func WithLogger(l *zap.Logger) Option { return func(c *Client) { c.logger = l } }

func New(baseURL string, opts ...Option) *Client {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     90 * time.Second,
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Transport: otelhttp.NewTransport(transport),
			Timeout:   30 * time.Second,
		},
		logger: zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

// ImageURL builds the public URL of an uploaded image name.
func (c *Client) ImageURL(name string) string {
	if name == "" {
		return ""
	}
	return c.baseURL + "/images/" + url.PathEscape(name)
}

type tokenKey struct{}

// WithToken attaches the bearer token used by calls made with ctx.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func TokenFrom(ctx context.Context) string {
	tok, _ := ctx.Value(tokenKey{}).(string)
	return tok
}

type request struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
}

// do performs one request. out may be nil; a 204 or empty body leaves it untouched.
func (c *Client) do(ctx context.Context, op string, r request, out any) error {
	u := c.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, r.method, u, r.body)
	if err != nil {
		return c.fail(&Error{Op: op, Kind: KindNetwork, Message: "build request", Err: err})
	}
	// absent token still sends the header, with an empty value
	req.Header.Set("Authorization", "Bearer "+TokenFrom(ctx))
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.fail(&Error{Op: op, Kind: KindNetwork, Err: err})
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return c.fail(&Error{Op: op, Kind: KindNetwork, Status: resp.StatusCode, Message: "read body", Err: err})
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env errorEnvelope
		_ = json.Unmarshal(body, &env)
		return c.fail(classify(op, resp.StatusCode, env))
	}
	if out == nil || resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return c.fail(&Error{Op: op, Kind: KindNetwork, Status: resp.StatusCode, Message: "decode response", Err: err})
	}
	return nil
}

func (c *Client) fail(e *Error) error {
	fields := []zap.Field{
		zap.String("op", e.Op),
		zap.String("kind", string(e.Kind)),
		zap.Int("status", e.Status),
	}
	if len(e.Details) > 0 {
		fields = append(fields, zap.Strings("details", e.Details))
	}
	if e.Err != nil {
		fields = append(fields, zap.Error(e.Err))
	} else if e.Message != "" {
		fields = append(fields, zap.String("message", e.Message))
	}
	c.logger.Warn("api.request.fail", fields...)
	return e
}

func jsonBody(v any) (io.Reader, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(b), nil
}

// orEmpty keeps store contents non-nil when the API sends "data": null.
func orEmpty[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

var errNoToken = errors.New("no token in login response")
