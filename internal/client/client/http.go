package client

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

	"golang.org/x/oauth2"

	"github.com/dmitrijs2005/gophfinance/internal/logging"
)

const (
	apiPrefix  = "/api"
	authPrefix = "/auth"

	// maxErrorBody caps how much of an error response is read for its message.
	maxErrorBody = 4 << 10
)

type Options struct {
	// Timeout bounds each request. Zero disables it.
	Timeout time.Duration
	// Transport is the base round tripper; http.DefaultTransport when nil.
	Transport http.RoundTripper
	Logger    logging.Logger
}

type HTTPClient struct {
	base   *url.URL
	authed *http.Client
	anon   *http.Client
	log    logging.Logger
}

// NewHTTPClient builds a client for the backend at baseURL. Requests under
// /api carry the token from ts.
func NewHTTPClient(baseURL string, ts oauth2.TokenSource, opts Options) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}

	return &HTTPClient{
		base:   u,
		authed: &http.Client{Timeout: opts.Timeout, Transport: &oauth2.Transport{Source: ts, Base: base}},
		anon:   &http.Client{Timeout: opts.Timeout, Transport: base},
		log:    log.With("component", "api"),
	}, nil
}

type request struct {
	method string
	// path holds unescaped segments below the /api or /auth prefix.
	path  []string
	query url.Values
	body  any
	anon  bool
}

func (c *HTTPClient) url(r request) string {
	prefix := apiPrefix
	if r.anon {
		prefix = authPrefix
	}
	segs := make([]string, 0, len(r.path)+1)
	segs = append(segs, strings.TrimPrefix(prefix, "/"))
	for _, s := range r.path {
		segs = append(segs, url.PathEscape(s))
	}
	u := c.base.JoinPath(segs...)
	if len(r.query) > 0 {
		u.RawQuery = r.query.Encode()
	}
	return u.String()
}

func (r request) logPath() string { return strings.Join(r.path, "/") }

// do sends r and decodes a 2xx JSON body into out (when non-nil).
func (c *HTTPClient) do(ctx context.Context, r request, out any) error {
	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.url(r), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	hc := c.authed
	if r.anon {
		hc = c.anon
	}

	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", r.method, "path", r.logPath(), "error", err)
		return mapError(err)
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "request", "method", r.method, "path", r.logPath(), "status", resp.StatusCode, "took", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp.StatusCode, readMessage(resp.Body))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty response body", ErrBackend)
		}
		return fmt.Errorf("%w: decode response: %v", ErrBackend, err)
	}
	return nil
}

// readMessage pulls a human readable message out of an error body: the
// "message" or "error" field of a JSON object, or the raw text.
func readMessage(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return ""
	}

	var obj struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(b, &obj) == nil {
		if obj.Message != "" {
			return obj.Message
		}
		if obj.Error != "" {
			return obj.Error
		}
	}
	return string(b)
}
