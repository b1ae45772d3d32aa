// Package tracker is a typed client for the email-tracking backend REST API.
//
// Every endpoint answers with a JSON envelope carrying a success flag and, on
// failure, a message meant for the user. The client turns transport failures,
// non-2xx statuses, undecodable bodies and success:false envelopes into a
// *RequestError whose Message is shown verbatim. There are no retries.
package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/mailtrack/pkg/logger"
)

// maxBodySize caps how much of a response is read.
const maxBodySize = 10 << 20

// Doer executes HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the tracking backend.
type Client struct {
	baseURL   *url.URL
	http      Doer
	userAgent string
	log       *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the transport. Timeouts, if any, belong to it.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) {
		if d != nil {
			c.http = d
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every call.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger sets the logger used for debug traces of backend calls.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a client for the backend rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: only http and https schemes are supported", ErrInvalidURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: host is required", ErrInvalidURL)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")

	c := &Client{
		baseURL:   u,
		http:      http.DefaultClient,
		userAgent: "mailtrack-dashboard/1.0",
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// envelope is the common shape of every backend response.
type envelope struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

// call describes one backend request.
type call struct {
	op          string
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
}

// jsonCall prepares a call whose body is v encoded as JSON.
func jsonCall(op, method, path string, v any) (call, error) {
	c := call{op: op, method: method, path: path}
	if v == nil {
		return c, nil
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return c, &RequestError{Op: op, Message: fallbackMessage, Err: fmt.Errorf("marshal payload: %w", err)}
	}
	c.body = bytes.NewReader(payload)
	c.contentType = "application/json"
	return c, nil
}

// do runs the call and decodes the body into out. The raw envelope is returned as well.
func (c *Client) do(ctx context.Context, cl call, out any) (envelope, error) {
	var env envelope

	// cl.path is already escaped.
	u := *c.baseURL
	u.RawPath = c.baseURL.EscapedPath() + cl.path
	if p, err := url.PathUnescape(u.RawPath); err == nil {
		u.Path = p
	}
	if len(cl.query) > 0 {
		u.RawQuery = cl.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, u.String(), cl.body)
	if err != nil {
		return env, &RequestError{Op: cl.op, Message: fallbackMessage, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if cl.contentType != "" {
		req.Header.Set("Content-Type", cl.contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return env, &RequestError{Op: cl.op, Message: transportMessage(err), Err: fmt.Errorf("%w: %w", ErrTransport, err)}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return env, &RequestError{Op: cl.op, Status: resp.StatusCode, Message: transportMessage(err), Err: fmt.Errorf("%w: %w", ErrTransport, err)}
	}

	c.log.DebugContext(ctx, "tracker call",
		logger.Component("tracker"),
		slog.String("op", cl.op),
		slog.String("method", cl.method),
		slog.String("path", cl.path),
		slog.Int("status", resp.StatusCode),
	)

	decodeErr := json.Unmarshal(data, &env)
	ok := resp.StatusCode >= 200 && resp.StatusCode < 300

	switch {
	case !ok:
		msg := env.Message
		if decodeErr != nil || msg == "" {
			msg = fmt.Sprintf("%s (HTTP %d)", fallbackMessage, resp.StatusCode)
		}
		return env, &RequestError{Op: cl.op, Status: resp.StatusCode, Message: msg, Err: ErrUnsuccessful}
	case decodeErr != nil:
		return env, &RequestError{Op: cl.op, Status: resp.StatusCode, Message: "Invalid response from server", Err: fmt.Errorf("%w: %w", ErrInvalidBody, decodeErr)}
	case env.Success != nil && !*env.Success:
		msg := env.Message
		if msg == "" {
			msg = fallbackMessage
		}
		return env, &RequestError{Op: cl.op, Status: resp.StatusCode, Message: msg, Err: ErrUnsuccessful}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return env, &RequestError{Op: cl.op, Status: resp.StatusCode, Message: "Invalid response from server", Err: fmt.Errorf("%w: %w", ErrInvalidBody, err)}
		}
	}
	return env, nil
}

func transportMessage(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err.Error()
	}
	return err.Error()
}
