package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"

	"github.com/zgs/booking-client/config"
	"github.com/zgs/booking-client/internal/errs"
	"github.com/zgs/booking-client/pkg/circuit_breaker"
)

// Client issues credentialed requests against the booking backend. The
// session cookie handed out by the login endpoint lives in its jar and is
// attached to every later call.
type Client struct {
	log       *zap.Logger
	base      *url.URL
	userAgent string
	limiter   *rate.Limiter
	cb        circuit_breaker.CircuitBreaker

	mu   sync.RWMutex
	http *http.Client
}

func New(log *zap.Logger, cfg config.Backend, cb circuit_breaker.CircuitBreaker) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, errors.Wrap(err, "parse base url")
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, errors.Errorf("base url %q must be absolute", cfg.BaseURL)
	}
	jar, err := newJar()
	if err != nil {
		return nil, err
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RPS), 1)
	}
	if cb == nil {
		cb = circuit_breaker.New(circuit_breaker.Config{Enabled: false})
	}
	return &Client{
		log:       log.Named("rest"),
		base:      base,
		userAgent: cfg.UserAgent,
		limiter:   limiter,
		cb:        cb,
		http:      &http.Client{Timeout: cfg.Timeout, Jar: jar},
	}, nil
}

func newJar() (http.CookieJar, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, errors.Wrap(err, "cookiejar.New")
	}
	return jar, nil
}

// ClearCookies forgets the session cookie.
func (c *Client) ClearCookies() {
	jar, err := newJar()
	if err != nil {
		c.log.Warn("ClearCookies", zap.Error(err))
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.http = &http.Client{Timeout: c.http.Timeout, Jar: jar}
}

// HasSession reports whether the jar holds any cookie for the backend.
func (c *Client) HasSession() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.http.Jar.Cookies(c.base)) > 0
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, out)
}

// Do sends one request. A url.Values body is form-encoded, anything else
// non-nil is sent as JSON. The response is unwrapped from its envelope
// (see decode) into out, which may be nil.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return errors.Wrap(err, "rate limiter")
	}

	var (
		status int
		data   []byte
	)
	start := time.Now()
	err = c.cb.Call(func() error {
		var callErr error
		status, data, callErr = c.roundTrip(req)
		if callErr != nil {
			return callErr
		}
		if status >= http.StatusInternalServerError {
			return errors.Errorf("status %d", status)
		}
		return nil
	})
	fields := []zap.Field{
		zap.String("method", method),
		zap.String("path", req.URL.Path),
		zap.Int("status", status),
		zap.Duration("latency", time.Since(start)),
		zap.String("request_id", req.Header.Get(echo.HeaderXRequestID)),
	}
	switch {
	case errors.Is(err, circuit_breaker.ErrOpenCB):
		c.log.Warn("request rejected", append(fields, zap.Error(err))...)
		return errors.Wrap(errs.ErrBreakerOpen, method+" "+path)
	case status == 0 && err != nil:
		c.log.Warn("request failed", append(fields, zap.Error(err))...)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return errors.Wrap(ctxErr, method+" "+path)
		}
		return errors.Wrapf(errs.ErrTransport, "%s %s: %v", method, path, err)
	}
	c.log.Debug("request", fields...)

	return decode(status, data, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	u := *c.base
	u.Path = c.base.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var (
		reader      io.Reader = http.NoBody
		contentType string
	)
	switch b := body.(type) {
	case nil:
	case url.Values:
		reader = strings.NewReader(b.Encode())
		contentType = echo.MIMEApplicationForm
	default:
		buf := bytes.NewBuffer(nil)
		if err := json.NewEncoder(buf).Encode(b); err != nil {
			return nil, errors.Wrap(err, "encode body")
		}
		reader = buf
		contentType = echo.MIMEApplicationJSONCharsetUTF8
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, errors.Wrap(err, "http.NewRequestWithContext")
	}
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderXRequestID, uuid.NewString())
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return req, nil
}

func (c *Client) roundTrip(req *http.Request) (int, []byte, error) {
	c.mu.RLock()
	hc := c.http
	c.mu.RUnlock()

	resp, err := hc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, errors.Wrap(err, "read body")
	}
	return resp.StatusCode, data, nil
}
