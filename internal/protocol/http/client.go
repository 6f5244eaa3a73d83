package http

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptrace"
	"net/url"
	"sync"
	"time"

	"github.com/artpar/reqpane/internal/core"
	"golang.org/x/net/publicsuffix"
)

// Client sends composer requests over net/http.
type Client struct {
	httpClient *http.Client
	config     Config
}

// Config holds HTTP client configuration.
type Config struct {
	Timeout         time.Duration
	FollowRedirects bool
	Insecure        bool
	Cookies         bool
}

// Option is a function that configures the Client.
type Option func(*Client)

// NewClient creates a new HTTP client with the given options. Cookies set by
// responses are kept in memory for the lifetime of the client.
func NewClient(opts ...Option) *Client {
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	client := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
		},
		config: Config{
			Timeout:         30 * time.Second,
			FollowRedirects: true,
			Cookies:         true,
		},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// WithTimeout sets the request timeout. Zero disables it.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.config.Timeout = timeout
		c.httpClient.Timeout = timeout
	}
}

// WithTransport sets a custom HTTP transport.
func WithTransport(transport http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient.Transport = transport
	}
}

// WithNoRedirects disables automatic redirect following.
func WithNoRedirects() Option {
	return func(c *Client) {
		c.config.FollowRedirects = false
		c.httpClient.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
}

// WithInsecureSkipVerify disables TLS certificate verification.
func WithInsecureSkipVerify() Option {
	return func(c *Client) {
		c.config.Insecure = true
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in flag
		c.httpClient.Transport = transport
	}
}

// WithoutCookies disables the in-memory cookie jar.
func WithoutCookies() Option {
	return func(c *Client) {
		c.config.Cookies = false
		c.httpClient.Jar = nil
	}
}

// Protocol returns the protocol identifier.
func (c *Client) Protocol() string {
	return "http"
}

// Config returns the effective configuration.
func (c *Client) Config() Config {
	return c.config
}

// Send executes an HTTP request and returns the response. A body that fails
// mid-read still yields a response; the failure is attached to it.
func (c *Client) Send(ctx context.Context, req *core.Request) (*core.Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rec := &traceRecorder{start: time.Now()}
	ctx = httptrace.WithClientTrace(ctx, rec.clientTrace())

	httpReq, err := c.toHTTPRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	bodyBytes, readErr := io.ReadAll(httpResp.Body)
	resp := c.fromHTTPResponse(req, httpResp, bodyBytes, rec.timing(time.Now()))
	if readErr != nil {
		resp.WithBodyError(fmt.Errorf("read body: %w", readErr))
	}
	return resp, nil
}

// toHTTPRequest converts a core.Request to an http.Request. Parsed query
// pairs are appended to any query already present in the URL.
func (c *Client) toHTTPRequest(ctx context.Context, req *core.Request) (*http.Request, error) {
	u, err := url.Parse(req.Endpoint())
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}

	if keys := req.QueryKeys(); len(keys) > 0 {
		query := req.Query()
		values := u.Query()
		for _, key := range keys {
			values.Add(key, query[key])
		}
		u.RawQuery = values.Encode()
	}

	var bodyReader io.Reader
	if !req.Body().IsEmpty() {
		bodyReader = req.Body().Reader()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method().String(), u.String(), bodyReader)
	if err != nil {
		return nil, err
	}

	for _, key := range req.Headers().Keys() {
		for _, value := range req.Headers().GetAll(key) {
			httpReq.Header.Add(key, value)
		}
	}

	return httpReq, nil
}

// fromHTTPResponse converts an http.Response to a core.Response.
func (c *Client) fromHTTPResponse(req *core.Request, httpResp *http.Response, bodyBytes []byte, timing core.TimingInfo) *core.Response {
	status := core.NewStatus(httpResp.StatusCode, httpResp.Status)

	headers := core.NewHeaders()
	for key, values := range httpResp.Header {
		for _, value := range values {
			headers.Add(key, value)
		}
	}

	return core.NewResponse(req.ID(), status).
		WithHeaders(headers).
		WithBody(bodyBytes).
		WithTiming(timing)
}

// traceRecorder collects connection phase durations. Trace hooks may fire
// from dialer goroutines.
type traceRecorder struct {
	mu        sync.Mutex
	start     time.Time
	dnsStart  time.Time
	connStart time.Time
	tlsStart  time.Time
	info      core.TimingInfo
}

func (r *traceRecorder) clientTrace() *httptrace.ClientTrace {
	return &httptrace.ClientTrace{
		DNSStart: func(httptrace.DNSStartInfo) {
			r.mu.Lock()
			r.dnsStart = time.Now()
			r.mu.Unlock()
		},
		DNSDone: func(httptrace.DNSDoneInfo) {
			r.mu.Lock()
			r.info.DNSLookup = time.Since(r.dnsStart)
			r.mu.Unlock()
		},
		ConnectStart: func(string, string) {
			r.mu.Lock()
			r.connStart = time.Now()
			r.mu.Unlock()
		},
		ConnectDone: func(string, string, error) {
			r.mu.Lock()
			r.info.TCPConnection = time.Since(r.connStart)
			r.mu.Unlock()
		},
		TLSHandshakeStart: func() {
			r.mu.Lock()
			r.tlsStart = time.Now()
			r.mu.Unlock()
		},
		TLSHandshakeDone: func(tls.ConnectionState, error) {
			r.mu.Lock()
			r.info.TLSHandshake = time.Since(r.tlsStart)
			r.mu.Unlock()
		},
		GotFirstResponseByte: func() {
			r.mu.Lock()
			r.info.TimeToFirstByte = time.Since(r.start)
			r.mu.Unlock()
		},
	}
}

func (r *traceRecorder) timing(end time.Time) core.TimingInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	info := r.info
	info.StartTime = r.start
	info.EndTime = end
	info.Total = end.Sub(r.start)
	return info
}
