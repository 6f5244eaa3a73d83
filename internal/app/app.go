package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strings"

	"github.com/artpar/reqpane/internal/core"
)

// Hook names.
const (
	HookPreRequest   = "pre_request"
	HookPostResponse = "post_response"
)

// Requester is the interface for protocol adapters.
type Requester interface {
	Send(ctx context.Context, req *core.Request) (*core.Response, error)
	Protocol() string
}

// HookHandler is a function that handles a hook event. Pre-request handlers
// receive and return a *core.Request, post-response handlers a *core.Response.
type HookHandler func(ctx context.Context, data any) (any, error)

// App is the main application container with dependency injection.
type App struct {
	protocols map[string]Requester
	hooks     map[string][]HookHandler
	logger    *slog.Logger
}

// Option is a function that configures the App.
type Option func(*App)

// New creates a new App with the given options.
func New(opts ...Option) *App {
	app := &App{
		protocols: make(map[string]Requester),
		hooks:     make(map[string][]HookHandler),
		logger:    slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// WithProtocol registers a protocol adapter.
func WithProtocol(name string, requester Requester) Option {
	return func(a *App) {
		a.protocols[name] = requester
	}
}

// WithLogger sets the logger used for hook tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// GetProtocol returns the requester for the given protocol.
func (a *App) GetProtocol(name string) (Requester, bool) {
	r, ok := a.protocols[name]
	return r, ok
}

// ListProtocols returns all registered protocol names, sorted.
func (a *App) ListProtocols() []string {
	protocols := make([]string, 0, len(a.protocols))
	for name := range a.protocols {
		protocols = append(protocols, name)
	}
	sort.Strings(protocols)
	return protocols
}

// ProtocolFor maps an endpoint to a protocol name by URL scheme. Endpoints
// without a scheme, and https, resolve to "http".
func ProtocolFor(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" {
		return "http"
	}
	switch scheme := strings.ToLower(u.Scheme); scheme {
	case "http", "https":
		return "http"
	default:
		return scheme
	}
}

// Send runs the pre-request hooks, sends the request using the protocol
// adapter for its scheme and runs the post-response hooks.
func (a *App) Send(ctx context.Context, req *core.Request) (*core.Response, error) {
	protocol := ProtocolFor(req.Endpoint())
	requester, ok := a.GetProtocol(protocol)
	if !ok {
		return nil, fmt.Errorf("protocol not registered: %s (have %s)", protocol, strings.Join(a.ListProtocols(), ", "))
	}

	data, err := a.ExecuteHooks(ctx, HookPreRequest, req)
	if err != nil {
		return nil, fmt.Errorf("%s hook: %w", HookPreRequest, err)
	}
	req, ok = data.(*core.Request)
	if !ok || req == nil {
		return nil, fmt.Errorf("%s hook returned %T, want *core.Request", HookPreRequest, data)
	}
	a.logger.Debug("pre_request", "method", req.Method().String(), "url", req.Endpoint(), "body_bytes", req.Body().Size())

	resp, err := requester.Send(ctx, req)
	if err != nil {
		return nil, err
	}

	data, err = a.ExecuteHooks(ctx, HookPostResponse, resp)
	if err != nil {
		return nil, fmt.Errorf("%s hook: %w", HookPostResponse, err)
	}
	resp, ok = data.(*core.Response)
	if !ok || resp == nil {
		return nil, fmt.Errorf("%s hook returned %T, want *core.Response", HookPostResponse, data)
	}
	a.logger.Debug("post_response", "status", resp.Status().Code(), "total", resp.Timing().Total)

	return resp, nil
}

// RegisterHook registers a hook handler for the given hook name.
func (a *App) RegisterHook(hook string, handler HookHandler) {
	a.hooks[hook] = append(a.hooks[hook], handler)
}

// ExecuteHooks executes all handlers for the given hook in order.
func (a *App) ExecuteHooks(ctx context.Context, hook string, data any) (any, error) {
	handlers := a.hooks[hook]
	result := data

	for _, handler := range handlers {
		var err error
		result, err = handler(ctx, result)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// DefaultHeader returns a pre-request hook that sets name to value unless the
// request already carries it.
func DefaultHeader(name, value string) HookHandler {
	return func(_ context.Context, data any) (any, error) {
		req, ok := data.(*core.Request)
		if !ok {
			return nil, fmt.Errorf("default header %s: got %T, want *core.Request", name, data)
		}
		req.Headers().SetIfAbsent(name, value)
		return req, nil
	}
}
