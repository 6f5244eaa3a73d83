// Package session routes key input through the focus state machine into the
// request buffers and dispatches the assembled request.
package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/artpar/reqpane/internal/core"
	"github.com/artpar/reqpane/internal/input"
	"github.com/artpar/reqpane/internal/tui/vim"
)

// Sender performs a request synchronously.
type Sender interface {
	Send(ctx context.Context, req *core.Request) (*core.Response, error)
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(ctx context.Context, req *core.Request) (*core.Response, error)

// Send calls f.
func (f SenderFunc) Send(ctx context.Context, req *core.Request) (*core.Response, error) {
	return f(ctx, req)
}

var errNoResponse = errors.New("sender returned no response")

// Session owns all composer state: request and response buffers, focus and
// the key map.
type Session struct {
	request  *core.RequestModel
	response *core.ResponseModel
	modes    *vim.ModeManager
	keys     *vim.KeyMap
	sender   Sender
	logger   *slog.Logger
	lastErr  error
}

// Option is a function that configures the Session.
type Option func(*Session)

// WithKeyMap replaces the default key bindings.
func WithKeyMap(km *vim.KeyMap) Option {
	return func(s *Session) {
		s.keys = km
	}
}

// WithLogger sets the logger used for dispatch outcomes.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRequest preloads the method selector and the URL buffer. The URL cursor
// ends up after the last rune. Unknown methods leave GET selected.
func WithRequest(method core.Method, url string) Option {
	return func(s *Session) {
		s.request.Method.Select(method)
		for _, r := range url {
			s.request.URL.Insert(r)
		}
	}
}

// New creates a session focused on the URL pane in normal mode.
func New(sender Sender, opts ...Option) *Session {
	s := &Session{
		request:  core.NewRequestModel(),
		response: core.NewResponseModel(),
		modes:    vim.NewModeManager(),
		keys:     vim.DefaultKeyMap(),
		sender:   sender,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// KeyMap returns the active key bindings.
func (s *Session) KeyMap() *vim.KeyMap {
	return s.keys
}

// LastError returns the error of the most recent failed dispatch, or nil if
// the most recent dispatch succeeded.
func (s *Session) LastError() error {
	return s.lastErr
}

// HandleKey applies one key and reports whether the session should keep
// running.
func (s *Session) HandleKey(ctx context.Context, k input.Key) bool {
	if s.modes.IsEditing() {
		s.handleEditKey(ctx, k)
		return true
	}
	return s.handleNormalKey(ctx, k)
}

func (s *Session) handleNormalKey(ctx context.Context, k input.Key) bool {
	kb, ok := s.keys.FindBinding(vim.ModeNormal, k)
	if !ok {
		return true
	}

	action := kb.Action()
	if v, ok := action.JumpView(); ok {
		s.modes.JumpTo(v)
		return true
	}

	switch action {
	case vim.ActionNextView:
		s.modes.NextView()
	case vim.ActionPrevView:
		s.modes.PrevView()
	case vim.ActionEnterEdit:
		s.modes.EnterEdit()
	case vim.ActionDispatch:
		_ = s.Dispatch(ctx)
	case vim.ActionQuit:
		return false
	}
	return true
}

func (s *Session) handleEditKey(ctx context.Context, k input.Key) {
	kb, ok := s.keys.FindBinding(vim.ModeInsert, k)
	if !ok {
		if k.IsPrintable() {
			s.insert(k.Rune)
		}
		return
	}

	switch kb.Action() {
	case vim.ActionConfirm:
		switch s.modes.Edit() {
		case vim.EditURL, vim.EditMethod:
			_ = s.Dispatch(ctx)
		default:
			s.insert('\n')
		}
	case vim.ActionForceDispatch:
		_ = s.Dispatch(ctx)
	case vim.ActionCancel:
		s.modes.ExitEdit()
	case vim.ActionMethodNext:
		if s.modes.Edit() == vim.EditMethod {
			s.request.Method.Next()
		}
	case vim.ActionMethodPrev:
		if s.modes.Edit() == vim.EditMethod {
			s.request.Method.Prev()
		}
	case vim.ActionBackspace:
		if f := s.activeField(); f != nil {
			f.DeleteBeforeCursor()
		}
	}
}

func (s *Session) insert(r rune) {
	if f := s.activeField(); f != nil {
		f.Insert(r)
	}
}

// activeField returns the buffer being edited. The method pane has no text
// buffer.
func (s *Session) activeField() *core.Field {
	switch s.modes.Edit() {
	case vim.EditURL:
		return s.request.URL
	case vim.EditParams:
		return s.request.Params
	case vim.EditHeader:
		return s.request.Header
	case vim.EditBody:
		return s.request.Body
	case vim.EditMethod, vim.EditNone:
		return nil
	default:
		return nil
	}
}

// Dispatch sends the request built from the current buffers. On success the
// response buffers are overwritten; on failure they are left as they were and
// the error is kept for LastError.
func (s *Session) Dispatch(ctx context.Context) error {
	req := s.request.Build()
	start := time.Now()

	resp, err := s.sender.Send(ctx, req)
	if err == nil && resp == nil {
		err = errNoResponse
	}
	if err != nil {
		s.lastErr = err
		s.logger.Warn("dispatch failed",
			"request_id", req.ID(),
			"method", req.Method().String(),
			"url", req.Endpoint(),
			"error", err,
		)
		return err
	}

	s.lastErr = nil
	s.response.Apply(resp)
	s.logger.Info("dispatch",
		"request_id", req.ID(),
		"method", req.Method().String(),
		"url", req.Endpoint(),
		"status", resp.Status().Code(),
		"duration", time.Since(start),
	)
	return nil
}
