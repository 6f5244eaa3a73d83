package session

import (
	"github.com/artpar/reqpane/internal/core"
	"github.com/artpar/reqpane/internal/tui/vim"
)

// Snapshot is a read-only copy of the session state for rendering.
type Snapshot struct {
	URL    core.FieldState
	Params core.FieldState
	Header core.FieldState
	Body   core.FieldState

	Methods     []core.Method
	MethodIndex int

	Status         string
	ResponseHeader string
	ResponseBody   string

	// ResponseStatus is nil until a dispatch succeeds.
	ResponseStatus      *core.Status
	ResponseContentType string

	View      vim.View
	Edit      vim.Edit
	Mode      vim.Mode
	LastError error
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		URL:                 s.request.URL.State(),
		Params:              s.request.Params.State(),
		Header:              s.request.Header.State(),
		Body:                s.request.Body.State(),
		Methods:             core.Methods(),
		MethodIndex:         s.request.Method.Index(),
		Status:              s.response.Status.Text(),
		ResponseHeader:      s.response.Header.Text(),
		ResponseBody:        s.response.Body.Text(),
		ResponseStatus:      s.response.LastStatus,
		ResponseContentType: s.response.ContentType,
		View:                s.modes.View(),
		Edit:                s.modes.Edit(),
		Mode:                s.modes.Mode(),
		LastError:           s.lastErr,
	}
}

// Method returns the selected method.
func (snap Snapshot) Method() core.Method {
	return snap.Methods[snap.MethodIndex]
}

// Text returns the text shown in pane v.
func (snap Snapshot) Text(v vim.View) string {
	switch v {
	case vim.ViewURL:
		return snap.URL.Text
	case vim.ViewParams:
		return snap.Params.Text
	case vim.ViewMethod:
		return snap.Method().String()
	case vim.ViewHeader:
		return snap.Header.Text
	case vim.ViewBody:
		return snap.Body.Text
	case vim.ViewResponseHeader:
		return snap.ResponseHeader
	case vim.ViewResponseBody:
		return snap.ResponseBody
	default:
		return ""
	}
}

// IsEditing reports whether pane v is being edited.
func (snap Snapshot) IsEditing(v vim.View) bool {
	return snap.Edit != vim.EditNone && v.EditTarget() == snap.Edit
}
