package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/artpar/reqpane/internal/core"
	"github.com/artpar/reqpane/internal/tui"
)

var (
	statusOK    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	statusWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	statusError = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// StatusPane shows the response status line coloured by class.
type StatusPane struct {
	*tui.BaseComponent
	status *core.Status
}

// NewStatusPane creates an empty status pane.
func NewStatusPane(title string) *StatusPane {
	return &StatusPane{BaseComponent: tui.NewBaseComponent(title)}
}

// SetStatus sets the status to show; nil clears the pane.
func (p *StatusPane) SetStatus(status *core.Status) {
	p.status = status
}

// Text returns the status line, e.g. "200 OK".
func (p *StatusPane) Text() string {
	if p.status == nil {
		return ""
	}
	return p.status.String()
}

func (p *StatusPane) View() string {
	state := tui.PaneIdle
	if p.Focused() {
		state = tui.PaneFocused
	}
	var lines []string
	if p.status != nil {
		lines = []string{StatusStyle(p.status).Render(p.status.String())}
	}
	return tui.RenderPane(p.Title(), lines, p.Width(), p.Height(), state)
}

// StatusStyle picks a colour from the status class.
func StatusStyle(status *core.Status) lipgloss.Style {
	switch {
	case status == nil:
		return lipgloss.NewStyle()
	case status.IsSuccess():
		return statusOK
	case status.IsRedirect():
		return statusWarn
	case status.IsError():
		return statusError
	default:
		return lipgloss.NewStyle()
	}
}
