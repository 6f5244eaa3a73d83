package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/artpar/reqpane/internal/core"
	"github.com/artpar/reqpane/internal/input"
	"github.com/artpar/reqpane/internal/session"
	"github.com/artpar/reqpane/internal/tui"
	"github.com/artpar/reqpane/internal/tui/components"
	"github.com/artpar/reqpane/internal/tui/vim"
)

const notificationTTL = 2 * time.Second

// clearNotificationMsg clears the notification it was scheduled for.
type clearNotificationMsg struct {
	seq int
}

// ComposerView is the Bubble Tea model for the request composer. It turns
// key messages into session keys and draws the session snapshot.
type ComposerView struct {
	ctx     context.Context
	session *session.Session

	panes          *tui.ComponentList
	url            *components.TextPane
	params         *components.TextPane
	method         *components.MethodPane
	header         *components.TextPane
	body           *components.TextPane
	responseHeader *components.TextPane
	responseBody   *components.TextPane
	status         *components.StatusPane

	formatter      *components.Formatter
	help           help.Model
	writeClipboard func(string) error

	width  int
	height int

	notification string
	notifySeq    int
}

// Option is a function that configures the ComposerView.
type Option func(*ComposerView)

// WithFormatter sets the response body formatter.
func WithFormatter(f *components.Formatter) Option {
	return func(v *ComposerView) {
		v.formatter = f
	}
}

// WithClipboard replaces the clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(v *ComposerView) {
		v.writeClipboard = write
	}
}

// NewComposerView creates a view over s. ctx is passed to dispatches.
func NewComposerView(ctx context.Context, s *session.Session, opts ...Option) *ComposerView {
	v := &ComposerView{
		ctx:            ctx,
		session:        s,
		panes:          tui.NewComponentList(),
		url:            components.NewTextPane("Request URL"),
		params:         components.NewTextPane("URL Params"),
		method:         components.NewMethodPane("Request Method"),
		header:         components.NewTextPane("Request Header"),
		body:           components.NewTextPane("Request Body"),
		responseHeader: components.NewTextPane("Response Header"),
		responseBody:   components.NewTextPane("Response Body"),
		status:         components.NewStatusPane("Response Status"),
		formatter:      components.NewFormatter(true, "monokai"),
		help:           help.New(),
		writeClipboard: clipboard.WriteAll,
	}

	byView := map[vim.View]tui.Component{
		vim.ViewURL:            v.url,
		vim.ViewParams:         v.params,
		vim.ViewMethod:         v.method,
		vim.ViewHeader:         v.header,
		vim.ViewBody:           v.body,
		vim.ViewResponseHeader: v.responseHeader,
		vim.ViewResponseBody:   v.responseBody,
	}
	// Added in cycle order so a view indexes its pane.
	for _, view := range vim.Views() {
		v.panes.Add(byView[view])
	}

	for _, opt := range opts {
		opt(v)
	}
	v.sync()
	return v
}

// Init initializes the view.
func (v *ComposerView) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (v *ComposerView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetSize(msg.Width, msg.Height)
		return v, nil

	case clearNotificationMsg:
		if msg.seq == v.notifySeq {
			v.notification = ""
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}
	return v, nil
}

func (v *ComposerView) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return v, tea.Quit
	}

	keys := input.FromTea(msg)
	if len(keys) == 0 {
		return v, nil
	}

	// Pasted text only lands in a buffer; in normal mode its runes would
	// fire bindings.
	if msg.Paste && v.session.Snapshot().Mode == vim.ModeNormal {
		return v, nil
	}

	for _, k := range keys {
		snap := v.session.Snapshot()
		if snap.Mode == vim.ModeNormal && k == input.Ctrl('y') {
			if _, bound := v.session.KeyMap().FindBinding(vim.ModeNormal, k); !bound {
				return v, v.copyPane(snap)
			}
		}

		if !v.session.HandleKey(v.ctx, k) {
			v.sync()
			return v, tea.Quit
		}
	}
	v.sync()
	return v, nil
}

func (v *ComposerView) copyPane(snap session.Snapshot) tea.Cmd {
	content := snap.Text(snap.View)
	if err := v.writeClipboard(content); err != nil {
		return v.notify("✗ Copy failed")
	}
	size := len(content)
	if size > 1024 {
		return v.notify(fmt.Sprintf("✓ Copied %.1fKB", float64(size)/1024))
	}
	return v.notify(fmt.Sprintf("✓ Copied %dB", size))
}

func (v *ComposerView) notify(text string) tea.Cmd {
	v.notifySeq++
	v.notification = text
	seq := v.notifySeq
	return tea.Tick(notificationTTL, func(time.Time) tea.Msg {
		return clearNotificationMsg{seq: seq}
	})
}

// sync copies the session snapshot into the panes.
func (v *ComposerView) sync() {
	snap := v.session.Snapshot()

	v.url.SetState(snap.URL, snap.IsEditing(vim.ViewURL))
	v.params.SetState(snap.Params, snap.IsEditing(vim.ViewParams))
	v.method.SetSelection(snap.Methods, snap.MethodIndex, snap.IsEditing(vim.ViewMethod))
	v.header.SetState(snap.Header, snap.IsEditing(vim.ViewHeader))
	v.body.SetState(snap.Body, snap.IsEditing(vim.ViewBody))
	v.status.SetStatus(snap.ResponseStatus)
	v.responseHeader.SetState(core.FieldState{Text: snap.ResponseHeader}, false)

	v.responseBody.SetLines(snap.ResponseBody, v.formatter.Lines(snap.ResponseContentType, snap.ResponseBody))

	v.panes.SetFocusIndex(int(snap.View))
}

// SetSize lays the panes out for a width by height terminal. Two rows are
// kept for the help line and status bar.
func (v *ComposerView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.help.Width = width

	body := max(height-2, 0)
	top := body * 13 / 100
	if top < 3 {
		top = min(3, body)
	}
	bottom := body - top

	left := width * 35 / 100
	right := width - left

	v.url.SetSize(width, top)

	leftHeights := split(bottom, 25, 15, 30, 30)
	v.params.SetSize(left, leftHeights[0])
	v.method.SetSize(left, leftHeights[1])
	v.header.SetSize(left, leftHeights[2])
	v.body.SetSize(left, leftHeights[3])

	rightHeights := split(bottom, 13, 40, 47)
	v.status.SetSize(right, rightHeights[0])
	v.responseHeader.SetSize(right, rightHeights[1])
	v.responseBody.SetSize(right, rightHeights[2])
}

// split divides total by percentages, giving rounding leftovers to the last
// part so the parts always sum to total.
func split(total int, percents ...int) []int {
	parts := make([]int, len(percents))
	used := 0
	for i, p := range percents {
		parts[i] = total * p / 100
		used += parts[i]
	}
	parts[len(parts)-1] += total - used
	return parts
}

// View renders the view.
func (v *ComposerView) View() string {
	if v.width == 0 || v.height == 0 {
		return ""
	}

	left := lipgloss.JoinVertical(lipgloss.Left,
		v.params.View(), v.method.View(), v.header.View(), v.body.View())
	right := lipgloss.JoinVertical(lipgloss.Left,
		v.status.View(), v.responseHeader.View(), v.responseBody.View())
	panes := lipgloss.JoinVertical(lipgloss.Left,
		v.url.View(), lipgloss.JoinHorizontal(lipgloss.Top, left, right))

	return lipgloss.JoinVertical(lipgloss.Left, panes, v.renderHelpBar(), v.renderStatusBar())
}

// renderHelpBar lists the bindings of the current mode.
func (v *ComposerView) renderHelpBar() string {
	mode := v.session.Snapshot().Mode
	bindings := v.session.KeyMap().GetBindings(mode)

	keys := make([]key.Binding, 0, len(bindings)+1)
	for _, kb := range bindings {
		name := kb.Key().String()
		keys = append(keys, key.NewBinding(key.WithKeys(name), key.WithHelp(name, kb.Description())))
	}
	if mode == vim.ModeNormal {
		keys = append(keys, key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy")))
	}
	return v.help.ShortHelpView(keys)
}

// renderStatusBar renders the bottom bar: mode, focused pane, last error and
// the current notification.
func (v *ComposerView) renderStatusBar() string {
	snap := v.session.Snapshot()
	var items []string

	modeStyle := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1)
	if snap.Mode == vim.ModeInsert {
		modeStyle = modeStyle.
			Background(lipgloss.Color("214")).
			Foreground(lipgloss.Color("0"))
	} else {
		modeStyle = modeStyle.
			Background(lipgloss.Color("34")).
			Foreground(lipgloss.Color("255"))
	}
	items = append(items, modeStyle.Render(snap.Mode.String()))

	paneStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 1)
	items = append(items, paneStyle.Render(v.panes.Focused().Title()))

	if snap.LastError != nil {
		errStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("160")).
			Padding(0, 1)
		items = append(items, errStyle.Render("✗ "+snap.LastError.Error()))
	}

	if v.notification != "" {
		notifyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("34")).
			Bold(true).
			Padding(0, 1)
		if strings.HasPrefix(v.notification, "✗") {
			notifyStyle = notifyStyle.Foreground(lipgloss.Color("160"))
		}
		items = append(items, notifyStyle.Render(v.notification))
	}

	barStyle := lipgloss.NewStyle().
		Width(v.width).
		MaxHeight(1).
		Background(lipgloss.Color("236"))

	return barStyle.Render(strings.Join(items, " "))
}

// Notification returns the transient status bar message.
func (v *ComposerView) Notification() string {
	return v.notification
}

// Session returns the session driven by the view.
func (v *ComposerView) Session() *session.Session {
	return v.session
}
