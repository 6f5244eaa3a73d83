package harness

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/artpar/reqpane/internal/app"
	httpclient "github.com/artpar/reqpane/internal/protocol/http"
	"github.com/artpar/reqpane/internal/session"
	"github.com/artpar/reqpane/internal/tui/components"
	"github.com/artpar/reqpane/internal/tui/views"
)

// TUIRunner drives the composer model without a terminal.
type TUIRunner struct {
	harness *E2EHarness
}

// TUISession is one composer driven by synthetic key messages.
type TUISession struct {
	runner    *TUIRunner
	model     *views.ComposerView
	t         *testing.T
	quit      bool
	clipboard []string
}

// Start opens a 120x40 composer backed by a real HTTP client.
func (r *TUIRunner) Start(t *testing.T) *TUISession {
	return r.StartWithSize(t, 120, 40)
}

// StartWithSize opens a composer with custom dimensions.
func (r *TUIRunner) StartWithSize(t *testing.T, width, height int) *TUISession {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), r.harness.timeout)
	t.Cleanup(cancel)

	a := app.New(app.WithProtocol("http", httpclient.NewClient(httpclient.WithTimeout(r.harness.timeout))))
	s := &TUISession{runner: r, t: t}
	s.model = views.NewComposerView(ctx, session.New(a),
		views.WithFormatter(components.NewFormatter(false, "")),
		views.WithClipboard(func(text string) error {
			s.clipboard = append(s.clipboard, text)
			return nil
		}),
	)
	s.model.SetSize(width, height)
	return s
}

// SendKey sends one named key press.
func (s *TUISession) SendKey(key string) *TUISession {
	s.update(parseKeyMsg(key))
	return s
}

// SendKeys sends multiple key presses.
func (s *TUISession) SendKeys(keys ...string) *TUISession {
	for _, key := range keys {
		s.SendKey(key)
	}
	return s
}

// Type sends text one rune at a time.
func (s *TUISession) Type(text string) *TUISession {
	for _, r := range text {
		s.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return s
}

// Paste delivers text as a single bracketed-paste message.
func (s *TUISession) Paste(text string) *TUISession {
	s.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text), Paste: true})
	return s
}

func (s *TUISession) update(msg tea.Msg) {
	s.t.Helper()
	if s.quit {
		s.t.Fatalf("key sent after quit")
	}
	updated, cmd := s.model.Update(msg)
	s.model = updated.(*views.ComposerView)
	s.executeCmd(cmd)
}

// executeCmd runs cmd and feeds its message back into the model. Delayed
// messages such as the notification timer are not awaited.
func (s *TUISession) executeCmd(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	select {
	case msg := <-done:
		if _, ok := msg.(tea.QuitMsg); ok {
			s.quit = true
			return
		}
		if msg != nil {
			updated, next := s.model.Update(msg)
			s.model = updated.(*views.ComposerView)
			s.executeCmd(next)
		}
	case <-time.After(50 * time.Millisecond):
	}
}

// Output returns the current frame.
func (s *TUISession) Output() string {
	return s.model.View()
}

// Snapshot returns the session state behind the frame.
func (s *TUISession) Snapshot() session.Snapshot {
	return s.model.Session().Snapshot()
}

// Quit reports whether the model asked the program to exit.
func (s *TUISession) Quit() bool {
	return s.quit
}

// Clipboard returns every string copied so far.
func (s *TUISession) Clipboard() []string {
	return s.clipboard
}

// Notification returns the status bar notification.
func (s *TUISession) Notification() string {
	return s.model.Notification()
}

// parseKeyMsg converts a key name to tea.KeyMsg.
func parseKeyMsg(key string) tea.KeyMsg {
	switch strings.ToLower(key) {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "esc", "escape":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+y":
		return tea.KeyMsg{Type: tea.KeyCtrlY}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "f1":
		return tea.KeyMsg{Type: tea.KeyF1}
	case "f2":
		return tea.KeyMsg{Type: tea.KeyF2}
	case "f3":
		return tea.KeyMsg{Type: tea.KeyF3}
	case "f4":
		return tea.KeyMsg{Type: tea.KeyF4}
	case "f5":
		return tea.KeyMsg{Type: tea.KeyF5}
	case "f6":
		return tea.KeyMsg{Type: tea.KeyF6}
	case "f7":
		return tea.KeyMsg{Type: tea.KeyF7}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}
