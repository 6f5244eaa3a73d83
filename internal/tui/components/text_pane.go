package components

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/artpar/reqpane/internal/core"
	"github.com/artpar/reqpane/internal/tui"
)

// TextPane shows a text buffer. While editing, a caret marks the cursor and
// the view scrolls to keep it visible.
type TextPane struct {
	*tui.BaseComponent
	state   core.FieldState
	lines   []string
	editing bool
}

// NewTextPane creates an empty pane.
func NewTextPane(title string) *TextPane {
	return &TextPane{BaseComponent: tui.NewBaseComponent(title)}
}

// SetState replaces the buffer shown by the pane.
func (p *TextPane) SetState(state core.FieldState, editing bool) {
	p.state = state
	p.editing = editing
	p.lines = nil
}

// SetLines shows preformatted lines instead of the raw buffer text. The
// buffer state is kept for Text.
func (p *TextPane) SetLines(text string, lines []string) {
	p.state = core.FieldState{Text: text}
	p.editing = false
	p.lines = lines
}

// Text returns the raw buffer text.
func (p *TextPane) Text() string {
	return p.state.Text
}

// Editing reports whether the caret is shown.
func (p *TextPane) Editing() bool {
	return p.editing
}

func (p *TextPane) View() string {
	state := tui.PaneIdle
	switch {
	case p.editing:
		state = tui.PaneEditing
	case p.Focused():
		state = tui.PaneFocused
	}
	return tui.RenderPane(p.Title(), p.content(), p.Width(), p.Height(), state)
}

func (p *TextPane) content() []string {
	w, h := p.InnerSize()
	if p.lines != nil {
		return p.lines
	}
	if !p.editing {
		return strings.Split(p.state.Text, "\n")
	}
	return caretLines(p.state, w, h)
}

// caretLines splits the buffer into display lines with the caret drawn at the
// cursor. Lines are scrolled vertically and horizontally so the caret cell is
// inside a width by height area.
func caretLines(state core.FieldState, width, height int) []string {
	runes := []rune(state.Text)
	cursor := min(max(state.Cursor, 0), len(runes))

	row := strings.Count(string(runes[:cursor]), "\n")
	lineStart := strings.LastIndex(string(runes[:cursor]), "\n") + 1
	col := runewidth.StringWidth(string(runes[:cursor])[lineStart:])

	lines := strings.Split(state.Text, "\n")
	start := tui.Window(len(lines), row, height)
	end := min(len(lines), start+max(height, 1))

	out := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		if i == row {
			out = append(out, renderCaret(lines[i], col, width))
			continue
		}
		out = append(out, lines[i])
	}
	return out
}

func renderCaret(line string, col, width int) string {
	offset := 0
	if width > 0 && col >= width {
		offset = col - width + 1
	}

	var before, after strings.Builder
	at := " "
	pos := 0
	for _, r := range line {
		rw := runewidth.RuneWidth(r)
		switch {
		case pos < offset:
		case pos < col:
			before.WriteRune(r)
		case pos == col && at == " ":
			at = string(r)
		default:
			after.WriteRune(r)
		}
		pos += rw
	}
	return before.String() + caretStyle.Render(at) + after.String()
}
