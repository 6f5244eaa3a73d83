package components

import (
	"github.com/artpar/reqpane/internal/core"
	"github.com/artpar/reqpane/internal/tui"
)

const selectedMarker = ">> "

var (
	caretStyle    = tui.DefaultStyles().Caret
	selectedStyle = tui.DefaultStyles().Title
)

// MethodPane lists the request methods with the selected one marked.
type MethodPane struct {
	*tui.BaseComponent
	methods  []core.Method
	selected int
	editing  bool
}

// NewMethodPane creates a pane listing core.Methods with GET selected.
func NewMethodPane(title string) *MethodPane {
	return &MethodPane{
		BaseComponent: tui.NewBaseComponent(title),
		methods:       core.Methods(),
	}
}

// SetSelection updates the list and selected index.
func (p *MethodPane) SetSelection(methods []core.Method, selected int, editing bool) {
	p.methods = methods
	p.selected = selected
	p.editing = editing
}

// Selected returns the selected method, or "" when the list is empty.
func (p *MethodPane) Selected() core.Method {
	if p.selected < 0 || p.selected >= len(p.methods) {
		return ""
	}
	return p.methods[p.selected]
}

// Text returns the selected method name.
func (p *MethodPane) Text() string {
	return p.Selected().String()
}

func (p *MethodPane) View() string {
	state := tui.PaneIdle
	switch {
	case p.editing:
		state = tui.PaneEditing
	case p.Focused():
		state = tui.PaneFocused
	}

	_, h := p.InnerSize()
	start := tui.Window(len(p.methods), p.selected, h)
	lines := make([]string, 0, len(p.methods)-start)
	for i := start; i < len(p.methods); i++ {
		name := p.methods[i].String()
		if i == p.selected {
			lines = append(lines, selectedStyle.Render(selectedMarker+name))
			continue
		}
		lines = append(lines, "   "+name)
	}
	return tui.RenderPane(p.Title(), lines, p.Width(), p.Height(), state)
}
