package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Component is the interface for all panes drawn by the composer.
type Component interface {
	// View renders the component.
	View() string

	// Title returns the component title.
	Title() string

	// Focused returns true if the component is focused.
	Focused() bool

	// Focus sets the component as focused.
	Focus()

	// Blur removes focus from the component.
	Blur()

	// SetSize sets the component dimensions, border included.
	SetSize(width, height int)

	// Width returns the component width.
	Width() int

	// Height returns the component height.
	Height() int
}

// PaneState selects the border and text colour of a pane.
type PaneState int

const (
	PaneIdle PaneState = iota
	PaneFocused
	PaneEditing
)

// BaseComponent provides common functionality for components.
type BaseComponent struct {
	title   string
	focused bool
	width   int
	height  int
}

// NewBaseComponent creates a new base component.
func NewBaseComponent(title string) *BaseComponent {
	return &BaseComponent{
		title: title,
	}
}

// View renders the title in an empty bordered box.
func (c *BaseComponent) View() string {
	state := PaneIdle
	if c.focused {
		state = PaneFocused
	}
	return RenderPane(c.title, nil, c.width, c.height, state)
}

// Title returns the component title.
func (c *BaseComponent) Title() string {
	return c.title
}

// Focused returns true if focused.
func (c *BaseComponent) Focused() bool {
	return c.focused
}

// Focus sets the component as focused.
func (c *BaseComponent) Focus() {
	c.focused = true
}

// Blur removes focus.
func (c *BaseComponent) Blur() {
	c.focused = false
}

// SetSize sets dimensions.
func (c *BaseComponent) SetSize(width, height int) {
	c.width = width
	c.height = height
}

// Width returns the width.
func (c *BaseComponent) Width() int {
	return c.width
}

// Height returns the height.
func (c *BaseComponent) Height() int {
	return c.height
}

// InnerSize returns the content area inside the border and title line.
func (c *BaseComponent) InnerSize() (int, int) {
	return max(c.width-2, 0), max(c.height-3, 0)
}

// ComponentList holds panes by index and tracks which one has focus.
type ComponentList struct {
	components []Component
	focusIndex int
}

// NewComponentList creates a new component list.
func NewComponentList() *ComponentList {
	return &ComponentList{
		components: make([]Component, 0),
		focusIndex: -1,
	}
}

// Add adds a component to the list.
func (cl *ComponentList) Add(c Component) {
	cl.components = append(cl.components, c)
}

// Len returns the number of components.
func (cl *ComponentList) Len() int {
	return len(cl.components)
}

// Get returns a component by index.
func (cl *ComponentList) Get(index int) Component {
	if index < 0 || index >= len(cl.components) {
		return nil
	}
	return cl.components[index]
}

// FocusIndex returns the current focus index.
func (cl *ComponentList) FocusIndex() int {
	return cl.focusIndex
}

// SetFocusIndex moves focus to index. Out of range indexes are ignored.
func (cl *ComponentList) SetFocusIndex(index int) {
	if index < 0 || index >= len(cl.components) {
		return
	}
	if cl.focusIndex >= 0 && cl.focusIndex < len(cl.components) {
		cl.components[cl.focusIndex].Blur()
	}
	cl.focusIndex = index
	cl.components[index].Focus()
}

// Focused returns the currently focused component.
func (cl *ComponentList) Focused() Component {
	if cl.focusIndex < 0 || cl.focusIndex >= len(cl.components) {
		return nil
	}
	return cl.components[cl.focusIndex]
}

// Styles holds the pane colours.
type Styles struct {
	Idle    lipgloss.Style
	Focused lipgloss.Style
	Editing lipgloss.Style
	Title   lipgloss.Style
	Caret   lipgloss.Style
}

// DefaultStyles returns default styling. Focused panes are yellow and the
// pane being edited is green.
func DefaultStyles() Styles {
	border := lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder())
	return Styles{
		Idle:    border.BorderForeground(lipgloss.Color("240")),
		Focused: border.BorderForeground(lipgloss.Color("11")).Foreground(lipgloss.Color("11")),
		Editing: border.BorderForeground(lipgloss.Color("10")).Foreground(lipgloss.Color("10")),
		Title:   lipgloss.NewStyle().Bold(true),
		Caret:   lipgloss.NewStyle().Reverse(true),
	}
}

var styles = DefaultStyles()

// Style returns the pane style for state.
func (s Styles) Style(state PaneState) lipgloss.Style {
	switch state {
	case PaneFocused:
		return s.Focused
	case PaneEditing:
		return s.Editing
	default:
		return s.Idle
	}
}

// RenderPane draws a bordered box of the given outer size with the title on
// the first inner line and lines below it. Lines are clipped to fit, escape
// sequences included.
func RenderPane(title string, lines []string, width, height int, state PaneState) string {
	innerW := max(width-2, 0)
	innerH := max(height-2, 0)
	if innerW == 0 || innerH == 0 {
		return ""
	}

	clip := lipgloss.NewStyle().MaxWidth(innerW)
	rows := make([]string, 0, innerH)
	rows = append(rows, styles.Title.Render(Truncate(title, innerW)))
	for _, line := range lines {
		if len(rows) == innerH {
			break
		}
		rows = append(rows, clip.Render(line))
	}

	return styles.Style(state).
		Width(innerW).
		Height(innerH).
		Render(strings.Join(rows, "\n"))
}

// Truncate shortens s to width display cells, marking the cut with "...".
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}

// PadRight pads or truncates s to exactly width display cells.
func PadRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.FillRight(runewidth.Truncate(s, width, ""), width)
}

// Window returns the first visible index of a list of total items so that
// item focus stays within height rows.
func Window(total, focus, height int) int {
	if height <= 0 || total <= height {
		return 0
	}
	start := 0
	if focus >= height {
		start = focus - height + 1
	}
	return min(start, total-height)
}
