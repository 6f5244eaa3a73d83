package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestBaseComponent(t *testing.T) {
	t.Run("creates with title", func(t *testing.T) {
		c := NewBaseComponent("Request URL")
		assert.Equal(t, "Request URL", c.Title())
	})

	t.Run("starts unfocused", func(t *testing.T) {
		c := NewBaseComponent("Test")
		assert.False(t, c.Focused())
	})

	t.Run("can be focused and blurred", func(t *testing.T) {
		c := NewBaseComponent("Test")
		c.Focus()
		assert.True(t, c.Focused())
		c.Blur()
		assert.False(t, c.Focused())
	})

	t.Run("tracks dimensions", func(t *testing.T) {
		c := NewBaseComponent("Test")
		c.SetSize(80, 24)
		assert.Equal(t, 80, c.Width())
		assert.Equal(t, 24, c.Height())

		w, h := c.InnerSize()
		assert.Equal(t, 78, w)
		assert.Equal(t, 21, h)
	})

	t.Run("inner size never negative", func(t *testing.T) {
		c := NewBaseComponent("Test")
		c.SetSize(1, 1)
		w, h := c.InnerSize()
		assert.Equal(t, 0, w)
		assert.Equal(t, 0, h)
	})

	t.Run("view renders title in a box", func(t *testing.T) {
		c := NewBaseComponent("Status")
		c.SetSize(20, 4)
		view := c.View()
		assert.Contains(t, view, "Status")
		assert.Equal(t, 4, lipgloss.Height(view))
		assert.Equal(t, 20, lipgloss.Width(view))
	})
}

func TestComponentList(t *testing.T) {
	newList := func() (*ComponentList, []*BaseComponent) {
		cl := NewComponentList()
		items := []*BaseComponent{NewBaseComponent("a"), NewBaseComponent("b"), NewBaseComponent("c")}
		for _, c := range items {
			cl.Add(c)
		}
		return cl, items
	}

	t.Run("starts without focus", func(t *testing.T) {
		cl, _ := newList()
		assert.Equal(t, 3, cl.Len())
		assert.Equal(t, -1, cl.FocusIndex())
		assert.Nil(t, cl.Focused())
	})

	t.Run("moves focus", func(t *testing.T) {
		cl, items := newList()
		cl.SetFocusIndex(1)
		assert.True(t, items[1].Focused())
		assert.Same(t, items[1], cl.Focused())

		cl.SetFocusIndex(2)
		assert.False(t, items[1].Focused())
		assert.True(t, items[2].Focused())
		assert.Equal(t, 2, cl.FocusIndex())
	})

	t.Run("ignores out of range", func(t *testing.T) {
		cl, items := newList()
		cl.SetFocusIndex(0)
		cl.SetFocusIndex(7)
		cl.SetFocusIndex(-1)
		assert.Equal(t, 0, cl.FocusIndex())
		assert.True(t, items[0].Focused())
		assert.Nil(t, cl.Get(3))
	})
}

func TestRenderPane(t *testing.T) {
	t.Run("has the requested outer size", func(t *testing.T) {
		out := RenderPane("Body", []string{"one", "two"}, 30, 6, PaneFocused)
		assert.Equal(t, 30, lipgloss.Width(out))
		assert.Equal(t, 6, lipgloss.Height(out))
		assert.Contains(t, out, "one")
		assert.Contains(t, out, "two")
	})

	t.Run("drops lines that do not fit", func(t *testing.T) {
		out := RenderPane("Body", []string{"one", "two", "three"}, 30, 4, PaneIdle)
		assert.Contains(t, out, "one")
		assert.NotContains(t, out, "two")
		assert.Equal(t, 4, lipgloss.Height(out))
	})

	t.Run("clips long lines instead of wrapping", func(t *testing.T) {
		out := RenderPane("Body", []string{strings.Repeat("x", 100)}, 12, 4, PaneEditing)
		assert.Equal(t, 4, lipgloss.Height(out))
		assert.Equal(t, 12, lipgloss.Width(out))
	})

	t.Run("empty when too small", func(t *testing.T) {
		assert.Empty(t, RenderPane("Body", nil, 2, 2, PaneIdle))
	})
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"ellipsis", "hello world", 8, "hello..."},
		{"tiny", "hello", 2, "he"},
		{"zero", "hello", 0, ""},
		{"wide runes", "日本語テキスト", 7, "日本..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.in, tt.width))
		})
	}
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab   ", PadRight("ab", 5))
	assert.Equal(t, "abc", PadRight("abcdef", 3))
	assert.Equal(t, "", PadRight("abc", 0))
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name                  string
		total, focus, height  int
		want                  int
	}{
		{"fits", 3, 2, 5, 0},
		{"focus visible at top", 10, 2, 5, 0},
		{"scrolls to focus", 10, 7, 5, 3},
		{"last item", 10, 9, 5, 5},
		{"focus past end clamps", 10, 20, 5, 5},
		{"no height", 10, 3, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Window(tt.total, tt.focus, tt.height))
		})
	}
}
