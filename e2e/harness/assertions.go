package harness

import (
	"strings"
	"testing"
)

// Assertions provides E2E-specific assertions.
type Assertions struct {
	t *testing.T
}

// NewAssertions creates an assertions helper.
func NewAssertions(t *testing.T) *Assertions {
	return &Assertions{t: t}
}

// OutputContains asserts the output contains all given strings.
func (a *Assertions) OutputContains(output string, expected ...string) {
	a.t.Helper()
	for _, exp := range expected {
		if !strings.Contains(output, exp) {
			a.t.Errorf("expected output to contain %q, got:\n%s", exp, truncate(output, 500))
		}
	}
}

// OutputNotContains asserts the output does not contain any of the given strings.
func (a *Assertions) OutputNotContains(output string, unexpected ...string) {
	a.t.Helper()
	for _, unexp := range unexpected {
		if strings.Contains(output, unexp) {
			a.t.Errorf("expected output NOT to contain %q, got:\n%s", unexp, truncate(output, 500))
		}
	}
}

// PanesVisible asserts every pane title is drawn.
func (a *Assertions) PanesVisible(output string, titles ...string) {
	a.t.Helper()
	for _, title := range titles {
		if !strings.Contains(output, title) {
			a.t.Errorf("expected pane %q to be visible in output:\n%s", title, truncate(output, 500))
		}
	}
}

// ModeShown asserts the status bar shows mode.
func (a *Assertions) ModeShown(output, mode string) {
	a.t.Helper()
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	last := lines[len(lines)-1]
	if !strings.Contains(last, mode) {
		a.t.Errorf("expected status bar to show %q, got %q", mode, last)
	}
}

// NoDispatchError asserts the status bar carries no dispatch error.
func (a *Assertions) NoDispatchError(output string) {
	a.t.Helper()
	if strings.Contains(output, "✗") {
		a.t.Errorf("unexpected error marker in output:\n%s", truncate(output, 500))
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "... (truncated)"
}
