package vim

// Mode is the editing mode shown in the status bar. It is derived from the
// edit axis of the ModeManager.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	default:
		return "UNKNOWN"
	}
}

// View identifies the pane that has navigation focus.
type View int

const (
	ViewURL View = iota
	ViewParams
	ViewMethod
	ViewHeader
	ViewBody
	ViewResponseHeader
	ViewResponseBody
)

const viewCount = 7

// Views returns every pane in cycle order.
func Views() []View {
	views := make([]View, viewCount)
	for i := range views {
		views[i] = View(i)
	}
	return views
}

func (v View) String() string {
	switch v {
	case ViewURL:
		return "URL"
	case ViewParams:
		return "Params"
	case ViewMethod:
		return "Method"
	case ViewHeader:
		return "Header"
	case ViewBody:
		return "Body"
	case ViewResponseHeader:
		return "Response Header"
	case ViewResponseBody:
		return "Response Body"
	default:
		return "Unknown"
	}
}

// EditTarget returns the edit target for the pane, or EditNone for the
// read-only response panes.
func (v View) EditTarget() Edit {
	switch v {
	case ViewURL:
		return EditURL
	case ViewParams:
		return EditParams
	case ViewMethod:
		return EditMethod
	case ViewHeader:
		return EditHeader
	case ViewBody:
		return EditBody
	case ViewResponseHeader, ViewResponseBody:
		return EditNone
	default:
		return EditNone
	}
}

// Edit identifies the pane currently accepting input.
type Edit int

const (
	EditNone Edit = iota
	EditURL
	EditParams
	EditMethod
	EditHeader
	EditBody
)

func (e Edit) String() string {
	switch e {
	case EditNone:
		return "None"
	case EditURL:
		return "URL"
	case EditParams:
		return "Params"
	case EditMethod:
		return "Method"
	case EditHeader:
		return "Header"
	case EditBody:
		return "Body"
	default:
		return "Unknown"
	}
}

// ModeManager tracks the focused pane and whether it is being edited.
type ModeManager struct {
	view View
	edit Edit
}

// NewModeManager creates a mode manager focused on the URL pane in normal mode.
func NewModeManager() *ModeManager {
	return &ModeManager{
		view: ViewURL,
		edit: EditNone,
	}
}

// View returns the focused pane.
func (m *ModeManager) View() View {
	return m.view
}

// Edit returns the edit target.
func (m *ModeManager) Edit() Edit {
	return m.edit
}

// Mode returns INSERT while a pane is being edited, NORMAL otherwise.
func (m *ModeManager) Mode() Mode {
	if m.IsEditing() {
		return ModeInsert
	}
	return ModeNormal
}

// IsEditing returns true if a pane is accepting input.
func (m *ModeManager) IsEditing() bool {
	return m.edit != EditNone
}

// NextView moves focus to the next pane and leaves edit mode.
func (m *ModeManager) NextView() {
	m.edit = EditNone
	m.view = View((int(m.view) + 1) % viewCount)
}

// PrevView moves focus to the previous pane and leaves edit mode.
func (m *ModeManager) PrevView() {
	m.edit = EditNone
	m.view = View((int(m.view) - 1 + viewCount) % viewCount)
}

// JumpTo focuses v directly and leaves edit mode. Unknown views are ignored.
func (m *ModeManager) JumpTo(v View) {
	if v < 0 || v >= viewCount {
		return
	}
	m.edit = EditNone
	m.view = v
}

// EnterEdit starts editing the focused pane. Read-only panes stay in
// normal mode.
func (m *ModeManager) EnterEdit() {
	m.edit = m.view.EditTarget()
}

// ExitEdit returns to normal mode without moving focus.
func (m *ModeManager) ExitEdit() {
	m.edit = EditNone
}
