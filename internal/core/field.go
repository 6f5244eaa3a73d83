package core

// Field is an editable text buffer with a single horizontal insertion cursor.
// The cursor counts runes, not display cells.
type Field struct {
	text   []rune
	cursor int
}

// NewField creates an empty field.
func NewField() *Field {
	return &Field{}
}

// Text returns the buffer content.
func (f *Field) Text() string {
	return string(f.text)
}

// Cursor returns the cursor offset.
func (f *Field) Cursor() int {
	return f.cursor
}

// Len returns the buffer length in runes.
func (f *Field) Len() int {
	return len(f.text)
}

// Insert inserts r at the cursor and advances the cursor by one.
func (f *Field) Insert(r rune) {
	f.text = append(f.text, 0)
	copy(f.text[f.cursor+1:], f.text[f.cursor:])
	f.text[f.cursor] = r
	f.cursor++
}

// DeleteBeforeCursor removes the rune immediately before the cursor.
// It is a no-op on an empty buffer or when the cursor is at the start.
func (f *Field) DeleteBeforeCursor() {
	if len(f.text) == 0 || f.cursor == 0 {
		return
	}
	f.text = append(f.text[:f.cursor-1], f.text[f.cursor:]...)
	f.cursor--
}

// Set replaces the whole buffer and moves the cursor to the start.
func (f *Field) Set(text string) {
	f.text = []rune(text)
	f.cursor = 0
}

// State returns a copy of the field suitable for rendering.
func (f *Field) State() FieldState {
	return FieldState{Text: f.Text(), Cursor: f.cursor}
}

// FieldState is a read-only snapshot of a Field.
type FieldState struct {
	Text   string
	Cursor int
}
