// Package input defines the discrete key symbols the composer reacts to and
// translates terminal key messages into them.
package input

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

// Kind identifies the class of a Key.
type Kind int

const (
	KindNone Kind = iota
	KindChar
	KindBackspace
	KindEnter
	KindEsc
	KindTab
	KindShiftTab
	KindLeft
	KindRight
	KindFunc
	KindCtrl
)

// MaxFunc is the highest function key number recognised.
const MaxFunc = 12

// Key is a tagged key value. Rune is set for KindChar and KindCtrl, N for
// KindFunc.
type Key struct {
	Kind Kind
	Rune rune
	N    int
}

var (
	Backspace = Key{Kind: KindBackspace}
	Enter     = Key{Kind: KindEnter}
	Esc       = Key{Kind: KindEsc}
	Tab       = Key{Kind: KindTab}
	ShiftTab  = Key{Kind: KindShiftTab}
	Left      = Key{Kind: KindLeft}
	Right     = Key{Kind: KindRight}
)

// Char returns the key for a typed character.
func Char(r rune) Key {
	return Key{Kind: KindChar, Rune: r}
}

// Func returns function key n.
func Func(n int) Key {
	return Key{Kind: KindFunc, N: n}
}

// Ctrl returns the control combination for r. Letters are lowercased.
func Ctrl(r rune) Key {
	return Key{Kind: KindCtrl, Rune: unicode.ToLower(r)}
}

// IsPrintable reports whether k is a visible character that may be inserted
// into a text buffer. Space counts as printable.
func (k Key) IsPrintable() bool {
	return k.Kind == KindChar && unicode.IsGraphic(k.Rune)
}

// String returns the canonical key name accepted by Parse.
func (k Key) String() string {
	switch k.Kind {
	case KindChar:
		if k.Rune == ' ' {
			return "space"
		}
		return string(k.Rune)
	case KindBackspace:
		return "backspace"
	case KindEnter:
		return "enter"
	case KindEsc:
		return "esc"
	case KindTab:
		return "tab"
	case KindShiftTab:
		return "shift+tab"
	case KindLeft:
		return "left"
	case KindRight:
		return "right"
	case KindFunc:
		return "f" + strconv.Itoa(k.N)
	case KindCtrl:
		return "ctrl+" + string(k.Rune)
	default:
		return "none"
	}
}

// Parse resolves a key name such as "tab", "f3", "ctrl+r" or "q".
func Parse(name string) (Key, error) {
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		if !unicode.IsGraphic(r) || r == ' ' {
			return Key{}, fmt.Errorf("unknown key %q", name)
		}
		return Char(r), nil
	}

	lower := strings.ToLower(strings.TrimSpace(name))
	switch lower {
	case "backspace":
		return Backspace, nil
	case "enter", "return":
		return Enter, nil
	case "esc", "escape":
		return Esc, nil
	case "tab":
		return Tab, nil
	case "shift+tab", "backtab":
		return ShiftTab, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	case "space":
		return Char(' '), nil
	}

	if rest, ok := strings.CutPrefix(lower, "ctrl+"); ok {
		if len(rest) == 1 && rest[0] >= 'a' && rest[0] <= 'z' {
			return Ctrl(rune(rest[0])), nil
		}
		return Key{}, fmt.Errorf("unknown key %q", name)
	}

	if rest, ok := strings.CutPrefix(lower, "f"); ok {
		n, err := strconv.Atoi(rest)
		if err == nil && n >= 1 && n <= MaxFunc {
			return Func(n), nil
		}
	}

	return Key{}, fmt.Errorf("unknown key %q", name)
}

var funcKeys = [MaxFunc]tea.KeyType{
	tea.KeyF1, tea.KeyF2, tea.KeyF3, tea.KeyF4, tea.KeyF5, tea.KeyF6,
	tea.KeyF7, tea.KeyF8, tea.KeyF9, tea.KeyF10, tea.KeyF11, tea.KeyF12,
}

// FromTea translates a Bubble Tea key message. A rune message yields one
// Char per rune, since a paste or a fast burst of typing arrives as a single
// message. Keys the composer has no symbol for (arrows other than left/right,
// alt combinations) yield nil.
func FromTea(msg tea.KeyMsg) []Key {
	if msg.Alt {
		return nil
	}

	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return nil
		}
		keys := make([]Key, len(msg.Runes))
		for i, r := range msg.Runes {
			keys[i] = Char(r)
		}
		return keys
	case tea.KeySpace:
		return []Key{Char(' ')}
	case tea.KeyEnter:
		return []Key{Enter}
	case tea.KeyEsc:
		return []Key{Esc}
	case tea.KeyTab:
		return []Key{Tab}
	case tea.KeyShiftTab:
		return []Key{ShiftTab}
	case tea.KeyBackspace, tea.KeyCtrlH:
		return []Key{Backspace}
	case tea.KeyLeft:
		return []Key{Left}
	case tea.KeyRight:
		return []Key{Right}
	}

	for i, ft := range funcKeys {
		if msg.Type == ft {
			return []Key{Func(i + 1)}
		}
	}

	if msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ {
		return []Key{Ctrl(rune('a' + int(msg.Type-tea.KeyCtrlA)))}
	}

	return nil
}
