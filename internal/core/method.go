package core

import (
	"fmt"
	"strings"
)

// Method is an HTTP request method.
type Method string

const (
	MethodGet     Method = "GET"
	MethodHead    Method = "HEAD"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodDelete  Method = "DELETE"
	MethodConnect Method = "CONNECT"
	MethodOptions Method = "OPTIONS"
	MethodTrace   Method = "TRACE"
	MethodPatch   Method = "PATCH"
)

var methods = [...]Method{
	MethodGet,
	MethodHead,
	MethodPost,
	MethodPut,
	MethodDelete,
	MethodConnect,
	MethodOptions,
	MethodTrace,
	MethodPatch,
}

// Methods returns the selectable methods in display order.
func Methods() []Method {
	out := make([]Method, len(methods))
	copy(out, methods[:])
	return out
}

// String returns the method name.
func (m Method) String() string {
	return string(m)
}

// ParseMethod resolves a method name case-insensitively.
func ParseMethod(name string) (Method, error) {
	upper := Method(strings.ToUpper(strings.TrimSpace(name)))
	for _, m := range methods {
		if m == upper {
			return m, nil
		}
	}
	return "", fmt.Errorf("unsupported method %q", name)
}

// MethodSelector cycles through Methods. The selected method is always
// derived from the index so the two cannot disagree.
type MethodSelector struct {
	index int
}

// NewMethodSelector creates a selector positioned on GET.
func NewMethodSelector() *MethodSelector {
	return &MethodSelector{}
}

// Current returns the selected method.
func (s *MethodSelector) Current() Method {
	return methods[s.index]
}

// Index returns the position of the selected method.
func (s *MethodSelector) Index() int {
	return s.index
}

// Next advances the selection, wrapping from the last method to the first.
func (s *MethodSelector) Next() {
	s.index = (s.index + 1) % len(methods)
}

// Prev retreats the selection, wrapping from the first method to the last.
func (s *MethodSelector) Prev() {
	s.index = (s.index - 1 + len(methods)) % len(methods)
}

// Select positions the selector on m. Unknown methods leave it unchanged.
func (s *MethodSelector) Select(m Method) bool {
	for i, candidate := range methods {
		if candidate == m {
			s.index = i
			return true
		}
	}
	return false
}
