package core

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequest(t *testing.T) {
	req := NewRequest(MethodGet, "https://example.com")
	assert.NotEmpty(t, req.ID())
	assert.Equal(t, MethodGet, req.Method())
	assert.Equal(t, "https://example.com", req.Endpoint())
	assert.True(t, req.Body().IsEmpty())
	assert.NoError(t, req.Validate())

	other := NewRequest(MethodGet, "https://example.com")
	assert.NotEqual(t, req.ID(), other.ID())
}

func TestRequest_Validate(t *testing.T) {
	assert.Error(t, NewRequest("", "https://example.com").Validate())
	assert.Error(t, NewRequest(MethodGet, "").Validate())
}

func TestRequest_QueryIsCopied(t *testing.T) {
	query := map[string]string{"a": "1"}
	req := NewRequest(MethodGet, "https://example.com")
	req.SetQuery(query)
	query["a"] = "changed"

	got := req.Query()
	assert.Equal(t, "1", got["a"])
	got["b"] = "2"
	assert.Len(t, req.Query(), 1)
}

func TestBuildRequest(t *testing.T) {
	req := BuildRequest(MethodPut, "https://example.com", "a=1&b=2", "X-A: 1", "payload")
	assert.Equal(t, MethodPut, req.Method())
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, req.Query())
	assert.Equal(t, "1", req.Headers().Get("x-a"))

	data, err := io.ReadAll(req.Body().Reader())
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
	assert.Equal(t, int64(7), req.Body().Size())
}

func TestHeaders(t *testing.T) {
	t.Run("case-insensitive get", func(t *testing.T) {
		h := NewHeaders()
		h.Set("Content-Type", "text/plain")
		assert.Equal(t, "text/plain", h.Get("content-type"))
	})

	t.Run("set replaces and keeps latest casing", func(t *testing.T) {
		h := NewHeaders()
		h.Set("x-id", "1")
		h.Set("X-Id", "2")
		assert.Equal(t, []string{"X-Id"}, h.Keys())
		assert.Equal(t, []string{"2"}, h.GetAll("x-id"))
	})

	t.Run("set if absent keeps the first value", func(t *testing.T) {
		h := NewHeaders()
		assert.True(t, h.SetIfAbsent("A", "1"))
		assert.False(t, h.SetIfAbsent("a", "2"))
		assert.Equal(t, "1", h.Get("A"))
	})

	t.Run("add accumulates values", func(t *testing.T) {
		h := NewHeaders()
		h.Add("Set-Cookie", "a=1")
		h.Add("Set-Cookie", "b=2")
		assert.Equal(t, []string{"a=1", "b=2"}, h.GetAll("set-cookie"))
		assert.Equal(t, 1, h.Len())
	})

	t.Run("format sorts names and repeats multi-value headers", func(t *testing.T) {
		h := NewHeaders()
		h.Add("X-B", "2")
		h.Add("content-type", "text/plain")
		h.Add("X-B", "3")
		assert.Equal(t, "content-type: text/plain\nX-B: 2\nX-B: 3", h.Format())
	})

	t.Run("format of empty headers", func(t *testing.T) {
		assert.Equal(t, "", NewHeaders().Format())
	})
}
