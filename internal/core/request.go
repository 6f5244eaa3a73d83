package core

import (
	"bytes"
	"errors"
	"io"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Request is an outbound HTTP request assembled from the composer buffers.
type Request struct {
	id       string
	method   Method
	endpoint string
	query    map[string]string
	headers  *Headers
	body     Body
}

// NewRequest creates a request with no query, headers or body.
func NewRequest(method Method, endpoint string) *Request {
	return &Request{
		id:       uuid.New().String(),
		method:   method,
		endpoint: endpoint,
		query:    make(map[string]string),
		headers:  NewHeaders(),
		body:     NewEmptyBody(),
	}
}

func (r *Request) ID() string {
	return r.id
}

func (r *Request) Method() Method {
	return r.method
}

func (r *Request) Endpoint() string {
	return r.endpoint
}

func (r *Request) Headers() *Headers {
	return r.headers
}

func (r *Request) Body() Body {
	return r.body
}

// Query returns a copy of the query parameters.
func (r *Request) Query() map[string]string {
	result := make(map[string]string, len(r.query))
	for k, v := range r.query {
		result[k] = v
	}
	return result
}

// QueryKeys returns the query parameter names in sorted order.
func (r *Request) QueryKeys() []string {
	keys := make([]string, 0, len(r.query))
	for k := range r.query {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (r *Request) Validate() error {
	if r.method == "" {
		return errors.New("method cannot be empty")
	}
	if r.endpoint == "" {
		return errors.New("endpoint cannot be empty")
	}
	return nil
}

func (r *Request) SetQuery(query map[string]string) {
	r.query = make(map[string]string, len(query))
	for k, v := range query {
		r.query[k] = v
	}
}

func (r *Request) SetHeaders(h *Headers) {
	r.headers = h
}

func (r *Request) SetHeader(key, value string) {
	r.headers.Set(key, value)
}

func (r *Request) SetBody(body Body) {
	r.body = body
}

// BuildRequest assembles a request from raw composer text using the params and
// header parsing rules. The body is sent verbatim.
func BuildRequest(method Method, endpoint, paramsText, headerText, body string) *Request {
	req := NewRequest(method, endpoint)
	req.SetQuery(ParseQuery(paramsText))
	req.SetHeaders(ParseHeaders(headerText))
	if body != "" {
		req.SetBody(NewRawBody([]byte(body), req.Headers().Get("Content-Type")))
	}
	return req
}

// Headers implements a case-insensitive HTTP header store.
type Headers struct {
	data     map[string][]string
	keyOrder []string // Preserves original casing for keys
}

// NewHeaders creates an empty headers collection.
func NewHeaders() *Headers {
	return &Headers{
		data:     make(map[string][]string),
		keyOrder: make([]string, 0),
	}
}

func (h *Headers) normalize(key string) string {
	return strings.ToLower(key)
}

func (h *Headers) Set(key, value string) {
	normalized := h.normalize(key)
	if _, exists := h.data[normalized]; !exists {
		h.keyOrder = append(h.keyOrder, key)
	} else {
		for i, k := range h.keyOrder {
			if h.normalize(k) == normalized {
				h.keyOrder[i] = key
				break
			}
		}
	}
	h.data[normalized] = []string{value}
}

// SetIfAbsent stores value only when no value exists for key yet.
func (h *Headers) SetIfAbsent(key, value string) bool {
	if _, exists := h.data[h.normalize(key)]; exists {
		return false
	}
	h.Set(key, value)
	return true
}

func (h *Headers) Add(key, value string) {
	normalized := h.normalize(key)
	if _, exists := h.data[normalized]; !exists {
		h.keyOrder = append(h.keyOrder, key)
	}
	h.data[normalized] = append(h.data[normalized], value)
}

func (h *Headers) Get(key string) string {
	values := h.data[h.normalize(key)]
	if len(values) > 0 {
		return values[0]
	}
	return ""
}

func (h *Headers) GetAll(key string) []string {
	values := h.data[h.normalize(key)]
	if values == nil {
		return []string{}
	}
	result := make([]string, len(values))
	copy(result, values)
	return result
}

// Len returns the number of distinct header names.
func (h *Headers) Len() int {
	return len(h.keyOrder)
}

func (h *Headers) Keys() []string {
	result := make([]string, len(h.keyOrder))
	copy(result, h.keyOrder)
	return result
}

// SortedKeys returns the header names ordered case-insensitively.
func (h *Headers) SortedKeys() []string {
	keys := h.Keys()
	sort.Slice(keys, func(i, j int) bool {
		return h.normalize(keys[i]) < h.normalize(keys[j])
	})
	return keys
}

func (h *Headers) ToMap() map[string][]string {
	result := make(map[string][]string)
	for _, key := range h.keyOrder {
		normalized := h.normalize(key)
		result[key] = make([]string, len(h.data[normalized]))
		copy(result[key], h.data[normalized])
	}
	return result
}

// Format renders one "Name: value" line per value, names sorted.
func (h *Headers) Format() string {
	var lines []string
	for _, key := range h.SortedKeys() {
		for _, value := range h.data[h.normalize(key)] {
			lines = append(lines, key+": "+value)
		}
	}
	return strings.Join(lines, "\n")
}

// Body represents a request body.
type Body interface {
	ContentType() string
	IsEmpty() bool
	Size() int64
	Bytes() []byte
	String() string
	Reader() io.Reader
}

type emptyBody struct{}

// NewEmptyBody creates an empty body.
func NewEmptyBody() Body {
	return &emptyBody{}
}

func (b *emptyBody) ContentType() string { return "" }
func (b *emptyBody) IsEmpty() bool       { return true }
func (b *emptyBody) Size() int64         { return 0 }
func (b *emptyBody) Bytes() []byte       { return nil }
func (b *emptyBody) String() string      { return "" }
func (b *emptyBody) Reader() io.Reader   { return bytes.NewReader(nil) }

type rawBody struct {
	content     []byte
	contentType string
}

// NewRawBody creates a raw body with the given content and content type.
func NewRawBody(content []byte, contentType string) Body {
	return &rawBody{
		content:     content,
		contentType: contentType,
	}
}

func (b *rawBody) ContentType() string { return b.contentType }
func (b *rawBody) IsEmpty() bool       { return len(b.content) == 0 }
func (b *rawBody) Size() int64         { return int64(len(b.content)) }
func (b *rawBody) Bytes() []byte       { return b.content }
func (b *rawBody) String() string      { return string(b.content) }
func (b *rawBody) Reader() io.Reader   { return bytes.NewReader(b.content) }
