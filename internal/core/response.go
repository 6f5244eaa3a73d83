package core

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/html/charset"
)

// Response is the result of a dispatched request.
type Response struct {
	id        string
	requestID string
	status    *Status
	headers   *Headers
	body      []byte
	bodyErr   error
	timing    TimingInfo
}

// NewResponse creates a new response with the given status.
func NewResponse(requestID string, status *Status) *Response {
	return &Response{
		id:        uuid.New().String(),
		requestID: requestID,
		status:    status,
		headers:   NewHeaders(),
	}
}

func (r *Response) ID() string {
	return r.id
}

func (r *Response) RequestID() string {
	return r.requestID
}

func (r *Response) Status() *Status {
	return r.status
}

func (r *Response) Headers() *Headers {
	return r.headers
}

// Body returns the raw body bytes as received.
func (r *Response) Body() []byte {
	return r.body
}

func (r *Response) Timing() TimingInfo {
	return r.timing
}

// Text decodes the body using the charset named in Content-Type. Bodies
// without a charset are read as UTF-8 with invalid sequences replaced.
func (r *Response) Text() (string, error) {
	if r.bodyErr != nil {
		return "", r.bodyErr
	}
	label := charsetLabel(r.headers.Get("Content-Type"))
	if label == "" || strings.EqualFold(label, "utf-8") || strings.EqualFold(label, "utf8") {
		return strings.ToValidUTF8(string(r.body), "\uFFFD"), nil
	}

	reader, err := charset.NewReaderLabel(label, bytes.NewReader(r.body))
	if err != nil {
		return "", fmt.Errorf("decode body as %s: %w", label, err)
	}
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("decode body as %s: %w", label, err)
	}
	return string(decoded), nil
}

func charsetLabel(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(params["charset"])
}

// WithHeaders sets the response headers and returns the response for chaining.
func (r *Response) WithHeaders(h *Headers) *Response {
	r.headers = h
	return r
}

// WithBody sets the response body and returns the response for chaining.
func (r *Response) WithBody(b []byte) *Response {
	r.body = b
	return r
}

// WithBodyError marks the body as unreadable. Text reports err.
func (r *Response) WithBodyError(err error) *Response {
	r.bodyErr = err
	return r
}

// WithTiming sets the timing information and returns the response for chaining.
func (r *Response) WithTiming(t TimingInfo) *Response {
	r.timing = t
	return r
}

// Status represents an HTTP status code and text.
type Status struct {
	code int
	text string
}

// NewStatus creates a new status. text is the full status line
// ("200 OK"); an empty text is derived from the code.
func NewStatus(code int, text string) *Status {
	if text == "" {
		text = strconv.Itoa(code)
	}
	return &Status{
		code: code,
		text: text,
	}
}

func (s *Status) Code() int    { return s.code }
func (s *Status) Text() string { return s.text }

func (s *Status) String() string {
	return s.text
}

func (s *Status) IsSuccess() bool {
	return s.code >= 200 && s.code < 300
}

func (s *Status) IsRedirect() bool {
	return s.code >= 300 && s.code < 400
}

func (s *Status) IsError() bool {
	return s.code >= 400
}

// TimingInfo contains request/response timing information.
type TimingInfo struct {
	StartTime       time.Time
	EndTime         time.Time
	DNSLookup       time.Duration
	TCPConnection   time.Duration
	TLSHandshake    time.Duration
	TimeToFirstByte time.Duration
	Total           time.Duration
}
