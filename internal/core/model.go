package core

// RequestModel holds the editable request buffers and the method selector.
type RequestModel struct {
	URL    *Field
	Params *Field
	Header *Field
	Body   *Field
	Method *MethodSelector
}

// NewRequestModel creates a model with empty buffers and GET selected.
func NewRequestModel() *RequestModel {
	return &RequestModel{
		URL:    NewField(),
		Params: NewField(),
		Header: NewField(),
		Body:   NewField(),
		Method: NewMethodSelector(),
	}
}

// Query parses the params buffer.
func (m *RequestModel) Query() map[string]string {
	return ParseQuery(m.Params.Text())
}

// Headers parses the header buffer.
func (m *RequestModel) Headers() *Headers {
	return ParseHeaders(m.Header.Text())
}

// Build assembles a request from the current buffers.
func (m *RequestModel) Build() *Request {
	return BuildRequest(
		m.Method.Current(),
		m.URL.Text(),
		m.Params.Text(),
		m.Header.Text(),
		m.Body.Text(),
	)
}

// ResponseModel holds the read-only response display buffers, plus the
// status and content type of the response they were filled from.
type ResponseModel struct {
	Status *Field
	Header *Field
	Body   *Field

	LastStatus  *Status
	ContentType string
}

// NewResponseModel creates a model with empty buffers.
func NewResponseModel() *ResponseModel {
	return &ResponseModel{
		Status: NewField(),
		Header: NewField(),
		Body:   NewField(),
	}
}

// Apply overwrites all three buffers from resp. A body that cannot be
// decoded is shown as empty.
func (m *ResponseModel) Apply(resp *Response) {
	m.LastStatus = resp.Status()
	m.ContentType = resp.Headers().Get("Content-Type")
	m.Status.Set(resp.Status().String())
	m.Header.Set(resp.Headers().Format())
	text, err := resp.Text()
	if err != nil {
		text = ""
	}
	m.Body.Set(text)
}
