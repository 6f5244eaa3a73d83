package components

import (
	"bytes"
	"encoding/json"
	"mime"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// ContentFormat is the detected format of a response body.
type ContentFormat string

const (
	FormatJSON ContentFormat = "json"
	FormatXML  ContentFormat = "xml"
	FormatHTML ContentFormat = "html"
	FormatText ContentFormat = "text"
)

func (f ContentFormat) String() string {
	return string(f)
}

// Upper returns the uppercase name for display.
func (f ContentFormat) Upper() string {
	return strings.ToUpper(string(f))
}

// DetectContentFormat uses the media type of contentType when it names a
// known format and sniffs body otherwise.
func DetectContentFormat(contentType, body string) ContentFormat {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}

	switch {
	case mediaType == "application/json", mediaType == "text/json", strings.HasSuffix(mediaType, "+json"):
		return FormatJSON
	case mediaType == "application/xml", mediaType == "text/xml", strings.HasSuffix(mediaType, "+xml"):
		return FormatXML
	case mediaType == "text/html", mediaType == "application/xhtml":
		return FormatHTML
	}
	return sniffFormat(body)
}

func sniffFormat(body string) ContentFormat {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return FormatText
	}

	switch trimmed[0] {
	case '{', '[':
		if json.Valid([]byte(trimmed)) {
			return FormatJSON
		}
		return FormatText
	case '<':
		lower := strings.ToLower(trimmed)
		if strings.HasPrefix(lower, "<!doctype html") || strings.Contains(lower, "<html") {
			return FormatHTML
		}
		return FormatXML
	}
	return FormatText
}

// Formatter turns a response body into display lines. JSON is re-indented;
// with highlighting on, lines carry terminal colour escapes.
type Formatter struct {
	highlight bool
	style     *chroma.Style
}

// NewFormatter creates a formatter using the named chroma style. Unknown
// style names fall back to chroma's default.
func NewFormatter(highlight bool, styleName string) *Formatter {
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}
	return &Formatter{highlight: highlight, style: style}
}

// Highlighting reports whether output is coloured.
func (f *Formatter) Highlighting() bool {
	return f.highlight
}

// Lines formats body for display.
func (f *Formatter) Lines(contentType, body string) []string {
	if body == "" {
		return nil
	}

	format := DetectContentFormat(contentType, body)
	if format == FormatJSON {
		body = PrettyJSON(body)
	}
	if !f.highlight || format == FormatText {
		return strings.Split(body, "\n")
	}

	highlighted, err := f.colorize(format, body)
	if err != nil {
		return strings.Split(body, "\n")
	}
	return strings.Split(strings.TrimSuffix(highlighted, "\n"), "\n")
}

func (f *Formatter) colorize(format ContentFormat, body string) (string, error) {
	lexer := lexers.Get(format.String())
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, body)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	if err := formatters.TTY256.Format(&out, f.style, iterator); err != nil {
		return "", err
	}
	return out.String(), nil
}

// PrettyJSON indents valid JSON by two spaces and returns anything else
// unchanged.
func PrettyJSON(body string) string {
	var out bytes.Buffer
	if err := json.Indent(&out, []byte(body), "", "  "); err != nil {
		return body
	}
	return out.String()
}
