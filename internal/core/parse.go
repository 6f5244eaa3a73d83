package core

import "strings"

// ParseQuery turns params text into query pairs. Newlines separate pairs the
// same way '&' does. Each pair is split on the first '='; a pair whose key and
// value are both empty is skipped. Later keys overwrite earlier ones.
func ParseQuery(text string) map[string]string {
	params := make(map[string]string)
	joined := strings.ReplaceAll(text, "\n", "&")
	for _, pair := range strings.Split(joined, "&") {
		key, value, _ := strings.Cut(pair, "=")
		if key == "" && value == "" {
			continue
		}
		params[key] = value
	}
	return params
}

// ParseHeaders turns header text into headers, one "Name: value" per line.
// Parsing stops at the first line missing a name or a value; every line after
// it is ignored. The first occurrence of a name wins.
func ParseHeaders(text string) *Headers {
	headers := NewHeaders()
	for _, line := range strings.Split(text, "\n") {
		name, value, _ := strings.Cut(line, ":")
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if name == "" || value == "" {
			break
		}
		headers.SetIfAbsent(name, value)
	}
	return headers
}
