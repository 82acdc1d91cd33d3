// Package contenttype decides whether an input is an XML document before it
// reaches the parser, from a content-type header, from the bytes themselves,
// or both.
package contenttype

import (
	"bytes"
	"encoding/json"
	"mime"
	"strings"
	"unicode/utf8"
)

// Category represents a broad content classification.
type Category string

const (
	XML    Category = "xml"
	HTML   Category = "html"
	JSON   Category = "json"
	Text   Category = "text"
	Binary Category = "binary"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// sniffLen bounds how much of the input is looked at for an HTML marker.
const sniffLen = 512

// Classify returns the category for a content-type header value.
// Parameters (charset etc.) are stripped with mime.ParseMediaType; malformed
// values fall back to a lower-cased match. Empty values are Binary.
func Classify(contentType string) Category {
	if contentType == "" {
		return Binary
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}

	switch {
	case mediaType == "text/html" || mediaType == "application/xhtml+xml":
		return HTML
	// application/xml, text/xml, application/atom+xml, image/svg+xml, ...
	case strings.Contains(mediaType, "xml"):
		return XML
	case strings.Contains(mediaType, "json"):
		return JSON
	case strings.HasPrefix(mediaType, "text/"):
		return Text
	default:
		return Binary
	}
}

// Sniff classifies data by its leading bytes. A document whose first
// non-blank byte is '<' is XML unless it opens like an HTML page.
func Sniff(data []byte) Category {
	trimmed := bytes.TrimLeft(bytes.TrimPrefix(data, utf8BOM), " \t\r\n")
	if len(trimmed) == 0 {
		return Text
	}

	switch trimmed[0] {
	case '<':
		head := bytes.ToLower(trimmed[:min(len(trimmed), sniffLen)])
		if bytes.HasPrefix(head, []byte("<!doctype html")) || bytes.HasPrefix(head, []byte("<html")) {
			return HTML
		}
		return XML
	case '{', '[':
		if json.Valid(trimmed) {
			return JSON
		}
	}

	if !utf8.Valid(data) {
		return Binary
	}
	return Text
}

// Detect prefers the declared content type and falls back to sniffing when
// none is given or the declared type is too generic to decide.
func Detect(contentType string, data []byte) Category {
	if contentType == "" {
		return Sniff(data)
	}
	switch c := Classify(contentType); c {
	case XML, HTML, JSON:
		return c
	default:
		return Sniff(data)
	}
}

// IsXML reports whether Detect classifies the input as XML.
func IsXML(contentType string, data []byte) bool {
	return Detect(contentType, data) == XML
}
