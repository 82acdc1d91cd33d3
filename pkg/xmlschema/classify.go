package xmlschema

import (
	"net/mail"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// NaiveTimestampLayout is the zone-less timestamp layout recognized by Classify.
const NaiveTimestampLayout = "2006-01-02 15:04:05"

// hierarchical URL schemes that are only valid with a host component
var hostSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"ftp":   true,
	"ws":    true,
	"wss":   true,
}

// Classify infers the kind of a piece of text. The trials run in a fixed
// order and the first success wins: integer, float, naive timestamp,
// RFC 3339, RFC 2822, absolute URL, and finally text. The result is always
// required; optionality is only introduced by merging.
func Classify(text string) Value {
	return Required(classifyKind(text))
}

func classifyKind(text string) ValueKind {
	if _, err := strconv.ParseInt(text, 10, 64); err == nil {
		return Integer
	}
	if _, err := strconv.ParseFloat(text, 64); err == nil {
		return Float
	}
	if _, err := time.Parse(NaiveTimestampLayout, text); err == nil {
		return Timestamp(TimestampNaive)
	}
	if _, err := time.Parse(time.RFC3339, text); err == nil {
		return Timestamp(TimestampRFC3339)
	}
	if _, err := mail.ParseDate(text); err == nil {
		return Timestamp(TimestampRFC2822)
	}
	if isAbsoluteURL(text) {
		return URL
	}
	return Text
}

func isAbsoluteURL(text string) bool {
	if text == "" || strings.ContainsAny(text, " \t\r\n") {
		return false
	}
	u, err := url.Parse(text)
	if err != nil || u.Scheme == "" {
		return false
	}
	if hostSchemes[strings.ToLower(u.Scheme)] && u.Host == "" {
		return false
	}
	return true
}
