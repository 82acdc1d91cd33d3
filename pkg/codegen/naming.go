package codegen

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Words splits an XML name into lower-case words. Separators are any
// non-alphanumeric rune (including the prefix colon of a qualified name) and
// camelCase boundaries; a run of capitals followed by a lower-case letter
// ends before its last capital ("XMLHttp" -> xml, http). A name that yields
// no words becomes "value", and a leading digit gets an "n" word in front so
// the result is always a valid identifier.
func Words(name string) []string {
	runes := []rune(name)
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && len(cur) > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()

	if len(words) == 0 {
		return []string{"value"}
	}
	lower := cases.Lower(language.Und)
	for i, w := range words {
		words[i] = lower.String(w)
	}
	if unicode.IsDigit([]rune(words[0])[0]) {
		words = append([]string{"n"}, words...)
	}
	return words
}

// Pascal joins words as PascalCase ("item", "element" -> "ItemElement").
func Pascal(words []string) string {
	title := cases.Title(language.Und)
	var sb strings.Builder
	for _, w := range words {
		sb.WriteString(title.String(w))
	}
	return sb.String()
}

// Snake joins words as snake_case.
func Snake(words []string) string {
	return strings.Join(words, "_")
}

// PascalName is Pascal(Words(name)).
func PascalName(name string) string { return Pascal(Words(name)) }

// SnakeName is Snake(Words(name)).
func SnakeName(name string) string { return Snake(Words(name)) }

// nameSet hands out unique names. The first request for a name gets it
// unchanged, later ones get a numeric suffix starting at 2.
type nameSet struct {
	used map[string]bool
	sep  string
}

func newNameSet(sep string) *nameSet {
	return &nameSet{used: make(map[string]bool), sep: sep}
}

func (s *nameSet) reserve(name string) {
	s.used[name] = true
}

// unique returns name, or name+sep+N for the smallest free N >= 2, and
// reserves the result.
func (s *nameSet) unique(name string) string {
	if !s.used[name] {
		s.used[name] = true
		return name
	}
	for n := 2; ; n++ {
		candidate := name + s.sep + strconv.Itoa(n)
		if !s.used[candidate] {
			s.used[candidate] = true
			return candidate
		}
	}
}
