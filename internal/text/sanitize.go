// Package text shapes raw feed and LLM output into broadcast-ready text.
package text

import (
	"html"
	"regexp"
	"strings"
)

var (
	tagRe   = regexp.MustCompile(`<[^>]*>`)
	spaceRe = regexp.MustCompile(`\s+`)

	// ssmlTagRe matches the SSML tags the English pipeline emits.
	// Everything else is markup to strip.
	ssmlTagRe = regexp.MustCompile(`(?i)^</?(speak|emphasis)\s*>$|^<break\s[^>]*/?>$`)
)

// StripHTML removes all markup and collapses whitespace.
func StripHTML(s string) string {
	s = tagRe.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Sanitize removes HTML markup but keeps SSML tags (speak, break,
// emphasis) intact, so LLM-annotated text survives cleaning.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	s = tagRe.ReplaceAllStringFunc(s, func(tag string) string {
		if ssmlTagRe.MatchString(tag) {
			return tag
		}
		return " "
	})
	s = html.UnescapeString(s)
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
