package text

import (
	"strings"
	"unicode/utf8"

	"github.com/adnanqk/newsanchor/internal/config"
)

// FormatHeadline collapses whitespace and truncates to the per-language
// headline limit. Always single-line.
func FormatHeadline(s, language string) string {
	constraint, ok := config.HeadlineConstraints[language]
	if !ok {
		constraint = config.HeadlineConstraints["en"]
	}
	clean := strings.Join(strings.Fields(s), " ")
	truncated := SmartTruncate(clean, constraint.MaxChars)
	return strings.TrimSpace(strings.ReplaceAll(truncated, "\n", " "))
}

// FormatDescription shapes a summary into the on-screen line grid:
// wrapped to the per-language line width, padded to the minimum line
// count, cut at the maximum.
func FormatDescription(s, language string) string {
	constraint, ok := config.DescriptionConstraints[language]
	if !ok {
		constraint = config.DescriptionConstraints["en"]
	}

	clean := strings.Join(strings.Fields(s), " ")
	maxChars := constraint.MaxLines * constraint.CharsPerLine
	truncated := SmartTruncate(clean, maxChars)

	lines := wrapLines(truncated, constraint.CharsPerLine)
	for len(lines) < constraint.MinLines {
		lines = append(lines, "")
	}
	if len(lines) > constraint.MaxLines {
		lines = lines[:constraint.MaxLines]
	}
	return strings.Join(lines, "\n")
}

// wrapLines greedily wraps words to the given width, counted in runes.
// A word longer than the width gets its own line.
func wrapLines(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	currentLen := utf8.RuneCountInString(current)
	for _, w := range words[1:] {
		wordLen := utf8.RuneCountInString(w)
		if currentLen+1+wordLen <= width {
			current += " " + w
			currentLen += 1 + wordLen
		} else {
			lines = append(lines, current)
			current = w
			currentLen = wordLen
		}
	}
	return append(lines, current)
}

// SmartTruncate cuts text to maxLen runes, preferring a sentence
// boundary in the final fifth, refusing to cut inside an SSML tag, else
// breaking at a word boundary with an ellipsis. Limits count runes, not
// bytes: Urdu budgets would otherwise halve, and a blind byte cut can
// split a rune.
func SmartTruncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	head := runes[:maxLen]

	// Sentence boundary close to the limit reads best.
	lastPunct := -1
	for i, r := range head {
		if r == '.' || r == '!' || r == '?' {
			lastPunct = i
		}
	}
	if lastPunct != -1 && float64(lastPunct) >= float64(maxLen)*0.8 {
		return string(head[:lastPunct+1])
	}

	// Never leave half an SSML tag behind.
	lastOpen, lastClose := -1, -1
	for i, r := range head {
		switch r {
		case '<':
			lastOpen = i
		case '>':
			lastClose = i
		}
	}
	if lastOpen > lastClose {
		return strings.TrimSpace(string(head[:lastOpen])) + "..."
	}

	cut := string(head)
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}
