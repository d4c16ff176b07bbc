package text

import (
	"encoding/xml"
	"errors"
	"io"
	"regexp"
	"strings"

	"github.com/adnanqk/newsanchor/internal/logger"
)

// emphasisCities get an SSML emphasis tag so the anchor leans on place
// names the way a broadcast reader would.
var emphasisCities = []string{
	"Karachi", "Lahore", "Islamabad", "کراچی", "لاہور", "اسلام آباد",
}

var (
	sentenceEndRe = regexp.MustCompile(`([.!?؟۔])`)
	anyTagRe      = regexp.MustCompile(`</?[a-zA-Z]+[^>]*>`)
	openBreakRe   = regexp.MustCompile(`<break([^/>]+)>`)

	// Character whitelists per language: TTS engines stumble on stray
	// symbols, and Urdu text must stay inside the Arabic script ranges.
	// The English list keeps the characters SSML tags are made of.
	urduAllowedRe    = regexp.MustCompile(`[^\x{0600}-\x{06FF}\x{0750}-\x{077F}\s.,!?؟۔\-–—()'"‘’“”:؛،]`)
	englishAllowedRe = regexp.MustCompile(`[^a-zA-Z0-9\s.,!?\-–—()'"‘’“”:;<>/=]`)
)

// PrepareForTTS converts article text into an engine-ready script.
// English output is SSML (pauses after sentences, emphasis on city
// names, a <speak> wrapper); Urdu output is plain text because Google
// Translate TTS reads markup aloud.
func PrepareForTTS(s, language string, maxLength int) string {
	if s == "" {
		return ""
	}

	s = strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
	processed := Sanitize(s)

	if language != "en" {
		// Plain text only: drop markup before the character filter so
		// tag names do not leak into the script as stray words.
		processed = anyTagRe.ReplaceAllString(processed, " ")
		processed = urduAllowedRe.ReplaceAllString(processed, "")
		processed = strings.TrimSpace(spaceRe.ReplaceAllString(processed, " "))
		return SmartTruncate(processed, maxLength)
	}

	processed = NormalizeNumbers(processed)
	processed = englishAllowedRe.ReplaceAllString(processed, "")
	processed = strings.TrimSpace(spaceRe.ReplaceAllString(processed, " "))
	if processed == "" {
		return ""
	}

	processed = sentenceEndRe.ReplaceAllString(processed, `$1<break time="500ms"/>`)

	cityAlternation := make([]string, len(emphasisCities))
	for i, c := range emphasisCities {
		cityAlternation[i] = regexp.QuoteMeta(c)
	}
	cityRe := regexp.MustCompile(`(?i)\b(` + strings.Join(cityAlternation, "|") + `)\b`)
	processed = cityRe.ReplaceAllString(processed, "<emphasis>$1</emphasis>")

	truncated := SmartTruncate(processed, maxLength)
	return "<speak>" + ValidateSSML(truncated) + "</speak>"
}

// ValidateSSML checks the fragment is well-formed XML; malformed input
// comes back with every tag stripped rather than crashing the engine.
func ValidateSSML(fragment string) string {
	if fragment == "" {
		return ""
	}

	// Break tags are emitted self-closed, so strict parsing works and
	// catches unclosed emphasis/speak tags.
	wrapped := "<root>" + fragment + "</root>"
	decoder := xml.NewDecoder(strings.NewReader(wrapped))
	for {
		_, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			logger.Warnf("[text] invalid SSML, stripping tags: %v", err)
			return anyTagRe.ReplaceAllString(fragment, "")
		}
	}
	return fragment
}

// CleanSSML repairs LLM-produced SSML: ensures the <speak> wrapper,
// converts curly quotes, self-closes break tags.
func CleanSSML(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}

	if !strings.HasPrefix(s, "<speak>") {
		s = "<speak>" + s
	}
	if !strings.HasSuffix(s, "</speak>") {
		s = s + "</speak>"
	}

	replacer := strings.NewReplacer("“", `"`, "”", `"`, "‘", "'", "’", "'")
	s = replacer.Replace(s)

	return openBreakRe.ReplaceAllString(s, "<break$1/>")
}

// StripSSML removes all SSML markup, returning plain text.
func StripSSML(s string) string {
	s = anyTagRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// ContainsMarkup reports whether s still carries tag-like content.
func ContainsMarkup(s string) bool {
	return anyTagRe.MatchString(s)
}
