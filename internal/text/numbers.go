package text

import (
	"regexp"
	"strconv"
	"strings"
)

// Number normalization for English TTS: engines read "Rs 500" and "3rd"
// badly, so figures are spelled out before synthesis.

var (
	ordinalRe = regexp.MustCompile(`(?i)\b(\d+)(?:st|nd|rd|th)\b`)
	rupeeRe   = regexp.MustCompile(`Rs\.?\s*(\d[\d,.]*)`)
	digitRe   = regexp.MustCompile(`\b\d+\b`)
)

// NormalizeNumbers converts ordinals, rupee amounts and bare integers
// to words.
func NormalizeNumbers(s string) string {
	if s == "" {
		return s
	}

	s = ordinalRe.ReplaceAllStringFunc(s, func(m string) string {
		digits := ordinalRe.FindStringSubmatch(m)[1]
		n, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			return m
		}
		return Ordinal(n)
	})

	s = rupeeRe.ReplaceAllStringFunc(s, func(m string) string {
		digits := rupeeRe.FindStringSubmatch(m)[1]
		// Drop thousands separators and any decimal part.
		digits = strings.ReplaceAll(digits, ",", "")
		if i := strings.IndexByte(digits, '.'); i >= 0 {
			digits = digits[:i]
		}
		n, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			return m
		}
		return Cardinal(n) + " rupees"
	})

	s = digitRe.ReplaceAllStringFunc(s, func(m string) string {
		n, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return m
		}
		return Cardinal(n)
	})

	return s
}

var ones = []string{
	"zero", "one", "two", "three", "four", "five", "six", "seven",
	"eight", "nine", "ten", "eleven", "twelve", "thirteen", "fourteen",
	"fifteen", "sixteen", "seventeen", "eighteen", "nineteen",
}

var tens = []string{
	"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy",
	"eighty", "ninety",
}

var scales = []struct {
	value int64
	name  string
}{
	{1_000_000_000, "billion"},
	{1_000_000, "million"},
	{1_000, "thousand"},
	{100, "hundred"},
}

// Cardinal spells out an integer in English.
func Cardinal(n int64) string {
	if n < 0 {
		return "minus " + Cardinal(-n)
	}
	if n < 20 {
		return ones[n]
	}
	if n < 100 {
		word := tens[n/10]
		if n%10 != 0 {
			word += "-" + ones[n%10]
		}
		return word
	}
	for _, scale := range scales {
		if n >= scale.value {
			word := Cardinal(n/scale.value) + " " + scale.name
			if rem := n % scale.value; rem != 0 {
				word += " " + Cardinal(rem)
			}
			return word
		}
	}
	return strconv.FormatInt(n, 10)
}

var irregularOrdinals = map[string]string{
	"one": "first", "two": "second", "three": "third", "five": "fifth",
	"eight": "eighth", "nine": "ninth", "twelve": "twelfth",
}

// Ordinal spells out an ordinal number ("3" → "third").
func Ordinal(n int64) string {
	card := Cardinal(n)

	// Only the last word changes form.
	idx := strings.LastIndexAny(card, " -")
	head, last := "", card
	if idx >= 0 {
		head, last = card[:idx+1], card[idx+1:]
	}

	if irr, ok := irregularOrdinals[last]; ok {
		return head + irr
	}
	if strings.HasSuffix(last, "y") {
		return head + last[:len(last)-1] + "ieth"
	}
	return head + last + "th"
}
