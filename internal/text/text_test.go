package text

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestStripHTML(t *testing.T) {
	in := `<p>Hello &amp; welcome to   <b>the show</b></p>`
	want := "Hello & welcome to the show"
	if got := StripHTML(in); got != want {
		t.Errorf("StripHTML = %q, want %q", got, want)
	}
}

func TestSanitizeKeepsSSML(t *testing.T) {
	in := `<div>News update.</div> <speak>Top story<break time="500ms"/> tonight</speak>`
	got := Sanitize(in)
	if strings.Contains(got, "<div>") {
		t.Errorf("HTML survived: %q", got)
	}
	for _, tag := range []string{"<speak>", `<break time="500ms"/>`, "</speak>"} {
		if !strings.Contains(got, tag) {
			t.Errorf("SSML tag %q stripped: %q", tag, got)
		}
	}
}

func TestNormalizeNumbers(t *testing.T) {
	cases := []struct{ in, want string }{
		{"The 3rd match", "The third match"},
		{"Rs 500 fine", "five hundred rupees fine"},
		{"Rs. 1,500 collected", "one thousand five hundred rupees collected"},
		{"21 players", "twenty-one players"},
		{"no digits here", "no digits here"},
	}
	for _, tc := range cases {
		if got := NormalizeNumbers(tc.in); got != tc.want {
			t.Errorf("NormalizeNumbers(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCardinal(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{0, "zero"},
		{13, "thirteen"},
		{42, "forty-two"},
		{100, "one hundred"},
		{1205, "one thousand two hundred five"},
		{2_000_000, "two million"},
		{-7, "minus seven"},
	}
	for _, tc := range cases {
		if got := Cardinal(tc.n); got != tc.want {
			t.Errorf("Cardinal(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestOrdinal(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{1, "first"},
		{2, "second"},
		{3, "third"},
		{4, "fourth"},
		{12, "twelfth"},
		{20, "twentieth"},
		{21, "twenty-first"},
	}
	for _, tc := range cases {
		if got := Ordinal(tc.n); got != tc.want {
			t.Errorf("Ordinal(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestFormatHeadline(t *testing.T) {
	long := strings.Repeat("word ", 40)
	got := FormatHeadline(long, "en")
	if len(got) > 94 { // limit plus ellipsis
		t.Errorf("headline too long: %d chars", len(got))
	}
	if strings.Contains(got, "\n") {
		t.Error("headline has a newline")
	}

	ur := FormatHeadline(strings.Repeat("خبر ", 40), "ur")
	if !utf8.ValidString(ur) {
		t.Fatalf("urdu headline is invalid UTF-8: %q", ur)
	}
	if n := utf8.RuneCountInString(ur); n < 50 || n > 73 {
		t.Errorf("urdu headline %d runes, want near the 70-char limit", n)
	}
}

func TestFormatDescription(t *testing.T) {
	short := "One line."
	got := FormatDescription(short, "en")
	if lines := strings.Split(got, "\n"); len(lines) != 3 {
		t.Errorf("short description not padded to 3 lines: %d", len(lines))
	}

	long := strings.Repeat("several words in a sentence here. ", 30)
	got = FormatDescription(long, "en")
	lines := strings.Split(got, "\n")
	if len(lines) > 5 {
		t.Errorf("description over 5 lines: %d", len(lines))
	}
	for _, l := range lines {
		if len(l) > 80 {
			t.Errorf("line over 80 chars: %q", l)
		}
	}
}

func TestSmartTruncate(t *testing.T) {
	if got := SmartTruncate("short", 100); got != "short" {
		t.Errorf("short input changed: %q", got)
	}

	// Prefers a sentence boundary near the limit.
	in := "First sentence is here. Second sentence follows right after the first one ends."
	got := SmartTruncate(in, 25)
	if got != "First sentence is here." {
		t.Errorf("sentence cut = %q", got)
	}

	// Never cuts inside a tag.
	in = `Something happened <break time="500ms"/> afterwards`
	got = SmartTruncate(in, 30)
	if strings.Count(got, "<") != strings.Count(got, ">") {
		t.Errorf("half a tag survived: %q", got)
	}

	// Word boundary plus ellipsis otherwise.
	got = SmartTruncate("alpha beta gamma delta epsilon", 17)
	if !strings.HasSuffix(got, "...") {
		t.Errorf("missing ellipsis: %q", got)
	}
	if strings.Contains(got, "gamma d") {
		t.Errorf("cut inside a word: %q", got)
	}
}

func TestSmartTruncateCountsRunes(t *testing.T) {
	// 87 runes of Urdu, 70-rune budget. Counting bytes would nearly
	// halve the kept text.
	in := strings.TrimSpace(strings.Repeat("پاکستان ", 11))
	got := SmartTruncate(in, 70)
	if !utf8.ValidString(got) {
		t.Fatalf("invalid UTF-8: %q", got)
	}
	n := utf8.RuneCountInString(got)
	if n > 73 { // limit plus ellipsis
		t.Errorf("kept %d runes, over the limit", n)
	}
	if n < 60 {
		t.Errorf("kept only %d runes, budget counted in bytes", n)
	}

	// No space to break at: the cut must still land on a rune boundary.
	got = SmartTruncate(strings.Repeat("ا", 100), 71)
	if !utf8.ValidString(got) {
		t.Fatalf("cut split a rune: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != 74 {
		t.Errorf("kept %d runes, want 71 plus ellipsis", n)
	}
}

func TestFormatDescriptionUrduLineWidth(t *testing.T) {
	long := strings.TrimSpace(strings.Repeat("حکومت پاکستان نے اعلان کیا ", 20))
	got := FormatDescription(long, "ur")

	lines := strings.Split(got, "\n")
	for _, l := range lines {
		if !utf8.ValidString(l) {
			t.Fatalf("line is invalid UTF-8: %q", l)
		}
		if utf8.RuneCountInString(l) > 60 {
			t.Errorf("line over 60 runes: %q", l)
		}
	}
	// Lines fill the rune width instead of half of it.
	if n := utf8.RuneCountInString(lines[0]); n <= 30 {
		t.Errorf("first line only %d runes, width counted in bytes", n)
	}
}

func TestPrepareForTTSEnglish(t *testing.T) {
	got := PrepareForTTS("Heavy rain hit Karachi today. Flights delayed.", "en", 10000)

	if !strings.HasPrefix(got, "<speak>") || !strings.HasSuffix(got, "</speak>") {
		t.Fatalf("not wrapped: %q", got)
	}
	if !strings.Contains(got, `<break time="500ms"/>`) {
		t.Errorf("no breaks inserted: %q", got)
	}
	if !strings.Contains(got, "<emphasis>Karachi</emphasis>") {
		t.Errorf("city not emphasized: %q", got)
	}
}

func TestPrepareForTTSUrduIsPlain(t *testing.T) {
	got := PrepareForTTS(`<speak>کراچی میں بارش<break time="500ms"/></speak>`, "ur", 10000)
	if strings.ContainsAny(got, "<>") {
		t.Fatalf("urdu output carries markup: %q", got)
	}
	if !strings.Contains(got, "کراچی") {
		t.Errorf("urdu text lost: %q", got)
	}
}

func TestPrepareForTTSEmpty(t *testing.T) {
	if got := PrepareForTTS("", "en", 100); got != "" {
		t.Errorf("empty input produced %q", got)
	}
}

func TestValidateSSML(t *testing.T) {
	good := `Hello<break time="500ms"/> world`
	if got := ValidateSSML(good); got != good {
		t.Errorf("well-formed fragment changed: %q", got)
	}

	bad := `Hello <emphasis>world` // unclosed
	got := ValidateSSML(bad)
	if strings.Contains(got, "<emphasis>") {
		t.Errorf("malformed SSML kept its tags: %q", got)
	}
}

func TestCleanSSML(t *testing.T) {
	in := `Top story tonight<break time="300ms"> with “quotes”`
	got := CleanSSML(in)

	if !strings.HasPrefix(got, "<speak>") || !strings.HasSuffix(got, "</speak>") {
		t.Errorf("not wrapped: %q", got)
	}
	if !strings.Contains(got, `<break time="300ms"/>`) {
		t.Errorf("break not self-closed: %q", got)
	}
	if strings.ContainsAny(got, "“”") {
		t.Errorf("curly quotes kept: %q", got)
	}
}

func TestStripSSMLAndContainsMarkup(t *testing.T) {
	in := `<speak>Hello<break time="500ms"/> world</speak>`
	if got := StripSSML(in); got != "Hello world" {
		t.Errorf("StripSSML = %q", got)
	}
	if !ContainsMarkup(in) {
		t.Error("markup not detected")
	}
	if ContainsMarkup("plain text, 2 < 3") {
		t.Error("false positive on bare less-than")
	}
}
