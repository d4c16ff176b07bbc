package tts

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/adnanqk/newsanchor/internal/config"
)

// stubEngine records the script it was asked to speak.
type stubEngine struct {
	got string
	out []byte
	err error
}

func (s *stubEngine) Synthesize(_ context.Context, text string) ([]byte, error) {
	s.got = text
	return s.out, s.err
}

func testRouter(t *testing.T) (*Router, *stubEngine, *stubEngine, *stubEngine) {
	t.Helper()
	cfg := &config.Config{DataDir: t.TempDir()}
	cfg.News.MaxTTSLength = 10000

	male := &stubEngine{out: []byte("mp3-male")}
	female := &stubEngine{out: []byte("mp3-female")}
	urdu := &stubEngine{out: []byte("mp3-urdu")}

	r := &Router{
		cfg:     cfg,
		english: map[string]Engine{"male": male, "female": female},
		urdu:    urdu,
	}
	return r, male, female, urdu
}

func TestSpeakRoutesByLanguageAndGender(t *testing.T) {
	r, male, female, urdu := testRouter(t)
	ctx := context.Background()

	if _, err := r.Speak(ctx, "hello there listeners", "en", "male"); err != nil {
		t.Fatalf("Speak en/male: %v", err)
	}
	if male.got == "" {
		t.Error("male engine not used")
	}

	if _, err := r.Speak(ctx, "hello there listeners", "en", "female"); err != nil {
		t.Fatalf("Speak en/female: %v", err)
	}
	if female.got == "" {
		t.Error("female engine not used")
	}

	if _, err := r.Speak(ctx, "خبریں سنیے", "ur", ""); err != nil {
		t.Fatalf("Speak ur: %v", err)
	}
	if urdu.got == "" {
		t.Error("urdu engine not used")
	}

	// Unknown gender falls back to the male voice.
	male.got = ""
	if _, err := r.Speak(ctx, "fallback voice check", "en", "robot"); err != nil {
		t.Fatalf("Speak en/robot: %v", err)
	}
	if male.got == "" {
		t.Error("unknown gender did not fall back to male voice")
	}
}

func TestSpeakWritesFile(t *testing.T) {
	r, _, _, _ := testRouter(t)

	path, err := r.Speak(context.Background(), "a short broadcast script", "en", "male")
	if err != nil {
		t.Fatalf("Speak: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "mp3-male" {
		t.Errorf("file content = %q", data)
	}
	base := path[strings.LastIndex(path, "/")+1:]
	if !strings.HasPrefix(base, "audio_en_") || !strings.HasSuffix(base, ".mp3") {
		t.Errorf("unexpected file name %q", base)
	}
}

func TestSpeakStripsUrduMarkup(t *testing.T) {
	r, _, _, urdu := testRouter(t)

	if _, err := r.Speak(context.Background(), `<speak>خبریں<break time="500ms"/></speak>`, "ur", ""); err != nil {
		t.Fatalf("Speak: %v", err)
	}
	if strings.ContainsAny(urdu.got, "<>") {
		t.Errorf("markup reached the Urdu engine: %q", urdu.got)
	}
}

func TestSpeakTruncatesLongScripts(t *testing.T) {
	r, male, _, _ := testRouter(t)
	r.cfg.News.MaxTTSLength = 50

	long := strings.Repeat("many words here. ", 20)
	if _, err := r.Speak(context.Background(), long, "en", "male"); err != nil {
		t.Fatalf("Speak: %v", err)
	}
	if len(male.got) > 54 {
		t.Errorf("script not truncated: %d chars", len(male.got))
	}
}

func TestSpeakRejectsEmptyScript(t *testing.T) {
	r, _, _, _ := testRouter(t)
	if _, err := r.Speak(context.Background(), "   ", "en", "male"); err == nil {
		t.Fatal("expected error for empty script")
	}
}
