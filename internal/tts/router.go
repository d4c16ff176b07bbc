package tts

import (
	"context"
	"crypto/md5"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/adnanqk/newsanchor/internal/config"
	"github.com/adnanqk/newsanchor/internal/logger"
	"github.com/adnanqk/newsanchor/internal/text"
)

// Router picks the engine for a language and writes synthesized audio
// to the output directory. English goes to Edge TTS (male or female
// neural voice), Urdu to Google Translate TTS.
type Router struct {
	cfg     *config.Config
	english map[string]Engine // keyed by gender
	urdu    Engine
}

// NewRouter builds a Router with the configured engines.
func NewRouter(cfg *config.Config) *Router {
	return &Router{
		cfg: cfg,
		english: map[string]Engine{
			"male":   NewEdgeEngine(cfg.TTS.English.Voice),
			"female": NewEdgeEngine(cfg.TTS.English.FemaleVoice),
		},
		urdu: NewGTTSEngine(cfg.TTS.Urdu),
	}
}

// engineFor returns the engine for a language and gender. Unknown
// genders fall back to the male English voice; any non-English language
// routes to the Urdu engine.
func (r *Router) engineFor(language, gender string) Engine {
	if language == "ur" {
		return r.urdu
	}
	if e, ok := r.english[gender]; ok {
		return e
	}
	return r.english["male"]
}

// Speak validates and synthesizes script text, writing an MP3 under the
// audio output directory. Returns the written file path.
func (r *Router) Speak(ctx context.Context, script, language, gender string) (string, error) {
	script = strings.TrimSpace(script)
	if script == "" {
		return "", fmt.Errorf("empty script")
	}

	// Urdu scripts must never reach the engine with markup.
	if language == "ur" && text.ContainsMarkup(script) {
		script = text.StripSSML(script)
	}

	if max := r.cfg.News.MaxTTSLength; utf8.RuneCountInString(script) > max {
		logger.Warnf("[tts] script %d chars over limit %d, truncating",
			utf8.RuneCountInString(script), max)
		script = text.SmartTruncate(script, max)
	}

	engine := r.engineFor(language, gender)
	mp3Data, err := engine.Synthesize(ctx, script)
	if err != nil {
		return "", fmt.Errorf("synthesize %s audio: %w", language, err)
	}
	if len(mp3Data) == 0 {
		return "", fmt.Errorf("engine produced empty audio")
	}

	path := r.audioPath(script, language)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("create audio directory: %w", err)
	}
	if err := os.WriteFile(path, mp3Data, 0644); err != nil {
		return "", fmt.Errorf("write audio file: %w", err)
	}

	logger.Infof("[tts] wrote %s (%d bytes)", path, len(mp3Data))
	return path, nil
}

// audioPath builds a collision-resistant output name from a script
// digest and timestamp.
func (r *Router) audioPath(script, language string) string {
	digest := fmt.Sprintf("%x", md5.Sum([]byte(script)))[:8]
	name := fmt.Sprintf("audio_%s_%s_%d.mp3", language, digest, time.Now().Unix())
	return filepath.Join(r.cfg.AudioDir(), name)
}
