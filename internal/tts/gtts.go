package tts

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	"golang.org/x/time/rate"

	"github.com/adnanqk/newsanchor/internal/config"
	"github.com/adnanqk/newsanchor/internal/logger"
)

// gttsTimeout bounds one synthesis call; the Translate endpoint either
// answers quickly or not at all.
const gttsTimeout = 30 * time.Second

// GTTSEngine synthesizes Urdu audio through the gtts-cli subprocess,
// which fronts the Google Translate TTS endpoint. The endpoint is
// unofficial and throttles aggressively, so calls go through a rate
// limiter. Input must be plain text: the service reads markup aloud.
type GTTSEngine struct {
	lang    string
	tld     string
	slow    bool
	limiter *rate.Limiter
}

// NewGTTSEngine creates a gtts-cli engine from config.
func NewGTTSEngine(cfg config.GTTSConfig) *GTTSEngine {
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 50
	}
	return &GTTSEngine{
		lang:    cfg.Lang,
		tld:     cfg.TLD,
		slow:    cfg.Slow,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1),
	}
}

// Synthesize implements Engine, returning MP3 bytes.
func (g *GTTSEngine) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	logger.Debugf("[tts] gtts: synthesizing %d chars, lang=%s tld=%s",
		len([]rune(text)), g.lang, g.tld)

	ctx, cancel := context.WithTimeout(ctx, gttsTimeout)
	defer cancel()

	args := []string{"-l", g.lang, "--tld", g.tld, "-o", "-"}
	if g.slow {
		args = append(args, "--slow")
	}
	args = append(args, text)

	cmd := exec.CommandContext(ctx, "gtts-cli", args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			logger.Warnf("[tts] gtts-cli stderr: %s", stderr.String())
		}
		return nil, fmt.Errorf("gtts-cli: %w", err)
	}

	if stdout.Len() == 0 {
		return nil, fmt.Errorf("gtts-cli returned no audio")
	}

	logger.Debugf("[tts] gtts: received %d MP3 bytes", stdout.Len())
	return stdout.Bytes(), nil
}
