// Package broadcast turns a processed article into anchor audio and a
// lip-synced video.
package broadcast

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/adnanqk/newsanchor/internal/config"
	"github.com/adnanqk/newsanchor/internal/database"
	"github.com/adnanqk/newsanchor/internal/feed"
	"github.com/adnanqk/newsanchor/internal/logger"
	"github.com/adnanqk/newsanchor/internal/worker"
)

// Speaker synthesizes a script to an audio file.
type Speaker interface {
	Speak(ctx context.Context, script, language, gender string) (string, error)
}

// VideoGenerator lip-syncs an avatar to an audio file.
type VideoGenerator interface {
	Generate(ctx context.Context, audioPath, language string) (string, error)
}

// Result is one finished broadcast.
type Result struct {
	ID        string
	Headline  string
	AudioPath string
	VideoPath string
}

// Broadcaster coordinates synthesis and video generation through the
// worker pool and records finished broadcasts.
type Broadcaster struct {
	cfg     *config.Config
	db      *database.DB // nil in tests
	pool    *worker.Pool
	speaker Speaker
	video   VideoGenerator
}

// New creates a Broadcaster. db may be nil; video may be nil when the
// deployment is audio-only.
func New(cfg *config.Config, db *database.DB, pool *worker.Pool,
	speaker Speaker, video VideoGenerator) *Broadcaster {
	return &Broadcaster{cfg: cfg, db: db, pool: pool, speaker: speaker, video: video}
}

// Run produces a broadcast for one article: audio always, video when
// requested and configured. Video failure degrades to an audio-only
// result rather than failing the broadcast.
func (b *Broadcaster) Run(ctx context.Context, article *feed.Article, gender string, withVideo bool) (*Result, error) {
	if article.TTSText == "" {
		return nil, fmt.Errorf("article %q has no script", article.Title)
	}

	audioID := b.pool.Submit("tts", func(ctx context.Context) (string, error) {
		return b.speaker.Speak(ctx, article.TTSText, article.Language, gender)
	})
	audioPath, err := b.pool.Await(ctx, audioID)
	if err != nil {
		return nil, fmt.Errorf("audio generation: %w", err)
	}

	result := &Result{
		ID:        uuid.NewString(),
		Headline:  article.Headline,
		AudioPath: audioPath,
	}

	if withVideo && b.video != nil {
		videoID := b.pool.Submit("video", func(ctx context.Context) (string, error) {
			return b.video.Generate(ctx, audioPath, article.Language)
		})
		videoPath, err := b.pool.Await(ctx, videoID)
		if err != nil {
			logger.Warnf("[broadcast] video failed, delivering audio only: %v", err)
		} else {
			result.VideoPath = videoPath
		}
	}

	b.record(article, result)
	return result, nil
}

// SummaryAudio synthesizes a category roundup from headlines, e.g.
// "business news: <headline>. <headline>."
func (b *Broadcaster) SummaryAudio(ctx context.Context, category, language, gender string, headlines []string) (string, error) {
	if len(headlines) == 0 {
		return "", fmt.Errorf("no headlines to summarize")
	}

	label := category
	if language == "ur" {
		if urdu, ok := config.UrduCategoryNames[category]; ok {
			label = urdu
		}
	}
	script := label + " news: " + strings.Join(headlines, ". ") + "."
	if language == "ur" {
		script = label + ": " + strings.Join(headlines, "۔ ") + "۔"
	}

	audioID := b.pool.Submit("tts", func(ctx context.Context) (string, error) {
		return b.speaker.Speak(ctx, script, language, gender)
	})
	return b.pool.Await(ctx, audioID)
}

// record persists the broadcast row; storage failure only logs.
func (b *Broadcaster) record(article *feed.Article, r *Result) {
	if b.db == nil {
		return
	}
	_, err := b.db.Exec(
		`INSERT INTO broadcasts (id, category, language, headline, audio_path, video_path)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, article.Category, article.Language, r.Headline, r.AudioPath, r.VideoPath,
	)
	if err != nil {
		logger.Warnf("[broadcast] record failed: %v", err)
	}
}
