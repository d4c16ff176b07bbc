package broadcast

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/adnanqk/newsanchor/internal/config"
	"github.com/adnanqk/newsanchor/internal/database"
	"github.com/adnanqk/newsanchor/internal/feed"
	"github.com/adnanqk/newsanchor/internal/worker"
)

type stubSpeaker struct {
	script string
	err    error
}

func (s *stubSpeaker) Speak(_ context.Context, script, _, _ string) (string, error) {
	s.script = script
	if s.err != nil {
		return "", s.err
	}
	return "/out/audio.mp3", nil
}

type stubVideo struct {
	err   error
	calls int
}

func (s *stubVideo) Generate(_ context.Context, audioPath, _ string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return "/out/video.mp4", nil
}

func testArticle() *feed.Article {
	return &feed.Article{
		Title:    "Assembly passes bill",
		Headline: "Assembly Passes Landmark Bill",
		TTSText:  "<speak>The assembly passed the bill.</speak>",
		Category: "general",
		Language: "en",
	}
}

func newBroadcaster(t *testing.T, speaker Speaker, video VideoGenerator, db *database.DB) *Broadcaster {
	t.Helper()
	pool := worker.NewPool(2, 300)
	t.Cleanup(pool.Shutdown)
	return New(&config.Config{}, db, pool, speaker, video)
}

func TestRunAudioAndVideo(t *testing.T) {
	speaker := &stubSpeaker{}
	video := &stubVideo{}
	b := newBroadcaster(t, speaker, video, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	r, err := b.Run(ctx, testArticle(), "male", true)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if r.AudioPath != "/out/audio.mp3" || r.VideoPath != "/out/video.mp4" {
		t.Errorf("result = %+v", r)
	}
	if r.ID == "" {
		t.Error("missing broadcast ID")
	}
	if speaker.script == "" {
		t.Error("speaker never called")
	}
}

func TestRunVideoFailureDegradesToAudio(t *testing.T) {
	b := newBroadcaster(t, &stubSpeaker{}, &stubVideo{err: errors.New("wav2lip crashed")}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	r, err := b.Run(ctx, testArticle(), "male", true)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if r.AudioPath == "" {
		t.Error("audio lost")
	}
	if r.VideoPath != "" {
		t.Error("video path set despite failure")
	}
}

func TestRunAudioFailureIsFatal(t *testing.T) {
	b := newBroadcaster(t, &stubSpeaker{err: errors.New("engine down")}, &stubVideo{}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := b.Run(ctx, testArticle(), "male", true); err == nil {
		t.Fatal("expected error when synthesis fails")
	}
}

func TestRunSkipsVideoWhenNotRequested(t *testing.T) {
	video := &stubVideo{}
	b := newBroadcaster(t, &stubSpeaker{}, video, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	r, err := b.Run(ctx, testArticle(), "male", false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if video.calls != 0 {
		t.Error("video generated without being requested")
	}
	if r.VideoPath != "" {
		t.Errorf("unexpected video path %q", r.VideoPath)
	}
}

func TestRunRejectsEmptyScript(t *testing.T) {
	b := newBroadcaster(t, &stubSpeaker{}, nil, nil)
	article := testArticle()
	article.TTSText = ""

	if _, err := b.Run(context.Background(), article, "male", false); err == nil {
		t.Fatal("expected error for empty script")
	}
}

func TestRunRecordsBroadcast(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	b := newBroadcaster(t, &stubSpeaker{}, nil, db)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := b.Run(ctx, testArticle(), "male", false); err != nil {
		t.Fatalf("Run: %v", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM broadcasts WHERE category = 'general'`).Scan(&count); err != nil {
		t.Fatalf("query: %v", err)
	}
	if count != 1 {
		t.Errorf("broadcast rows = %d", count)
	}
}

func TestSummaryAudio(t *testing.T) {
	speaker := &stubSpeaker{}
	b := newBroadcaster(t, speaker, nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	path, err := b.SummaryAudio(ctx, "business", "en", "female",
		[]string{"Rupee steadies against the dollar", "Exports rise for a third month"})
	if err != nil {
		t.Fatalf("SummaryAudio: %v", err)
	}
	if path == "" {
		t.Error("no audio path")
	}
	if !strings.HasPrefix(speaker.script, "business news: ") {
		t.Errorf("script = %q", speaker.script)
	}
	if !strings.Contains(speaker.script, "Exports rise") {
		t.Errorf("script missing headline: %q", speaker.script)
	}

	if _, err := b.SummaryAudio(ctx, "business", "en", "female", nil); err == nil {
		t.Fatal("expected error for empty headline list")
	}
}
