// Package news assembles broadcast-ready article batches: harvest,
// editorial processing, moderation and caching.
package news

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/adnanqk/newsanchor/internal/cache"
	"github.com/adnanqk/newsanchor/internal/config"
	"github.com/adnanqk/newsanchor/internal/feed"
	"github.com/adnanqk/newsanchor/internal/llm"
	"github.com/adnanqk/newsanchor/internal/logger"
	"github.com/adnanqk/newsanchor/internal/text"
)

// Harvester pulls raw articles from feeds.
type Harvester interface {
	Harvest(ctx context.Context, category, language string) ([]feed.Article, error)
}

// Extractor fetches full article bodies, best-effort.
type Extractor interface {
	FullText(ctx context.Context, url string) string
}

// Editor cleans and summarizes article text.
type Editor interface {
	Process(ctx context.Context, articleText, language string) (*llm.Result, error)
}

// Headliner supplies supplementary English headlines.
type Headliner interface {
	TopHeadlines(ctx context.Context, category string, maxAge time.Duration) ([]feed.Article, error)
}

// Pipeline produces the final article batch for one category+language.
type Pipeline struct {
	cfg       *config.Config
	store     *cache.Store
	harvester Harvester
	extractor Extractor
	editor    Editor
	headlines Headliner // nil when NewsAPI is not configured
}

// NewPipeline wires a Pipeline. headlines may be nil.
func NewPipeline(cfg *config.Config, store *cache.Store, harvester Harvester,
	extractor Extractor, editor Editor, headlines Headliner) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		store:     store,
		harvester: harvester,
		extractor: extractor,
		editor:    editor,
		headlines: headlines,
	}
}

// Articles returns the processed batch for a category+language. Cached
// batches are served inside the TTL unless refresh forces a new
// harvest.
func (p *Pipeline) Articles(ctx context.Context, category, language string, refresh bool) ([]feed.Article, error) {
	if !config.ValidCategory(category) {
		return nil, fmt.Errorf("unknown category %q", category)
	}

	if !refresh && p.store != nil {
		if cached, ok := p.store.Get(category, language); ok {
			return cached, nil
		}
	}

	articles, err := p.harvester.Harvest(ctx, category, language)
	if err != nil {
		return nil, err
	}

	if language == "en" && p.headlines != nil {
		maxAge := time.Duration(p.cfg.News.AgeLimitHours) * time.Hour
		extra, err := p.headlines.TopHeadlines(ctx, category, maxAge)
		if err != nil {
			// Supplementary source only; RSS results stand alone.
			logger.Warnf("[news] newsapi unavailable: %v", err)
		} else {
			articles = append(extra, articles...)
		}
	}

	articles = Moderate(articles)
	if language == "ur" {
		articles = FilterPakistani(articles)
	}
	articles = dedupeByTitle(articles)

	if len(articles) > p.cfg.News.MaxArticles {
		articles = articles[:p.cfg.News.MaxArticles]
	}

	kept := articles[:0]
	for i := range articles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p.enrich(ctx, &articles[i])
		// The formatted headline is what readers and the anchor get;
		// stubs that survive harvest are dropped here.
		if utf8.RuneCountInString(articles[i].Headline) < p.cfg.News.MinArticleLength {
			logger.Debugf("[news] dropping %q: headline under %d chars",
				articles[i].Title, p.cfg.News.MinArticleLength)
			continue
		}
		kept = append(kept, articles[i])
	}
	articles = kept

	if p.store != nil {
		if err := p.store.Put(category, language, articles); err != nil {
			logger.Warnf("[news] cache write failed: %v", err)
		}
	}

	logger.Infof("[news] %s/%s batch ready: %d articles", category, language, len(articles))
	return articles, nil
}

// enrich upgrades one article in place: full body where available,
// editorial cleanup, formatted headline and description, TTS script.
// Failures degrade to the RSS snippet rather than dropping the story.
func (p *Pipeline) enrich(ctx context.Context, a *feed.Article) {
	body := a.Description
	if p.extractor != nil && a.URL != "" {
		if full := p.extractor.FullText(ctx, a.URL); full != "" {
			body = full
		}
	}

	source := a.Title + ". " + body

	var result *llm.Result
	if p.editor != nil {
		var err error
		result, err = p.editor.Process(ctx, source, a.Language)
		if err != nil {
			logger.Warnf("[news] editorial processing failed for %q: %v", a.Title, err)
		}
	}
	if result == nil {
		result = llm.Fallback(source)
	}

	headline := result.Headline
	if headline == "" {
		headline = a.Title
	}
	a.Headline = text.FormatHeadline(headline, a.Language)

	summary := result.Summary
	if summary == "" {
		summary = body
	}
	a.Summary = summary
	a.Description = text.FormatDescription(summary, a.Language)

	script := result.TTSText
	if script == "" {
		script = a.Headline + ". " + summary
	}
	if a.Language == "en" && text.ContainsMarkup(script) {
		// The editor already placed its own breaks; keep them.
		a.TTSText = text.CleanSSML(text.SmartTruncate(script, p.cfg.News.MaxTTSLength))
	} else {
		a.TTSText = text.PrepareForTTS(script, a.Language, p.cfg.News.MaxTTSLength)
	}
}
