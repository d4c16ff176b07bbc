package feed

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mmcdole/gofeed"

	"github.com/adnanqk/newsanchor/internal/config"
	"github.com/adnanqk/newsanchor/internal/logger"
	"github.com/adnanqk/newsanchor/internal/text"
)

// Some Pakistani outlets reject default Go user agents, so requests go
// out looking like a desktop browser.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Fetcher harvests articles from the configured RSS feeds.
type Fetcher struct {
	cfg    *config.Config
	parser *gofeed.Parser
	client *http.Client
}

// NewFetcher creates a feed harvester.
func NewFetcher(cfg *config.Config) *Fetcher {
	client := &http.Client{
		Timeout: time.Duration(cfg.News.RequestTimeoutSecs) * time.Second,
	}
	parser := gofeed.NewParser()
	parser.Client = client
	parser.UserAgent = browserUserAgent

	return &Fetcher{
		cfg:    cfg,
		parser: parser,
		client: client,
	}
}

// Harvest fetches articles for a category in the given language. A
// failing feed is logged and skipped; the harvest only errors when no
// feeds are configured for the category. Results are sorted newest
// first.
func (f *Fetcher) Harvest(ctx context.Context, category, language string) ([]Article, error) {
	urls := f.feedURLs(category, language)
	if len(urls) == 0 {
		return nil, fmt.Errorf("no feeds configured for category %q language %q", category, language)
	}

	cutoff := time.Now().Add(-time.Duration(f.cfg.News.AgeLimitHours) * time.Hour)

	var articles []Article
	for _, url := range urls {
		items, err := f.harvestFeed(ctx, url, category, language, cutoff)
		if err != nil {
			logger.Warnf("[feed] fetch %s failed: %v", url, err)
			continue
		}
		articles = append(articles, items...)
	}

	sort.Slice(articles, func(i, j int) bool {
		return articles[i].Published.After(articles[j].Published)
	})

	logger.Infof("[feed] harvested %d %s/%s articles from %d feeds",
		len(articles), category, language, len(urls))
	return articles, nil
}

func (f *Fetcher) feedURLs(category, language string) []string {
	if language == "ur" {
		return f.cfg.Feeds.Urdu[category]
	}
	return f.cfg.Feeds.English[category]
}

// harvestFeed pulls one feed and converts its fresh entries. Each feed
// contributes at most MaxFeedEntries articles so a single busy outlet
// cannot crowd out the rest.
func (f *Fetcher) harvestFeed(ctx context.Context, url, category, language string, cutoff time.Time) ([]Article, error) {
	parsed, err := f.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, err
	}

	source := strings.TrimSpace(parsed.Title)
	if source == "" {
		source = url
	}

	var articles []Article
	for _, item := range parsed.Items {
		if len(articles) >= f.cfg.News.MaxFeedEntries {
			break
		}

		article, ok := f.convertItem(item, source, category, language, cutoff)
		if !ok {
			continue
		}
		articles = append(articles, article)
	}
	return articles, nil
}

// convertItem turns one feed entry into an Article, rejecting stale and
// stub entries.
func (f *Fetcher) convertItem(item *gofeed.Item, source, category, language string, cutoff time.Time) (Article, bool) {
	title := strings.TrimSpace(text.StripHTML(item.Title))
	if title == "" {
		return Article{}, false
	}

	published := time.Now()
	if item.PublishedParsed != nil {
		published = *item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		published = *item.UpdatedParsed
	}
	if published.Before(cutoff) {
		return Article{}, false
	}

	body := item.Description
	if body == "" {
		body = item.Content
	}
	body = text.StripHTML(body)

	combined := title + " " + body
	if utf8.RuneCountInString(strings.TrimSpace(combined)) < f.cfg.News.MinArticleLength {
		return Article{}, false
	}

	if max := f.cfg.News.MaxDescriptionLength; utf8.RuneCountInString(body) > max {
		body = text.SmartTruncate(body, max)
	}

	return Article{
		Title:       title,
		Description: body,
		URL:         item.Link,
		Source:      source,
		Category:    category,
		Language:    language,
		Published:   published,
	}, true
}
