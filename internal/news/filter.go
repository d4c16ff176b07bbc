package news

import (
	"strings"

	"github.com/adnanqk/newsanchor/internal/config"
	"github.com/adnanqk/newsanchor/internal/feed"
	"github.com/adnanqk/newsanchor/internal/logger"
)

// Urdu outlets whose feeds are trusted as Pakistani coverage even when
// no keyword matches (BBC Urdu also covers the wider region).
var trustedUrduSources = map[string]bool{
	"bbc urdu":     true,
	"express news": true,
	"geo news":     true,
}

// FilterPakistani keeps Urdu articles that mention Pakistan or come
// from a trusted Pakistani outlet.
func FilterPakistani(articles []feed.Article) []feed.Article {
	var filtered []feed.Article
	for _, a := range articles {
		if isPakistani(&a) {
			filtered = append(filtered, a)
		}
	}
	logger.Debugf("[news] filtered %d/%d Pakistani articles", len(filtered), len(articles))
	return filtered
}

func isPakistani(a *feed.Article) bool {
	haystack := a.Title + " " + a.Description
	for _, kw := range config.PakistaniKeywordsUrdu {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return trustedUrduSources[strings.ToLower(a.Source)]
}

// Moderate drops articles that fail the content safety check.
func Moderate(articles []feed.Article) []feed.Article {
	var safe []feed.Article
	for _, a := range articles {
		if config.IsContentSafe(a.Title + " " + a.Description) {
			safe = append(safe, a)
		} else {
			logger.Infof("[news] moderation dropped %q", a.Title)
		}
	}
	return safe
}

// dedupeByTitle keeps the first article for each title.
func dedupeByTitle(articles []feed.Article) []feed.Article {
	seen := make(map[string]bool, len(articles))
	var unique []feed.Article
	for _, a := range articles {
		key := strings.ToLower(strings.TrimSpace(a.Title))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, a)
	}
	return unique
}
