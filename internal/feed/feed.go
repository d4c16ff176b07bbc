// Package feed harvests articles from RSS feeds.
package feed

import "time"

// Article is one news story moving through the pipeline. Harvesting
// fills the source fields; editorial processing fills the rest.
type Article struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Summary     string    `json:"summary"`
	Headline    string    `json:"headline"`
	TTSText     string    `json:"tts_text"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	Category    string    `json:"category"`
	Language    string    `json:"language"`
	Published   time.Time `json:"published"`
}

// Age returns how long ago the article was published.
func (a *Article) Age() time.Duration {
	if a.Published.IsZero() {
		return 0
	}
	return time.Since(a.Published)
}
