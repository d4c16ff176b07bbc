// Package extract pulls full article bodies from publisher pages.
package extract

import (
	"context"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/adnanqk/newsanchor/internal/logger"
	"github.com/adnanqk/newsanchor/internal/text"
)

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// containerSelectors are tried in order; the first match with enough
// text wins. News sites vary, so this starts specific and widens.
var containerSelectors = []string{
	"article",
	"div.story__content",
	"div.article-content",
	"div.entry-content",
	"div[itemprop=articleBody]",
	"main",
}

// minParagraphLen drops bylines, captions and share buttons.
const minParagraphLen = 40

// Extractor fetches and parses full article pages.
type Extractor struct {
	client *http.Client
	maxLen int
}

// New creates an Extractor. maxLen caps the returned body.
func New(timeoutSecs, maxLen int) *Extractor {
	return &Extractor{
		client: &http.Client{Timeout: time.Duration(timeoutSecs) * time.Second},
		maxLen: maxLen,
	}
}

// FullText fetches url and extracts the article body. Extraction is
// best-effort: any failure returns "" so callers fall back to the RSS
// summary.
func (e *Extractor) FullText(ctx context.Context, url string) string {
	if url == "" {
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		logger.Debugf("[extract] fetch %s: %v", url, err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Debugf("[extract] fetch %s: HTTP %d", url, resp.StatusCode)
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		logger.Debugf("[extract] parse %s: %v", url, err)
		return ""
	}

	body := ExtractBody(doc)
	if e.maxLen > 0 && utf8.RuneCountInString(body) > e.maxLen {
		body = text.SmartTruncate(body, e.maxLen)
	}
	return body
}

// ExtractBody walks the known article containers and joins their
// paragraphs. Returns "" when nothing substantial is found.
func ExtractBody(doc *goquery.Document) string {
	for _, sel := range containerSelectors {
		container := doc.Find(sel).First()
		if container.Length() == 0 {
			continue
		}
		if body := joinParagraphs(container); body != "" {
			return body
		}
	}
	// Last resort: every paragraph on the page.
	return joinParagraphs(doc.Selection)
}

func joinParagraphs(s *goquery.Selection) string {
	var parts []string
	s.Find("p").Each(func(_ int, p *goquery.Selection) {
		t := strings.TrimSpace(p.Text())
		if len(t) >= minParagraphLen {
			parts = append(parts, t)
		}
	})
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " ")
}
