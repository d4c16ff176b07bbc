package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/adnanqk/newsanchor/internal/feed"
	"github.com/adnanqk/newsanchor/internal/logger"
	"github.com/adnanqk/newsanchor/internal/text"
)

const defaultNewsAPIBase = "https://newsapi.org/v2"

// Pakistani outlets indexed by NewsAPI.
const newsAPISources = "the-news-international,geo-news,dawn-news"

// NewsAPIClient pulls English top headlines as a supplement to RSS.
// The free tier only covers English, so Urdu stays RSS-only.
type NewsAPIClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewNewsAPIClient creates a client. Returns nil when no key is
// configured, which callers treat as "feature off".
func NewNewsAPIClient(apiKey string, timeoutSecs int) *NewsAPIClient {
	if apiKey == "" {
		return nil
	}
	return &NewsAPIClient{
		apiKey:  apiKey,
		baseURL: defaultNewsAPIBase,
		client:  &http.Client{Timeout: time.Duration(timeoutSecs) * time.Second},
	}
}

type newsAPIResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string    `json:"title"`
		Description string    `json:"description"`
		URL         string    `json:"url"`
		PublishedAt time.Time `json:"publishedAt"`
	} `json:"articles"`
}

// TopHeadlines fetches recent headlines for a category. The general
// category queries "pakistan" since NewsAPI has no such category for
// these sources.
func (c *NewsAPIClient) TopHeadlines(ctx context.Context, category string, maxAge time.Duration) ([]feed.Article, error) {
	query := category
	if category == "general" {
		query = "pakistan"
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("sources", newsAPISources)
	params.Set("pageSize", "30")
	params.Set("language", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/top-headlines?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi: HTTP %d", resp.StatusCode)
	}

	var decoded newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("newsapi: decode: %w", err)
	}
	if decoded.Status != "ok" {
		return nil, fmt.Errorf("newsapi: status %q", decoded.Status)
	}

	cutoff := time.Now().Add(-maxAge)
	var articles []feed.Article
	for _, a := range decoded.Articles {
		if a.Title == "" || a.PublishedAt.Before(cutoff) {
			continue
		}
		source := a.Source.Name
		if source == "" {
			source = "NewsAPI"
		}
		articles = append(articles, feed.Article{
			Title:       text.StripHTML(a.Title),
			Description: text.StripHTML(a.Description),
			URL:         a.URL,
			Source:      source,
			Category:    category,
			Language:    "en",
			Published:   a.PublishedAt,
		})
	}

	logger.Debugf("[news] newsapi returned %d fresh %s headlines", len(articles), category)
	return articles, nil
}
