package news

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/adnanqk/newsanchor/internal/config"
	"github.com/adnanqk/newsanchor/internal/feed"
	"github.com/adnanqk/newsanchor/internal/llm"
)

type stubHarvester struct {
	articles []feed.Article
	err      error
	calls    int
}

func (s *stubHarvester) Harvest(context.Context, string, string) ([]feed.Article, error) {
	s.calls++
	return s.articles, s.err
}

type stubExtractor struct{ body string }

func (s *stubExtractor) FullText(context.Context, string) string { return s.body }

type stubEditor struct {
	result *llm.Result
	err    error
}

func (s *stubEditor) Process(context.Context, string, string) (*llm.Result, error) {
	return s.result, s.err
}

type stubHeadliner struct {
	articles []feed.Article
	err      error
}

func (s *stubHeadliner) TopHeadlines(context.Context, string, time.Duration) ([]feed.Article, error) {
	return s.articles, s.err
}

func pipelineConfig() *config.Config {
	cfg := &config.Config{}
	cfg.News.MaxArticles = 5
	cfg.News.MinArticleLength = 30
	cfg.News.AgeLimitHours = 48
	cfg.News.MaxDescriptionLength = 500
	cfg.News.MaxTTSLength = 10000
	return cfg
}

func rawArticle(title string) feed.Article {
	return feed.Article{
		Title:       title,
		Description: "The provincial assembly passed the bill after a lengthy debate on Tuesday.",
		URL:         "https://example.com/story",
		Source:      "Test Gazette",
		Category:    "general",
		Language:    "en",
		Published:   time.Now(),
	}
}

func TestArticlesEnrichesBatch(t *testing.T) {
	harvester := &stubHarvester{articles: []feed.Article{rawArticle("Assembly passes landmark provincial bill")}}
	editor := &stubEditor{result: &llm.Result{
		Cleaned:  "The assembly passed the bill.",
		Summary:  "The provincial assembly passed a landmark bill after debate.",
		Headline: "Assembly Passes Landmark Bill After Lengthy Debate",
		TTSText:  "<speak>The assembly passed the bill.<break time=\"500ms\"/></speak>",
	}}

	p := NewPipeline(pipelineConfig(), nil, harvester,
		&stubExtractor{body: "Full article body fetched from the publisher page for processing."},
		editor, nil)

	articles, err := p.Articles(context.Background(), "general", "en", false)
	if err != nil {
		t.Fatalf("Articles: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("got %d articles", len(articles))
	}

	a := articles[0]
	if a.Headline != "Assembly Passes Landmark Bill After Lengthy Debate" {
		t.Errorf("headline = %q", a.Headline)
	}
	if !strings.Contains(a.Description, "provincial assembly") {
		t.Errorf("description = %q", a.Description)
	}
	if !strings.HasPrefix(a.TTSText, "<speak>") {
		t.Errorf("English TTS script lost SSML: %q", a.TTSText)
	}
}

func TestArticlesUrduScriptStaysPlain(t *testing.T) {
	article := rawArticle("پاکستان میں نئی پالیسی کا اعلان")
	article.Language = "ur"
	article.Description = "حکومت پاکستان نے آج اسلام آباد میں نئی پالیسی کا اعلان کیا ہے۔"

	harvester := &stubHarvester{articles: []feed.Article{article}}
	editor := &stubEditor{result: &llm.Result{
		Summary:  "حکومت نے نئی پالیسی کا اعلان کیا۔",
		Headline: "حکومت پاکستان کی جانب سے نئی اقتصادی پالیسی کا باقاعدہ اعلان",
		TTSText:  "<speak>حکومت نے نئی پالیسی کا اعلان کیا۔</speak>",
	}}

	p := NewPipeline(pipelineConfig(), nil, harvester, nil, editor, nil)
	articles, err := p.Articles(context.Background(), "general", "ur", false)
	if err != nil {
		t.Fatalf("Articles: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("got %d articles", len(articles))
	}
	if strings.ContainsAny(articles[0].TTSText, "<>") {
		t.Errorf("Urdu script carries markup: %q", articles[0].TTSText)
	}
}

func TestArticlesSurvivesEditorFailure(t *testing.T) {
	harvester := &stubHarvester{articles: []feed.Article{rawArticle("Committee approves the annual development plan")}}
	editor := &stubEditor{err: errors.New("all models down")}

	p := NewPipeline(pipelineConfig(), nil, harvester, nil, editor, nil)
	articles, err := p.Articles(context.Background(), "general", "en", false)
	if err != nil {
		t.Fatalf("Articles: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("got %d articles", len(articles))
	}
	if articles[0].Headline == "" || articles[0].TTSText == "" {
		t.Errorf("fallback enrichment incomplete: %+v", articles[0])
	}
}

func TestArticlesMergesHeadlines(t *testing.T) {
	harvester := &stubHarvester{articles: []feed.Article{rawArticle("An RSS story about provincial development")}}
	extra := rawArticle("A NewsAPI exclusive about federal policy changes")
	headliner := &stubHeadliner{articles: []feed.Article{extra}}

	p := NewPipeline(pipelineConfig(), nil, harvester, nil, nil, headliner)
	articles, err := p.Articles(context.Background(), "general", "en", false)
	if err != nil {
		t.Fatalf("Articles: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("got %d articles", len(articles))
	}
	// Supplementary headlines lead the batch.
	if !strings.Contains(articles[0].Headline, "NewsAPI exclusive") {
		t.Errorf("first = %q", articles[0].Headline)
	}
}

func TestArticlesHeadlinerFailureIsNotFatal(t *testing.T) {
	harvester := &stubHarvester{articles: []feed.Article{rawArticle("An RSS story that stands on its own")}}
	headliner := &stubHeadliner{err: errors.New("quota exceeded")}

	p := NewPipeline(pipelineConfig(), nil, harvester, nil, nil, headliner)
	articles, err := p.Articles(context.Background(), "general", "en", false)
	if err != nil {
		t.Fatalf("Articles: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("got %d articles", len(articles))
	}
}

func TestArticlesDedupesAndCaps(t *testing.T) {
	var batch []feed.Article
	for i := 0; i < 8; i++ {
		batch = append(batch, rawArticle("A unique provincial development story "+strings.Repeat("x", i+1)))
	}
	batch = append(batch, rawArticle("A unique provincial development story x")) // duplicate

	p := NewPipeline(pipelineConfig(), nil, &stubHarvester{articles: batch}, nil, nil, nil)
	articles, err := p.Articles(context.Background(), "general", "en", false)
	if err != nil {
		t.Fatalf("Articles: %v", err)
	}
	if len(articles) != 5 {
		t.Errorf("got %d articles, want cap of 5", len(articles))
	}
}

func TestArticlesDropsShortHeadlines(t *testing.T) {
	long := rawArticle("Senate passes the finance amendment bill today")
	short := rawArticle("Brief note")
	harvester := &stubHarvester{articles: []feed.Article{long, short}}

	p := NewPipeline(pipelineConfig(), nil, harvester, nil, nil, nil)
	articles, err := p.Articles(context.Background(), "general", "en", false)
	if err != nil {
		t.Fatalf("Articles: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("got %d articles, want the short headline dropped", len(articles))
	}
	if !strings.Contains(articles[0].Headline, "Senate") {
		t.Errorf("wrong article survived: %q", articles[0].Headline)
	}
}

func TestArticlesRejectsUnknownCategory(t *testing.T) {
	p := NewPipeline(pipelineConfig(), nil, &stubHarvester{}, nil, nil, nil)
	if _, err := p.Articles(context.Background(), "celebrity", "en", false); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestModerate(t *testing.T) {
	articles := []feed.Article{
		rawArticle("A normal political story about the budget session"),
		{Title: "Online gambling ring busted in raid", Description: "gambling operation details", Language: "en", Published: time.Now()},
	}
	safe := Moderate(articles)
	if len(safe) != 1 {
		t.Fatalf("got %d safe articles", len(safe))
	}
	if strings.Contains(safe[0].Title, "gambling") {
		t.Error("prohibited article survived moderation")
	}
}

func TestFilterPakistani(t *testing.T) {
	articles := []feed.Article{
		{Title: "پاکستان میں بارشوں کی پیش گوئی", Source: "Some Blog"},
		{Title: "عالمی منڈی میں تیل کی قیمتیں", Source: "BBC Urdu"},
		{Title: "عالمی خبر جس کا خطے سے کوئی تعلق نہیں", Source: "Random Wire"},
	}
	filtered := FilterPakistani(articles)
	if len(filtered) != 2 {
		t.Fatalf("got %d filtered articles, want 2", len(filtered))
	}
}
