package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/adnanqk/newsanchor/internal/logger"
	"github.com/adnanqk/newsanchor/internal/text"
)

const systemPrompt = "You are an expert news editor and content processor. " +
	"Output ONLY valid JSON, no additional text."

var promoRe = regexp.MustCompile(`(?i)(Read more|Click here|Subscribe|Follow us).*`)

// Processor turns raw article text into broadcast-ready editorial
// output via the model chain.
type Processor struct {
	provider        Provider
	summaryMaxWords int
}

// NewProcessor creates a Processor on top of a provider (usually a
// MultiProvider).
func NewProcessor(provider Provider, summaryMaxWords int) *Processor {
	if summaryMaxWords <= 0 {
		summaryMaxWords = 150
	}
	return &Processor{provider: provider, summaryMaxWords: summaryMaxWords}
}

// Process cleans and summarizes article text. English results carry
// SSML in TTSText; Urdu results never do, because Google Translate TTS
// reads markup aloud. On model failure the regex fallback keeps the
// pipeline moving.
func (p *Processor) Process(ctx context.Context, articleText, language string) (*Result, error) {
	if strings.TrimSpace(articleText) == "" {
		return nil, fmt.Errorf("empty article text")
	}

	var prompt string
	if language == "ur" {
		prompt = buildUrduPrompt(articleText, p.summaryMaxWords)
	} else {
		prompt = buildEnglishPrompt(articleText, p.summaryMaxWords)
	}

	raw, err := p.provider.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger.Warnf("[llm] processing failed, using fallback: %v", err)
		return Fallback(articleText), nil
	}

	result, err := parseResult(raw)
	if err != nil {
		logger.Warnf("[llm] unparseable response, using fallback: %v", err)
		return Fallback(articleText), nil
	}

	finish(result, articleText, language)
	logger.Debugf("[llm] processed %d -> %d chars via %s",
		len(articleText), len(result.Summary), p.provider.Name())
	return result, nil
}

// parseResult decodes the model's JSON, tolerating code fences.
func parseResult(raw string) (*Result, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	result := &Result{}
	if err := json.Unmarshal([]byte(raw), result); err != nil {
		return nil, err
	}
	if result.Cleaned == "" && result.Summary == "" && result.TTSText == "" {
		return nil, fmt.Errorf("response carries no usable fields")
	}
	return result, nil
}

// finish backfills missing fields and enforces the per-language markup
// rule on the TTS script.
func finish(r *Result, original, language string) {
	if r.Cleaned == "" {
		r.Cleaned = strings.TrimSpace(original)
	}
	if r.Summary == "" {
		r.Summary = firstSentences(r.Cleaned, 2)
	}
	if r.Headline == "" {
		r.Headline = firstSentenceHeadline(r.Cleaned)
	}
	if r.TTSText == "" {
		r.TTSText = r.Summary
	}

	if language == "ur" {
		// Urdu scripts must be plain text.
		if text.ContainsMarkup(r.TTSText) {
			r.TTSText = text.StripSSML(r.TTSText)
		}
		return
	}

	if strings.Contains(r.TTSText, "<speak>") || text.ContainsMarkup(r.TTSText) {
		r.TTSText = text.CleanSSML(r.TTSText)
	}
}

// Fallback does basic regex cleanup when every model is down: strip
// promotional tails, first two sentences as summary, first sentence as
// headline.
func Fallback(articleText string) *Result {
	cleaned := strings.TrimSpace(promoRe.ReplaceAllString(articleText, ""))
	if r := []rune(cleaned); len(r) > 500 {
		cleaned = string(r[:500])
	}

	summary := firstSentences(cleaned, 2)
	return &Result{
		Cleaned:  cleaned,
		Summary:  summary,
		Headline: firstSentenceHeadline(cleaned),
		TTSText:  summary,
	}
}

var sentenceSplitRe = regexp.MustCompile(`[.!?؟۔]+`)

func firstSentences(s string, n int) string {
	parts := sentenceSplitRe.Split(s, -1)
	var kept []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		kept = append(kept, p)
		if len(kept) == n {
			break
		}
	}
	if len(kept) == 0 {
		return s
	}
	return strings.Join(kept, ". ") + "."
}

func firstSentenceHeadline(s string) string {
	parts := sentenceSplitRe.Split(s, -1)
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if r := []rune(p); len(r) > 80 {
			p = string(r[:80])
		}
		return p
	}
	return "News Update"
}

func buildEnglishPrompt(articleText string, maxWords int) string {
	return fmt.Sprintf(`Process this news article and return ONLY a JSON object with these exact fields:

ARTICLE TEXT:
%s

Return JSON with:
1. "cleaned": Remove ads, spam, "Read more", social media prompts, etc. Keep only news content.
2. "summary": Concise %d-word summary suitable for news broadcast. Focus on: Who, What, When, Where, Why.
3. "headline": Engaging 8-12 word headline
4. "tts_text": News broadcast script with SSML breaks (should sound natural when spoken)

- Add natural SSML breaks for news broadcast:
  * <break time="300ms"/> after introductory phrases
  * <break time="500ms"/> between major sentences
  * Wrap everything in <speak></speak> tags
  * Use ONLY straight quotes ("), not curly quotes

Output ONLY the JSON, no other text.`, articleText, maxWords)
}

func buildUrduPrompt(articleText string, maxWords int) string {
	return fmt.Sprintf(`Process this Urdu news article and return ONLY a JSON object:

ARTICLE TEXT (URDU):
%s

Return JSON with:
1. "cleaned": اشتہارات اور spam ہٹائیں، صرف خبر رکھیں
2. "summary": %d الفاظ میں خلاصہ
3. "headline": 8-12 الفاظ میں سرخی
4. "tts_text": نیوز براڈکاسٹ کے لیے متن (plain text only, NO SSML or markup of any kind)

Output ONLY the JSON, no other text.`, articleText, maxWords)
}
