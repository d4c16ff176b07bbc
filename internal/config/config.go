// Package config loads and validates the newsanchor YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Valid news categories, in priority order.
var ValidCategories = []string{"general", "business", "sports", "technology"}

// UrduCategoryNames maps category IDs to their Urdu display names.
var UrduCategoryNames = map[string]string{
	"general":    "عمومی خبریں",
	"business":   "کاروبار",
	"sports":     "کھیل",
	"technology": "ٹیکنالوجی",
}

// CategoryKeywords helps classify borderline articles. An empty list
// means the category accepts everything.
var CategoryKeywords = map[string][]string{
	"general":    {},
	"business":   {"economy", "rupee", "PSX", "SBP", "investment", "trade", "CPEC"},
	"sports":     {"cricket", "Pakistan Cricket Board", "PCB", "PSL", "pak vs"},
	"technology": {"5G", "IT", "technology", "smartphone", "AI", "cybersecurity"},
}

// PakistaniKeywordsUrdu marks Urdu articles as Pakistani news.
var PakistaniKeywordsUrdu = []string{
	"پاکستان", "اسلام آباد", "کراچی", "لاہور",
	"پنجاب", "سندھ", "خیبر", "وفاق", "حکومت",
	"وزیراعظم", "صدر", "قومی اسمبلی",
}

// ProhibitedKeywords block articles from broadcast. Kept narrow so
// ordinary crime/politics reporting is not falsely rejected.
var ProhibitedKeywords = []string{
	"gambling", "adult", "pornography", "nudity", "sexual", "explicit",
}

// TextConstraint bounds a rendered text field for one language.
type TextConstraint struct {
	MaxChars     int
	MinLines     int
	MaxLines     int
	CharsPerLine int
}

// HeadlineConstraints holds per-language headline limits.
var HeadlineConstraints = map[string]TextConstraint{
	"en": {MaxChars: 90, MaxLines: 1},
	"ur": {MaxChars: 70, MaxLines: 1},
}

// DescriptionConstraints holds per-language description limits.
var DescriptionConstraints = map[string]TextConstraint{
	"en": {MinLines: 3, MaxLines: 5, CharsPerLine: 80},
	"ur": {MinLines: 3, MaxLines: 5, CharsPerLine: 60},
}

// Config is the top-level newsanchor configuration.
type Config struct {
	DataDir string        `yaml:"data_dir"`
	Log     LogConfig     `yaml:"log"`
	News    NewsConfig    `yaml:"news"`
	Feeds   FeedsConfig   `yaml:"feeds"`
	NewsAPI NewsAPIConfig `yaml:"newsapi"`
	LLM     LLMConfig     `yaml:"llm"`
	TTS     TTSConfig     `yaml:"tts"`
	Video   VideoConfig   `yaml:"video"`
	Cache   CacheConfig   `yaml:"cache"`
	Worker  WorkerConfig  `yaml:"worker"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// NewsConfig holds harvesting and text-processing limits.
type NewsConfig struct {
	// MaxArticles is the number of articles kept per category.
	MaxArticles int `yaml:"max_articles"`
	// MinArticleLength rejects stub headlines, in characters. Low
	// enough to accept short RSS snippets.
	MinArticleLength int `yaml:"min_article_length"`
	// AgeLimitHours drops articles older than this.
	AgeLimitHours int `yaml:"age_limit_hours"`
	// MaxDescriptionLength caps LLM input and summary text.
	MaxDescriptionLength int `yaml:"max_description_length"`
	// MaxTTSLength caps text sent to a TTS engine. Edge TTS handles
	// large inputs well, so this is generous.
	MaxTTSLength int `yaml:"max_tts_length"`
	// RequestTimeoutSecs bounds feed and article HTTP requests.
	RequestTimeoutSecs int `yaml:"request_timeout_secs"`
	// MaxFeedEntries is how many entries per feed are fully processed.
	MaxFeedEntries int `yaml:"max_feed_entries"`
}

// FeedsConfig maps category → feed URLs, per language.
type FeedsConfig struct {
	English map[string][]string `yaml:"english"`
	Urdu    map[string][]string `yaml:"urdu"`
}

// NewsAPIConfig enables the optional NewsAPI headline source.
type NewsAPIConfig struct {
	APIKey string `yaml:"api_key"`
}

// LLMConfig holds the editorial model chain.
type LLMConfig struct {
	// Models are tried in order; the pipeline falls through to the
	// next entry on quota or availability errors.
	Models []ModelConfig `yaml:"models"`
	// SummaryMaxWords bounds generated summaries.
	SummaryMaxWords int `yaml:"summary_max_words"`
}

// ModelConfig describes one OpenAI-compatible endpoint.
type ModelConfig struct {
	Name   string `yaml:"name"`
	APIURL string `yaml:"api_url"`
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// TTSConfig holds per-language synthesis settings.
type TTSConfig struct {
	English EdgeConfig `yaml:"english"`
	Urdu    GTTSConfig `yaml:"urdu"`
}

// EdgeConfig configures the Edge TTS engine used for English.
type EdgeConfig struct {
	Voice       string `yaml:"voice"`
	FemaleVoice string `yaml:"female_voice"`
}

// GTTSConfig configures the Google Translate TTS engine used for Urdu.
type GTTSConfig struct {
	Lang              string `yaml:"lang"`
	TLD               string `yaml:"tld"`
	Slow              bool   `yaml:"slow"`
	RequestsPerMinute int    `yaml:"requests_per_minute"`
}

// VideoConfig configures the Wav2Lip runner.
type VideoConfig struct {
	// Wav2LipDir is the checkout of the Wav2Lip repository.
	Wav2LipDir string `yaml:"wav2lip_dir"`
	// PythonBin runs inference.py.
	PythonBin string `yaml:"python_bin"`
	// Avatars maps language → anchor image path.
	Avatars map[string]string `yaml:"avatars"`
	// TimeoutSecs is the audio duration budget; the subprocess gets
	// three times this.
	TimeoutSecs int `yaml:"timeout_secs"`
}

// CacheConfig holds article cache settings.
type CacheConfig struct {
	TTLSecs int `yaml:"ttl_secs"`
}

// WorkerConfig holds async processor settings.
type WorkerConfig struct {
	// MaxConcurrent bounds simultaneous synthesis/video tasks.
	MaxConcurrent int `yaml:"max_concurrent"`
	// RetainSecs keeps finished task records queryable.
	RetainSecs int `yaml:"retain_secs"`
}

// Load reads a YAML config file. ${VAR_NAME} references are expanded
// from the environment before parsing.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	expanded := os.Expand(string(data), func(key string) string {
		return os.Getenv(key)
	})

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	setDefaults(cfg)
	return cfg, nil
}

// Default returns a configuration built entirely from defaults, for
// running without a config file.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

// setDefaults fills unset fields.
func setDefaults(cfg *Config) {
	if cfg.DataDir == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			cfg.DataDir = filepath.Join(home, ".newsanchor")
		} else {
			cfg.DataDir = "./.newsanchor-data"
		}
	} else if strings.HasPrefix(cfg.DataDir, "~/") {
		// Go does not expand ~ itself.
		home, _ := os.UserHomeDir()
		if home != "" {
			cfg.DataDir = home + cfg.DataDir[1:]
		}
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	if cfg.News.MaxArticles == 0 {
		cfg.News.MaxArticles = 5
	}
	if cfg.News.MinArticleLength == 0 {
		cfg.News.MinArticleLength = 30
	}
	if cfg.News.AgeLimitHours == 0 {
		cfg.News.AgeLimitHours = 48
	}
	if cfg.News.MaxDescriptionLength == 0 {
		cfg.News.MaxDescriptionLength = 500
	}
	if cfg.News.MaxTTSLength == 0 {
		cfg.News.MaxTTSLength = 10000
	}
	if cfg.News.RequestTimeoutSecs == 0 {
		cfg.News.RequestTimeoutSecs = 20
	}
	if cfg.News.MaxFeedEntries == 0 {
		cfg.News.MaxFeedEntries = 5
	}

	if len(cfg.Feeds.English) == 0 {
		cfg.Feeds.English = defaultEnglishFeeds
	}
	if len(cfg.Feeds.Urdu) == 0 {
		cfg.Feeds.Urdu = defaultUrduFeeds
	}

	if cfg.LLM.SummaryMaxWords == 0 {
		cfg.LLM.SummaryMaxWords = 150
	}
	for i := range cfg.LLM.Models {
		cfg.LLM.Models[i].APIKey = strings.TrimSpace(cfg.LLM.Models[i].APIKey)
	}

	if cfg.TTS.English.Voice == "" {
		cfg.TTS.English.Voice = "en-GB-RyanNeural"
	}
	if cfg.TTS.English.FemaleVoice == "" {
		cfg.TTS.English.FemaleVoice = "en-GB-LibbyNeural"
	}
	if cfg.TTS.Urdu.Lang == "" {
		cfg.TTS.Urdu.Lang = "ur"
	}
	if cfg.TTS.Urdu.TLD == "" {
		cfg.TTS.Urdu.TLD = "com.pk"
	}
	if cfg.TTS.Urdu.RequestsPerMinute == 0 {
		cfg.TTS.Urdu.RequestsPerMinute = 50
	}

	if cfg.Video.Wav2LipDir == "" {
		cfg.Video.Wav2LipDir = "Wav2Lip"
	}
	if cfg.Video.PythonBin == "" {
		cfg.Video.PythonBin = "python"
	}
	if cfg.Video.TimeoutSecs == 0 {
		cfg.Video.TimeoutSecs = 60
	}
	if len(cfg.Video.Avatars) == 0 {
		cfg.Video.Avatars = map[string]string{
			"en": filepath.Join(cfg.DataDir, "avatars", "auto_anchor_en.png"),
			"ur": filepath.Join(cfg.DataDir, "avatars", "auto_anchor_ur.png"),
		}
	}

	if cfg.Cache.TTLSecs == 0 {
		cfg.Cache.TTLSecs = 600
	}

	if cfg.Worker.MaxConcurrent == 0 {
		cfg.Worker.MaxConcurrent = 2
	}
	if cfg.Worker.RetainSecs == 0 {
		cfg.Worker.RetainSecs = 300
	}
}

// OutputDir returns the directory for generated artifacts.
func (c *Config) OutputDir() string {
	return filepath.Join(c.DataDir, "outputs")
}

// AudioDir returns the directory for synthesized audio.
func (c *Config) AudioDir() string {
	return filepath.Join(c.OutputDir(), "audio")
}

// VideoDir returns the directory for generated videos.
func (c *Config) VideoDir() string {
	return filepath.Join(c.OutputDir(), "video")
}

// SetupDirectories creates the data, output and avatar directories.
func (c *Config) SetupDirectories() error {
	dirs := []string{
		c.DataDir,
		c.AudioDir(),
		c.VideoDir(),
		filepath.Join(c.DataDir, "avatars"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", d, err)
		}
	}
	return nil
}

// ValidCategory reports whether category is one of the known categories.
func ValidCategory(category string) bool {
	for _, c := range ValidCategories {
		if c == category {
			return true
		}
	}
	return false
}

// ValidateTextLength checks text against a length window, counted in
// runes so Urdu script is not penalized for its UTF-8 width. The
// effective maximum is the larger of max and the configured TTS limit,
// so strict caller limits never reject text the engines can handle.
func (c *Config) ValidateTextLength(text string, min, max int) bool {
	if text == "" {
		return false
	}
	if min <= 0 {
		min = c.News.MinArticleLength
	}
	effectiveMax := c.News.MaxTTSLength
	if max > effectiveMax {
		effectiveMax = max
	}

	n := utf8.RuneCountInString(strings.TrimSpace(text))
	return n >= min && n <= effectiveMax
}

// IsContentSafe reports whether text passes the moderation keyword list.
func IsContentSafe(text string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, kw := range ProhibitedKeywords {
		if strings.Contains(lower, kw) {
			return false
		}
	}
	return true
}
