package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adnanqk/newsanchor/internal/broadcast"
	"github.com/adnanqk/newsanchor/internal/cache"
	"github.com/adnanqk/newsanchor/internal/config"
	"github.com/adnanqk/newsanchor/internal/database"
	"github.com/adnanqk/newsanchor/internal/extract"
	"github.com/adnanqk/newsanchor/internal/feed"
	"github.com/adnanqk/newsanchor/internal/llm"
	"github.com/adnanqk/newsanchor/internal/logger"
	"github.com/adnanqk/newsanchor/internal/news"
	"github.com/adnanqk/newsanchor/internal/tts"
	"github.com/adnanqk/newsanchor/internal/video"
	"github.com/adnanqk/newsanchor/internal/worker"
)

// commandContext carries lazily-built shared state across commands.
type commandContext struct {
	configFlag *string

	cfg  *config.Config
	db   *database.DB
	pool *worker.Pool
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

// ensureConfig loads configuration (flag, environment, well-known
// paths, or pure defaults) and initializes logging and directories.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}

	path := c.findConfigPath()
	var cfg *config.Config
	var err error
	if path != "" {
		cfg, err = config.Load(path)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = config.Default()
	}

	if err := logger.Init(logger.Config{
		Level: cfg.Log.Level,
		File:  cfg.Log.File,
	}); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	if err := cfg.SetupDirectories(); err != nil {
		return nil, err
	}

	c.cfg = cfg
	return cfg, nil
}

func (c *commandContext) findConfigPath() string {
	candidates := []string{}
	if c.configFlag != nil && *c.configFlag != "" {
		return *c.configFlag
	}
	if env := os.Getenv("NEWSANCHOR_CONFIG"); env != "" {
		return env
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".newsanchor", "config.yaml"))
	}
	candidates = append(candidates, filepath.Join("configs", "newsanchor.yaml"))

	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// openDB opens the shared database and runs migrations.
func (c *commandContext) openDB() (*database.DB, error) {
	if c.db != nil {
		return c.db, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	db, err := database.Open(filepath.Join(cfg.DataDir, "newsanchor.db"))
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}
	c.db = db
	return db, nil
}

// workerPool returns the shared bounded pool.
func (c *commandContext) workerPool() (*worker.Pool, error) {
	if c.pool != nil {
		return c.pool, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	c.pool = worker.NewPool(cfg.Worker.MaxConcurrent, cfg.Worker.RetainSecs)
	return c.pool, nil
}

// newsPipeline assembles the full article pipeline.
func (c *commandContext) newsPipeline() (*news.Pipeline, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	db, err := c.openDB()
	if err != nil {
		return nil, err
	}

	store := cache.NewStore(db, cfg.Cache.TTLSecs)
	fetcher := feed.NewFetcher(cfg)
	extractor := extract.New(cfg.News.RequestTimeoutSecs, cfg.News.MaxDescriptionLength)

	var editor news.Editor
	if len(cfg.LLM.Models) > 0 {
		multi, err := llm.NewMultiProvider(cfg.LLM.Models)
		if err != nil {
			return nil, err
		}
		editor = llm.NewProcessor(multi, cfg.LLM.SummaryMaxWords)
	}

	var headlines news.Headliner
	if client := news.NewNewsAPIClient(cfg.NewsAPI.APIKey, cfg.News.RequestTimeoutSecs); client != nil {
		headlines = client
	}

	return news.NewPipeline(cfg, store, fetcher, extractor, editor, headlines), nil
}

// broadcaster assembles the audio+video orchestrator.
func (c *commandContext) broadcaster() (*broadcast.Broadcaster, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	db, err := c.openDB()
	if err != nil {
		return nil, err
	}
	pool, err := c.workerPool()
	if err != nil {
		return nil, err
	}
	return broadcast.New(cfg, db, pool, tts.NewRouter(cfg), video.NewRunner(cfg)), nil
}

// indent prefixes every line of s.
func indent(s, prefix string) string {
	return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
}

// close releases shared resources at the end of a command.
func (c *commandContext) close() {
	if c.pool != nil {
		c.pool.Shutdown()
	}
	if c.db != nil {
		c.db.Close()
	}
	logger.Sync()
}
