// Package cache stores harvested article batches with a TTL, so
// repeated broadcast requests inside the window skip the network.
package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/adnanqk/newsanchor/internal/database"
	"github.com/adnanqk/newsanchor/internal/feed"
	"github.com/adnanqk/newsanchor/internal/logger"
)

// Store is the article cache, one batch per category+language.
type Store struct {
	db  *database.DB
	ttl time.Duration
}

// NewStore creates a Store. ttlSecs <= 0 falls back to ten minutes.
func NewStore(db *database.DB, ttlSecs int) *Store {
	ttl := 10 * time.Minute
	if ttlSecs > 0 {
		ttl = time.Duration(ttlSecs) * time.Second
	}
	return &Store{db: db, ttl: ttl}
}

// Get returns the cached batch, or (nil, false) on a miss or expired
// entry. Expired rows are removed on read.
func (s *Store) Get(category, language string) ([]feed.Article, bool) {
	var payload string
	var cachedAt time.Time
	err := s.db.QueryRow(
		`SELECT articles, cached_at FROM article_cache WHERE category = ? AND language = ?`,
		category, language,
	).Scan(&payload, &cachedAt)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		logger.Warnf("[cache] read %s/%s: %v", category, language, err)
		return nil, false
	}

	if time.Since(cachedAt) > s.ttl {
		s.Clear(category, language)
		return nil, false
	}

	var articles []feed.Article
	if err := json.Unmarshal([]byte(payload), &articles); err != nil {
		logger.Warnf("[cache] corrupt entry %s/%s, dropping: %v", category, language, err)
		s.Clear(category, language)
		return nil, false
	}

	logger.Debugf("[cache] hit %s/%s (%d articles, age %s)",
		category, language, len(articles), time.Since(cachedAt).Round(time.Second))
	return articles, true
}

// Put stores a batch, replacing any previous entry.
func (s *Store) Put(category, language string, articles []feed.Article) error {
	payload, err := json.Marshal(articles)
	if err != nil {
		return fmt.Errorf("encode articles: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO article_cache (category, language, articles, cached_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(category, language) DO UPDATE SET
		   articles = excluded.articles, cached_at = excluded.cached_at`,
		category, language, string(payload), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("store articles: %w", err)
	}
	return nil
}

// Clear drops one entry.
func (s *Store) Clear(category, language string) {
	if _, err := s.db.Exec(
		`DELETE FROM article_cache WHERE category = ? AND language = ?`,
		category, language,
	); err != nil {
		logger.Warnf("[cache] clear %s/%s: %v", category, language, err)
	}
}

// ClearAll drops every entry.
func (s *Store) ClearAll() error {
	_, err := s.db.Exec(`DELETE FROM article_cache`)
	return err
}

// ClearExpired drops entries older than the TTL and returns how many
// were removed.
func (s *Store) ClearExpired() int {
	cutoff := time.Now().UTC().Add(-s.ttl)
	res, err := s.db.Exec(`DELETE FROM article_cache WHERE cached_at < ?`, cutoff)
	if err != nil {
		logger.Warnf("[cache] clear expired: %v", err)
		return 0
	}
	n, _ := res.RowsAffected()
	return int(n)
}

// Entry describes one cached batch for the stats listing.
type Entry struct {
	Category string
	Language string
	Articles int
	Age      time.Duration
}

// Stats lists the live cache entries.
func (s *Store) Stats() ([]Entry, error) {
	rows, err := s.db.Query(`SELECT category, language, articles, cached_at FROM article_cache`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var payload string
		var cachedAt time.Time
		if err := rows.Scan(&e.Category, &e.Language, &payload, &cachedAt); err != nil {
			return nil, err
		}
		var articles []feed.Article
		if json.Unmarshal([]byte(payload), &articles) == nil {
			e.Articles = len(articles)
		}
		e.Age = time.Since(cachedAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
