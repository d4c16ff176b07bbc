// Package database owns the shared SQLite connection.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/adnanqk/newsanchor/internal/logger"
)

// DB is the shared SQLite handle. All modules use the same database
// file, which keeps transactions and backups simple.
type DB struct {
	*sql.DB
	path string
}

// Open opens or creates the database. An empty dbPath defaults to
// ~/.newsanchor/newsanchor.db.
func Open(dbPath string) (*DB, error) {
	if dbPath == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			dbPath = filepath.Join(home, ".newsanchor", "newsanchor.db")
		} else {
			dbPath = "./newsanchor.db"
		}
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// WAL for concurrent readers while a harvest writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	logger.Infof("[database] opened %s", dbPath)

	return &DB{DB: db, path: dbPath}, nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// Migrate creates the schema.
func (db *DB) Migrate() error {
	migrations := []string{
		// Harvested article batches, one row per category+language.
		`CREATE TABLE IF NOT EXISTS article_cache (
			category TEXT NOT NULL,
			language TEXT NOT NULL,
			articles TEXT NOT NULL,
			cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (category, language)
		)`,
		// Finished broadcast artifacts.
		`CREATE TABLE IF NOT EXISTS broadcasts (
			id TEXT PRIMARY KEY,
			category TEXT NOT NULL,
			language TEXT NOT NULL,
			headline TEXT NOT NULL,
			audio_path TEXT DEFAULT '',
			video_path TEXT DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("database migration: %w", err)
		}
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_article_cache_cached_at ON article_cache(cached_at)`,
		`CREATE INDEX IF NOT EXISTS idx_broadcasts_category ON broadcasts(category, language)`,
		`CREATE INDEX IF NOT EXISTS idx_broadcasts_created_at ON broadcasts(created_at)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			logger.Warnf("[database] create index: %v", err)
		}
	}

	logger.Info("[database] migrations complete")
	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.DB != nil {
		return db.DB.Close()
	}
	return nil
}
