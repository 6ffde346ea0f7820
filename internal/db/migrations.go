package db

import (
	"database/sql"
	"fmt"
)

// Base schema. IDs are snowflakes, timestamps are fixed-width UTC text so they sort lexically.
const baseSchema = `
CREATE TABLE IF NOT EXISTS feeds (
  id INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  address TEXT NOT NULL UNIQUE,
  category TEXT NOT NULL DEFAULT 'uncategorized',
  interval_seconds INTEGER NOT NULL DEFAULT 3600,
  status TEXT NOT NULL DEFAULT 'active',
  kind TEXT NOT NULL DEFAULT 'rss',
  title TEXT,
  description TEXT,
  site_url TEXT,
  last_fetch TEXT,
  article_count INTEGER NOT NULL DEFAULT 0,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_feeds_status ON feeds(status);

CREATE TABLE IF NOT EXISTS articles (
  id INTEGER PRIMARY KEY,
  feed_id INTEGER NOT NULL,
  url TEXT NOT NULL UNIQUE,
  title TEXT NOT NULL,
  content TEXT,
  summary TEXT,
  author TEXT,
  categories TEXT,
  published_at TEXT NOT NULL,
  read INTEGER NOT NULL DEFAULT 0,
  processed INTEGER NOT NULL DEFAULT 0,
  keywords TEXT,
  sentiment TEXT,
  is_podcast INTEGER NOT NULL DEFAULT 0,
  audio_url TEXT,
  audio_type TEXT,
  audio_duration INTEGER,
  audio_size INTEGER,
  podcast_description TEXT,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL,
  FOREIGN KEY (feed_id) REFERENCES feeds(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_articles_feed_id ON articles(feed_id);
`

func Migrate(db *sql.DB) error {
	if _, err := db.Exec(baseSchema); err != nil {
		return fmt.Errorf("migrate base schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

func runMigrations(db *sql.DB) error {
	// Migration 1: keep the last fetch diagnostic on the feed
	if err := addColumnIfMissing(db, "feeds", "error_message", "TEXT"); err != nil {
		return err
	}

	// Migration 2: cache readability-extracted text used by the analysis job
	if err := addColumnIfMissing(db, "articles", "readable_content", "TEXT"); err != nil {
		return err
	}

	// Migration 3: indexes for the processing and retention queries
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_articles_processed ON articles(processed)`); err != nil {
		return fmt.Errorf("create idx_articles_processed: %w", err)
	}
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_articles_retention ON articles(read, processed, created_at)`); err != nil {
		return fmt.Errorf("create idx_articles_retention: %w", err)
	}

	// Migration 4: per-host request spacing
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS host_limits (
			id INTEGER PRIMARY KEY,
			host TEXT NOT NULL UNIQUE,
			interval_seconds INTEGER NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("create host_limits table: %w", err)
	}

	return nil
}

func addColumnIfMissing(db *sql.DB, table, column, definition string) error {
	exists, err := hasColumn(db, table, column)
	if err != nil {
		return fmt.Errorf("check %s.%s column: %w", table, column, err)
	}
	if exists {
		return nil
	}
	if _, err := db.Exec(fmt.Sprintf(`ALTER TABLE %s ADD COLUMN %s %s`, table, column, definition)); err != nil {
		return fmt.Errorf("add %s.%s column: %w", table, column, err)
	}
	return nil
}

func hasColumn(db *sql.DB, table string, column string) (bool, error) {
	var count int
	if err := db.QueryRow(
		fmt.Sprintf(`SELECT COUNT(*) FROM pragma_table_info('%s') WHERE name = ?`, table),
		column,
	).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
