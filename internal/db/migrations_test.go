package db_test

import (
	"database/sql"
	"testing"

	"castmind/backend/internal/db"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func columnExists(t *testing.T, database *sql.DB, table, column string) bool {
	t.Helper()
	var count int
	err := database.QueryRow(`SELECT COUNT(*) FROM pragma_table_info('`+table+`') WHERE name = ?`, column).Scan(&count)
	require.NoError(t, err)
	return count > 0
}

func TestMigrate_UpgradesLegacySchema(t *testing.T) {
	database, err := sql.Open("sqlite", "file:legacy_upgrade?mode=memory&cache=shared&_pragma=foreign_keys(1)")
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(`
		CREATE TABLE feeds (
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

		CREATE TABLE articles (
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
	`)
	require.NoError(t, err)

	_, err = database.Exec(`INSERT INTO feeds (id, name, address, created_at, updated_at) VALUES (1, 'feed', 'https://example.com/rss', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = database.Exec(`INSERT INTO articles (id, feed_id, url, title, published_at, created_at, updated_at) VALUES (10, 1, 'https://example.com/a', 'a', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)

	require.False(t, columnExists(t, database, "feeds", "error_message"))
	require.False(t, columnExists(t, database, "articles", "readable_content"))

	require.NoError(t, db.Migrate(database))

	require.True(t, columnExists(t, database, "feeds", "error_message"))
	require.True(t, columnExists(t, database, "articles", "readable_content"))

	var title string
	require.NoError(t, database.QueryRow(`SELECT title FROM articles WHERE id = 10`).Scan(&title))
	require.Equal(t, "a", title)
}

func TestMigrate_Idempotent(t *testing.T) {
	database, err := sql.Open("sqlite", "file:migrate_twice?mode=memory&cache=shared&_pragma=foreign_keys(1)")
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, db.Migrate(database))
	require.NoError(t, db.Migrate(database))
}

func TestMigrate_CascadeDeletesArticles(t *testing.T) {
	database, err := sql.Open("sqlite", "file:migrate_cascade?mode=memory&cache=shared&_pragma=foreign_keys(1)")
	require.NoError(t, err)
	defer database.Close()
	require.NoError(t, db.Migrate(database))

	_, err = database.Exec(`INSERT INTO feeds (id, name, address, created_at, updated_at) VALUES (1, 'feed', 'https://example.com/rss', 'x', 'x')`)
	require.NoError(t, err)
	_, err = database.Exec(`INSERT INTO articles (id, feed_id, url, title, published_at, created_at, updated_at) VALUES (10, 1, 'https://example.com/a', 'a', 'x', 'x', 'x')`)
	require.NoError(t, err)

	_, err = database.Exec(`DELETE FROM feeds WHERE id = 1`)
	require.NoError(t, err)

	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM articles`).Scan(&count))
	require.Equal(t, 0, count)
}
