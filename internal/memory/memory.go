// Package memory persists provider translations in a local SQLite file
// so strings shared between catalogs are only ever translated once.
package memory

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Cache is a translation memory keyed by source text plus the request
// parameters that shape the translation. Different targets, prompts or
// models never share cached results.
type Cache struct {
	db       *sql.DB
	lang     string
	context  string
	provider string
	model    string
}

// Open opens (creating if needed) the cache database at path.
func Open(path, lang, promptContext, provider, model string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("pragma %q: %w", p, err)
		}
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS cache (
        source_text TEXT NOT NULL,
        target_lang TEXT NOT NULL,
        context     TEXT NOT NULL,
        provider    TEXT NOT NULL,
        model       TEXT NOT NULL,
        translation TEXT NOT NULL,
        created_at  TEXT NOT NULL,
        PRIMARY KEY (source_text, target_lang, context, provider, model)
    )`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create cache table: %w", err)
	}
	return &Cache{
		db:       db,
		lang:     lang,
		context:  promptContext,
		provider: provider,
		model:    model,
	}, nil
}

// Get looks up a cached translation for source.
func (c *Cache) Get(ctx context.Context, source string) (string, bool, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT translation FROM cache
         WHERE source_text = ? AND target_lang = ? AND context = ? AND provider = ? AND model = ?`,
		source, c.lang, c.context, c.provider, c.model)
	var translation string
	if err := row.Scan(&translation); err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, err
	}
	return translation, true, nil
}

// Put stores a translation, replacing any previous value.
func (c *Cache) Put(ctx context.Context, source, translation string) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO cache (source_text, target_lang, context, provider, model, translation, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)
         ON CONFLICT(source_text, target_lang, context, provider, model)
         DO UPDATE SET translation = excluded.translation`,
		source, c.lang, c.context, c.provider, c.model, translation,
		time.Now().UTC().Format(time.RFC3339))
	return err
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}
