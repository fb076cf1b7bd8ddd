package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Tarrgon/autocompleted/internal/query"
)

// statementTimeout bounds every query issued through a borrowed
// connection.
const statementTimeout = 3 * time.Second

// resultLimit caps the rows either tier returns.
const resultLimit = 20

const tierAQuery = `
SELECT id, name, post_count, category, antecedent_name
FROM tags
WHERE name LIKE ? ESCAPE '\'
ORDER BY post_count DESC, name ASC
LIMIT ?`

// Tier B matches the canonical key directly: anywhere in the name, or as
// an antecedent (alias) name. It surfaces results when strict prefix
// matching comes up empty.
const tierBQuery = `
SELECT id, name, post_count, category, antecedent_name
FROM tags
WHERE name LIKE '%' || ? || '%' OR antecedent_name = ?
ORDER BY post_count DESC, name ASC
LIMIT ?`

// SQLiteStore implements TagStore over a SQLite tags relation.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens the tags database. The schema is expected to exist already.
func Open(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Read-only workload; a handful of pooled connections is plenty.
	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying connection pool.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// lookupTier is one lookup strategy. Tiers are tried in order until one
// yields rows or the list is exhausted.
type lookupTier func(ctx context.Context, key string) ([]Tag, error)

// Lookup runs the two-tier search for key.
func (s *SQLiteStore) Lookup(ctx context.Context, key string) ([]Tag, error) {
	for _, tier := range []lookupTier{s.lookupPrefix, s.lookupFallback} {
		tags, err := tier(ctx, key)
		if err != nil {
			return nil, err
		}
		if len(tags) > 0 {
			return tags, nil
		}
	}
	return []Tag{}, nil
}

// lookupPrefix is Tier A: prefix-anchored match on the escaped pattern.
func (s *SQLiteStore) lookupPrefix(ctx context.Context, key string) ([]Tag, error) {
	pattern := query.SearchPattern(key)
	return s.queryTags(ctx, tierAQuery, pattern, resultLimit)
}

// lookupFallback is Tier B: broader match against the key itself.
func (s *SQLiteStore) lookupFallback(ctx context.Context, key string) ([]Tag, error) {
	return s.queryTags(ctx, tierBQuery, key, key, resultLimit)
}

func (s *SQLiteStore) queryTags(ctx context.Context, q string, args ...any) ([]Tag, error) {
	ctx, cancel := context.WithTimeout(ctx, statementTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("tag query failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tags := make([]Tag, 0, resultLimit)
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.PostCount, &t.Category, &t.AntecedentName); err != nil {
			return nil, fmt.Errorf("failed to scan tag row: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("tag row iteration failed: %w", err)
	}
	return tags, nil
}
