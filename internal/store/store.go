// Package store keeps the per-view-mode repository cache for the lifetime of
// one dashboard session. It is backed by an in-memory SQLite database, so
// nothing is ever written to disk; entries disappear when the process exits.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/DanielAtanasovski/gh-repo-healthcheks/internal/models"
)

// Cache maps a view mode to the repository list from its last completed
// fetch. Entries are written exactly when a fetch for the mode completes and
// evicted exactly when a refresh is requested for it.
type Cache struct {
	conn *sql.DB
}

// Open creates the session cache
func Open() (*Cache, error) {
	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	// Each pooled connection would get its own private :memory: database;
	// pin the pool to one connection so every statement sees the same data.
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec(createCacheTable); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}

	return &Cache{conn: conn}, nil
}

// Close releases the underlying database
func (c *Cache) Close() error {
	return c.conn.Close()
}

// Put stores the repository list for a mode, replacing any previous entry
func (c *Cache) Put(mode models.ViewMode, repos []models.Repository) error {
	payload, err := json.Marshal(repos)
	if err != nil {
		return fmt.Errorf("failed to encode repositories: %w", err)
	}

	_, err = c.conn.Exec(upsertCacheEntry, mode.Key(), string(payload), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// Get returns the cached repository list for a mode, or ok=false when the
// mode has no entry
func (c *Cache) Get(mode models.ViewMode) ([]models.Repository, bool, error) {
	var payload string
	err := c.conn.QueryRow(selectCacheEntry, mode.Key()).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache entry: %w", err)
	}

	var repos []models.Repository
	if err := json.Unmarshal([]byte(payload), &repos); err != nil {
		return nil, false, fmt.Errorf("failed to decode cache entry: %w", err)
	}
	return repos, true, nil
}

// Evict removes the entry for a mode; evicting an absent mode is a no-op
func (c *Cache) Evict(mode models.ViewMode) error {
	if _, err := c.conn.Exec(deleteCacheEntry, mode.Key()); err != nil {
		return fmt.Errorf("failed to evict cache entry: %w", err)
	}
	return nil
}

// Modes returns the keys of all cached modes, sorted
func (c *Cache) Modes() ([]string, error) {
	rows, err := c.conn.Query(selectCachedModes)
	if err != nil {
		return nil, fmt.Errorf("failed to list cached modes: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan cache key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}
