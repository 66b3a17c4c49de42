package cache

import (
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"edusite/internal/config"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Cache is a SQLite-backed query result cache. Keys are built by Key
// so that every entry is prefixed with the entity type it belongs to,
// which is what makes InvalidateType possible. Entries are advisory:
// everything stored here can be recomputed from the primary database.
type Cache struct {
	db         *sqlx.DB
	defaultTTL time.Duration
	hits       atomic.Int64
	misses     atomic.Int64
}

// Stats reports cache occupancy and hit metrics.
type Stats struct {
	Entries int64 `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
}

// New creates a new Cache instance.
// It opens the SQLite database at the configured file path and ensures
// the cache table is created.
func New(cfg config.CacheConfig) (*Cache, error) {
	db, err := sqlx.Connect("sqlite", cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to sqlite cache: %w", err)
	}

	// For a cache, WAL mode is generally better for concurrency.
	_, err = db.Exec("PRAGMA journal_mode=WAL;")
	if err != nil {
		return nil, fmt.Errorf("failed to set WAL mode on sqlite cache: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS cache (
		key TEXT PRIMARY KEY,
		value BLOB,
		expires_at INTEGER
	);
	CREATE INDEX IF NOT EXISTS idx_expires_at ON cache (expires_at);
	`
	_, err = db.Exec(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}

	ttl := time.Duration(cfg.DefaultTTL) * time.Second
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{db: db, defaultTTL: ttl}, nil
}

// Key builds a deterministic cache key from the logical query: the
// entity type plus its normalized parameters (filters, language,
// pagination). The entity type prefix is load-bearing for
// InvalidateType and must never contain ':'.
func Key(entityType string, parts ...string) string {
	return entityType + ":" + strings.Join(parts, "|")
}

// DefaultTTL returns the configured time-to-live for new entries.
func (c *Cache) DefaultTTL() time.Duration {
	return c.defaultTTL
}

// Get retrieves an item from the cache. It returns nil if the item is not found or is expired.
func (c *Cache) Get(key string) ([]byte, error) {
	var item struct {
		Value     []byte `db:"value"`
		ExpiresAt int64  `db:"expires_at"`
	}
	query := `SELECT value, expires_at FROM cache WHERE key = ?`
	err := c.db.Get(&item, query, key)
	if err != nil {
		if err == sql.ErrNoRows {
			c.misses.Add(1)
			return nil, nil // Not found is not an error for a cache miss.
		}
		return nil, fmt.Errorf("failed to get item from cache: %w", err)
	}

	// Check for expiration
	if time.Now().Unix() > item.ExpiresAt {
		// Item has expired, delete it from the cache (best effort)
		_ = c.Delete(key)
		c.misses.Add(1)
		return nil, nil // Treat as a cache miss
	}

	c.hits.Add(1)
	return item.Value, nil
}

// Set adds an item to the cache with a specific TTL (time-to-live).
// The whole value is replaced in one statement, so readers never see a
// torn entry.
func (c *Cache) Set(key string, value []byte, ttl time.Duration) error {
	expiresAt := time.Now().Add(ttl).Unix()
	query := `INSERT OR REPLACE INTO cache (key, value, expires_at) VALUES (?, ?, ?)`
	_, err := c.db.Exec(query, key, value, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to set item in cache: %w", err)
	}
	return nil
}

// Delete removes an item from the cache.
func (c *Cache) Delete(key string) error {
	query := `DELETE FROM cache WHERE key = ?`
	_, err := c.db.Exec(query, key)
	if err != nil {
		return fmt.Errorf("failed to delete item from cache: %w", err)
	}
	return nil
}

// InvalidateType drops every entry whose key belongs to the given
// entity type. Mutation paths call this for each type they touch.
func (c *Cache) InvalidateType(entityType string) error {
	query := `DELETE FROM cache WHERE key LIKE ? ESCAPE '\'`
	prefix := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(entityType)
	_, err := c.db.Exec(query, prefix+":%")
	if err != nil {
		return fmt.Errorf("failed to invalidate cache for %s: %w", entityType, err)
	}
	return nil
}

// Clear drops all cached entries.
func (c *Cache) Clear() error {
	if _, err := c.db.Exec(`DELETE FROM cache`); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// Stats returns entry count and hit/miss counters since process start.
func (c *Cache) Stats() (Stats, error) {
	var entries int64
	if err := c.db.Get(&entries, `SELECT COUNT(*) FROM cache`); err != nil {
		return Stats{}, fmt.Errorf("failed to count cache entries: %w", err)
	}
	return Stats{
		Entries: entries,
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}
