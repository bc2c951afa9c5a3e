package store

// The cache holds one row per view mode: the JSON-encoded repository list
// from the last fully completed fetch, plus when it finished.
const createCacheTable = `
CREATE TABLE IF NOT EXISTS mode_cache (
    mode_key TEXT PRIMARY KEY,
    repositories TEXT NOT NULL,
    fetched_at TEXT NOT NULL
);
`

const upsertCacheEntry = `
INSERT OR REPLACE INTO mode_cache (mode_key, repositories, fetched_at)
VALUES (?, ?, ?)
`

const selectCacheEntry = `
SELECT repositories FROM mode_cache WHERE mode_key = ?
`

const deleteCacheEntry = `
DELETE FROM mode_cache WHERE mode_key = ?
`

const selectCachedModes = `
SELECT mode_key FROM mode_cache ORDER BY mode_key
`
