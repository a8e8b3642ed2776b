package cache

// SQL schemas for cache tables. All cache tables use "cache_key" as the
// primary key column for consistency.

// SearchCacheSchema defines the schema for cached volume list responses,
// keyed by search query.
const SearchCacheSchema = `
CREATE TABLE IF NOT EXISTS search_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_search_cached_at ON search_cache(cached_at);
`

// VolumeCacheSchema defines the schema for cached single-volume responses,
// keyed by volume id.
const VolumeCacheSchema = `
CREATE TABLE IF NOT EXISTS volume_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_volume_cached_at ON volume_cache(cached_at);
`

// AllCacheSchemas contains all cache table schemas for easy initialization.
var AllCacheSchemas = []string{
	SearchCacheSchema,
	VolumeCacheSchema,
}

// ValidCacheTableNames is the whitelist of allowed cache table names, used to
// prevent SQL injection when interpolating table names.
var ValidCacheTableNames = map[string]bool{
	"search_cache": true,
	"volume_cache": true,
}
