package repository

import (
	"context"
	"errors"
	"net/http"

	"bookview/internal/cache"
	"bookview/internal/googlebooks"
)

// CachedBookRepository wraps another repository with the SQLite TTL cache.
// The CLI commands use it to avoid hammering the API on repeated invocations;
// the interactive TUI talks to the network repository directly.
type CachedBookRepository struct {
	inner BookRepository
}

// NewCachedBookRepository wraps inner with cache lookups.
func NewCachedBookRepository(inner BookRepository) *CachedBookRepository {
	return &CachedBookRepository{inner: inner}
}

func (r *CachedBookRepository) ListVolumes(ctx context.Context, query string) (*googlebooks.BookListResponse, error) {
	result, _, err := cache.GetOrFetch("search_cache", query, func() (*googlebooks.BookListResponse, error) {
		return r.inner.ListVolumes(ctx, query)
	})
	return result, err
}

// volumeCacheEntry is the cached shape of a volume lookup. Not-found lookups
// are stored as an entry rather than an error, since fetch errors are never
// cached; they get the shorter negative-cache TTL.
type volumeCacheEntry struct {
	NotFound bool              `json:"notFound,omitempty"`
	Book     *googlebooks.Book `json:"book,omitempty"`
}

func (r *CachedBookRepository) GetVolume(ctx context.Context, id string) (*googlebooks.Book, error) {
	entry, _, err := cache.GetOrFetchWithTTL("volume_cache", id,
		func() (volumeCacheEntry, error) {
			book, err := r.inner.GetVolume(ctx, id)
			if err != nil {
				if errors.Is(err, googlebooks.ErrNotFound) {
					return volumeCacheEntry{NotFound: true}, nil
				}
				return volumeCacheEntry{}, err
			}
			return volumeCacheEntry{Book: book}, nil
		},
		cache.SelectNegativeCacheTTL(func(entry volumeCacheEntry) bool {
			return entry.NotFound
		}),
	)
	if err != nil {
		return nil, err
	}
	if entry.NotFound {
		return nil, &googlebooks.ProtocolError{StatusCode: http.StatusNotFound, Err: googlebooks.ErrNotFound}
	}
	return entry.Book, nil
}
