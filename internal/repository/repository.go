// Package repository abstracts book data access behind an interface so the
// UI layer never depends on transport details.
package repository

import (
	"context"

	"bookview/internal/googlebooks"
)

// BookRepository provides access to book data.
type BookRepository interface {
	// ListVolumes returns volumes matching the query.
	ListVolumes(ctx context.Context, query string) (*googlebooks.BookListResponse, error)
	// GetVolume returns a single volume by id.
	GetVolume(ctx context.Context, id string) (*googlebooks.Book, error)
}

// NetworkBookRepository delegates directly to the API client. No caching and
// no error translation, so the call chain stays substitutable for testing.
type NetworkBookRepository struct {
	client *googlebooks.Client
}

// NewNetworkBookRepository creates a repository backed by the given client.
func NewNetworkBookRepository(client *googlebooks.Client) *NetworkBookRepository {
	return &NetworkBookRepository{client: client}
}

func (r *NetworkBookRepository) ListVolumes(ctx context.Context, query string) (*googlebooks.BookListResponse, error) {
	return r.client.ListVolumes(ctx, query)
}

func (r *NetworkBookRepository) GetVolume(ctx context.Context, id string) (*googlebooks.Book, error) {
	return r.client.GetVolume(ctx, id)
}
