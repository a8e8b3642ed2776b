package repository

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"bookview/internal/cache"
	"bookview/internal/googlebooks"
	"bookview/internal/testutil"
)

type countingRepo struct {
	listCalls int
	getCalls  int
	notFound  bool
}

func (r *countingRepo) ListVolumes(ctx context.Context, query string) (*googlebooks.BookListResponse, error) {
	r.listCalls++
	return &googlebooks.BookListResponse{
		TotalItems: 1,
		Items:      []googlebooks.Book{{ID: "b1", VolumeInfo: googlebooks.VolumeInfo{Title: query}}},
	}, nil
}

func (r *countingRepo) GetVolume(ctx context.Context, id string) (*googlebooks.Book, error) {
	r.getCalls++
	if r.notFound {
		return nil, &googlebooks.ProtocolError{StatusCode: http.StatusNotFound, Err: googlebooks.ErrNotFound}
	}
	return &googlebooks.Book{ID: id, VolumeInfo: googlebooks.VolumeInfo{Title: "Detail"}}, nil
}

func setupCacheConfig(t *testing.T) {
	t.Helper()

	testutil.ResetConfig(t)
	env := testutil.NewTestEnv(t)
	testutil.SetupTestCache(t, env)

	require.NoError(t, cache.ResetGlobalCache())
	t.Cleanup(func() { _ = cache.ResetGlobalCache() })
}

func TestCachedRepositoryServesSecondListCallFromCache(t *testing.T) {
	setupCacheConfig(t)

	inner := &countingRepo{}
	repo := NewCachedBookRepository(inner)

	first, err := repo.ListVolumes(context.Background(), "fiction")
	require.NoError(t, err)
	second, err := repo.ListVolumes(context.Background(), "fiction")
	require.NoError(t, err)

	require.Equal(t, 1, inner.listCalls)
	require.Equal(t, first.Items[0].ID, second.Items[0].ID)
	require.Equal(t, "fiction", second.Items[0].VolumeInfo.Title)
}

func TestCachedRepositoryKeysByQuery(t *testing.T) {
	setupCacheConfig(t)

	inner := &countingRepo{}
	repo := NewCachedBookRepository(inner)

	_, err := repo.ListVolumes(context.Background(), "fiction")
	require.NoError(t, err)
	_, err = repo.ListVolumes(context.Background(), "history")
	require.NoError(t, err)

	require.Equal(t, 2, inner.listCalls)
}

func TestCachedRepositoryCachesVolumeByID(t *testing.T) {
	setupCacheConfig(t)

	inner := &countingRepo{}
	repo := NewCachedBookRepository(inner)

	_, err := repo.GetVolume(context.Background(), "b1")
	require.NoError(t, err)
	book, err := repo.GetVolume(context.Background(), "b1")
	require.NoError(t, err)

	require.Equal(t, 1, inner.getCalls)
	require.Equal(t, "Detail", book.VolumeInfo.Title)
}

func TestCachedRepositoryNegativelyCachesMissingVolumes(t *testing.T) {
	setupCacheConfig(t)

	inner := &countingRepo{notFound: true}
	repo := NewCachedBookRepository(inner)

	_, err := repo.GetVolume(context.Background(), "gone")
	require.ErrorIs(t, err, googlebooks.ErrNotFound)

	_, err = repo.GetVolume(context.Background(), "gone")
	require.ErrorIs(t, err, googlebooks.ErrNotFound)

	require.Equal(t, 1, inner.getCalls, "second lookup should be served from the negative cache")
}
