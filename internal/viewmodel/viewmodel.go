// Package viewmodel owns the UI state of the book browser and coordinates
// the asynchronous fetches that drive it.
package viewmodel

import (
	"context"
	"log/slog"
	"sync"

	"bookview/internal/googlebooks"
	"bookview/internal/repository"
)

// DefaultQueries are the home-screen categories fetched when no explicit
// queries are given.
var DefaultQueries = []string{"fiction", "history"}

// BookViewModel holds one state slot per screen and mutates each slot only
// from tasks it schedules itself. Every operation resets its slot to Loading
// and resolves to Success or Error.
//
// Each slot owns a generation token: starting a new operation for a slot
// invalidates any in-flight task writing to it, so the latest started
// operation wins regardless of completion order.
type BookViewModel struct {
	repo repository.BookRepository
	ctx  context.Context

	mu             sync.Mutex
	volumeList     VolumeListState
	bookDetail     BookDetailState
	search         BookSearchState
	listGen        uint64
	detailGen      uint64
	searchGen      uint64
	lastListQuery  []string
	lastDetailBook *googlebooks.Book
	lastSearch     string

	updates chan struct{}
	wg      sync.WaitGroup
}

// VMOption configures a BookViewModel.
type VMOption func(*BookViewModel)

// WithContext sets the base context passed to repository calls. Cancelling it
// aborts all in-flight fetches.
func WithContext(ctx context.Context) VMOption {
	return func(vm *BookViewModel) {
		if ctx != nil {
			vm.ctx = ctx
		}
	}
}

// New creates a view-model over the given repository. Every slot starts at
// Loading; the presentation layer triggers the initial default fetch.
func New(repo repository.BookRepository, opts ...VMOption) *BookViewModel {
	vm := &BookViewModel{
		repo:       repo,
		ctx:        context.Background(),
		volumeList: VolumeListLoading{},
		bookDetail: BookDetailLoading{},
		search:     BookSearchLoading{},
		updates:    make(chan struct{}, 1),
	}

	for _, opt := range opts {
		opt(vm)
	}

	return vm
}

// Updates returns a coalescing notification channel. A receive means some
// slot changed since the last receive; observers then read the snapshots.
func (vm *BookViewModel) Updates() <-chan struct{} {
	return vm.updates
}

// VolumeList returns the current home-screen state.
func (vm *BookViewModel) VolumeList() VolumeListState {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.volumeList
}

// BookDetail returns the current detail-screen state.
func (vm *BookViewModel) BookDetail() BookDetailState {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.bookDetail
}

// Search returns the current search-screen state.
func (vm *BookViewModel) Search() BookSearchState {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.search
}

// Wait blocks until all in-flight fetch tasks have finished. Used by tests
// and during shutdown.
func (vm *BookViewModel) Wait() {
	vm.wg.Wait()
}

// LoadVolumeList fetches one shelf per query, in order, into the home-screen
// slot. The whole operation is fail-fast: the first fetch failure resolves
// the slot to Error and already-fetched shelves are discarded.
func (vm *BookViewModel) LoadVolumeList(queries ...string) {
	if len(queries) == 0 {
		queries = DefaultQueries
	}

	vm.mu.Lock()
	vm.listGen++
	gen := vm.listGen
	vm.lastListQuery = queries
	vm.volumeList = VolumeListLoading{}
	vm.mu.Unlock()
	vm.notify()

	vm.wg.Add(1)
	go func() {
		defer vm.wg.Done()

		shelves := make([]Shelf, 0, len(queries))
		var next VolumeListState
		for _, query := range queries {
			slog.Debug("Loading shelf", "query", query)
			response, err := vm.repo.ListVolumes(vm.ctx, query)
			if err != nil {
				logFetchFailure("volume list fetch failed", query, err)
				next = VolumeListError{}
				break
			}
			shelves = append(shelves, Shelf{Query: query, Books: response.Items})
		}
		if next == nil {
			next = VolumeListSuccess{Shelves: shelves}
		}

		vm.resolveVolumeList(gen, next)
	}()
}

// FetchBookDetail fetches the full record for the clicked summary book into
// the detail slot. The summary is retained alongside the fetched detail.
func (vm *BookViewModel) FetchBookDetail(book googlebooks.Book) {
	vm.mu.Lock()
	vm.detailGen++
	gen := vm.detailGen
	summary := book
	vm.lastDetailBook = &summary
	vm.bookDetail = BookDetailLoading{}
	vm.mu.Unlock()
	vm.notify()

	vm.wg.Add(1)
	go func() {
		defer vm.wg.Done()

		var next BookDetailState
		detail, err := vm.repo.GetVolume(vm.ctx, book.ID)
		if err != nil {
			logFetchFailure("book detail fetch failed", book.ID, err)
			next = BookDetailError{}
		} else {
			next = BookDetailSuccess{Summary: book, Detail: *detail}
		}

		vm.resolveBookDetail(gen, next)
	}()
}

// SearchBooks fetches free-text search results into the search slot.
func (vm *BookViewModel) SearchBooks(query string) {
	vm.mu.Lock()
	vm.searchGen++
	gen := vm.searchGen
	vm.lastSearch = query
	vm.search = BookSearchLoading{}
	vm.mu.Unlock()
	vm.notify()

	vm.wg.Add(1)
	go func() {
		defer vm.wg.Done()

		var next BookSearchState
		response, err := vm.repo.ListVolumes(vm.ctx, query)
		if err != nil {
			logFetchFailure("book search failed", query, err)
			next = BookSearchError{}
		} else {
			next = BookSearchSuccess{Books: response.Items}
		}

		vm.resolveSearch(gen, next)
	}()
}

// RetryVolumeList re-runs the last home-screen load with identical queries.
func (vm *BookViewModel) RetryVolumeList() {
	vm.mu.Lock()
	queries := vm.lastListQuery
	vm.mu.Unlock()
	vm.LoadVolumeList(queries...)
}

// RetryBookDetail re-runs the last detail fetch for the same book. A no-op
// when no detail fetch has been issued yet.
func (vm *BookViewModel) RetryBookDetail() {
	vm.mu.Lock()
	book := vm.lastDetailBook
	vm.mu.Unlock()
	if book != nil {
		vm.FetchBookDetail(*book)
	}
}

// RetrySearch re-runs the last search with the same query. A no-op when no
// search has been issued yet.
func (vm *BookViewModel) RetrySearch() {
	vm.mu.Lock()
	query := vm.lastSearch
	vm.mu.Unlock()
	if query != "" {
		vm.SearchBooks(query)
	}
}

func (vm *BookViewModel) resolveVolumeList(gen uint64, next VolumeListState) {
	vm.mu.Lock()
	if gen != vm.listGen {
		vm.mu.Unlock()
		slog.Debug("Discarding superseded volume list result")
		return
	}
	vm.volumeList = next
	vm.mu.Unlock()
	vm.notify()
}

func (vm *BookViewModel) resolveBookDetail(gen uint64, next BookDetailState) {
	vm.mu.Lock()
	if gen != vm.detailGen {
		vm.mu.Unlock()
		slog.Debug("Discarding superseded book detail result")
		return
	}
	vm.bookDetail = next
	vm.mu.Unlock()
	vm.notify()
}

func (vm *BookViewModel) resolveSearch(gen uint64, next BookSearchState) {
	vm.mu.Lock()
	if gen != vm.searchGen {
		vm.mu.Unlock()
		slog.Debug("Discarding superseded search result")
		return
	}
	vm.search = next
	vm.mu.Unlock()
	vm.notify()
}

func (vm *BookViewModel) notify() {
	select {
	case vm.updates <- struct{}{}:
	default:
	}
}

func logFetchFailure(msg, subject string, err error) {
	if googlebooks.IsFetchError(err) {
		slog.Warn(msg, "subject", subject, "error", err)
		return
	}
	// Anything that is not a recognized transport failure still ends only
	// this task, but is logged loudly since it points at a bug.
	slog.Error(msg, "subject", subject, "error", err)
}
