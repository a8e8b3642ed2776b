package viewmodel

import "bookview/internal/googlebooks"

// Shelf is one home-screen section: the query that produced it and its books.
// A slice of shelves preserves query call order, which drives section order
// in the UI.
type Shelf struct {
	Query string
	Books []googlebooks.Book
}

// VolumeListState is the state of the home screen's categorized book list.
// It is a closed sum: exactly Loading, Error or Success.
type VolumeListState interface{ volumeListState() }

// VolumeListLoading indicates a list fetch is in flight.
type VolumeListLoading struct{}

// VolumeListError indicates the most recent list fetch failed.
type VolumeListError struct{}

// VolumeListSuccess carries one shelf per requested query, in request order.
type VolumeListSuccess struct {
	Shelves []Shelf
}

func (VolumeListLoading) volumeListState() {}
func (VolumeListError) volumeListState()   {}
func (VolumeListSuccess) volumeListState() {}

// BookDetailState is the state of the detail screen.
type BookDetailState interface{ bookDetailState() }

// BookDetailLoading indicates a detail fetch is in flight.
type BookDetailLoading struct{}

// BookDetailError indicates the most recent detail fetch failed.
type BookDetailError struct{}

// BookDetailSuccess carries both the originally clicked summary record and
// the separately fetched full record. The list endpoint and the get-by-id
// endpoint return different field completeness, so both are kept.
type BookDetailSuccess struct {
	Summary googlebooks.Book
	Detail  googlebooks.Book
}

func (BookDetailLoading) bookDetailState() {}
func (BookDetailError) bookDetailState()   {}
func (BookDetailSuccess) bookDetailState() {}

// BookSearchState is the state of the free-text search screen. It is a
// separate slot from VolumeListState so a search never clobbers the home
// screen categories.
type BookSearchState interface{ bookSearchState() }

// BookSearchLoading indicates a search is in flight.
type BookSearchLoading struct{}

// BookSearchError indicates the most recent search failed.
type BookSearchError struct{}

// BookSearchSuccess carries the search results in API order.
type BookSearchSuccess struct {
	Books []googlebooks.Book
}

func (BookSearchLoading) bookSearchState() {}
func (BookSearchError) bookSearchState()   {}
func (BookSearchSuccess) bookSearchState() {}
