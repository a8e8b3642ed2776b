package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"bookview/internal/googlebooks"
	"bookview/internal/viewmodel"
)

type stubRepo struct {
	shelves   map[string][]googlebooks.Book
	detail    *googlebooks.Book
	listErr   error
	getErr    error
	searched  []string
	fetchedID []string
}

func (s *stubRepo) ListVolumes(ctx context.Context, query string) (*googlebooks.BookListResponse, error) {
	s.searched = append(s.searched, query)
	if s.listErr != nil {
		return nil, s.listErr
	}
	books := s.shelves[query]
	return &googlebooks.BookListResponse{TotalItems: len(books), Items: books}, nil
}

func (s *stubRepo) GetVolume(ctx context.Context, id string) (*googlebooks.Book, error) {
	s.fetchedID = append(s.fetchedID, id)
	if s.getErr != nil {
		return nil, s.getErr
	}
	if s.detail != nil {
		return s.detail, nil
	}
	return &googlebooks.Book{ID: id}, nil
}

func shelfBook(id, title, author string) googlebooks.Book {
	return googlebooks.Book{
		ID: id,
		VolumeInfo: googlebooks.VolumeInfo{
			Title:   title,
			Authors: []string{author},
		},
	}
}

func newTestApp(t *testing.T, repo *stubRepo, queries ...string) (*appModel, *viewmodel.BookViewModel) {
	t.Helper()
	vm := viewmodel.New(repo)
	m := newAppModel(vm, queries)
	return m, vm
}

// settle waits for in-flight fetches and delivers the coalesced update to
// the model, the way the wait loop does in the running program.
func settle(m *appModel, vm *viewmodel.BookViewModel) {
	vm.Wait()
	m.Update(stateMsg{})
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestHomeShowsLoadingThenShelves(t *testing.T) {
	repo := &stubRepo{shelves: map[string][]googlebooks.Book{
		"fiction": {shelfBook("vol1", "Dune", "Frank Herbert")},
		"history": {shelfBook("vol2", "SPQR", "Mary Beard")},
	}}
	m, vm := newTestApp(t, repo, "fiction", "history")

	require.Contains(t, m.View(), "Loading shelves")

	vm.LoadVolumeList("fiction", "history")
	settle(m, vm)

	view := m.View()
	require.Contains(t, view, "FICTION")
	require.Contains(t, view, "HISTORY")
	require.Contains(t, view, "Dune")
	require.Contains(t, view, "SPQR")

	// shelf sections keep request order
	require.Less(t, strings.Index(view, "FICTION"), strings.Index(view, "HISTORY"))
}

func TestHomeEnterOpensDetail(t *testing.T) {
	detail := shelfBook("vol2", "SPQR", "Mary Beard")
	detail.VolumeInfo.Description = "A history of ancient Rome."
	repo := &stubRepo{
		shelves: map[string][]googlebooks.Book{
			"fiction": {shelfBook("vol1", "Dune", "Frank Herbert")},
			"history": {shelfBook("vol2", "SPQR", "Mary Beard")},
		},
		detail: &detail,
	}
	m, vm := newTestApp(t, repo, "fiction", "history")

	vm.LoadVolumeList("fiction", "history")
	settle(m, vm)

	// move past Dune onto SPQR and open it
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	settle(m, vm)

	require.Equal(t, []string{"vol2"}, repo.fetchedID)
	require.Equal(t, screenDetail, m.current())
	require.Contains(t, m.View(), "A history of ancient Rome.")

	// esc pops back to home
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, screenHome, m.current())
}

func TestSearchSubmitAndSelect(t *testing.T) {
	repo := &stubRepo{shelves: map[string][]googlebooks.Book{
		"dune": {shelfBook("vol1", "Dune", "Frank Herbert")},
	}}
	m, vm := newTestApp(t, repo)

	m.Update(keyRunes("/"))
	require.Equal(t, screenSearch, m.current())

	for _, r := range "dune" {
		m.Update(keyRunes(string(r)))
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	settle(m, vm)

	require.Equal(t, []string{"dune"}, repo.searched)
	require.Contains(t, m.View(), "Dune")

	// enter on the focused results list opens the detail screen
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	settle(m, vm)
	require.Equal(t, screenDetail, m.current())
	require.Equal(t, []string{"vol1"}, repo.fetchedID)
}

func TestSearchErrorRetry(t *testing.T) {
	repo := &stubRepo{listErr: &googlebooks.ProtocolError{StatusCode: 500}}
	m, vm := newTestApp(t, repo)

	m.Update(keyRunes("/"))
	for _, r := range "dune" {
		m.Update(keyRunes(string(r)))
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	settle(m, vm)

	require.Contains(t, m.View(), "Search failed")

	m.Update(keyRunes("r"))
	settle(m, vm)

	require.Equal(t, []string{"dune", "dune"}, repo.searched)
}

func TestHomeErrorRetry(t *testing.T) {
	repo := &stubRepo{listErr: &googlebooks.ConnectionError{}}
	m, vm := newTestApp(t, repo, "fiction")

	vm.LoadVolumeList("fiction")
	settle(m, vm)
	require.Contains(t, m.View(), "Could not load shelves")

	m.Update(keyRunes("r"))
	settle(m, vm)

	require.Equal(t, []string{"fiction", "fiction"}, repo.searched)
}

func TestHomeCursorClampsWhenShelvesShrink(t *testing.T) {
	repo := &stubRepo{shelves: map[string][]googlebooks.Book{
		"fiction": {
			shelfBook("vol1", "Dune", "Frank Herbert"),
			shelfBook("vol2", "Hyperion", "Dan Simmons"),
			shelfBook("vol3", "Neuromancer", "William Gibson"),
		},
	}}
	m, vm := newTestApp(t, repo, "fiction")

	vm.LoadVolumeList("fiction")
	settle(m, vm)

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 2, m.homeCursor)

	// reload comes back with fewer books than the cursor points at
	repo.shelves["fiction"] = repo.shelves["fiction"][:1]
	vm.LoadVolumeList("fiction")
	settle(m, vm)

	require.Equal(t, 0, m.homeCursor)
	require.Contains(t, m.View(), "> Dune")
}

func TestDetailOpensBuyLink(t *testing.T) {
	detail := shelfBook("vol1", "Dune", "Frank Herbert")
	detail.SaleInfo.BuyLink = "https://play.google.com/books/vol1"
	detail.VolumeInfo.PreviewLink = "https://books.google.com/books?id=vol1"
	repo := &stubRepo{
		shelves: map[string][]googlebooks.Book{
			"fiction": {shelfBook("vol1", "Dune", "Frank Herbert")},
		},
		detail: &detail,
	}
	m, vm := newTestApp(t, repo, "fiction")

	var opened []string
	origOpen := openBrowser
	openBrowser = func(url string) error {
		opened = append(opened, url)
		return nil
	}
	t.Cleanup(func() { openBrowser = origOpen })

	vm.LoadVolumeList("fiction")
	settle(m, vm)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	settle(m, vm)

	m.Update(keyRunes("o"))
	m.Update(keyRunes("p"))

	require.Equal(t, []string{
		"https://play.google.com/books/vol1",
		"https://books.google.com/books?id=vol1",
	}, opened)
}

func TestDetailBuyLinkFallsBackWhenAbsent(t *testing.T) {
	repo := &stubRepo{
		shelves: map[string][]googlebooks.Book{
			"fiction": {shelfBook("vol1", "Dune", "Frank Herbert")},
		},
	}
	m, vm := newTestApp(t, repo, "fiction")

	var opened []string
	origOpen := openBrowser
	openBrowser = func(url string) error {
		opened = append(opened, url)
		return nil
	}
	t.Cleanup(func() { openBrowser = origOpen })

	vm.LoadVolumeList("fiction")
	settle(m, vm)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	settle(m, vm)

	// no buy link: the handler still calls Open, which falls back itself
	m.Update(keyRunes("o"))
	require.Equal(t, []string{""}, opened)

	// no preview link: nothing opened
	m.Update(keyRunes("p"))
	require.Len(t, opened, 1)
}

func TestSearchDoesNotClobberHome(t *testing.T) {
	repo := &stubRepo{shelves: map[string][]googlebooks.Book{
		"fiction": {shelfBook("vol1", "Dune", "Frank Herbert")},
		"dune":    {shelfBook("vol9", "Dune Messiah", "Frank Herbert")},
	}}
	m, vm := newTestApp(t, repo, "fiction")

	vm.LoadVolumeList("fiction")
	settle(m, vm)

	m.Update(keyRunes("/"))
	for _, r := range "dune" {
		m.Update(keyRunes(string(r)))
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	settle(m, vm)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, screenHome, m.current())
	require.Contains(t, m.View(), "Dune")
	require.Contains(t, m.View(), "FICTION")
}
