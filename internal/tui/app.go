// Package tui implements the interactive terminal book browser.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bookview/internal/browser"
	"bookview/internal/googlebooks"
	"bookview/internal/viewmodel"
)

const (
	defaultListWidth  = 72
	defaultListHeight = 20
)

// openBrowser is swapped out in tests.
var openBrowser = browser.Open

type screen int

const (
	screenHome screen = iota
	screenSearch
	screenDetail
)

// stateMsg signals that some view-model slot changed.
type stateMsg struct{}

func waitForUpdate(updates <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-updates
		return stateMsg{}
	}
}

type appModel struct {
	vm      *viewmodel.BookViewModel
	queries []string

	stack      []screen
	homeCursor int
	focusInput bool

	spinner spinner.Model
	input   textinput.Model
	results list.Model

	width  int
	height int
}

func newAppModel(vm *viewmodel.BookViewModel, queries []string) *appModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	input := textinput.New()
	input.Placeholder = "search books..."
	input.CharLimit = 120
	input.Width = defaultListWidth - 4

	results := list.New(nil, newBookDelegate(), defaultListWidth, defaultListHeight)
	results.SetShowStatusBar(false)
	results.SetFilteringEnabled(false)
	results.SetShowHelp(false)
	results.SetShowTitle(false)
	results.SetShowPagination(false)
	results.DisableQuitKeybindings()
	results.Styles.NoItems = lipgloss.NewStyle()

	return &appModel{
		vm:      vm,
		queries: queries,
		stack:   []screen{screenHome},
		spinner: sp,
		input:   input,
		results: results,
	}
}

func (m *appModel) current() screen {
	return m.stack[len(m.stack)-1]
}

func (m *appModel) push(s screen) {
	m.stack = append(m.stack, s)
}

func (m *appModel) pop() {
	if len(m.stack) > 1 {
		m.stack = m.stack[:len(m.stack)-1]
	}
}

func (m *appModel) Init() tea.Cmd {
	vm := m.vm
	queries := m.queries
	return tea.Batch(
		m.spinner.Tick,
		textinput.Blink,
		func() tea.Msg {
			vm.LoadVolumeList(queries...)
			return nil
		},
		waitForUpdate(vm.Updates()),
	)
}

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case stateMsg:
		m.syncSearchResults()
		m.clampHomeCursor()
		return m, waitForUpdate(m.vm.Updates())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		width := clamp(defaultListWidth, msg.Width-4, 40)
		height := clamp(defaultListHeight, msg.Height-8, 5)
		m.results.SetSize(width, height)
		m.input.Width = width - 4
		return m, nil
	}

	return m.updateFocused(msg)
}

func (m *appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.current() {
	case screenHome:
		return m.handleHomeKey(msg)
	case screenSearch:
		return m.handleSearchKey(msg)
	case screenDetail:
		return m.handleDetailKey(msg)
	}
	return m, nil
}

func (m *appModel) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "/":
		m.push(screenSearch)
		m.focusInput = true
		m.input.Focus()
		return m, textinput.Blink
	case "r":
		if _, failed := m.vm.VolumeList().(viewmodel.VolumeListError); failed {
			m.vm.RetryVolumeList()
		}
		return m, nil
	case "up", "k":
		if m.homeCursor > 0 {
			m.homeCursor--
		}
		return m, nil
	case "down", "j":
		if m.homeCursor < len(m.homeBooks())-1 {
			m.homeCursor++
		}
		return m, nil
	case "enter":
		books := m.homeBooks()
		if m.homeCursor < len(books) {
			m.vm.FetchBookDetail(books[m.homeCursor])
			m.push(screenDetail)
		}
		return m, nil
	}
	return m, nil
}

func (m *appModel) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pop()
		m.focusInput = false
		m.input.Blur()
		return m, nil
	case "enter":
		if m.focusInput {
			query := strings.TrimSpace(m.input.Value())
			if query != "" {
				m.vm.SearchBooks(query)
				m.focusInput = false
				m.input.Blur()
			}
			return m, nil
		}
		if selected, ok := m.results.SelectedItem().(bookItem); ok {
			m.vm.FetchBookDetail(selected.Book)
			m.push(screenDetail)
		}
		return m, nil
	case "/":
		if !m.focusInput {
			m.focusInput = true
			m.input.Focus()
			return m, textinput.Blink
		}
	case "r":
		if !m.focusInput {
			if _, failed := m.vm.Search().(viewmodel.BookSearchError); failed {
				m.vm.RetrySearch()
			}
			return m, nil
		}
	}

	return m.updateFocused(msg)
}

func (m *appModel) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pop()
		return m, nil
	case "o":
		if detail, ok := m.vm.BookDetail().(viewmodel.BookDetailSuccess); ok {
			// Open falls back to the Google front page for an empty URL
			_ = openBrowser(detail.Detail.SaleInfo.BuyLink)
		}
		return m, nil
	case "p":
		if detail, ok := m.vm.BookDetail().(viewmodel.BookDetailSuccess); ok {
			if link := detail.Detail.VolumeInfo.PreviewLink; link != "" {
				_ = openBrowser(link)
			}
		}
		return m, nil
	case "r":
		if _, failed := m.vm.BookDetail().(viewmodel.BookDetailError); failed {
			m.vm.RetryBookDetail()
		}
		return m, nil
	}
	return m, nil
}

// updateFocused forwards a message to the component owning the focus on the
// search screen.
func (m *appModel) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.current() != screenSearch {
		return m, nil
	}

	var cmd tea.Cmd
	if m.focusInput {
		m.input, cmd = m.input.Update(msg)
	} else {
		m.results, cmd = m.results.Update(msg)
	}
	return m, cmd
}

// clampHomeCursor keeps the cursor on a row when a reload shrinks the list.
func (m *appModel) clampHomeCursor() {
	if n := len(m.homeBooks()); m.homeCursor >= n {
		if n == 0 {
			m.homeCursor = 0
		} else {
			m.homeCursor = n - 1
		}
	}
}

// homeBooks flattens the shelves into one navigable list, in shelf order.
func (m *appModel) homeBooks() []googlebooks.Book {
	success, ok := m.vm.VolumeList().(viewmodel.VolumeListSuccess)
	if !ok {
		return nil
	}

	var books []googlebooks.Book
	for _, shelf := range success.Shelves {
		books = append(books, shelf.Books...)
	}
	return books
}

// syncSearchResults pushes the latest search snapshot into the results list.
func (m *appModel) syncSearchResults() {
	success, ok := m.vm.Search().(viewmodel.BookSearchSuccess)
	if !ok {
		m.results.SetItems(nil)
		return
	}

	items := make([]list.Item, len(success.Books))
	for i, book := range success.Books {
		items[i] = bookItem{Book: book}
	}
	m.results.SetItems(items)
}

func (m *appModel) View() string {
	switch m.current() {
	case screenSearch:
		return m.searchView()
	case screenDetail:
		return m.detailView()
	default:
		return m.homeView()
	}
}

func (m *appModel) homeView() string {
	header := headerStyle.Render("bookview")

	var body string
	switch state := m.vm.VolumeList().(type) {
	case viewmodel.VolumeListLoading:
		body = m.loadingView("Loading shelves")
	case viewmodel.VolumeListError:
		body = m.errorView("Could not load shelves")
	case viewmodel.VolumeListSuccess:
		body = m.shelvesView(state.Shelves)
	}

	help := helpStyle.Render("Up/Down navigate | Enter details | / search | q quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, body, help)
}

func (m *appModel) shelvesView(shelves []viewmodel.Shelf) string {
	var sb strings.Builder
	index := 0
	for _, shelf := range shelves {
		sb.WriteString(shelfHeaderStyle.Render(strings.ToUpper(shelf.Query)))
		sb.WriteString("\n")
		for _, book := range shelf.Books {
			line := fmt.Sprintf("%s %s", book.VolumeInfo.Title, authorSuffix(book))
			if index == m.homeCursor {
				sb.WriteString(selectedRowStyle.Render("> " + line))
			} else {
				sb.WriteString(rowStyle.Render("  " + line))
			}
			sb.WriteString("\n")
			index++
		}
		sb.WriteString("\n")
	}
	if index == 0 {
		sb.WriteString(rowStyle.Render("No books found"))
	}
	return sb.String()
}

func authorSuffix(book googlebooks.Book) string {
	if author := book.PrimaryAuthor(); author != "" {
		return metaStyle.Render("by " + author)
	}
	return ""
}

func (m *appModel) searchView() string {
	header := headerStyle.Render("Search")
	inputView := inputStyle.Render(m.input.View())

	var body string
	switch m.vm.Search().(type) {
	case viewmodel.BookSearchLoading:
		if len(m.results.Items()) == 0 && m.input.Value() == "" {
			body = rowStyle.Render("Type a query and press Enter")
		} else {
			body = m.loadingView("Searching")
		}
	case viewmodel.BookSearchError:
		body = m.errorView("Search failed")
	case viewmodel.BookSearchSuccess:
		body = m.results.View()
	}

	help := helpStyle.Render("Enter submit/select | / edit query | Esc back")
	return lipgloss.JoinVertical(lipgloss.Left, header, inputView, body, help)
}

func (m *appModel) detailView() string {
	var body string
	switch state := m.vm.BookDetail().(type) {
	case viewmodel.BookDetailLoading:
		body = m.loadingView("Loading book")
	case viewmodel.BookDetailError:
		body = m.errorView("Could not load book")
	case viewmodel.BookDetailSuccess:
		body = RenderDetail(state.Detail)
	}

	help := helpStyle.Render("o buy page | p preview | Esc back")
	return lipgloss.JoinVertical(lipgloss.Left, body, help)
}

// RenderDetail renders the full detail panel for a book. Ratings are shown
// only when the API reported them. Also used by the one-shot show command.
func RenderDetail(book googlebooks.Book) string {
	info := book.VolumeInfo

	var lines []string
	lines = append(lines, detailTitleStyle.Render(info.Title))
	if info.Subtitle != "" {
		lines = append(lines, detailSubtitleStyle.Render(info.Subtitle))
	}
	if len(info.Authors) > 0 {
		lines = append(lines, metaStyle.Render("by "+strings.Join(info.Authors, ", ")))
	}

	var facts []string
	if info.AverageRating > 0 && info.RatingsCount > 0 {
		facts = append(facts, formatRating(info))
	}
	if info.PageCount > 0 {
		facts = append(facts, fmt.Sprintf("%d pages", info.PageCount))
	}
	if info.Publisher != "" {
		facts = append(facts, info.Publisher)
	}
	if year := publicationYear(info.PublishedDate); year != "" {
		facts = append(facts, year)
	}
	if price := book.SaleInfo.ListPrice; price != nil {
		facts = append(facts, fmt.Sprintf("%.2f %s", price.Amount, price.CurrencyCode))
	}
	if len(facts) > 0 {
		lines = append(lines, metaStyle.Render(strings.Join(facts, " | ")))
	}

	if len(info.Categories) > 0 {
		lines = append(lines, categoryStyle.Render(strings.Join(info.Categories, ", ")))
	}
	if info.Description != "" {
		lines = append(lines, "", descriptionStyle.Render(info.Description))
	}

	return detailPanelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *appModel) loadingView(label string) string {
	return fmt.Sprintf("%s %s...", m.spinner.View(), label)
}

func (m *appModel) errorView(label string) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		errorStyle.Render(label),
		helpStyle.Render("r retry"),
	)
}
