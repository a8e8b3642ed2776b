package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"bookview/internal/googlebooks"
)

// SearchCmd represents the one-shot search command
type SearchCmd struct {
	Query []string `arg:"" required:"" help:"Search query"`
	JSON  bool     `help:"Print results as JSON"`
	Limit int      `help:"Maximum number of results to print" default:"10"`
}

func (s *SearchCmd) Run() error {
	query := strings.Join(s.Query, " ")

	repo := newRepository(cacheEnabled())
	response, err := repo.ListVolumes(context.Background(), query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	books := response.Items
	if s.Limit > 0 && len(books) > s.Limit {
		books = books[:s.Limit]
	}

	if s.JSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(books)
	}

	writeSearchResults(os.Stdout, query, response.TotalItems, books)
	return nil
}

var (
	searchHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("214"))

	searchTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("254"))

	searchMetaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("247")).
			Faint(true)
)

func writeSearchResults(w io.Writer, query string, totalItems int, books []googlebooks.Book) {
	fmt.Fprintln(w, searchHeaderStyle.Render(fmt.Sprintf("%d results for %q", totalItems, query)))
	fmt.Fprintln(w)

	for _, book := range books {
		line := searchTitleStyle.Render(book.VolumeInfo.Title)
		if author := book.PrimaryAuthor(); author != "" {
			line += " " + searchMetaStyle.Render("by "+author)
		}
		fmt.Fprintln(w, line)

		var facts []string
		facts = append(facts, book.ID)
		if book.VolumeInfo.PublishedDate != "" {
			facts = append(facts, book.VolumeInfo.PublishedDate)
		}
		if isbn := book.ISBN13(); isbn != "" {
			facts = append(facts, "ISBN "+isbn)
		}
		fmt.Fprintln(w, "  "+searchMetaStyle.Render(strings.Join(facts, " | ")))
	}
}
