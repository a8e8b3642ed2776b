// Package export fetches book shelves from the Google Books API and writes
// each book out as a markdown note, an optional JSON dump and rows in a
// local SQLite database or remote Datasette instance.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/viper"

	"bookview/internal/config"
	"bookview/internal/googlebooks"
	"bookview/internal/repository"
)

// Options control a single export run.
type Options struct {
	// Queries are the shelf queries to fetch. Empty means the configured
	// default queries.
	Queries []string
	// Output is the subdirectory under the markdown output directory.
	Output string
	// WriteJSON enables the JSON dump.
	WriteJSON bool
	// JSONOutput overrides the JSON dump path.
	JSONOutput string
	// DownloadCovers enables cover image downloads.
	DownloadCovers bool
}

// exportedBook pairs a fetched book with the shelf query that produced it.
type exportedBook struct {
	googlebooks.Book
	Shelf string `json:"shelf"`
}

// ExportWithParams fetches every configured query through the repository and
// writes the results to all enabled outputs.
func ExportWithParams(ctx context.Context, repo repository.BookRepository, opts Options) error {
	queries := opts.Queries
	if len(queries) == 0 {
		queries = config.DefaultQueries()
	}
	if len(queries) == 0 {
		return fmt.Errorf("no queries to export (provide arguments or googlebooks.queries in config)")
	}

	baseDir := viper.GetString("markdownoutputdir")
	outputDir := filepath.Join(baseDir, opts.Output)

	var books []exportedBook
	for _, query := range queries {
		response, err := repo.ListVolumes(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to fetch shelf %q: %w", query, err)
		}

		slog.Info("Fetched shelf", "query", query, "count", len(response.Items))

		for _, book := range response.Items {
			if err := writeBookToMarkdown(book, query, outputDir, opts.DownloadCovers); err != nil {
				slog.Error("Error writing markdown for book", "title", book.VolumeInfo.Title, "error", err)
				continue
			}
			books = append(books, exportedBook{Book: book, Shelf: query})
		}
	}

	slog.Info("Successfully processed all shelves", "shelves", len(queries), "books", len(books))

	if opts.WriteJSON {
		jsonOutput := opts.JSONOutput
		if jsonOutput == "" {
			jsonOutput = filepath.Join(viper.GetString("jsonoutputdir"), "books.json")
		}
		if err := writeBooksToJSON(books, jsonOutput); err != nil {
			slog.Error("Error writing books to JSON", "error", err)
		}
	}

	if viper.GetBool("datasette.enabled") {
		if err := writeToDatastore(books); err != nil {
			return err
		}
	}

	return nil
}
