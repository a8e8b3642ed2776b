package export

import (
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"bookview/internal/datastore"
)

func writeToDatastore(books []exportedBook) error {
	records := make([]map[string]any, len(books))
	for i, book := range books {
		records[i] = datastore.BookRecord(book.Book, book.Shelf)
	}

	mode := viper.GetString("datasette.mode")
	switch mode {
	case "local":
		store := datastore.NewSQLiteStore(viper.GetString("datasette.dbfile"))
		if err := store.Connect(); err != nil {
			return fmt.Errorf("failed to connect to SQLite database: %w", err)
		}
		defer func() { _ = store.Close() }()

		if err := store.CreateTable(datastore.BooksTableSchema); err != nil {
			return fmt.Errorf("failed to create books table: %w", err)
		}
		if err := store.UpsertBooks("bookview", records); err != nil {
			return fmt.Errorf("failed to upsert records: %w", err)
		}
		slog.Info("Successfully wrote books to SQLite database", "count", len(records))
	case "remote":
		client := datastore.NewDatasetteClient(
			viper.GetString("datasette.remote_url"),
			viper.GetString("datasette.api_token"),
		)
		if err := client.Connect(); err != nil {
			return fmt.Errorf("failed to connect to remote Datasette: %w", err)
		}
		defer func() { _ = client.Close() }()

		if err := client.UpsertBooks("bookview", records); err != nil {
			return fmt.Errorf("failed to upsert records to remote Datasette: %w", err)
		}
		slog.Info("Successfully wrote books to remote Datasette", "count", len(records))
	default:
		return fmt.Errorf("invalid datasette mode: %s", mode)
	}

	return nil
}
