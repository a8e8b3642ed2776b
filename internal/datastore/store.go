// Package datastore persists exported book records for browsing with
// Datasette, either in a local SQLite file or a remote Datasette instance.
package datastore

import "bookview/internal/googlebooks"

// BooksTableSchema is the schema for exported book records. The volume id is
// the primary key, so re-exports upsert instead of duplicating rows.
const BooksTableSchema = `
CREATE TABLE IF NOT EXISTS books (
	id TEXT PRIMARY KEY NOT NULL,
	title TEXT NOT NULL,
	subtitle TEXT,
	authors TEXT,
	publisher TEXT,
	published_date TEXT,
	description TEXT,
	isbn13 TEXT,
	page_count INTEGER,
	average_rating REAL,
	ratings_count INTEGER,
	categories TEXT,
	language TEXT,
	is_ebook INTEGER,
	list_price REAL,
	currency_code TEXT,
	buy_link TEXT,
	preview_link TEXT,
	info_link TEXT,
	shelf TEXT
);
`

// Store is the interface for book record storage backends.
type Store interface {
	// Connect establishes a connection to the data store
	Connect() error

	// CreateTable creates a new table with the given schema if it doesn't exist
	CreateTable(schema string) error

	// UpsertBooks inserts or replaces book records in the books table
	UpsertBooks(database string, records []map[string]any) error

	// Close closes the connection to the data store
	Close() error
}

// BookRecord flattens a Book into a row for the books table. shelf labels
// which query produced the record.
func BookRecord(book googlebooks.Book, shelf string) map[string]any {
	record := map[string]any{
		"id":             book.ID,
		"title":          book.VolumeInfo.Title,
		"subtitle":       book.VolumeInfo.Subtitle,
		"authors":        joinList(book.VolumeInfo.Authors),
		"publisher":      book.VolumeInfo.Publisher,
		"published_date": book.VolumeInfo.PublishedDate,
		"description":    book.VolumeInfo.Description,
		"isbn13":         book.ISBN13(),
		"page_count":     book.VolumeInfo.PageCount,
		"average_rating": book.VolumeInfo.AverageRating,
		"ratings_count":  book.VolumeInfo.RatingsCount,
		"categories":     joinList(book.VolumeInfo.Categories),
		"language":       book.VolumeInfo.Language,
		"is_ebook":       book.SaleInfo.IsEbook,
		"buy_link":       book.SaleInfo.BuyLink,
		"preview_link":   book.VolumeInfo.PreviewLink,
		"info_link":      book.VolumeInfo.InfoLink,
		"shelf":          shelf,
		"list_price":     nil,
		"currency_code":  nil,
	}

	if price := book.SaleInfo.ListPrice; price != nil {
		record["list_price"] = price.Amount
		record["currency_code"] = price.CurrencyCode
	}

	return record
}

func joinList(values []string) string {
	result := ""
	for i, v := range values {
		if i > 0 {
			result += ", "
		}
		result += v
	}
	return result
}
