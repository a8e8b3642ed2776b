package export

import (
	"fmt"
	"log/slog"

	"bookview/internal/config"
	"bookview/internal/fileutil"
	"bookview/internal/googlebooks"
)

func writeBookToMarkdown(book googlebooks.Book, shelf, directory string, downloadCovers bool) error {
	info := book.VolumeInfo
	if info.Title == "" {
		return fmt.Errorf("book %s has no title", book.ID)
	}

	filePath := fileutil.MarkdownFilePath(info.Title, directory)

	nb := fileutil.NewNoteBuilder().
		Field("title", info.Title).
		Field("subtitle", info.Subtitle).
		Field("authors", info.Authors).
		Field("publisher", info.Publisher).
		Field("published", info.PublishedDate).
		Field("pages", info.PageCount).
		Field("isbn13", book.ISBN13()).
		Field("average_rating", info.AverageRating).
		Field("ratings_count", info.RatingsCount).
		Field("categories", info.Categories).
		Field("language", info.Language).
		Field("googlebooks_id", book.ID)

	tags := []string{"book", "googlebooks"}
	if shelf != "" {
		tags = append(tags, "shelf/"+shelf)
	}
	nb.Tags(tags...)

	if coverURL := book.CoverURL(); coverURL != "" {
		if downloadCovers {
			result, err := fileutil.DownloadCover(fileutil.CoverDownloadOptions{
				URL:          coverURL,
				OutputDir:    directory,
				Filename:     fileutil.BuildCoverFilename(info.Title),
				UpdateCovers: config.UpdateCovers,
			})
			if err != nil {
				slog.Warn("Failed to download cover", "title", info.Title, "error", err)
				nb.Image(coverURL)
			} else if result != nil {
				nb.Field("cover", result.RelativePath)
				nb.Image(result.RelativePath)
			}
		} else {
			nb.Field("cover", coverURL)
			nb.Image(coverURL)
		}
	}

	nb.Paragraph(info.Description)

	if info.InfoLink != "" {
		nb.ExternalLink("Google Books", info.InfoLink)
	}
	if info.PreviewLink != "" {
		nb.ExternalLink("Preview", info.PreviewLink)
	}
	if book.SaleInfo.BuyLink != "" {
		nb.ExternalLink("Buy", book.SaleInfo.BuyLink)
	}

	note, err := nb.Build()
	if err != nil {
		return fmt.Errorf("failed to build markdown: %w", err)
	}

	written, err := fileutil.WriteFileWithOverwrite(filePath, []byte(note), 0644, config.OverwriteFiles)
	if err != nil {
		return err
	}

	if written {
		slog.Info("Wrote markdown file", "path", filePath)
	} else {
		slog.Debug("Markdown file exists, skipping", "path", filePath)
	}

	return nil
}
