package export

import (
	"bookview/internal/config"
	"bookview/internal/fileutil"
)

func writeBooksToJSON(books []exportedBook, filename string) error {
	_, err := fileutil.WriteJSONFile(books, filename, config.OverwriteFiles)
	return err
}
