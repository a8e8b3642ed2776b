package cmd

import (
	"context"

	"bookview/cmd/export"
)

// ExportCmd represents the export command
type ExportCmd struct {
	Queries    []string `arg:"" optional:"" help:"Shelf queries to export (defaults to googlebooks.queries in config)"`
	Output     string   `short:"o" help:"Subdirectory under markdown output directory for book notes" default:"books"`
	JSON       bool     `help:"Write data to JSON format"`
	JSONOutput string   `help:"Path to JSON output file (defaults to json/books.json)"`
	Covers     bool     `help:"Download cover images" default:"true" negatable:""`
}

func (e *ExportCmd) Run() error {
	return export.ExportWithParams(context.Background(), newRepository(cacheEnabled()), export.Options{
		Queries:        e.Queries,
		Output:         e.Output,
		WriteJSON:      e.JSON,
		JSONOutput:     e.JSONOutput,
		DownloadCovers: e.Covers,
	})
}
