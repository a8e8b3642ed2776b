package cmd

import (
	"bookview/internal/config"
	"bookview/internal/tui"
	"bookview/internal/viewmodel"
)

// BrowseCmd represents the interactive browse command
type BrowseCmd struct {
	Queries []string `arg:"" optional:"" help:"Shelf queries (defaults to googlebooks.queries in config)"`
}

func (b *BrowseCmd) Run() error {
	queries := b.Queries
	if len(queries) == 0 {
		queries = config.DefaultQueries()
	}

	// The interactive browser always talks to the network so its states
	// reflect live fetches.
	vm := viewmodel.New(newRepository(false))
	return tui.Run(vm, queries)
}
