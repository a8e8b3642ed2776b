package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"bookview/internal/browser"
	"bookview/internal/tui"
)

// ShowCmd represents the one-shot volume detail command
type ShowCmd struct {
	ID      string `arg:"" help:"Google Books volume id"`
	JSON    bool   `help:"Print the volume as JSON"`
	Open    bool   `help:"Open the buy page in the browser"`
	Preview bool   `help:"Open the preview page in the browser"`
}

func (s *ShowCmd) Run() error {
	repo := newRepository(cacheEnabled())
	book, err := repo.GetVolume(context.Background(), s.ID)
	if err != nil {
		return fmt.Errorf("failed to fetch volume %s: %w", s.ID, err)
	}

	if s.JSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(book); err != nil {
			return err
		}
	} else {
		fmt.Println(tui.RenderDetail(*book))
	}

	if s.Open {
		// falls back to the Google front page when there is no buy link
		if err := browser.Open(book.SaleInfo.BuyLink); err != nil {
			return err
		}
	}
	if s.Preview {
		if link := book.VolumeInfo.PreviewLink; link != "" {
			if err := browser.Open(link); err != nil {
				return err
			}
		}
	}

	return nil
}
