package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bookview/internal/googlebooks"
)

type bookItem struct {
	googlebooks.Book
}

func (i bookItem) Title() string {
	return i.VolumeInfo.Title
}

func (i bookItem) FilterValue() string {
	return i.VolumeInfo.Title
}

func (i bookItem) Description() string {
	if i.SearchInfo != nil {
		return i.SearchInfo.TextSnippet
	}
	return i.VolumeInfo.Description
}

type itemStyles struct {
	normal      lipgloss.Style
	selected    lipgloss.Style
	titleStyle  lipgloss.Style
	ratingStyle lipgloss.Style
	metaStyle   lipgloss.Style
	snippet     lipgloss.Style
}

func newItemStyles() itemStyles {
	asciiBorder := lipgloss.Border{
		Top:         "-",
		Bottom:      "-",
		Left:        "|",
		Right:       "|",
		TopLeft:     "+",
		TopRight:    "+",
		BottomLeft:  "+",
		BottomRight: "+",
	}

	container := lipgloss.NewStyle().
		Border(asciiBorder).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Foreground(lipgloss.Color("252"))

	selected := container.Copy().
		BorderForeground(lipgloss.Color("214")).
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("237"))

	return itemStyles{
		normal:   container,
		selected: selected,
		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("254")),
		ratingStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("178")),
		metaStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("247")).
			Faint(true),
		snippet: lipgloss.NewStyle().
			Foreground(lipgloss.Color("248")),
	}
}

type bookDelegate struct {
	styles itemStyles
}

func newBookDelegate() bookDelegate {
	return bookDelegate{styles: newItemStyles()}
}

func (d bookDelegate) Height() int                         { return 4 }
func (d bookDelegate) Spacing() int                        { return 1 }
func (d bookDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d bookDelegate) Render(w io.Writer, m list.Model, idx int, item list.Item) {
	book, ok := item.(bookItem)
	if !ok {
		return
	}

	info := book.VolumeInfo
	titleLine := d.styles.titleStyle.Render(info.Title)
	metaLine := d.styles.metaStyle.Render(formatBookMeta(book.Book, m.Width()-4))
	snippetLine := d.styles.snippet.Render(truncate(book.Description(), m.Width()-4))

	lines := []string{titleLine, metaLine}
	if info.AverageRating > 0 && info.RatingsCount > 0 {
		lines = append(lines, d.styles.ratingStyle.Render(formatRating(info)))
	}
	lines = append(lines, snippetLine)

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)

	container := d.styles.normal
	if idx == m.Index() {
		container = d.styles.selected
	}
	_, _ = fmt.Fprint(w, container.Render(content))
}

// formatBookMeta creates the metadata line with author, year, pages and language.
func formatBookMeta(book googlebooks.Book, availableWidth int) string {
	var parts []string

	if author := book.PrimaryAuthor(); author != "" {
		parts = append(parts, author)
	}
	if year := publicationYear(book.VolumeInfo.PublishedDate); year != "" {
		parts = append(parts, year)
	}
	if book.VolumeInfo.PageCount > 0 {
		parts = append(parts, fmt.Sprintf("%dp", book.VolumeInfo.PageCount))
	}
	if book.VolumeInfo.Language != "" {
		parts = append(parts, strings.ToUpper(book.VolumeInfo.Language))
	}

	if len(parts) == 0 {
		return "No metadata available"
	}

	meta := strings.Join(parts, " | ")
	if availableWidth > 0 && len(meta) > availableWidth {
		meta = truncate(meta, availableWidth)
	}

	return meta
}

func formatRating(info googlebooks.VolumeInfo) string {
	return fmt.Sprintf("%.1f/5 (%s)", info.AverageRating, formatRatingsCount(info.RatingsCount))
}

// formatRatingsCount formats the ratings count in a compact way.
func formatRatingsCount(count int) string {
	if count >= 1000 {
		return fmt.Sprintf("%.1fK ratings", float64(count)/1000)
	}
	return fmt.Sprintf("%d ratings", count)
}

// publicationYear extracts the year from a Google Books publishedDate, which
// may be YYYY, YYYY-MM or YYYY-MM-DD.
func publicationYear(date string) string {
	if len(date) >= 4 {
		return date[:4]
	}
	return ""
}

func truncate(value string, width int) string {
	value = strings.Join(strings.Fields(value), " ")
	if width <= 0 || len(value) <= width {
		return value
	}
	if width <= 3 {
		return value[:width]
	}
	return value[:width-3] + "..."
}

func clamp(defaultValue, available, minimum int) int {
	width := defaultValue
	if available > 0 && available < defaultValue {
		width = available
	}
	if width < minimum {
		width = minimum
	}
	return width
}
