package fileutil

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// NoteBuilder constructs a markdown note with YAML frontmatter. Frontmatter
// keys keep insertion order in the rendered output.
type NoteBuilder struct {
	keys    []string
	values  map[string]any
	content strings.Builder
}

// NewNoteBuilder creates an empty note builder.
func NewNoteBuilder() *NoteBuilder {
	return &NoteBuilder{values: make(map[string]any)}
}

// Field adds a frontmatter key-value pair. Empty strings, zero numbers and
// empty slices are dropped so sparse API records produce sparse frontmatter.
func (nb *NoteBuilder) Field(key string, value any) *NoteBuilder {
	switch v := value.(type) {
	case string:
		if v == "" {
			return nb
		}
	case int:
		if v == 0 {
			return nb
		}
	case float64:
		if v == 0 {
			return nb
		}
	case []string:
		if len(v) == 0 {
			return nb
		}
	}

	if _, seen := nb.values[key]; !seen {
		nb.keys = append(nb.keys, key)
	}
	nb.values[key] = value
	return nb
}

// Tags adds a tags list to the frontmatter.
func (nb *NoteBuilder) Tags(tags ...string) *NoteBuilder {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag != "" {
			cleaned = append(cleaned, tag)
		}
	}
	return nb.Field("tags", cleaned)
}

// Paragraph appends a paragraph of body text.
func (nb *NoteBuilder) Paragraph(text string) *NoteBuilder {
	if text == "" {
		return nb
	}
	nb.content.WriteString(text)
	nb.content.WriteString("\n\n")
	return nb
}

// Image appends an embedded image to the body.
func (nb *NoteBuilder) Image(path string) *NoteBuilder {
	if path == "" {
		return nb
	}
	fmt.Fprintf(&nb.content, "![](%s)\n\n", path)
	return nb
}

// ExternalLink appends a markdown link line to the body.
func (nb *NoteBuilder) ExternalLink(title, url string) *NoteBuilder {
	if url == "" {
		return nb
	}
	fmt.Fprintf(&nb.content, "[%s](%s)\n\n", title, url)
	return nb
}

// Build renders the note: YAML frontmatter between --- markers, then body.
func (nb *NoteBuilder) Build() (string, error) {
	var sb strings.Builder
	sb.WriteString("---\n")

	for _, key := range nb.keys {
		entry := map[string]any{key: nb.values[key]}
		encoded, err := yaml.Marshal(entry)
		if err != nil {
			return "", fmt.Errorf("failed to marshal frontmatter field %q: %w", key, err)
		}
		sb.Write(encoded)
	}

	sb.WriteString("---\n\n")
	sb.WriteString(nb.content.String())
	return sb.String(), nil
}
