package topics

import "strings"

// Renderer formats topic content for display. format is the topic file
// extension, including the dot.
type Renderer interface {
	Render(content string, format string) string
}

// PlainRenderer prints topics verbatim, only making sure the output ends
// with a single newline.
type PlainRenderer struct{}

// Render returns content with trailing blank lines collapsed to one newline
func (r *PlainRenderer) Render(content string, format string) string {
	return strings.TrimRight(content, "\n") + "\n"
}
