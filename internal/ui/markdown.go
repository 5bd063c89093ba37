package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/chris-regnier/moodctl/internal/analysis"
)

// mdCache keeps one glamour renderer per width and style pair in use.
type mdCache struct {
	mu       sync.Mutex
	renderer *glamour.TermRenderer
	width    int
	style    string
}

var renderers mdCache

func (c *mdCache) get(width int, style string) (*glamour.TermRenderer, error) {
	if width < 1 {
		width = 80
	}
	if style == "" {
		style = "dark"
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.renderer != nil && c.width == width && c.style == style {
		return c.renderer, nil
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	c.renderer, c.width, c.style = r, width, style
	return r, nil
}

// RenderMarkdownWithStyle renders markdown content using the specified glamour style.
// Returns the original content if rendering fails.
func RenderMarkdownWithStyle(content string, width int, style string) string {
	if content == "" {
		return ""
	}
	r, err := renderers.get(width, style)
	if err != nil {
		return content
	}
	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n")
}

// RenderMarkdown renders markdown with the "dark" style.
func RenderMarkdown(content string, width int) string {
	return RenderMarkdownWithStyle(content, width, "dark")
}

// RenderAnalysis renders a record's panels as styled markdown for plain
// terminal output.
func RenderAnalysis(rec analysis.Record, width int, style string) string {
	return RenderMarkdownWithStyle(analysis.Markdown(analysis.Panels(rec)), width, style)
}
