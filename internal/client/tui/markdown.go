package tui

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

var (
	mdRendererMu sync.Mutex
	// keyed by style and wrap width
	mdRenderers = map[string]*glamour.TermRenderer{}
)

// renderMarkdown renders card content for the detail view. It falls back to
// the raw text when rendering fails.
func renderMarkdown(md, style string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if style == "" {
		style = styles.DarkStyle
	}
	if width < 20 {
		width = 20
	}

	key := style + ":" + strconv.Itoa(width)
	mdRendererMu.Lock()
	defer mdRendererMu.Unlock()

	r := mdRenderers[key]
	if r == nil {
		// WithAutoStyle queries the terminal and can block; use a fixed style.
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		mdRenderers[key] = rr
		r = rr
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

// RenderMarkdown is renderMarkdown for callers outside the terminal board.
func RenderMarkdown(md, style string, width int) string {
	return renderMarkdown(md, style, width)
}
