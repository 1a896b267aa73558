package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/dmitrijs2005/gophboard/internal/client/board"
	"github.com/dmitrijs2005/gophboard/internal/common"
)

var errEmptyTitle = errors.New("title cannot be empty")

func (m Model) View() string {
	var body string
	switch m.mode {
	case modeDetail:
		body = m.viewDetail()
	case modeEditTitle, modeEditContent:
		body = m.viewEdit()
	case modeTrash:
		body = m.viewTrash()
	default:
		body = m.viewBoard()
		if m.mode == modeAdd {
			body = lipgloss.JoinVertical(lipgloss.Left, body, m.input.View())
		}
	}

	parts := []string{titleStyle.Render("gophboard"), body}
	if m.status != "" {
		st := mutedStyle
		if m.isError {
			st = errorStyle
		}
		parts = append(parts, st.Render(m.status))
	}
	parts = append(parts, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func cardLabel(c board.Card) string {
	title := c.Title
	if strings.TrimSpace(title) == "" {
		title = "Untitled"
	}
	if c.Pending {
		title += " …"
	}
	return title
}

func (m Model) viewBoard() string {
	s := m.ctrl.State()
	width := max(16, (m.width-2)/len(common.Categories)-4)

	cols := make([]string, 0, len(common.Categories))
	for ci, c := range common.Categories {
		cards := s.Column(c)
		header := lipgloss.NewStyle().Bold(true).Foreground(headerColors[c.String()]).
			Render(fmt.Sprintf("%s (%d)", c, len(cards)))

		lines := []string{header, ""}
		for ri, card := range cards {
			label := truncate(cardLabel(card), width)
			if ci == m.col && ri == m.row {
				label = selectedStyle.Render(label)
			}
			lines = append(lines, label)
		}
		if len(cards) == 0 {
			lines = append(lines, mutedStyle.Render("empty"))
		}

		st := columnStyle
		if ci == m.col {
			st = activeColumnStyle
		}
		cols = append(cols, st.Width(width).Render(strings.Join(lines, "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m Model) viewDetail() string {
	card, ok := m.selected()
	if !ok {
		return mutedStyle.Render("nothing selected")
	}
	head := lipgloss.NewStyle().Bold(true).Render(cardLabel(card)) +
		mutedStyle.Render("  ["+m.category().String()+"]")
	content := renderMarkdown(card.Content, m.opts.MarkdownStyle, m.width-4)
	if content == "" {
		content = mutedStyle.Render("no content")
	}
	return lipgloss.JoinVertical(lipgloss.Left, head, "", content)
}

func (m Model) viewEdit() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		mutedStyle.Render("Title"),
		m.input.View(),
		"",
		mutedStyle.Render("Content (markdown)"),
		m.editor.View(),
	)
}

func (m Model) viewTrash() string {
	page := m.trashOffset/m.opts.PageSize + 1
	lines := []string{lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Deleted, page %d", page)), ""}
	if len(m.trash) == 0 {
		lines = append(lines, mutedStyle.Render("nothing here"))
	}
	for i, it := range m.trash {
		label := cardLabel(board.Card{Title: it.Title}) + mutedStyle.Render("  ["+it.Category.String()+"]")
		if i == m.trashRow {
			label = selectedStyle.Render(cardLabel(board.Card{Title: it.Title})) + mutedStyle.Render("  ["+it.Category.String()+"]")
		}
		lines = append(lines, label)
	}
	return strings.Join(lines, "\n")
}

// truncate cuts s to n terminal cells, ending with an ellipsis when cut.
func truncate(s string, n int) string {
	if n <= 1 || xansi.StringWidth(s) <= n {
		return s
	}
	return xansi.Cut(s, 0, n-1) + "…"
}
