// Package tui is the terminal board: three columns of cards driven by the
// sync controller. Every network call runs as a tea.Cmd off the update loop.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dmitrijs2005/gophboard/internal/client/board"
	"github.com/dmitrijs2005/gophboard/internal/client/controller"
	"github.com/dmitrijs2005/gophboard/internal/common"
	"github.com/dmitrijs2005/gophboard/internal/wire"
)

type mode int

const (
	modeBoard mode = iota
	modeAdd
	modeEditTitle
	modeEditContent
	modeDetail
	modeTrash
)

type Options struct {
	// Timeout bounds every remote call.
	Timeout time.Duration
	// MarkdownStyle is a glamour standard style name.
	MarkdownStyle string
	// PageSize is the deleted log page size of the server.
	PageSize int
}

type Model struct {
	ctrl *controller.Controller
	opts Options
	keys keyMap
	help help.Model

	mode   mode
	col    int
	row    int
	width  int
	height int

	input  textinput.Model
	editor textarea.Model
	editID string

	trash       []wire.Item
	trashOffset int
	trashRow    int

	status  string
	isError bool
}

type reloadedMsg struct{ err error }

type committedMsg struct {
	what string
	err  error
}

type trashMsg struct {
	items  []wire.Item
	offset int
	err    error
}

func New(ctrl *controller.Controller, opts Options) Model {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.PageSize <= 0 {
		opts.PageSize = common.DefaultDeletedPageSize
	}

	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = "Title"
	in.CharLimit = 200

	ed := textarea.New()
	ed.Placeholder = "Markdown content"
	ed.ShowLineNumbers = false

	return Model{
		ctrl:   ctrl,
		opts:   opts,
		keys:   defaultKeys(),
		help:   help.New(),
		input:  in,
		editor: ed,
		width:  90,
		height: 24,
	}
}

// Run shows the board until the user quits or ctx is done.
func Run(ctx context.Context, ctrl *controller.Controller, opts Options) error {
	p := tea.NewProgram(New(ctrl, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.reloadCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.editor.SetWidth(max(20, msg.Width-4))
		m.editor.SetHeight(max(3, msg.Height-10))
		return m, nil

	case reloadedMsg:
		m.setResult("board loaded", msg.err)
		m.clampSelection()
		return m, nil

	case committedMsg:
		m.setResult(msg.what, msg.err)
		m.clampSelection()
		return m, nil

	case trashMsg:
		if msg.err != nil {
			m.setResult("", msg.err)
			return m, nil
		}
		m.trash = msg.items
		m.trashOffset = msg.offset
		m.trashRow = min(m.trashRow, max(0, len(m.trash)-1))
		m.clampSelection()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeAdd:
			return m.updateAdd(msg)
		case modeEditTitle, modeEditContent:
			return m.updateEdit(msg)
		case modeDetail:
			return m.updateDetail(msg)
		case modeTrash:
			return m.updateTrash(msg)
		default:
			return m.updateBoard(msg)
		}
	}
	return m, nil
}

func (m *Model) setResult(what string, err error) {
	if err != nil {
		m.status = err.Error()
		m.isError = true
		return
	}
	m.status = what
	m.isError = false
}

func (m *Model) category() common.Category {
	return common.Categories[m.col]
}

func (m *Model) selected() (board.Card, bool) {
	col := m.ctrl.State().Column(m.category())
	if m.row < 0 || m.row >= len(col) {
		return board.Card{}, false
	}
	return col[m.row], true
}

func (m *Model) clampSelection() {
	m.col = max(0, min(m.col, len(common.Categories)-1))
	n := len(m.ctrl.State().Column(m.category()))
	m.row = max(0, min(m.row, n-1))
}

// follow moves the selection onto card id wherever it is now.
func (m *Model) follow(id string) {
	_, category, i, ok := m.ctrl.State().Find(id)
	if !ok {
		m.clampSelection()
		return
	}
	for ci, c := range common.Categories {
		if c == category {
			m.col = ci
		}
	}
	m.row = i
}

func (m Model) timeoutCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), m.opts.Timeout)
}

func (m Model) reloadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.timeoutCtx()
		defer cancel()
		return reloadedMsg{err: m.ctrl.Reload(ctx)}
	}
}

// commit applies in right away and returns the command sending it.
func (m *Model) commit(in controller.Intent, what string) tea.Cmd {
	if controller.Noop(in) {
		return nil
	}
	m.ctrl.Apply(in)
	ctrl, opts := m.ctrl, m.opts
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
		defer cancel()
		return committedMsg{what: what, err: ctrl.Commit(ctx, in)}
	}
}

func (m Model) trashCmd(offset int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.timeoutCtx()
		defer cancel()
		items, err := m.ctrl.DeletedPage(ctx, offset)
		return trashMsg{items: items, offset: offset, err: err}
	}
}

// trashActionCmd runs in against the server and then re-reads the current
// trash page.
func (m Model) trashActionCmd(in controller.Intent, what string) tea.Cmd {
	offset := m.trashOffset
	return func() tea.Msg {
		ctx, cancel := m.timeoutCtx()
		defer cancel()
		if err := m.ctrl.Do(ctx, in); err != nil {
			return committedMsg{what: what, err: err}
		}
		items, err := m.ctrl.DeletedPage(ctx, offset)
		if err == nil && len(items) == 0 && offset > 0 {
			offset = max(0, offset-m.opts.PageSize)
			items, err = m.ctrl.DeletedPage(ctx, offset)
		}
		return trashMsg{items: items, offset: offset, err: err}
	}
}

func trimTitle(s string) string {
	return strings.TrimSpace(s)
}
