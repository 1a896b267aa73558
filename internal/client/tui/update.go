package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dmitrijs2005/gophboard/internal/client/controller"
	"github.com/dmitrijs2005/gophboard/internal/common"
)

func (m Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Left):
		m.col--
		m.clampSelection()
	case key.Matches(msg, m.keys.Right):
		m.col++
		m.clampSelection()
	case key.Matches(msg, m.keys.Up):
		m.row--
		m.clampSelection()
	case key.Matches(msg, m.keys.Down):
		m.row++
		m.clampSelection()

	case key.Matches(msg, m.keys.MoveLeft):
		return m.moveAcross(-1)
	case key.Matches(msg, m.keys.MoveRight):
		return m.moveAcross(1)
	case key.Matches(msg, m.keys.MoveUp):
		return m.moveWithin(-1)
	case key.Matches(msg, m.keys.MoveDown):
		return m.moveWithin(1)

	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		m.input.SetValue("")
		m.input.Placeholder = "New card in " + m.category().String()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Edit):
		card, ok := m.selected()
		if !ok || card.Pending || !m.ctrl.BeginEdit(card.ID) {
			return m, nil
		}
		m.mode = modeEditTitle
		m.editID = card.ID
		m.input.SetValue(card.Title)
		m.input.Placeholder = "Title"
		m.editor.SetValue(card.Content)
		m.editor.Blur()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.View):
		if _, ok := m.selected(); ok {
			m.mode = modeDetail
		}

	case key.Matches(msg, m.keys.Delete):
		card, ok := m.selected()
		if !ok || card.Pending {
			return m, nil
		}
		in, err := m.ctrl.Delete(card.ID)
		if err != nil {
			m.setResult("", err)
			return m, nil
		}
		cmd := m.commit(in, "deleted")
		m.clampSelection()
		return m, cmd

	case key.Matches(msg, m.keys.Trash):
		m.mode = modeTrash
		m.trashRow = 0
		return m, m.trashCmd(0)

	case key.Matches(msg, m.keys.Reload):
		m.status = "reloading…"
		m.isError = false
		return m, m.reloadCmd()
	}
	return m, nil
}

// moveAcross drops the selected card into the neighbouring column, onto the
// card at the same row, or at the end when that column is shorter.
func (m Model) moveAcross(dir int) (tea.Model, tea.Cmd) {
	card, ok := m.selected()
	target := m.col + dir
	if !ok || card.Pending || target < 0 || target >= len(common.Categories) {
		return m, nil
	}
	to := common.Categories[target]

	drop := controller.DropTarget{Category: to}
	if dst := m.ctrl.State().Column(to); m.row < len(dst) {
		drop.OnID = dst[m.row].ID
	}
	in := m.ctrl.Drop(controller.DragPayload{
		ID:       card.ID,
		Title:    card.Title,
		Content:  card.Content,
		Category: m.category(),
	}, drop)

	cmd := m.commit(in, "moved to "+to.String())
	m.follow(card.ID)
	return m, cmd
}

func (m Model) moveWithin(dir int) (tea.Model, tea.Cmd) {
	card, ok := m.selected()
	pos := m.row + dir
	if !ok || card.Pending || pos < 0 || pos >= len(m.ctrl.State().Column(m.category())) {
		return m, nil
	}
	in, err := m.ctrl.Move(card.ID, m.category(), pos)
	if err != nil {
		m.setResult("", err)
		return m, nil
	}
	cmd := m.commit(in, "moved")
	m.follow(card.ID)
	return m, cmd
}

func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeBoard
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		title := trimTitle(m.input.Value())
		m.mode = modeBoard
		m.input.Blur()
		m.input.SetValue("")
		if title == "" {
			m.setResult("", errEmptyTitle)
			return m, nil
		}
		cmd := m.commit(m.ctrl.Create(title, m.category()), "created")
		m.row = 0
		return m, cmd
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc:
		m.ctrl.EndEdit()
		m.mode = modeBoard
		m.input.Blur()
		m.editor.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Save):
		return m.saveEdit()
	case m.mode == modeEditTitle && (msg.Type == tea.KeyEnter || key.Matches(msg, m.keys.Next)):
		m.mode = modeEditContent
		m.input.Blur()
		return m, m.editor.Focus()
	case m.mode == modeEditContent && key.Matches(msg, m.keys.Next):
		m.mode = modeEditTitle
		m.editor.Blur()
		return m, m.input.Focus()
	}

	var cmd tea.Cmd
	if m.mode == modeEditTitle {
		m.input, cmd = m.input.Update(msg)
	} else {
		m.editor, cmd = m.editor.Update(msg)
	}
	return m, cmd
}

func (m Model) saveEdit() (tea.Model, tea.Cmd) {
	m.mode = modeBoard
	m.input.Blur()
	m.editor.Blur()

	in, err := m.ctrl.Edit(m.editID, trimTitle(m.input.Value()), m.editor.Value())
	if err != nil {
		m.ctrl.EndEdit()
		m.setResult("", err)
		return m, nil
	}
	cmd := m.commit(in, "saved")
	m.ctrl.EndEdit()
	m.follow(m.editID)
	return m, cmd
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Edit):
		m.mode = modeBoard
		return m.updateBoard(msg)
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.View), key.Matches(msg, m.keys.Quit):
		m.mode = modeBoard
	}
	return m, nil
}

func (m Model) updateTrash(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Trash), key.Matches(msg, m.keys.Quit):
		m.mode = modeBoard
		m.clampSelection()
	case key.Matches(msg, m.keys.Up):
		m.trashRow = max(0, m.trashRow-1)
	case key.Matches(msg, m.keys.Down):
		m.trashRow = min(max(0, len(m.trash)-1), m.trashRow+1)
	case key.Matches(msg, m.keys.NextPage):
		if len(m.trash) == m.opts.PageSize {
			m.trashRow = 0
			return m, m.trashCmd(m.trashOffset + m.opts.PageSize)
		}
	case key.Matches(msg, m.keys.PrevPage):
		if m.trashOffset > 0 {
			m.trashRow = 0
			return m, m.trashCmd(max(0, m.trashOffset-m.opts.PageSize))
		}
	case key.Matches(msg, m.keys.Restore):
		if m.trashRow < len(m.trash) {
			return m, m.trashActionCmd(m.ctrl.Restore(m.trash[m.trashRow]), "restored")
		}
	case key.Matches(msg, m.keys.Purge):
		if m.trashRow < len(m.trash) {
			it := m.trash[m.trashRow]
			return m, m.trashActionCmd(m.ctrl.Purge(it.ID, it.Category), "purged")
		}
	}
	return m, nil
}
