// Package board holds the client's mirror of the server board and the pure
// reducer that applies user intents to it before the server confirms them.
package board

import (
	"github.com/dmitrijs2005/gophboard/internal/common"
	"github.com/dmitrijs2005/gophboard/internal/ordering"
)

// Card is one item as the client renders it. DragOver and Hover are UI-only
// flags; Pending marks a card whose creation the server has not confirmed.
type Card struct {
	ID       string
	Title    string
	Content  string
	DragOver bool
	Hover    bool
	Pending  bool
}

// Edit is an open edit session for a single card.
type Edit struct {
	Card     Card
	Category common.Category
	Position int
}

// State maps each category to its ordered cards.
type State struct {
	Columns map[common.Category][]Card
	Edit    *Edit
}

// New returns a board with every column present and empty.
func New() State {
	cols := make(map[common.Category][]Card, len(common.Categories))
	for _, c := range common.Categories {
		cols[c] = []Card{}
	}
	return State{Columns: cols}
}

// Column returns the cards of category. The slice must not be modified.
func (s State) Column(category common.Category) []Card {
	return s.Columns[category]
}

// Find locates a card by id across all columns.
func (s State) Find(id string) (Card, common.Category, int, bool) {
	for _, c := range common.Categories {
		if i := indexOf(s.Columns[c], id); i >= 0 {
			return s.Columns[c][i], c, i, true
		}
	}
	return Card{}, "", -1, false
}

// IDs returns the id order of category, the same shape the server stores.
func (s State) IDs(category common.Category) []string {
	col := s.Columns[category]
	ids := make([]string, 0, len(col))
	for _, card := range col {
		ids = append(ids, card.ID)
	}
	return ids
}

func indexOf(cards []Card, id string) int {
	return ordering.IndexFunc(cards, func(c Card) bool { return c.ID == id })
}

// with returns a shallow copy of s whose column map can be written without
// touching s.
func (s State) with() State {
	cols := make(map[common.Category][]Card, len(common.Categories))
	for k, v := range s.Columns {
		cols[k] = v
	}
	for _, c := range common.Categories {
		if cols[c] == nil {
			cols[c] = []Card{}
		}
	}
	return State{Columns: cols, Edit: s.Edit}
}
