package board

import (
	"github.com/dmitrijs2005/gophboard/internal/common"
	"github.com/dmitrijs2005/gophboard/internal/wire"
)

// Action is a transition understood by Reduce.
type Action interface {
	action()
}

// SetItems replaces the board with a full server snapshot.
type SetItems struct {
	Items  []wire.Item
	Orders map[common.Category][]string
}

// Create puts a new card at the top of Category.
type Create struct {
	Card     Card
	Category common.Category
}

// ConfirmCreate swaps a pending card's temporary id for the server id.
type ConfirmCreate struct {
	TempID string
	ID     string
}

// Update edits title and content of the card under the open edit session.
type Update struct {
	ID      string
	Title   string
	Content string
}

// SetEdit opens an edit session, or closes it when Edit is nil.
type SetEdit struct {
	Edit *Edit
}

// UpdateCategory moves a card. Position indexes To after the card was taken
// out of From.
type UpdateCategory struct {
	ID       string
	From     common.Category
	To       common.Category
	Position int
}

type Delete struct {
	ID       string
	Category common.Category
}

// Restore puts a card back at the top of Category.
type Restore struct {
	Card     Card
	Category common.Category
}

type UpdateDragOver struct {
	ID       string
	Category common.Category
	Value    bool
}

type UpdateHover struct {
	ID       string
	Category common.Category
	Value    bool
}

func (SetItems) action()       {}
func (Create) action()         {}
func (ConfirmCreate) action()  {}
func (Update) action()         {}
func (SetEdit) action()        {}
func (UpdateCategory) action() {}
func (Delete) action()         {}
func (Restore) action()        {}
func (UpdateDragOver) action() {}
func (UpdateHover) action()    {}
