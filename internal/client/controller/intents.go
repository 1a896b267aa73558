package controller

import (
	"context"

	"github.com/dmitrijs2005/gophboard/internal/client/board"
	"github.com/dmitrijs2005/gophboard/internal/common"
	"github.com/dmitrijs2005/gophboard/internal/wire"
)

// Intent is one user gesture. actions yields the optimistic transitions;
// commit performs the remote call and yields the reconcile transitions.
type Intent interface {
	actions(s board.State) []board.Action
	commit(ctx context.Context, api API) ([]board.Action, error)
}

// DragPayload describes the card being dragged.
type DragPayload struct {
	ID       string
	Title    string
	Content  string
	Category common.Category
}

// DropTarget is where a card is released. An empty OnID means the column
// body, which places the card at the end.
type DropTarget struct {
	Category common.Category
	OnID     string
}

// CreateIntent adds a card under a temporary id that the server id replaces
// on success.
type CreateIntent struct {
	TempID   string
	Title    string
	Category common.Category
}

func (i *CreateIntent) actions(board.State) []board.Action {
	return []board.Action{board.Create{
		Card:     board.Card{ID: i.TempID, Title: i.Title, Pending: true},
		Category: i.Category,
	}}
}

func (i *CreateIntent) commit(ctx context.Context, api API) ([]board.Action, error) {
	id, err := api.Create(ctx, i.Title, i.Category)
	if err != nil {
		return nil, err
	}
	return []board.Action{board.ConfirmCreate{TempID: i.TempID, ID: id}}, nil
}

// MoveIntent places a card at Position of To.
type MoveIntent struct {
	Card     DragPayload
	To       common.Category
	Position int
}

func (i *MoveIntent) actions(board.State) []board.Action {
	return []board.Action{board.UpdateCategory{
		ID:       i.Card.ID,
		From:     i.Card.Category,
		To:       i.To,
		Position: i.Position,
	}}
}

func (i *MoveIntent) commit(ctx context.Context, api API) ([]board.Action, error) {
	title, content := i.Card.Title, i.Card.Content
	_, err := api.Update(ctx, wire.UpdateRequest{
		ID:       i.Card.ID,
		Title:    &title,
		Content:  &content,
		Category: i.To,
		Position: i.Position,
	})
	return nil, err
}

// EditIntent changes title and content and keeps the card where it is.
type EditIntent struct {
	ID       string
	Title    string
	Content  string
	Category common.Category
	Position int
}

func (i *EditIntent) actions(s board.State) []board.Action {
	var out []board.Action
	if s.Edit == nil || s.Edit.Card.ID != i.ID {
		card, _, _, _ := s.Find(i.ID)
		out = append(out, board.SetEdit{Edit: &board.Edit{Card: card, Category: i.Category, Position: i.Position}})
	}
	return append(out, board.Update{ID: i.ID, Title: i.Title, Content: i.Content})
}

func (i *EditIntent) commit(ctx context.Context, api API) ([]board.Action, error) {
	title, content := i.Title, i.Content
	_, err := api.Update(ctx, wire.UpdateRequest{
		ID:       i.ID,
		Title:    &title,
		Content:  &content,
		Category: i.Category,
		Position: i.Position,
	})
	return nil, err
}

// DeleteIntent moves a card to the deleted log.
type DeleteIntent struct {
	ID       string
	Category common.Category
}

func (i *DeleteIntent) actions(board.State) []board.Action {
	return []board.Action{board.Delete{ID: i.ID, Category: i.Category}}
}

func (i *DeleteIntent) commit(ctx context.Context, api API) ([]board.Action, error) {
	return nil, api.Delete(ctx, i.ID, i.Category)
}

// PurgeIntent removes a card for good. It may target a card that is only in
// the deleted log.
type PurgeIntent struct {
	ID       string
	Category common.Category
}

func (i *PurgeIntent) actions(board.State) []board.Action {
	return []board.Action{board.Delete{ID: i.ID, Category: i.Category}}
}

func (i *PurgeIntent) commit(ctx context.Context, api API) ([]board.Action, error) {
	return nil, api.DeletePermanently(ctx, i.ID, i.Category)
}

// RestoreIntent brings a deleted card back to the top of its category.
type RestoreIntent struct {
	Item wire.Item
}

func (i *RestoreIntent) actions(board.State) []board.Action {
	return []board.Action{restoreAction(i.Item)}
}

func (i *RestoreIntent) commit(ctx context.Context, api API) ([]board.Action, error) {
	item, err := api.Restore(ctx, i.Item.ID)
	if err != nil {
		return nil, err
	}
	return []board.Action{restoreAction(*item)}, nil
}

func restoreAction(it wire.Item) board.Action {
	return board.Restore{
		Card:     board.Card{ID: it.ID, Title: it.Title, Content: it.Content},
		Category: it.Category,
	}
}

type noop struct{}

func (noop) actions(board.State) []board.Action                  { return nil }
func (noop) commit(context.Context, API) ([]board.Action, error) { return nil, nil }

// Noop reports whether in does nothing, as for a card dropped onto itself.
func Noop(in Intent) bool {
	_, ok := in.(noop)
	return ok
}
