// Package controller drives the client board: it applies user intents to the
// local state first and then sends them to the server.
//
// Failures are reported through a Notifier and the optimistic state is kept
// as is; Reload brings the board back in line with the server.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophboard/internal/client/board"
	"github.com/dmitrijs2005/gophboard/internal/common"
	"github.com/dmitrijs2005/gophboard/internal/logging"
	"github.com/dmitrijs2005/gophboard/internal/wire"
	"github.com/google/uuid"
)

// ErrPending is returned for a card whose creation the server has not
// confirmed yet; it has no server id to address.
var ErrPending = errors.New("card is not saved yet")

// API is the remote side of the board.
type API interface {
	All(ctx context.Context) (*wire.AllItemsResponse, error)
	Create(ctx context.Context, title string, category common.Category) (string, error)
	Update(ctx context.Context, req wire.UpdateRequest) (string, error)
	Delete(ctx context.Context, id string, category common.Category) error
	DeletePermanently(ctx context.Context, id string, category common.Category) error
	Deleted(ctx context.Context, offset int) ([]wire.Item, error)
	Restore(ctx context.Context, id string) (*wire.Item, error)
}

// Notifier receives errors from remote calls.
type Notifier interface {
	Notify(err error)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(err error)

func (f NotifierFunc) Notify(err error) { f(err) }

type Controller struct {
	mu     sync.Mutex
	state  board.State
	api    API
	notify Notifier
	log    logging.Logger
	newID  func() string
}

func New(api API, n Notifier, log logging.Logger) *Controller {
	if n == nil {
		n = NotifierFunc(func(error) {})
	}
	return &Controller{
		state:  board.New(),
		api:    api,
		notify: n,
		log:    log.With("module", "controller"),
		newID:  uuid.NewString,
	}
}

// State returns the current board.
func (c *Controller) State() board.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) dispatch(actions ...board.Action) board.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, a := range actions {
		c.state = board.Reduce(c.state, a)
	}
	return c.state
}

// Dispatch applies UI-only transitions such as hover and drag-over flags.
func (c *Controller) Dispatch(a board.Action) board.State {
	return c.dispatch(a)
}

// Apply runs the optimistic half of in.
func (c *Controller) Apply(in Intent) board.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, a := range in.actions(c.state) {
		c.state = board.Reduce(c.state, a)
	}
	return c.state
}

// Commit sends in to the server. On success the reconcile transitions are
// applied; on failure the error goes to the Notifier and the local state is
// left as Apply made it.
func (c *Controller) Commit(ctx context.Context, in Intent) error {
	reconcile, err := in.commit(ctx, c.api)
	if err != nil {
		c.log.Warn(ctx, "commit failed", "intent", fmt.Sprintf("%T", in), "error", err)
		c.notify.Notify(err)
		return err
	}
	c.dispatch(reconcile...)
	return nil
}

// Do applies in and then commits it.
func (c *Controller) Do(ctx context.Context, in Intent) error {
	c.Apply(in)
	return c.Commit(ctx, in)
}

// Create returns an intent adding a card at the top of category.
func (c *Controller) Create(title string, category common.Category) Intent {
	return &CreateIntent{TempID: c.newID(), Title: title, Category: category}
}

// Drop resolves a drag-and-drop against the current board. Dropping on a
// card takes that card's index; dropping on the column body appends. A card
// dropped onto its own position yields a no-op intent.
func (c *Controller) Drop(p DragPayload, t DropTarget) Intent {
	s := c.State()
	col := s.Column(t.Category)

	pos := len(col)
	if t.OnID != "" {
		pos = -1
		for i, card := range col {
			if card.ID == t.OnID {
				pos = i
				break
			}
		}
		if pos < 0 {
			pos = len(col)
		}
	}

	if p.Category == t.Category {
		if _, _, cur, ok := s.Find(p.ID); ok && (cur == pos || (t.OnID == "" && cur == len(col)-1)) {
			return noop{}
		}
	}
	return &MoveIntent{Card: p, To: t.Category, Position: pos}
}

// Move returns an intent placing card id at position of to. It resolves the
// card's current column and text from the board.
func (c *Controller) Move(id string, to common.Category, position int) (Intent, error) {
	card, from, cur, ok := c.State().Find(id)
	if !ok {
		return nil, common.ErrItemNotFound
	}
	if card.Pending {
		return nil, ErrPending
	}
	if from == to && cur == position {
		return noop{}, nil
	}
	return &MoveIntent{
		Card:     DragPayload{ID: card.ID, Title: card.Title, Content: card.Content, Category: from},
		To:       to,
		Position: position,
	}, nil
}

// Edit returns an intent replacing title and content of card id.
func (c *Controller) Edit(id, title, content string) (Intent, error) {
	card, category, pos, ok := c.State().Find(id)
	if !ok {
		return nil, common.ErrItemNotFound
	}
	if card.Pending {
		return nil, ErrPending
	}
	return &EditIntent{ID: id, Title: title, Content: content, Category: category, Position: pos}, nil
}

// BeginEdit opens an edit session on card id.
func (c *Controller) BeginEdit(id string) bool {
	card, category, pos, ok := c.State().Find(id)
	if !ok {
		return false
	}
	c.dispatch(board.SetEdit{Edit: &board.Edit{Card: card, Category: category, Position: pos}})
	return true
}

// EndEdit closes the edit session.
func (c *Controller) EndEdit() {
	c.dispatch(board.SetEdit{})
}

// Delete returns an intent soft-deleting card id.
func (c *Controller) Delete(id string) (Intent, error) {
	card, category, _, ok := c.State().Find(id)
	if !ok {
		return nil, common.ErrItemNotFound
	}
	if card.Pending {
		return nil, ErrPending
	}
	return &DeleteIntent{ID: id, Category: category}, nil
}

// Purge returns an intent removing an item permanently.
func (c *Controller) Purge(id string, category common.Category) Intent {
	return &PurgeIntent{ID: id, Category: category}
}

// Restore returns an intent bringing a deleted item back.
func (c *Controller) Restore(item wire.Item) Intent {
	return &RestoreIntent{Item: item}
}

// OnAuthChanged loads the board after login and clears it after logout.
func (c *Controller) OnAuthChanged(ctx context.Context, authenticated bool) error {
	if !authenticated {
		c.mu.Lock()
		c.state = board.New()
		c.mu.Unlock()
		return nil
	}
	return c.Reload(ctx)
}

// Reload replaces the local board with the server's.
func (c *Controller) Reload(ctx context.Context) error {
	all, err := c.api.All(ctx)
	if err != nil {
		c.log.Warn(ctx, "reload failed", "error", err)
		c.notify.Notify(err)
		return err
	}
	c.dispatch(board.SetItems{Items: all.Items, Orders: all.Orders})
	return nil
}

// DeletedPage reads one page of the deleted log.
func (c *Controller) DeletedPage(ctx context.Context, offset int) ([]wire.Item, error) {
	items, err := c.api.Deleted(ctx, offset)
	if err != nil {
		c.notify.Notify(err)
		return nil, err
	}
	return items, nil
}
