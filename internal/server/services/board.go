package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophboard/internal/common"
	"github.com/dmitrijs2005/gophboard/internal/logging"
	"github.com/dmitrijs2005/gophboard/internal/ordering"
	"github.com/dmitrijs2005/gophboard/internal/server/config"
	"github.com/dmitrijs2005/gophboard/internal/server/models"
	"github.com/dmitrijs2005/gophboard/internal/server/repositories/items"
	"github.com/dmitrijs2005/gophboard/internal/server/repositories/orders"
	"github.com/dmitrijs2005/gophboard/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// Board is an owner's active items together with the per-category orders.
// Items are unordered; Orders is the source of truth for position and always
// has a key for every category.
type Board struct {
	Items  []*models.Item
	Orders map[common.Category][]string
}

// ItemUpdate is the body of a move/edit. Position indexes the destination
// list after the item has been taken out of its source list. Title and
// Content are written only when set.
type ItemUpdate struct {
	ID       string
	Title    *string
	Content  *string
	Category common.Category
	Position int
}

// BoardService keeps the item store and the order store in step.
//
// Each operation writes the item first and the order rows after it, one
// statement at a time and without a transaction. Order rows are replaced
// whole, so two concurrent moves for the same owner can lose one of the
// updates; a full reload on the client reconciles from whatever was stored.
type BoardService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	pageSize    int
	log         logging.Logger

	now   func() time.Time
	newID func() string
}

func NewBoardService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, log logging.Logger) *BoardService {
	pageSize := cfg.DeletedPageSize
	if pageSize <= 0 {
		pageSize = common.DefaultDeletedPageSize
	}
	return &BoardService{
		db:          db,
		repomanager: m,
		pageSize:    pageSize,
		log:         log.With("module", "board"),
		now:         func() time.Time { return time.Now().UTC() },
		newID:       uuid.NewString,
	}
}

func (s *BoardService) items() items.Repository   { return s.repomanager.Items(s.db) }
func (s *BoardService) orders() orders.Repository { return s.repomanager.Orders(s.db) }

// All returns the owner's active items and their orders.
func (s *BoardService) All(ctx context.Context, owner string) (*Board, error) {
	list, err := s.items().ListActive(ctx, owner)
	if err != nil {
		return nil, s.internal(ctx, "list items", err)
	}
	rows, err := s.orders().ListByOwner(ctx, owner)
	if err != nil {
		return nil, s.internal(ctx, "list orders", err)
	}

	board := &Board{Items: list, Orders: make(map[common.Category][]string, len(common.Categories))}
	for _, c := range common.Categories {
		board.Orders[c] = []string{}
	}
	for _, o := range rows {
		if o.Category.Valid() {
			board.Orders[o.Category] = o.ItemIDs
		}
	}
	return board, nil
}

// Create stores a new item and puts it at the top of its category.
func (s *BoardService) Create(ctx context.Context, owner string, category common.Category, title string) (string, error) {
	if !category.Valid() {
		return "", fmt.Errorf("%w: unknown category %q", common.ErrInvalidBody, category)
	}

	now := s.now()
	item := &models.Item{
		ID:        s.newID(),
		Owner:     owner,
		Title:     title,
		Category:  category,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.items().Create(ctx, item); err != nil {
		return "", s.internal(ctx, "create item", err)
	}

	order, err := s.findOrNew(ctx, owner, category)
	if err != nil {
		return "", err
	}
	order.ItemIDs = ordering.Prepend(order.ItemIDs, item.ID)
	if err := s.orders().Save(ctx, order); err != nil {
		return "", s.internal(ctx, "save order", err)
	}

	s.log.Debug(ctx, "item created", "owner", owner, "id", item.ID, "category", category)
	return item.ID, nil
}

// Move rewrites the supplied title and content and places the item at u.Position of
// u.Category. A missing order row for the item's current category is
// ErrItemOrderNotFound and nothing is written; a missing destination row is
// created.
func (s *BoardService) Move(ctx context.Context, owner string, u ItemUpdate) (string, error) {
	if !u.Category.Valid() {
		return "", fmt.Errorf("%w: unknown category %q", common.ErrInvalidBody, u.Category)
	}

	item, err := s.activeItem(ctx, owner, u.ID)
	if err != nil {
		return "", err
	}
	oldCategory := item.Category
	same := oldCategory == u.Category

	src, err := s.orders().Find(ctx, owner, oldCategory)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrItemOrderNotFound
		}
		return "", s.internal(ctx, "find order", err)
	}

	dst := src
	if !same {
		dst, err = s.findOrNew(ctx, owner, u.Category)
		if err != nil {
			return "", err
		}
	}

	srcIDs, dstIDs := ordering.Move(src.ItemIDs, dst.ItemIDs, item.ID, u.Position, same)

	if u.Title != nil {
		item.Title = *u.Title
	}
	if u.Content != nil {
		item.Content = *u.Content
	}
	item.Category = u.Category
	item.UpdatedAt = s.now()
	if err := s.items().Update(ctx, item); err != nil {
		return "", s.internal(ctx, "update item", err)
	}

	src.ItemIDs = srcIDs
	if err := s.orders().Save(ctx, src); err != nil {
		return "", s.internal(ctx, "save source order", err)
	}
	if !same {
		dst.ItemIDs = dstIDs
		if err := s.orders().Save(ctx, dst); err != nil {
			return "", s.internal(ctx, "save destination order", err)
		}
	}

	s.log.Debug(ctx, "item moved", "owner", owner, "id", item.ID,
		"from", oldCategory, "to", u.Category, "position", u.Position)
	return item.ID, nil
}

// SoftDelete flags the item deleted and drops it from category. The item's
// own category is cleaned as well when the caller's view was stale.
func (s *BoardService) SoftDelete(ctx context.Context, owner, id string, category common.Category) error {
	if !category.Valid() {
		return fmt.Errorf("%w: unknown category %q", common.ErrInvalidBody, category)
	}

	item, err := s.item(ctx, owner, id)
	if err != nil {
		return err
	}

	item.Deleted = true
	item.UpdatedAt = s.now()
	if err := s.items().Update(ctx, item); err != nil {
		return s.internal(ctx, "update item", err)
	}

	return s.removeFromOrders(ctx, owner, id, category, item.Category)
}

// PermanentDelete removes the item record and its id from the orders.
func (s *BoardService) PermanentDelete(ctx context.Context, owner, id string, category common.Category) error {
	if !category.Valid() {
		return fmt.Errorf("%w: unknown category %q", common.ErrInvalidBody, category)
	}

	item, err := s.item(ctx, owner, id)
	if err != nil {
		return err
	}

	if err := s.items().Delete(ctx, owner, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrItemNotFound
		}
		return s.internal(ctx, "delete item", err)
	}

	return s.removeFromOrders(ctx, owner, id, category, item.Category)
}

// ListDeleted returns one page of the deleted log, newest first. An empty
// page marks the end.
func (s *BoardService) ListDeleted(ctx context.Context, owner string, offset int) ([]*models.Item, error) {
	if offset < 0 {
		return nil, fmt.Errorf("%w: negative offset", common.ErrInvalidBody)
	}
	list, err := s.items().ListDeleted(ctx, owner, offset, s.pageSize)
	if err != nil {
		return nil, s.internal(ctx, "list deleted", err)
	}
	return list, nil
}

// Restore clears the deleted flag and puts the item back at the top of the
// category it was deleted from.
func (s *BoardService) Restore(ctx context.Context, owner, id string) (*models.Item, error) {
	item, err := s.item(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	item.Deleted = false
	item.UpdatedAt = s.now()
	if err := s.items().Update(ctx, item); err != nil {
		return nil, s.internal(ctx, "update item", err)
	}

	order, err := s.findOrNew(ctx, owner, item.Category)
	if err != nil {
		return nil, err
	}
	order.ItemIDs = ordering.Prepend(order.ItemIDs, item.ID)
	if err := s.orders().Save(ctx, order); err != nil {
		return nil, s.internal(ctx, "save order", err)
	}

	return item, nil
}

func (s *BoardService) item(ctx context.Context, owner, id string) (*models.Item, error) {
	item, err := s.items().Get(ctx, owner, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrItemNotFound
		}
		return nil, s.internal(ctx, "get item", err)
	}
	return item, nil
}

func (s *BoardService) activeItem(ctx context.Context, owner, id string) (*models.Item, error) {
	item, err := s.item(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if item.Deleted {
		return nil, common.ErrItemNotFound
	}
	return item, nil
}

func (s *BoardService) findOrNew(ctx context.Context, owner string, category common.Category) (*models.Order, error) {
	order, err := s.orders().Find(ctx, owner, category)
	if err == nil {
		return order, nil
	}
	if errors.Is(err, common.ErrorNotFound) {
		return &models.Order{Owner: owner, Category: category, ItemIDs: []string{}}, nil
	}
	return nil, s.internal(ctx, "find order", err)
}

// removeFromOrders drops id from each listed category that has a row.
func (s *BoardService) removeFromOrders(ctx context.Context, owner, id string, categories ...common.Category) error {
	seen := make(map[common.Category]bool, len(categories))
	for _, c := range categories {
		if seen[c] || !c.Valid() {
			continue
		}
		seen[c] = true

		order, err := s.orders().Find(ctx, owner, c)
		if errors.Is(err, common.ErrorNotFound) {
			continue
		}
		if err != nil {
			return s.internal(ctx, "find order", err)
		}
		order.ItemIDs = ordering.Remove(order.ItemIDs, id)
		if err := s.orders().Save(ctx, order); err != nil {
			return s.internal(ctx, "save order", err)
		}
	}
	return nil
}

// internal logs a store failure and hides it behind common.ErrorInternal.
func (s *BoardService) internal(ctx context.Context, op string, err error) error {
	s.log.Error(ctx, op+" failed", "error", err)
	return fmt.Errorf("%w: %s: %v", common.ErrorInternal, op, err)
}
