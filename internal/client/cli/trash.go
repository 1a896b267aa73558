package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophboard/internal/common"
	"github.com/dmitrijs2005/gophboard/internal/wire"
	"github.com/spf13/cobra"
)

// Trash prints one page of the deleted log starting at offset.
func (a *App) Trash(ctx context.Context, offset int) error {
	if err := a.requireSession(ctx); err != nil {
		return err
	}
	items, err := a.ctrl.DeletedPage(ctx, offset)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "nothing deleted")
		return nil
	}
	for _, it := range items {
		fmt.Fprintf(a.out, "  %s  %s  [%s]\n", it.ID, cardTitle(it.Title), it.Category)
	}
	if len(items) == common.DefaultDeletedPageSize {
		fmt.Fprintf(a.out, "more: --offset %d\n", offset+len(items))
	}
	return nil
}

func (a *App) Restore(ctx context.Context, id string) error {
	if err := a.loadBoard(ctx); err != nil {
		return err
	}
	// the server's copy of the item replaces this one on success
	return a.do(ctx, a.ctrl.Restore(wire.Item{ID: id}))
}

// Purge deletes card id for good. Cards still on the board use their
// column; otherwise category names the column it was deleted from.
func (a *App) Purge(ctx context.Context, id string, category common.Category) error {
	if err := a.loadBoard(ctx); err != nil {
		return err
	}
	if _, c, _, ok := a.ctrl.State().Find(id); ok {
		category = c
	}
	return a.do(ctx, a.ctrl.Purge(id, category))
}

func newTrashCmds(app *App) []*cobra.Command {
	var offset int
	trash := &cobra.Command{
		Use:   "trash",
		Short: "List deleted cards, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Trash(cmd.Context(), offset)
		},
	}
	trash.Flags().IntVar(&offset, "offset", 0, "skip this many deleted cards")

	var category string
	purge := &cobra.Command{
		Use:   "purge <id>",
		Short: "Delete a card permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := common.ParseCategory(category)
			if err != nil {
				return err
			}
			return app.Purge(cmd.Context(), args[0], c)
		},
	}
	purge.Flags().StringVarP(&category, "category", "c", string(common.CategoryTodo), "column the card was deleted from")

	return []*cobra.Command{
		trash, purge,
		{
			Use:   "restore <id>",
			Short: "Bring a deleted card back to the top of its column",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.Restore(cmd.Context(), args[0])
			},
		},
	}
}
