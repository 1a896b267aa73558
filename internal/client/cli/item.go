package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gophboard/internal/client/board"
	"github.com/dmitrijs2005/gophboard/internal/client/controller"
	"github.com/dmitrijs2005/gophboard/internal/client/tui"
	"github.com/dmitrijs2005/gophboard/internal/common"
	"github.com/spf13/cobra"
)

func cardTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return "Untitled"
	}
	return title
}

// List prints the board, or a single column when only is set.
func (a *App) List(ctx context.Context, only common.Category) error {
	if err := a.loadBoard(ctx); err != nil {
		return err
	}
	s := a.ctrl.State()
	for _, c := range common.Categories {
		if only != "" && c != only {
			continue
		}
		col := s.Column(c)
		fmt.Fprintf(a.out, "%s (%d)\n", c, len(col))
		for _, card := range col {
			fmt.Fprintf(a.out, "  %s  %s\n", card.ID, cardTitle(card.Title))
		}
	}
	return nil
}

// do applies and commits in; the board is left as the server confirmed it.
func (a *App) do(ctx context.Context, in controller.Intent) error {
	if controller.Noop(in) {
		return nil
	}
	return a.ctrl.Do(ctx, in)
}

func (a *App) Add(ctx context.Context, title string, category common.Category) error {
	if err := a.loadBoard(ctx); err != nil {
		return err
	}
	if err := a.do(ctx, a.ctrl.Create(title, category)); err != nil {
		return err
	}
	// new cards go on top
	col := a.ctrl.State().Column(category)
	if len(col) > 0 {
		fmt.Fprintln(a.out, col[0].ID)
	}
	return nil
}

// Move places card id in category to at position. A negative position
// appends, as a drop on the column body does.
func (a *App) Move(ctx context.Context, id string, to common.Category, position int) error {
	if err := a.loadBoard(ctx); err != nil {
		return err
	}
	if position < 0 {
		in := a.ctrl.Drop(a.payload(id), controller.DropTarget{Category: to})
		return a.do(ctx, in)
	}
	in, err := a.ctrl.Move(id, to, position)
	if err != nil {
		return err
	}
	return a.do(ctx, in)
}

func (a *App) payload(id string) controller.DragPayload {
	card, category, _, _ := a.ctrl.State().Find(id)
	return controller.DragPayload{ID: id, Title: card.Title, Content: card.Content, Category: category}
}

// Edit replaces title and content of card id. Nil arguments keep the
// current value.
func (a *App) Edit(ctx context.Context, id string, title, content *string) error {
	if err := a.loadBoard(ctx); err != nil {
		return err
	}
	card, _, _, ok := a.ctrl.State().Find(id)
	if !ok {
		return common.ErrItemNotFound
	}

	if title == nil && content == nil {
		t, c, err := a.promptEdit(card)
		if err != nil {
			return err
		}
		title, content = &t, &c
	}
	if title == nil {
		title = &card.Title
	}
	if content == nil {
		content = &card.Content
	}

	a.ctrl.BeginEdit(id)
	defer a.ctrl.EndEdit()
	in, err := a.ctrl.Edit(id, *title, *content)
	if err != nil {
		return err
	}
	return a.do(ctx, in)
}

func (a *App) promptEdit(card board.Card) (string, string, error) {
	title, err := GetSimpleText(a.reader, fmt.Sprintf("Title [%s]", card.Title), a.out)
	if err != nil {
		return "", "", err
	}
	if title == "" {
		title = card.Title
	}
	content, err := GetMultiline(a.reader, "Content (markdown, empty keeps the current one)", a.out)
	if err != nil {
		return "", "", err
	}
	if content == "" {
		content = card.Content
	}
	return title, content, nil
}

func (a *App) Show(ctx context.Context, id string) error {
	if err := a.loadBoard(ctx); err != nil {
		return err
	}
	card, category, _, ok := a.ctrl.State().Find(id)
	if !ok {
		return common.ErrItemNotFound
	}
	fmt.Fprintf(a.out, "%s [%s]\n", cardTitle(card.Title), category)
	if body := tui.RenderMarkdown(card.Content, a.markdownStyle(), 80); body != "" {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, body)
	}
	return nil
}

func (a *App) Remove(ctx context.Context, id string) error {
	if err := a.loadBoard(ctx); err != nil {
		return err
	}
	in, err := a.ctrl.Delete(id)
	if err != nil {
		return err
	}
	return a.do(ctx, in)
}

func parseCategoryArg(args []string, i int) (common.Category, error) {
	if len(args) <= i {
		return "", nil
	}
	return common.ParseCategory(args[i])
}

func readContent(path string, in io.Reader) (string, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(in)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read content: %w", err)
	}
	return string(b), nil
}

func newItemCmds(app *App) []*cobra.Command {
	ls := &cobra.Command{
		Use:     "ls [category]",
		Aliases: []string{"list"},
		Short:   "List cards",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := parseCategoryArg(args, 0)
			if err != nil {
				return err
			}
			return app.List(cmd.Context(), c)
		},
	}

	var addCategory string
	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a card at the top of a column",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := common.ParseCategory(addCategory)
			if err != nil {
				return err
			}
			return app.Add(cmd.Context(), strings.Join(args, " "), c)
		},
	}
	add.Flags().StringVarP(&addCategory, "category", "c", string(common.CategoryTodo), "todo, doing or done")

	mv := &cobra.Command{
		Use:   "mv <id> <category> [position]",
		Short: "Move a card; without a position it goes to the end",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			to, err := common.ParseCategory(args[1])
			if err != nil {
				return err
			}
			pos := -1
			if len(args) == 3 {
				if pos, err = strconv.Atoi(args[2]); err != nil || pos < 0 {
					return fmt.Errorf("%w: position must be a non-negative number", common.ErrInvalidBody)
				}
			}
			return app.Move(cmd.Context(), args[0], to, pos)
		},
	}

	var title, content, contentFile string
	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a card's title or content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var t, c *string
			if cmd.Flags().Changed("title") {
				t = &title
			}
			if cmd.Flags().Changed("content") {
				c = &content
			}
			if contentFile != "" {
				s, err := readContent(contentFile, cmd.InOrStdin())
				if err != nil {
					return err
				}
				c = &s
			}
			return app.Edit(cmd.Context(), args[0], t, c)
		},
	}
	edit.Flags().StringVar(&title, "title", "", "new title")
	edit.Flags().StringVar(&content, "content", "", "new markdown content")
	edit.Flags().StringVar(&contentFile, "content-file", "", "read content from a file, - for stdin")

	return []*cobra.Command{
		ls, add, mv, edit,
		{
			Use:   "show <id>",
			Short: "Show a card with its rendered content",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.Show(cmd.Context(), args[0])
			},
		},
		{
			Use:     "rm <id>",
			Aliases: []string{"delete"},
			Short:   "Move a card to the deleted log",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.Remove(cmd.Context(), args[0])
			},
		},
	}
}
