package board

import (
	"testing"

	"github.com/dmitrijs2005/gophboard/internal/common"
	"github.com/dmitrijs2005/gophboard/internal/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cards(ids ...string) []Card {
	out := make([]Card, 0, len(ids))
	for _, id := range ids {
		out = append(out, Card{ID: id, Title: "T" + id})
	}
	return out
}

func stateOf(todo, doing, done []string) State {
	s := New()
	s.Columns[common.CategoryTodo] = cards(todo...)
	s.Columns[common.CategoryDoing] = cards(doing...)
	s.Columns[common.CategoryDone] = cards(done...)
	return s
}

func TestNew_AllColumnsPresent(t *testing.T) {
	s := New()
	for _, c := range common.Categories {
		require.NotNil(t, s.Columns[c], c)
		assert.Empty(t, s.Columns[c])
	}
	assert.Nil(t, s.Edit)
}

func TestSetItems_ArrangesByOrder(t *testing.T) {
	items := []wire.Item{
		{ID: "a", Title: "A", Category: common.CategoryTodo},
		{ID: "b", Title: "B", Category: common.CategoryTodo},
		{ID: "c", Title: "C", Category: common.CategoryDoing},
		{ID: "orphan", Title: "O", Category: common.CategoryTodo},
		{ID: "bad", Title: "X", Category: "archive"},
	}
	orders := map[common.Category][]string{
		common.CategoryTodo:  {"b", "ghost", "a"},
		common.CategoryDoing: {"c"},
	}

	s := Reduce(New(), SetItems{Items: items, Orders: orders})

	assert.Equal(t, []string{"b", "a"}, s.IDs(common.CategoryTodo))
	assert.Equal(t, []string{"c"}, s.IDs(common.CategoryDoing))
	assert.Equal(t, []string{}, s.IDs(common.CategoryDone))
	assert.Equal(t, "B", s.Column(common.CategoryTodo)[0].Title)
}

func TestSetItems_KeepsEdit(t *testing.T) {
	edit := &Edit{Card: Card{ID: "a"}, Category: common.CategoryTodo}
	s := Reduce(New(), SetEdit{Edit: edit})
	s = Reduce(s, SetItems{})
	assert.Same(t, edit, s.Edit)
}

func TestCreate_Prepends(t *testing.T) {
	s := stateOf([]string{"a", "b"}, nil, nil)

	next := Reduce(s, Create{Card: Card{ID: "n", Title: "new", Pending: true}, Category: common.CategoryTodo})

	assert.Equal(t, []string{"n", "a", "b"}, next.IDs(common.CategoryTodo))
	assert.True(t, next.Column(common.CategoryTodo)[0].Pending)
	assert.Equal(t, []string{"a", "b"}, s.IDs(common.CategoryTodo), "input must not change")
}

func TestCreate_Ignored(t *testing.T) {
	s := stateOf([]string{"a"}, nil, nil)

	tests := []struct {
		name string
		a    Create
	}{
		{"invalid category", Create{Card: Card{ID: "n"}, Category: "nope"}},
		{"empty id", Create{Card: Card{}, Category: common.CategoryTodo}},
		{"duplicate id", Create{Card: Card{ID: "a"}, Category: common.CategoryDone}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, s, Reduce(s, tc.a))
		})
	}
}

func TestConfirmCreate(t *testing.T) {
	s := Reduce(stateOf([]string{"a"}, nil, nil), Create{Card: Card{ID: "tmp", Pending: true}, Category: common.CategoryTodo})
	s = Reduce(s, SetEdit{Edit: &Edit{Card: Card{ID: "tmp", Pending: true}, Category: common.CategoryTodo}})

	next := Reduce(s, ConfirmCreate{TempID: "tmp", ID: "real"})

	assert.Equal(t, []string{"real", "a"}, next.IDs(common.CategoryTodo))
	assert.False(t, next.Column(common.CategoryTodo)[0].Pending)
	require.NotNil(t, next.Edit)
	assert.Equal(t, "real", next.Edit.Card.ID)
	assert.Equal(t, "tmp", s.Edit.Card.ID)

	assert.Equal(t, next, Reduce(next, ConfirmCreate{TempID: "gone", ID: "x"}))
}

func TestUpdate_RequiresEditSession(t *testing.T) {
	s := stateOf([]string{"a"}, nil, nil)

	assert.Equal(t, s, Reduce(s, Update{ID: "a", Title: "x"}))

	s = Reduce(s, SetEdit{Edit: &Edit{Card: Card{ID: "b"}, Category: common.CategoryTodo}})
	assert.Equal(t, s, Reduce(s, Update{ID: "a", Title: "x"}), "session targets a different card")
}

func TestUpdate_EditsInPlace(t *testing.T) {
	s := stateOf([]string{"a", "b"}, []string{"c"}, nil)
	s = Reduce(s, SetEdit{Edit: &Edit{Card: s.Column(common.CategoryTodo)[1], Category: common.CategoryTodo, Position: 1}})

	next := Reduce(s, Update{ID: "b", Title: "new", Content: "# body"})

	assert.Equal(t, []string{"a", "b"}, next.IDs(common.CategoryTodo))
	got := next.Column(common.CategoryTodo)[1]
	assert.Equal(t, "new", got.Title)
	assert.Equal(t, "# body", got.Content)
	assert.Equal(t, got, next.Edit.Card)
	assert.Equal(t, 1, next.Edit.Position)
	assert.Equal(t, "Tb", s.Column(common.CategoryTodo)[1].Title)
}

func TestUpdateCategory_SameColumn(t *testing.T) {
	s := stateOf([]string{"a", "b", "c"}, nil, nil)

	next := Reduce(s, UpdateCategory{ID: "c", From: common.CategoryTodo, To: common.CategoryTodo, Position: 0})

	assert.Equal(t, []string{"c", "a", "b"}, next.IDs(common.CategoryTodo))
	assert.Equal(t, []string{"a", "b", "c"}, s.IDs(common.CategoryTodo))
}

func TestUpdateCategory_CurrentPositionIsNoop(t *testing.T) {
	s := stateOf([]string{"a", "b", "c"}, nil, nil)
	for i, id := range []string{"a", "b", "c"} {
		next := Reduce(s, UpdateCategory{ID: id, From: common.CategoryTodo, To: common.CategoryTodo, Position: i})
		assert.Equal(t, s.IDs(common.CategoryTodo), next.IDs(common.CategoryTodo))
	}
}

func TestUpdateCategory_AcrossColumns(t *testing.T) {
	s := stateOf([]string{"a"}, nil, nil)

	next := Reduce(s, UpdateCategory{ID: "a", From: common.CategoryTodo, To: common.CategoryDoing, Position: 0})

	assert.Equal(t, []string{}, next.IDs(common.CategoryTodo))
	assert.Equal(t, []string{"a"}, next.IDs(common.CategoryDoing))
}

func TestUpdateCategory_DestinationKeepsOneCopy(t *testing.T) {
	s := stateOf([]string{"a", "b"}, []string{"b", "x"}, nil)

	next := Reduce(s, UpdateCategory{ID: "b", From: common.CategoryTodo, To: common.CategoryDoing, Position: 2})

	assert.Equal(t, []string{"a"}, next.IDs(common.CategoryTodo))
	assert.Equal(t, []string{"x", "b"}, next.IDs(common.CategoryDoing))
}

func TestUpdateCategory_PositionClamped(t *testing.T) {
	s := stateOf([]string{"a"}, []string{"x", "y"}, nil)

	next := Reduce(s, UpdateCategory{ID: "a", From: common.CategoryTodo, To: common.CategoryDoing, Position: 99})
	assert.Equal(t, []string{"x", "y", "a"}, next.IDs(common.CategoryDoing))

	next = Reduce(s, UpdateCategory{ID: "a", From: common.CategoryTodo, To: common.CategoryDoing, Position: -4})
	assert.Equal(t, []string{"a", "x", "y"}, next.IDs(common.CategoryDoing))
}

func TestUpdateCategory_UnknownIsNoop(t *testing.T) {
	s := stateOf([]string{"a"}, []string{"b"}, nil)

	assert.Equal(t, s, Reduce(s, UpdateCategory{ID: "b", From: common.CategoryTodo, To: common.CategoryDone}))
	assert.Equal(t, s, Reduce(s, UpdateCategory{ID: "a", From: common.CategoryTodo, To: "later"}))
}

func TestDelete(t *testing.T) {
	s := stateOf([]string{"a", "b"}, nil, nil)
	s = Reduce(s, SetEdit{Edit: &Edit{Card: Card{ID: "a"}, Category: common.CategoryTodo}})

	next := Reduce(s, Delete{ID: "a", Category: common.CategoryTodo})

	assert.Equal(t, []string{"b"}, next.IDs(common.CategoryTodo))
	assert.Nil(t, next.Edit)
	assert.Equal(t, next, Reduce(next, Delete{ID: "a", Category: common.CategoryTodo}))
}

func TestRestore_PrependsAndDeduplicates(t *testing.T) {
	s := stateOf([]string{"a"}, []string{"r"}, nil)

	next := Reduce(s, Restore{Card: Card{ID: "r", Title: "back"}, Category: common.CategoryTodo})

	assert.Equal(t, []string{"r", "a"}, next.IDs(common.CategoryTodo))
	assert.Equal(t, []string{}, next.IDs(common.CategoryDoing))
	assert.Equal(t, "back", next.Column(common.CategoryTodo)[0].Title)
}

func TestFlags(t *testing.T) {
	s := stateOf([]string{"a", "b"}, nil, nil)

	next := Reduce(s, UpdateDragOver{ID: "b", Category: common.CategoryTodo, Value: true})
	assert.True(t, next.Column(common.CategoryTodo)[1].DragOver)
	assert.False(t, s.Column(common.CategoryTodo)[1].DragOver)

	next = Reduce(next, UpdateHover{ID: "a", Category: common.CategoryTodo, Value: true})
	assert.True(t, next.Column(common.CategoryTodo)[0].Hover)

	assert.Equal(t, s, Reduce(s, UpdateHover{ID: "a", Category: common.CategoryDone, Value: true}))
}

func TestReduce_UnknownAction(t *testing.T) {
	s := stateOf([]string{"a"}, nil, nil)
	assert.Equal(t, s, Reduce(s, nil))
}

func TestReduce_ZeroStateDoesNotPanic(t *testing.T) {
	var s State
	assert.NotPanics(t, func() {
		s = Reduce(s, Create{Card: Card{ID: "a"}, Category: common.CategoryDone})
		s = Reduce(s, UpdateCategory{ID: "a", From: common.CategoryDone, To: common.CategoryTodo, Position: 3})
		s = Reduce(s, Delete{ID: "missing", Category: common.CategoryDoing})
	})
	assert.Equal(t, []string{"a"}, s.IDs(common.CategoryTodo))
}

func TestFind(t *testing.T) {
	s := stateOf([]string{"a"}, []string{"b", "c"}, nil)

	card, cat, i, ok := s.Find("c")
	require.True(t, ok)
	assert.Equal(t, "c", card.ID)
	assert.Equal(t, common.CategoryDoing, cat)
	assert.Equal(t, 1, i)

	_, _, i, ok = s.Find("zz")
	assert.False(t, ok)
	assert.Equal(t, -1, i)
}
