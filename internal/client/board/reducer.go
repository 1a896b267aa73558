package board

import (
	"github.com/dmitrijs2005/gophboard/internal/common"
	"github.com/dmitrijs2005/gophboard/internal/ordering"
)

// Reduce applies a to s and returns the next state. s is never modified.
// Transitions that do not apply (unknown ids, invalid categories, an update
// with no matching edit session) return s unchanged.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetItems:
		return setItems(s, a)
	case Create:
		return create(s, a)
	case ConfirmCreate:
		return confirmCreate(s, a)
	case Update:
		return update(s, a)
	case SetEdit:
		next := s.with()
		next.Edit = a.Edit
		return next
	case UpdateCategory:
		return updateCategory(s, a)
	case Delete:
		return remove(s, a)
	case Restore:
		return restore(s, a)
	case UpdateDragOver:
		return setFlag(s, a.Category, a.ID, func(c *Card) { c.DragOver = a.Value })
	case UpdateHover:
		return setFlag(s, a.Category, a.ID, func(c *Card) { c.Hover = a.Value })
	}
	return s
}

func setItems(s State, a SetItems) State {
	buckets := make(map[common.Category][]Card, len(common.Categories))
	for _, it := range a.Items {
		if !it.Category.Valid() {
			continue
		}
		buckets[it.Category] = append(buckets[it.Category], Card{ID: it.ID, Title: it.Title, Content: it.Content})
	}

	next := s.with()
	for _, c := range common.Categories {
		next.Columns[c] = ordering.Arrange(a.Orders[c], buckets[c], func(card Card) string { return card.ID })
	}
	return next
}

func create(s State, a Create) State {
	if !a.Category.Valid() || a.Card.ID == "" {
		return s
	}
	if _, _, _, exists := s.Find(a.Card.ID); exists {
		return s
	}
	next := s.with()
	next.Columns[a.Category] = ordering.InsertAt(s.Columns[a.Category], 0, a.Card)
	return next
}

func confirmCreate(s State, a ConfirmCreate) State {
	card, category, i, ok := s.Find(a.TempID)
	if !ok {
		return s
	}
	next := s.with()
	col := append([]Card(nil), s.Columns[category]...)
	card.ID = a.ID
	card.Pending = false
	col[i] = card
	next.Columns[category] = col

	if s.Edit != nil && s.Edit.Card.ID == a.TempID {
		edit := *s.Edit
		edit.Card.ID = a.ID
		edit.Card.Pending = false
		next.Edit = &edit
	}
	return next
}

func update(s State, a Update) State {
	if s.Edit == nil || s.Edit.Card.ID != a.ID {
		return s
	}
	card, category, i, ok := s.Find(a.ID)
	if !ok {
		return s
	}

	next := s.with()
	col := append([]Card(nil), s.Columns[category]...)
	card.Title = a.Title
	card.Content = a.Content
	col[i] = card
	next.Columns[category] = col

	edit := *s.Edit
	edit.Card = card
	next.Edit = &edit
	return next
}

func updateCategory(s State, a UpdateCategory) State {
	if !a.From.Valid() || !a.To.Valid() {
		return s
	}
	i := indexOf(s.Columns[a.From], a.ID)
	if i < 0 {
		return s
	}
	card := s.Columns[a.From][i]
	same := a.From == a.To

	isCard := func(c Card) bool { return c.ID == a.ID }
	filtered := ordering.RemoveFunc(s.Columns[a.From], isCard)

	next := s.with()
	if same {
		next.Columns[a.From] = ordering.InsertAt(filtered, a.Position, card)
		return next
	}
	next.Columns[a.From] = filtered
	next.Columns[a.To] = ordering.InsertAt(ordering.RemoveFunc(s.Columns[a.To], isCard), a.Position, card)
	return next
}

func remove(s State, a Delete) State {
	if indexOf(s.Columns[a.Category], a.ID) < 0 {
		return s
	}
	next := s.with()
	next.Columns[a.Category] = ordering.RemoveFunc(s.Columns[a.Category], func(c Card) bool { return c.ID == a.ID })
	if s.Edit != nil && s.Edit.Card.ID == a.ID {
		next.Edit = nil
	}
	return next
}

func restore(s State, a Restore) State {
	if !a.Category.Valid() || a.Card.ID == "" {
		return s
	}
	next := s.with()
	for _, c := range common.Categories {
		if indexOf(s.Columns[c], a.Card.ID) >= 0 {
			next.Columns[c] = ordering.RemoveFunc(s.Columns[c], func(x Card) bool { return x.ID == a.Card.ID })
		}
	}
	next.Columns[a.Category] = ordering.InsertAt(next.Columns[a.Category], 0, a.Card)
	return next
}

func setFlag(s State, category common.Category, id string, set func(*Card)) State {
	i := indexOf(s.Columns[category], id)
	if i < 0 {
		return s
	}
	next := s.with()
	col := append([]Card(nil), s.Columns[category]...)
	set(&col[i])
	next.Columns[category] = col
	return next
}
