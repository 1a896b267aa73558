package common

import "fmt"

// Category is one of the three fixed board columns.
type Category string

const (
	CategoryTodo  Category = "todo"
	CategoryDoing Category = "doing"
	CategoryDone  Category = "done"
)

// Categories lists the board columns in display order.
var Categories = []Category{CategoryTodo, CategoryDoing, CategoryDone}

// Valid reports whether c names one of the board columns.
func (c Category) Valid() bool {
	switch c {
	case CategoryTodo, CategoryDoing, CategoryDone:
		return true
	}
	return false
}

func (c Category) String() string { return string(c) }

// ParseCategory converts s into a Category or returns ErrInvalidBody.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: unknown category %q", ErrInvalidBody, s)
	}
	return c, nil
}
