// Package models defines the server-side board records.
package models

import (
	"time"

	"github.com/dmitrijs2005/gophboard/internal/common"
)

// Item is a single card owned by one address.
type Item struct {
	ID        string
	Owner     string
	Title     string
	Content   string
	Category  common.Category
	Deleted   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Order is the ordered id sequence of one owner's category.
type Order struct {
	Owner    string
	Category common.Category
	ItemIDs  []string
}
