package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Menu item categories.
const (
	CategoryFood  = "food"
	CategoryDrink = "drink"
	CategorySnack = "snack"
)

// MenuItem is a catalog entry served at one site.
type MenuItem struct {
	bun.BaseModel `bun:"table:menu_items"`

	ID          int64     `bun:",pk,autoincrement"`
	Name        string    `bun:"name,notnull"`
	Description string    `bun:"description,nullzero"`
	Price       float64   `bun:"price,notnull"`
	Category    string    `bun:"category,notnull"`
	Image       string    `bun:"image,nullzero"`
	Location    string    `bun:"location,notnull"`
	Available   bool      `bun:"available,notnull,default:true"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero"`
}

// ValidCategory reports whether c is one of the known menu categories.
func ValidCategory(c string) bool {
	switch c {
	case CategoryFood, CategoryDrink, CategorySnack:
		return true
	}
	return false
}
