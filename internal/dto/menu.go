package dto

import (
	"time"

	"github.com/bitbites/canteen/internal/entity"
)

// MenuItemResponse represents a catalog entry as exposed via transport layers.
type MenuItemResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Image       string    `json:"image,omitempty"`
	Location    string    `json:"location"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewMenuItemResponse maps a menu item entity onto its transport shape.
func NewMenuItemResponse(item *entity.MenuItem) MenuItemResponse {
	return MenuItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Category:    item.Category,
		Image:       item.Image,
		Location:    item.Location,
		Available:   item.Available,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

// NewMenuItemResponses maps a listing.
func NewMenuItemResponses(items []*entity.MenuItem) []MenuItemResponse {
	out := make([]MenuItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewMenuItemResponse(item))
	}
	return out
}
