package dto

import (
	"time"

	"github.com/bitbites/canteen/internal/entity"
)

// OrderLineResponse is one item snapshot inside an order.
type OrderLineResponse struct {
	ItemID   int64   `json:"item_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// OrderResponse represents an order as exposed via transport layers.
type OrderResponse struct {
	ID          int64               `json:"id"`
	Token       string              `json:"token"`
	Location    string              `json:"location"`
	Items       []OrderLineResponse `json:"items"`
	Total       float64             `json:"total"`
	Status      entity.Status       `json:"status"`
	ClientName  string              `json:"client_name"`
	ClientPhone string              `json:"client_phone,omitempty"`
	TableNumber string              `json:"table_number,omitempty"`
	UserID      string              `json:"user_id,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// NewOrderResponse maps an order entity onto its transport shape.
func NewOrderResponse(order *entity.Order) OrderResponse {
	items := make([]OrderLineResponse, 0, len(order.Lines))
	for _, line := range order.Lines {
		items = append(items, OrderLineResponse{
			ItemID:   line.ItemID,
			Name:     line.Name,
			Price:    line.Price,
			Quantity: line.Quantity,
		})
	}
	return OrderResponse{
		ID:          order.ID,
		Token:       order.Token,
		Location:    order.Location,
		Items:       items,
		Total:       order.Total,
		Status:      order.Status,
		ClientName:  order.ClientName,
		ClientPhone: order.ClientPhone,
		TableNumber: order.TableNumber,
		UserID:      order.OwnerID,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}

// NewOrderResponses maps a listing.
func NewOrderResponses(orders []*entity.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, NewOrderResponse(order))
	}
	return out
}
