package seeder

import (
	"time"

	"github.com/bitbites/canteen/internal/entity"
)

func menuFixtures(now time.Time) []*entity.MenuItem {
	items := []*entity.MenuItem{
		{Name: "Healthy Veg Thali", Description: "Nutritious meal with dal, rice, roti, and seasonal vegetables", Price: 120, Category: entity.CategoryFood, Location: "medical"},
		{Name: "Grilled Chicken Salad", Description: "Fresh greens with grilled chicken and light dressing", Price: 150, Category: entity.CategoryFood, Location: "medical"},
		{Name: "Soup of the Day", Description: "Warm, comforting soup with bread roll", Price: 60, Category: entity.CategoryFood, Location: "medical"},
		{Name: "Fresh Fruit Juice", Description: "Seasonal fresh pressed juice", Price: 45, Category: entity.CategoryDrink, Location: "medical"},
		{Name: "Green Smoothie", Description: "Spinach, banana, apple and honey blend", Price: 70, Category: entity.CategoryDrink, Location: "medical"},
		{Name: "Protein Bar", Description: "Healthy snack bar with nuts and dates", Price: 35, Category: entity.CategorySnack, Location: "medical"},
		{Name: "Classic Burger", Description: "Juicy beef patty with fresh veggies and special sauce", Price: 149, Category: entity.CategoryFood, Location: "bitbites"},
		{Name: "Crispy Chicken Wrap", Description: "Crunchy chicken with lettuce and ranch", Price: 129, Category: entity.CategoryFood, Location: "bitbites"},
		{Name: "Loaded Fries", Description: "Crispy fries with cheese and bacon bits", Price: 99, Category: entity.CategorySnack, Location: "bitbites"},
		{Name: "Cappuccino", Description: "Rich espresso with steamed milk foam", Price: 79, Category: entity.CategoryDrink, Location: "bitbites"},
		{Name: "Cold Coffee", Description: "Iced coffee blended with cream", Price: 89, Category: entity.CategoryDrink, Location: "bitbites"},
		{Name: "Chocolate Brownie", Description: "Warm fudgy brownie with ice cream", Price: 109, Category: entity.CategorySnack, Location: "bitbites"},
	}
	for _, item := range items {
		item.Image = "/placeholder.svg"
		item.Available = true
		item.CreatedAt = now
		item.UpdatedAt = now
	}
	return items
}

func orderFixtures(now time.Time) []*entity.Order {
	return []*entity.Order{
		{
			Token:       "MED-101",
			Location:    "medical",
			Total:       285,
			Status:      entity.StatusPending,
			ClientName:  "John Doe",
			TableNumber: "T-5",
			CreatedAt:   now.Add(-10 * time.Minute),
			UpdatedAt:   now.Add(-10 * time.Minute),
			Lines: []*entity.OrderLine{
				{Name: "Healthy Veg Thali", Price: 120, Quantity: 2},
				{Name: "Fresh Fruit Juice", Price: 45, Quantity: 1},
			},
		},
		{
			Token:      "MED-102",
			Location:   "medical",
			Total:      150,
			Status:     entity.StatusPreparing,
			ClientName: "Jane Smith",
			CreatedAt:  now.Add(-5 * time.Minute),
			UpdatedAt:  now.Add(-3 * time.Minute),
			Lines: []*entity.OrderLine{
				{Name: "Grilled Chicken Salad", Price: 150, Quantity: 1},
			},
		},
		{
			Token:       "BIT-201",
			Location:    "bitbites",
			Total:       456,
			Status:      entity.StatusPending,
			ClientName:  "Mike Wilson",
			TableNumber: "B-3",
			CreatedAt:   now.Add(-2 * time.Minute),
			UpdatedAt:   now.Add(-2 * time.Minute),
			Lines: []*entity.OrderLine{
				{Name: "Classic Burger", Price: 149, Quantity: 2},
				{Name: "Cappuccino", Price: 79, Quantity: 2},
			},
		},
	}
}
