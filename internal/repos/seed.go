package repos

import (
	"time"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

// seed is the demo dataset loaded into both backends.
type seed struct {
	users        []domain.User
	categories   []domain.Category
	products     []domain.Product
	transactions []domain.Transaction
	orders       []domain.Order
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func demoSeed(now time.Time) seed {
	return seed{
		users: []domain.User{
			{ID: 1, Name: "Admin User", Email: "admin@admin.com", Password: "admin123", Role: domain.RoleAdmin, CreatedAt: now},
			{ID: 2, Name: "John Doe", Email: "user@user.com", Password: "user123", Role: domain.RoleUser, CreatedAt: now},
		},
		categories: []domain.Category{
			{ID: 1, Name: "Shirts", Description: "Stylish shirts for all occasions"},
			{ID: 2, Name: "Pants", Description: "Comfortable and trendy pants"},
			{ID: 3, Name: "Shoes", Description: "Quality footwear for every style"},
		},
		products: []domain.Product{
			{ID: 1, Name: "Classic White Shirt", Description: "Elegant white cotton shirt perfect for office and casual wear",
				Price: decimal.RequireFromString("29.99"), ImageURL: "https://images.pexels.com/photos/996329/pexels-photo-996329.jpeg",
				Stock: 50, CategoryID: 1, CreatedAt: now},
			{ID: 2, Name: "Blue Denim Jeans", Description: "Comfortable blue denim jeans with modern fit",
				Price: decimal.RequireFromString("49.99"), ImageURL: "https://images.pexels.com/photos/1598505/pexels-photo-1598505.jpeg",
				Stock: 35, CategoryID: 2, CreatedAt: now},
			{ID: 3, Name: "Black Leather Shoes", Description: "Premium black leather dress shoes for formal occasions",
				Price: decimal.RequireFromString("89.99"), ImageURL: "https://images.pexels.com/photos/267301/pexels-photo-267301.jpeg",
				Stock: 25, CategoryID: 3, CreatedAt: now},
		},
		transactions: []domain.Transaction{
			{ID: 1, UserID: 2, ProductID: 1, Quantity: 2, Status: domain.StatusDelivered, TransactionDate: day("2024-01-15")},
			{ID: 2, UserID: 2, ProductID: 3, Quantity: 1, Status: domain.StatusShipped, TransactionDate: day("2024-01-20")},
		},
		orders: []domain.Order{
			{
				ID: 1, UserID: 2, TotalAmount: decimal.RequireFromString("139.97"), Status: domain.StatusDelivered,
				CreatedAt: day("2024-01-15"),
				Items: []domain.OrderItem{
					{ProductID: 1, ProductName: "Classic White Shirt", Quantity: 2, Price: decimal.RequireFromString("29.99")},
					{ProductID: 3, ProductName: "Black Leather Shoes", Quantity: 1, Price: decimal.RequireFromString("89.99")},
				},
			},
		},
	}
}
