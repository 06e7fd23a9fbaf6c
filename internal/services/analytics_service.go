package services

import (
	"context"

	"storefront/internal/repos"
)

type MonthRevenue struct {
	Month   string `json:"month"`
	Revenue int    `json:"revenue"`
	Orders  int    `json:"orders"`
}

type TopProduct struct {
	Name    string `json:"name"`
	Sales   int    `json:"sales"`
	Revenue int    `json:"revenue"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
	Color  string `json:"color"`
}

type TotalStats struct {
	TotalRevenue   int `json:"totalRevenue"`
	TotalOrders    int `json:"totalOrders"`
	TotalProducts  int `json:"totalProducts"`
	TotalCustomers int `json:"totalCustomers"`
}

type Analytics struct {
	MonthlyRevenue []MonthRevenue `json:"monthlyRevenue"`
	TopProducts    []TopProduct   `json:"topProducts"`
	OrdersByStatus []StatusCount  `json:"ordersByStatus"`
	TotalStats     TotalStats     `json:"totalStats"`
}

// AnalyticsService returns demo dashboard figures. Only the product and
// customer totals come from real data.
type AnalyticsService struct {
	Users repos.UserStore
	Prods repos.ProductStore
}

func NewAnalyticsService(users repos.UserStore, prods repos.ProductStore) *AnalyticsService {
	return &AnalyticsService{Users: users, Prods: prods}
}

func (s *AnalyticsService) Report(ctx context.Context) (Analytics, error) {
	ps, err := s.Prods.ListProducts(ctx)
	if err != nil {
		return Analytics{}, err
	}
	us, err := s.Users.ListUsers(ctx)
	if err != nil {
		return Analytics{}, err
	}
	return Analytics{
		MonthlyRevenue: []MonthRevenue{
			{"Jan", 4500, 45}, {"Feb", 5200, 52}, {"Mar", 4800, 48},
			{"Apr", 6100, 61}, {"May", 7300, 73}, {"Jun", 8200, 82},
		},
		TopProducts: []TopProduct{
			{"Classic White Shirt", 156, 4680},
			{"Blue Denim Jeans", 134, 6698},
			{"Black Leather Shoes", 98, 8820},
			{"Summer Dress", 87, 3480},
			{"Casual Sneakers", 76, 4560},
		},
		OrdersByStatus: []StatusCount{
			{"Delivered", 245, "#10B981"},
			{"Shipped", 67, "#3B82F6"},
			{"Ordered", 34, "#F59E0B"},
			{"Cancelled", 12, "#EF4444"},
		},
		TotalStats: TotalStats{
			TotalRevenue:   36100,
			TotalOrders:    358,
			TotalProducts:  len(ps),
			TotalCustomers: len(us),
		},
	}, nil
}
