package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	"storefront/internal/repos"
)

var ErrInvalidStatus = errors.New("invalid status")

// OrderItemInput is one checkout line as the client sent it. Name and price
// are used only when the product can no longer be found.
type OrderItemInput struct {
	ProductID   int64
	ProductName string
	Quantity    int
	Price       decimal.NullDecimal
}

type NewOrder struct {
	UserID        int64
	Items         []OrderItemInput
	TotalAmount   decimal.NullDecimal // computed from the items when not set
	Status        string
	DeliveryInfo  domain.DeliveryInfo
	PaymentMethod string
}

type OrderService struct {
	Orders repos.OrderStore
	Users  repos.UserStore
	Prods  repos.ProductStore
}

func NewOrderService(orders repos.OrderStore, users repos.UserStore, prods repos.ProductStore) *OrderService {
	return &OrderService{Orders: orders, Users: users, Prods: prods}
}

// snapshot copies the product's current name and price into an order line.
func (s *OrderService) snapshot(ctx context.Context, in OrderItemInput) (domain.OrderItem, error) {
	it := domain.OrderItem{
		ProductID:   in.ProductID,
		ProductName: in.ProductName,
		Quantity:    in.Quantity,
		Price:       in.Price.Decimal,
	}
	if in.ProductID != 0 {
		p, err := s.Prods.GetProduct(ctx, in.ProductID)
		switch {
		case err == nil:
			it.ProductName = p.Name
			it.Price = p.Price
		case !errors.Is(err, repos.ErrNotFound):
			return domain.OrderItem{}, err
		}
	}
	if it.ProductName == "" {
		it.ProductName = domain.UnknownName
	}
	return it, nil
}

func (s *OrderService) Create(ctx context.Context, in NewOrder) (domain.Order, error) {
	if in.Status == "" {
		in.Status = domain.StatusOrdered
	}
	if !domain.ValidStatus(in.Status) {
		return domain.Order{}, ErrInvalidStatus
	}
	o := domain.Order{
		UserID:        in.UserID,
		Status:        in.Status,
		DeliveryInfo:  in.DeliveryInfo,
		PaymentMethod: in.PaymentMethod,
		Items:         make([]domain.OrderItem, 0, len(in.Items)),
	}
	total := decimal.Zero
	for _, raw := range in.Items {
		it, err := s.snapshot(ctx, raw)
		if err != nil {
			return domain.Order{}, err
		}
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		o.Items = append(o.Items, it)
	}
	o.TotalAmount = total
	if in.TotalAmount.Valid {
		o.TotalAmount = in.TotalAmount.Decimal
	}
	return s.Orders.CreateOrder(ctx, o)
}

// List returns the orders of userID (all users when 0), newest first.
func (s *OrderService) List(ctx context.Context, userID int64) ([]domain.EnrichedOrder, error) {
	orders, err := s.Orders.ListOrders(ctx, repos.UserFilter{UserID: userID})
	if err != nil {
		return nil, err
	}
	newestFirst(orders,
		func(o domain.Order) time.Time { return o.CreatedAt },
		func(o domain.Order) int64 { return o.ID })

	l, err := loadLookup(ctx, s.Users, nil)
	if err != nil {
		return nil, err
	}
	out := make([]domain.EnrichedOrder, 0, len(orders))
	for _, o := range orders {
		out = append(out, l.attachOrderUser(o))
	}
	return out, nil
}

func (s *OrderService) Get(ctx context.Context, id int64) (domain.EnrichedOrder, error) {
	o, err := s.Orders.GetOrder(ctx, id)
	if err != nil {
		return domain.EnrichedOrder{}, err
	}
	return s.enrichOne(ctx, o)
}

func (s *OrderService) UpdateStatus(ctx context.Context, id int64, status string) (domain.EnrichedOrder, error) {
	if !domain.ValidStatus(status) {
		return domain.EnrichedOrder{}, ErrInvalidStatus
	}
	o, err := s.Orders.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		return domain.EnrichedOrder{}, err
	}
	return s.enrichOne(ctx, o)
}

func (s *OrderService) Delete(ctx context.Context, id int64) error {
	return s.Orders.DeleteOrder(ctx, id)
}

func (s *OrderService) enrichOne(ctx context.Context, o domain.Order) (domain.EnrichedOrder, error) {
	l, err := loadLookup(ctx, s.Users, nil)
	if err != nil {
		return domain.EnrichedOrder{}, err
	}
	return l.attachOrderUser(o), nil
}
