package services

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	"storefront/internal/repos"
)

// lookup resolves user and product references against the live collections.
type lookup struct {
	users    map[int64]domain.User
	products map[int64]domain.Product
}

func loadLookup(ctx context.Context, users repos.UserStore, prods repos.ProductStore) (lookup, error) {
	l := lookup{users: map[int64]domain.User{}, products: map[int64]domain.Product{}}
	if users != nil {
		us, err := users.ListUsers(ctx)
		if err != nil {
			return lookup{}, err
		}
		for _, u := range us {
			l.users[u.ID] = u
		}
	}
	if prods != nil {
		ps, err := prods.ListProducts(ctx)
		if err != nil {
			return lookup{}, err
		}
		for _, p := range ps {
			l.products[p.ID] = p
		}
	}
	return l, nil
}

func (l lookup) userName(id int64) string {
	if u, ok := l.users[id]; ok {
		return u.Name
	}
	return domain.UnknownName
}

// enrichTransaction joins the current user and product. Price always follows
// the live product.
func (l lookup) enrichTransaction(t domain.Transaction) domain.EnrichedTransaction {
	et := domain.EnrichedTransaction{
		Transaction: t,
		UserName:    l.userName(t.UserID),
		ProductName: domain.UnknownName,
		Price:       decimal.Zero,
	}
	if p, ok := l.products[t.ProductID]; ok {
		et.ProductName = p.Name
		et.Price = p.Price
	}
	return et
}

// attachOrderUser adds the live user name. Items are left exactly as stored.
func (l lookup) attachOrderUser(o domain.Order) domain.EnrichedOrder {
	if o.Items == nil {
		o.Items = []domain.OrderItem{}
	}
	return domain.EnrichedOrder{Order: o, UserName: l.userName(o.UserID)}
}

// newestFirst orders by timestamp descending, higher id first on ties.
func newestFirst[T any](items []T, at func(T) time.Time, id func(T) int64) {
	slices.SortStableFunc(items, func(a, b T) int {
		if c := at(b).Compare(at(a)); c != 0 {
			return c
		}
		return cmp.Compare(id(b), id(a))
	})
}
