package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/repos"
	"storefront/internal/services"
)

func tickingClock() func() time.Time {
	t := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

type stack struct {
	store   *repos.MemoryStore
	auth    *services.AuthService
	catalog *services.CatalogService
	orders  *services.OrderService
	txs     *services.TransactionService
	users   *services.UserService
}

func newStack() stack {
	s := repos.NewMemoryStore(repos.WithClock(tickingClock()))
	return stack{
		store:   s,
		auth:    services.NewAuthService(s),
		catalog: services.NewCatalogService(s, s),
		orders:  services.NewOrderService(s, s, s),
		txs:     services.NewTransactionService(s, s, s),
		users:   services.NewUserService(s),
	}
}

func TestSignupAndLogin(t *testing.T) {
	ctx := context.Background()
	st := newStack()

	u, err := st.auth.Signup(ctx, "Jane", "jane@x.com", "pw", "")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, u.Role)
	assert.Equal(t, int64(3), u.ID)

	_, err = st.auth.Signup(ctx, "Jane again", "jane@x.com", "pw2", "")
	assert.ErrorIs(t, err, repos.ErrConflict)

	got, err := st.auth.Login(ctx, "jane@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = st.auth.Login(ctx, "jane@x.com", "bad")
	assert.ErrorIs(t, err, services.ErrBadCreds)
}

func TestEndToEndSnapshot(t *testing.T) {
	ctx := context.Background()
	st := newStack()

	cat, err := st.catalog.CreateCategory(ctx, domain.Category{Name: "Shoes"})
	require.NoError(t, err)
	boot, err := st.catalog.CreateProduct(ctx, domain.Product{
		Name: "Boot", Price: decimal.NewFromInt(40), Stock: 5, CategoryID: cat.ID,
	})
	require.NoError(t, err)

	o, err := st.orders.Create(ctx, services.NewOrder{
		UserID: 2,
		Items:  []services.OrderItemInput{{ProductID: boot.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(80)), "total %s", o.TotalAmount)
	assert.Equal(t, domain.StatusOrdered, o.Status)

	got, err := st.orders.Get(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.True(t, got.Items[0].Price.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, "John Doe", got.UserName)

	detail, err := st.catalog.CategoryDetail(ctx, cat.ID)
	require.NoError(t, err)
	require.Len(t, detail.Products, 1)
	assert.Equal(t, "Boot", detail.Products[0].Name)

	boot.Name = "Sandal"
	boot.Price = decimal.NewFromInt(15)
	_, err = st.catalog.UpdateProduct(ctx, boot)
	require.NoError(t, err)
	got, err = st.orders.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "Boot", got.Items[0].ProductName)
	assert.True(t, got.Items[0].Price.Equal(decimal.NewFromInt(40)))

	require.NoError(t, st.catalog.DeleteProduct(ctx, boot.ID))
	got, err = st.orders.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "Boot", got.Items[0].ProductName)
}

func TestOrderUsesClientValuesForUnknownProduct(t *testing.T) {
	ctx := context.Background()
	st := newStack()

	o, err := st.orders.Create(ctx, services.NewOrder{
		UserID:      2,
		TotalAmount: decimal.NewNullDecimal(decimal.RequireFromString("12.50")),
		Items: []services.OrderItemInput{{
			ProductID: 999, ProductName: "Gift card", Quantity: 1,
			Price: decimal.NewNullDecimal(decimal.RequireFromString("12.50")),
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Gift card", o.Items[0].ProductName)
	assert.True(t, o.TotalAmount.Equal(decimal.RequireFromString("12.50")))
}

func TestOrderRejectsUnknownStatus(t *testing.T) {
	ctx := context.Background()
	st := newStack()

	_, err := st.orders.Create(ctx, services.NewOrder{UserID: 2, Status: "lost"})
	assert.ErrorIs(t, err, services.ErrInvalidStatus)
	_, err = st.orders.UpdateStatus(ctx, 1, "lost")
	assert.ErrorIs(t, err, services.ErrInvalidStatus)

	o, err := st.orders.UpdateStatus(ctx, 1, domain.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, o.Status)

	_, err = st.orders.UpdateStatus(ctx, 42, domain.StatusShipped)
	assert.ErrorIs(t, err, repos.ErrNotFound)
}

func TestOrdersListNewestFirst(t *testing.T) {
	ctx := context.Background()
	st := newStack()

	var ids []int64
	for i := 0; i < 3; i++ {
		o, err := st.orders.Create(ctx, services.NewOrder{UserID: 1})
		require.NoError(t, err)
		ids = append(ids, o.ID)
	}

	list, err := st.orders.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i := 1; i < len(list); i++ {
		assert.True(t, list[i-1].CreatedAt.After(list[i].CreatedAt), "position %d", i)
	}
	assert.Equal(t, ids[2], list[0].ID)
	assert.Equal(t, "Admin User", list[0].UserName)
	assert.NotNil(t, list[0].Items)

	all, err := st.orders.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestOrdersSameTimestampTieBreaksOnID(t *testing.T) {
	ctx := context.Background()
	frozen := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := repos.NewMemoryStore(repos.WithClock(func() time.Time { return frozen }))
	svc := services.NewOrderService(s, s, s)

	a, _ := svc.Create(ctx, services.NewOrder{UserID: 1})
	b, _ := svc.Create(ctx, services.NewOrder{UserID: 1})

	list, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, b.ID, list[0].ID)
	assert.Equal(t, a.ID, list[1].ID)
}

func TestEnrichmentDefaultsToUnknown(t *testing.T) {
	ctx := context.Background()
	st := newStack()

	tx, err := st.txs.Create(ctx, 77, 88, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.UnknownName, tx.UserName)
	assert.Equal(t, domain.UnknownName, tx.ProductName)
	assert.True(t, tx.Price.IsZero())
	assert.Equal(t, domain.StatusOrdered, tx.Status)

	o, err := st.orders.Create(ctx, services.NewOrder{UserID: 77})
	require.NoError(t, err)
	eo, err := st.orders.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.UnknownName, eo.UserName)
}

func TestTransactionsFollowLiveProduct(t *testing.T) {
	ctx := context.Background()
	st := newStack()

	list, err := st.txs.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(2), list[0].ID, "2024-01-20 before 2024-01-15")
	assert.Equal(t, "Black Leather Shoes", list[0].ProductName)
	assert.Equal(t, "John Doe", list[0].UserName)

	p, _ := st.catalog.GetProduct(ctx, 3)
	p.Price = decimal.RequireFromString("99.00")
	_, err = st.catalog.UpdateProduct(ctx, p)
	require.NoError(t, err)

	upd, err := st.txs.UpdateStatus(ctx, 2, domain.StatusDelivered)
	require.NoError(t, err)
	assert.True(t, upd.Price.Equal(decimal.RequireFromString("99.00")))

	require.NoError(t, st.catalog.DeleteProduct(ctx, 3))
	list, err = st.txs.List(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.UnknownName, list[0].ProductName)
	assert.True(t, list[0].Price.IsZero())
}

func TestUserListHidesPasswords(t *testing.T) {
	ctx := context.Background()
	st := newStack()

	us, err := st.users.List(ctx)
	require.NoError(t, err)
	require.Len(t, us, 2)

	u, err := st.users.UpdateRole(ctx, 2, domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, u.Role)

	_, err = st.users.UpdateRole(ctx, 9, domain.RoleAdmin)
	assert.ErrorIs(t, err, repos.ErrNotFound)
}

func TestCategoryDetailMissing(t *testing.T) {
	st := newStack()
	_, err := st.catalog.CategoryDetail(context.Background(), 99)
	assert.ErrorIs(t, err, repos.ErrNotFound)
}

func TestAnalyticsUsesLiveCounts(t *testing.T) {
	ctx := context.Background()
	s := repos.NewMemoryStore()
	svc := services.NewAnalyticsService(s, s)

	a, err := svc.Report(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, a.TotalStats.TotalProducts)
	assert.Equal(t, 2, a.TotalStats.TotalCustomers)
	assert.Len(t, a.MonthlyRevenue, 6)

	_, err = s.CreateProduct(ctx, domain.Product{Name: "x"})
	require.NoError(t, err)
	a, _ = svc.Report(ctx)
	assert.Equal(t, 4, a.TotalStats.TotalProducts)
}

func TestContactSend(t *testing.T) {
	s := repos.NewMemoryStore()
	svc := services.NewContactService(s)
	m, err := svc.Send(context.Background(), domain.ContactMessage{Name: "A", Email: "a@x.com", Subject: "s", Message: "m"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), m.ID)
}
