package repos_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/repos"
)

// brokenSQL returns a SQL store whose every query fails: sqlmock rejects any
// statement it was not told to expect.
func brokenSQL(t *testing.T) *repos.SQLStore {
	t.Helper()
	mockDB, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })
	return repos.NewSQLStore(sqlx.NewDb(mockDB, "sqlite"))
}

func TestFallbackOnBrokenBackendMatchesMemory(t *testing.T) {
	ctx := context.Background()
	clock := fixedClock()
	fb := repos.NewFallbackStore(brokenSQL(t), repos.NewMemoryStore(repos.WithClock(clock)))
	mem := repos.NewMemoryStore(repos.WithClock(fixedClock()))

	gotList, err := fb.ListProducts(ctx)
	require.NoError(t, err)
	wantList, _ := mem.ListProducts(ctx)
	assert.Equal(t, wantList, gotList)

	gotP, err := fb.GetProduct(ctx, 2)
	require.NoError(t, err)
	wantP, _ := mem.GetProduct(ctx, 2)
	assert.Equal(t, wantP, gotP)

	np := domain.Product{Name: "Hat", Price: decimal.NewFromInt(5), Stock: 1, CategoryID: 1}
	created, err := fb.CreateProduct(ctx, np)
	require.NoError(t, err)
	assert.Equal(t, int64(4), created.ID)

	created.Name = "Cap"
	updated, err := fb.UpdateProduct(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "Cap", updated.Name)

	require.NoError(t, fb.DeleteProduct(ctx, created.ID))
	_, err = fb.GetProduct(ctx, created.ID)
	assert.ErrorIs(t, err, repos.ErrNotFound)

	orders, err := fb.ListOrders(ctx, repos.UserFilter{UserID: 2})
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	o, err := fb.CreateOrder(ctx, domain.Order{UserID: 2, Status: domain.StatusOrdered, TotalAmount: decimal.NewFromInt(1)})
	require.NoError(t, err)
	assert.Equal(t, int64(2), o.ID)
	assert.NotNil(t, o.Items)

	tx, err := fb.UpdateTransactionStatus(ctx, 1, domain.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, tx.Status)

	u, err := fb.Authenticate(ctx, "user@user.com", "user123")
	require.NoError(t, err)
	assert.Equal(t, int64(2), u.ID)

	m, err := fb.CreateContactMessage(ctx, domain.ContactMessage{Name: "A"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), m.ID)
}

func TestFallbackDoesNotRetryConflict(t *testing.T) {
	ctx := context.Background()
	mem := repos.NewMemoryStore()
	fb := repos.NewFallbackStore(repos.NewSQLStore(memdb(t)), mem)

	_, err := fb.CreateUser(ctx, domain.User{Name: "X", Email: "admin@admin.com", Password: "p", Role: domain.RoleUser})
	assert.ErrorIs(t, err, repos.ErrConflict)

	users, _ := mem.ListUsers(ctx)
	assert.Len(t, users, 2, "memory must not receive the rejected user")
}

func TestFallbackEmailConflictAcrossBackends(t *testing.T) {
	ctx := context.Background()

	t.Run("first stored in memory", func(t *testing.T) {
		mem := repos.NewMemoryStore()
		_, err := mem.CreateUser(ctx, domain.User{Name: "M", Email: "m@x.com", Password: "p", Role: domain.RoleUser})
		require.NoError(t, err)

		fb := repos.NewFallbackStore(repos.NewSQLStore(memdb(t)), mem)
		_, err = fb.CreateUser(ctx, domain.User{Name: "M2", Email: "m@x.com", Password: "q", Role: domain.RoleUser})
		assert.ErrorIs(t, err, repos.ErrConflict)
	})

	t.Run("first stored in sql", func(t *testing.T) {
		sqlStore := repos.NewSQLStore(memdb(t))
		_, err := sqlStore.CreateUser(ctx, domain.User{Name: "S", Email: "s@x.com", Password: "p", Role: domain.RoleUser})
		require.NoError(t, err)

		fb := repos.NewFallbackStore(sqlStore, repos.NewMemoryStore())
		_, err = fb.CreateUser(ctx, domain.User{Name: "S2", Email: "s@x.com", Password: "q", Role: domain.RoleUser})
		assert.ErrorIs(t, err, repos.ErrConflict)
	})

	t.Run("broken sql, duplicate in memory", func(t *testing.T) {
		fb := repos.NewFallbackStore(brokenSQL(t), repos.NewMemoryStore())
		_, err := fb.CreateUser(ctx, domain.User{Name: "B", Email: "b@x.com", Password: "p", Role: domain.RoleUser})
		require.NoError(t, err)
		_, err = fb.CreateUser(ctx, domain.User{Name: "B2", Email: "b@x.com", Password: "p", Role: domain.RoleUser})
		assert.ErrorIs(t, err, repos.ErrConflict)
	})
}

func TestFallbackGetConsultsMemoryOnMissingRow(t *testing.T) {
	ctx := context.Background()
	sqlStore := repos.NewSQLStore(memdb(t))
	require.NoError(t, sqlStore.DeleteProduct(ctx, 1))

	fb := repos.NewFallbackStore(sqlStore, repos.NewMemoryStore())
	p, err := fb.GetProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Classic White Shirt", p.Name)

	_, err = fb.GetProduct(ctx, 404)
	assert.ErrorIs(t, err, repos.ErrNotFound)
}

func TestFallbackPrefersPrimary(t *testing.T) {
	ctx := context.Background()
	sqlStore := repos.NewSQLStore(memdb(t))
	mem := repos.NewMemoryStore()
	fb := repos.NewFallbackStore(sqlStore, mem)

	c, err := fb.CreateCategory(ctx, domain.Category{Name: "Hats"})
	require.NoError(t, err)

	_, err = sqlStore.GetCategory(ctx, c.ID)
	require.NoError(t, err)
	_, err = mem.GetCategory(ctx, c.ID)
	assert.ErrorIs(t, err, repos.ErrNotFound)
}

func TestFallbackWritesDoNotReachMemoryOnMissingRow(t *testing.T) {
	ctx := context.Background()
	sqlStore := repos.NewSQLStore(memdb(t))
	require.NoError(t, sqlStore.DeleteProduct(ctx, 1))
	mem := repos.NewMemoryStore()
	fb := repos.NewFallbackStore(sqlStore, mem)

	assert.ErrorIs(t, fb.DeleteProduct(ctx, 1), repos.ErrNotFound)
	_, err := mem.GetProduct(ctx, 1)
	assert.NoError(t, err, "memory copy must survive")

	_, err = fb.UpdateOrderStatus(ctx, 99, domain.StatusShipped)
	assert.ErrorIs(t, err, repos.ErrNotFound)
}
