package repos

import (
	"context"
	"errors"

	"storefront/internal/domain"
	applog "storefront/internal/log"
)

// FallbackStore sends every call to primary and, when that call fails, answers
// it from secondary instead. The decision is made per call; a failure is not
// remembered. ErrConflict and ErrNotFound are answers, not failures.
//
// Lookups by key are the exception: a row missing from primary is also looked
// up in secondary, since rows written during an outage live only there.
type FallbackStore struct {
	primary   Store
	secondary Store
}

var _ Store = (*FallbackStore)(nil)

func NewFallbackStore(primary, secondary Store) *FallbackStore {
	return &FallbackStore{primary: primary, secondary: secondary}
}

func fallback[T any](op string, primary, secondary func() (T, error)) (T, error) {
	v, err := primary()
	if err == nil || errors.Is(err, ErrConflict) || errors.Is(err, ErrNotFound) {
		return v, err
	}
	applog.Warn("store.fallback", err, map[string]any{"op": op})
	return secondary()
}

// fallbackLookup is fallback that also consults secondary when primary has no such row.
func fallbackLookup[T any](op string, primary, secondary func() (T, error)) (T, error) {
	v, err := primary()
	switch {
	case err == nil:
		return v, nil
	case !errors.Is(err, ErrNotFound):
		applog.Warn("store.fallback", err, map[string]any{"op": op})
	}
	return secondary()
}

func fallbackErr(op string, primary, secondary func() error) error {
	_, err := fallback(op,
		func() (struct{}, error) { return struct{}{}, primary() },
		func() (struct{}, error) { return struct{}{}, secondary() })
	return err
}

// --- users ---

func (s *FallbackStore) ListUsers(ctx context.Context) ([]domain.User, error) {
	return fallback("users.list",
		func() ([]domain.User, error) { return s.primary.ListUsers(ctx) },
		func() ([]domain.User, error) { return s.secondary.ListUsers(ctx) })
}

func (s *FallbackStore) GetUser(ctx context.Context, id int64) (domain.User, error) {
	return fallbackLookup("users.get",
		func() (domain.User, error) { return s.primary.GetUser(ctx, id) },
		func() (domain.User, error) { return s.secondary.GetUser(ctx, id) })
}

func (s *FallbackStore) FindUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return fallbackLookup("users.by_email",
		func() (domain.User, error) { return s.primary.FindUserByEmail(ctx, email) },
		func() (domain.User, error) { return s.secondary.FindUserByEmail(ctx, email) })
}

// CreateUser refuses an email already present in either backend, then writes
// to primary (secondary if primary fails).
func (s *FallbackStore) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	if _, err := s.primary.FindUserByEmail(ctx, u.Email); err == nil {
		return domain.User{}, ErrConflict
	} else if !errors.Is(err, ErrNotFound) {
		applog.Warn("store.fallback", err, map[string]any{"op": "users.create.check"})
	}
	if _, err := s.secondary.FindUserByEmail(ctx, u.Email); err == nil {
		return domain.User{}, ErrConflict
	}
	return fallback("users.create",
		func() (domain.User, error) { return s.primary.CreateUser(ctx, u) },
		func() (domain.User, error) { return s.secondary.CreateUser(ctx, u) })
}

func (s *FallbackStore) Authenticate(ctx context.Context, email, password string) (domain.User, error) {
	return fallbackLookup("users.authenticate",
		func() (domain.User, error) { return s.primary.Authenticate(ctx, email, password) },
		func() (domain.User, error) { return s.secondary.Authenticate(ctx, email, password) })
}

func (s *FallbackStore) UpdateUserRole(ctx context.Context, id int64, role string) (domain.User, error) {
	return fallback("users.update_role",
		func() (domain.User, error) { return s.primary.UpdateUserRole(ctx, id, role) },
		func() (domain.User, error) { return s.secondary.UpdateUserRole(ctx, id, role) })
}

func (s *FallbackStore) DeleteUser(ctx context.Context, id int64) error {
	return fallbackErr("users.delete",
		func() error { return s.primary.DeleteUser(ctx, id) },
		func() error { return s.secondary.DeleteUser(ctx, id) })
}

// --- categories ---

func (s *FallbackStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return fallback("categories.list",
		func() ([]domain.Category, error) { return s.primary.ListCategories(ctx) },
		func() ([]domain.Category, error) { return s.secondary.ListCategories(ctx) })
}

func (s *FallbackStore) GetCategory(ctx context.Context, id int64) (domain.Category, error) {
	return fallbackLookup("categories.get",
		func() (domain.Category, error) { return s.primary.GetCategory(ctx, id) },
		func() (domain.Category, error) { return s.secondary.GetCategory(ctx, id) })
}

func (s *FallbackStore) CreateCategory(ctx context.Context, c domain.Category) (domain.Category, error) {
	return fallback("categories.create",
		func() (domain.Category, error) { return s.primary.CreateCategory(ctx, c) },
		func() (domain.Category, error) { return s.secondary.CreateCategory(ctx, c) })
}

func (s *FallbackStore) UpdateCategory(ctx context.Context, c domain.Category) (domain.Category, error) {
	return fallback("categories.update",
		func() (domain.Category, error) { return s.primary.UpdateCategory(ctx, c) },
		func() (domain.Category, error) { return s.secondary.UpdateCategory(ctx, c) })
}

func (s *FallbackStore) DeleteCategory(ctx context.Context, id int64) error {
	return fallbackErr("categories.delete",
		func() error { return s.primary.DeleteCategory(ctx, id) },
		func() error { return s.secondary.DeleteCategory(ctx, id) })
}

// --- products ---

func (s *FallbackStore) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return fallback("products.list",
		func() ([]domain.Product, error) { return s.primary.ListProducts(ctx) },
		func() ([]domain.Product, error) { return s.secondary.ListProducts(ctx) })
}

func (s *FallbackStore) ListProductsByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error) {
	return fallback("products.by_category",
		func() ([]domain.Product, error) { return s.primary.ListProductsByCategory(ctx, categoryID) },
		func() ([]domain.Product, error) { return s.secondary.ListProductsByCategory(ctx, categoryID) })
}

func (s *FallbackStore) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	return fallbackLookup("products.get",
		func() (domain.Product, error) { return s.primary.GetProduct(ctx, id) },
		func() (domain.Product, error) { return s.secondary.GetProduct(ctx, id) })
}

func (s *FallbackStore) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	return fallback("products.create",
		func() (domain.Product, error) { return s.primary.CreateProduct(ctx, p) },
		func() (domain.Product, error) { return s.secondary.CreateProduct(ctx, p) })
}

func (s *FallbackStore) UpdateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	return fallback("products.update",
		func() (domain.Product, error) { return s.primary.UpdateProduct(ctx, p) },
		func() (domain.Product, error) { return s.secondary.UpdateProduct(ctx, p) })
}

func (s *FallbackStore) DeleteProduct(ctx context.Context, id int64) error {
	return fallbackErr("products.delete",
		func() error { return s.primary.DeleteProduct(ctx, id) },
		func() error { return s.secondary.DeleteProduct(ctx, id) })
}

// --- orders ---

func (s *FallbackStore) ListOrders(ctx context.Context, f UserFilter) ([]domain.Order, error) {
	return fallback("orders.list",
		func() ([]domain.Order, error) { return s.primary.ListOrders(ctx, f) },
		func() ([]domain.Order, error) { return s.secondary.ListOrders(ctx, f) })
}

func (s *FallbackStore) GetOrder(ctx context.Context, id int64) (domain.Order, error) {
	return fallbackLookup("orders.get",
		func() (domain.Order, error) { return s.primary.GetOrder(ctx, id) },
		func() (domain.Order, error) { return s.secondary.GetOrder(ctx, id) })
}

func (s *FallbackStore) CreateOrder(ctx context.Context, o domain.Order) (domain.Order, error) {
	return fallback("orders.create",
		func() (domain.Order, error) { return s.primary.CreateOrder(ctx, o) },
		func() (domain.Order, error) { return s.secondary.CreateOrder(ctx, o) })
}

func (s *FallbackStore) UpdateOrderStatus(ctx context.Context, id int64, status string) (domain.Order, error) {
	return fallback("orders.update_status",
		func() (domain.Order, error) { return s.primary.UpdateOrderStatus(ctx, id, status) },
		func() (domain.Order, error) { return s.secondary.UpdateOrderStatus(ctx, id, status) })
}

func (s *FallbackStore) DeleteOrder(ctx context.Context, id int64) error {
	return fallbackErr("orders.delete",
		func() error { return s.primary.DeleteOrder(ctx, id) },
		func() error { return s.secondary.DeleteOrder(ctx, id) })
}

// --- transactions ---

func (s *FallbackStore) ListTransactions(ctx context.Context, f UserFilter) ([]domain.Transaction, error) {
	return fallback("transactions.list",
		func() ([]domain.Transaction, error) { return s.primary.ListTransactions(ctx, f) },
		func() ([]domain.Transaction, error) { return s.secondary.ListTransactions(ctx, f) })
}

func (s *FallbackStore) GetTransaction(ctx context.Context, id int64) (domain.Transaction, error) {
	return fallbackLookup("transactions.get",
		func() (domain.Transaction, error) { return s.primary.GetTransaction(ctx, id) },
		func() (domain.Transaction, error) { return s.secondary.GetTransaction(ctx, id) })
}

func (s *FallbackStore) CreateTransaction(ctx context.Context, t domain.Transaction) (domain.Transaction, error) {
	return fallback("transactions.create",
		func() (domain.Transaction, error) { return s.primary.CreateTransaction(ctx, t) },
		func() (domain.Transaction, error) { return s.secondary.CreateTransaction(ctx, t) })
}

func (s *FallbackStore) UpdateTransactionStatus(ctx context.Context, id int64, status string) (domain.Transaction, error) {
	return fallback("transactions.update_status",
		func() (domain.Transaction, error) { return s.primary.UpdateTransactionStatus(ctx, id, status) },
		func() (domain.Transaction, error) { return s.secondary.UpdateTransactionStatus(ctx, id, status) })
}

func (s *FallbackStore) DeleteTransaction(ctx context.Context, id int64) error {
	return fallbackErr("transactions.delete",
		func() error { return s.primary.DeleteTransaction(ctx, id) },
		func() error { return s.secondary.DeleteTransaction(ctx, id) })
}

// --- contact ---

func (s *FallbackStore) CreateContactMessage(ctx context.Context, m domain.ContactMessage) (domain.ContactMessage, error) {
	return fallback("contact.create",
		func() (domain.ContactMessage, error) { return s.primary.CreateContactMessage(ctx, m) },
		func() (domain.ContactMessage, error) { return s.secondary.CreateContactMessage(ctx, m) })
}
