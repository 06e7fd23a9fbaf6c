package repos

import (
	"context"
	"slices"
	"sync"
	"time"

	"storefront/internal/domain"
)

// Option configures a store.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the timestamp source used for created_at fields.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{now: func() time.Time { return time.Now().UTC() }}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// MemoryStore keeps every collection in process memory. Ids come from
// per-collection counters that only ever increase.
type MemoryStore struct {
	mu  sync.RWMutex
	now func() time.Time

	users        []domain.User
	categories   []domain.Category
	products     []domain.Product
	transactions []domain.Transaction
	orders       []domain.Order
	contacts     []domain.ContactMessage

	nextUserID        int64
	nextCategoryID    int64
	nextProductID     int64
	nextTransactionID int64
	nextOrderID       int64
	nextContactID     int64
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns a store loaded with the demo dataset.
func NewMemoryStore(opts ...Option) *MemoryStore {
	o := buildOptions(opts)
	sd := demoSeed(o.now())
	s := &MemoryStore{
		now:          o.now,
		users:        sd.users,
		categories:   sd.categories,
		products:     sd.products,
		transactions: sd.transactions,
		orders:       sd.orders,
	}
	s.nextUserID = int64(len(sd.users)) + 1
	s.nextCategoryID = int64(len(sd.categories)) + 1
	s.nextProductID = int64(len(sd.products)) + 1
	s.nextTransactionID = int64(len(sd.transactions)) + 1
	s.nextOrderID = int64(len(sd.orders)) + 1
	s.nextContactID = 1
	return s
}

func cloneOrder(o domain.Order) domain.Order {
	o.Items = slices.Clone(o.Items)
	if o.Items == nil {
		o.Items = []domain.OrderItem{}
	}
	o.DeliveryInfo = o.DeliveryInfo.Clone()
	return o
}

func indexByID[T any](items []T, id int64, idOf func(T) int64) int {
	return slices.IndexFunc(items, func(v T) bool { return idOf(v) == id })
}

func userID(u domain.User) int64               { return u.ID }
func categoryID(c domain.Category) int64       { return c.ID }
func productID(p domain.Product) int64         { return p.ID }
func transactionID(t domain.Transaction) int64 { return t.ID }
func orderID(o domain.Order) int64             { return o.ID }

// --- users ---

func (s *MemoryStore) ListUsers(_ context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.users), nil
}

func (s *MemoryStore) GetUser(_ context.Context, id int64) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexByID(s.users, id, userID); i >= 0 {
		return s.users[i], nil
	}
	return domain.User{}, ErrNotFound
}

func (s *MemoryStore) FindUserByEmail(_ context.Context, email string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, ErrNotFound
}

func (s *MemoryStore) CreateUser(_ context.Context, u domain.User) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return domain.User{}, ErrConflict
		}
	}
	u.ID = s.nextUserID
	s.nextUserID++
	u.CreatedAt = s.now()
	s.users = append(s.users, u)
	return u, nil
}

func (s *MemoryStore) Authenticate(_ context.Context, email, password string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email && u.Password == password {
			return u, nil
		}
	}
	return domain.User{}, ErrNotFound
}

func (s *MemoryStore) UpdateUserRole(_ context.Context, id int64, role string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexByID(s.users, id, userID)
	if i < 0 {
		return domain.User{}, ErrNotFound
	}
	s.users[i].Role = role
	return s.users[i], nil
}

func (s *MemoryStore) DeleteUser(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexByID(s.users, id, userID)
	if i < 0 {
		return ErrNotFound
	}
	s.users = slices.Delete(s.users, i, i+1)
	return nil
}

// --- categories ---

func (s *MemoryStore) ListCategories(_ context.Context) ([]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.categories), nil
}

func (s *MemoryStore) GetCategory(_ context.Context, id int64) (domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexByID(s.categories, id, categoryID); i >= 0 {
		return s.categories[i], nil
	}
	return domain.Category{}, ErrNotFound
}

func (s *MemoryStore) CreateCategory(_ context.Context, c domain.Category) (domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.nextCategoryID
	s.nextCategoryID++
	s.categories = append(s.categories, c)
	return c, nil
}

func (s *MemoryStore) UpdateCategory(_ context.Context, c domain.Category) (domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexByID(s.categories, c.ID, categoryID)
	if i < 0 {
		return domain.Category{}, ErrNotFound
	}
	s.categories[i] = c
	return c, nil
}

func (s *MemoryStore) DeleteCategory(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexByID(s.categories, id, categoryID)
	if i < 0 {
		return ErrNotFound
	}
	s.categories = slices.Delete(s.categories, i, i+1)
	return nil
}

// --- products ---

func (s *MemoryStore) ListProducts(_ context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.products), nil
}

func (s *MemoryStore) ListProductsByCategory(_ context.Context, catID int64) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Product{}
	for _, p := range s.products {
		if p.CategoryID == catID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemoryStore) GetProduct(_ context.Context, id int64) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexByID(s.products, id, productID); i >= 0 {
		return s.products[i], nil
	}
	return domain.Product{}, ErrNotFound
}

func (s *MemoryStore) CreateProduct(_ context.Context, p domain.Product) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.nextProductID
	s.nextProductID++
	p.CreatedAt = s.now()
	s.products = append(s.products, p)
	return p, nil
}

func (s *MemoryStore) UpdateProduct(_ context.Context, p domain.Product) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexByID(s.products, p.ID, productID)
	if i < 0 {
		return domain.Product{}, ErrNotFound
	}
	p.CreatedAt = s.products[i].CreatedAt
	s.products[i] = p
	return p, nil
}

func (s *MemoryStore) DeleteProduct(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexByID(s.products, id, productID)
	if i < 0 {
		return ErrNotFound
	}
	s.products = slices.Delete(s.products, i, i+1)
	return nil
}

// --- orders ---

func (s *MemoryStore) ListOrders(_ context.Context, f UserFilter) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Order{}
	for _, o := range s.orders {
		if f.match(o.UserID) {
			out = append(out, cloneOrder(o))
		}
	}
	return out, nil
}

func (s *MemoryStore) GetOrder(_ context.Context, id int64) (domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexByID(s.orders, id, orderID); i >= 0 {
		return cloneOrder(s.orders[i]), nil
	}
	return domain.Order{}, ErrNotFound
}

func (s *MemoryStore) CreateOrder(_ context.Context, o domain.Order) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o = cloneOrder(o)
	o.ID = s.nextOrderID
	s.nextOrderID++
	o.CreatedAt = s.now()
	s.orders = append(s.orders, o)
	return cloneOrder(o), nil
}

func (s *MemoryStore) UpdateOrderStatus(_ context.Context, id int64, status string) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexByID(s.orders, id, orderID)
	if i < 0 {
		return domain.Order{}, ErrNotFound
	}
	s.orders[i].Status = status
	return cloneOrder(s.orders[i]), nil
}

func (s *MemoryStore) DeleteOrder(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexByID(s.orders, id, orderID)
	if i < 0 {
		return ErrNotFound
	}
	s.orders = slices.Delete(s.orders, i, i+1)
	return nil
}

// --- transactions ---

func (s *MemoryStore) ListTransactions(_ context.Context, f UserFilter) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Transaction{}
	for _, t := range s.transactions {
		if f.match(t.UserID) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *MemoryStore) GetTransaction(_ context.Context, id int64) (domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexByID(s.transactions, id, transactionID); i >= 0 {
		return s.transactions[i], nil
	}
	return domain.Transaction{}, ErrNotFound
}

func (s *MemoryStore) CreateTransaction(_ context.Context, t domain.Transaction) (domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.nextTransactionID
	s.nextTransactionID++
	t.TransactionDate = s.now()
	s.transactions = append(s.transactions, t)
	return t, nil
}

func (s *MemoryStore) UpdateTransactionStatus(_ context.Context, id int64, status string) (domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexByID(s.transactions, id, transactionID)
	if i < 0 {
		return domain.Transaction{}, ErrNotFound
	}
	s.transactions[i].Status = status
	return s.transactions[i], nil
}

func (s *MemoryStore) DeleteTransaction(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexByID(s.transactions, id, transactionID)
	if i < 0 {
		return ErrNotFound
	}
	s.transactions = slices.Delete(s.transactions, i, i+1)
	return nil
}

// --- contact ---

func (s *MemoryStore) CreateContactMessage(_ context.Context, m domain.ContactMessage) (domain.ContactMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = s.nextContactID
	s.nextContactID++
	m.CreatedAt = s.now()
	s.contacts = append(s.contacts, m)
	return m, nil
}
