package repos

import (
	"context"
	"errors"

	"storefront/internal/domain"
)

var (
	ErrNotFound = errors.New("repos: not found")
	ErrConflict = errors.New("repos: already exists")
)

// UserFilter narrows order and transaction listings. Zero UserID means all users.
type UserFilter struct {
	UserID int64
}

func (f UserFilter) match(userID int64) bool { return f.UserID == 0 || f.UserID == userID }

type UserStore interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id int64) (domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (domain.User, error)
	// CreateUser returns ErrConflict when the email is taken.
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)
	// Authenticate compares the stored password verbatim.
	Authenticate(ctx context.Context, email, password string) (domain.User, error)
	UpdateUserRole(ctx context.Context, id int64, role string) (domain.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type CategoryStore interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id int64) (domain.Category, error)
	CreateCategory(ctx context.Context, c domain.Category) (domain.Category, error)
	// UpdateCategory rewrites every field of the category with c.ID.
	UpdateCategory(ctx context.Context, c domain.Category) (domain.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

type ProductStore interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListProductsByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (domain.Product, error)
	CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error)
	// UpdateProduct rewrites every mutable field of the product with p.ID.
	UpdateProduct(ctx context.Context, p domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type OrderStore interface {
	ListOrders(ctx context.Context, f UserFilter) ([]domain.Order, error)
	GetOrder(ctx context.Context, id int64) (domain.Order, error)
	CreateOrder(ctx context.Context, o domain.Order) (domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status string) (domain.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
}

type TransactionStore interface {
	ListTransactions(ctx context.Context, f UserFilter) ([]domain.Transaction, error)
	GetTransaction(ctx context.Context, id int64) (domain.Transaction, error)
	CreateTransaction(ctx context.Context, t domain.Transaction) (domain.Transaction, error)
	UpdateTransactionStatus(ctx context.Context, id int64, status string) (domain.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error
}

// ContactStore is a write-only sink.
type ContactStore interface {
	CreateContactMessage(ctx context.Context, m domain.ContactMessage) (domain.ContactMessage, error)
}

// Store is everything the services need from a backend.
type Store interface {
	UserStore
	CategoryStore
	ProductStore
	OrderStore
	TransactionStore
	ContactStore
}
