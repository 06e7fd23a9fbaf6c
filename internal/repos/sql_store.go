package repos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
)

// SQLStore implements Store over a sqlx handle (sqlite or postgres).
type SQLStore struct {
	db  *sqlx.DB
	now func() time.Time
}

var _ Store = (*SQLStore)(nil)

func NewSQLStore(db *sqlx.DB, opts ...Option) *SQLStore {
	o := buildOptions(opts)
	return &SQLStore{db: db, now: o.now}
}

func (s *SQLStore) get(ctx context.Context, dest any, query string, args ...any) error {
	err := s.db.GetContext(ctx, dest, s.db.Rebind(query), args...)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (s *SQLStore) selectAll(ctx context.Context, dest any, query string, args ...any) error {
	return s.db.SelectContext(ctx, dest, s.db.Rebind(query), args...)
}

func (s *SQLStore) insertReturningID(ctx context.Context, ext sqlx.QueryerContext, query string, args ...any) (int64, error) {
	var id int64
	if err := sqlx.GetContext(ctx, ext, &id, s.db.Rebind(query+" RETURNING id"), args...); err != nil {
		return 0, err
	}
	return id, nil
}

// execAffecting runs a write and maps "no rows touched" to ErrNotFound.
func (s *SQLStore) execAffecting(ctx context.Context, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// --- users ---

const userColumns = `id, name, email, password, role, created_at`

func (s *SQLStore) ListUsers(ctx context.Context) ([]domain.User, error) {
	out := []domain.User{}
	if err := s.selectAll(ctx, &out, `SELECT `+userColumns+` FROM users ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

func (s *SQLStore) GetUser(ctx context.Context, id int64) (domain.User, error) {
	var u domain.User
	err := s.get(ctx, &u, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return u, err
}

func (s *SQLStore) FindUserByEmail(ctx context.Context, email string) (domain.User, error) {
	var u domain.User
	err := s.get(ctx, &u, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return u, err
}

func (s *SQLStore) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	if _, err := s.FindUserByEmail(ctx, u.Email); err == nil {
		return domain.User{}, ErrConflict
	} else if !errors.Is(err, ErrNotFound) {
		return domain.User{}, err
	}
	id, err := s.insertReturningID(ctx, s.db,
		`INSERT INTO users(name, email, password, role, created_at) VALUES(?, ?, ?, ?, ?)`,
		u.Name, u.Email, u.Password, u.Role, s.now())
	if err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return s.GetUser(ctx, id)
}

func (s *SQLStore) Authenticate(ctx context.Context, email, password string) (domain.User, error) {
	var u domain.User
	err := s.get(ctx, &u, `SELECT `+userColumns+` FROM users WHERE email = ? AND password = ?`, email, password)
	return u, err
}

func (s *SQLStore) UpdateUserRole(ctx context.Context, id int64, role string) (domain.User, error) {
	if err := s.execAffecting(ctx, `UPDATE users SET role = ? WHERE id = ?`, role, id); err != nil {
		return domain.User{}, err
	}
	return s.GetUser(ctx, id)
}

func (s *SQLStore) DeleteUser(ctx context.Context, id int64) error {
	return s.execAffecting(ctx, `DELETE FROM users WHERE id = ?`, id)
}

// --- categories ---

const categoryColumns = `id, name, COALESCE(description,'') AS description`

func (s *SQLStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	out := []domain.Category{}
	if err := s.selectAll(ctx, &out, `SELECT `+categoryColumns+` FROM categories ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

func (s *SQLStore) GetCategory(ctx context.Context, id int64) (domain.Category, error) {
	var c domain.Category
	err := s.get(ctx, &c, `SELECT `+categoryColumns+` FROM categories WHERE id = ?`, id)
	return c, err
}

func (s *SQLStore) CreateCategory(ctx context.Context, c domain.Category) (domain.Category, error) {
	id, err := s.insertReturningID(ctx, s.db, `INSERT INTO categories(name, description) VALUES(?, ?)`, c.Name, c.Description)
	if err != nil {
		return domain.Category{}, fmt.Errorf("create category: %w", err)
	}
	return s.GetCategory(ctx, id)
}

func (s *SQLStore) UpdateCategory(ctx context.Context, c domain.Category) (domain.Category, error) {
	if err := s.execAffecting(ctx, `UPDATE categories SET name = ?, description = ? WHERE id = ?`, c.Name, c.Description, c.ID); err != nil {
		return domain.Category{}, err
	}
	return s.GetCategory(ctx, c.ID)
}

func (s *SQLStore) DeleteCategory(ctx context.Context, id int64) error {
	return s.execAffecting(ctx, `DELETE FROM categories WHERE id = ?`, id)
}

// --- products ---

const productColumns = `id, name, COALESCE(description,'') AS description, price,
  COALESCE(image_url,'') AS image_url, stock, COALESCE(category_id,0) AS category_id, created_at`

func (s *SQLStore) ListProducts(ctx context.Context) ([]domain.Product, error) {
	out := []domain.Product{}
	if err := s.selectAll(ctx, &out, `SELECT `+productColumns+` FROM products ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return out, nil
}

func (s *SQLStore) ListProductsByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error) {
	out := []domain.Product{}
	if err := s.selectAll(ctx, &out, `SELECT `+productColumns+` FROM products WHERE category_id = ? ORDER BY id`, categoryID); err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}
	return out, nil
}

func (s *SQLStore) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	var p domain.Product
	err := s.get(ctx, &p, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	return p, err
}

func (s *SQLStore) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	id, err := s.insertReturningID(ctx, s.db, `
	  INSERT INTO products(name, description, price, image_url, stock, category_id, created_at)
	  VALUES(?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Description, p.Price, p.ImageURL, p.Stock, p.CategoryID, s.now())
	if err != nil {
		return domain.Product{}, fmt.Errorf("create product: %w", err)
	}
	return s.GetProduct(ctx, id)
}

func (s *SQLStore) UpdateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	if err := s.execAffecting(ctx, `
	  UPDATE products
	  SET name = ?, description = ?, price = ?, image_url = ?, stock = ?, category_id = ?
	  WHERE id = ?`,
		p.Name, p.Description, p.Price, p.ImageURL, p.Stock, p.CategoryID, p.ID); err != nil {
		return domain.Product{}, err
	}
	return s.GetProduct(ctx, p.ID)
}

func (s *SQLStore) DeleteProduct(ctx context.Context, id int64) error {
	return s.execAffecting(ctx, `DELETE FROM products WHERE id = ?`, id)
}

// --- orders ---

const orderColumns = `id, COALESCE(user_id,0) AS user_id, total_amount, status, delivery_info,
  COALESCE(payment_method,'') AS payment_method, created_at`

type orderItemRow struct {
	OrderID int64 `db:"order_id"`
	domain.OrderItem
}

// attachItems loads the line items of every order in one query.
func (s *SQLStore) attachItems(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int64, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	query, args, err := sqlx.In(`
	  SELECT order_id, COALESCE(product_id,0) AS product_id, product_name, quantity, price
	  FROM order_items WHERE order_id IN (?) ORDER BY id`, ids)
	if err != nil {
		return err
	}
	var rows []orderItemRow
	if err := s.selectAll(ctx, &rows, query, args...); err != nil {
		return err
	}
	byOrder := make(map[int64][]domain.OrderItem, len(orders))
	for _, r := range rows {
		byOrder[r.OrderID] = append(byOrder[r.OrderID], r.OrderItem)
	}
	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
		if orders[i].Items == nil {
			orders[i].Items = []domain.OrderItem{}
		}
	}
	return nil
}

func (s *SQLStore) ListOrders(ctx context.Context, f UserFilter) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	var args []any
	if f.UserID != 0 {
		query += ` WHERE user_id = ?`
		args = append(args, f.UserID)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	out := []domain.Order{}
	if err := s.selectAll(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if err := s.attachItems(ctx, out); err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	return out, nil
}

func (s *SQLStore) GetOrder(ctx context.Context, id int64) (domain.Order, error) {
	var o domain.Order
	if err := s.get(ctx, &o, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id); err != nil {
		return domain.Order{}, err
	}
	orders := []domain.Order{o}
	if err := s.attachItems(ctx, orders); err != nil {
		return domain.Order{}, fmt.Errorf("get order items: %w", err)
	}
	return orders[0], nil
}

func (s *SQLStore) CreateOrder(ctx context.Context, o domain.Order) (domain.Order, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.Order{}, err
	}
	defer func() { _ = tx.Rollback() }()

	id, err := s.insertReturningID(ctx, tx, `
	  INSERT INTO orders(user_id, total_amount, status, delivery_info, payment_method, created_at)
	  VALUES(?, ?, ?, ?, ?, ?)`,
		o.UserID, o.TotalAmount, o.Status, o.DeliveryInfo, o.PaymentMethod, s.now())
	if err != nil {
		return domain.Order{}, fmt.Errorf("create order: %w", err)
	}
	for _, it := range o.Items {
		if _, err := tx.ExecContext(ctx, tx.Rebind(`
		  INSERT INTO order_items(order_id, product_id, product_name, quantity, price)
		  VALUES(?, ?, ?, ?, ?)`),
			id, it.ProductID, it.ProductName, it.Quantity, it.Price); err != nil {
			return domain.Order{}, fmt.Errorf("create order item: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return domain.Order{}, err
	}
	return s.GetOrder(ctx, id)
}

func (s *SQLStore) UpdateOrderStatus(ctx context.Context, id int64, status string) (domain.Order, error) {
	if err := s.execAffecting(ctx, `UPDATE orders SET status = ? WHERE id = ?`, status, id); err != nil {
		return domain.Order{}, err
	}
	return s.GetOrder(ctx, id)
}

// DeleteOrder removes the order and the line items it owns.
func (s *SQLStore) DeleteOrder(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM order_items WHERE order_id = ?`), id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM orders WHERE id = ?`), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

// --- transactions ---

const transactionColumns = `id, COALESCE(user_id,0) AS user_id, COALESCE(product_id,0) AS product_id,
  quantity, status, transaction_date`

func (s *SQLStore) ListTransactions(ctx context.Context, f UserFilter) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions`
	var args []any
	if f.UserID != 0 {
		query += ` WHERE user_id = ?`
		args = append(args, f.UserID)
	}
	query += ` ORDER BY transaction_date DESC, id DESC`

	out := []domain.Transaction{}
	if err := s.selectAll(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return out, nil
}

func (s *SQLStore) GetTransaction(ctx context.Context, id int64) (domain.Transaction, error) {
	var t domain.Transaction
	err := s.get(ctx, &t, `SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id)
	return t, err
}

func (s *SQLStore) CreateTransaction(ctx context.Context, t domain.Transaction) (domain.Transaction, error) {
	id, err := s.insertReturningID(ctx, s.db, `
	  INSERT INTO transactions(user_id, product_id, quantity, status, transaction_date)
	  VALUES(?, ?, ?, ?, ?)`,
		t.UserID, t.ProductID, t.Quantity, t.Status, s.now())
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	return s.GetTransaction(ctx, id)
}

func (s *SQLStore) UpdateTransactionStatus(ctx context.Context, id int64, status string) (domain.Transaction, error) {
	if err := s.execAffecting(ctx, `UPDATE transactions SET status = ? WHERE id = ?`, status, id); err != nil {
		return domain.Transaction{}, err
	}
	return s.GetTransaction(ctx, id)
}

func (s *SQLStore) DeleteTransaction(ctx context.Context, id int64) error {
	return s.execAffecting(ctx, `DELETE FROM transactions WHERE id = ?`, id)
}

// --- contact ---

func (s *SQLStore) CreateContactMessage(ctx context.Context, m domain.ContactMessage) (domain.ContactMessage, error) {
	m.CreatedAt = s.now()
	id, err := s.insertReturningID(ctx, s.db, `
	  INSERT INTO contact_messages(name, email, subject, message, created_at)
	  VALUES(?, ?, ?, ?, ?)`,
		m.Name, m.Email, m.Subject, m.Message, m.CreatedAt)
	if err != nil {
		return domain.ContactMessage{}, fmt.Errorf("create contact message: %w", err)
	}
	m.ID = id
	return m, nil
}
