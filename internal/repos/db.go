package repos

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	applog "storefront/internal/log"
)

// OpenDB connects to driver/dsn, pings it, provisions the schema and seeds
// the demo data. The handle is limited to one connection.
func OpenDB(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	d, err := dialectFor(driver)
	if err != nil {
		return nil, err
	}
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	if err = ensureSchema(ctx, db, d); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("schema: %w", err)
	}
	// Seed failures leave a usable schema behind; log and carry on.
	if err := seedDemoData(ctx, db, d, time.Now().UTC()); err != nil {
		applog.Warn("db.seed.fail", err, map[string]any{"driver": driver})
	}
	return db, nil
}

type dialect struct {
	name   string
	autoID string
	// resetSequences moves id generators past explicitly seeded ids.
	resetSequences func(ctx context.Context, db *sqlx.DB) error
}

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case "sqlite":
		return dialect{
			name:           "sqlite",
			autoID:         "INTEGER PRIMARY KEY AUTOINCREMENT",
			resetSequences: func(context.Context, *sqlx.DB) error { return nil },
		}, nil
	case "postgres":
		return dialect{name: "postgres", autoID: "BIGSERIAL PRIMARY KEY", resetSequences: resetPostgresSequences}, nil
	}
	return dialect{}, fmt.Errorf("unsupported driver %q", driver)
}

var seededTables = []string{"users", "categories", "products", "transactions", "orders", "order_items", "contact_messages"}

func resetPostgresSequences(ctx context.Context, db *sqlx.DB) error {
	for _, t := range seededTables {
		q := fmt.Sprintf(`SELECT setval(pg_get_serial_sequence('%[1]s','id'), COALESCE((SELECT MAX(id) FROM %[1]s), 0) + 1, false)`, t)
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("reset sequence %s: %w", t, err)
		}
	}
	return nil
}

// Foreign keys are advisory only: the memory path never enforces them, so the
// schema does not either.
func schemaStatements(d dialect) []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS users(
  id ` + d.autoID + `,
  name VARCHAR(100) NOT NULL,
  email VARCHAR(100) NOT NULL UNIQUE,
  password VARCHAR(100) NOT NULL,
  role VARCHAR(10) NOT NULL DEFAULT 'user' CHECK (role IN ('admin','user')),
  created_at TIMESTAMP NOT NULL
)`,
		`CREATE TABLE IF NOT EXISTS categories(
  id ` + d.autoID + `,
  name VARCHAR(100) NOT NULL,
  description TEXT
)`,
		`CREATE TABLE IF NOT EXISTS products(
  id ` + d.autoID + `,
  name VARCHAR(200) NOT NULL,
  description TEXT,
  price NUMERIC(10,2) NOT NULL CHECK (price >= 0),
  image_url VARCHAR(500),
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  category_id BIGINT,
  created_at TIMESTAMP NOT NULL
)`,
		`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id)`,
		`CREATE TABLE IF NOT EXISTS transactions(
  id ` + d.autoID + `,
  user_id BIGINT,
  product_id BIGINT,
  quantity INTEGER NOT NULL CHECK (quantity > 0),
  status VARCHAR(16) NOT NULL DEFAULT 'ordered' CHECK (status IN ('ordered','shipped','delivered','cancelled')),
  transaction_date TIMESTAMP NOT NULL
)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_user ON transactions(user_id)`,
		`CREATE TABLE IF NOT EXISTS orders(
  id ` + d.autoID + `,
  user_id BIGINT,
  total_amount NUMERIC(10,2) NOT NULL CHECK (total_amount >= 0),
  status VARCHAR(16) NOT NULL DEFAULT 'ordered' CHECK (status IN ('ordered','shipped','delivered','cancelled')),
  delivery_info TEXT,
  payment_method VARCHAR(50),
  created_at TIMESTAMP NOT NULL
)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id)`,
		`CREATE TABLE IF NOT EXISTS order_items(
  id ` + d.autoID + `,
  order_id BIGINT NOT NULL,
  product_id BIGINT,
  product_name VARCHAR(200) NOT NULL,
  quantity INTEGER NOT NULL,
  price NUMERIC(10,2) NOT NULL
)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)`,
		`CREATE TABLE IF NOT EXISTS contact_messages(
  id ` + d.autoID + `,
  name VARCHAR(100) NOT NULL,
  email VARCHAR(100) NOT NULL,
  subject VARCHAR(200) NOT NULL,
  message TEXT NOT NULL,
  created_at TIMESTAMP NOT NULL
)`,
	}
}

func ensureSchema(ctx context.Context, db *sqlx.DB, d dialect) error {
	for _, stmt := range schemaStatements(d) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// seedDemoData inserts the demo rows if they are not there yet. Safe to run
// on every startup.
func seedDemoData(ctx context.Context, db *sqlx.DB, d dialect, now time.Time) error {
	sd := demoSeed(now)
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	exec := func(q string, args ...any) (int64, error) {
		res, err := tx.ExecContext(ctx, tx.Rebind(q), args...)
		if err != nil {
			return 0, err
		}
		return res.RowsAffected()
	}

	for _, u := range sd.users {
		if _, err := exec(`INSERT INTO users(id,name,email,password,role,created_at) VALUES(?,?,?,?,?,?) ON CONFLICT DO NOTHING`,
			u.ID, u.Name, u.Email, u.Password, u.Role, u.CreatedAt); err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
	}
	for _, c := range sd.categories {
		if _, err := exec(`INSERT INTO categories(id,name,description) VALUES(?,?,?) ON CONFLICT DO NOTHING`,
			c.ID, c.Name, c.Description); err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}
	}
	for _, p := range sd.products {
		if _, err := exec(`INSERT INTO products(id,name,description,price,image_url,stock,category_id,created_at) VALUES(?,?,?,?,?,?,?,?) ON CONFLICT DO NOTHING`,
			p.ID, p.Name, p.Description, p.Price, p.ImageURL, p.Stock, p.CategoryID, p.CreatedAt); err != nil {
			return fmt.Errorf("seed products: %w", err)
		}
	}
	for _, t := range sd.transactions {
		if _, err := exec(`INSERT INTO transactions(id,user_id,product_id,quantity,status,transaction_date) VALUES(?,?,?,?,?,?) ON CONFLICT DO NOTHING`,
			t.ID, t.UserID, t.ProductID, t.Quantity, t.Status, t.TransactionDate); err != nil {
			return fmt.Errorf("seed transactions: %w", err)
		}
	}
	for _, o := range sd.orders {
		n, err := exec(`INSERT INTO orders(id,user_id,total_amount,status,delivery_info,payment_method,created_at) VALUES(?,?,?,?,?,?,?) ON CONFLICT DO NOTHING`,
			o.ID, o.UserID, o.TotalAmount, o.Status, o.DeliveryInfo, o.PaymentMethod, o.CreatedAt)
		if err != nil {
			return fmt.Errorf("seed orders: %w", err)
		}
		if n == 0 {
			continue // already seeded, items too
		}
		for _, it := range o.Items {
			if _, err := exec(`INSERT INTO order_items(order_id,product_id,product_name,quantity,price) VALUES(?,?,?,?,?)`,
				o.ID, it.ProductID, it.ProductName, it.Quantity, it.Price); err != nil {
				return fmt.Errorf("seed order items: %w", err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	return d.resetSequences(ctx, db)
}
