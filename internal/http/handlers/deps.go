package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"storefront/internal/config"
	applog "storefront/internal/log"
	"storefront/internal/repos"
	"storefront/internal/services"
)

type Deps struct {
	AuthHandler        *AuthHandler
	CategoryHandler    *CategoryHandler
	ProductHandler     *ProductHandler
	UserHandler        *UserHandler
	OrderHandler       *OrderHandler
	TransactionHandler *TransactionHandler
	ContactHandler     *ContactHandler
	AnalyticsHandler   *AnalyticsHandler
	HealthHandler      *HealthHandler
}

func NewDeps(b *repos.Backend) *Deps {
	s := b.Store

	authSvc := services.NewAuthService(s)
	catalogSvc := services.NewCatalogService(s, s)
	userSvc := services.NewUserService(s)
	orderSvc := services.NewOrderService(s, s, s)
	txSvc := services.NewTransactionService(s, s, s)
	contactSvc := services.NewContactService(s)
	analyticsSvc := services.NewAnalyticsService(s, s)

	return &Deps{
		AuthHandler:        &AuthHandler{Auth: authSvc},
		CategoryHandler:    &CategoryHandler{Catalog: catalogSvc},
		ProductHandler:     &ProductHandler{Catalog: catalogSvc},
		UserHandler:        &UserHandler{Users: userSvc},
		OrderHandler:       &OrderHandler{Orders: orderSvc},
		TransactionHandler: &TransactionHandler{Txs: txSvc},
		ContactHandler:     &ContactHandler{Contact: contactSvc},
		AnalyticsHandler:   &AnalyticsHandler{Analytics: analyticsSvc},
		HealthHandler:      &HealthHandler{Mode: b.Mode},
	}
}

// Register mounts the JSON API. Login and signup are throttled per IP when
// cfg.LoginRateMax is positive.
func (d *Deps) Register(app *fiber.App, cfg config.Config) {
	api := app.Group("/api")

	authChain := []fiber.Handler{}
	if cfg.LoginRateMax > 0 {
		authChain = append(authChain, limiter.New(limiter.Config{
			Max:        cfg.LoginRateMax,
			Expiration: time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP() + "|auth"
			},
			LimitReached: func(c *fiber.Ctx) error {
				applog.Security(c, "rate.auth.hit", nil)
				return jsonError(c, fiber.StatusTooManyRequests, "Too many attempts. Please try again later.")
			},
		}))
	}
	api.Post("/signup", append(authChain, d.AuthHandler.Signup)...)
	api.Post("/login", append(authChain, d.AuthHandler.Login)...)

	api.Get("/products", d.ProductHandler.List)
	api.Get("/products/:id", d.ProductHandler.Get)
	api.Post("/products", d.ProductHandler.Create)
	api.Put("/products/:id", d.ProductHandler.Update)
	api.Delete("/products/:id", d.ProductHandler.Delete)

	api.Get("/categories", d.CategoryHandler.List)
	api.Get("/categories/:id", d.CategoryHandler.Detail)
	api.Post("/categories", d.CategoryHandler.Create)
	api.Put("/categories/:id", d.CategoryHandler.Update)
	api.Delete("/categories/:id", d.CategoryHandler.Delete)

	api.Get("/users", d.UserHandler.List)
	api.Put("/users/:id", d.UserHandler.UpdateRole)
	api.Delete("/users/:id", d.UserHandler.Delete)

	api.Get("/orders", d.OrderHandler.List)
	api.Get("/orders/:id", d.OrderHandler.Get)
	api.Post("/orders", d.OrderHandler.Create)
	api.Put("/orders/:id", d.OrderHandler.UpdateStatus)
	api.Delete("/orders/:id", d.OrderHandler.Delete)

	api.Get("/transactions", d.TransactionHandler.List)
	api.Post("/transactions", d.TransactionHandler.Create)
	api.Put("/transactions/:id", d.TransactionHandler.UpdateStatus)
	api.Delete("/transactions/:id", d.TransactionHandler.Delete)

	api.Post("/contact", d.ContactHandler.Send)
	api.Get("/analytics", d.AnalyticsHandler.Get)

	app.Get("/healthz", d.HealthHandler.Get)
}
