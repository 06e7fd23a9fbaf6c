package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"storefront/internal/config"
	"storefront/internal/http/handlers"
	applog "storefront/internal/log"
	"storefront/internal/repos"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Optional file logging
	var out io.Writer = os.Stdout
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			defer f.Close()
			out = io.MultiWriter(os.Stdout, f)
			log.SetOutput(out)
		}
	}
	if err := applog.Setup(out, cfg.LogLevel); err != nil {
		log.Fatalf("log level %q: %v", cfg.LogLevel, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mem := repos.NewMemoryStore()
	backend := repos.SelectBackend(ctx, cfg, mem)
	defer func() {
		if err := backend.Close(); err != nil {
			applog.Warn("backend.close", err, nil)
		}
	}()

	app := fiber.New(fiber.Config{
		AppName:      "storefront",
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: handlers.ErrorHandler,
	})

	// ---------- Middlewares ----------
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{Output: out}))
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: strings.Join([]string{fiber.MethodGet, fiber.MethodPost, fiber.MethodPut, fiber.MethodDelete, fiber.MethodOptions}, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	handlers.NewDeps(backend).Register(app, cfg)

	applog.Logger().WithFields(map[string]any{
		"port":    cfg.Port,
		"backend": backend.Mode,
		"demo":    "admin@admin.com/admin123, user@user.com/user123",
	}).Info("server.start")

	go func() {
		<-ctx.Done()
		applog.Logger().Info("server.shutdown")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			applog.Warn("server.shutdown", err, nil)
		}
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		applog.Warn("server.listen", err, nil)
	}
}
