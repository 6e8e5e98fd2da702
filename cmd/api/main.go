package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"github.com/wichananm65/skincare-backend/internal/analysis"
	"github.com/wichananm65/skincare-backend/internal/config"
	"github.com/wichananm65/skincare-backend/internal/platform/logger"
	"github.com/wichananm65/skincare-backend/internal/product"
	"github.com/wichananm65/skincare-backend/internal/progress"
	"github.com/wichananm65/skincare-backend/internal/storage"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log, err := logger.New(cfg.LogMode, cfg.LogHashSalt)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, cfg.Storage(), log)
	if err != nil {
		log.Fatal("storage unavailable", "error", err)
	}
	defer store.Close()

	app := fiber.New(fiber.Config{
		BodyLimit:             10 * 1024 * 1024,
		DisableStartupMessage: !cfg.Debug,
	})
	setupCORS(app)
	app.Use(requestLogger(log))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "backend": store.Backend()})
	})

	progressService := progress.NewService(store)
	product.NewHandler(product.NewService(store, cfg.MaxRecommendations), cfg.AllowProductWrites).RegisterPublicRoutes(app)
	progress.NewHandler(progressService).RegisterPublicRoutes(app)
	analysis.NewHandler(analysis.NewAnalyzer(nil), progressService, cfg.UploadDir, log).RegisterPublicRoutes(app)

	go func() {
		<-ctx.Done()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("shutdown failed", "error", err)
		}
	}()

	log.Info("starting server", "addr", cfg.Addr, "env", cfg.AppEnv, "backend", store.Backend())
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
}

func requestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		fields := []interface{}{
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if status >= fiber.StatusInternalServerError {
			log.Warn("request", append(fields, "error", err)...)
		} else {
			log.Debug("request", fields...)
		}
		return err
	}
}
