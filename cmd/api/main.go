package main

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/text/language"

	"github.com/hogarclick/storefront-backend/internal/auth"
	"github.com/hogarclick/storefront-backend/internal/cart"
	"github.com/hogarclick/storefront-backend/internal/catalog"
	"github.com/hogarclick/storefront-backend/internal/checkout"
	"github.com/hogarclick/storefront-backend/internal/config"
	"github.com/hogarclick/storefront-backend/internal/consult"
	"github.com/hogarclick/storefront-backend/internal/logging"
	"github.com/hogarclick/storefront-backend/internal/metrics"
	"github.com/hogarclick/storefront-backend/internal/order"
)

// replayed checkout keys stay locked long enough to cover any retry window
const idempotencyTTL = 24 * time.Hour

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logging.Init("storefront-api", cfg.LogFile)

	app := fiber.New()
	setupCORS(app)
	app.Use(metrics.Middleware())
	app.Use(logging.RequestLogger())
	metrics.Register(app)

	db := mustOpenDB(cfg)
	defer db.Close()
	if err := runMigrations(db, cfg.MigrationsPath); err != nil {
		panic(err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer rdb.Close()

	locale, err := language.Parse(cfg.Locale)
	if err != nil {
		log.Warn("invalid locale, falling back", "locale", cfg.Locale)
		locale = language.MustParse("es-AR")
	}

	catalogService := catalog.NewService(catalog.NewPostgresRepository(db))
	catalogHandler := catalog.NewHandler(catalogService, locale)

	cartStorage := cart.NewRedisStorage(rdb)
	cartService := cart.NewService(cartStorage, catalogService)
	cartHandler := cart.NewHandler(cartService, locale)

	orderService := order.NewService(
		order.NewPostgresRepository(db),
		order.NewRedisGuard(rdb, idempotencyTTL),
	)
	orderHandler := order.NewHandler(orderService)

	checkoutHandler := checkout.NewHandler(checkout.NewOrchestrator(
		checkout.NewManager(), cartService, orderService,
	))

	consultHandler := consult.NewHandler(catalogService, cfg.WhatsAppPhone)
	authHandler := auth.NewHandler(cfg.AdminEmail, cfg.AdminPassword, cfg.JWTSecret)

	// public surface
	catalogHandler.RegisterPublicRoutes(app)
	cartHandler.RegisterPublicRoutes(app)
	checkoutHandler.RegisterRoutes(app)
	consultHandler.RegisterPublicRoutes(app)
	authHandler.RegisterPublicRoutes(app)

	// everything past this point needs the admin token
	app.Use(auth.Middleware(cfg.JWTSecret))
	catalogHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)

	log.Info("listening", "addr", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		panic(err)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Cart-Session",
	}))
}

func mustOpenDB(cfg config.Config) *sql.DB {
	if cfg.DatabaseURL == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		panic(err)
	}
	if err := db.Ping(); err != nil {
		panic(err)
	}
	return db
}

func runMigrations(db *sql.DB, migrationsPath string) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}
	return nil
}
