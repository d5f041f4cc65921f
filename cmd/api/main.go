package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/varejolabs/catalog_api/internal/config"
	"github.com/varejolabs/catalog_api/internal/database"
	"github.com/varejolabs/catalog_api/internal/handler"
	"github.com/varejolabs/catalog_api/internal/middleware"
	"github.com/varejolabs/catalog_api/internal/repository"
	"github.com/varejolabs/catalog_api/internal/service"
)

// main is the application entrypoint for the product catalog API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting catalog api")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations (tables, indexes, department seed)
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Seed sample products when the catalog is empty
	if err := database.SeedSampleProducts(context.Background(), db); err != nil {
		log.Error().Err(err).Msg("sample product seed failed")
		fmt.Fprintf(os.Stderr, "sample product seed failed: %v\n", err)
		os.Exit(1)
	}

	// 4. Initialize repositories
	productRepo := repository.NewProductRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)

	// 5. Initialize services
	productSvc := service.NewProductService(productRepo)
	departmentSvc := service.NewDepartmentService(departmentRepo)

	// 6. Initialize handlers
	handlers := &Handlers{
		Health:     handler.NewHealthHandler(db),
		Product:    handler.NewProductHandler(productSvc, departmentSvc),
		Department: handler.NewDepartmentHandler(departmentSvc),
	}

	// 7. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, cfg.StaticDir)

	// 8. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 9. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 10. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health     *handler.HealthHandler
	Product    *handler.ProductHandler
	Department *handler.DepartmentHandler
}

// setupRoutes registers all routes, including the static client app.
func setupRoutes(router *gin.Engine, handlers *Handlers, staticDir string) {
	router.GET("/api/health", handlers.Health.GetHealth)

	api := router.Group("/api")
	{
		api.GET("/products", handlers.Product.ListProducts)
		api.GET("/products/:id", handlers.Product.GetProduct)
		api.POST("/products", handlers.Product.CreateProduct)
		api.PUT("/products/:id", handlers.Product.UpdateProduct)
		api.DELETE("/products/:id", handlers.Product.DeleteProduct)

		api.GET("/departments", handlers.Department.ListDepartments)
		api.GET("/departments/:code", handlers.Department.GetDepartment)
	}

	// Form-driven client app
	router.StaticFile("/", filepath.Join(staticDir, "index.html"))
	router.StaticFile("/app.js", filepath.Join(staticDir, "app.js"))
	router.StaticFile("/style.css", filepath.Join(staticDir, "style.css"))
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	// Run migrations
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
