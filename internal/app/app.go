package app

import (
	"wattmarket-backend/internal/config"
	"wattmarket-backend/internal/contracts"
	"wattmarket-backend/internal/database"
	"wattmarket-backend/internal/health"
	"wattmarket-backend/internal/middleware"
	"wattmarket-backend/internal/portfolios"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware, opens the
// database, runs migrations, and registers routes.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, error) {
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, nil, err
	}

	app := NewRouter(cfg, db)
	return app, db, nil
}

// NewRouter assembles middleware and routes on a fresh Fiber app. Split from
// CreateApp so tests can mount the API on a test database.
func NewRouter(cfg *config.Config, db *gorm.DB) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{AllowedOrigins: cfg.AllowedOrigins}))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	healthHandlers := &health.Handlers{DB: db}
	app.Get("/health", healthHandlers.Check)

	// Contracts module
	contractService := &contracts.Service{DB: db}
	contractHandlers := &contracts.Handlers{Service: contractService}
	contractGroup := app.Group("/api/v1/contracts")
	contractGroup.Get("/", contractHandlers.ListContracts)
	// compare is registered before :id so the literal segment wins
	contractGroup.Get("/compare", contractHandlers.CompareContracts)
	contractGroup.Get("/:id", contractHandlers.GetContract)
	contractGroup.Post("/", contractHandlers.CreateContract)
	contractGroup.Patch("/:id", contractHandlers.UpdateContract)
	contractGroup.Delete("/:id", contractHandlers.DeleteContract)

	// Portfolios module
	portfolioService := &portfolios.Service{DB: db}
	portfolioHandlers := &portfolios.Handlers{Service: portfolioService}
	portfolioGroup := app.Group("/api/v1/portfolios")
	portfolioGroup.Get("/:user_id", portfolioHandlers.GetPortfolio)
	portfolioGroup.Get("/:user_id/metrics", portfolioHandlers.GetMetrics)
	portfolioGroup.Post("/:user_id/contracts/:contract_id", portfolioHandlers.AddContract)
	portfolioGroup.Delete("/:user_id/contracts/:contract_id", portfolioHandlers.RemoveContract)

	return app
}
