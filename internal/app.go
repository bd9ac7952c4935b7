// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "storefront/internal/api"
	"storefront/internal/api/handler"
	"storefront/internal/auth"
	"storefront/internal/config"
	"storefront/internal/repository"
	"storefront/internal/repository/postgres"
	"storefront/internal/service"
	"storefront/internal/util"
	"storefront/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB
	Tokens *auth.TokenIssuer

	// Repositories
	UserRepository    repository.UserRepository
	ProductRepository repository.ProductRepository
	CartRepository    repository.CartRepository
	SaleRepository    repository.SaleRepository
	ReceiptRepository repository.ReceiptRepository
	ReturnRepository  repository.ReturnRepository

	// Services
	AccountService  service.AccountService
	CatalogService  service.CatalogService
	CartService     service.CartService
	CheckoutService service.CheckoutService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger()
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Connect to Database
	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	// 4. Token issuer; the signing key comes only from configuration
	app.Tokens = auth.NewTokenIssuer(app.Config.Auth.JWTSecret, app.Config.Auth.TokenTTL)

	// 5. Initialize Repositories
	app.UserRepository = postgres.NewUserRepository(app.DB)
	app.ProductRepository = postgres.NewProductRepository(app.DB)
	app.CartRepository = postgres.NewCartRepository(app.DB)
	app.SaleRepository = postgres.NewSaleRepository(app.DB)
	app.ReceiptRepository = postgres.NewReceiptRepository(app.DB)
	app.ReturnRepository = postgres.NewReturnRepository(app.DB)
	app.Logger.Info("Repositories initialized.")

	// 6. Initialize Services
	app.AccountService = service.NewAccountService(
		app.DB,
		app.DB,
		app.UserRepository,
		app.Tokens,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.CatalogService = service.NewCatalogService(app.DB, app.ProductRepository)
	app.CartService = service.NewCartService(
		app.DB,
		app.UserRepository,
		app.ProductRepository,
		app.CartRepository,
	)
	app.CheckoutService = service.NewCheckoutService(
		app.DB, // This is the DBTxBeginner
		app.DB, // This is the DBExecutor
		app.UserRepository,
		app.ProductRepository,
		app.CartRepository,
		app.SaleRepository,
		app.ReceiptRepository,
		app.ReturnRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.Logger.Info("Services initialized.")

	// 7. Initialize HTTP Handlers and Router
	accountHandler := handler.NewAccountHandler(app.AccountService, app.Config.Auth.TokenTTL, app.Logger)
	catalogHandler := handler.NewCatalogHandler(app.CatalogService, app.Logger)
	cartHandler := handler.NewCartHandler(app.CartService, app.Logger)
	checkoutHandler := handler.NewCheckoutHandler(app.CheckoutService, app.Logger)
	app.HTTPHandler = router.NewRouter(accountHandler, catalogHandler, cartHandler, checkoutHandler, app.Tokens, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
