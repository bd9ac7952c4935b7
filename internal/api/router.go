// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"storefront/internal/api/handler"
	"storefront/internal/auth"
)

// NewRouter sets up and returns the HTTP router.
func NewRouter(
	accountHandler *handler.AccountHandler,
	catalogHandler *handler.CatalogHandler,
	cartHandler *handler.CartHandler,
	checkoutHandler *handler.CheckoutHandler,
	tokens *auth.TokenIssuer,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Public routes
	r.Post("/signup", accountHandler.SignUp)
	r.Post("/login", accountHandler.Login)
	r.Post("/logout", accountHandler.Logout)
	r.Get("/products", catalogHandler.List)
	r.Get("/products/{productID}", catalogHandler.Get)

	// Routes requiring a valid session
	r.Group(func(r chi.Router) {
		r.Use(Authenticate(tokens, logger))

		r.Get("/profile", accountHandler.Profile)
		r.Get("/cart", cartHandler.ViewCart)
		r.Post("/cart/items", cartHandler.AddItem)
		r.Post("/purchase", checkoutHandler.Purchase)
		r.Get("/purchases", checkoutHandler.ListPurchases)
		r.Post("/purchases/{saleID}/return", checkoutHandler.Return)

		// Inventory administration
		r.Route("/admin/products", func(r chi.Router) {
			r.Use(RequireAdmin)
			r.Post("/", catalogHandler.Create)
			r.Put("/{productID}", catalogHandler.Update)
			r.Delete("/{productID}", catalogHandler.Delete)
		})
	})

	return r
}
