package app

import (
	"github.com/LuBeneventi/lvlupreact-2/internal/config"
	"github.com/LuBeneventi/lvlupreact-2/internal/handlers"
	"github.com/LuBeneventi/lvlupreact-2/internal/utils/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// setupRouter builds the chi router with middleware and routes.
func setupRouter(cfg *config.Config, deps *dependencies, jwtManager *jwt.Manager, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	setupMiddleware(r, cfg, logger)
	setupRoutes(r, deps, jwtManager)

	return r
}

// setupMiddleware installs the global middleware chain.
func setupMiddleware(r *chi.Mux, cfg *config.Config, logger *zap.Logger) {
	r.Use(handlers.RequestIDMiddleware())
	r.Use(handlers.LoggingMiddleware(logger))
	r.Use(handlers.RecoveryMiddleware(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.Compress(5))
}

// setupRoutes registers the application routes.
func setupRoutes(r *chi.Mux, deps *dependencies, jwtManager *jwt.Manager) {
	r.Get("/health", deps.handlers.health.Health)
	r.Get("/ready", deps.handlers.health.Ready)

	// Public endpoints
	r.Post("/api/user/register", deps.handlers.auth.Register)
	r.Post("/api/user/login", deps.handlers.auth.Login)
	r.Get("/api/products", deps.handlers.catalog.ListProducts)
	r.Get("/api/products/{id}", deps.handlers.catalog.GetProduct)
	r.Get("/api/rewards", deps.handlers.rewards.ListActive)

	// Authenticated endpoints
	r.Group(func(r chi.Router) {
		r.Use(handlers.AuthMiddleware(jwtManager))
		r.Post("/api/rewards/{id}/redeem", deps.handlers.rewards.Redeem)
		r.Post("/api/checkout/quote", deps.handlers.checkout.Quote)
		r.Post("/api/checkout", deps.handlers.checkout.PlaceOrder)
		r.Get("/api/orders", deps.handlers.orders.GetUserOrders)
		r.Get("/api/orders/{id}", deps.handlers.orders.GetOrder)
		r.Get("/api/user/points", deps.handlers.rewards.GetBalance)
		r.Get("/api/user/points/redemptions", deps.handlers.rewards.GetRedemptions)
	})

	// Admin endpoints
	r.Group(func(r chi.Router) {
		r.Use(handlers.AuthMiddleware(jwtManager))
		r.Use(handlers.AdminMiddleware())
		r.Get("/api/admin/orders", deps.handlers.orders.ListOrders)
		r.Patch("/api/admin/orders/{id}/status", deps.handlers.orders.UpdateStatus)
	})
}
