package api

import (
	"net/http"

	"github.com/The-Bhanu-Pratap-Singh/dynamic-inventory-ai/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.AuthMiddleware)
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.RateLimitMiddleware)

	r.Get("/healthz", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Route("/products", func(r chi.Router) {
				r.Get("/", h.ListProducts)
				r.Post("/", h.CreateProduct)
				r.Get("/{productID}", h.GetProduct)
				r.Post("/{productID}/restock", h.RestockProduct)
			})

			r.Post("/pos/checkout", h.Checkout)

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", h.ListOrders)
				r.Get("/{orderID}", h.GetOrder)
				r.Get("/{orderID}/invoice", h.GetOrderInvoice)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/daily-sales", h.DailySales)
				r.Get("/low-stock", h.LowStock)
			})
		})
	})

	return r
}
