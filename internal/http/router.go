package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handlers struct {
	Products *ProductHandler
	Carts    *CartHandler
	Orders   *OrderHandler
}

func NewRouter(h Handlers, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Route("/products", func(r chi.Router) {
			r.Post("/", h.Products.CreateProduct)
			r.Get("/sku/{sku}", h.Products.GetProductBySKU)
			r.Get("/{id}", h.Products.GetProduct)
			r.Put("/{id}/price", h.Products.UpdatePrice)
			r.Put("/{id}/stock", h.Products.UpdateStock)
			r.Put("/{id}/active", h.Products.SetActive)
		})

		r.Group(func(r chi.Router) {
			r.Use(UserIDMiddleware)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", h.Carts.GetCart)
				r.Delete("/", h.Carts.ClearCart)
				r.Post("/items", h.Carts.AddItem)
				r.Put("/items/{productId}", h.Carts.UpdateItem)
				r.Delete("/items/{productId}", h.Carts.RemoveItem)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", h.Orders.Checkout)
				r.Get("/", h.Orders.ListOrders)
				r.Get("/{id}", h.Orders.GetOrder)
				r.Put("/{id}/status", h.Orders.UpdateStatus)
			})
		})
	})

	return r
}
