package router

import (
	"net/http"

	"techstore/internal/handler"
	"techstore/internal/middleware"
	"techstore/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// New creates the HTTP router with all routes and middleware configured.
// Catalogue reads are public; orders require an authenticated user; the
// admin subtree additionally requires the admin flag.
func New(
	productHandler *handler.ProductHandler,
	orderHandler *handler.OrderHandler,
	userRepo repository.UserRepository,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	auth := middleware.Auth(userRepo, logger)
	adminOnly := middleware.AdminOnly(logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", productHandler.List)
		r.Get("/products/{id}", productHandler.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(auth)

			r.Post("/orders", orderHandler.Create)
			r.Get("/orders", orderHandler.ListMine)
			r.Patch("/orders/{id}/cancel", orderHandler.Cancel)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth)
			r.Use(adminOnly)

			// summary must be registered before the {id} route would
			// otherwise swallow it; chi prefers static segments, but the
			// explicit order keeps intent obvious
			r.Get("/orders/summary", orderHandler.Summary)
			r.Get("/orders", orderHandler.ListAll)
			r.Get("/orders/{id}", orderHandler.GetAdmin)
			r.Patch("/orders/{id}", orderHandler.Update)

			r.Post("/products", productHandler.Create)
			r.Patch("/products/{id}", productHandler.Update)
			r.Delete("/products/{id}", productHandler.Delete)
			r.Post("/products/{id}/image", productHandler.UploadImage)
			r.Delete("/products/{id}/image", productHandler.RemoveImage)
		})
	})

	return r
}
