package websvc

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter собирает маршруты жизненного цикла заказов.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/orders/list", http.StatusSeeOther)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Get("/create", h.CreateForm)
		r.Post("/create", h.Create)
		r.Get("/list", h.List)
		r.Get("/cancel/{id}", h.CancelConfirm)
		r.Post("/cancel/{id}", h.Cancel)
		r.Post("/items/cancel/{id}", h.CancelItem)
	})

	return r
}
