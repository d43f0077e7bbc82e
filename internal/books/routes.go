package books

import (
	"net/http"

	"github.com/bertiesbooks/bookshop-backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(sessions middleware.SessionFetcher) http.Handler {
	r := chi.NewRouter()

	// Public catalog routes
	r.Get("/", ListBooksHandler)
	r.Get("/search", SearchHandler)
	r.Get("/{id}", GetBookHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessions))
		r.Post("/", CreateBookHandler)
	})

	return r
}
