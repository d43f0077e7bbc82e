package weather

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func SetupRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.CurrentHandler)
	return r
}
