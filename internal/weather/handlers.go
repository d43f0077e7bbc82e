package weather

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var ErrCityNotFound = errors.New("city not found")

// Handler serves the weather lookup page's JSON replacement.
type Handler struct {
	client *Client
	caser  cases.Caser
}

func NewHandler(client *Client) *Handler {
	return &Handler{
		client: client,
		caser:  cases.Title(language.English),
	}
}

// CurrentHandler answers GET /weather?city=. City defaults to london, like
// the page it replaces.
func (h *Handler) CurrentHandler(w http.ResponseWriter, r *http.Request) {
	city := strings.TrimSpace(r.URL.Query().Get("city"))
	if city == "" {
		city = "london"
	}

	if h.client == nil {
		http.Error(w, "Weather service not configured. Set OPENWEATHER_API_KEY.", http.StatusServiceUnavailable)
		return
	}

	cond, err := h.client.Current(r.Context(), city)
	if err != nil {
		if errors.Is(err, ErrCityNotFound) {
			http.Error(w, "City not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Unable to fetch weather right now.", http.StatusBadGateway)
		return
	}

	if cond.City == "" {
		cond.City = h.caser.String(city)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(cond); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
