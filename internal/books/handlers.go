package books

import (
	"encoding/json"
	"html"
	"net/http"
	"strings"

	"github.com/bertiesbooks/bookshop-backend/internal/db"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ListBooksHandler serves the filtered catalog. Supported query parameters:
// search, minprice, maxprice, sort (name|price).
func ListBooksHandler(w http.ResponseWriter, r *http.Request) {
	var books []Book

	filter := ParseFilter(r.URL.Query())
	if err := filter.Apply(db.DB.Model(&Book{})).Find(&books).Error; err != nil {
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	if books == nil {
		books = []Book{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(books); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func GetBookHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var book Book
	if err := db.DB.First(&book, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			http.Error(w, "Book not found", http.StatusNotFound)
			return
		}
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(book); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// SearchHandler mirrors the old search flow: a bare substring match on the
// name, case-insensitive.
func SearchHandler(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("search_text"))
	if q == "" {
		http.Error(w, "search_text is required", http.StatusBadRequest)
		return
	}

	var books []Book
	err := db.DB.
		Where(`LOWER(name) LIKE LOWER(?) ESCAPE '\'`, "%"+escapeLike(q)+"%").
		Order("name ASC").
		Find(&books).Error
	if err != nil {
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	if books == nil {
		books = []Book{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(books); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// CreateBookHandler adds a book to the catalog. Session middleware gates it.
func CreateBookHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name    string   `json:"name"`
		Authors []string `json:"authors"`
		Price   float64  `json:"price"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	name := html.EscapeString(strings.TrimSpace(input.Name))
	if name == "" {
		http.Error(w, "Book name is required", http.StatusBadRequest)
		return
	}
	if input.Price < 0 {
		http.Error(w, "Price must not be negative", http.StatusBadRequest)
		return
	}

	book := Book{
		ID:      uuid.NewString(),
		Name:    name,
		Authors: pq.StringArray(input.Authors),
		Price:   input.Price,
	}
	if err := db.DB.Create(&book).Error; err != nil {
		http.Error(w, "Failed to create book", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(book); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
