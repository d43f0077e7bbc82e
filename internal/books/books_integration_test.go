package books_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	neturl "net/url"
	"os"
	"testing"
	"time"

	"github.com/bertiesbooks/bookshop-backend/internal/auth"
	"github.com/bertiesbooks/bookshop-backend/internal/books"
	"github.com/bertiesbooks/bookshop-backend/internal/db"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

var dbAvailable bool
var testServer *httptest.Server
var testSessions *auth.SessionManager

func TestMain(m *testing.M) {
	_ = godotenv.Load("../../.env.local")

	if os.Getenv("DATABASE_URL") == "" {
		os.Exit(m.Run())
	}

	db.Connect()
	dbAvailable = true

	auth.Init()
	books.Init()

	testSessions = auth.NewSessionManager(db.DB, 6*time.Hour)

	r := chi.NewRouter()
	r.Mount("/books", books.SetupRoutes(testSessions))

	testServer = httptest.NewServer(r)
	defer testServer.Close()

	os.Exit(m.Run())
}

// seedBooks inserts books with a unique name prefix and cleans them up after
// the test. Returns the prefix.
func seedBooks(t *testing.T, shelf ...books.Book) string {
	t.Helper()
	if !dbAvailable {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}

	prefix := fmt.Sprintf("bk_%s ", uuid.New().String()[:8])
	for i := range shelf {
		shelf[i].ID = uuid.NewString()
		shelf[i].Name = prefix + shelf[i].Name
		if err := db.DB.Create(&shelf[i]).Error; err != nil {
			t.Fatalf("seeding book: %v", err)
		}
	}

	t.Cleanup(func() {
		db.DB.Where("name LIKE ?", prefix+"%").Delete(&books.Book{})
	})

	return prefix
}

func getBooks(t *testing.T, path string) []books.Book {
	t.Helper()
	resp, err := http.Get(testServer.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: %d %s", path, resp.StatusCode, body)
	}

	var result []books.Book
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("invalid JSON from %s: %s", path, body)
	}
	return result
}

func TestListBooksFilteredAndSorted(t *testing.T) {
	prefix := seedBooks(t,
		books.Book{Name: "Cheap Novel", Price: 4},
		books.Book{Name: "Mid Novel", Price: 8},
		books.Book{Name: "Dear Hardback", Price: 20},
	)

	// Substring search scoped by the unique prefix.
	result := getBooks(t, "/books?search="+uuid.New().String())
	if len(result) != 0 {
		t.Errorf("expected no matches for random search, got %d", len(result))
	}

	result = getBooks(t, "/books?search="+prefixQuery(prefix)+"&minprice=5&maxprice=15")
	if len(result) != 1 {
		t.Fatalf("expected 1 book in price range, got %d", len(result))
	}
	if result[0].Price != 8 {
		t.Errorf("expected the 8.00 book, got %+v", result[0])
	}

	// Price sort ascending.
	result = getBooks(t, "/books?search="+prefixQuery(prefix)+"&sort=price")
	if len(result) != 3 {
		t.Fatalf("expected 3 books, got %d", len(result))
	}
	for i := 1; i < len(result); i++ {
		if result[i].Price < result[i-1].Price {
			t.Errorf("books not sorted by price: %v before %v", result[i-1].Price, result[i].Price)
		}
	}
}

func TestSearchEndpoint(t *testing.T) {
	prefix := seedBooks(t, books.Book{Name: "Lonely Volume", Price: 3})

	result := getBooks(t, "/books/search?search_text="+prefixQuery(prefix))
	if len(result) != 1 {
		t.Fatalf("expected 1 match, got %d", len(result))
	}

	resp, err := http.Get(testServer.URL + "/books/search")
	if err != nil {
		t.Fatalf("GET /books/search: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for missing search_text, got %d", resp.StatusCode)
	}
}

func TestCreateBookRequiresSession(t *testing.T) {
	if !dbAvailable {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}

	payload, _ := json.Marshal(map[string]any{"name": "Unwanted", "price": 1.0})
	resp, err := http.Post(testServer.URL+"/books", "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("POST /books: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a session, got %d", resp.StatusCode)
	}

	// With an authenticated session the insert goes through.
	hashed, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	user := auth.User{
		UserID:         uuid.NewString(),
		Username:       fmt.Sprintf("bkuser_%s", uuid.New().String()[:8]),
		Email:          uuid.NewString() + "@example.com",
		HashedPassword: string(hashed),
	}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("creating user: %v", err)
	}
	sessionID, err := testSessions.Regenerate("", user.UserID)
	if err != nil {
		t.Fatalf("creating session: %v", err)
	}

	name := fmt.Sprintf("bk_%s Shelf Filler", uuid.New().String()[:8])
	payload, _ = json.Marshal(map[string]any{
		"name":    name,
		"authors": []string{"A. Nonymous"},
		"price":   5.5,
	})
	req, _ := http.NewRequest(http.MethodPost, testServer.URL+"/books", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "session_id", Value: sessionID})

	created, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST /books with session: %v", err)
	}
	body, _ := io.ReadAll(created.Body)
	created.Body.Close()

	t.Cleanup(func() {
		db.DB.Where("name = ?", name).Delete(&books.Book{})
		db.DB.Where("user_id = ?", user.UserID).Delete(&auth.Session{})
		db.DB.Where("user_id = ?", user.UserID).Delete(&auth.User{})
	})

	if created.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d; body: %s", created.StatusCode, body)
	}

	var book books.Book
	if err := json.Unmarshal(body, &book); err != nil {
		t.Fatalf("invalid JSON: %s", body)
	}
	if book.ID == "" || book.Name != name {
		t.Errorf("unexpected created book: %+v", book)
	}
	if len(book.Authors) != 1 || book.Authors[0] != "A. Nonymous" {
		t.Errorf("authors not persisted: %+v", book.Authors)
	}
}

func prefixQuery(prefix string) string {
	// Seeded names embed a space; keep it URL-safe.
	return neturl.QueryEscape(prefix)
}
