package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/bertiesbooks/bookshop-backend/internal/auth"
	"github.com/bertiesbooks/bookshop-backend/internal/books"
	"github.com/bertiesbooks/bookshop-backend/internal/config"
	"github.com/bertiesbooks/bookshop-backend/internal/db"
	"github.com/bertiesbooks/bookshop-backend/internal/middleware"
	"github.com/bertiesbooks/bookshop-backend/internal/weather"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	response := "Server is up!"
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, response)
}

func main() {
	_ = godotenv.Load(".env.local")
	cfg := config.Load()
	db.Connect()

	auth.Init()
	books.Init()

	hasher := auth.NewHasher(cfg.BcryptCost)
	sessions := auth.NewSessionManager(db.DB, time.Duration(cfg.SessionTTLHours)*time.Hour)
	audit := auth.NewAuditRecorder(db.DB)
	authHandler := auth.NewHandler(auth.NewService(db.DB, hasher, sessions, audit))

	loginLimiter := middleware.RateLimit(cfg.LoginRPS, cfg.LoginBurst)

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Get("/", RootHandler)

	r.Mount("/auth", auth.SetupRoutes(authHandler, sessions, loginLimiter))
	auth.RegisterRootAliases(r, authHandler, sessions, loginLimiter)
	r.Mount("/books", books.SetupRoutes(sessions))
	r.Mount("/weather", weather.SetupRoutes(weather.NewHandler(weather.NewClient())))

	fmt.Println("Server listening on port :" + cfg.Port + "...")

	if err := http.ListenAndServe("0.0.0.0:"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}
