package main

import (
	"log"

	"github.com/bertiesbooks/bookshop-backend/internal/books"
	"github.com/bertiesbooks/bookshop-backend/internal/db"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/lib/pq"
)

// Seeds the catalog with a starter shelf. Safe to re-run: books already
// present (by name) are skipped.
func main() {
	_ = godotenv.Load(".env.local")
	db.Connect()
	books.Init()

	shelf := []books.Book{
		{Name: "Pride and Prejudice", Authors: pq.StringArray{"Jane Austen"}, Price: 7.99},
		{Name: "The Great Gatsby", Authors: pq.StringArray{"F. Scott Fitzgerald"}, Price: 8.49},
		{Name: "Moby-Dick", Authors: pq.StringArray{"Herman Melville"}, Price: 9.99},
		{Name: "Good Omens", Authors: pq.StringArray{"Terry Pratchett", "Neil Gaiman"}, Price: 10.99},
		{Name: "Middlemarch", Authors: pq.StringArray{"George Eliot"}, Price: 8.99},
	}

	seeded := 0
	for _, b := range shelf {
		var existing books.Book
		if err := db.DB.First(&existing, "name = ?", b.Name).Error; err == nil {
			continue
		}
		b.ID = uuid.NewString()
		if err := db.DB.Create(&b).Error; err != nil {
			log.Fatalf("Seeding failed for %q: %v", b.Name, err)
		}
		seeded++
	}

	log.Printf("Seeded %d books", seeded)
}
