package books

import (
	"log"

	"github.com/bertiesbooks/bookshop-backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "shop"); err != nil {
		log.Fatal("Failed to ensure schema shop: ", err)
	}

	if err := db.DB.AutoMigrate(&Book{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}
