package books

import (
	"time"

	"github.com/lib/pq"
)

type Book struct {
	ID        string         `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null;index" json:"name"`
	Authors   pq.StringArray `gorm:"type:text[]" json:"authors"`
	Price     float64        `gorm:"not null" json:"price"`
	CreatedAt time.Time      `json:"-"`
}

func (Book) TableName() string { return "shop.books" }
