package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Canonical bounds for the products table. The validate tags on the input
// structs in product_input.go mirror these values; keep both in sync.
const (
	NameMaxLen          = 100
	DescriptionMinLen   = 10
	DescriptionMaxLen   = 1000
	PriceMax            = 1_000_000
	CategoryMinLen      = 2
	CategoryMaxLen      = 50
	MultimediaMaxURLs   = 5
	MultimediaURLMaxLen = 255
	StockQuantityMax    = 100_000
)

// FieldError reports a constraint violation detected at the persistence
// boundary, naming the offending attribute.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

// URLList stores an ordered list of media URLs as a JSON-encoded column so the
// same model works on both SQLite and PostgreSQL.
type URLList []string

// Value implements driver.Valuer.
func (u URLList) Value() (driver.Value, error) {
	if u == nil {
		u = URLList{}
	}
	return json.Marshal(u)
}

// Scan implements sql.Scanner. SQLite hands back strings, PostgreSQL bytes.
func (u *URLList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*u = URLList{}
		return nil
	case []byte:
		return json.Unmarshal(v, u)
	case string:
		return json.Unmarshal([]byte(v), u)
	default:
		return fmt.Errorf("cannot scan %T into URLList", value)
	}
}

// Product represents a product in the catalog.
type Product struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"type:varchar(100);not null"`
	Description   string    `json:"description" gorm:"type:varchar(1000)"`
	Price         float64   `json:"price" gorm:"not null"`
	Category      string    `json:"category,omitempty" gorm:"type:varchar(50)"`
	Multimedia    URLList   `json:"multimedia" gorm:"type:text"`
	StockQuantity int       `json:"stock_quantity" gorm:"default:0"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BeforeSave normalizes optional fields and enforces the table constraints on
// every insert and update, regardless of which path produced the entity.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	if p.Multimedia == nil {
		p.Multimedia = URLList{}
	}

	if strings.TrimSpace(p.Name) == "" {
		return &FieldError{Field: "name", Reason: "must not be empty"}
	}
	if len(p.Name) > NameMaxLen {
		return &FieldError{Field: "name", Reason: fmt.Sprintf("must be at most %d characters", NameMaxLen)}
	}
	if p.Price <= 0 {
		return &FieldError{Field: "price", Reason: "must be positive"}
	}
	if p.Price >= PriceMax {
		return &FieldError{Field: "price", Reason: fmt.Sprintf("must be less than %d", PriceMax)}
	}
	if p.Category != "" && len(p.Category) > CategoryMaxLen {
		return &FieldError{Field: "category", Reason: fmt.Sprintf("must be at most %d characters", CategoryMaxLen)}
	}
	if len(p.Multimedia) > MultimediaMaxURLs {
		return &FieldError{Field: "multimedia", Reason: fmt.Sprintf("must contain at most %d URLs", MultimediaMaxURLs)}
	}
	for i, url := range p.Multimedia {
		if len(url) > MultimediaURLMaxLen {
			return &FieldError{Field: "multimedia", Reason: fmt.Sprintf("URL at index %d exceeds %d characters", i, MultimediaURLMaxLen)}
		}
	}
	if p.StockQuantity < 0 {
		return &FieldError{Field: "stock_quantity", Reason: "must not be negative"}
	}
	if p.StockQuantity > StockQuantityMax {
		return &FieldError{Field: "stock_quantity", Reason: fmt.Sprintf("must be at most %d", StockQuantityMax)}
	}
	return nil
}
