package repositories

import (
	"errors"

	"catalog/internal/models"
)

// Sentinel errors returned by repositories. An absent row is an explicit
// signal, never a fabricated entity.
var (
	ErrProductNotFound = errors.New("product not found")
	ErrEmptyUpdate     = errors.New("no fields to update")
	ErrMissingRequired = errors.New("product name and price are required")
	ErrUserNotFound    = errors.New("user not found")
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	Create(product *models.Product) error
	GetAll() ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	Update(id uint, fields map[string]interface{}) (*models.Product, error)
	Delete(id uint) error
}
