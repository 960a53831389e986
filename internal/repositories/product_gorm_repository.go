package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"catalog/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository over the
// products table. Every mutation commits immediately.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products, in storage-default order.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *GORMProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// Create persists a new product. The ID and timestamps are assigned by the
// database; the model's BeforeSave hook enforces the field constraints.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.Name == "" || product.Price == 0 {
		return ErrMissingRequired
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update applies only the supplied fields onto the stored product and
// persists it, refreshing updated_at. Unknown keys are ignored.
func (r *GORMProductRepository) Update(id uint, fields map[string]interface{}) (*models.Product, error) {
	if len(fields) == 0 {
		return nil, ErrEmptyUpdate
	}

	product, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	applyProductFields(product, fields)

	if err := r.db.Save(product).Error; err != nil {
		return nil, fmt.Errorf("failed to update product %d: %w", id, err)
	}
	return product, nil
}

// Delete removes a product by its ID. Hard delete, no tombstone.
func (r *GORMProductRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Product{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func applyProductFields(product *models.Product, fields map[string]interface{}) {
	if v, ok := fields["name"].(string); ok {
		product.Name = v
	}
	if v, ok := fields["description"].(string); ok {
		product.Description = v
	}
	if v, ok := fields["price"].(float64); ok {
		product.Price = v
	}
	if v, ok := fields["category"].(string); ok {
		product.Category = v
	}
	if v, ok := fields["multimedia"].(models.URLList); ok {
		product.Multimedia = v
	}
	if v, ok := fields["stock_quantity"].(int); ok {
		product.StockQuantity = v
	}
}
