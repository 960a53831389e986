package repositories_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"catalog/internal/models"
	"catalog/internal/repositories"
)

// newTestRepo opens a fresh in-memory SQLite database, named after the test
// so parallel tests never share state.
func newTestRepo(t *testing.T) *repositories.GORMProductRepository {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return repositories.NewGORMProductRepository(db)
}

func seedProduct(t *testing.T, repo *repositories.GORMProductRepository) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:          "Widget",
		Description:   "A perfectly ordinary widget",
		Price:         9.99,
		Category:      "Tools",
		StockQuantity: 10,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return product
}

func TestGORMProductRepository_CreateAssignsIDAndTimestamps(t *testing.T) {
	repo := newTestRepo(t)

	product := seedProduct(t, repo)
	assert.Greater(t, product.ID, uint(0))
	assert.False(t, product.CreatedAt.IsZero())
	assert.False(t, product.UpdatedAt.IsZero())

	fetched, err := repo.GetByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Widget", fetched.Name)
	assert.Equal(t, 9.99, fetched.Price)
	// A nil multimedia list is stored and read back as an empty one.
	assert.NotNil(t, fetched.Multimedia)
	assert.Empty(t, fetched.Multimedia)
}

func TestGORMProductRepository_CreateRequiresNameAndPrice(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.Create(&models.Product{Name: "", Price: 9.99, Description: "missing its name"})
	assert.ErrorIs(t, err, repositories.ErrMissingRequired)

	err = repo.Create(&models.Product{Name: "Widget", Description: "missing its price"})
	assert.ErrorIs(t, err, repositories.ErrMissingRequired)
}

func TestGORMProductRepository_CreateRejectsConstraintViolations(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.Create(&models.Product{
		Name:          "Widget",
		Description:   "A perfectly ordinary widget",
		Price:         9.99,
		StockQuantity: -1,
	})
	assert.Error(t, err)

	var fieldErr *models.FieldError
	if assert.True(t, errors.As(err, &fieldErr)) {
		assert.Equal(t, "stock_quantity", fieldErr.Field)
	}
}

func TestGORMProductRepository_GetByIDNotFound(t *testing.T) {
	repo := newTestRepo(t)

	product, err := repo.GetByID(999999)
	assert.Nil(t, product)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
}

func TestGORMProductRepository_GetAll(t *testing.T) {
	repo := newTestRepo(t)
	seedProduct(t, repo)
	seedProduct(t, repo)

	products, err := repo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestGORMProductRepository_UpdateAppliesOnlySuppliedFields(t *testing.T) {
	repo := newTestRepo(t)
	product := seedProduct(t, repo)

	time.Sleep(10 * time.Millisecond)

	updated, err := repo.Update(product.ID, map[string]interface{}{
		"stock_quantity": 5,
	})
	assert.NoError(t, err)
	assert.Equal(t, 5, updated.StockQuantity)
	assert.Equal(t, product.Name, updated.Name)
	assert.Equal(t, product.Description, updated.Description)
	assert.Equal(t, product.Price, updated.Price)
	assert.True(t, updated.UpdatedAt.After(product.CreatedAt))
}

func TestGORMProductRepository_UpdateMultimedia(t *testing.T) {
	repo := newTestRepo(t)
	product := seedProduct(t, repo)

	urls := models.URLList{"http://example.com/1.jpg", "http://example.com/2.jpg"}
	updated, err := repo.Update(product.ID, map[string]interface{}{
		"multimedia": urls,
	})
	assert.NoError(t, err)
	assert.Equal(t, urls, updated.Multimedia)

	fetched, err := repo.GetByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, urls, fetched.Multimedia)
}

func TestGORMProductRepository_UpdateEmptyFields(t *testing.T) {
	repo := newTestRepo(t)
	product := seedProduct(t, repo)

	updated, err := repo.Update(product.ID, map[string]interface{}{})
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, repositories.ErrEmptyUpdate)
}

func TestGORMProductRepository_UpdateNotFound(t *testing.T) {
	repo := newTestRepo(t)

	updated, err := repo.Update(999999, map[string]interface{}{"name": "Ghost"})
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
}

func TestGORMProductRepository_UpdateRejectsConstraintViolations(t *testing.T) {
	repo := newTestRepo(t)
	product := seedProduct(t, repo)

	_, err := repo.Update(product.ID, map[string]interface{}{"price": -1.0})
	assert.Error(t, err)

	var fieldErr *models.FieldError
	if assert.True(t, errors.As(err, &fieldErr)) {
		assert.Equal(t, "price", fieldErr.Field)
	}

	// The stored row is untouched after the rejected update.
	fetched, err := repo.GetByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, 9.99, fetched.Price)
}

func TestGORMProductRepository_DeleteIsIdempotentlySignalled(t *testing.T) {
	repo := newTestRepo(t)
	product := seedProduct(t, repo)

	assert.NoError(t, repo.Delete(product.ID))

	_, err := repo.GetByID(product.ID)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)

	// Deleting again reports the row as gone.
	assert.ErrorIs(t, repo.Delete(product.ID), repositories.ErrProductNotFound)
}
