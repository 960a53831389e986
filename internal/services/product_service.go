package services

import (
	"errors"
	"fmt"
	"log"
	"math"

	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/pkg/validator"
)

// EventPublisher publishes catalog change events to a message broker.
type EventPublisher interface {
	PublishProductEvent(event string, payload map[string]interface{}) error
}

// ProductFilter narrows the product listing. Zero values mean no filtering.
type ProductFilter struct {
	Category string
	MinStock *int
}

// ProductService handles business logic related to products: input
// validation, error normalization and change events.
type ProductService struct {
	repo   repositories.ProductRepository
	events EventPublisher
}

// NewProductService creates a new ProductService. events may be nil when no
// broker is configured.
func NewProductService(repo repositories.ProductRepository, events EventPublisher) *ProductService {
	return &ProductService{
		repo:   repo,
		events: events,
	}
}

// CreateProduct validates the input and persists a new product.
func (s *ProductService) CreateProduct(input *models.ProductCreateInput) (*models.Product, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if err := validatePriceScale(input.Price); err != nil {
		return nil, err
	}

	product := input.ToProduct()
	if err := s.repo.Create(product); err != nil {
		return nil, translateRepoError("create product", err)
	}

	s.publish("product.created", map[string]interface{}{
		"id":   product.ID,
		"name": product.Name,
	})
	return product, nil
}

// GetProductByID retrieves a single product.
func (s *ProductService) GetProductByID(id int) (*models.Product, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	product, err := s.repo.GetByID(uint(id))
	if err != nil {
		return nil, translateRepoError("get product", err)
	}
	return product, nil
}

// GetAllProducts retrieves all products, then applies the filter in memory.
func (s *ProductService) GetAllProducts(filter ProductFilter) ([]models.Product, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.MinStock != nil && p.StockQuantity < *filter.MinStock {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered, nil
}

// UpdateProduct validates the partial input and applies it to an existing
// product. Only supplied fields change.
func (s *ProductService) UpdateProduct(id int, input *models.ProductUpdateInput) (*models.Product, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if input.Price != nil {
		if err := validatePriceScale(*input.Price); err != nil {
			return nil, err
		}
	}

	fields := input.Fields()
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	product, err := s.repo.Update(uint(id), fields)
	if err != nil {
		return nil, translateRepoError("update product", err)
	}

	s.publish("product.updated", map[string]interface{}{
		"id":   product.ID,
		"name": product.Name,
	})
	return product, nil
}

// DeleteProduct removes a product. An invalid id is an input error, not a
// missing row.
func (s *ProductService) DeleteProduct(id int) error {
	if err := validateID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(uint(id)); err != nil {
		return translateRepoError("delete product", err)
	}

	s.publish("product.deleted", map[string]interface{}{
		"id": id,
	})
	return nil
}

func (s *ProductService) publish(event string, payload map[string]interface{}) {
	if s.events == nil {
		return
	}
	// Events are best effort; a broker outage never fails the request.
	if err := s.events.PublishProductEvent(event, payload); err != nil {
		log.Printf("Failed to publish %s event: %v", event, err)
	}
}

func validateID(id int) error {
	if id <= 0 {
		return fmt.Errorf("%w: product ID must be a positive integer", ErrInvalidInput)
	}
	return nil
}

func validateInput(input interface{}) error {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInput, errs[0])
	}
	return nil
}

// validatePriceScale rejects prices with more than two decimal places, which
// the struct tags cannot express.
func validatePriceScale(price float64) error {
	cents := price * 100
	if math.Abs(cents-math.Round(cents)) > 1e-9 {
		return fmt.Errorf("%w: price must have at most 2 decimal places", ErrInvalidInput)
	}
	return nil
}

// translateRepoError maps repository and persistence-hook failures onto the
// two user-visible error kinds, keeping the offending detail in the message.
func translateRepoError(op string, err error) error {
	var fieldErr *models.FieldError
	switch {
	case errors.Is(err, repositories.ErrProductNotFound):
		return fmt.Errorf("%w: product", ErrNotFound)
	case errors.Is(err, repositories.ErrEmptyUpdate),
		errors.Is(err, repositories.ErrMissingRequired):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.As(err, &fieldErr):
		return fmt.Errorf("%w: %v", ErrInvalidInput, fieldErr)
	default:
		return fmt.Errorf("failed to %s: %w", op, err)
	}
}
