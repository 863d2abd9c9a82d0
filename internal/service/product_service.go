package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopcart/internal/domain"
	"shopcart/internal/repository"
	"shopcart/internal/validation"
)

// ProductService defines the interface for product business logic. It has
// no knowledge of carts; the precondition that no cart association still
// references a product being deleted is owned by ProductRemover.
type ProductService interface {
	Create(ctx context.Context, candidate validation.ProductCandidate, imageURL string) (*domain.Product, error)
	Find(ctx context.Context) ([]*domain.Product, error)
	FindOne(ctx context.Context, id int64) (*domain.Product, error)
	Update(ctx context.Context, id int64, candidate validation.ProductCandidate, imageURL string) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

type productService struct {
	products repository.ProductRepository
}

// NewProductService creates a new instance of ProductService
func NewProductService(products repository.ProductRepository) ProductService {
	return &productService{products: products}
}

// Create persists a new product from an already-validated candidate. The
// image reference must already be resolved to a durable URL.
func (s *productService) Create(ctx context.Context, candidate validation.ProductCandidate, imageURL string) (*domain.Product, error) {
	now := time.Now()
	product := &domain.Product{
		Name:        candidate.Name,
		Description: candidate.Description,
		Price:       candidate.Price,
		ImageURL:    imageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// Find returns all products
func (s *productService) Find(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// FindOne looks up a product by id. Absence surfaces as
// repository.ErrProductNotFound.
func (s *productService) FindOne(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return product, nil
}

// Update builds a fresh product value from the validated candidate and the
// resolved image URL, rather than mutating a previously fetched record, and
// persists it. A missing id surfaces as not-found before any mutation.
func (s *productService) Update(ctx context.Context, id int64, candidate validation.ProductCandidate, imageURL string) (*domain.Product, error) {
	existing, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	updated := &domain.Product{
		ID:          existing.ID,
		Name:        candidate.Name,
		Description: candidate.Description,
		Price:       candidate.Price,
		ImageURL:    imageURL,
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   time.Now(),
	}

	if err := s.products.Update(ctx, updated); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return updated, nil
}

// Delete removes the product record. Callers must have purged all cart
// associations referencing the product first.
func (s *productService) Delete(ctx context.Context, id int64) error {
	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}
