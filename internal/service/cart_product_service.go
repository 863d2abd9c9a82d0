package service

import (
	"context"
	"errors"
	"fmt"

	"shopcart/internal/domain"
	"shopcart/internal/repository"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
)

// CartProductService defines the interface for cart-product association
// business logic.
type CartProductService interface {
	AddProduct(ctx context.Context, cartID, productID int64, quantity int) (*domain.CartProduct, error)
	FindAllByCart(ctx context.Context, cartID int64) ([]*domain.CartProduct, error)
	FindAllByProduct(ctx context.Context, productID int64) ([]*domain.CartProduct, error)
	Delete(ctx context.Context, id int64) error
}

type cartProductService struct {
	items    repository.CartProductRepository
	carts    repository.CartRepository
	products repository.ProductRepository
}

// NewCartProductService creates a new instance of CartProductService
func NewCartProductService(
	items repository.CartProductRepository,
	carts repository.CartRepository,
	products repository.ProductRepository,
) CartProductService {
	return &cartProductService{
		items:    items,
		carts:    carts,
		products: products,
	}
}

// AddProduct attaches a product to a cart with the given quantity. Both
// roots must exist; their absence surfaces as the repository not-found
// sentinels so the transport layer can answer 404.
func (s *cartProductService) AddProduct(ctx context.Context, cartID, productID int64, quantity int) (*domain.CartProduct, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	if _, err := s.carts.FindByID(ctx, cartID); err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find cart: %w", err)
	}

	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	item := &domain.CartProduct{
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
	}

	if err := s.items.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to add product to cart: %w", err)
	}

	return item, nil
}

// FindAllByCart lists a cart's associations
func (s *cartProductService) FindAllByCart(ctx context.Context, cartID int64) ([]*domain.CartProduct, error) {
	items, err := s.items.FindAllByCart(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	return items, nil
}

// FindAllByProduct lists every association referencing a product across all
// carts.
func (s *cartProductService) FindAllByProduct(ctx context.Context, productID int64) ([]*domain.CartProduct, error) {
	items, err := s.items.FindAllByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list associations by product: %w", err)
	}
	return items, nil
}

// Delete removes one association row
func (s *cartProductService) Delete(ctx context.Context, id int64) error {
	if err := s.items.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCartProductNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete association: %w", err)
	}
	return nil
}
