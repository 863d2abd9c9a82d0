package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shopcart/internal/domain"
	"shopcart/internal/repository"
)

// CartService defines the interface for cart lifecycle logic.
type CartService interface {
	Create(ctx context.Context) (*domain.Cart, error)
	Find(ctx context.Context) ([]*domain.Cart, error)
	FindOne(ctx context.Context, id int64) (*domain.Cart, error)
	Delete(ctx context.Context, id int64) error
}

type cartService struct {
	db    *sql.DB
	carts repository.CartRepository
}

// NewCartService creates a new instance of CartService. The raw handle is
// needed because cart deletion purges the cart's associations and the cart
// row in one transaction.
func NewCartService(db *sql.DB, carts repository.CartRepository) CartService {
	return &cartService{db: db, carts: carts}
}

// Create persists a new empty cart
func (s *cartService) Create(ctx context.Context) (*domain.Cart, error) {
	cart := &domain.Cart{CreatedAt: time.Now()}
	if err := s.carts.Create(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}
	return cart, nil
}

// Find returns all carts
func (s *cartService) Find(ctx context.Context) ([]*domain.Cart, error) {
	carts, err := s.carts.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list carts: %w", err)
	}
	return carts, nil
}

// FindOne looks up a cart by id. Absence surfaces as
// repository.ErrCartNotFound.
func (s *cartService) FindOne(ctx context.Context, id int64) (*domain.Cart, error) {
	cart, err := s.carts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find cart: %w", err)
	}
	return cart, nil
}

// Delete destroys a cart together with its associations. An association
// must never outlive the cart it references, so both deletes run in one
// transaction.
func (s *cartService) Delete(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	carts := repository.NewCartRepository(tx)
	items := repository.NewCartProductRepository(tx)

	if _, err := carts.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return err
		}
		return fmt.Errorf("failed to find cart: %w", err)
	}

	if err := items.DeleteAllByCart(ctx, id); err != nil {
		return err
	}

	if err := carts.Delete(ctx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cart deletion: %w", err)
	}

	return nil
}
