package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shopcart/internal/domain"
	"shopcart/internal/repository"
)

// ProductRemover coordinates the deletion-consistency protocol between the
// product side and the cart-product side: every association referencing the
// product is purged before the product row itself is removed. Keeping this
// in its own component avoids a circular dependency between ProductService
// and CartProductService.
//
// The whole protocol runs inside a single transaction, so either every
// association and the product are gone, or nothing is. This also closes the
// race where an add-to-cart write lands between the enumeration and the
// final product removal.
type ProductRemover struct {
	db *sql.DB
}

// NewProductRemover creates a new ProductRemover
func NewProductRemover(db *sql.DB) *ProductRemover {
	return &ProductRemover{db: db}
}

// Remove deletes the product with the given id after purging all cart
// associations that reference it, and returns the product's prior state.
// A missing product surfaces as repository.ErrProductNotFound with nothing
// touched.
func (r *ProductRemover) Remove(ctx context.Context, id int64) (*domain.Product, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	products := repository.NewProductRepository(tx)
	items := repository.NewCartProductRepository(tx)

	product, err := products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	// If the enumeration fails the product is left untouched.
	associations, err := items.FindAllByProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	// Order among associations is irrelevant, but every deletion must
	// succeed before the product row may go.
	for _, association := range associations {
		if err := items.Delete(ctx, association.ID); err != nil {
			return nil, fmt.Errorf("failed to purge association %d: %w", association.ID, err)
		}
	}

	if err := products.Delete(ctx, id); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit product removal: %w", err)
	}

	return product, nil
}
