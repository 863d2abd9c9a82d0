package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shopcart/internal/domain"
)

var (
	ErrCartNotFound = errors.New("cart not found")
)

// CartRepository defines the interface for cart data access
type CartRepository interface {
	Create(ctx context.Context, cart *domain.Cart) error
	FindAll(ctx context.Context) ([]*domain.Cart, error)
	FindByID(ctx context.Context, id int64) (*domain.Cart, error)
	Delete(ctx context.Context, id int64) error
}

type cartRepository struct {
	db DBTX
}

// NewCartRepository creates a new instance of CartRepository
func NewCartRepository(db DBTX) CartRepository {
	return &cartRepository{db: db}
}

// Create inserts a new cart and fills in its generated id
func (r *cartRepository) Create(ctx context.Context, cart *domain.Cart) error {
	query := `
		INSERT INTO carts (created_at)
		VALUES ($1)
		RETURNING id
	`

	if err := r.db.QueryRowContext(ctx, query, cart.CreatedAt).Scan(&cart.ID); err != nil {
		return fmt.Errorf("failed to create cart: %w", err)
	}

	return nil
}

// FindAll retrieves all carts ordered by id
func (r *cartRepository) FindAll(ctx context.Context) ([]*domain.Cart, error) {
	query := `
		SELECT id, created_at
		FROM carts
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list carts: %w", err)
	}
	defer rows.Close()

	carts := []*domain.Cart{}
	for rows.Next() {
		cart := &domain.Cart{}
		if err := rows.Scan(&cart.ID, &cart.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cart: %w", err)
		}
		carts = append(carts, cart)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating carts: %w", err)
	}

	return carts, nil
}

// FindByID retrieves a cart by ID. Absence is reported as ErrCartNotFound.
func (r *cartRepository) FindByID(ctx context.Context, id int64) (*domain.Cart, error) {
	query := `
		SELECT id, created_at
		FROM carts
		WHERE id = $1
	`

	cart := &domain.Cart{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&cart.ID, &cart.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to find cart by ID: %w", err)
	}

	return cart, nil
}

// Delete removes a cart row
func (r *cartRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM carts WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrCartNotFound
	}

	return nil
}
