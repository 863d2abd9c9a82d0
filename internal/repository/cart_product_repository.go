package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shopcart/internal/domain"
)

var (
	ErrCartProductNotFound = errors.New("cart product not found")
)

// CartProductRepository defines the interface for cart-product association
// data access
type CartProductRepository interface {
	Create(ctx context.Context, item *domain.CartProduct) error
	FindByID(ctx context.Context, id int64) (*domain.CartProduct, error)
	FindAllByCart(ctx context.Context, cartID int64) ([]*domain.CartProduct, error)
	FindAllByProduct(ctx context.Context, productID int64) ([]*domain.CartProduct, error)
	Delete(ctx context.Context, id int64) error
	DeleteAllByCart(ctx context.Context, cartID int64) error
}

type cartProductRepository struct {
	db DBTX
}

// NewCartProductRepository creates a new instance of CartProductRepository
func NewCartProductRepository(db DBTX) CartProductRepository {
	return &cartProductRepository{db: db}
}

// Create inserts a new association and fills in its generated id
func (r *cartProductRepository) Create(ctx context.Context, item *domain.CartProduct) error {
	query := `
		INSERT INTO cart_products (cart_id, product_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query, item.CartID, item.ProductID, item.Quantity).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("failed to create cart product: %w", err)
	}

	return nil
}

// FindByID retrieves an association by ID
func (r *cartProductRepository) FindByID(ctx context.Context, id int64) (*domain.CartProduct, error) {
	query := `
		SELECT id, cart_id, product_id, quantity
		FROM cart_products
		WHERE id = $1
	`

	item := &domain.CartProduct{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.CartID,
		&item.ProductID,
		&item.Quantity,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCartProductNotFound
		}
		return nil, fmt.Errorf("failed to find cart product by ID: %w", err)
	}

	return item, nil
}

// FindAllByCart retrieves every association belonging to a cart
func (r *cartProductRepository) FindAllByCart(ctx context.Context, cartID int64) ([]*domain.CartProduct, error) {
	return r.findAllBy(ctx, "cart_id", cartID)
}

// FindAllByProduct retrieves every association referencing a product,
// across all carts. The product removal coordinator drives the purge step
// off this enumeration.
func (r *cartProductRepository) FindAllByProduct(ctx context.Context, productID int64) ([]*domain.CartProduct, error) {
	return r.findAllBy(ctx, "product_id", productID)
}

func (r *cartProductRepository) findAllBy(ctx context.Context, column string, id int64) ([]*domain.CartProduct, error) {
	query := fmt.Sprintf(`
		SELECT id, cart_id, product_id, quantity
		FROM cart_products
		WHERE %s = $1
		ORDER BY id ASC
	`, column)

	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart products by %s: %w", column, err)
	}
	defer rows.Close()

	items := []*domain.CartProduct{}
	for rows.Next() {
		item := &domain.CartProduct{}
		err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart product: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart products: %w", err)
	}

	return items, nil
}

// Delete removes one association row
func (r *cartProductRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM cart_products WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete cart product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrCartProductNotFound
	}

	return nil
}

// DeleteAllByCart removes every association belonging to a cart. Used when
// the cart itself is being destroyed.
func (r *cartProductRepository) DeleteAllByCart(ctx context.Context, cartID int64) error {
	query := `DELETE FROM cart_products WHERE cart_id = $1`

	if _, err := r.db.ExecContext(ctx, query, cartID); err != nil {
		return fmt.Errorf("failed to delete cart products by cart: %w", err)
	}

	return nil
}
