package domain

import "time"

// Cart is a root entity created and destroyed independently of products.
type Cart struct {
	ID        int64     `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CartProduct links one cart to one product with a quantity. A row must
// never outlive the product or cart it references; the removal flows purge
// associations before deleting either root.
type CartProduct struct {
	ID        int64 `json:"id" db:"id"`
	CartID    int64 `json:"cart_id" db:"cart_id"`
	ProductID int64 `json:"product_id" db:"product_id"`
	Quantity  int   `json:"quantity" db:"quantity"`
}
