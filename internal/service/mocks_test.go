package service

import (
	"context"

	"shopcart/internal/domain"
	"shopcart/internal/repository"
)

// Mock repositories for testing

type mockProductRepository struct {
	products map[int64]*domain.Product
	nextID   int64
	// createCalls counts writes so tests can assert nothing reached
	// persistence.
	createCalls int
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{products: make(map[int64]*domain.Product)}
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	m.createCalls++
	m.nextID++
	product.ID = m.nextID
	stored := *product
	m.products[product.ID] = &stored
	return nil
}

func (m *mockProductRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	all := []*domain.Product{}
	for _, p := range m.products {
		copied := *p
		all = append(all, &copied)
	}
	return all, nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	p, exists := m.products[id]
	if !exists {
		return nil, repository.ErrProductNotFound
	}
	copied := *p
	return &copied, nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if _, exists := m.products[product.ID]; !exists {
		return repository.ErrProductNotFound
	}
	stored := *product
	m.products[product.ID] = &stored
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id int64) error {
	if _, exists := m.products[id]; !exists {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

type mockCartRepository struct {
	carts  map[int64]*domain.Cart
	nextID int64
}

func newMockCartRepository() *mockCartRepository {
	return &mockCartRepository{carts: make(map[int64]*domain.Cart)}
}

func (m *mockCartRepository) Create(ctx context.Context, cart *domain.Cart) error {
	m.nextID++
	cart.ID = m.nextID
	stored := *cart
	m.carts[cart.ID] = &stored
	return nil
}

func (m *mockCartRepository) FindAll(ctx context.Context) ([]*domain.Cart, error) {
	all := []*domain.Cart{}
	for _, c := range m.carts {
		copied := *c
		all = append(all, &copied)
	}
	return all, nil
}

func (m *mockCartRepository) FindByID(ctx context.Context, id int64) (*domain.Cart, error) {
	c, exists := m.carts[id]
	if !exists {
		return nil, repository.ErrCartNotFound
	}
	copied := *c
	return &copied, nil
}

func (m *mockCartRepository) Delete(ctx context.Context, id int64) error {
	if _, exists := m.carts[id]; !exists {
		return repository.ErrCartNotFound
	}
	delete(m.carts, id)
	return nil
}

type mockCartProductRepository struct {
	items       map[int64]*domain.CartProduct
	nextID      int64
	createCalls int
}

func newMockCartProductRepository() *mockCartProductRepository {
	return &mockCartProductRepository{items: make(map[int64]*domain.CartProduct)}
}

func (m *mockCartProductRepository) Create(ctx context.Context, item *domain.CartProduct) error {
	m.createCalls++
	m.nextID++
	item.ID = m.nextID
	stored := *item
	m.items[item.ID] = &stored
	return nil
}

func (m *mockCartProductRepository) FindByID(ctx context.Context, id int64) (*domain.CartProduct, error) {
	item, exists := m.items[id]
	if !exists {
		return nil, repository.ErrCartProductNotFound
	}
	copied := *item
	return &copied, nil
}

func (m *mockCartProductRepository) FindAllByCart(ctx context.Context, cartID int64) ([]*domain.CartProduct, error) {
	matches := []*domain.CartProduct{}
	for _, item := range m.items {
		if item.CartID == cartID {
			copied := *item
			matches = append(matches, &copied)
		}
	}
	return matches, nil
}

func (m *mockCartProductRepository) FindAllByProduct(ctx context.Context, productID int64) ([]*domain.CartProduct, error) {
	matches := []*domain.CartProduct{}
	for _, item := range m.items {
		if item.ProductID == productID {
			copied := *item
			matches = append(matches, &copied)
		}
	}
	return matches, nil
}

func (m *mockCartProductRepository) Delete(ctx context.Context, id int64) error {
	if _, exists := m.items[id]; !exists {
		return repository.ErrCartProductNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *mockCartProductRepository) DeleteAllByCart(ctx context.Context, cartID int64) error {
	for id, item := range m.items {
		if item.CartID == cartID {
			delete(m.items, id)
		}
	}
	return nil
}
