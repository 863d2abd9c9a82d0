package transport

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"shopcart/internal/domain"
	"shopcart/internal/repository"
	"shopcart/internal/service"
	"shopcart/internal/validation"
)

// Mock services for handler tests

type mockProductService struct {
	products    map[int64]*domain.Product
	nextID      int64
	createCalls int
}

func newMockProductService() *mockProductService {
	return &mockProductService{products: make(map[int64]*domain.Product)}
}

func (m *mockProductService) Create(ctx context.Context, candidate validation.ProductCandidate, imageURL string) (*domain.Product, error) {
	m.createCalls++
	m.nextID++
	now := time.Now()
	product := &domain.Product{
		ID:          m.nextID,
		Name:        candidate.Name,
		Description: candidate.Description,
		Price:       candidate.Price,
		ImageURL:    imageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.products[product.ID] = product
	return product, nil
}

func (m *mockProductService) Find(ctx context.Context) ([]*domain.Product, error) {
	all := []*domain.Product{}
	for _, p := range m.products {
		all = append(all, p)
	}
	return all, nil
}

func (m *mockProductService) FindOne(ctx context.Context, id int64) (*domain.Product, error) {
	product, exists := m.products[id]
	if !exists {
		return nil, repository.ErrProductNotFound
	}
	return product, nil
}

func (m *mockProductService) Update(ctx context.Context, id int64, candidate validation.ProductCandidate, imageURL string) (*domain.Product, error) {
	existing, exists := m.products[id]
	if !exists {
		return nil, repository.ErrProductNotFound
	}
	updated := &domain.Product{
		ID:          id,
		Name:        candidate.Name,
		Description: candidate.Description,
		Price:       candidate.Price,
		ImageURL:    imageURL,
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   time.Now(),
	}
	m.products[id] = updated
	return updated, nil
}

func (m *mockProductService) Delete(ctx context.Context, id int64) error {
	if _, exists := m.products[id]; !exists {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

// mockAssetStore accepts every upload under a fixed name, or rejects all of
// them with err.
type mockAssetStore struct {
	err       error
	saveCalls int
}

func (m *mockAssetStore) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	m.saveCalls++
	if m.err != nil {
		return "", m.err
	}
	return "stored" + strings.ToLower(filepath.Ext(originalName)), nil
}

func (m *mockAssetStore) URL(name string) string {
	return "http://localhost:8080/uploads/" + name
}

type mockCartService struct {
	carts  map[int64]*domain.Cart
	nextID int64
}

func newMockCartService() *mockCartService {
	return &mockCartService{carts: make(map[int64]*domain.Cart)}
}

func (m *mockCartService) Create(ctx context.Context) (*domain.Cart, error) {
	m.nextID++
	cart := &domain.Cart{ID: m.nextID, CreatedAt: time.Now()}
	m.carts[cart.ID] = cart
	return cart, nil
}

func (m *mockCartService) Find(ctx context.Context) ([]*domain.Cart, error) {
	all := []*domain.Cart{}
	for _, c := range m.carts {
		all = append(all, c)
	}
	return all, nil
}

func (m *mockCartService) FindOne(ctx context.Context, id int64) (*domain.Cart, error) {
	cart, exists := m.carts[id]
	if !exists {
		return nil, repository.ErrCartNotFound
	}
	return cart, nil
}

func (m *mockCartService) Delete(ctx context.Context, id int64) error {
	if _, exists := m.carts[id]; !exists {
		return repository.ErrCartNotFound
	}
	delete(m.carts, id)
	return nil
}

type mockCartProductService struct {
	carts    *mockCartService
	products *mockProductService
	items    map[int64]*domain.CartProduct
	nextID   int64
}

func newMockCartProductService(carts *mockCartService, products *mockProductService) *mockCartProductService {
	return &mockCartProductService{
		carts:    carts,
		products: products,
		items:    make(map[int64]*domain.CartProduct),
	}
}

func (m *mockCartProductService) AddProduct(ctx context.Context, cartID, productID int64, quantity int) (*domain.CartProduct, error) {
	if quantity < 1 {
		return nil, service.ErrInvalidQuantity
	}
	if _, err := m.carts.FindOne(ctx, cartID); err != nil {
		return nil, err
	}
	if _, err := m.products.FindOne(ctx, productID); err != nil {
		return nil, err
	}
	m.nextID++
	item := &domain.CartProduct{ID: m.nextID, CartID: cartID, ProductID: productID, Quantity: quantity}
	m.items[item.ID] = item
	return item, nil
}

func (m *mockCartProductService) FindAllByCart(ctx context.Context, cartID int64) ([]*domain.CartProduct, error) {
	matches := []*domain.CartProduct{}
	for _, item := range m.items {
		if item.CartID == cartID {
			matches = append(matches, item)
		}
	}
	return matches, nil
}

func (m *mockCartProductService) FindAllByProduct(ctx context.Context, productID int64) ([]*domain.CartProduct, error) {
	matches := []*domain.CartProduct{}
	for _, item := range m.items {
		if item.ProductID == productID {
			matches = append(matches, item)
		}
	}
	return matches, nil
}

func (m *mockCartProductService) Delete(ctx context.Context, id int64) error {
	if _, exists := m.items[id]; !exists {
		return repository.ErrCartProductNotFound
	}
	delete(m.items, id)
	return nil
}
