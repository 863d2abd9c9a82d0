package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"shopcart/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestProperty_ProductCreationPreservesAttributes(t *testing.T) {
	resetTables(t)

	repo := NewProductRepository(testDB)
	ctx := context.Background()

	properties := gopter.NewProperties(nil)

	properties.Property("creating and retrieving a product preserves all attributes", prop.ForAll(
		func(name string, description string, price float64) bool {
			now := time.Now().UTC().Truncate(time.Microsecond)
			product := &domain.Product{
				Name:        name,
				Description: description,
				Price:       price,
				ImageURL:    "http://localhost:8080/uploads/test.png",
				CreatedAt:   now,
				UpdatedAt:   now,
			}

			if err := repo.Create(ctx, product); err != nil {
				t.Logf("FAIL: Failed to create product: %v", err)
				return false
			}

			if product.ID == 0 {
				t.Log("FAIL: Create did not fill in the generated id")
				return false
			}

			retrieved, err := repo.FindByID(ctx, product.ID)
			if err != nil {
				t.Logf("FAIL: Failed to retrieve product: %v", err)
				return false
			}

			if retrieved.Name != product.Name {
				t.Logf("FAIL: Name mismatch. Expected %s, got %s", product.Name, retrieved.Name)
				return false
			}

			if retrieved.Description != product.Description {
				t.Logf("FAIL: Description mismatch. Expected %s, got %s", product.Description, retrieved.Description)
				return false
			}

			// Compare prices with small tolerance, the column is NUMERIC(10,2)
			if retrieved.Price < product.Price-0.01 || retrieved.Price > product.Price+0.01 {
				t.Logf("FAIL: Price mismatch. Expected %f, got %f", product.Price, retrieved.Price)
				return false
			}

			if retrieved.ImageURL != product.ImageURL {
				t.Logf("FAIL: ImageURL mismatch. Expected %s, got %s", product.ImageURL, retrieved.ImageURL)
				return false
			}

			return true
		},
		gen.AlphaString().SuchThat(func(s string) bool { return len(s) > 0 && len(s) <= 255 }),
		gen.AlphaString().SuchThat(func(s string) bool { return len(s) > 0 }),
		gen.Float64Range(0.01, 99999.99),
	))

	properties.TestingRun(t)
}

func TestFindByIDAbsent(t *testing.T) {
	resetTables(t)

	repo := NewProductRepository(testDB)

	_, err := repo.FindByID(context.Background(), 424242)
	if !errors.Is(err, ErrProductNotFound) {
		t.Errorf("FindByID() error = %v, want ErrProductNotFound", err)
	}
}

func TestFindAll(t *testing.T) {
	resetTables(t)

	repo := NewProductRepository(testDB)
	ctx := context.Background()

	products, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll() error: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("expected empty catalog, got %d products", len(products))
	}

	for i := 0; i < 3; i++ {
		if err := repo.Create(ctx, testProduct("Product")); err != nil {
			t.Fatalf("Create() error: %v", err)
		}
	}

	products, err = repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll() error: %v", err)
	}
	if len(products) != 3 {
		t.Errorf("expected 3 products, got %d", len(products))
	}
}

func TestUpdate(t *testing.T) {
	resetTables(t)

	repo := NewProductRepository(testDB)
	ctx := context.Background()

	product := testProduct("Widget")
	if err := repo.Create(ctx, product); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	updated := &domain.Product{
		ID:          product.ID,
		Name:        "Widget v2",
		Description: "An improved widget",
		Price:       12.50,
		ImageURL:    "http://localhost:8080/uploads/new.png",
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   time.Now().UTC(),
	}
	if err := repo.Update(ctx, updated); err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	retrieved, err := repo.FindByID(ctx, product.ID)
	if err != nil {
		t.Fatalf("FindByID() error: %v", err)
	}
	if retrieved.Name != "Widget v2" || retrieved.ImageURL != "http://localhost:8080/uploads/new.png" {
		t.Errorf("update not persisted, got %+v", retrieved)
	}
}

func TestUpdateNotFound(t *testing.T) {
	resetTables(t)

	repo := NewProductRepository(testDB)

	missing := testProduct("Ghost")
	missing.ID = 424242

	err := repo.Update(context.Background(), missing)
	if !errors.Is(err, ErrProductNotFound) {
		t.Errorf("Update() error = %v, want ErrProductNotFound", err)
	}
}

func TestDeleteNotFound(t *testing.T) {
	resetTables(t)

	repo := NewProductRepository(testDB)

	err := repo.Delete(context.Background(), 424242)
	if !errors.Is(err, ErrProductNotFound) {
		t.Errorf("Delete() error = %v, want ErrProductNotFound", err)
	}
}

func testProduct(name string) *domain.Product {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Product{
		Name:        name,
		Description: "A " + name,
		Price:       9.99,
		ImageURL:    "http://localhost:8080/uploads/test.png",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
