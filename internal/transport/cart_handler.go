package transport

import (
	"errors"
	"net/http"
	"strconv"

	"shopcart/internal/domain"
	"shopcart/internal/middleware"
	"shopcart/internal/repository"
	"shopcart/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AddCartItemRequest represents the add-to-cart request payload
type AddCartItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

// CartResponse bundles a cart with its associations
type CartResponse struct {
	Cart  *domain.Cart          `json:"cart"`
	Items []*domain.CartProduct `json:"items"`
}

// CartHandler handles HTTP requests for cart operations
type CartHandler struct {
	carts  service.CartService
	items  service.CartProductService
	logger *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(carts service.CartService, items service.CartProductService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		carts:  carts,
		items:  items,
		logger: logger,
	}
}

// RegisterRoutes registers all cart routes
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/carts", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Delete("/{id}", h.Delete)

		r.Post("/{id}/items", h.AddItem)
		r.Get("/{id}/items", h.ListItems)
		r.Delete("/{id}/items/{itemID}", h.RemoveItem)
	})
}

// Create handles cart creation
func (h *CartHandler) Create(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.Create(r.Context())
	if err != nil {
		h.logger.Error("Failed to create cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create cart")
		return
	}

	h.logger.Info("Cart created", zap.Int64("cart_id", cart.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, cart)
}

// List handles listing all carts
func (h *CartHandler) List(w http.ResponseWriter, r *http.Request) {
	carts, err := h.carts.Find(r.Context())
	if err != nil {
		h.logger.Error("Failed to list carts", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list carts")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, carts)
}

// Get handles cart lookup, returning the cart together with its items
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	cart, err := h.carts.FindOne(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "cart doesn't exist")
			return
		}
		h.logger.Error("Failed to find cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to find cart")
		return
	}

	items, err := h.items.FindAllByCart(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to list cart items", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list cart items")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, CartResponse{Cart: cart, Items: items})
}

// Delete handles cart deletion, purging the cart's associations with it
func (h *CartHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.carts.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "cart doesn't exist")
			return
		}
		h.logger.Error("Failed to delete cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete cart")
		return
	}

	h.logger.Info("Cart deleted", zap.Int64("cart_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// AddItem handles attaching a product to a cart with a quantity
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req AddCartItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Add item validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.items.AddProduct(r.Context(), id, req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrCartNotFound):
			middleware.RespondWithError(w, http.StatusNotFound, "cart doesn't exist")
		case errors.Is(err, repository.ErrProductNotFound):
			middleware.RespondWithError(w, http.StatusNotFound, "product doesn't exist")
		case errors.Is(err, service.ErrInvalidQuantity):
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("Failed to add product to cart", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add product to cart")
		}
		return
	}

	h.logger.Info("Product added to cart",
		zap.Int64("cart_id", id),
		zap.Int64("product_id", req.ProductID),
		zap.Int("quantity", req.Quantity),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, item)
}

// ListItems handles listing a cart's associations
func (h *CartHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	items, err := h.items.FindAllByCart(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to list cart items", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list cart items")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, items)
}

// RemoveItem handles deleting one association row
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "item id must be an integer")
		return
	}

	if err := h.items.Delete(r.Context(), itemID); err != nil {
		if errors.Is(err, repository.ErrCartProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "cart item doesn't exist")
			return
		}
		h.logger.Error("Failed to remove cart item", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to remove cart item")
		return
	}

	h.logger.Info("Cart item removed", zap.Int64("item_id", itemID))
	w.WriteHeader(http.StatusNoContent)
}
