package transport

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"shopcart/internal/assets"
	"shopcart/internal/middleware"
	"shopcart/internal/repository"
	"shopcart/internal/service"
	"shopcart/internal/validation"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxMultipartMemory bounds how much of a multipart body is held in memory
// while parsing; larger parts spill to temporary files.
const maxMultipartMemory = 8 << 20

// ProductHandler handles HTTP requests for product operations
type ProductHandler struct {
	products  service.ProductService
	remover   *service.ProductRemover
	store     assets.Store
	validator *validation.ProductValidator
	logger    *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(
	products service.ProductService,
	remover *service.ProductRemover,
	store assets.Store,
	validator *validation.ProductValidator,
	logger *zap.Logger,
) *ProductHandler {
	return &ProductHandler{
		products:  products,
		remover:   remover,
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// Create handles product creation from a multipart form carrying the
// catalog fields and the image file.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		h.logger.Debug("Invalid multipart form", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	// The asset is stored and its URL composed before validation runs,
	// because the image reference is part of what gets validated.
	imageURL, ok := h.storeImage(w, r, header.Filename, file)
	if !ok {
		return
	}

	candidate := h.candidateFromForm(r)
	if !h.validator.Validate(candidate, imageURL) {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product fields")
		return
	}

	product, err := h.products.Create(r.Context(), candidate, imageURL)
	if err != nil {
		h.logger.Error("Failed to create product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	h.logger.Info("Product created", zap.Int64("product_id", product.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// List handles listing all products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.Find(r.Context())
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// Get handles product lookup by id
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	product, err := h.products.FindOne(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product doesn't exist")
			return
		}
		h.logger.Error("Failed to find product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to find product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Update handles product updates. The image file is optional: without a new
// upload the previously stored URL is reused unchanged.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	existing, err := h.products.FindOne(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product doesn't exist")
			return
		}
		h.logger.Error("Failed to find product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to find product")
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		h.logger.Debug("Invalid multipart form", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	imageURL := existing.ImageURL
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		imageURL, ok = h.storeImage(w, r, header.Filename, file)
		if !ok {
			return
		}
	} else if !errors.Is(err, http.ErrMissingFile) {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid image file")
		return
	}

	candidate := h.candidateFromForm(r)
	if !h.validator.Validate(candidate, imageURL) {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product fields")
		return
	}

	product, err := h.products.Update(r.Context(), id, candidate, imageURL)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product doesn't exist")
			return
		}
		h.logger.Error("Failed to update product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update product")
		return
	}

	h.logger.Info("Product updated", zap.Int64("product_id", product.ID))
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Delete handles product deletion through the removal coordinator, which
// purges all cart associations before removing the product itself.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	product, err := h.remover.Remove(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product doesn't exist")
			return
		}
		h.logger.Error("Failed to remove product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}

	h.logger.Info("Product deleted", zap.Int64("product_id", id))
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// storeImage persists the upload and returns its resolvable URL, writing
// the HTTP error itself when the file is rejected.
func (h *ProductHandler) storeImage(w http.ResponseWriter, r *http.Request, filename string, file io.Reader) (string, bool) {
	name, err := h.store.Save(r.Context(), filename, file)
	if err != nil {
		if errors.Is(err, assets.ErrUnsupportedType) || errors.Is(err, assets.ErrTooLarge) {
			middleware.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
			return "", false
		}
		h.logger.Error("Failed to store image", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to store image")
		return "", false
	}

	return h.store.URL(name), true
}

// candidateFromForm collects the catalog fields from the parsed form. A
// malformed price is left zero and rejected by the validator.
func (h *ProductHandler) candidateFromForm(r *http.Request) validation.ProductCandidate {
	price, _ := strconv.ParseFloat(r.FormValue("price"), 64)

	return validation.ProductCandidate{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Price:       price,
	}
}

// parseID extracts the integer id path parameter, answering 400 on garbage.
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "id must be an integer")
		return 0, false
	}
	return id, true
}
