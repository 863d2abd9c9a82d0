package validation

import "github.com/go-playground/validator/v10"

// ProductCandidate is the field set checked before a product is allowed to
// touch persistence.
type ProductCandidate struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
}

// ProductValidator performs the structural checks gating every product
// write. It is pure: no I/O, no persistence.
type ProductValidator struct {
	validate *validator.Validate
}

// NewProductValidator creates a new ProductValidator
func NewProductValidator() *ProductValidator {
	return &ProductValidator{validate: validator.New()}
}

// Validate reports whether the candidate fields and image reference are fit
// for persistence. Invalidity is a normal boolean outcome, not an error;
// the caller decides the user-facing failure.
func (v *ProductValidator) Validate(candidate ProductCandidate, imageURL string) bool {
	if imageURL == "" {
		return false
	}
	return v.validate.Struct(candidate) == nil
}
