package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")

	// -- Validation & Input --
	ErrNameRequired   = errors.New("product name is required")
	ErrNegativePrice  = errors.New("price must not be negative")
	ErrInvalidTaxRate = errors.New("tax rate must be between 0 and 100")
	ErrNegativeStock  = errors.New("stock must not be negative")
	ErrInvalidRestock = errors.New("restock quantity must be greater than zero")
)
