package cart

import "errors"

var (
	ErrLineNotFound    = errors.New("cart line not found")
	ErrInvalidQuantity = errors.New("invalid cart quantity")
)
