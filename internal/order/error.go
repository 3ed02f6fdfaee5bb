package order

import "errors"

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrOrderNotFound = errors.New("order not found")

	// ErrStockUnavailable means a line's quantity exceeded the product's
	// stock at the moment of the atomic decrement. The whole checkout
	// transaction is rolled back.
	ErrStockUnavailable = errors.New("insufficient stock")

	// ErrCheckoutFailed wraps any storage failure during the checkout
	// transaction. Nothing is committed when it is returned.
	ErrCheckoutFailed = errors.New("checkout failed")

	ErrInvalidDiscount      = errors.New("discount percent must be between 0 and 100")
	ErrInvalidPaymentMethod = errors.New("unknown payment method")
)
