package service

import "errors"

var (
	ErrEmptyCart      = errors.New("cart is empty")
	ErrMissingOrderID = errors.New("order id is required")
)

// ValidationError is a client fault found before any call to PayPal.
type ValidationError struct {
	Code string
	Err  error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
