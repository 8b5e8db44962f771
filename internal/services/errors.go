package services

import "errors"

var (
	ErrUnknown                 = errors.New("[service]: unknown error")
	ErrRecordNotFound          = errors.New("[service]: record not found")
	ErrInvalidShortcode        = errors.New("[service]: invalid shortcode")
	ErrShortcodeTaken          = errors.New("[service]: shortcode already in use")
	ErrExpired                 = errors.New("[service]: link expired")
	ErrCodeAllocationExhausted = errors.New("[service]: shortcode allocation attempts exhausted")
	ErrInvalidValidity         = errors.New("[service]: invalid validity")
)
