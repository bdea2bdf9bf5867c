package aggregator

import "errors"

var (
	ErrInvalidQuantity = errors.New("quantity must be >= 1")
	ErrItemNotFound    = errors.New("line item not found")
	ErrInvalidItem     = errors.New("invalid line item")
)
