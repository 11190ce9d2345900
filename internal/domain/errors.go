package domain

import "errors"

var (
	ErrInvalidNumericInput    = errors.New("value is not a valid number")
	ErrRequestTimeout         = errors.New("request timed out")
	ErrUpstream               = errors.New("upstream returned non-success status")
	ErrMissingRateLimitHeader = errors.New("rate limit header missing or malformed")
	ErrEmptyBookSide          = errors.New("order book side is empty")
	ErrMarketNotFound         = errors.New("market not found")
)
