package market

import (
	"errors"
	"regexp"
	"slices"
)

var (
	ErrFieldsRequired = errors.New("fields query parameter is required")
	ErrTooManyFields  = errors.New("can only fetch up to three fields")
	ErrUnknownField   = errors.New("unknown field requested")
	ErrPairRequired   = errors.New("market pair is required")
	ErrBadPairFormat  = errors.New("market pair must look like BASE-QUOTE")
)

const maxProjectionFields = 3

var pairPattern = regexp.MustCompile(`^[A-Z0-9]+-[A-Z0-9]+$`)

// projectableFields is the set of names the fields= query may pick.
var projectableFields = []string{
	"status", "base", "quote", "pricePrecision",
	"minOrderInBaseAsset", "minOrderInQuoteAsset",
	"maxOrderInBaseAsset", "maxOrderInQuoteAsset",
	"orderTypes", "updatedAt",
	"bestBid", "bestAsk", "price", "spread",
	"bidDepth", "askDepth", "volume",
}

type QueryValidator struct {
	allowed map[string]struct{}
}

func NewValidator() *QueryValidator {
	allowed := make(map[string]struct{}, len(projectableFields))
	for _, f := range projectableFields {
		allowed[f] = struct{}{}
	}
	return &QueryValidator{allowed: allowed}
}

func (v *QueryValidator) ValidateFields(fields []string) error {
	if len(fields) == 0 {
		return ErrFieldsRequired
	}
	if len(fields) > maxProjectionFields {
		return ErrTooManyFields
	}
	for _, f := range fields {
		if f == "" {
			return ErrFieldsRequired
		}
		if _, ok := v.allowed[f]; !ok {
			return ErrUnknownField
		}
	}
	return nil
}

func (v *QueryValidator) ValidatePair(pair string) error {
	if pair == "" {
		return ErrPairRequired
	}
	if !pairPattern.MatchString(pair) {
		return ErrBadPairFormat
	}
	return nil
}

func (v *QueryValidator) ProjectableFields() []string {
	return slices.Clone(projectableFields)
}
