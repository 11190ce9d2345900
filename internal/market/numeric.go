package market

import (
	"fmt"
	"strconv"
	"strings"

	"marketsnap/internal/domain"
)

// ParseDecimal converts a provider-supplied decimal string to a float64.
func ParseDecimal(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidNumericInput, s)
	}
	return v, nil
}

// ParseDecimalPrec parses like ParseDecimal and rounds the result to prec
// significant digits. prec <= 0 means no rounding.
func ParseDecimalPrec(s string, prec int) (float64, error) {
	v, err := ParseDecimal(s)
	if err != nil || prec <= 0 {
		return v, err
	}
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', prec, 64), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidNumericInput, s)
	}
	return rounded, nil
}
