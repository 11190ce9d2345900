package market

import (
	"testing"

	"marketsnap/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestParseDecimal_Valid(t *testing.T) {
	v, err := ParseDecimal("12.5")
	require.NoError(t, err)
	require.Equal(t, 12.5, v)
}

func TestParseDecimal_Negative(t *testing.T) {
	v, err := ParseDecimal("-0.004")
	require.NoError(t, err)
	require.Equal(t, -0.004, v)
}

func TestParseDecimal_Invalid(t *testing.T) {
	_, err := ParseDecimal("abc")
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrInvalidNumericInput)
}

func TestParseDecimal_Empty(t *testing.T) {
	_, err := ParseDecimal("")
	require.ErrorIs(t, err, domain.ErrInvalidNumericInput)
}

func TestParseDecimalPrec_RoundsToSignificantDigits(t *testing.T) {
	v, err := ParseDecimalPrec("123.456", 4)
	require.NoError(t, err)
	require.Equal(t, 123.5, v)
}

func TestParseDecimalPrec_ZeroPrecisionMeansNoRounding(t *testing.T) {
	v, err := ParseDecimalPrec("123.456", 0)
	require.NoError(t, err)
	require.Equal(t, 123.456, v)
}

func TestParseDecimalPrec_Invalid(t *testing.T) {
	_, err := ParseDecimalPrec("12,5", 3)
	require.ErrorIs(t, err, domain.ErrInvalidNumericInput)
}
