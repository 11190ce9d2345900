package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCandle_UnmarshalJSON(t *testing.T) {
	var candles []Candle
	err := json.Unmarshal([]byte(`[[1700000000000,"100","101","99","100.5","1.5"]]`), &candles)

	require.NoError(t, err)
	require.Len(t, candles, 1)
	require.Equal(t, int64(1700000000000), candles[0].OpenTime)
	require.Equal(t, "100", candles[0].Open)
	require.Equal(t, "101", candles[0].High)
	require.Equal(t, "99", candles[0].Low)
	require.Equal(t, "100.5", candles[0].Close)
	require.Equal(t, "1.5", candles[0].Volume)
}

func TestCandle_UnmarshalJSON_NumericFields(t *testing.T) {
	var c Candle
	require.NoError(t, json.Unmarshal([]byte(`[1700000000000,100,101,99,100.5,1.5]`), &c))
	require.Equal(t, "100.5", c.Close)
}

func TestCandle_UnmarshalJSON_WrongArity(t *testing.T) {
	var c Candle
	require.Error(t, json.Unmarshal([]byte(`[1700000000000,"100"]`), &c))
}

func TestCandle_UnmarshalJSON_NotAnArray(t *testing.T) {
	var c Candle
	require.Error(t, json.Unmarshal([]byte(`{"open":"100"}`), &c))
}

func TestCandle_UnmarshalJSON_NonNumericOpenTime(t *testing.T) {
	var c Candle
	require.Error(t, json.Unmarshal([]byte(`["soon","100","101","99","100.5","1.5"]`), &c))
}
