package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// OrderBook is one market's book as reported by the provider: price and
// amount are decimal strings, bids descending and asks ascending by price.
type OrderBook struct {
	Market string      `json:"market"`
	Nonce  int64       `json:"nonce"`
	Bids   [][2]string `json:"bids"`
	Asks   [][2]string `json:"asks"`
}

// Candle is one OHLCV entry. The provider encodes it as a JSON array
// [openTime, open, high, low, close, volume] where the timestamp is a
// number and the prices/volume are decimal strings.
type Candle struct {
	OpenTime int64
	Open     string
	High     string
	Low      string
	Close    string
	Volume   string
}

func (c *Candle) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw []any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("candle is not an array: %w", err)
	}
	if len(raw) != 6 {
		return fmt.Errorf("candle has %d fields, want 6", len(raw))
	}

	ts, ok := raw[0].(json.Number)
	if !ok {
		return fmt.Errorf("candle open time is not numeric: %v", raw[0])
	}
	openTime, err := ts.Int64()
	if err != nil {
		return fmt.Errorf("candle open time: %w", err)
	}

	fields := make([]string, 5)
	for i, v := range raw[1:] {
		switch f := v.(type) {
		case string:
			fields[i] = f
		case json.Number:
			fields[i] = f.String()
		default:
			return fmt.Errorf("candle field %d has unexpected type %T", i+1, v)
		}
	}

	c.OpenTime = openTime
	c.Open, c.High, c.Low, c.Close, c.Volume = fields[0], fields[1], fields[2], fields[3], fields[4]
	return nil
}
