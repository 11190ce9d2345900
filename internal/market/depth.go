package market

import (
	"marketsnap/internal/domain"
)

// bidDepth accumulates price*amount over bid levels (descending by price)
// until a level falls below (1-d)*best. The boundary level itself is
// excluded from the total.
func bidDepth(levels [][2]string, d float64) (float64, error) {
	if len(levels) == 0 {
		return 0, domain.ErrEmptyBookSide
	}
	best, err := ParseDecimal(levels[0][0])
	if err != nil {
		return 0, err
	}
	floor := (1 - d) * best

	var total float64
	for _, lvl := range levels {
		price, err := ParseDecimal(lvl[0])
		if err != nil {
			return 0, err
		}
		if price < floor {
			return total, nil
		}
		amount, err := ParseDecimal(lvl[1])
		if err != nil {
			return 0, err
		}
		total += price * amount
	}
	return total, nil
}

// askDepth is the mirror of bidDepth for ask levels (ascending by price),
// stopping once a level exceeds (1+d)*best.
func askDepth(levels [][2]string, d float64) (float64, error) {
	if len(levels) == 0 {
		return 0, domain.ErrEmptyBookSide
	}
	best, err := ParseDecimal(levels[0][0])
	if err != nil {
		return 0, err
	}
	ceiling := (1 + d) * best

	var total float64
	for _, lvl := range levels {
		price, err := ParseDecimal(lvl[0])
		if err != nil {
			return 0, err
		}
		if price > ceiling {
			return total, nil
		}
		amount, err := ParseDecimal(lvl[1])
		if err != nil {
			return 0, err
		}
		total += price * amount
	}
	return total, nil
}
