package service

import (
	"errors"

	"github.com/shopspring/decimal"
)

var errQuotedPrice = errors.New("price must be a JSON number")

// Price is a product price read and written as a bare JSON number.
type Price struct {
	decimal.Decimal
}

// NewPrice wraps d.
func NewPrice(d decimal.Decimal) Price {
	return Price{Decimal: d}
}

// UnmarshalJSON rejects quoted values, which decimal.Decimal would otherwise accept.
func (p *Price) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return errQuotedPrice
	}
	return p.Decimal.UnmarshalJSON(data)
}

func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.Decimal.String()), nil
}
