package service

import (
	"fmt"

	"github.com/elevate-digital/bizdesk/internal/core/domain"
	"github.com/elevate-digital/bizdesk/internal/core/ports"
)

// buildLineItems validates caller-supplied lines and recomputes every amount
// as quantity × unit price, returning the items and their total. Amounts are
// never trusted from input.
func buildLineItems(inputs []ports.LineItemInput) ([]domain.LineItem, float64, error) {
	if len(inputs) == 0 {
		return nil, 0, fmt.Errorf("%w: at least one line item is required", domain.ErrValidation)
	}

	items := make([]domain.LineItem, 0, len(inputs))
	var total float64
	for i, in := range inputs {
		if in.Quantity < 0 {
			return nil, 0, fmt.Errorf("%w: item %d quantity must not be negative", domain.ErrValidation, i)
		}
		if in.UnitPrice < 0 {
			return nil, 0, fmt.Errorf("%w: item %d unit price must not be negative", domain.ErrValidation, i)
		}
		amount := float64(in.Quantity) * in.UnitPrice
		items = append(items, domain.LineItem{
			Description: in.Description,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			Amount:      amount,
		})
		total += amount
	}
	return items, total, nil
}
