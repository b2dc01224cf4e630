package catalog

import (
	"fmt"

	"techstore/internal/model"
)

// Quote is the result of resolving a buyer's option selections against a
// product's option schema.
type Quote struct {
	// UnitPrice is the base price plus the sum of the selected deltas.
	// Negative deltas can drive it below base; no floor is enforced here.
	UnitPrice float64

	// Complete reports whether every declared option (with at least one
	// value) has a selection. Incomplete quotes must not reach a cart.
	Complete bool
}

// ResolvePrice computes the unit price for a product under the given
// selections. Each declared option contributes the delta of its selected
// value. A selection naming a label the option does not declare is a
// validation error; a missing selection yields an incomplete quote. Options
// with an empty value set contribute nothing and require no selection.
func ResolvePrice(p *model.Product, selected model.SelectedOptions) (Quote, error) {
	quote := Quote{UnitPrice: p.Price, Complete: true}

	for _, opt := range p.Options {
		if len(opt.Values) == 0 {
			continue
		}

		label, ok := selected[opt.Name]
		if !ok || label == "" {
			quote.Complete = false
			continue
		}

		value, found := findValue(opt, label)
		if !found {
			return Quote{}, model.NewValidationError(
				fmt.Sprintf("Unknown value %q for option %q", label, opt.Name))
		}

		quote.UnitPrice += value.PriceDelta
	}

	return quote, nil
}

// PriceRange computes the listing price-range preview. The range is additive
// per option: each option contributes its own min and max delta
// independently, and the contributions are summed. This is an approximation,
// not a joint min/max over all selection combinations, and the displayed
// range is clamped so it never starts above or ends below the base price.
func PriceRange(p *model.Product) (from, to float64) {
	var minSum, maxSum float64
	for _, opt := range p.Options {
		if len(opt.Values) == 0 {
			continue
		}

		minDelta := opt.Values[0].PriceDelta
		maxDelta := opt.Values[0].PriceDelta
		for _, v := range opt.Values[1:] {
			if v.PriceDelta < minDelta {
				minDelta = v.PriceDelta
			}
			if v.PriceDelta > maxDelta {
				maxDelta = v.PriceDelta
			}
		}

		minSum += minDelta
		maxSum += maxDelta
	}

	from = p.Price + min(0, minSum)
	to = p.Price + max(0, maxSum)
	return from, to
}

func findValue(opt model.ProductOption, label string) (model.OptionValue, bool) {
	for _, v := range opt.Values {
		if v.Label == label {
			return v, true
		}
	}
	return model.OptionValue{}, false
}
