package catalog

import (
	"strings"

	"techstore/internal/model"
)

// NormalizeOptions converts client-submitted options into the canonical
// option schema. This is the single ingestion point for the legacy shapes:
// bare string values and {value, delta} objects both become tagged
// {label, priceDelta} values. Options without a name or without a values
// array are dropped.
func NormalizeOptions(raw []model.RawOption) []model.ProductOption {
	if len(raw) == 0 {
		return []model.ProductOption{}
	}

	options := make([]model.ProductOption, 0, len(raw))
	for _, opt := range raw {
		name := strings.TrimSpace(opt.Name)
		if name == "" || opt.Values == nil {
			continue
		}

		values := make([]model.OptionValue, 0, len(opt.Values))
		for _, v := range opt.Values {
			values = append(values, model.OptionValue{
				Label:      v.Label,
				PriceDelta: v.PriceDelta,
			})
		}

		options = append(options, model.ProductOption{
			Name:   name,
			Values: values,
		})
	}

	return options
}
