package model

import "encoding/json"

// RawOption is a product option as submitted by a client, before
// normalisation into a ProductOption.
type RawOption struct {
	Name   string           `json:"name"`
	Values []RawOptionValue `json:"values"`
}

// RawOptionValue accepts both the current {label, priceDelta} object shape
// and two legacy shapes: a bare string label, and {value, delta}.
type RawOptionValue struct {
	Label      string
	PriceDelta float64
}

// UnmarshalJSON decodes either a JSON string or an object. Unknown or
// malformed price deltas decode to zero rather than failing the request.
func (v *RawOptionValue) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err == nil {
		v.Label = label
		v.PriceDelta = 0
		return nil
	}

	var obj struct {
		Label      *string  `json:"label"`
		Value      *string  `json:"value"`
		PriceDelta *float64 `json:"priceDelta"`
		Delta      *float64 `json:"delta"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	switch {
	case obj.Label != nil:
		v.Label = *obj.Label
	case obj.Value != nil:
		v.Label = *obj.Value
	}

	switch {
	case obj.PriceDelta != nil:
		v.PriceDelta = *obj.PriceDelta
	case obj.Delta != nil:
		v.PriceDelta = *obj.Delta
	}

	return nil
}

// MarshalJSON always emits the normalised object shape.
func (v RawOptionValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(OptionValue{Label: v.Label, PriceDelta: v.PriceDelta})
}
