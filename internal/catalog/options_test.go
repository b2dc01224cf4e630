package catalog

import (
	"encoding/json"
	"testing"

	"techstore/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeOptions_LegacyShapes(t *testing.T) {
	// the three shapes that exist in the wild: bare strings, {value, delta}
	// and the current {label, priceDelta}
	payload := `[
		{"name": "Storage", "values": ["128GB", "256GB"]},
		{"name": "Color", "values": [
			{"value": "Black", "delta": 0},
			{"label": "Blue", "priceDelta": 50}
		]}
	]`

	var raw []model.RawOption
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))

	options := NormalizeOptions(raw)
	require.Len(t, options, 2)

	assert.Equal(t, "Storage", options[0].Name)
	assert.Equal(t, []model.OptionValue{
		{Label: "128GB", PriceDelta: 0},
		{Label: "256GB", PriceDelta: 0},
	}, options[0].Values)

	assert.Equal(t, "Color", options[1].Name)
	assert.Equal(t, []model.OptionValue{
		{Label: "Black", PriceDelta: 0},
		{Label: "Blue", PriceDelta: 50},
	}, options[1].Values)
}

func TestNormalizeOptions_DropsMalformedEntries(t *testing.T) {
	raw := []model.RawOption{
		{Name: "", Values: []model.RawOptionValue{{Label: "x"}}},
		{Name: "   ", Values: []model.RawOptionValue{{Label: "x"}}},
		{Name: "NoValues", Values: nil},
		{Name: "Kept", Values: []model.RawOptionValue{{Label: "a", PriceDelta: 10}}},
	}

	options := NormalizeOptions(raw)
	require.Len(t, options, 1)
	assert.Equal(t, "Kept", options[0].Name)
}

func TestNormalizeOptions_EmptyInput(t *testing.T) {
	assert.Empty(t, NormalizeOptions(nil))
	assert.NotNil(t, NormalizeOptions(nil), "normalised options marshal as [] not null")
}

func TestNormalizeOptions_EmptyValueList(t *testing.T) {
	options := NormalizeOptions([]model.RawOption{
		{Name: "Engraving", Values: []model.RawOptionValue{}},
	})
	require.Len(t, options, 1)
	assert.Empty(t, options[0].Values)
}
