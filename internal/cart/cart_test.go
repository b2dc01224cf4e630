package cart

import (
	"testing"

	"techstore/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct() *model.Product {
	return &model.Product{
		ID:    uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Name:  "Phone X",
		Price: 990,
		Image: "/images/phone.jpg",
		Options: []model.ProductOption{
			{Name: "Color", Values: []model.OptionValue{
				{Label: "Black", PriceDelta: 0},
				{Label: "Blue", PriceDelta: 50},
			}},
		},
	}
}

func TestIdentityKey_Deterministic(t *testing.T) {
	a := IdentityKey("p1", model.SelectedOptions{"Color": "Blue", "Storage": "128GB"})
	b := IdentityKey("p1", model.SelectedOptions{"Storage": "128GB", "Color": "Blue"})
	assert.Equal(t, a, b, "key must not depend on map iteration order")

	c := IdentityKey("p1", model.SelectedOptions{"Color": "Black", "Storage": "128GB"})
	assert.NotEqual(t, a, c)

	assert.Equal(t, "p1|", IdentityKey("p1", nil))
}

func TestAddLine_MergesSameIdentity(t *testing.T) {
	p := testProduct()
	selected := model.SelectedOptions{"Color": "Blue"}

	c, err := Cart{}.AddLine(p, selected, 2)
	require.NoError(t, err)
	c, err = c.AddLine(p, selected, 3)
	require.NoError(t, err)

	require.Len(t, c.Lines, 1, "same identity must merge, never duplicate")
	assert.Equal(t, 5, c.Lines[0].Qty)
	assert.Equal(t, 1040.0, c.Lines[0].UnitPrice)
}

func TestAddLine_DistinctVariantsStaySeparate(t *testing.T) {
	p := testProduct()

	c, err := Cart{}.AddLine(p, model.SelectedOptions{"Color": "Black"}, 1)
	require.NoError(t, err)
	c, err = c.AddLine(p, model.SelectedOptions{"Color": "Blue"}, 1)
	require.NoError(t, err)

	require.Len(t, c.Lines, 2)
	assert.Equal(t, 990.0, c.Lines[0].UnitPrice)
	assert.Equal(t, 1040.0, c.Lines[1].UnitPrice)
}

func TestAddLine_MergeDoesNotReprice(t *testing.T) {
	p := testProduct()
	selected := model.SelectedOptions{"Color": "Blue"}

	c, err := Cart{}.AddLine(p, selected, 1)
	require.NoError(t, err)

	// the catalogue price changes after the line is in the cart
	p.Price = 2000
	c, err = c.AddLine(p, selected, 1)
	require.NoError(t, err)

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 1040.0, c.Lines[0].UnitPrice, "merge keeps the frozen price")
	assert.Equal(t, 2, c.Lines[0].Qty)
}

func TestAddLine_QuantityClamping(t *testing.T) {
	p := testProduct()
	selected := model.SelectedOptions{"Color": "Black"}

	tests := []struct {
		name string
		qty  int
		want int
	}{
		{"zero becomes one", 0, 1},
		{"negative becomes one", -5, 1},
		{"above cap clamps", 150, 99},
		{"in range untouched", 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Cart{}.AddLine(p, selected, tt.qty)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Lines[0].Qty)
		})
	}
}

func TestAddLine_MergeCapsAtMax(t *testing.T) {
	p := testProduct()
	selected := model.SelectedOptions{"Color": "Black"}

	c, err := Cart{}.AddLine(p, selected, 98)
	require.NoError(t, err)
	c, err = c.AddLine(p, selected, 50)
	require.NoError(t, err)

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 99, c.Lines[0].Qty)
}

func TestAddLine_RejectsIncompleteSelection(t *testing.T) {
	p := testProduct()

	_, err := Cart{}.AddLine(p, model.SelectedOptions{}, 1)
	require.Error(t, err)
	assert.Equal(t, model.ErrCodeValidation, model.ErrorCode(err))
}

func TestAddLine_RejectsUnknownLabel(t *testing.T) {
	p := testProduct()

	_, err := Cart{}.AddLine(p, model.SelectedOptions{"Color": "Green"}, 1)
	require.Error(t, err)
	assert.Equal(t, model.ErrCodeValidation, model.ErrorCode(err))
}

func TestUpdateQty_Clamps(t *testing.T) {
	p := testProduct()
	selected := model.SelectedOptions{"Color": "Black"}

	c, err := Cart{}.AddLine(p, selected, 5)
	require.NoError(t, err)
	key := c.Lines[0].Key()

	c = c.UpdateQty(key, 150)
	assert.Equal(t, 99, c.Lines[0].Qty)

	c = c.UpdateQty(key, 0)
	assert.Equal(t, 1, c.Lines[0].Qty)

	c = c.UpdateQty(key, -5)
	assert.Equal(t, 1, c.Lines[0].Qty)
}

func TestRemoveLine_ByFullIdentity(t *testing.T) {
	p := testProduct()

	c, err := Cart{}.AddLine(p, model.SelectedOptions{"Color": "Black"}, 1)
	require.NoError(t, err)
	c, err = c.AddLine(p, model.SelectedOptions{"Color": "Blue"}, 1)
	require.NoError(t, err)

	c = c.RemoveLine(IdentityKey(p.ID.String(), model.SelectedOptions{"Color": "Black"}))

	require.Len(t, c.Lines, 1, "other variants of the same product must survive")
	assert.Equal(t, "Blue", c.Lines[0].SelectedOptions["Color"])
}

func TestTotals(t *testing.T) {
	p := testProduct()

	c, err := Cart{}.AddLine(p, model.SelectedOptions{"Color": "Blue"}, 3)
	require.NoError(t, err)

	totals := c.Totals()
	assert.Equal(t, 3, totals.Items)
	assert.Equal(t, 3120.0, totals.Amount)
}
