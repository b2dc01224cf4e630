package cart

import (
	"sort"
	"strings"

	"techstore/internal/catalog"
	"techstore/internal/model"
)

// Quantity bounds for a single cart line.
const (
	MinQty = 1
	MaxQty = 99
)

// Line is a priced cart entry. The unit price is frozen when the line is
// first added; merging more quantity onto an existing line does not re-price
// it.
type Line struct {
	ProductID       string                `json:"product"`
	Name            string                `json:"name"`
	UnitBasePrice   float64               `json:"unitBasePrice"`
	SelectedOptions model.SelectedOptions `json:"selectedOptions"`
	UnitPrice       float64               `json:"unitPrice"`
	Image           string                `json:"image,omitempty"`
	Qty             int                   `json:"qty"`
}

// Key returns the line's identity: product id plus the canonical form of its
// selections. Two lines are the same cart entry iff their keys are equal.
func (l Line) Key() string {
	return IdentityKey(l.ProductID, l.SelectedOptions)
}

// Cart is an ordered set of lines, deduplicated by identity key.
type Cart struct {
	Lines []Line `json:"lines"`
}

// Totals aggregates a cart into an item count and a subtotal amount.
type Totals struct {
	Items  int     `json:"items"`
	Amount float64 `json:"amount"`
}

// IdentityKey builds the canonical identity of a (product, selections) pair.
// Option names are sorted so the key is independent of map iteration order.
func IdentityKey(productID string, selected model.SelectedOptions) string {
	if len(selected) == 0 {
		return productID + "|"
	}

	names := make([]string, 0, len(selected))
	for name := range selected {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(productID)
	b.WriteByte('|')
	for i, name := range names {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(selected[name])
	}
	return b.String()
}

// ClampQty forces a quantity into [MinQty, MaxQty].
func ClampQty(qty int) int {
	if qty < MinQty {
		return MinQty
	}
	if qty > MaxQty {
		return MaxQty
	}
	return qty
}

// AddLine adds qty units of the product under the given selections. The
// selections must form a complete, valid quote or the add is rejected. If a
// line with the same identity already exists its quantity grows (capped at
// MaxQty) and every other field keeps its frozen value; otherwise a new line
// is appended with the unit price resolved now.
func (c Cart) AddLine(p *model.Product, selected model.SelectedOptions, qty int) (Cart, error) {
	quote, err := catalog.ResolvePrice(p, selected)
	if err != nil {
		return c, err
	}
	if !quote.Complete {
		return c, model.NewValidationError("All product options must be selected")
	}

	qty = ClampQty(qty)
	key := IdentityKey(p.ID.String(), selected)

	lines := make([]Line, len(c.Lines))
	copy(lines, c.Lines)

	for i, line := range lines {
		if line.Key() == key {
			lines[i].Qty = ClampQty(line.Qty + qty)
			return Cart{Lines: lines}, nil
		}
	}

	lines = append(lines, Line{
		ProductID:       p.ID.String(),
		Name:            p.Name,
		UnitBasePrice:   p.Price,
		SelectedOptions: selected,
		UnitPrice:       quote.UnitPrice,
		Image:           p.Image,
		Qty:             qty,
	})
	return Cart{Lines: lines}, nil
}

// UpdateQty sets the quantity of the line with the given identity key,
// clamped to bounds. Unknown keys are a no-op.
func (c Cart) UpdateQty(key string, qty int) Cart {
	lines := make([]Line, len(c.Lines))
	copy(lines, c.Lines)
	for i, line := range lines {
		if line.Key() == key {
			lines[i].Qty = ClampQty(qty)
		}
	}
	return Cart{Lines: lines}
}

// RemoveLine removes the line with the given identity key. Removal is by
// full identity, so other option variants of the same product survive.
func (c Cart) RemoveLine(key string) Cart {
	lines := make([]Line, 0, len(c.Lines))
	for _, line := range c.Lines {
		if line.Key() != key {
			lines = append(lines, line)
		}
	}
	return Cart{Lines: lines}
}

// Totals sums quantities and line amounts across the cart.
func (c Cart) Totals() Totals {
	var t Totals
	for _, line := range c.Lines {
		t.Items += line.Qty
		t.Amount += float64(line.Qty) * line.UnitPrice
	}
	return t
}
