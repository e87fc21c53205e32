package cart

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Line is one cart entry. UnitPrice is the catalog price captured when the
// product first entered the cart and survives later catalog price changes.
type Line struct {
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Cart maps product IDs to their cart line. The zero value is not usable;
// construct with New. uuid.UUID implements encoding.TextMarshaler, so the
// whole cart round-trips through JSON for session storage.
type Cart map[uuid.UUID]Line

// New returns an empty cart.
func New() Cart {
	return Cart{}
}

// Add puts a product into the cart. When override is true the quantity
// replaces the existing one, otherwise it is added to it. The unit price is
// only captured on first insert.
func (c Cart) Add(productID uuid.UUID, unitPrice decimal.Decimal, quantity int, override bool) {
	if quantity < 1 {
		return
	}
	line, exists := c[productID]
	if !exists {
		c[productID] = Line{Quantity: quantity, UnitPrice: unitPrice}
		return
	}
	if override {
		line.Quantity = quantity
	} else {
		line.Quantity += quantity
	}
	c[productID] = line
}

// Remove drops a product from the cart. Removing an absent product is a no-op.
func (c Cart) Remove(productID uuid.UUID) {
	delete(c, productID)
}

// Clear empties the cart in place.
func (c Cart) Clear() {
	for id := range c {
		delete(c, id)
	}
}

// Len returns the total quantity across all lines, not the number of lines.
func (c Cart) Len() int {
	total := 0
	for _, line := range c {
		total += line.Quantity
	}
	return total
}

// TotalPrice sums quantity x captured unit price across all lines.
func (c Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c) == 0
}

// ProductIDs returns the cart's product IDs in a stable order so batched
// lookups and rendered line items are deterministic.
func (c Cart) ProductIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
	return ids
}
