package models

// CartLine is one sellable intention in an operator's cart. MaxQuantity
// mirrors the StockEntry quantity at selection time and is the ceiling for
// Quantity; Quantity stays within [1, MaxQuantity] at all times.
type CartLine struct {
	ItemID      int64   `json:"item_id"`
	BranchID    int64   `json:"branch_id"`
	Name        string  `json:"name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	MaxQuantity int     `json:"max_quantity"`
}

// Cart is the operator's in-progress, unsaved selection of items to sell.
type Cart struct {
	Lines         []CartLine `json:"lines"`
	PaymentMethod string     `json:"payment_method"`
	Warning       string     `json:"warning,omitempty"`
}

// Subtotal is the exact sum of unit price times quantity over all lines.
func (c *Cart) Subtotal() float64 {
	var sum float64
	for _, l := range c.Lines {
		sum += l.UnitPrice * float64(l.Quantity)
	}
	return sum
}

// Tax is the tax component of the cart total. Currently always zero; kept
// as an extension point so Total never needs a signature change.
func (c *Cart) Tax() float64 {
	return 0
}

// Total is subtotal plus tax.
func (c *Cart) Total() float64 {
	return c.Subtotal() + c.Tax()
}
