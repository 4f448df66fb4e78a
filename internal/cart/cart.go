// Package cart holds the browsing session's cart and the checkout flow.
// A Cart belongs to exactly one session and is not safe for concurrent use;
// nothing in the storefront shares it.
package cart

import "go-galon-gas/internal/model"

// Line is one cart entry: a snapshot of the product at add time plus a
// quantity. The snapshot keeps the price the customer saw even if the
// catalog changes before checkout.
type Line struct {
	ProductID string
	Name      string
	Price     int64
	Quantity  int
}

// Cart is an ordered collection of lines. Lines keep insertion order;
// re-adding a product only bumps its quantity, never its position.
type Cart struct {
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// Add puts qty units of the product in the cart, merging into an existing
// line when the product is already there. Non-positive qty counts as 1.
func (c *Cart) Add(product model.Product, qty int) {
	if qty < 1 {
		qty = 1
	}
	for i := range c.lines {
		if c.lines[i].ProductID == product.ID {
			c.lines[i].Quantity += qty
			return
		}
	}
	c.lines = append(c.lines, Line{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  qty,
	})
}

// SetQuantity sets the line's quantity, clamped to a minimum of 1.
// Decrementing below 1 never removes the line; that is what Remove is for.
func (c *Cart) SetQuantity(productID string, qty int) {
	if qty < 1 {
		qty = 1
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = qty
			return
		}
	}
}

// Remove drops the line entirely regardless of its quantity.
func (c *Cart) Remove(productID string) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Total is the sum of price*quantity over all lines, recomputed on every
// call. The cart is small; caching would buy nothing.
func (c *Cart) Total() int64 {
	var total int64
	for _, line := range c.lines {
		total += line.Price * int64(line.Quantity)
	}
	return total
}

// ItemCount is the total number of units across all lines.
func (c *Cart) ItemCount() int {
	var count int
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// Lines returns a copy of the cart contents in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Clear empties the cart. Called only after a successful checkout.
func (c *Cart) Clear() {
	c.lines = nil
}

// Items builds the order line snapshot submitted at checkout.
func (c *Cart) Items() []model.OrderItem {
	items := make([]model.OrderItem, 0, len(c.lines))
	for _, line := range c.lines {
		items = append(items, model.OrderItem{
			ID:       line.ProductID,
			Name:     line.Name,
			Price:    line.Price,
			Quantity: line.Quantity,
		})
	}
	return items
}
