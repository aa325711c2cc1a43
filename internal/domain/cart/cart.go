// Package cart holds the in-progress sale at the till. It does no I/O: every
// operation either mutates the cart or returns an error and leaves it as it was.
package cart

import (
	"errors"

	"github.com/bukusaku/bukusaku-api/internal/domain/entity"
	"github.com/google/uuid"
)

var (
	ErrOutOfStock        = errors.New("cart: product is out of stock")
	ErrInsufficientStock = errors.New("cart: not enough stock to add another unit")
	ErrStockLimitReached = errors.New("cart: quantity would exceed stock")
	ErrLineNotFound      = errors.New("cart: product is not in the cart")
)

// Line is one product in the cart. Product is the snapshot taken when the
// line was last added to; its Stock bounds the quantity.
type Line struct {
	Product  entity.Product `json:"product"`
	Quantity int            `json:"qty"`
}

// Subtotal is quantity times the snapshot sell price.
func (l Line) Subtotal() int64 {
	return int64(l.Quantity) * l.Product.SellPrice
}

// Cart is an ordered list of lines, at most one per product.
type Cart struct {
	Items []Line `json:"items"`
}

func New() *Cart {
	return &Cart{Items: []Line{}}
}

func (c *Cart) find(productID uuid.UUID) int {
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// Add puts one unit of p in the cart. A new product starts a line at
// quantity 1; a product already in the cart is incremented and its snapshot
// refreshed from p.
func (c *Cart) Add(p entity.Product) error {
	if p.Stock <= 0 {
		return ErrOutOfStock
	}
	i := c.find(p.ID)
	if i < 0 {
		c.Items = append(c.Items, Line{Product: p, Quantity: 1})
		return nil
	}
	if c.Items[i].Quantity+1 > p.Stock {
		return ErrInsufficientStock
	}
	c.Items[i].Quantity++
	c.Items[i].Product = p
	return nil
}

// UpdateQuantity moves a line's quantity by delta. The result may not exceed
// the line's snapshot stock and never drops below 1; use Remove to delete.
func (c *Cart) UpdateQuantity(productID uuid.UUID, delta int) error {
	i := c.find(productID)
	if i < 0 {
		return ErrLineNotFound
	}
	line := &c.Items[i]
	if delta > line.Product.Stock-line.Quantity {
		return ErrStockLimitReached
	}
	line.Quantity = max(1, line.Quantity+delta)
	return nil
}

// Remove deletes the line for productID if there is one.
func (c *Cart) Remove(productID uuid.UUID) {
	if i := c.find(productID); i >= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
}

// Total is the sum of all line subtotals.
func (c *Cart) Total() int64 {
	var total int64
	for _, l := range c.Items {
		total += l.Subtotal()
	}
	return total
}

// Len is the number of distinct products.
func (c *Cart) Len() int {
	return len(c.Items)
}

// ItemCount is the number of units across all lines.
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.Items {
		n += l.Quantity
	}
	return n
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) Clear() {
	c.Items = []Line{}
}

// Line returns the line for productID.
func (c *Cart) Line(productID uuid.UUID) (Line, bool) {
	if i := c.find(productID); i >= 0 {
		return c.Items[i], true
	}
	return Line{}, false
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.Items))
	copy(out, c.Items)
	return out
}
