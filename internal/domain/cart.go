package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine is a snapshot of a product taken when it was first added to the cart.
// Name, price, barcode and stock are not re-synced if the product changes later.
type CartLine struct {
	ProductID     uuid.UUID
	Name          string
	Barcode       string
	UnitPrice     decimal.Decimal
	Quantity      int
	SnapshotStock int
}

// Cart is owned by a single session. It is not safe for concurrent use.
type Cart struct {
	lines []CartLine
}

func NewCart() *Cart {
	return &Cart{}
}

// AddOrIncrement merges by product id: an existing line gains one unit,
// otherwise a new line with quantity 1 is appended.
// Stock is not checked, see Oversold.
func (c *Cart) AddOrIncrement(p Product) CartLine {
	if i := c.index(p.ID); i >= 0 {
		c.lines[i].Quantity++
		return c.lines[i]
	}

	line := CartLine{
		ProductID:     p.ID,
		Name:          p.Name,
		Barcode:       p.Barcode,
		UnitPrice:     p.Price,
		Quantity:      1,
		SnapshotStock: p.Stock,
	}
	c.lines = append(c.lines, line)

	return line
}

func (c *Cart) IncrementLine(productID uuid.UUID) error {
	i := c.index(productID)
	if i < 0 {
		return ErrLineNotFound
	}

	c.lines[i].Quantity++
	return nil
}

// DecrementLine removes the line when its quantity would drop to zero.
func (c *Cart) DecrementLine(productID uuid.UUID) error {
	i := c.index(productID)
	if i < 0 {
		return ErrLineNotFound
	}

	if c.lines[i].Quantity <= 1 {
		c.removeAt(i)
		return nil
	}

	c.lines[i].Quantity--
	return nil
}

// AdjustQuantity applies delta in one step. A line whose quantity drops to
// zero or below is removed.
func (c *Cart) AdjustQuantity(productID uuid.UUID, delta int) error {
	i := c.index(productID)
	if i < 0 {
		return ErrLineNotFound
	}

	if c.lines[i].Quantity+delta <= 0 {
		c.removeAt(i)
		return nil
	}

	c.lines[i].Quantity += delta
	return nil
}

// Clone returns an independent copy of the cart.
func (c *Cart) Clone() *Cart {
	return &Cart{lines: c.Lines()}
}

func (c *Cart) RemoveLine(productID uuid.UUID) error {
	i := c.index(productID)
	if i < 0 {
		return ErrLineNotFound
	}

	c.removeAt(i)
	return nil
}

func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy in insertion order.
func (c *Cart) Lines() []CartLine {
	if len(c.lines) == 0 {
		return nil
	}

	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)

	return out
}

func (c *Cart) Line(productID uuid.UUID) (CartLine, bool) {
	i := c.index(productID)
	if i < 0 {
		return CartLine{}, false
	}
	return c.lines[i], true
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Len() int {
	return len(c.lines)
}

// Oversold lists lines whose quantity exceeds the stock seen at add time.
// Advisory only: the commit does not reject them.
func (c *Cart) Oversold() []CartLine {
	var out []CartLine
	for _, l := range c.lines {
		if l.Quantity > l.SnapshotStock {
			out = append(out, l)
		}
	}
	return out
}

func (c *Cart) index(productID uuid.UUID) int {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(i int) {
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
}
