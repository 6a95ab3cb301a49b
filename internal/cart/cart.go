package cart

import (
	"github.com/shopspring/decimal"

	"github.com/restokasir/kasir-web/internal/domain"
)

// TaxRate is the PPN rate applied on top of the cart subtotal.
var TaxRate = decimal.RequireFromString("0.11")

// Line is one product in the cart with its quantity. A cart holds at
// most one line per product id.
type Line struct {
	Product  domain.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

func (l Line) LineTotal() int64 {
	return l.Product.Price * int64(l.Quantity)
}

// Cart is a point-in-time snapshot of a session's selections, in
// first-add order. Mutations go through the Store; snapshots are safe
// to read without locking.
type Cart struct {
	Lines []Line `json:"lines"`
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// TotalItems is the sum of all line quantities.
func (c Cart) TotalItems() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

func (c Cart) Subtotal() decimal.Decimal {
	var sum int64
	for _, l := range c.Lines {
		sum += l.LineTotal()
	}
	return decimal.NewFromInt(sum)
}

func (c Cart) Tax() decimal.Decimal {
	return c.Subtotal().Mul(TaxRate)
}

// Total is subtotal plus PPN at full precision. Rounding is deferred
// to display formatting.
func (c Cart) Total() decimal.Decimal {
	return c.Subtotal().Add(c.Tax())
}
