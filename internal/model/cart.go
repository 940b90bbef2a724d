package model

import "time"

// CartLine is one product's aggregated quantity within a cart. The product
// is a snapshot taken when the line was first created.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// LineTotal returns price times quantity for the line.
func (l CartLine) LineTotal() int64 {
	return l.Product.Price * int64(l.Quantity)
}

// Totals holds the derived amounts shown on the cart summary.
type Totals struct {
	Subtotal   int64 `json:"subtotal"`
	Shipping   int64 `json:"shipping"`
	Tax        int64 `json:"tax"`
	GrandTotal int64 `json:"grand_total"`
}

// Receipt is the record produced by the checkout stub.
type Receipt struct {
	ID        string     `json:"id" db:"id"`
	Email     string     `json:"email" db:"email"`
	Lines     []CartLine `json:"lines" db:"-"`
	Totals    Totals     `json:"totals" db:"-"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}
