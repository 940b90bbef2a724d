package cart

import "github.com/nhle/taskshop/internal/model"

// Pricing holds the rules that turn a subtotal into order totals.
type Pricing struct {
	// FreeShippingOver waives shipping for subtotals strictly above it.
	FreeShippingOver int64
	ShippingFee      int64
	TaxPercent       int64
}

// DefaultPricing is the storefront's standard pricing.
var DefaultPricing = Pricing{
	FreeShippingOver: 1_000_000,
	ShippingFee:      15_000,
	TaxPercent:       11,
}

// PricingFromConfig reads pricing from the shop section.
func PricingFromConfig(c model.ShopConfig) Pricing {
	return Pricing{
		FreeShippingOver: c.FreeShippingOver,
		ShippingFee:      c.ShippingFee,
		TaxPercent:       c.TaxPercent,
	}
}

// Shipping returns the shipping fee for subtotal.
func (p Pricing) Shipping(subtotal int64) int64 {
	if subtotal > p.FreeShippingOver {
		return 0
	}
	return p.ShippingFee
}

// Tax returns subtotal * TaxPercent / 100 rounded half up.
func (p Pricing) Tax(subtotal int64) int64 {
	if subtotal <= 0 {
		return 0
	}
	return (subtotal*p.TaxPercent + 50) / 100
}

// Totals derives the order summary for subtotal.
func (p Pricing) Totals(subtotal int64) model.Totals {
	shipping := p.Shipping(subtotal)
	tax := p.Tax(subtotal)
	return model.Totals{
		Subtotal:   subtotal,
		Shipping:   shipping,
		Tax:        tax,
		GrandTotal: subtotal + tax + shipping,
	}
}
