package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

var (
	DefaultTaxRate     = decimal.RequireFromString("0.18")
	DefaultShippingFee = decimal.NewFromInt(50)
)

// Amount is the money breakdown of an order or a cart preview.
// Total is always Subtotal+Tax+Shipping rounded to 2 places.
type Amount struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
	Currency currency.Unit
}

type PricedQuantity struct {
	Price    decimal.Decimal
	Quantity int
}

type Pricing struct {
	TaxRate     decimal.Decimal
	ShippingFee decimal.Decimal
	Currency    currency.Unit
}

func DefaultPricing() Pricing {
	return Pricing{
		TaxRate:     DefaultTaxRate,
		ShippingFee: DefaultShippingFee,
		Currency:    currency.INR,
	}
}

// Compute turns resolved lines into an Amount. Tax and total are rounded
// half-up to 2 places independently; shipping is charged only when there is at
// least one line, so an empty cart previews as all zeros.
func (p Pricing) Compute(lines []PricedQuantity) Amount {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	shipping := decimal.Zero
	if len(lines) > 0 {
		shipping = p.ShippingFee
	}

	tax := subtotal.Mul(p.TaxRate).Round(2)
	total := subtotal.Add(tax).Add(shipping).Round(2)

	return Amount{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    total,
		Currency: p.Currency,
	}
}
