package calc

import "github.com/shopspring/decimal"

func LineTotal(price decimal.Decimal, qty int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(qty)))
}

// Shipping is charged once per non-empty cart.
func Shipping(subtotalLines int, fee decimal.Decimal) decimal.Decimal {
	if subtotalLines == 0 {
		return decimal.Zero
	}
	return fee
}

func CalculateGrandTotal(subtotal, shipping decimal.Decimal) decimal.Decimal {
	return subtotal.Add(shipping).Round(2)
}
