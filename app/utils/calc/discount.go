package calc

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

func CalculateDiscount(base, discountPercent decimal.Decimal) decimal.Decimal {
	return base.Mul(discountPercent).Div(hundred)
}

// DiscountedPrice is price less discountPercent percent of it.
func DiscountedPrice(price, discountPercent decimal.Decimal) decimal.Decimal {
	return price.Sub(CalculateDiscount(price, discountPercent))
}
