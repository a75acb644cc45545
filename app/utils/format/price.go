package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

// PriceFormatter renders money amounts as display labels, e.g. "Rp 150.000".
type PriceFormatter struct {
	ac accounting.Accounting
}

func NewPriceFormatter(symbol string, precision int) *PriceFormatter {
	if symbol == "" {
		symbol = "Rp"
	}
	if precision < 0 {
		precision = 0
	}
	return &PriceFormatter{ac: accounting.Accounting{
		Symbol:    symbol,
		Precision: precision,
		Thousand:  ".",
		Decimal:   ",",
		Format:    "%s %v",
	}}
}

func (f *PriceFormatter) Format(amount decimal.Decimal) string {
	return f.ac.FormatMoneyDecimal(amount)
}
