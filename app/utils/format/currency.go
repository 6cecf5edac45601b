package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var lira = accounting.Accounting{
	Symbol:    "₺",
	Precision: 2,
	Thousand:  ".",
	Decimal:   ",",
	Format:    "%v %s",
}

// FormatLira renders amount the Turkish way, e.g. "8.500,00 ₺".
func FormatLira(amount decimal.Decimal) string {
	return lira.FormatMoney(amount.InexactFloat64())
}
