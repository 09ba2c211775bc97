package helpers

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var priceFormatter = accounting.Accounting{Symbol: "$", Precision: 2}

// FormatPrice renders a price the way the storefront displays it.
func FormatPrice(amount decimal.Decimal) string {
	return priceFormatter.FormatMoney(amount)
}
