package pipeline

import (
	"fmt"
	"strings"

	"quotebridge/internal"
	"quotebridge/internal/amount"
)

// Input column names of the portal report family.
const (
	ColQuantity      = "Quantity"
	ColListPrice     = "List Price"
	ColSalePrice     = "Sale Price"
	ColTotalDiscount = "Total Discount (%)"
	ColProductCode   = "Product Code"
)

// NX-prefixed product codes are double-weighted in the sales base.
const doubleWeightPrefix = "NX"

var supportedCurrencies = map[string]struct{}{
	"EUR": {}, "USD": {}, "SEK": {}, "NOK": {}, "DKK": {},
}

// ValidateCurrency rejects anything outside the fixed supported set. This
// runs before any row is processed.
func ValidateCurrency(currency string) error {
	if _, ok := supportedCurrencies[currency]; !ok {
		return fmt.Errorf("%w: %q (want EUR, USD, SEK, NOK or DKK)", ErrUnsupportedCurrency, currency)
	}
	return nil
}

// PricingInputsFromLine parses the numeric cells of one quote line. Cells
// that fail to parse degrade to zero per the tolerant-parsing policy.
func PricingInputsFromLine(line internal.QuoteLine) internal.PricingInputs {
	return internal.PricingInputs{
		ListPrice:        amount.ParseAmount(line.Field(ColListPrice)),
		SalePrice:        amount.ParseAmount(line.Field(ColSalePrice)),
		TotalDiscountPct: amount.ParsePercent(line.Field(ColTotalDiscount)),
		ProductCode:      line.Field(ColProductCode),
		Quantity:         amount.ParseAmount(line.Field(ColQuantity)),
	}
}

// ComputePricing applies the currency, margin and product-code rules to one
// line. The vendor's quoted sale price becomes our purchase price; the sales
// price is derived from the discounted list price, double-weighted for NX
// codes, converted out of EUR when needed and marked up by the margin.
func ComputePricing(in internal.PricingInputs, currency string, exchangeRate, marginPct float64) internal.PricingResult {
	netPrice := in.ListPrice * (1 - in.TotalDiscountPct/100)

	baseNative := netPrice
	if strings.HasPrefix(in.ProductCode, doubleWeightPrefix) {
		baseNative = netPrice * 2
	}

	// The base is EUR-denominated; only non-EUR targets convert.
	base := baseNative
	if currency != "EUR" {
		base = baseNative * exchangeRate
	}

	salesPrice := base * (1 + marginPct/100)

	salesDiscount := 100.0
	if salesPrice > 0 {
		salesDiscount = 100 - (netPrice/salesPrice)*100
	}
	salesDiscount = clampPct(salesDiscount)

	return internal.PricingResult{
		PurchasePrice:       amount.Round2(in.SalePrice),
		PurchaseDiscountPct: in.TotalDiscountPct,
		SalesPrice:          amount.Round2(salesPrice),
		SalesDiscountPct:    salesDiscount,
	}
}

func clampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
