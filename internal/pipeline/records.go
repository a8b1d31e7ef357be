package pipeline

import (
	"strings"

	"quotebridge/internal"
	"quotebridge/internal/amount"
)

// Deployment constants of the downstream ordering system.
const (
	businessUnit  = "Belgium"
	stockLocation = "Duffel : BE Sales Stock"
)

const dateLayout = "2006-01-02"

// ExportColumns is the fixed column order of the quote upload schema.
var ExportColumns = []string{
	"ExternalId", "Title", "Currency", "Date", "Reseller", "ResellerContact",
	"Expires", "ExpectedClose", "EndUser", "BusinessUnit", "Item", "Quantity",
	"Salesprice", "Salesdiscount", "Purchaseprice", "PurchaseDiscount",
	"Location", "ContractStart", "ContractEnd", "Serial#Supported", "Rebate",
	"Opportunity", "Memo (Line)", "Quote ID (Line)",
	"VendorSpecialPriceApproval", "VendorSpecialPriceApproval (Line)",
	"SalesCurrency", "SalesExchangeRate",
}

// BuildParams are the request-level inputs of the record builder.
type BuildParams struct {
	Reseller     string
	EndUser      string
	Currency     string
	ExchangeRate float64
}

// BuildRecords assembles one ExportRecord per quote line. It performs no
// validation: everything it consumes was already guaranteed upstream.
// Contract, rebate, opportunity and memo fields stay empty for manual
// completion downstream.
func BuildRecords(lines []internal.QuoteLine, pricing []internal.PricingResult, window internal.ValidityWindow, p BuildParams) []internal.ExportRecord {
	quoteDate := window.QuoteDate.Format(dateLayout)
	expires := window.ExpiresDate.Format(dateLayout)

	party := p.Reseller
	if strings.TrimSpace(p.EndUser) != "" {
		party = p.EndUser
	}
	party = strings.Join(strings.Fields(party), "_")

	records := make([]internal.ExportRecord, 0, len(lines))
	for i, line := range lines {
		quoteName := line.Field(MarkerColumn)
		pr := pricing[i]
		records = append(records, internal.ExportRecord{
			ExternalID:        party + "_" + quoteName + "_" + quoteDate,
			Title:             quoteName,
			Currency:          p.Currency,
			Date:              quoteDate,
			Reseller:          p.Reseller,
			Expires:           expires,
			EndUser:           p.EndUser,
			BusinessUnit:      businessUnit,
			Item:              line.Field(ColProductCode),
			Quantity:          line.Field(ColQuantity),
			SalesPrice:        pr.SalesPrice,
			SalesDiscount:     amount.FormatPercent(pr.SalesDiscountPct),
			PurchasePrice:     pr.PurchasePrice,
			PurchaseDiscount:  amount.FormatPercent(pr.PurchaseDiscountPct),
			Location:          stockLocation,
			SalesCurrency:     p.Currency,
			SalesExchangeRate: p.ExchangeRate,
		})
	}
	return records
}

// values renders one record in ExportColumns order.
func recordValues(r internal.ExportRecord) []any {
	return []any{
		r.ExternalID, r.Title, r.Currency, r.Date, r.Reseller, r.ResellerContact,
		r.Expires, r.ExpectedClose, r.EndUser, r.BusinessUnit, r.Item, r.Quantity,
		r.SalesPrice, r.SalesDiscount, r.PurchasePrice, r.PurchaseDiscount,
		r.Location, r.ContractStart, r.ContractEnd, r.SerialSupported, r.Rebate,
		r.Opportunity, r.MemoLine, r.QuoteIDLine,
		r.VendorSpecialPriceApproval, r.VendorSpecialPriceLine,
		r.SalesCurrency, r.SalesExchangeRate,
	}
}
