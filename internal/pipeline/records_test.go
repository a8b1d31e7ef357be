package pipeline

import (
	"testing"
	"time"

	"quotebridge/internal"
)

func testWindow() internal.ValidityWindow {
	return internal.ValidityWindow{
		QuoteDate:   time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC),
		ExpiresDate: time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC),
	}
}

func testLines() []internal.QuoteLine {
	return []internal.QuoteLine{
		{Fields: map[string]string{MarkerColumn: "XQ-1001", ColProductCode: "AB-1", ColQuantity: "3"}},
		{Fields: map[string]string{MarkerColumn: "XQ-1002", ColProductCode: "NX-2", ColQuantity: "1"}},
	}
}

func testPricing() []internal.PricingResult {
	return []internal.PricingResult{
		{PurchasePrice: 80, PurchaseDiscountPct: 10, SalesPrice: 99, SalesDiscountPct: 9.09},
		{PurchasePrice: 40, PurchaseDiscountPct: 5, SalesPrice: 120, SalesDiscountPct: 25},
	}
}

func TestBuildRecords(t *testing.T) {
	records := BuildRecords(testLines(), testPricing(), testWindow(), BuildParams{
		Reseller:     "ACME Corp",
		Currency:     "USD",
		ExchangeRate: 1.1,
	})

	if len(records) != 2 {
		t.Fatalf("len = %d, want 2", len(records))
	}

	first := records[0]
	if first.ExternalID != "ACME_Corp_XQ-1001_2026-03-15" {
		t.Fatalf("ExternalID = %q", first.ExternalID)
	}
	if first.Item != "AB-1" || records[1].Item != "NX-2" {
		t.Fatalf("Item order not preserved: %q %q", first.Item, records[1].Item)
	}
	if first.Quantity != "3" {
		t.Fatalf("Quantity = %q", first.Quantity)
	}
	if first.BusinessUnit != "Belgium" || first.Location != "Duffel : BE Sales Stock" {
		t.Fatalf("deployment constants wrong: %q %q", first.BusinessUnit, first.Location)
	}
	if first.Date != "2026-03-15" || first.Expires != "2026-03-20" {
		t.Fatalf("window fields wrong: %q %q", first.Date, first.Expires)
	}
	if first.SalesDiscount != "9%" || first.PurchaseDiscount != "10%" {
		t.Fatalf("discount rendering wrong: %q %q", first.SalesDiscount, first.PurchaseDiscount)
	}
	if first.SalesCurrency != "USD" || first.SalesExchangeRate != 1.1 {
		t.Fatalf("sales currency fields wrong: %q %v", first.SalesCurrency, first.SalesExchangeRate)
	}
}

func TestBuildRecordsEndUserSubstitution(t *testing.T) {
	records := BuildRecords(testLines()[:1], testPricing()[:1], testWindow(), BuildParams{
		Reseller: "ACME Corp",
		EndUser:  "Big End User",
		Currency: "EUR",
	})
	if records[0].ExternalID != "Big_End_User_XQ-1001_2026-03-15" {
		t.Fatalf("ExternalID = %q", records[0].ExternalID)
	}
	if records[0].Reseller != "ACME Corp" || records[0].EndUser != "Big End User" {
		t.Fatalf("party fields wrong: %+v", records[0])
	}
}

func TestBuildRecordsReservedFieldsStayEmpty(t *testing.T) {
	records := BuildRecords(testLines()[:1], testPricing()[:1], testWindow(), BuildParams{Reseller: "R", Currency: "EUR"})
	r := records[0]
	for name, value := range map[string]string{
		"ResellerContact":            r.ResellerContact,
		"ExpectedClose":              r.ExpectedClose,
		"ContractStart":              r.ContractStart,
		"ContractEnd":                r.ContractEnd,
		"Serial#Supported":           r.SerialSupported,
		"Rebate":                     r.Rebate,
		"Opportunity":                r.Opportunity,
		"Memo (Line)":                r.MemoLine,
		"Quote ID (Line)":            r.QuoteIDLine,
		"VendorSpecialPriceApproval": r.VendorSpecialPriceApproval,
	} {
		if value != "" {
			t.Fatalf("%s = %q, want empty", name, value)
		}
	}
}

func TestExportColumnCount(t *testing.T) {
	if len(ExportColumns) != 28 {
		t.Fatalf("len(ExportColumns) = %d, want 28", len(ExportColumns))
	}
	if len(recordValues(internal.ExportRecord{})) != len(ExportColumns) {
		t.Fatalf("recordValues length mismatch")
	}
}
