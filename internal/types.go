package internal

import "time"

// RawGrid is one uploaded spreadsheet as read from disk: row-major cell text,
// rectangular-padded, with no header interpretation applied.
type RawGrid [][]string

// HeaderAnchor marks the row inside a RawGrid where the real data table
// starts. ColumnNames are the stringified cells of that row in order, blanks
// normalized to "".
type HeaderAnchor struct {
	RowIndex    int
	ColumnNames []string
}

// QuoteLine is one data row below the header anchor, keyed by column name.
type QuoteLine struct {
	RowIndex int
	Fields   map[string]string
}

// Field returns the trimmed value of the named column, or "" when absent.
func (l QuoteLine) Field(name string) string {
	return l.Fields[name]
}

// PricingInputs are the numeric fields parsed out of one QuoteLine. Parse
// failures on individual cells degrade to zero upstream, so every field here
// is always populated.
type PricingInputs struct {
	ListPrice        float64
	SalePrice        float64
	TotalDiscountPct float64
	ProductCode      string
	Quantity         float64
}

// PricingResult holds the computed purchase/sales side of one quote line.
// Monetary values are rounded to two decimals; the discount percentages are
// kept unrounded and only snapped to whole percents when rendered.
type PricingResult struct {
	PurchasePrice       float64
	PurchaseDiscountPct float64
	SalesPrice          float64
	SalesDiscountPct    float64
}

// ValidityWindow is the quote-date/expiry pair shared by every line of one
// run.
type ValidityWindow struct {
	QuoteDate   time.Time
	ExpiresDate time.Time
}

// ExportRecord is one row of the fixed 28-column quote upload schema.
// Reserved fields stay empty for manual completion downstream.
type ExportRecord struct {
	ExternalID                 string
	Title                      string
	Currency                   string
	Date                       string
	Reseller                   string
	ResellerContact            string
	Expires                    string
	ExpectedClose              string
	EndUser                    string
	BusinessUnit               string
	Item                       string
	Quantity                   string
	SalesPrice                 float64
	SalesDiscount              string
	PurchasePrice              float64
	PurchaseDiscount           string
	Location                   string
	ContractStart              string
	ContractEnd                string
	SerialSupported            string
	Rebate                     string
	Opportunity                string
	MemoLine                   string
	QuoteIDLine                string
	VendorSpecialPriceApproval string
	VendorSpecialPriceLine     string
	SalesCurrency              string
	SalesExchangeRate          float64
}

// UploadRow is the bookkeeping record of one processed (or failed) upload.
type UploadRow struct {
	ID           int64
	RunID        string
	Filename     string
	Status       string
	Reseller     string
	EndUser      string
	Currency     string
	ExchangeRate float64
	MarginPct    float64
	RowCount     int
	OutputRef    string
	Error        string
	CreatedAt    string
}

const (
	UploadStatusReceived  = "received"
	UploadStatusProcessed = "processed"
	UploadStatusFailed    = "failed"
)
