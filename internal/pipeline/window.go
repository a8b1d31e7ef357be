package pipeline

import (
	"time"

	"quotebridge/internal"
)

// ComputeWindow derives the quote date and expiry date for one run. USD
// quotes expire at month end; all other currencies follow the distributor's
// billing-cycle cutoffs: the 10th, the 20th, or the last day of the month,
// whichever comes next.
func ComputeWindow(today time.Time, currency string) internal.ValidityWindow {
	expires := lastDayOfMonth(today)
	if currency != "USD" {
		switch d := today.Day(); {
		case d <= 10:
			expires = time.Date(today.Year(), today.Month(), 10, 0, 0, 0, 0, today.Location())
		case d <= 20:
			expires = time.Date(today.Year(), today.Month(), 20, 0, 0, 0, 0, today.Location())
		}
	}
	return internal.ValidityWindow{
		QuoteDate:   time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location()),
		ExpiresDate: expires,
	}
}

func lastDayOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location())
}
