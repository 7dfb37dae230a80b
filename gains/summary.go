package gains

import (
	"fmt"

	"github.com/cbtrack/cbtrack/lots"
)

const SummaryDescription = "Summary"

// MakeSummaryTxs returns one acquisition Tx per remaining lot, in the same
// order, so that a new ledger can start from the state of an old one without
// replaying its history. Lots keep their acquisition dates, so FIFO order is
// unchanged when later transactions are appended.
//
// A lot with no basis cannot be read back in (it would be rejected as having
// no fiat amount), so it is left out and reported in the returned warnings.
func MakeSummaryTxs(remaining []lots.Lot, asset string) ([]*Tx, []string) {
	var summaryTxs []*Tx
	var warnings []string

	for _, lot := range remaining {
		if lot.CostBasis.IsZero() {
			warnings = append(warnings, fmt.Sprintf(
				"Lot of %s %s from %s has no cost basis and was not summarized",
				lot.Quantity, asset, lot.Date))
			continue
		}
		summaryTxs = append(summaryTxs, &Tx{
			Date:        lot.Date,
			Type:        Trade,
			Asset:       asset,
			Quantity:    lot.Quantity,
			FiatAmount:  lot.CostBasis,
			Source:      lot.Source,
			Description: SummaryDescription,
		})
	}
	return summaryTxs, warnings
}
