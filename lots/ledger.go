package lots

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/cbtrack/cbtrack/date"
	"github.com/cbtrack/cbtrack/log"
	"github.com/cbtrack/cbtrack/util"
)

const traceTag = "fifo"

// InsufficientBasisError is returned by Consume when the open lots hold less
// than the requested quantity. The ledger is left untouched in that case.
type InsufficientBasisError struct {
	Requested decimal.Decimal
	Short     decimal.Decimal
}

func (e *InsufficientBasisError) Error() string {
	return fmt.Sprintf("missing cost basis for %s of the %s requested",
		e.Short, e.Requested)
}

// Ledger holds the open lots in acquisition order, oldest first. That order
// is the FIFO consumption order.
//
// Lots must be added in chronological order; the ledger does not sort.
type Ledger struct {
	lots []Lot
}

func NewLedger() *Ledger {
	return &Ledger{}
}

func (l *Ledger) AddLot(quantity, costBasis decimal.Decimal, d date.Date, source string) {
	util.Assertf(quantity.IsPositive(),
		"AddLot: lot quantity must be positive (got %s)", quantity)
	l.lots = append(l.lots, Lot{Quantity: quantity, CostBasis: costBasis, Date: d, Source: source})
	log.Tracef(traceTag, "add lot %d: %s", len(l.lots)-1, l.lots[len(l.lots)-1])
}

// Consume takes quantity from the oldest lots first and returns what was
// taken from each, in consumption order. A lot which is only partly needed is
// split in proportion to its quantity, so the taken fragment and the lot left
// behind keep the same basis per unit.
func (l *Ledger) Consume(quantity decimal.Decimal) ([]Fragment, error) {
	util.Assertf(!quantity.IsNegative(),
		"Consume: quantity must not be negative (got %s)", quantity)

	remaining := quantity
	var fragments []Fragment
	kept := make([]Lot, 0, len(l.lots))

	for _, lot := range l.lots {
		switch {
		case !remaining.IsPositive():
			kept = append(kept, lot)
		case remaining.GreaterThanOrEqual(lot.Quantity):
			fragments = append(fragments, lot.wholeFragment())
			remaining = remaining.Sub(lot.Quantity)
		default:
			matchedBasis := lot.CostBasis.Mul(remaining).Div(lot.Quantity)
			fragments = append(fragments, Fragment{
				Quantity: remaining, CostBasis: matchedBasis,
				Date: lot.Date, Source: lot.Source,
			})
			// Residual takes the difference, so the two pieces always sum to the
			// original basis exactly.
			kept = append(kept, Lot{
				Quantity: lot.Quantity.Sub(remaining), CostBasis: lot.CostBasis.Sub(matchedBasis),
				Date: lot.Date, Source: lot.Source,
			})
			remaining = decimal.Zero
		}
	}

	if remaining.IsPositive() {
		log.Tracef(traceTag, "consume %s: short by %s", quantity, remaining)
		return nil, &InsufficientBasisError{Requested: quantity, Short: remaining}
	}

	log.Tracef(traceTag, "consume %s: %d fragments, %d lots left",
		quantity, len(fragments), len(kept))
	l.lots = kept
	return fragments, nil
}

// Lots returns a copy of the open lots, oldest first.
func (l *Ledger) Lots() []Lot {
	lots := make([]Lot, len(l.lots))
	copy(lots, l.lots)
	return lots
}

func (l *Ledger) Len() int {
	return len(l.lots)
}

// Outstanding is the total quantity held across all open lots.
func (l *Ledger) Outstanding() decimal.Decimal {
	return lo.Reduce(l.lots, func(total decimal.Decimal, lot Lot, _ int) decimal.Decimal {
		return total.Add(lot.Quantity)
	}, decimal.Zero)
}

func (l *Ledger) TotalBasis() decimal.Decimal {
	return lo.Reduce(l.lots, func(total decimal.Decimal, lot Lot, _ int) decimal.Decimal {
		return total.Add(lot.CostBasis)
	}, decimal.Zero)
}
