package lots

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/cbtrack/cbtrack/date"
	decimal_opt "github.com/cbtrack/cbtrack/decimal_value"
)

// Lot is an open acquisition of the tracked asset.
type Lot struct {
	Quantity  decimal.Decimal
	CostBasis decimal.Decimal // Total basis of Quantity, not per unit
	Date      date.Date
	Source    string
}

// PerUnitBasis is Null for a lot with no quantity.
func (l Lot) PerUnitBasis() decimal_opt.DecimalOpt {
	return decimal_opt.New(l.CostBasis).DivD(l.Quantity)
}

func (l Lot) String() string {
	return fmt.Sprintf("%s for %s on %s at %s", l.Quantity, l.CostBasis, l.Date, l.Source)
}

func (l Lot) wholeFragment() Fragment {
	return Fragment{Quantity: l.Quantity, CostBasis: l.CostBasis, Date: l.Date, Source: l.Source}
}

// Fragment is the part of a lot consumed by a single disposal.
type Fragment struct {
	Quantity  decimal.Decimal
	CostBasis decimal.Decimal
	Date      date.Date
	Source    string
}

func (f Fragment) String() string {
	return fmt.Sprintf("%s for %s on %s at %s", f.Quantity, f.CostBasis, f.Date, f.Source)
}

func SumFragmentQuantities(fragments []Fragment) decimal.Decimal {
	return lo.Reduce(fragments, func(total decimal.Decimal, f Fragment, _ int) decimal.Decimal {
		return total.Add(f.Quantity)
	}, decimal.Zero)
}

func SumFragmentBases(fragments []Fragment) decimal.Decimal {
	return lo.Reduce(fragments, func(total decimal.Decimal, f Fragment, _ int) decimal.Decimal {
		return total.Add(f.CostBasis)
	}, decimal.Zero)
}
