package gains

import (
	"sort"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type CumulativeCapitalGains struct {
	CapitalGainsTotal      decimal.Decimal
	CapitalGainsYearTotals map[int]decimal.Decimal
}

func (g *CumulativeCapitalGains) CapitalGainsYearTotalsKeysSorted() []int {
	years := lo.Keys(g.CapitalGainsYearTotals)
	sort.Ints(years)
	return years
}

// YearTotal is zero for a year without any disposals.
func (g *CumulativeCapitalGains) YearTotal(year int) decimal.Decimal {
	if total, ok := g.CapitalGainsYearTotals[year]; ok {
		return total
	}
	return decimal.Zero
}

// CalcCumulativeCapitalGains buckets gains by the calendar year of their
// disposal.
func CalcCumulativeCapitalGains(gains []*CapitalGain) *CumulativeCapitalGains {
	capGainsTotal := decimal.Zero
	capGainsYearTotals := map[int]decimal.Decimal{}

	for _, g := range gains {
		capGainsTotal = capGainsTotal.Add(g.Gain)
		year := g.Date.Year()
		capGainsYearTotals[year] = capGainsYearTotals[year].Add(g.Gain)
	}

	return &CumulativeCapitalGains{capGainsTotal, capGainsYearTotals}
}
