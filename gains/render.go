package gains

import (
	"fmt"
	"os"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	decimal_opt "github.com/cbtrack/cbtrack/decimal_value"
	"github.com/cbtrack/cbtrack/lots"
	"github.com/cbtrack/cbtrack/util"
)

type _PrintHelper struct {
	PrintAllDecimals bool
}

var displayNanEnvSetting util.Optional[string]

func NaNString() string {
	if !displayNanEnvSetting.Present() {
		displayNanEnvSetting.Set(os.Getenv("DISPLAY_NAN"))
	}
	if displayNanEnvSetting.MustGet() == "" || displayNanEnvSetting.MustGet() == "0" {
		return "-"
	}
	return "NaN"
}

// go-money counts cents in an int64. Amounts from here up are printed
// without thousands separators instead.
var maxMoneyDollars = decimal.New(1, 16)

func plainDollars(val decimal.Decimal, places int32) string {
	s := val.Abs().String()
	if places >= 0 {
		s = val.Abs().StringFixed(places)
	}
	if val.IsNegative() {
		return "-$" + s
	}
	return "$" + s
}

// DollarStr renders as "$1,234.56" or "-$5.00". With PrintAllDecimals, the
// value is not rounded to cents, and has no thousands separators.
func (h _PrintHelper) DollarStr(val decimal_opt.DecimalOpt) string {
	if val.IsNull {
		return NaNString()
	}
	if h.PrintAllDecimals {
		return plainDollars(val.Decimal, -1)
	}
	if val.Decimal.Abs().GreaterThanOrEqual(maxMoneyDollars) {
		return plainDollars(val.Decimal, 2)
	}
	cents := val.Decimal.Shift(2).Round(0).IntPart()
	return money.New(cents, money.USD).Display()
}

func (h _PrintHelper) Dollars(val decimal.Decimal) string {
	return h.DollarStr(decimal_opt.New(val))
}

func (h _PrintHelper) QuantityStr(val decimal.Decimal) string {
	if h.PrintAllDecimals {
		return val.String()
	}
	return val.StringFixed(8)
}

type RenderTable struct {
	Header []string
	Rows   [][]string
	Footer []string
	Notes  []string
	Errors []error
}

func (h _PrintHelper) fragmentStr(f lots.Fragment, asset string) string {
	return fmt.Sprintf("%s %s for %s on %s at %s",
		h.QuantityStr(f.Quantity), asset, h.Dollars(f.CostBasis), f.Date.DayString(), f.Source)
}

// CostBasisDetail describes each fragment on its own line, prefixed by the
// share of proceeds allocated to it by quantity.
func CostBasisDetail(
	fragments []lots.Fragment, proceeds decimal.Decimal, asset string, renderFullValues bool) string {

	ph := _PrintHelper{PrintAllDecimals: renderFullValues}
	total := lots.SumFragmentQuantities(fragments)
	lines := make([]string, 0, len(fragments))
	for _, f := range fragments {
		share := decimal_opt.New(proceeds).MulD(f.Quantity).DivD(total)
		lines = append(lines, fmt.Sprintf("%s from %s", ph.DollarStr(share), ph.fragmentStr(f, asset)))
	}
	return strings.Join(lines, "\n")
}

func yearTotalsFooter(gains *CumulativeCapitalGains, ph _PrintHelper) (string, string) {
	years := gains.CapitalGainsYearTotalsKeysSorted()
	labels := []string{"Total"}
	vals := []string{ph.Dollars(gains.CapitalGainsTotal)}
	for _, year := range years {
		labels = append(labels, fmt.Sprintf("%d", year))
		vals = append(vals, ph.Dollars(gains.CapitalGainsYearTotals[year]))
	}
	return strings.Join(labels, "\n"), strings.Join(vals, "\n")
}

func RenderGainsTableModel(
	gains []*CapitalGain, cumulative *CumulativeCapitalGains, asset string,
	renderFullValues bool) *RenderTable {

	table := &RenderTable{}
	table.Header = []string{"Date", "Note", "Proceeds", "Cost Basis", "Capital Gain",
		"Cost Basis Detail"}

	ph := _PrintHelper{PrintAllDecimals: renderFullValues}

	for _, g := range gains {
		note := fmt.Sprintf("%s of %s %s for %s on %s",
			g.Type, ph.QuantityStr(g.Quantity), asset, ph.Dollars(g.Proceeds), g.Source)
		row := []string{
			g.Date.String(),
			note,
			ph.Dollars(g.Proceeds),
			ph.Dollars(g.CostBasis),
			ph.Dollars(g.Gain),
			CostBasisDetail(g.Fragments, g.Proceeds, asset, renderFullValues),
		}
		table.Rows = append(table.Rows, row)
	}

	totalLabel, totalVals := yearTotalsFooter(cumulative, ph)
	table.Footer = []string{"", "", "", totalLabel, totalVals, ""}
	return table
}

func RenderRemainingBasisTableModel(
	remaining []lots.Lot, asset string, renderFullValues bool) *RenderTable {

	table := &RenderTable{}
	table.Header = []string{"Acquired", "Source", "Quantity", "Cost Basis", "Basis/Unit"}

	ph := _PrintHelper{PrintAllDecimals: renderFullValues}

	totalQty := decimal.Zero
	totalBasis := decimal.Zero
	for _, lot := range remaining {
		table.Rows = append(table.Rows, []string{
			lot.Date.String(),
			lot.Source,
			ph.QuantityStr(lot.Quantity) + " " + asset,
			ph.Dollars(lot.CostBasis),
			ph.DollarStr(lot.PerUnitBasis()),
		})
		totalQty = totalQty.Add(lot.Quantity)
		totalBasis = totalBasis.Add(lot.CostBasis)
	}

	avgBasis := decimal_opt.New(totalBasis).DivD(totalQty)
	table.Footer = []string{"Total", "",
		ph.QuantityStr(totalQty) + " " + asset, ph.Dollars(totalBasis), ph.DollarStr(avgBasis)}
	return table
}

/*
Generates a RenderTable that will render out to this:
| Year             | Capital Gains |
+------------------+---------------+
| 2000             | xxxx.xx       |
| 2001             | xxxx.xx       |
| Since inception  | xxxx.xx       |

With a note for the total of totalYear.
*/
func RenderAggregateCapitalGains(
	gains *CumulativeCapitalGains, totalYear int, renderFullValues bool) *RenderTable {

	table := &RenderTable{}
	table.Header = []string{"Year", "Capital Gains"}

	ph := _PrintHelper{PrintAllDecimals: renderFullValues}

	for _, year := range gains.CapitalGainsYearTotalsKeysSorted() {
		table.Rows = append(table.Rows,
			[]string{fmt.Sprintf("%d", year), ph.Dollars(gains.CapitalGainsYearTotals[year])})
	}
	table.Rows = append(table.Rows,
		[]string{"Since inception", ph.Dollars(gains.CapitalGainsTotal)})

	table.Notes = append(table.Notes,
		fmt.Sprintf("Total for %d: %s", totalYear, ph.Dollars(gains.YearTotal(totalYear))))
	return table
}
