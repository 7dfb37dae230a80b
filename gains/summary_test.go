package gains

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cbtrack/cbtrack/lots"
)

func TestMakeSummaryTxs(t *testing.T) {
	rq := require.New(t)

	calc := runScenario(t,
		txSpec{1, Trade, "1.0", "10000", "X"},
		txSpec{2, Trade, "1.0", "20000", "Y"},
		txSpec{3, Trade, "-1.5", "45000", "Z"},
		txSpec{4, Income, "0.2", "7000", "pool"},
	)

	summary, warnings := MakeSummaryTxs(calc.RemainingLots(), "BTC")
	rq.Empty(warnings)
	rq.Len(summary, 2)

	rq.True(summary[0].Date.Equal(mkDate(2)))
	rq.Equal(Trade, summary[0].Type)
	rq.Equal("BTC", summary[0].Asset)
	requireDecEqual(t, "0.5", summary[0].Quantity)
	requireDecEqual(t, "10000", summary[0].FiatAmount)
	rq.Equal("Y", summary[0].Source)
	rq.Equal(SummaryDescription, summary[0].Description)

	rq.Equal("pool", summary[1].Source)

	// Disposing from the summary gives the same result as from the full history
	later := mkTx(txSpec{5, Trade, "-0.6", "30000", "Z"})
	orig := NewCalculator(lots.NewLedger(), "BTC")
	for _, lot := range calc.RemainingLots() {
		orig.Ledger().AddLot(lot.Quantity, lot.CostBasis, lot.Date, lot.Source)
	}
	rq.NoError(orig.Run(SortTxs([]*Tx{later})))

	fromSummary := NewCalculator(nil, "BTC")
	rq.NoError(fromSummary.Run(SortTxs(append(summary, later))))

	rq.Len(fromSummary.Gains(), 1)
	requireDecEqual(t, orig.Gains()[0].Gain.String(), fromSummary.Gains()[0].Gain)
	requireLotsEqual(t, orig.RemainingLots(), fromSummary.RemainingLots())
}

func TestMakeSummaryTxsCsvRoundTrip(t *testing.T) {
	rq := require.New(t)

	calc := runScenario(t,
		txSpec{1, Trade, "3", "100", "X"},
		txSpec{2, Trade, "-1", "50", "X"},
	)
	summary, _ := MakeSummaryTxs(calc.RemainingLots(), "BTC")

	txs, err := ParseTxCsv(strings.NewReader(ToCsvString(summary, CsvOptions{})), "summary.csv", CsvOptions{})
	rq.NoError(err)

	reloaded := NewCalculator(nil, "BTC")
	rq.NoError(reloaded.Run(SortTxs(txs)))
	requireLotsEqual(t, calc.RemainingLots(), reloaded.RemainingLots())
}

func TestMakeSummaryTxsZeroBasis(t *testing.T) {
	rq := require.New(t)

	ledger := lots.NewLedger()
	ledger.AddLot(dec("1"), dec("0"), mkDate(1), "airdrop")
	ledger.AddLot(dec("2"), dec("10"), mkDate(2), "X")

	summary, warnings := MakeSummaryTxs(ledger.Lots(), "BTC")
	rq.Len(summary, 1)
	rq.Equal("X", summary[0].Source)
	rq.Len(warnings, 1)
	rq.Contains(warnings[0], "has no cost basis")

	summary, warnings = MakeSummaryTxs(nil, "BTC")
	rq.Empty(summary)
	rq.Empty(warnings)
}
