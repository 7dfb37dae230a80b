package app

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cbtrack/cbtrack/app/outfmt"
	"github.com/cbtrack/cbtrack/date"
	"github.com/cbtrack/cbtrack/gains"
	"github.com/cbtrack/cbtrack/log"
	"github.com/cbtrack/cbtrack/lots"
	"github.com/cbtrack/cbtrack/util"
)

const (
	DefaultAsset = "BTC"

	defaultInitialLotSource = "initial"

	InitialLotDescription = "Initial lot"
)

/* Takes a list of initial lot strings, each formatted as:
 * QTY:BASIS:YYYY-MM-DD[:SOURCE]. Eg. 0.5:12000.00:2019-06-01:Coinbase
 *
 * Lots are returned oldest first.
 */
func ParseInitialLots(initialLots []string) ([]lots.Lot, error) {
	parsed := make([]lots.Lot, 0, len(initialLots))
	for _, opt := range initialLots {
		parts := strings.SplitN(opt, ":", 4)
		if len(parts) < 3 {
			return nil, fmt.Errorf("Invalid lot format '%s'", opt)
		}
		qty, err := decimal.NewFromString(parts[0])
		if err != nil {
			return nil, fmt.Errorf("Invalid quantity format '%s'. %v", opt, err)
		}
		if !qty.IsPositive() {
			return nil, fmt.Errorf("Invalid quantity in '%s'. Must be positive", opt)
		}
		basis, err := gains.ParseDollars(parts[1])
		if err != nil {
			return nil, fmt.Errorf("Invalid basis format '%s'. %v", opt, err)
		}
		if !basis.IsPositive() {
			return nil, fmt.Errorf("Invalid basis in '%s'. Must be positive", opt)
		}
		d, err := date.Parse(date.ISODayFormat, parts[2])
		if err != nil {
			return nil, fmt.Errorf("Invalid date format '%s'. %v", opt, err)
		}
		source := defaultInitialLotSource
		if len(parts) == 4 && parts[3] != "" {
			source = parts[3]
		}
		parsed = append(parsed, lots.Lot{Quantity: qty, CostBasis: basis, Date: d, Source: source})
	}
	sort.SliceStable(parsed, func(i, j int) bool {
		return parsed[i].Date.Before(parsed[j].Date)
	})
	return parsed, nil
}

// initialLotTxs turns initial lots into acquisitions, so they are sorted into
// the ledger by date along with everything else. They come first in the
// returned order, so a CSV row on the same instant is matched after them.
func initialLotTxs(initialLots []lots.Lot, asset string) []*gains.Tx {
	txs := make([]*gains.Tx, 0, len(initialLots))
	for _, lot := range initialLots {
		txs = append(txs, &gains.Tx{
			Date:        lot.Date,
			Type:        gains.Trade,
			Asset:       asset,
			Quantity:    lot.Quantity,
			FiatAmount:  lot.CostBasis,
			Source:      lot.Source,
			Description: InitialLotDescription,
		})
	}
	return txs
}

type DescribedReader struct {
	Desc   string
	Reader io.Reader
}

type Options struct {
	// Only rows for this asset are used. Empty uses every row.
	Asset            string
	CsvOptions       gains.CsvOptions
	InitialLots      []lots.Lot
	RenderFullValues bool

	// Year noted under the aggregate gains. Defaults to last year.
	TotalYear util.Optional[int]
}

func (o *Options) totalYear() int {
	return o.TotalYear.GetOr(date.Today().Year() - 1)
}

func (o *Options) assetName() string {
	return util.Tern(o.Asset == "", "all", o.Asset)
}

type AppRenderResult struct {
	GainsTable          *gains.RenderTable
	RemainingBasisTable *gains.RenderTable
	AggregateGainsTable *gains.RenderTable

	Gains          []*gains.CapitalGain
	RemainingLots  []lots.Lot
	CumulativeGain *gains.CumulativeCapitalGains
}

// HasErrors is true if processing stopped early. The tables then only cover
// the transactions before the failure.
func (r *AppRenderResult) HasErrors() bool {
	return len(r.GainsTable.Errors) > 0
}

func readAllTxs(csvFileReaders []DescribedReader, opts gains.CsvOptions) ([]*gains.Tx, error) {
	allTxs := make([]*gains.Tx, 0, 20)
	for _, csvReader := range csvFileReaders {
		txs, err := gains.ParseTxCsv(csvReader.Reader, csvReader.Desc, opts)
		if err != nil {
			return nil, err
		}
		allTxs = append(allTxs, txs...)
	}
	return allTxs, nil
}

// RunAppToRenderModel reads all the transactions and runs them through the
// calculator. An error is only returned if the input could not be read.
// Processing failures are attached to the gains table.
func RunAppToRenderModel(
	csvFileReaders []DescribedReader, opts Options) (*AppRenderResult, error) {

	csvTxs, err := readAllTxs(csvFileReaders, opts.CsvOptions)
	if err != nil {
		return nil, err
	}
	allTxs := append(initialLotTxs(opts.InitialLots, opts.Asset), csvTxs...)

	calc := gains.NewCalculator(nil, opts.Asset)
	runErr := calc.Run(gains.SortTxs(allTxs))

	asset := opts.assetName()
	cumulative := gains.CalcCumulativeCapitalGains(calc.Gains())
	res := &AppRenderResult{
		GainsTable: gains.RenderGainsTableModel(
			calc.Gains(), cumulative, asset, opts.RenderFullValues),
		RemainingBasisTable: gains.RenderRemainingBasisTableModel(
			calc.RemainingLots(), asset, opts.RenderFullValues),
		AggregateGainsTable: gains.RenderAggregateCapitalGains(
			cumulative, opts.totalYear(), opts.RenderFullValues),
		Gains:          calc.Gains(),
		RemainingLots:  calc.RemainingLots(),
		CumulativeGain: cumulative,
	}
	if runErr != nil {
		res.GainsTable.Errors = append(res.GainsTable.Errors, runErr)
	}
	log.Verbosef("Processed %d transactions: %d gains, %d lots remaining\n",
		len(allTxs), len(res.Gains), len(res.RemainingLots))
	return res, nil
}

func RunApp(
	csvFileReaders []DescribedReader, opts Options,
	writer outfmt.GainsWriter, errPrinter log.ErrorPrinter) (*AppRenderResult, error) {

	res, err := RunAppToRenderModel(csvFileReaders, opts)
	if err != nil {
		errPrinter.Ln("Error:", err)
		return nil, err
	}

	asset := opts.assetName()
	for _, out := range []struct {
		outType outfmt.OutputType
		table   *gains.RenderTable
	}{
		{outfmt.Gains, res.GainsTable},
		{outfmt.RemainingBasis, res.RemainingBasisTable},
		{outfmt.AggregateGains, res.AggregateGainsTable},
	} {
		if err := writer.PrintRenderTable(out.outType, asset, out.table); err != nil {
			errPrinter.Ln("Error:", err)
			return res, err
		}
	}

	if res.HasErrors() {
		return res, res.GainsTable.Errors[0]
	}
	return res, nil
}

// WriteSummary writes the remaining lots as a transaction CSV which can be
// read back in place of the full history, with dates in the layout of opts.
func WriteSummary(
	w io.Writer, remaining []lots.Lot, asset string, opts gains.CsvOptions,
	errPrinter log.ErrorPrinter) error {

	summaryTxs, warnings := gains.MakeSummaryTxs(remaining, asset)
	for _, warning := range warnings {
		errPrinter.Ln("Warning:", warning)
	}
	_, err := io.WriteString(w, gains.ToCsvString(summaryTxs, opts))
	return err
}

func WriteSummaryFile(
	fname string, remaining []lots.Lot, asset string, opts gains.CsvOptions,
	errPrinter log.ErrorPrinter) error {

	fp, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("Create summary file %q: %w", fname, err)
	}
	defer fp.Close()
	return WriteSummary(fp, remaining, asset, opts, errPrinter)
}
