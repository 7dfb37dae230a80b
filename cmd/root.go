package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cbtrack/cbtrack/app"
	"github.com/cbtrack/cbtrack/app/outfmt"
	"github.com/cbtrack/cbtrack/date"
	"github.com/cbtrack/cbtrack/gains"
	"github.com/cbtrack/cbtrack/log"
)

var Asset = app.DefaultAsset
var CsvDateFormat = date.DefaultFormat
var InitialLotOpt []string
var TotalYear = 0
var PrintFullValues = false
var CsvOutputDir = ""
var SummarizeTo = ""

func makeOptions() (app.Options, error) {
	initialLots, err := app.ParseInitialLots(InitialLotOpt)
	if err != nil {
		return app.Options{}, fmt.Errorf("Error parsing --initial-lot: %w", err)
	}
	opts := app.Options{
		Asset:            strings.ToUpper(Asset),
		CsvOptions:       gains.CsvOptions{DateFormat: CsvDateFormat},
		InitialLots:      initialLots,
		RenderFullValues: PrintFullValues,
	}
	if TotalYear != 0 {
		opts.TotalYear.Set(TotalYear)
	}
	return opts, nil
}

func makeWriter() (outfmt.GainsWriter, error) {
	if CsvOutputDir != "" {
		return outfmt.NewCSVWriter(CsvOutputDir)
	}
	return outfmt.NewSTDWriter(os.Stdout), nil
}

func runRootCmd(cmd *cobra.Command, args []string) {
	errPrinter := &log.StderrErrorPrinter{}

	opts, err := makeOptions()
	if err != nil {
		errPrinter.Ln(err)
		os.Exit(1)
	}

	writer, err := makeWriter()
	if err != nil {
		errPrinter.Ln("Error:", err)
		os.Exit(1)
	}

	csvReaders := make([]app.DescribedReader, 0, len(args))
	for _, csvName := range args {
		fp, err := os.Open(csvName)
		if err != nil {
			errPrinter.Ln("Error:", err)
			os.Exit(1)
		}
		defer fp.Close()
		csvReaders = append(csvReaders, app.DescribedReader{Desc: csvName, Reader: fp})
	}

	res, err := app.RunApp(csvReaders, opts, writer, errPrinter)
	if res == nil {
		os.Exit(1)
	}

	if SummarizeTo != "" {
		// A summary of a partial run would silently drop basis
		if err != nil {
			errPrinter.Ln("Not writing summary, as processing did not complete")
		} else if sumErr := app.WriteSummaryFile(
			SummarizeTo, res.RemainingLots, opts.Asset, opts.CsvOptions, errPrinter); sumErr != nil {
			errPrinter.Ln("Error:", sumErr)
			err = sumErr
		}
	}

	if err != nil {
		os.Exit(1)
	}
}

func cmdName() string {
	binName := os.Args[0]
	return filepath.Base(binName)
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   cmdName() + " [CSV_FILE ...]",
	Short: "FIFO capital gains calculator for crypto transactions",
	Long: fmt.Sprintf(
		`A cli tool which calculates realized capital gains on an asset (BTC by
default), matching each disposal against the oldest acquisitions first (FIFO).

Each CSV provided should contain a header with these column names:
%s
Only Date is required. Rows with an empty date are skipped.

Type is one of Trade, Income, Gift, Fee or Loss Adjustment. Rows of any other
type, or for another currency, are ignored. Amount is positive for acquisitions
and negative for disposals. USD Amount is the fiat value of the whole row.

Fees, loss adjustments and gifts given away reduce the remaining basis, but
are not reported as gains.
 `, strings.Join(gains.ColNames, ", ")),
	Run:     runRootCmd,
	Args:    cobra.MinimumNArgs(1),
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags, which are global to the app cli
	RootCmd.PersistentFlags().BoolVarP(&log.VerboseEnabled, "verbose", "v", false,
		"Print verbose output")
	RootCmd.PersistentFlags().StringVar(&CsvDateFormat, "date-fmt", date.DefaultFormat,
		"Format of how dates appear in the csv file. Must represent Jan 2, 2006 15:04:05")

	RootCmd.Flags().StringVarP(&Asset, "asset", "a", app.DefaultAsset,
		"Currency to calculate gains for. Empty to treat every row as the same asset.")
	RootCmd.Flags().StringArrayVarP(&InitialLotOpt, "initial-lot", "i", []string{},
		"Lots acquired outside of the CSV files, at the start of the given day. "+
			"Formatted as QTY:BASIS:YYYY-MM-DD[:SOURCE]. Eg. 0.5:12000.00:2019-06-01:Coinbase . "+
			"May be provided multiple times.")
	RootCmd.Flags().IntVarP(&TotalYear, "year", "y", 0,
		"Year to print the capital gains total for. Defaults to last year.")
	RootCmd.Flags().BoolVar(&PrintFullValues, "print-full-values", false,
		"Print values without rounding to cents or satoshis.")
	RootCmd.Flags().StringVarP(&CsvOutputDir, "csv-output-dir", "o", "",
		"Write tables as CSV files to this directory instead of printing them.")
	RootCmd.Flags().StringVar(&SummarizeTo, "summarize-to", "",
		"Write the remaining lots to this file as a transaction CSV, which can be "+
			"used in place of the full history next time. Dates use --date-fmt.")
}
