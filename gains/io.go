package gains

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cbtrack/cbtrack/date"
	"github.com/cbtrack/cbtrack/log"
)

const csvTraceTag = "csv"

type CsvOptions struct {
	// Go time layout of the Date column. Defaults to date.DefaultFormat
	DateFormat string
}

func (o CsvOptions) dateFormat() string {
	if o.DateFormat == "" {
		return date.DefaultFormat
	}
	return o.DateFormat
}

type ColParser func(string, *Tx, CsvOptions) error

const dateCol = "date"

var colParserMap = map[string]ColParser{
	dateCol:       parseDate,
	"amount":      parseAmount,
	"currency":    parseCurrency,
	"description": parseDescription,
	"usd amount":  parseUsdAmount,
	"type":        parseType,
	"source":      parseSource,
}

// Column order used when writing Txs back out
var csvWriteCols = []string{"Date", "Amount", "Currency", "Description", "USD Amount", "Type", "Source"}

var ColNames []string

func init() {
	ColNames = make([]string, 0, len(colParserMap))
	for name := range colParserMap {
		ColNames = append(ColNames, name)
	}
	sort.Strings(ColNames)
}

func sanitizeColName(col string) string {
	return strings.ToLower(strings.Join(strings.Fields(col), " "))
}

// ParseTxCsv reads a transaction export. Rows with an empty date are skipped,
// as exports use them for notes and subtotals.
func ParseTxCsv(reader io.Reader, csvDesc string, opts CsvOptions) ([]*Tx, error) {
	csvR := csv.NewReader(reader)
	csvR.FieldsPerRecord = -1
	records, err := csvR.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("Failed to parse CSV %s: %v", csvDesc, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("No rows found in %s", csvDesc)
	}

	header := records[0]
	colParsers := make([]ColParser, len(header))
	dateIdx := -1

	for i, col := range header {
		sanCol := sanitizeColName(col)
		if parser, ok := colParserMap[sanCol]; ok {
			colParsers[i] = parser
			if sanCol == dateCol {
				dateIdx = i
			}
		} else {
			fmt.Fprintf(os.Stderr, "Warning: Unrecognized column %q in %s\n", col, csvDesc)
			colParsers[i] = parseNothing
		}
	}
	if dateIdx == -1 {
		return nil, fmt.Errorf("No %q column found in %s", "Date", csvDesc)
	}

	txs := make([]*Tx, 0, len(records)-1)
	for i, record := range records[1:] {
		// Header is line 1
		lineNo := i + 2
		if dateIdx >= len(record) || strings.TrimSpace(record[dateIdx]) == "" {
			log.Tracef(csvTraceTag, "%s:%d has no date, skipping", csvDesc, lineNo)
			continue
		}

		tx := &Tx{File: csvDesc, Line: lineNo}
		for j, col := range record {
			if j >= len(colParsers) {
				break
			}
			if err := colParsers[j](strings.TrimSpace(col), tx, opts); err != nil {
				return nil, fmt.Errorf("Error parsing %s at line:col %d:%d: %v",
					csvDesc, lineNo, j+1, err)
			}
		}
		txs = append(txs, tx)
	}
	log.Fverbosef(os.Stderr, "Read %d transactions from %s\n", len(txs), csvDesc)
	return txs, nil
}

func ParseTxCsvFile(fname string, opts CsvOptions) ([]*Tx, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	return ParseTxCsv(fp, fname, opts)
}

func parseNothing(data string, tx *Tx, opts CsvOptions) error {
	return nil
}

func parseDate(data string, tx *Tx, opts CsvOptions) error {
	d, err := date.Parse(opts.dateFormat(), data)
	if err != nil {
		return err
	}
	tx.Date = d
	return nil
}

func parseAmount(data string, tx *Tx, opts CsvOptions) error {
	if data == "" {
		tx.Quantity = decimal.Zero
		return nil
	}
	q, err := decimal.NewFromString(data)
	if err != nil {
		return fmt.Errorf("Error parsing amount %q: %v", data, err)
	}
	tx.Quantity = q
	return nil
}

func parseCurrency(data string, tx *Tx, opts CsvOptions) error {
	tx.Asset = strings.ToUpper(data)
	return nil
}

func parseDescription(data string, tx *Tx, opts CsvOptions) error {
	tx.Description = data
	return nil
}

// ParseDollars accepts values like "$1,234.56", "-$20" and "". Empty is zero.
func ParseDollars(data string) (decimal.Decimal, error) {
	s := strings.TrimSpace(data)
	if s == "" {
		return decimal.Zero, nil
	}
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimSpace(strings.TrimPrefix(s, "-"))
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if strings.ContainsAny(s, "-+") {
		return decimal.Zero, fmt.Errorf("Invalid dollar amount %q", data)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("Invalid dollar amount %q", data)
	}
	if neg {
		d = d.Neg()
	}
	return d, nil
}

// The sign of the fiat column only mirrors the direction of the trade, which
// Amount already carries.
func parseUsdAmount(data string, tx *Tx, opts CsvOptions) error {
	d, err := ParseDollars(data)
	if err != nil {
		return err
	}
	tx.FiatAmount = d.Abs()
	return nil
}

func parseType(data string, tx *Tx, opts CsvOptions) error {
	tx.TypeLabel = data
	tx.Type = ParseTxType(data)
	return nil
}

func parseSource(data string, tx *Tx, opts CsvOptions) error {
	tx.Source = data
	return nil
}

// ToCsvString writes txs in the layout ParseTxCsv reads with the same opts.
// Time of day is lost if the date format does not include it.
func ToCsvString(txs []*Tx, opts CsvOptions) string {
	var buf bytes.Buffer
	csvW := csv.NewWriter(&buf)
	csvW.Write(csvWriteCols)
	for _, tx := range txs {
		csvW.Write([]string{
			tx.Date.Format(opts.dateFormat()),
			tx.Quantity.String(),
			tx.Asset,
			tx.Description,
			"$" + tx.FiatAmount.String(),
			tx.TypeString(),
			tx.Source,
		})
	}
	csvW.Flush()
	return buf.String()
}
