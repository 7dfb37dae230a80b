package outfmt

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cbtrack/cbtrack/gains"
)

func sampleTable() *gains.RenderTable {
	return &gains.RenderTable{
		Header: []string{"Year", "Capital Gains"},
		Rows: [][]string{
			{"2021", "$30.00"},
			{"Since inception", "$30.00"},
		},
		Notes: []string{"Total for 2021: $30.00"},
	}
}

func TestSTDWriter(t *testing.T) {
	rq := require.New(t)

	var buf bytes.Buffer
	w := NewSTDWriter(&buf)
	table := sampleTable()
	table.Errors = []error{errors.New("boom")}
	rq.NoError(w.PrintRenderTable(AggregateGains, "BTC", table))

	out := buf.String()
	rq.Contains(out, "[!] boom. Printing parsed information state:\n")
	rq.Contains(out, "Aggregate Gains\n")
	rq.Contains(out, "CAPITAL GAINS")
	rq.Contains(out, "Since inception")
	rq.Contains(out, "Total for 2021: $30.00\n")

	buf.Reset()
	rq.NoError(w.PrintRenderTable(Gains, "BTC", &gains.RenderTable{Header: []string{"Date"}}))
	rq.Contains(buf.String(), "Capital gains for BTC\n")

	buf.Reset()
	rq.NoError(w.PrintRenderTable(RemainingBasis, "BTC", &gains.RenderTable{Header: []string{"Acquired"}}))
	rq.Contains(buf.String(), "Remaining BTC basis\n")
}

func TestCSVWriter(t *testing.T) {
	rq := require.New(t)

	dir := filepath.Join(t.TempDir(), "out")
	w, err := NewCSVWriter(dir)
	rq.NoError(err)

	table := sampleTable()
	table.Footer = []string{"", "end"}
	rq.NoError(w.PrintRenderTable(AggregateGains, "BTC", table))
	contents, err := os.ReadFile(filepath.Join(dir, "aggregate-gains.csv"))
	rq.NoError(err)
	rq.Equal("Year,Capital Gains\n"+
		"2021,$30.00\n"+
		"Since inception,$30.00\n"+
		",end\n"+
		"Total for 2021: $30.00\n", string(contents))

	rq.NoError(w.PrintRenderTable(Gains, "BTC", sampleTable()))
	_, err = os.Stat(filepath.Join(dir, "btc-gains.csv"))
	rq.NoError(err)

	rq.NoError(w.PrintRenderTable(RemainingBasis, "BTC", sampleTable()))
	_, err = os.Stat(filepath.Join(dir, "btc-remaining-basis.csv"))
	rq.NoError(err)

	rq.Error(w.PrintRenderTable(OutputType(99), "BTC", sampleTable()))
}
