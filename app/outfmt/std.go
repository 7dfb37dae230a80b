package outfmt

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/cbtrack/cbtrack/gains"
)

type STDWriter struct {
	w io.Writer
}

func NewSTDWriter(w io.Writer) *STDWriter {
	return &STDWriter{
		w: w,
	}
}

// Write implements io.Writer.
func (w *STDWriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	if err != nil {
		panic(fmt.Errorf("STDWriter.Write: %w", err))
	}
	return n, err
}

func title(outType OutputType, name string) string {
	switch outType {
	case Gains:
		return fmt.Sprintf("Capital gains for %s", name)
	case AggregateGains:
		return "Aggregate Gains"
	case RemainingBasis:
		return fmt.Sprintf("Remaining %s basis", name)
	default:
		panic(fmt.Sprint("OutputType ", outType, " is not implemented"))
	}
}

// PrintRenderTable implements GainsWriter.
func (w *STDWriter) PrintRenderTable(outType OutputType, name string, tableModel *gains.RenderTable) error {
	for _, err := range tableModel.Errors {
		fmt.Fprintf(w, "[!] %v. Printing parsed information state:\n", err)
	}
	fmt.Fprintf(w, "%s\n", title(outType, name))

	table := tablewriter.NewWriter(w)
	table.SetHeader(tableModel.Header)
	table.SetBorder(false)
	table.SetRowLine(true)
	// Cost basis detail is already split into lines
	table.SetAutoWrapText(false)

	for _, row := range tableModel.Rows {
		table.Append(row)
	}

	if len(tableModel.Footer) > 0 {
		table.SetFooter(tableModel.Footer)
	}

	table.Render()

	for _, note := range tableModel.Notes {
		fmt.Fprintln(w, note)
	}

	fmt.Fprintln(w, "")
	return nil
}
