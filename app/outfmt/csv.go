package outfmt

import (
	"encoding/csv"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/cbtrack/cbtrack/gains"
)

type CSVWriter struct {
	OutDir string
}

func csvFileName(outType OutputType, name string) (string, error) {
	name = strings.ToLower(name)
	switch outType {
	case Gains:
		return fmt.Sprintf("%s-gains.csv", name), nil
	case AggregateGains:
		return "aggregate-gains.csv", nil
	case RemainingBasis:
		return fmt.Sprintf("%s-remaining-basis.csv", name), nil
	default:
		return "", fmt.Errorf("OutputType %v not implemented", outType)
	}
}

// PrintRenderTable implements GainsWriter.
func (w *CSVWriter) PrintRenderTable(outType OutputType, name string, tableModel *gains.RenderTable) error {
	fn, err := csvFileName(outType, name)
	if err != nil {
		return err
	}

	fp, err := os.Create(path.Join(w.OutDir, fn))
	if err != nil {
		return fmt.Errorf("Create file %q: %w", fn, err)
	}
	defer fp.Close()

	csvWriter := csv.NewWriter(fp)

	if err := csvWriter.Write(tableModel.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, row := range tableModel.Rows {
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	if len(tableModel.Footer) > 0 {
		if err := csvWriter.Write(tableModel.Footer); err != nil {
			return fmt.Errorf("write footer: %w", err)
		}
	}
	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("flush %q: %w", fn, err)
	}

	for _, note := range tableModel.Notes {
		fmt.Fprintln(fp, note)
	}
	for _, tableErr := range tableModel.Errors {
		fmt.Fprintf(fp, "Error: %v\n", tableErr)
	}

	return nil
}

func NewCSVWriter(outDir string) (*CSVWriter, error) {
	if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("Creating CSV output directory: %w", err)
	}
	return &CSVWriter{OutDir: outDir}, nil
}
