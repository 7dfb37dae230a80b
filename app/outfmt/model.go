package outfmt

import (
	"github.com/cbtrack/cbtrack/gains"
)

type OutputType int

const (
	Gains OutputType = iota
	AggregateGains
	RemainingBasis
)

type GainsWriter interface {
	PrintRenderTable(outType OutputType, name string, tableModel *gains.RenderTable) error
}
