package gains

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cbtrack/cbtrack/date"
)

type TxType int

const (
	OtherType TxType = iota // Any label we do not track, eg. Transfer
	Trade
	Income
	Gift
	Fee
	LossAdjustment
)

func (t TxType) String() string {
	switch t {
	case Trade:
		return "Trade"
	case Income:
		return "Income"
	case Gift:
		return "Gift"
	case Fee:
		return "Fee"
	case LossAdjustment:
		return "Loss Adjustment"
	default:
		return "Other"
	}
}

// ParseTxType never fails. Unknown labels are OtherType, which the
// calculator ignores.
func ParseTxType(label string) TxType {
	switch strings.ToLower(strings.Join(strings.Fields(label), " ")) {
	case "trade":
		return Trade
	case "income":
		return Income
	case "gift":
		return Gift
	case "fee":
		return Fee
	case "loss adjustment":
		return LossAdjustment
	default:
		return OtherType
	}
}

func (t TxType) canAcquire() bool {
	return t == Trade || t == Income || t == Gift
}

func (t TxType) canDispose() bool {
	return t == Trade || t == Gift || t == Fee || t == LossAdjustment
}

// GainReportable is false for disposals which only reduce basis, like fees
// paid in the asset, write-offs and gifts given away.
func (t TxType) GainReportable() bool {
	return t != Fee && t != LossAdjustment && t != Gift
}

type Tx struct {
	Date        date.Date
	Type        TxType
	TypeLabel   string // As written in the ledger
	Asset       string
	Quantity    decimal.Decimal // Positive for acquisitions, negative for disposals
	FiatAmount  decimal.Decimal // Never negative
	Source      string
	Description string

	// Where the Tx was read from, for error messages
	File string
	Line int
}

func (tx *Tx) TypeString() string {
	if tx.Type == OtherType && tx.TypeLabel != "" {
		return tx.TypeLabel
	}
	return tx.Type.String()
}

func (tx *Tx) Location() string {
	if tx.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", tx.File, tx.Line)
}

func (tx *Tx) String() string {
	s := fmt.Sprintf("%s %s of %s %s for $%s at %s",
		tx.Date, tx.TypeString(), tx.Quantity, tx.Asset, tx.FiatAmount, tx.Source)
	if loc := tx.Location(); loc != "" {
		s += " (" + loc + ")"
	}
	return s
}

type Classification int

const (
	Ignored Classification = iota
	Acquisition
	Disposal
)

func (c Classification) String() string {
	switch c {
	case Acquisition:
		return "acquisition"
	case Disposal:
		return "disposal"
	default:
		return "ignored"
	}
}

// Classify decides what a Tx does to the lots of asset. Rows for any other
// asset are ignored; an empty asset matches every row.
//
// Income is only ever an acquisition. An Income row with a negative quantity
// is ignored.
func Classify(tx *Tx, asset string) Classification {
	if asset != "" && !strings.EqualFold(tx.Asset, asset) {
		return Ignored
	}
	if tx.Type.canAcquire() && tx.Quantity.IsPositive() {
		return Acquisition
	}
	if tx.Type.canDispose() && tx.Quantity.IsNegative() {
		return Disposal
	}
	return Ignored
}

// SortedTxs is a list of Txs in non-decreasing date order. It can only be
// made by SortTxs.
type SortedTxs struct {
	txs []*Tx
}

func (s SortedTxs) Txs() []*Tx {
	return s.txs
}

func (s SortedTxs) Len() int {
	return len(s.txs)
}

// SortTxs sorts a copy of txs by date. Txs on the same instant keep the order
// they were given in.
func SortTxs(txs []*Tx) SortedTxs {
	sorted := make([]*Tx, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return SortedTxs{sorted}
}
