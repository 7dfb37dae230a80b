package gains

import (
	"github.com/shopspring/decimal"

	"github.com/cbtrack/cbtrack/date"
	"github.com/cbtrack/cbtrack/log"
	"github.com/cbtrack/cbtrack/lots"
	"github.com/cbtrack/cbtrack/util"
)

const traceTag = "fifo"

// CapitalGain is the outcome of one reportable disposal.
type CapitalGain struct {
	Type      TxType
	Quantity  decimal.Decimal
	Proceeds  decimal.Decimal
	CostBasis decimal.Decimal // Sum of the bases of Fragments
	Gain      decimal.Decimal // Proceeds - CostBasis. Negative for a loss.
	Fragments []lots.Fragment
	Date      date.Date
	Source    string

	// Nil when the disposal was not processed from a Tx
	Tx *Tx
}

// Calculator folds a sorted Tx list through a lots.Ledger, recording a
// CapitalGain for every reportable disposal.
type Calculator struct {
	asset  string
	ledger *lots.Ledger
	gains  []*CapitalGain

	lastDate date.Date
}

// NewCalculator tracks asset (empty to accept every row) using ledger, which
// may already hold lots. A nil ledger starts empty.
func NewCalculator(ledger *lots.Ledger, asset string) *Calculator {
	if ledger == nil {
		ledger = lots.NewLedger()
	}
	return &Calculator{asset: asset, ledger: ledger}
}

func (c *Calculator) Ledger() *lots.Ledger {
	return c.ledger
}

// RemainingLots is the basis which has not been disposed of yet.
func (c *Calculator) RemainingLots() []lots.Lot {
	return c.ledger.Lots()
}

// Gains returns the recorded gains, in disposal order.
func (c *Calculator) Gains() []*CapitalGain {
	return c.gains
}

func checkFiat(quantity, fiatAmount decimal.Decimal, d date.Date, source string) error {
	if fiatAmount.IsZero() && !quantity.IsZero() {
		return &InvalidTransactionError{
			Quantity: quantity, FiatAmount: fiatAmount, Date: d, Source: source,
		}
	}
	return nil
}

func (c *Calculator) ProcessAcquisition(
	quantity, fiatAmount decimal.Decimal, d date.Date, source string) error {

	if err := checkFiat(quantity, fiatAmount, d, source); err != nil {
		return err
	}
	c.ledger.AddLot(quantity, fiatAmount, d, source)
	return nil
}

// ProcessDisposal consumes quantity (a positive amount) from the ledger.
// Returns the recorded gain, or nil if txType only reduces basis.
func (c *Calculator) ProcessDisposal(
	txType TxType, quantity, fiatAmount decimal.Decimal, d date.Date, source string,
) (*CapitalGain, error) {
	return c.processDisposal(nil, txType, quantity, fiatAmount, d, source)
}

func (c *Calculator) processDisposal(
	tx *Tx, txType TxType, quantity, fiatAmount decimal.Decimal, d date.Date, source string,
) (*CapitalGain, error) {

	if err := checkFiat(quantity, fiatAmount, d, source); err != nil {
		return nil, err
	}

	fragments, err := c.ledger.Consume(quantity)
	if err != nil {
		return nil, err
	}

	if !txType.GainReportable() {
		log.Tracef(traceTag, "%s of %s reduced basis by %s",
			txType, quantity, lots.SumFragmentBases(fragments))
		return nil, nil
	}

	costBasis := lots.SumFragmentBases(fragments)
	gain := &CapitalGain{
		Type:      txType,
		Quantity:  quantity,
		Proceeds:  fiatAmount,
		CostBasis: costBasis,
		Gain:      fiatAmount.Sub(costBasis),
		Fragments: fragments,
		Date:      d,
		Source:    source,
		Tx:        tx,
	}
	c.gains = append(c.gains, gain)
	log.Tracef(traceTag, "%s of %s: proceeds %s, basis %s, gain %s",
		txType, quantity, gain.Proceeds, gain.CostBasis, gain.Gain)
	return gain, nil
}

// Process applies a single Tx. Any failure is returned as a *TxError.
func (c *Calculator) Process(tx *Tx) error {
	var err error
	switch Classify(tx, c.asset) {
	case Acquisition:
		err = c.ProcessAcquisition(tx.Quantity, tx.FiatAmount, tx.Date, tx.Source)
	case Disposal:
		_, err = c.processDisposal(
			tx, tx.Type, tx.Quantity.Abs(), tx.FiatAmount, tx.Date, tx.Source)
	default:
		log.Tracef(traceTag, "ignoring %s", tx)
	}
	if err != nil {
		return &TxError{Tx: tx, Err: err}
	}
	return nil
}

// Run processes txs in order, stopping at the first failure. Gains and lots
// from before the failure are kept, but should not be trusted.
//
// Run may be called more than once, as long as each batch starts no earlier
// than the previous one ended.
func (c *Calculator) Run(txs SortedTxs) error {
	for _, tx := range txs.Txs() {
		util.Assertf(!tx.Date.Before(c.lastDate),
			"Run: %s is earlier than the previous transaction (%s)", tx, c.lastDate)
		c.lastDate = tx.Date
		if err := c.Process(tx); err != nil {
			return err
		}
	}
	return nil
}
