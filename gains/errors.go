package gains

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cbtrack/cbtrack/date"
)

// InvalidTransactionError is returned for an acquisition or disposal which
// moves some of the asset but carries no fiat value. Its lot would have no
// basis per unit, or its gain would be wrong.
type InvalidTransactionError struct {
	Quantity   decimal.Decimal
	FiatAmount decimal.Decimal
	Date       date.Date
	Source     string
}

func (e *InvalidTransactionError) Error() string {
	return fmt.Sprintf("fiat amount of transaction must not be zero "+
		"(%s units on %s at %s)", e.Quantity, e.Date, e.Source)
}

// TxError ties a processing failure to the Tx which caused it.
type TxError struct {
	Tx  *Tx
	Err error
}

func (e *TxError) Error() string {
	return fmt.Sprintf("In transaction %s: %v", e.Tx, e.Err)
}

func (e *TxError) Unwrap() error {
	return e.Err
}
