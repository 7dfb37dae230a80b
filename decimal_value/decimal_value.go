package decimal_value

import (
	"github.com/shopspring/decimal"
)

var Null = DecimalOpt{IsNull: true}

// DecimalOpt is a decimal which may be absent, eg. the per-unit basis of an
// empty lot. Any arithmetic involving Null yields Null.
type DecimalOpt struct {
	Decimal decimal.Decimal
	IsNull  bool
}

func New(value decimal.Decimal) DecimalOpt {
	return DecimalOpt{Decimal: value}
}

func (d DecimalOpt) MulD(d2 decimal.Decimal) DecimalOpt {
	if d.IsNull {
		return Null
	}
	return DecimalOpt{Decimal: d.Decimal.Mul(d2)}
}

// DivD divides by d2. Division by zero is Null rather than a panic.
func (d DecimalOpt) DivD(d2 decimal.Decimal) DecimalOpt {
	if d.IsNull || d2.IsZero() {
		return Null
	}
	return DecimalOpt{Decimal: d.Decimal.Div(d2)}
}
