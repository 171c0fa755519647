// Package units converts quantities between a product's packaging unit (box)
// and the base unit everything is stored in (bottle).
package units

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Unit string

const (
	Bottle Unit = "bottle"
	Box    Unit = "box"
)

// Parse maps an input unit label to a Unit. The empty string defaults to
// Bottle so callers that never expose a unit selector keep base semantics.
func Parse(s string) (Unit, error) {
	switch Unit(s) {
	case Bottle, "":
		return Bottle, nil
	case Box:
		return Box, nil
	default:
		return "", fmt.Errorf("unknown unit %q", s)
	}
}

// ToBase converts a quantity and its per-unit price into bottles and a
// per-bottle price. Box input multiplies the quantity by unitsPerBox and
// divides the price by the same factor, so the total is unchanged.
func ToBase(u Unit, quantity int, unitPrice decimal.Decimal, unitsPerBox int) (int, decimal.Decimal) {
	if u != Box {
		return quantity, unitPrice
	}
	if unitsPerBox < 1 {
		unitsPerBox = 1
	}
	bottles := quantity * unitsPerBox
	perBottle := unitPrice.DivRound(decimal.NewFromInt(int64(unitsPerBox)), 2)
	return bottles, perBottle
}
