package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/diewo77/jewelry-billing/internal/validation"
)

// ISVRate is the fixed 15% sales tax applied to the net subtotal.
var ISVRate = decimal.NewFromFloat(0.15)

// Line is the minimal pricing view of an invoice line.
type Line struct {
	Quantity     int
	UnitPrice    decimal.Decimal
	LineDiscount decimal.Decimal
}

// Totals are the derived monetary fields of a document. All values carry two
// fractional digits; Total == Subtotal - Discount + Tax holds exactly because
// Tax is computed from the already-discounted subtotal.
type Totals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Error reports invalid pricing input per field.
type Error struct {
	Violations validation.Violations
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid pricing input: %v", map[string]string(e.Violations))
}

// ComputeTotals derives subtotal, tax and total from the lines and a
// document-level discount. Each line contributes max(qty*unit - discount, 0);
// the document discount is applied to the sum, floored at zero; tax is 15% of
// the net, rounded to 2 decimals.
func ComputeTotals(lines []Line, documentDiscount decimal.Decimal) (Totals, error) {
	v := validation.Violations{}
	if documentDiscount.IsNegative() {
		v["discount"] = "must_not_be_negative"
	}
	subtotal := decimal.Zero
	for i, l := range lines {
		field := fmt.Sprintf("lines[%d]", i)
		if l.Quantity < 1 {
			v[field+".quantity"] = "below_minimum"
		}
		if l.UnitPrice.IsNegative() {
			v[field+".unit_price"] = "must_not_be_negative"
		}
		if l.LineDiscount.IsNegative() {
			v[field+".line_discount"] = "must_not_be_negative"
		}
		lineTotal := l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))).Sub(l.LineDiscount)
		if lineTotal.IsNegative() {
			lineTotal = decimal.Zero
		}
		subtotal = subtotal.Add(lineTotal)
	}
	if !v.Empty() {
		return Totals{}, &Error{Violations: v}
	}
	net := subtotal.Sub(documentDiscount)
	if net.IsNegative() {
		net = decimal.Zero
	}
	tax := net.Mul(ISVRate).Round(2)
	return Totals{
		Subtotal: subtotal.Round(2),
		Discount: documentDiscount.Round(2),
		Tax:      tax,
		Total:    net.Add(tax).Round(2),
	}, nil
}

// Consistent reports whether total == subtotal - discount + tax within the
// 0.01 tolerance used for client-supplied document totals.
func Consistent(subtotal, discount, tax, total decimal.Decimal) bool {
	expected := subtotal.Sub(discount).Add(tax)
	return total.Sub(expected).Abs().LessThanOrEqual(decimal.NewFromFloat(0.01))
}
