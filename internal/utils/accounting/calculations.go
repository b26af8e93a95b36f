package accounting

import (
	"github.com/SscSPs/tradebook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Epsilon absorbs rounding drift in "is balanced" comparisons.
var Epsilon = decimal.RequireFromString("0.01")

// WithinEpsilon reports whether |a - b| < Epsilon.
func WithinEpsilon(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(Epsilon)
}

// SplitSigned turns a signed party figure into magnitude and direction.
// Negative means the business owes the party (Creditor); zero is reported as Debtor.
func SplitSigned(signed decimal.Decimal) (decimal.Decimal, domain.BalanceDirection) {
	if signed.IsNegative() {
		return signed.Abs(), domain.Creditor
	}
	return signed, domain.Debtor
}

// BalanceTypeOf returns the D/C marker for a signed running balance.
func BalanceTypeOf(signed decimal.Decimal) domain.BalanceType {
	if signed.IsNegative() {
		return domain.BalanceCredit
	}
	return domain.BalanceDebit
}

// SumSales totals sale amounts.
func SumSales(sales []domain.Sale) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sales {
		total = total.Add(s.Amount)
	}
	return total
}

// SumReceipts totals payments in the Receipt direction; issued payments are ignored.
func SumReceipts(payments []domain.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		if p.Direction == domain.Receipt {
			total = total.Add(p.Amount)
		}
	}
	return total
}
