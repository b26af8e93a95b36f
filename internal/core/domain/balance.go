package domain

import (
	"time"

	"github.com/SscSPs/tradebook/internal/apperrors"
	"github.com/shopspring/decimal"
)

// PartyBalance is the Balance Calculator result for one party as of a date.
type PartyBalance struct {
	PartyID          string           `json:"partyID"`
	AsOf             time.Time        `json:"asOf"`
	OpeningBalance   decimal.Decimal  `json:"openingBalance"` // signed, +Dr / -Cr
	TotalSales       decimal.Decimal  `json:"totalSales"`
	TotalPayments    decimal.Decimal  `json:"totalPayments"`
	CurrentBalance   decimal.Decimal  `json:"currentBalance"` // magnitude
	BalanceDirection BalanceDirection `json:"balanceDirection"`
}

// Signed returns the balance as a signed figure: positive for Debtor, negative for Creditor.
func (b PartyBalance) Signed() decimal.Decimal {
	if b.BalanceDirection == Creditor {
		return b.CurrentBalance.Neg()
	}
	return b.CurrentBalance
}

// PartyStatement is the Ledger Builder result for one party over a date range.
type PartyStatement struct {
	PartyID        string          `json:"partyID"`
	PartyName      string          `json:"partyName"`
	FinancialYear  string          `json:"financialYear"`
	From           time.Time       `json:"from"`
	To             time.Time       `json:"to"`
	OpeningBalance decimal.Decimal `json:"openingBalance"` // magnitude
	OpeningType    BalanceType     `json:"openingType"`
	ClosingBalance decimal.Decimal `json:"closingBalance"` // magnitude
	ClosingType    BalanceType     `json:"closingType"`
	Entries        []LedgerEntry   `json:"entries"`
	TotalDebits    decimal.Decimal `json:"totalDebits"`
	TotalCredits   decimal.Decimal `json:"totalCredits"`
}

// ClosingDirection maps the closing D/C marker onto a party balance direction.
func (s PartyStatement) ClosingDirection() BalanceDirection {
	if s.ClosingType == BalanceCredit {
		return Creditor
	}
	return Debtor
}

// CreditCheckResult is the advisory outcome of a credit limit evaluation.
type CreditCheckResult struct {
	PartyID          string           `json:"partyID"`
	Allowed          bool             `json:"allowed"`
	CreditLimit      decimal.Decimal  `json:"creditLimit"`
	CurrentExposure  decimal.Decimal  `json:"currentExposure"`
	ProposedAmount   decimal.Decimal  `json:"proposedAmount"`
	BalanceDirection BalanceDirection `json:"balanceDirection"`
	Message          string           `json:"message"`
}

// Violation returns a PolicyViolation error when the check was denied, nil otherwise.
func (r CreditCheckResult) Violation() error {
	if r.Allowed {
		return nil
	}
	return apperrors.PolicyViolation("party", r.PartyID, r.CurrentExposure.String(), r.Message)
}

// RecordPaymentInput is what a caller supplies to record a receipt against a sale.
type RecordPaymentInput struct {
	SaleID      string
	Amount      decimal.Decimal
	PaymentDate time.Time
	Narration   string
	Mode        string
}

// PaymentResult is the outcome of a successful RecordPayment.
type PaymentResult struct {
	Success      bool            `json:"success"`
	CashEntryID  string          `json:"cashEntryID"`
	Sale         Sale            `json:"sale"`
	Balance      PartyBalance    `json:"balance"`
	Overpaid     bool            `json:"overpaid"`
	Excess       decimal.Decimal `json:"excess"`
	AmountPosted decimal.Decimal `json:"amountPosted"`
}
