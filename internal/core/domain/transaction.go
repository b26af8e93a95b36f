package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is derived from a sale's AmountPaid.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPartial PaymentStatus = "PARTIAL"
	PaymentPaid    PaymentStatus = "PAID"
)

// PaymentStatusFor derives the payment status of a sale from the amount owed and the amount paid.
func PaymentStatusFor(amount, amountPaid decimal.Decimal) PaymentStatus {
	switch {
	case amountPaid.GreaterThanOrEqual(amount) && amountPaid.IsPositive():
		return PaymentPaid
	case amountPaid.IsPositive():
		return PaymentPartial
	default:
		return PaymentPending
	}
}

// Sale increases the party's debit side.
type Sale struct {
	SaleID        string          `json:"saleID"`
	WorkplaceID   string          `json:"workplaceID"`
	PartyID       string          `json:"partyID"`
	SaleDate      time.Time       `json:"saleDate"`
	Amount        decimal.Decimal `json:"amount"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	Reference     string          `json:"reference"` // invoice number
	AuditFields
}

// Outstanding returns the amount still owed on the sale (never negative).
func (s Sale) Outstanding() decimal.Decimal {
	out := s.Amount.Sub(s.AmountPaid)
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}

// Purchase is a debit to the business. It never participates in the party balance.
type Purchase struct {
	PurchaseID   string          `json:"purchaseID"`
	WorkplaceID  string          `json:"workplaceID"`
	PartyID      string          `json:"partyID"`
	PurchaseDate time.Time       `json:"purchaseDate"`
	Amount       decimal.Decimal `json:"amount"`
	Reference    string          `json:"reference"`
	AuditFields
}

// PaymentDirection distinguishes cash received from a party and cash paid out to a party.
type PaymentDirection string

const (
	// Receipt is cash received (cr_amt); it offsets the party's sales.
	Receipt PaymentDirection = "RECEIPT"
	// Issued is cash paid out by the business (dr_amt).
	Issued PaymentDirection = "ISSUED"
)

// Payment is a cashbook entry against a party.
type Payment struct {
	CashEntryID string           `json:"cashEntryID"`
	WorkplaceID string           `json:"workplaceID"`
	PartyID     string           `json:"partyID"`
	SaleID      string           `json:"saleID,omitempty"`
	EntryDate   time.Time        `json:"entryDate"`
	Amount      decimal.Decimal  `json:"amount"`
	Direction   PaymentDirection `json:"direction"`
	Narration   string           `json:"narration"`
	Mode        string           `json:"mode"` // cash, bank, upi, ...
	AuditFields
}

// VoucherType identifies the source row of a ledger entry.
type VoucherType string

const (
	VoucherSale     VoucherType = "SALE"
	VoucherPurchase VoucherType = "PURCHASE"
	VoucherReceipt  VoucherType = "RECEIPT"
	VoucherPayment  VoucherType = "PAYMENT"
)

// BalanceType is the D/C marker printed next to a running balance.
type BalanceType string

const (
	BalanceDebit  BalanceType = "D"
	BalanceCredit BalanceType = "C"
)

// LedgerEntry is one line of a party statement. It is a derived view; stored snapshots are
// disposable and never read back to compute balances.
type LedgerEntry struct {
	LedgerEntryID string          `json:"ledgerEntryID"`
	WorkplaceID   string          `json:"workplaceID"`
	PartyID       string          `json:"partyID"`
	EntryDate     time.Time       `json:"entryDate"`
	Narration     string          `json:"narration"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Balance       decimal.Decimal `json:"balance"`
	BalanceType   BalanceType     `json:"balanceType"`
	VoucherType   VoucherType     `json:"voucherType"`
	VoucherRef    string          `json:"voucherRef"`
	// Informational lines (purchases, issued payments) are shown for context and carry their
	// figure in Amount; they never move the running balance.
	Informational bool            `json:"informational"`
	Amount        decimal.Decimal `json:"amount"`
	CreatedAt     time.Time       `json:"createdAt"`
}
