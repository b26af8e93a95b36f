package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is a row of the sales table.
type Sale struct {
	SaleID        string          `db:"sale_id"`
	WorkplaceID   string          `db:"workplace_id"`
	PartyID       string          `db:"party_id"`
	SaleDate      time.Time       `db:"sale_date"`
	Amount        decimal.Decimal `db:"amount"`
	AmountPaid    decimal.Decimal `db:"amount_paid"`
	PaymentStatus string          `db:"payment_status"`
	Reference     string          `db:"reference"`
	AuditFields
}

// Purchase is a row of the purchases table.
type Purchase struct {
	PurchaseID   string          `db:"purchase_id"`
	WorkplaceID  string          `db:"workplace_id"`
	PartyID      string          `db:"party_id"`
	PurchaseDate time.Time       `db:"purchase_date"`
	Amount       decimal.Decimal `db:"amount"`
	Reference    string          `db:"reference"`
	AuditFields
}

// CashEntry is a row of the cashbook. Exactly one of CrAmt (money received) and DrAmt
// (money paid out) is non-zero.
type CashEntry struct {
	CashEntryID string          `db:"cash_entry_id"`
	WorkplaceID string          `db:"workplace_id"`
	PartyID     string          `db:"party_id"`
	SaleID      *string         `db:"sale_id"`
	EntryDate   time.Time       `db:"entry_date"`
	CrAmt       decimal.Decimal `db:"cr_amt"`
	DrAmt       decimal.Decimal `db:"dr_amt"`
	Narration   string          `db:"narration"`
	Mode        string          `db:"mode"`
	AuditFields
}

// LedgerEntry is a row of the ledger_entries snapshot table.
type LedgerEntry struct {
	LedgerEntryID string          `db:"ledger_entry_id"`
	WorkplaceID   string          `db:"workplace_id"`
	PartyID       string          `db:"party_id"`
	EntryDate     time.Time       `db:"entry_date"`
	FinancialYear string          `db:"financial_year"`
	Narration     string          `db:"narration"`
	Debit         decimal.Decimal `db:"debit"`
	Credit        decimal.Decimal `db:"credit"`
	Balance       decimal.Decimal `db:"balance"`
	BalanceType   string          `db:"balance_type"`
	VoucherType   string          `db:"voucher_type"`
	VoucherRef    string          `db:"voucher_ref"`
	CreatedAt     time.Time       `db:"created_at"`
}
