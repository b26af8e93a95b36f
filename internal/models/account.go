package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditFields mirrors the audit columns present on every table.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
}

// Account is a row of the accounts table. Parties and ledger accounts share the table.
type Account struct {
	AccountID        string          `db:"account_id"`
	WorkplaceID      string          `db:"workplace_id"`
	Name             string          `db:"name"`
	AccountType      string          `db:"account_type"`
	IsParty          bool            `db:"is_party"`
	OpeningBalance   decimal.Decimal `db:"opening_balance"`
	OpeningDirection string          `db:"opening_direction"` // DEBIT or CREDIT
	CreditLimit      decimal.Decimal `db:"credit_limit"`
	CurrentBalance   decimal.Decimal `db:"current_balance"`
	BalanceDirection string          `db:"balance_direction"` // DEBTOR or CREDITOR
	AuditFields
}
