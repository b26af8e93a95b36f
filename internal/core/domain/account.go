package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// DefaultPartyAccountType is used for trading parties when no type is recorded. Reports
// reclassify a party by its balance direction, see ReportingType.
const DefaultPartyAccountType = Asset

// EntryDirection indicates whether an opening figure sits on the Debit or the Credit side.
type EntryDirection string

const (
	Debit  EntryDirection = "DEBIT"
	Credit EntryDirection = "CREDIT"
)

// BalanceDirection indicates who owes whom for a party balance.
type BalanceDirection string

const (
	// Debtor means the party owes the business.
	Debtor BalanceDirection = "DEBTOR"
	// Creditor means the business owes the party.
	Creditor BalanceDirection = "CREDITOR"
)

// Account represents a party (customer/supplier) or a ledger account within a workplace.
// CurrentBalance/BalanceDirection are a cache of the Balance Calculator result; they are never
// read back as a source of truth.
type Account struct {
	AccountID        string           `json:"accountID"`
	WorkplaceID      string           `json:"workplaceID"`
	Name             string           `json:"name"`
	AccountType      AccountType      `json:"accountType"`
	IsParty          bool             `json:"isParty"`
	OpeningBalance   decimal.Decimal  `json:"openingBalance"` // magnitude
	OpeningDirection EntryDirection   `json:"openingDirection"`
	CreditLimit      decimal.Decimal  `json:"creditLimit"` // 0 = unlimited
	CurrentBalance   decimal.Decimal  `json:"currentBalance"`
	BalanceDirection BalanceDirection `json:"balanceDirection"`
	AuditFields
}

// SignedOpening returns the opening balance as a signed figure: positive for Debit, negative for Credit.
func (a Account) SignedOpening() decimal.Decimal {
	if a.OpeningDirection == Credit {
		return a.OpeningBalance.Abs().Neg()
	}
	return a.OpeningBalance.Abs()
}

// EffectiveType returns the account type, falling back to the party default.
func (a Account) EffectiveType() AccountType {
	if a.AccountType == "" {
		return DefaultPartyAccountType
	}
	return a.AccountType
}

// ReportingType classifies an account for the balance sheet given its signed closing balance.
// A trading party is a receivable (ASSET) while it owes the business and a payable (LIABILITY)
// once it is in credit. Other accounts keep their effective type.
func (a Account) ReportingType(signed decimal.Decimal) AccountType {
	t := a.EffectiveType()
	if !a.IsParty || (t != Asset && t != Liability) {
		return t
	}
	if signed.IsNegative() {
		return Liability
	}
	return Asset
}
