package accounting

import (
	"sort"
	"time"

	"github.com/SscSPs/tradebook/internal/apperrors"
	"github.com/SscSPs/tradebook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SystemAccounts names the non-party accounts that receive the contra side of every posting.
type SystemAccounts struct {
	Sales     string // INCOME
	Purchases string // EXPENSE
	Cash      string // ASSET
	Payables  string // LIABILITY
}

// DefaultSystemAccounts returns the account IDs used when none are configured.
func DefaultSystemAccounts() SystemAccounts {
	return SystemAccounts{
		Sales:     "SALES",
		Purchases: "PURCHASES",
		Cash:      "CASH",
		Payables:  "TRADE_PAYABLES",
	}
}

func (s SystemAccounts) definitions(workplaceID string) []domain.Account {
	return []domain.Account{
		{AccountID: s.Sales, WorkplaceID: workplaceID, Name: "Sales", AccountType: domain.Income},
		{AccountID: s.Purchases, WorkplaceID: workplaceID, Name: "Purchases", AccountType: domain.Expense},
		{AccountID: s.Cash, WorkplaceID: workplaceID, Name: "Cash in hand", AccountType: domain.Asset},
		{AccountID: s.Payables, WorkplaceID: workplaceID, Name: "Trade payables", AccountType: domain.Liability},
	}
}

// EnsureSystemAccounts appends a zero-opening definition for every system account missing from accounts.
func EnsureSystemAccounts(accounts []domain.Account, sys SystemAccounts, workplaceID string) []domain.Account {
	present := make(map[string]struct{}, len(accounts))
	for _, a := range accounts {
		present[a.AccountID] = struct{}{}
	}
	out := append([]domain.Account(nil), accounts...)
	for _, def := range sys.definitions(workplaceID) {
		if _, ok := present[def.AccountID]; !ok {
			out = append(out, def)
			present[def.AccountID] = struct{}{}
		}
	}
	return out
}

// Posting is one side of a double-entry line derived from a source row.
type Posting struct {
	AccountID   string
	Date        time.Time
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	VoucherType domain.VoucherType
	VoucherRef  string
}

func pair(drAccount, crAccount string, date time.Time, amount decimal.Decimal, vt domain.VoucherType, ref string) []Posting {
	return []Posting{
		{AccountID: drAccount, Date: DateOnly(date), Debit: amount, Credit: decimal.Zero, VoucherType: vt, VoucherRef: ref},
		{AccountID: crAccount, Date: DateOnly(date), Debit: decimal.Zero, Credit: amount, VoucherType: vt, VoucherRef: ref},
	}
}

// PostingsForSale: Dr party, Cr Sales.
func PostingsForSale(s domain.Sale, sys SystemAccounts) []Posting {
	return pair(s.PartyID, sys.Sales, s.SaleDate, s.Amount, domain.VoucherSale, s.SaleID)
}

// PostingsForPurchase: Dr Purchases, Cr Trade payables. The supplier's party account is untouched.
func PostingsForPurchase(p domain.Purchase, sys SystemAccounts) []Posting {
	return pair(sys.Purchases, sys.Payables, p.PurchaseDate, p.Amount, domain.VoucherPurchase, p.PurchaseID)
}

// PostingsForPayment: a receipt is Dr Cash, Cr party; an issued payment settles trade payables.
func PostingsForPayment(p domain.Payment, sys SystemAccounts) []Posting {
	if p.Direction == domain.Receipt {
		return pair(sys.Cash, p.PartyID, p.EntryDate, p.Amount, domain.VoucherReceipt, p.CashEntryID)
	}
	return pair(sys.Payables, sys.Cash, p.EntryDate, p.Amount, domain.VoucherPayment, p.CashEntryID)
}

// BuildPostings derives every posting for the given source rows.
func BuildPostings(sales []domain.Sale, purchases []domain.Purchase, payments []domain.Payment, sys SystemAccounts) []Posting {
	postings := make([]Posting, 0, 2*(len(sales)+len(purchases)+len(payments)))
	for _, s := range sales {
		postings = append(postings, PostingsForSale(s, sys)...)
	}
	for _, p := range purchases {
		postings = append(postings, PostingsForPurchase(p, sys)...)
	}
	for _, p := range payments {
		postings = append(postings, PostingsForPayment(p, sys)...)
	}
	return postings
}

// AccountBalance aggregates one account's opening figure and movements.
type AccountBalance struct {
	Account domain.Account
	Opening decimal.Decimal // signed, +Dr / -Cr
	Debit   decimal.Decimal
	Credit  decimal.Decimal
}

// Closing computes the closing balance for the account (positive = debit-natured).
func (a AccountBalance) Closing() decimal.Decimal {
	return a.Opening.Add(a.Debit).Sub(a.Credit)
}

// AggregateBalances folds postings into per-account balances, sorted by account ID.
// Openings are included only when withOpening is set (point-in-time reports).
// A posting against an unknown account is a consistency failure.
func AggregateBalances(accounts []domain.Account, postings []Posting, withOpening bool) ([]AccountBalance, error) {
	byID := make(map[string]*AccountBalance, len(accounts))
	for _, a := range accounts {
		ab := &AccountBalance{Account: a, Opening: decimal.Zero, Debit: decimal.Zero, Credit: decimal.Zero}
		if withOpening {
			ab.Opening = a.SignedOpening()
		}
		byID[a.AccountID] = ab
	}
	for _, p := range postings {
		ab, ok := byID[p.AccountID]
		if !ok {
			return nil, apperrors.Consistency("account", p.AccountID, "posting from "+string(p.VoucherType)+" "+p.VoucherRef+" references an unknown account")
		}
		ab.Debit = ab.Debit.Add(p.Debit)
		ab.Credit = ab.Credit.Add(p.Credit)
	}

	out := make([]AccountBalance, 0, len(byID))
	for _, ab := range byID {
		out = append(out, *ab)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Account.AccountID < out[j].Account.AccountID })
	return out, nil
}
