package accounting

import (
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/tradebook/internal/apperrors"
	"github.com/SscSPs/tradebook/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func amt(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func fixtureAccounts() []domain.Account {
	return []domain.Account{
		{AccountID: "P1", Name: "Ravi Traders", IsParty: true},
		{AccountID: "P2", Name: "Supplier Co", IsParty: true},
	}
}

func TestEnsureSystemAccounts(t *testing.T) {
	sys := DefaultSystemAccounts()
	existing := append(fixtureAccounts(), domain.Account{AccountID: "CASH", Name: "Cash", AccountType: domain.Asset, OpeningBalance: amt(50), OpeningDirection: domain.Debit})

	out := EnsureSystemAccounts(existing, sys, "w1")

	assert.Len(t, out, 6)
	for _, a := range out {
		if a.AccountID == "CASH" {
			assert.True(t, a.OpeningBalance.Equal(amt(50)), "existing system account is kept as is")
		}
	}
}

func TestBuildPostings_EveryVoucherBalances(t *testing.T) {
	sys := DefaultSystemAccounts()
	postings := BuildPostings(
		[]domain.Sale{{SaleID: "S1", PartyID: "P1", SaleDate: mustDate("2024-04-10"), Amount: amt(1000)}},
		[]domain.Purchase{{PurchaseID: "PU1", PartyID: "P2", PurchaseDate: mustDate("2024-04-11"), Amount: amt(300)}},
		[]domain.Payment{
			{CashEntryID: "C1", PartyID: "P1", EntryDate: mustDate("2024-04-12"), Amount: amt(400), Direction: domain.Receipt},
			{CashEntryID: "C2", PartyID: "P2", EntryDate: mustDate("2024-04-13"), Amount: amt(300), Direction: domain.Issued},
		},
		sys,
	)
	require.Len(t, postings, 8)

	debits, credits := decimal.Zero, decimal.Zero
	for _, p := range postings {
		debits = debits.Add(p.Debit)
		credits = credits.Add(p.Credit)
		assert.NotEqual(t, "P2", p.AccountID, "purchases and issued payments never touch the supplier party")
	}
	assert.True(t, debits.Equal(credits))
}

func TestAggregateBalances_UnknownAccount(t *testing.T) {
	postings := PostingsForSale(domain.Sale{SaleID: "S1", PartyID: "GHOST", Amount: amt(10)}, DefaultSystemAccounts())
	accounts := EnsureSystemAccounts(fixtureAccounts(), DefaultSystemAccounts(), "w1")

	_, err := AggregateBalances(accounts, postings, true)
	assert.True(t, errors.Is(err, apperrors.ErrConsistency))
}

func TestReports_BalancedAfterTradeCycle(t *testing.T) {
	sys := DefaultSystemAccounts()
	accounts := EnsureSystemAccounts(append(fixtureAccounts(),
		domain.Account{AccountID: "CAP", Name: "Capital", AccountType: domain.Equity, OpeningBalance: amt(500), OpeningDirection: domain.Credit},
		domain.Account{AccountID: "BANK", Name: "Bank", AccountType: domain.Asset, OpeningBalance: amt(500), OpeningDirection: domain.Debit},
	), sys, "w1")
	postings := BuildPostings(
		[]domain.Sale{{SaleID: "S1", PartyID: "P1", SaleDate: mustDate("2024-04-10"), Amount: amt(1000)}},
		[]domain.Purchase{{PurchaseID: "PU1", PartyID: "P2", PurchaseDate: mustDate("2024-04-11"), Amount: amt(300)}},
		[]domain.Payment{
			{CashEntryID: "C1", PartyID: "P1", EntryDate: mustDate("2024-04-12"), Amount: amt(400), Direction: domain.Receipt},
			{CashEntryID: "C2", PartyID: "P2", EntryDate: mustDate("2024-04-13"), Amount: amt(300), Direction: domain.Issued},
		},
		sys,
	)

	balances, err := AggregateBalances(accounts, postings, true)
	require.NoError(t, err)

	tb := BuildTrialBalance(balances, mustDate("2024-04-30"))
	assert.True(t, tb.IsBalanced)
	assert.True(t, tb.TotalDebit.Equal(tb.TotalCredit))

	bs := BuildBalanceSheet(balances, mustDate("2024-04-30"))
	assert.True(t, bs.IsBalanced)
	// P1 600 + CASH 100 + BANK 500
	assert.True(t, bs.TotalAssets.Equal(amt(1200)), bs.TotalAssets.String())
	assert.True(t, bs.TotalLiabilities.IsZero())
	// capital 500 + earnings 700
	assert.True(t, bs.TotalEquity.Equal(amt(1200)), bs.TotalEquity.String())

	movements, err := AggregateBalances(accounts, postings, false)
	require.NoError(t, err)
	pl := BuildProfitAndLoss(movements, mustDate("2024-04-01"), mustDate("2024-04-30"))
	assert.True(t, pl.TotalIncome.Equal(amt(1000)))
	assert.True(t, pl.TotalExpenses.Equal(amt(300)))
	assert.True(t, pl.NetProfit.Equal(amt(700)))
}

func TestBuildTrialBalance_OpeningsOnly(t *testing.T) {
	accounts := []domain.Account{
		{AccountID: "A", Name: "Asset", AccountType: domain.Asset, OpeningBalance: amt(500), OpeningDirection: domain.Debit},
		{AccountID: "L", Name: "Liability", AccountType: domain.Liability, OpeningBalance: amt(500), OpeningDirection: domain.Credit},
		{AccountID: "Z", Name: "Dormant", AccountType: domain.Asset},
	}
	balances, err := AggregateBalances(accounts, nil, true)
	require.NoError(t, err)

	tb := BuildTrialBalance(balances, mustDate("2024-04-01"))

	require.Len(t, tb.Rows, 2, "zero balances are omitted")
	assert.True(t, tb.TotalDebit.Equal(amt(500)))
	assert.True(t, tb.TotalCredit.Equal(amt(500)))
	assert.True(t, tb.IsBalanced)
}

func TestBuildTrialBalance_FlagsImbalance(t *testing.T) {
	accounts := []domain.Account{
		{AccountID: "A", Name: "Asset", AccountType: domain.Asset, OpeningBalance: amt(500), OpeningDirection: domain.Debit},
	}
	balances, err := AggregateBalances(accounts, nil, true)
	require.NoError(t, err)

	assert.False(t, BuildTrialBalance(balances, mustDate("2024-04-01")).IsBalanced)
}

func TestBuildBalanceSheet_PartyInCreditIsLiability(t *testing.T) {
	sys := DefaultSystemAccounts()
	accounts := EnsureSystemAccounts(fixtureAccounts(), sys, "w1")
	postings := BuildPostings(
		[]domain.Sale{{SaleID: "S1", PartyID: "P1", SaleDate: mustDate("2024-04-10"), Amount: amt(1000)}},
		nil,
		[]domain.Payment{{CashEntryID: "C1", PartyID: "P1", EntryDate: mustDate("2024-04-12"), Amount: amt(1200), Direction: domain.Receipt}},
		sys,
	)

	balances, err := AggregateBalances(accounts, postings, true)
	require.NoError(t, err)

	bs := BuildBalanceSheet(balances, mustDate("2024-04-30"))
	assert.True(t, bs.IsBalanced)
	assert.True(t, bs.TotalAssets.Equal(amt(1200)), bs.TotalAssets.String())
	require.Len(t, bs.Liabilities, 1)
	assert.Equal(t, "P1", bs.Liabilities[0].AccountID)
	assert.True(t, bs.Liabilities[0].NetAmount.Equal(amt(200)), bs.Liabilities[0].NetAmount.String())
	assert.True(t, bs.TotalEquity.Equal(amt(1000)), bs.TotalEquity.String())

	tb := BuildTrialBalance(balances, mustDate("2024-04-30"))
	for _, row := range tb.Rows {
		if row.AccountID == "P1" {
			assert.Equal(t, domain.Liability, row.AccountType)
			assert.True(t, row.Credit.Equal(amt(200)))
		}
	}
}
