package accounting

import (
	"time"

	"github.com/SscSPs/tradebook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CurrentEarningsAccountID labels the synthesised equity line carrying unclosed income less expenses.
const CurrentEarningsAccountID = "CURRENT_EARNINGS"

// BuildTrialBalance lists every non-zero account under its debit or credit column.
func BuildTrialBalance(balances []AccountBalance, asOf time.Time) domain.TrialBalanceReport {
	report := domain.TrialBalanceReport{
		AsOf:        DateOnly(asOf),
		Rows:        []domain.TrialBalanceRow{},
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, ab := range balances {
		closing := ab.Closing()
		if closing.IsZero() {
			continue
		}
		row := domain.TrialBalanceRow{
			AccountID:   ab.Account.AccountID,
			AccountName: ab.Account.Name,
			AccountType: ab.Account.ReportingType(closing),
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}
		if closing.IsPositive() {
			row.Debit = closing
			report.TotalDebit = report.TotalDebit.Add(closing)
		} else {
			row.Credit = closing.Abs()
			report.TotalCredit = report.TotalCredit.Add(row.Credit)
		}
		report.Rows = append(report.Rows, row)
	}
	report.IsBalanced = WithinEpsilon(report.TotalDebit, report.TotalCredit)
	return report
}

// BuildBalanceSheet places positive ASSET balances, negative LIABILITY and EQUITY balances
// (as magnitudes) and the current earnings line. Parties in credit are shown as liabilities.
func BuildBalanceSheet(balances []AccountBalance, asOf time.Time) domain.BalanceSheetReport {
	report := domain.BalanceSheetReport{
		AsOf:             DateOnly(asOf),
		Assets:           []domain.AccountAmount{},
		Liabilities:      []domain.AccountAmount{},
		Equity:           []domain.AccountAmount{},
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
	}
	earnings := decimal.Zero
	for _, ab := range balances {
		closing := ab.Closing()
		amount := domain.AccountAmount{AccountID: ab.Account.AccountID, Name: ab.Account.Name}
		switch ab.Account.ReportingType(closing) {
		case domain.Asset:
			if closing.IsPositive() {
				amount.NetAmount = closing
				report.Assets = append(report.Assets, amount)
				report.TotalAssets = report.TotalAssets.Add(closing)
			}
		case domain.Liability:
			if closing.IsNegative() {
				amount.NetAmount = closing.Abs()
				report.Liabilities = append(report.Liabilities, amount)
				report.TotalLiabilities = report.TotalLiabilities.Add(amount.NetAmount)
			}
		case domain.Equity:
			if closing.IsNegative() {
				amount.NetAmount = closing.Abs()
				report.Equity = append(report.Equity, amount)
				report.TotalEquity = report.TotalEquity.Add(amount.NetAmount)
			}
		case domain.Income, domain.Expense:
			earnings = earnings.Sub(closing)
		}
	}
	if !earnings.IsZero() {
		report.Equity = append(report.Equity, domain.AccountAmount{
			AccountID: CurrentEarningsAccountID,
			Name:      "Current earnings",
			NetAmount: earnings,
		})
		report.TotalEquity = report.TotalEquity.Add(earnings)
	}
	report.IsBalanced = WithinEpsilon(report.TotalAssets, report.TotalLiabilities.Add(report.TotalEquity))
	return report
}

// BuildProfitAndLoss uses period movements: credit-natured INCOME and debit-natured EXPENSE balances.
func BuildProfitAndLoss(balances []AccountBalance, from, to time.Time) domain.PAndLReport {
	report := domain.PAndLReport{
		From:          DateOnly(from),
		To:            DateOnly(to),
		Income:        []domain.AccountAmount{},
		Expenses:      []domain.AccountAmount{},
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	for _, ab := range balances {
		closing := ab.Closing()
		amount := domain.AccountAmount{AccountID: ab.Account.AccountID, Name: ab.Account.Name}
		switch ab.Account.EffectiveType() {
		case domain.Income:
			if closing.IsNegative() {
				amount.NetAmount = closing.Abs()
				report.Income = append(report.Income, amount)
				report.TotalIncome = report.TotalIncome.Add(amount.NetAmount)
			}
		case domain.Expense:
			if closing.IsPositive() {
				amount.NetAmount = closing
				report.Expenses = append(report.Expenses, amount)
				report.TotalExpenses = report.TotalExpenses.Add(closing)
			}
		}
	}
	report.NetProfit = report.TotalIncome.Sub(report.TotalExpenses)
	return report
}
