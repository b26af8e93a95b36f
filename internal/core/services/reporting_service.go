package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/tradebook/internal/apperrors"
	"github.com/SscSPs/tradebook/internal/core/domain"
	portsrepo "github.com/SscSPs/tradebook/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/tradebook/internal/core/ports/services"
	"github.com/SscSPs/tradebook/internal/utils/accounting"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	serviceOptions
	store portsrepo.TransactionStore
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(store portsrepo.TransactionStore, opts ...ServiceOption) portssvc.ReportingService {
	return &reportingService{
		serviceOptions: applyServiceOptions(opts),
		store:          store,
	}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// balances derives per-account balances from every source row inside the filter.
func (s *reportingService) balances(ctx context.Context, workplaceID string, filter domain.TransactionFilter, withOpening bool) ([]accounting.AccountBalance, error) {
	accounts, err := s.store.ListAccounts(ctx, workplaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	sales, err := s.store.ListSales(ctx, workplaceID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	purchases, err := s.store.ListPurchases(ctx, workplaceID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	payments, err := s.store.ListPayments(ctx, workplaceID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	accounts = accounting.EnsureSystemAccounts(accounts, s.systemAccounts, workplaceID)
	postings := accounting.BuildPostings(sales, purchases, payments, s.systemAccounts)
	return accounting.AggregateBalances(accounts, postings, withOpening)
}

func (s *reportingService) resolveAsOf(asOf *time.Time) time.Time {
	if asOf == nil {
		return s.today()
	}
	return accounting.DateOnly(*asOf)
}

// TrialBalance generates a trial balance report as of a specific date
func (s *reportingService) TrialBalance(ctx context.Context, workplaceID string, asOf *time.Time) (*domain.TrialBalanceReport, error) {
	date := s.resolveAsOf(asOf)

	balances, err := s.balances(ctx, workplaceID, domain.TransactionFilter{To: &date}, true)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve trial balance data",
			slog.String("workplace_id", workplaceID),
			slog.String("asOf", date.Format(accounting.DateLayout)))
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	report := accounting.BuildTrialBalance(balances, date)
	if !report.IsBalanced {
		s.LogWarn(ctx, "Trial balance does not balance",
			slog.String("workplace_id", workplaceID),
			slog.String("asOf", date.Format(accounting.DateLayout)),
			slog.String("total_debit", report.TotalDebit.String()),
			slog.String("total_credit", report.TotalCredit.String()))
	}

	s.LogInfo(ctx, "Trial balance report generated successfully",
		slog.String("workplace_id", workplaceID),
		slog.String("asOf", date.Format(accounting.DateLayout)),
		slog.Int("row_count", len(report.Rows)))
	return &report, nil
}

// ProfitAndLoss generates a profit and loss report for a specific period
func (s *reportingService) ProfitAndLoss(ctx context.Context, workplaceID string, from, to time.Time) (*domain.PAndLReport, error) {
	fromDate, toDate := accounting.DateOnly(from), accounting.DateOnly(to)
	if fromDate.After(toDate) {
		return nil, apperrors.Validation("report", workplaceID,
			fromDate.Format(accounting.DateLayout)+".."+toDate.Format(accounting.DateLayout),
			"fromDate must not be after toDate")
	}

	balances, err := s.balances(ctx, workplaceID, domain.TransactionFilter{From: &fromDate, To: &toDate}, false)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve profit and loss data",
			slog.String("workplace_id", workplaceID),
			slog.String("from", fromDate.Format(accounting.DateLayout)),
			slog.String("to", toDate.Format(accounting.DateLayout)))
		return nil, fmt.Errorf("failed to retrieve profit and loss data: %w", err)
	}

	report := accounting.BuildProfitAndLoss(balances, fromDate, toDate)

	s.LogInfo(ctx, "Profit and loss report generated successfully",
		slog.String("workplace_id", workplaceID),
		slog.String("from", fromDate.Format(accounting.DateLayout)),
		slog.String("to", toDate.Format(accounting.DateLayout)),
		slog.Int("income_accounts", len(report.Income)),
		slog.Int("expense_accounts", len(report.Expenses)))
	return &report, nil
}

// BalanceSheet generates a balance sheet report as of a specific date
func (s *reportingService) BalanceSheet(ctx context.Context, workplaceID string, asOf *time.Time) (*domain.BalanceSheetReport, error) {
	date := s.resolveAsOf(asOf)

	balances, err := s.balances(ctx, workplaceID, domain.TransactionFilter{To: &date}, true)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve balance sheet data",
			slog.String("workplace_id", workplaceID),
			slog.String("asOf", date.Format(accounting.DateLayout)))
		return nil, fmt.Errorf("failed to retrieve balance sheet data: %w", err)
	}

	report := accounting.BuildBalanceSheet(balances, date)
	if !report.IsBalanced {
		s.LogWarn(ctx, "Balance sheet does not balance",
			slog.String("workplace_id", workplaceID),
			slog.String("asOf", date.Format(accounting.DateLayout)),
			slog.String("total_assets", report.TotalAssets.String()),
			slog.String("total_liabilities", report.TotalLiabilities.String()),
			slog.String("total_equity", report.TotalEquity.String()))
	}

	s.LogInfo(ctx, "Balance sheet report generated successfully",
		slog.String("workplace_id", workplaceID),
		slog.String("asOf", date.Format(accounting.DateLayout)),
		slog.Int("asset_accounts", len(report.Assets)),
		slog.Int("liability_accounts", len(report.Liabilities)),
		slog.Int("equity_accounts", len(report.Equity)))
	return &report, nil
}
