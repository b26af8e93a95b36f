package services

import (
	"context"
	"time"

	"github.com/SscSPs/tradebook/internal/core/domain"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// TrialBalance generates a trial balance report as of a specific date (nil = today)
	TrialBalance(ctx context.Context, workplaceID string, asOf *time.Time) (*domain.TrialBalanceReport, error)

	// ProfitAndLoss generates a profit and loss report for a specific period
	ProfitAndLoss(ctx context.Context, workplaceID string, from, to time.Time) (*domain.PAndLReport, error)

	// BalanceSheet generates a balance sheet report as of a specific date (nil = today)
	BalanceSheet(ctx context.Context, workplaceID string, asOf *time.Time) (*domain.BalanceSheetReport, error)
}
