package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/tradebook/internal/apperrors"
	"github.com/SscSPs/tradebook/internal/core/domain"
	portsrepo "github.com/SscSPs/tradebook/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/tradebook/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// creditService evaluates a proposed sale against the party's credit limit.
type creditService struct {
	BaseService
	store      portsrepo.TransactionStore
	balanceSvc portssvc.BalanceService
}

// NewCreditService creates a new credit service.
func NewCreditService(store portsrepo.TransactionStore, balanceSvc portssvc.BalanceService) portssvc.CreditService {
	return &creditService{
		store:      store,
		balanceSvc: balanceSvc,
	}
}

var _ portssvc.CreditService = (*creditService)(nil)

// CheckCreditLimit reports whether a sale of proposedAmount keeps the party within its credit limit.
// The balance is always recalculated; the cached account balance is ignored.
func (s *creditService) CheckCreditLimit(ctx context.Context, workplaceID, partyID string, proposedAmount decimal.Decimal) (*domain.CreditCheckResult, error) {
	if proposedAmount.IsNegative() {
		return nil, apperrors.Validation("party", partyID, proposedAmount.String(), "proposed amount cannot be negative")
	}

	party, err := s.store.GetAccount(ctx, workplaceID, partyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to get party for credit check",
			slog.String("workplace_id", workplaceID),
			slog.String("party_id", partyID))
		return nil, fmt.Errorf("failed to get party %s: %w", partyID, err)
	}

	balance, err := s.balanceSvc.CalculatePartyBalance(ctx, workplaceID, partyID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate balance for credit check: %w", err)
	}

	result := &domain.CreditCheckResult{
		PartyID:          partyID,
		Allowed:          true,
		CreditLimit:      party.CreditLimit,
		CurrentExposure:  balance.Signed().Add(proposedAmount),
		ProposedAmount:   proposedAmount,
		BalanceDirection: balance.BalanceDirection,
	}

	switch {
	case balance.BalanceDirection == domain.Creditor:
		result.Message = fmt.Sprintf("Party is in credit by %s; sale allowed", balance.CurrentBalance.StringFixed(2))
	case !party.CreditLimit.IsPositive():
		result.Message = "No credit limit set; sale allowed"
	case result.CurrentExposure.GreaterThan(party.CreditLimit):
		result.Allowed = false
		result.Message = fmt.Sprintf("Credit limit exceeded: exposure %s is above limit %s by %s",
			result.CurrentExposure.StringFixed(2),
			party.CreditLimit.StringFixed(2),
			result.CurrentExposure.Sub(party.CreditLimit).StringFixed(2))
	default:
		result.Message = fmt.Sprintf("Within credit limit: exposure %s of %s",
			result.CurrentExposure.StringFixed(2),
			party.CreditLimit.StringFixed(2))
	}

	s.LogInfo(ctx, "Credit limit checked",
		slog.String("workplace_id", workplaceID),
		slog.String("party_id", partyID),
		slog.Bool("allowed", result.Allowed),
		slog.String("exposure", result.CurrentExposure.String()),
		slog.String("limit", party.CreditLimit.String()))
	return result, nil
}
