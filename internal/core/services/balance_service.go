package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/tradebook/internal/core/domain"
	portsrepo "github.com/SscSPs/tradebook/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/tradebook/internal/core/ports/services"
	"github.com/SscSPs/tradebook/internal/utils/accounting"
)

// balanceService derives party balances from sales and receipts.
type balanceService struct {
	BaseService
	serviceOptions
	store portsrepo.TransactionStore
}

// NewBalanceService creates a new balance service reading from store.
func NewBalanceService(store portsrepo.TransactionStore, opts ...ServiceOption) portssvc.BalanceService {
	return &balanceService{
		serviceOptions: applyServiceOptions(opts),
		store:          store,
	}
}

var _ portssvc.BalanceService = (*balanceService)(nil)

// WithStore returns a copy of the service bound to another store, e.g. a unit of work.
func (s *balanceService) WithStore(store portsrepo.TransactionStore) portssvc.BalanceService {
	clone := *s
	clone.store = store
	return &clone
}

// CalculatePartyBalance computes the balance of a party as of asOf (inclusive, nil = today).
func (s *balanceService) CalculatePartyBalance(ctx context.Context, workplaceID, partyID string, asOf *time.Time) (*domain.PartyBalance, error) {
	party, err := s.store.GetAccount(ctx, workplaceID, partyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to get party for balance calculation",
			slog.String("workplace_id", workplaceID),
			slog.String("party_id", partyID))
		return nil, fmt.Errorf("failed to get party %s: %w", partyID, err)
	}

	date := s.today()
	if asOf != nil {
		date = accounting.DateOnly(*asOf)
	}
	return s.calculate(ctx, *party, date)
}

func (s *balanceService) calculate(ctx context.Context, party domain.Account, asOf time.Time) (*domain.PartyBalance, error) {
	filter := domain.TransactionFilter{PartyID: party.AccountID, To: &asOf}

	sales, err := s.store.ListSales(ctx, party.WorkplaceID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list sales for party", slog.String("party_id", party.AccountID))
		return nil, fmt.Errorf("failed to list sales for party %s: %w", party.AccountID, err)
	}
	payments, err := s.store.ListPayments(ctx, party.WorkplaceID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments for party", slog.String("party_id", party.AccountID))
		return nil, fmt.Errorf("failed to list payments for party %s: %w", party.AccountID, err)
	}

	opening := party.SignedOpening()
	totalSales := accounting.SumSales(sales)
	totalPayments := accounting.SumReceipts(payments)
	magnitude, direction := accounting.SplitSigned(opening.Add(totalSales).Sub(totalPayments))

	s.LogDebug(ctx, "Party balance calculated",
		slog.String("party_id", party.AccountID),
		slog.String("as_of", asOf.Format(accounting.DateLayout)),
		slog.String("balance", magnitude.String()),
		slog.String("direction", string(direction)))

	return &domain.PartyBalance{
		PartyID:          party.AccountID,
		AsOf:             asOf,
		OpeningBalance:   opening,
		TotalSales:       totalSales,
		TotalPayments:    totalPayments,
		CurrentBalance:   magnitude,
		BalanceDirection: direction,
	}, nil
}

// UpdateAccountBalance recomputes the balance as of today and persists it to the party's cache.
func (s *balanceService) UpdateAccountBalance(ctx context.Context, workplaceID, partyID string) (*domain.PartyBalance, error) {
	balance, err := s.CalculatePartyBalance(ctx, workplaceID, partyID, nil)
	if err != nil {
		return nil, err
	}

	patch := domain.AccountPatch{
		CurrentBalance:   &balance.CurrentBalance,
		BalanceDirection: &balance.BalanceDirection,
		UpdatedAt:        s.now().UTC(),
	}
	if err := patch.Validate(); err != nil {
		return nil, fmt.Errorf("invalid balance patch for party %s: %w", partyID, err)
	}
	if err := s.store.UpdateAccount(ctx, workplaceID, partyID, patch); err != nil {
		s.LogError(ctx, err, "Failed to persist party balance",
			slog.String("workplace_id", workplaceID),
			slog.String("party_id", partyID))
		return nil, fmt.Errorf("failed to update balance of party %s: %w", partyID, err)
	}

	s.LogInfo(ctx, "Party balance updated",
		slog.String("workplace_id", workplaceID),
		slog.String("party_id", partyID),
		slog.String("balance", balance.CurrentBalance.String()),
		slog.String("direction", string(balance.BalanceDirection)))
	return balance, nil
}
