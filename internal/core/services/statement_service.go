package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/tradebook/internal/apperrors"
	"github.com/SscSPs/tradebook/internal/core/domain"
	portsrepo "github.com/SscSPs/tradebook/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/tradebook/internal/core/ports/services"
	"github.com/SscSPs/tradebook/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// statementService builds party ledgers with running balances.
type statementService struct {
	BaseService
	serviceOptions
	store      portsrepo.TransactionStore
	balanceSvc portssvc.BalanceService
}

// NewStatementService creates a new statement service.
func NewStatementService(store portsrepo.TransactionStore, balanceSvc portssvc.BalanceService, opts ...ServiceOption) portssvc.StatementService {
	return &statementService{
		serviceOptions: applyServiceOptions(opts),
		store:          store,
		balanceSvc:     balanceSvc,
	}
}

var _ portssvc.StatementService = (*statementService)(nil)

// BuildPartyStatement builds the ledger of a party over [from, to].
func (s *statementService) BuildPartyStatement(ctx context.Context, workplaceID, partyID string, from, to *time.Time) (*domain.PartyStatement, error) {
	toDate := s.today()
	if to != nil {
		toDate = accounting.DateOnly(*to)
	}
	// Without an explicit start the statement opens on 1 April of the year containing toDate.
	fromDate := accounting.FinancialYearStart(toDate)
	if from != nil {
		fromDate = accounting.DateOnly(*from)
	}
	if fromDate.After(toDate) {
		return nil, apperrors.Validation("statement", partyID,
			fromDate.Format(accounting.DateLayout)+".."+toDate.Format(accounting.DateLayout),
			"fromDate must not be after toDate")
	}

	party, err := s.store.GetAccount(ctx, workplaceID, partyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to get party for statement",
			slog.String("workplace_id", workplaceID),
			slog.String("party_id", partyID))
		return nil, fmt.Errorf("failed to get party %s: %w", partyID, err)
	}

	dayBefore := fromDate.AddDate(0, 0, -1)
	opening, err := s.balanceSvc.CalculatePartyBalance(ctx, workplaceID, partyID, &dayBefore)
	if err != nil {
		return nil, fmt.Errorf("failed to compute opening balance: %w", err)
	}

	entries, err := s.collectEntries(ctx, workplaceID, partyID, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	running := opening.Signed()
	totalDebits, totalCredits := decimal.Zero, decimal.Zero
	for i := range entries {
		if !entries[i].Informational {
			running = running.Add(entries[i].Debit).Sub(entries[i].Credit)
			totalDebits = totalDebits.Add(entries[i].Debit)
			totalCredits = totalCredits.Add(entries[i].Credit)
		}
		entries[i].Balance = running.Abs()
		entries[i].BalanceType = accounting.BalanceTypeOf(running)
	}

	closing, err := s.balanceSvc.CalculatePartyBalance(ctx, workplaceID, partyID, &toDate)
	if err != nil {
		return nil, fmt.Errorf("failed to compute closing balance: %w", err)
	}
	if !accounting.WithinEpsilon(running, closing.Signed()) {
		err := apperrors.Consistency("party", partyID,
			fmt.Sprintf("ledger closing %s does not match calculated balance %s", running.String(), closing.Signed().String()))
		s.LogError(ctx, err, "Ledger closing balance cross-check failed",
			slog.String("workplace_id", workplaceID),
			slog.String("party_id", partyID),
			slog.String("from", fromDate.Format(accounting.DateLayout)),
			slog.String("to", toDate.Format(accounting.DateLayout)))
		return nil, err
	}

	openingSigned := opening.Signed()
	statement := &domain.PartyStatement{
		PartyID:        party.AccountID,
		PartyName:      party.Name,
		FinancialYear:  accounting.FinancialYear(fromDate),
		From:           fromDate,
		To:             toDate,
		OpeningBalance: openingSigned.Abs(),
		OpeningType:    accounting.BalanceTypeOf(openingSigned),
		ClosingBalance: running.Abs(),
		ClosingType:    accounting.BalanceTypeOf(running),
		Entries:        entries,
		TotalDebits:    totalDebits,
		TotalCredits:   totalCredits,
	}

	s.LogInfo(ctx, "Party statement built",
		slog.String("workplace_id", workplaceID),
		slog.String("party_id", partyID),
		slog.Int("entries", len(entries)),
		slog.String("closing", statement.ClosingBalance.String()+string(statement.ClosingType)))
	return statement, nil
}

// collectEntries loads the party's source rows in range and orders them by date, creation time and ID.
func (s *statementService) collectEntries(ctx context.Context, workplaceID, partyID string, from, to time.Time) ([]domain.LedgerEntry, error) {
	filter := domain.TransactionFilter{PartyID: partyID, From: &from, To: &to}

	sales, err := s.store.ListSales(ctx, workplaceID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list sales for statement", slog.String("party_id", partyID))
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	purchases, err := s.store.ListPurchases(ctx, workplaceID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list purchases for statement", slog.String("party_id", partyID))
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	payments, err := s.store.ListPayments(ctx, workplaceID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments for statement", slog.String("party_id", partyID))
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	entries := make([]domain.LedgerEntry, 0, len(sales)+len(purchases)+len(payments))
	for _, sale := range sales {
		entries = append(entries, domain.LedgerEntry{
			LedgerEntryID: "SALE-" + sale.SaleID,
			WorkplaceID:   workplaceID,
			PartyID:       partyID,
			EntryDate:     accounting.DateOnly(sale.SaleDate),
			Narration:     narrationOr("Sale", sale.Reference, sale.SaleID),
			Debit:         sale.Amount,
			Credit:        decimal.Zero,
			VoucherType:   domain.VoucherSale,
			VoucherRef:    sale.SaleID,
			Amount:        sale.Amount,
			CreatedAt:     sale.CreatedAt,
		})
	}
	for _, purchase := range purchases {
		entries = append(entries, domain.LedgerEntry{
			LedgerEntryID: "PURCHASE-" + purchase.PurchaseID,
			WorkplaceID:   workplaceID,
			PartyID:       partyID,
			EntryDate:     accounting.DateOnly(purchase.PurchaseDate),
			Narration:     narrationOr("Purchase", purchase.Reference, purchase.PurchaseID),
			Debit:         decimal.Zero,
			Credit:        decimal.Zero,
			VoucherType:   domain.VoucherPurchase,
			VoucherRef:    purchase.PurchaseID,
			Informational: true,
			Amount:        purchase.Amount,
			CreatedAt:     purchase.CreatedAt,
		})
	}
	for _, payment := range payments {
		entry := domain.LedgerEntry{
			LedgerEntryID: "CASH-" + payment.CashEntryID,
			WorkplaceID:   workplaceID,
			PartyID:       partyID,
			EntryDate:     accounting.DateOnly(payment.EntryDate),
			Debit:         decimal.Zero,
			Credit:        decimal.Zero,
			VoucherRef:    payment.CashEntryID,
			Amount:        payment.Amount,
			CreatedAt:     payment.CreatedAt,
		}
		if payment.Direction == domain.Receipt {
			entry.Credit = payment.Amount
			entry.VoucherType = domain.VoucherReceipt
			entry.Narration = narrationOr("Receipt", payment.Narration, payment.CashEntryID)
		} else {
			entry.Informational = true
			entry.VoucherType = domain.VoucherPayment
			entry.Narration = narrationOr("Payment issued", payment.Narration, payment.CashEntryID)
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.EntryDate.Equal(b.EntryDate) {
			return a.EntryDate.Before(b.EntryDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.LedgerEntryID < b.LedgerEntryID
	})
	return entries, nil
}

func narrationOr(kind, text, id string) string {
	if text != "" {
		return kind + " - " + text
	}
	return kind + " - " + id
}
