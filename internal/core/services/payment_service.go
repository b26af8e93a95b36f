package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/tradebook/internal/apperrors"
	"github.com/SscSPs/tradebook/internal/core/domain"
	portsrepo "github.com/SscSPs/tradebook/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/tradebook/internal/core/ports/services"
	"github.com/SscSPs/tradebook/internal/utils/accounting"
)

// paymentService records receipts against sales as a single unit of work.
type paymentService struct {
	BaseService
	serviceOptions
	store      portsrepo.TransactionStore
	balanceSvc portssvc.BalanceService
}

// NewPaymentService creates a new payment service.
func NewPaymentService(store portsrepo.TransactionStore, balanceSvc portssvc.BalanceService, opts ...ServiceOption) portssvc.PaymentService {
	return &paymentService{
		serviceOptions: applyServiceOptions(opts),
		store:          store,
		balanceSvc:     balanceSvc,
	}
}

var _ portssvc.PaymentService = (*paymentService)(nil)

// RecordPayment appends a receipt for a sale, updates the sale's paid amount and status and
// refreshes the party's balance cache. Either every write happens or none does.
func (s *paymentService) RecordPayment(ctx context.Context, workplaceID string, input domain.RecordPaymentInput) (*domain.PaymentResult, error) {
	if input.SaleID == "" {
		return nil, apperrors.Validation("sale", "", "", "saleID is required")
	}
	if !input.Amount.IsPositive() {
		return nil, apperrors.Validation("sale", input.SaleID, input.Amount.String(), "payment amount must be positive")
	}

	paymentDate := s.today()
	if !input.PaymentDate.IsZero() {
		paymentDate = accounting.DateOnly(input.PaymentDate)
	}

	var result *domain.PaymentResult
	err := s.store.RunInTx(ctx, func(tx portsrepo.TransactionStore) error {
		sale, err := tx.GetSaleForUpdate(ctx, workplaceID, input.SaleID)
		if err != nil {
			return fmt.Errorf("failed to get sale %s: %w", input.SaleID, err)
		}

		amount, excess, err := s.applyOverpaymentPolicy(*sale, input.Amount)
		if err != nil {
			return err
		}
		now := s.now().UTC()

		payment := domain.Payment{
			CashEntryID: uuid.NewString(),
			WorkplaceID: workplaceID,
			PartyID:     sale.PartyID,
			SaleID:      sale.SaleID,
			EntryDate:   paymentDate,
			Amount:      amount,
			Direction:   domain.Receipt,
			Narration:   input.Narration,
			Mode:        input.Mode,
			AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
		}
		if payment.Narration == "" {
			payment.Narration = "Payment received against sale " + saleLabel(*sale)
		}
		if err := tx.AppendPayment(ctx, payment); err != nil {
			return fmt.Errorf("failed to append cash entry: %w", err)
		}

		amountPaid := sale.AmountPaid.Add(amount)
		status := domain.PaymentStatusFor(sale.Amount, amountPaid)
		patch := domain.SalePatch{AmountPaid: &amountPaid, PaymentStatus: &status, UpdatedAt: now}
		if err := patch.Validate(); err != nil {
			return fmt.Errorf("invalid sale patch: %w", err)
		}
		if err := tx.UpdateSale(ctx, workplaceID, sale.SaleID, patch); err != nil {
			return fmt.Errorf("failed to update sale %s: %w", sale.SaleID, err)
		}
		patch.Apply(sale)

		balanceSvc := s.balanceSvc.WithStore(tx)
		if s.recordSnapshots {
			current, err := balanceSvc.CalculatePartyBalance(ctx, workplaceID, sale.PartyID, nil)
			if err != nil {
				return fmt.Errorf("failed to compute party balance: %w", err)
			}
			entry := domain.LedgerEntry{
				LedgerEntryID: uuid.NewString(),
				WorkplaceID:   workplaceID,
				PartyID:       sale.PartyID,
				EntryDate:     paymentDate,
				Narration:     payment.Narration,
				Debit:         decimal.Zero,
				Credit:        amount,
				Balance:       current.CurrentBalance,
				BalanceType:   accounting.BalanceTypeOf(current.Signed()),
				VoucherType:   domain.VoucherReceipt,
				VoucherRef:    payment.CashEntryID,
				Amount:        amount,
				CreatedAt:     now,
			}
			if err := tx.AppendLedgerEntry(ctx, entry); err != nil {
				return fmt.Errorf("failed to append ledger snapshot: %w", err)
			}
		}

		// The balance cache is refreshed last, once every source row is in place.
		balance, err := balanceSvc.UpdateAccountBalance(ctx, workplaceID, sale.PartyID)
		if err != nil {
			return fmt.Errorf("failed to refresh party balance: %w", err)
		}

		result = &domain.PaymentResult{
			Success:      true,
			CashEntryID:  payment.CashEntryID,
			Sale:         *sale,
			Balance:      *balance,
			Overpaid:     s.overpaymentPolicy == OverpaymentAllow && excess.IsPositive(),
			Excess:       excess,
			AmountPosted: amount,
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to record payment",
			slog.String("workplace_id", workplaceID),
			slog.String("sale_id", input.SaleID),
			slog.String("amount", input.Amount.String()))
		return nil, err
	}

	if result.Overpaid {
		s.LogWarn(ctx, "Payment exceeds sale outstanding amount",
			slog.String("workplace_id", workplaceID),
			slog.String("sale_id", input.SaleID),
			slog.String("excess", result.Excess.String()))
	}
	s.LogInfo(ctx, "Payment recorded",
		slog.String("workplace_id", workplaceID),
		slog.String("sale_id", input.SaleID),
		slog.String("cash_entry_id", result.CashEntryID),
		slog.String("amount_posted", result.AmountPosted.String()),
		slog.String("payment_status", string(result.Sale.PaymentStatus)))
	return result, nil
}

// applyOverpaymentPolicy returns the amount to post and the part of the requested amount
// above what the sale still owes.
func (s *paymentService) applyOverpaymentPolicy(sale domain.Sale, requested decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	outstanding := sale.Outstanding()
	excess := requested.Sub(outstanding)
	if !excess.IsPositive() {
		return requested, decimal.Zero, nil
	}

	switch s.overpaymentPolicy {
	case OverpaymentReject:
		return decimal.Zero, decimal.Zero, apperrors.Validation("sale", sale.SaleID, requested.String(),
			fmt.Sprintf("payment exceeds outstanding amount %s", outstanding.String()))
	case OverpaymentClamp:
		if !outstanding.IsPositive() {
			return decimal.Zero, decimal.Zero, apperrors.Validation("sale", sale.SaleID, requested.String(),
				"sale is already fully paid")
		}
		return outstanding, excess, nil
	default:
		return requested, excess, nil
	}
}

func saleLabel(sale domain.Sale) string {
	if sale.Reference != "" {
		return sale.Reference
	}
	return sale.SaleID
}
