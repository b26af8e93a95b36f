package services

import (
	"context"
	"time"

	"github.com/SscSPs/tradebook/internal/core/domain"
	portsrepo "github.com/SscSPs/tradebook/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// BalanceService derives a party's balance from its source rows.
type BalanceService interface {
	// CalculatePartyBalance computes the balance as of asOf (inclusive). A nil asOf means today.
	CalculatePartyBalance(ctx context.Context, workplaceID, partyID string, asOf *time.Time) (*domain.PartyBalance, error)

	// UpdateAccountBalance recomputes the balance as of today and writes it to the account cache.
	UpdateAccountBalance(ctx context.Context, workplaceID, partyID string) (*domain.PartyBalance, error)

	// WithStore returns a BalanceService reading from and writing to the given store,
	// typically the unit-of-work store handed out by RunInTx.
	WithStore(store portsrepo.TransactionStore) BalanceService
}

// StatementService builds party ledgers.
type StatementService interface {
	// BuildPartyStatement builds the running-balance ledger of a party over [from, to].
	// A nil from means the start of the current financial year; a nil to means today.
	BuildPartyStatement(ctx context.Context, workplaceID, partyID string, from, to *time.Time) (*domain.PartyStatement, error)
}

// CreditService evaluates credit limits. Results are advisory.
type CreditService interface {
	CheckCreditLimit(ctx context.Context, workplaceID, partyID string, proposedAmount decimal.Decimal) (*domain.CreditCheckResult, error)
}

// PaymentService records receipts against sales.
type PaymentService interface {
	RecordPayment(ctx context.Context, workplaceID string, input domain.RecordPaymentInput) (*domain.PaymentResult, error)
}
