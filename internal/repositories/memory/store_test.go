package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/tradebook/internal/apperrors"
	"github.com/SscSPs/tradebook/internal/core/domain"
	portsrepo "github.com/SscSPs/tradebook/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded() *Store {
	s := NewStore()
	s.AddAccount(domain.Account{AccountID: "P1", WorkplaceID: "w1", Name: "Ravi Traders", IsParty: true})
	s.AddSale(domain.Sale{SaleID: "S1", WorkplaceID: "w1", PartyID: "P1", SaleDate: time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(1000)})
	return s
}

func TestRunInTx_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := seeded()
	boom := errors.New("boom")

	err := s.RunInTx(ctx, func(tx portsrepo.TransactionStore) error {
		require.NoError(t, tx.AppendPayment(ctx, domain.Payment{CashEntryID: "C1", WorkplaceID: "w1", PartyID: "P1", Amount: decimal.NewFromInt(400), Direction: domain.Receipt}))
		paid := decimal.NewFromInt(400)
		require.NoError(t, tx.UpdateSale(ctx, "w1", "S1", domain.SalePatch{AmountPaid: &paid, UpdatedAt: time.Now()}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	payments, err := s.ListPayments(ctx, "w1", domain.TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, payments)
	sale, err := s.GetSale(ctx, "w1", "S1")
	require.NoError(t, err)
	assert.True(t, sale.AmountPaid.IsZero())
}

func TestRunInTx_Commits(t *testing.T) {
	ctx := context.Background()
	s := seeded()

	err := s.RunInTx(ctx, func(tx portsrepo.TransactionStore) error {
		return tx.AppendPayment(ctx, domain.Payment{CashEntryID: "C1", WorkplaceID: "w1", PartyID: "P1", Amount: decimal.NewFromInt(400), Direction: domain.Receipt})
	})
	require.NoError(t, err)

	payments, err := s.ListPayments(ctx, "w1", domain.TransactionFilter{PartyID: "P1"})
	require.NoError(t, err)
	assert.Len(t, payments, 1)
}

func TestListSales_FiltersByPartyAndDate(t *testing.T) {
	ctx := context.Background()
	s := seeded()
	s.AddSale(domain.Sale{SaleID: "S2", WorkplaceID: "w1", PartyID: "P1", SaleDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(10)})
	s.AddSale(domain.Sale{SaleID: "S3", WorkplaceID: "w1", PartyID: "P2", SaleDate: time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(10)})
	s.AddSale(domain.Sale{SaleID: "S4", WorkplaceID: "w2", PartyID: "P1", SaleDate: time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(10)})

	to := time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)
	sales, err := s.ListSales(ctx, "w1", domain.TransactionFilter{PartyID: "P1", To: &to})
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "S1", sales[0].SaleID)
	assert.Equal(t, domain.PaymentPending, sales[0].PaymentStatus)
}

func TestNotFound(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	_, err := s.GetAccount(ctx, "w1", "nope")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	_, err = s.GetSaleForUpdate(ctx, "w1", "nope")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestRunInTx_KeepsRootWritesMadeDuringUnitOfWork(t *testing.T) {
	ctx := context.Background()
	s := seeded()
	balance := decimal.NewFromInt(42)

	err := s.RunInTx(ctx, func(tx portsrepo.TransactionStore) error {
		require.NoError(t, s.UpdateAccount(ctx, "w1", "P1", domain.AccountPatch{CurrentBalance: &balance, UpdatedAt: time.Now()}))
		require.NoError(t, s.AppendPayment(ctx, domain.Payment{CashEntryID: "C-root", WorkplaceID: "w1", PartyID: "P1", Amount: decimal.NewFromInt(5), Direction: domain.Receipt}))

		paid := decimal.NewFromInt(400)
		require.NoError(t, tx.UpdateSale(ctx, "w1", "S1", domain.SalePatch{AmountPaid: &paid, UpdatedAt: time.Now()}))
		return tx.AppendPayment(ctx, domain.Payment{CashEntryID: "C-tx", WorkplaceID: "w1", PartyID: "P1", Amount: decimal.NewFromInt(400), Direction: domain.Receipt})
	})
	require.NoError(t, err)

	account, err := s.GetAccount(ctx, "w1", "P1")
	require.NoError(t, err)
	assert.True(t, account.CurrentBalance.Equal(balance), account.CurrentBalance.String())

	sale, err := s.GetSale(ctx, "w1", "S1")
	require.NoError(t, err)
	assert.True(t, sale.AmountPaid.Equal(decimal.NewFromInt(400)))

	payments, err := s.ListPayments(ctx, "w1", domain.TransactionFilter{})
	require.NoError(t, err)
	assert.Len(t, payments, 2)
}

func TestRunInTx_ConflictingCashEntryFailsCommit(t *testing.T) {
	ctx := context.Background()
	s := seeded()
	entry := domain.Payment{CashEntryID: "C1", WorkplaceID: "w1", PartyID: "P1", Amount: decimal.NewFromInt(5), Direction: domain.Receipt}

	err := s.RunInTx(ctx, func(tx portsrepo.TransactionStore) error {
		require.NoError(t, s.AppendPayment(ctx, entry))
		paid := decimal.NewFromInt(5)
		require.NoError(t, tx.UpdateSale(ctx, "w1", "S1", domain.SalePatch{AmountPaid: &paid, UpdatedAt: time.Now()}))
		return tx.AppendPayment(ctx, entry)
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	sale, err := s.GetSale(ctx, "w1", "S1")
	require.NoError(t, err)
	assert.True(t, sale.AmountPaid.IsZero())
}
