package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/tradebook/internal/core/domain"
	portsrepo "github.com/SscSPs/tradebook/internal/core/ports/repositories"
	"github.com/SscSPs/tradebook/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

const testWorkplace = "w1"

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func party(id string) domain.Account {
	return domain.Account{AccountID: id, WorkplaceID: testWorkplace, Name: "Party " + id, IsParty: true, AccountType: domain.Asset}
}

func sale(id, partyID string, on time.Time, amount string) domain.Sale {
	return domain.Sale{
		SaleID:      id,
		WorkplaceID: testWorkplace,
		PartyID:     partyID,
		SaleDate:    on,
		Amount:      dec(amount),
		AmountPaid:  decimal.Zero,
		AuditFields: domain.AuditFields{CreatedAt: on},
	}
}

func receipt(id, partyID string, on time.Time, amount string) domain.Payment {
	return domain.Payment{
		CashEntryID: id,
		WorkplaceID: testWorkplace,
		PartyID:     partyID,
		EntryDate:   on,
		Amount:      dec(amount),
		Direction:   domain.Receipt,
		AuditFields: domain.AuditFields{CreatedAt: on},
	}
}

func seedPayment(store *memory.Store, p domain.Payment) {
	if err := store.AppendPayment(context.Background(), p); err != nil {
		panic(err)
	}
}

// --- Mock TransactionStore ---
type MockTransactionStore struct {
	mock.Mock
}

var _ portsrepo.TransactionStore = (*MockTransactionStore)(nil)

func (m *MockTransactionStore) GetAccount(ctx context.Context, workplaceID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, workplaceID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockTransactionStore) ListAccounts(ctx context.Context, workplaceID string) ([]domain.Account, error) {
	args := m.Called(ctx, workplaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockTransactionStore) GetSale(ctx context.Context, workplaceID, saleID string) (*domain.Sale, error) {
	args := m.Called(ctx, workplaceID, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockTransactionStore) GetSaleForUpdate(ctx context.Context, workplaceID, saleID string) (*domain.Sale, error) {
	args := m.Called(ctx, workplaceID, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockTransactionStore) ListSales(ctx context.Context, workplaceID string, filter domain.TransactionFilter) ([]domain.Sale, error) {
	args := m.Called(ctx, workplaceID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sale), args.Error(1)
}

func (m *MockTransactionStore) ListPurchases(ctx context.Context, workplaceID string, filter domain.TransactionFilter) ([]domain.Purchase, error) {
	args := m.Called(ctx, workplaceID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Purchase), args.Error(1)
}

func (m *MockTransactionStore) ListPayments(ctx context.Context, workplaceID string, filter domain.TransactionFilter) ([]domain.Payment, error) {
	args := m.Called(ctx, workplaceID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockTransactionStore) AppendPayment(ctx context.Context, payment domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockTransactionStore) AppendLedgerEntry(ctx context.Context, entry domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTransactionStore) UpdateSale(ctx context.Context, workplaceID, saleID string, patch domain.SalePatch) error {
	args := m.Called(ctx, workplaceID, saleID, patch)
	return args.Error(0)
}

func (m *MockTransactionStore) UpdateAccount(ctx context.Context, workplaceID, accountID string, patch domain.AccountPatch) error {
	args := m.Called(ctx, workplaceID, accountID, patch)
	return args.Error(0)
}

// RunInTx records the call and then runs fn against the mock itself.
func (m *MockTransactionStore) RunInTx(ctx context.Context, fn func(tx portsrepo.TransactionStore) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m)
}
