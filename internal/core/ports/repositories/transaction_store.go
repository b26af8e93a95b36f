package repositories

import (
	"context"

	"github.com/SscSPs/tradebook/internal/core/domain"
)

// TransactionReader defines read operations over the source rows of a workplace.
type TransactionReader interface {
	// GetAccount retrieves an account (party or ledger account). Returns apperrors.ErrNotFound when missing.
	GetAccount(ctx context.Context, workplaceID, accountID string) (*domain.Account, error)

	// ListAccounts retrieves every account of the workplace ordered by account ID.
	ListAccounts(ctx context.Context, workplaceID string) ([]domain.Account, error)

	// GetSale retrieves a sale. Returns apperrors.ErrNotFound when missing.
	GetSale(ctx context.Context, workplaceID, saleID string) (*domain.Sale, error)

	// ListSales retrieves sales matching the filter.
	ListSales(ctx context.Context, workplaceID string, filter domain.TransactionFilter) ([]domain.Sale, error)

	// ListPurchases retrieves purchases matching the filter.
	ListPurchases(ctx context.Context, workplaceID string, filter domain.TransactionFilter) ([]domain.Purchase, error)

	// ListPayments retrieves cash entries (receipts and issued payments) matching the filter.
	ListPayments(ctx context.Context, workplaceID string, filter domain.TransactionFilter) ([]domain.Payment, error)
}

// TransactionWriter defines the only writes the engine performs.
type TransactionWriter interface {
	// AppendPayment persists a new cash entry.
	AppendPayment(ctx context.Context, payment domain.Payment) error

	// AppendLedgerEntry persists a ledger snapshot line. Snapshots are never read back.
	AppendLedgerEntry(ctx context.Context, entry domain.LedgerEntry) error

	// UpdateSale applies a validated patch to a sale.
	UpdateSale(ctx context.Context, workplaceID, saleID string, patch domain.SalePatch) error

	// UpdateAccount applies a validated patch to an account's balance cache.
	UpdateAccount(ctx context.Context, workplaceID, accountID string, patch domain.AccountPatch) error
}

// TransactionStore is the persistence port of the engine.
type TransactionStore interface {
	TransactionReader
	TransactionWriter

	// GetSaleForUpdate retrieves a sale and locks it until the surrounding unit of work ends.
	// Outside RunInTx it behaves like GetSale.
	GetSaleForUpdate(ctx context.Context, workplaceID, saleID string) (*domain.Sale, error)

	// RunInTx executes fn inside a unit of work. The store handed to fn is bound to it;
	// any error returned by fn rolls back every write made through it.
	RunInTx(ctx context.Context, fn func(tx TransactionStore) error) error
}
