package pgsql

import (
	"context"
	"errors"
	"fmt"

	portsrepo "github.com/SscSPs/tradebook/internal/core/ports/repositories"
	"github.com/SscSPs/tradebook/internal/core/domain"
	"github.com/SscSPs/tradebook/internal/utils/accounting"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxTransactionStore is the Postgres implementation of the TransactionStore port.
type PgxTransactionStore struct {
	BaseRepository
}

// NewTransactionStore creates a store backed by the given pool.
func NewTransactionStore(pool *pgxpool.Pool) *PgxTransactionStore {
	return &PgxTransactionStore{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxTransactionStore implements portsrepo.TransactionStore
var _ portsrepo.TransactionStore = (*PgxTransactionStore)(nil)

// RunInTx executes fn inside a database transaction. Nested calls join the outer transaction.
func (s *PgxTransactionStore) RunInTx(ctx context.Context, fn func(tx portsrepo.TransactionStore) error) error {
	if s.tx != nil {
		return fn(s)
	}

	tx, err := s.Begin(ctx)
	if err != nil {
		return err
	}
	bound := &PgxTransactionStore{BaseRepository: BaseRepository{Pool: s.Pool, tx: tx}}

	if err := fn(bound); err != nil {
		// the request context may already be cancelled
		if rbErr := s.Rollback(context.WithoutCancel(ctx), tx); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}
	return s.Commit(ctx, tx)
}

// appendFilter adds the party and inclusive date bounds of f to a query ending in a WHERE clause.
func appendFilter(query string, args []any, dateColumn string, f domain.TransactionFilter) (string, []any) {
	if f.PartyID != "" {
		args = append(args, f.PartyID)
		query += fmt.Sprintf(" AND party_id = $%d", len(args))
	}
	if f.From != nil {
		args = append(args, accounting.DateOnly(*f.From))
		query += fmt.Sprintf(" AND %s >= $%d", dateColumn, len(args))
	}
	if f.To != nil {
		args = append(args, accounting.DateOnly(*f.To))
		query += fmt.Sprintf(" AND %s <= $%d", dateColumn, len(args))
	}
	return query, args
}
