package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/tradebook/internal/apperrors"
	"github.com/SscSPs/tradebook/internal/core/domain"
	"github.com/SscSPs/tradebook/internal/models"
	"github.com/jackc/pgx/v5"
)

const accountColumns = `account_id, workplace_id, name, account_type, is_party, opening_balance, opening_direction,
	credit_limit, current_balance, balance_direction, created_at, last_updated_at`

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.WorkplaceID,
		&m.Name,
		&m.AccountType,
		&m.IsParty,
		&m.OpeningBalance,
		&m.OpeningDirection,
		&m.CreditLimit,
		&m.CurrentBalance,
		&m.BalanceDirection,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// Helper to convert models.Account from DB to domain.Account
func toDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:        m.AccountID,
		WorkplaceID:      m.WorkplaceID,
		Name:             m.Name,
		AccountType:      domain.AccountType(m.AccountType),
		IsParty:          m.IsParty,
		OpeningBalance:   m.OpeningBalance,
		OpeningDirection: domain.EntryDirection(m.OpeningDirection),
		CreditLimit:      m.CreditLimit,
		CurrentBalance:   m.CurrentBalance,
		BalanceDirection: domain.BalanceDirection(m.BalanceDirection),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

// GetAccount retrieves an account by workplace and ID.
func (s *PgxTransactionStore) GetAccount(ctx context.Context, workplaceID, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE workplace_id = $1 AND account_id = $2;`

	m, err := scanAccount(s.db().QueryRow(ctx, query, workplaceID, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("account", accountID)
		}
		return nil, fmt.Errorf("failed to get account %s: %w", accountID, err)
	}
	account := toDomainAccount(m)
	return &account, nil
}

// ListAccounts retrieves every account of a workplace ordered by ID.
func (s *PgxTransactionStore) ListAccounts(ctx context.Context, workplaceID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE workplace_id = $1 ORDER BY account_id;`

	rows, err := s.db().Query(ctx, query, workplaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, toDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// UpdateAccount writes the balance cache fields present in the patch.
func (s *PgxTransactionStore) UpdateAccount(ctx context.Context, workplaceID, accountID string, patch domain.AccountPatch) error {
	if err := patch.Validate(); err != nil {
		return apperrors.Validation("account", accountID, "", err.Error())
	}

	var direction *string
	if patch.BalanceDirection != nil {
		d := string(*patch.BalanceDirection)
		direction = &d
	}

	query := `
		UPDATE accounts
		SET current_balance = COALESCE($3, current_balance),
			balance_direction = COALESCE($4, balance_direction),
			last_updated_at = $5
		WHERE workplace_id = $1 AND account_id = $2;
	`
	tag, err := s.db().Exec(ctx, query, workplaceID, accountID, patch.CurrentBalance, direction, patch.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("account", accountID)
	}
	return nil
}
