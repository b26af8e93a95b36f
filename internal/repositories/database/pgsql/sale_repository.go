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

const saleColumns = `sale_id, workplace_id, party_id, sale_date, amount, amount_paid, payment_status, reference,
	created_at, last_updated_at`

func scanSale(row pgx.Row) (models.Sale, error) {
	var m models.Sale
	err := row.Scan(
		&m.SaleID,
		&m.WorkplaceID,
		&m.PartyID,
		&m.SaleDate,
		&m.Amount,
		&m.AmountPaid,
		&m.PaymentStatus,
		&m.Reference,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

func toDomainSale(m models.Sale) domain.Sale {
	return domain.Sale{
		SaleID:        m.SaleID,
		WorkplaceID:   m.WorkplaceID,
		PartyID:       m.PartyID,
		SaleDate:      m.SaleDate,
		Amount:        m.Amount,
		AmountPaid:    m.AmountPaid,
		PaymentStatus: domain.PaymentStatus(m.PaymentStatus),
		Reference:     m.Reference,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

func (s *PgxTransactionStore) getSale(ctx context.Context, workplaceID, saleID, suffix string) (*domain.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE workplace_id = $1 AND sale_id = $2` + suffix + `;`

	m, err := scanSale(s.db().QueryRow(ctx, query, workplaceID, saleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("sale", saleID)
		}
		return nil, fmt.Errorf("failed to get sale %s: %w", saleID, err)
	}
	sale := toDomainSale(m)
	return &sale, nil
}

// GetSale retrieves a sale by workplace and ID.
func (s *PgxTransactionStore) GetSale(ctx context.Context, workplaceID, saleID string) (*domain.Sale, error) {
	return s.getSale(ctx, workplaceID, saleID, "")
}

// GetSaleForUpdate retrieves a sale and locks its row until the transaction ends.
func (s *PgxTransactionStore) GetSaleForUpdate(ctx context.Context, workplaceID, saleID string) (*domain.Sale, error) {
	if s.tx == nil {
		return s.GetSale(ctx, workplaceID, saleID)
	}
	return s.getSale(ctx, workplaceID, saleID, " FOR UPDATE")
}

// ListSales retrieves sales matching the filter ordered by date and ID.
func (s *PgxTransactionStore) ListSales(ctx context.Context, workplaceID string, filter domain.TransactionFilter) ([]domain.Sale, error) {
	query, args := appendFilter(`SELECT `+saleColumns+` FROM sales WHERE workplace_id = $1`, []any{workplaceID}, "sale_date", filter)
	query += ` ORDER BY sale_date, created_at, sale_id;`

	rows, err := s.db().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	defer rows.Close()

	sales := []domain.Sale{}
	for rows.Next() {
		m, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale row: %w", err)
		}
		sales = append(sales, toDomainSale(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sale rows: %w", err)
	}
	return sales, nil
}

// UpdateSale writes the payment fields present in the patch.
func (s *PgxTransactionStore) UpdateSale(ctx context.Context, workplaceID, saleID string, patch domain.SalePatch) error {
	if err := patch.Validate(); err != nil {
		return apperrors.Validation("sale", saleID, "", err.Error())
	}

	var status *string
	if patch.PaymentStatus != nil {
		st := string(*patch.PaymentStatus)
		status = &st
	}

	query := `
		UPDATE sales
		SET amount_paid = COALESCE($3, amount_paid),
			payment_status = COALESCE($4, payment_status),
			last_updated_at = $5
		WHERE workplace_id = $1 AND sale_id = $2;
	`
	tag, err := s.db().Exec(ctx, query, workplaceID, saleID, patch.AmountPaid, status, patch.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update sale %s: %w", saleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("sale", saleID)
	}
	return nil
}
