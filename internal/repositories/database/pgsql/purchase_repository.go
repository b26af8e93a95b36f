package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/tradebook/internal/core/domain"
	"github.com/SscSPs/tradebook/internal/models"
)

// ListPurchases retrieves purchases matching the filter ordered by date and ID.
func (s *PgxTransactionStore) ListPurchases(ctx context.Context, workplaceID string, filter domain.TransactionFilter) ([]domain.Purchase, error) {
	query, args := appendFilter(`
		SELECT purchase_id, workplace_id, party_id, purchase_date, amount, reference, created_at, last_updated_at
		FROM purchases
		WHERE workplace_id = $1`, []any{workplaceID}, "purchase_date", filter)
	query += ` ORDER BY purchase_date, created_at, purchase_id;`

	rows, err := s.db().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	defer rows.Close()

	purchases := []domain.Purchase{}
	for rows.Next() {
		var m models.Purchase
		if err := rows.Scan(&m.PurchaseID, &m.WorkplaceID, &m.PartyID, &m.PurchaseDate, &m.Amount, &m.Reference, &m.CreatedAt, &m.LastUpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan purchase row: %w", err)
		}
		purchases = append(purchases, domain.Purchase{
			PurchaseID:   m.PurchaseID,
			WorkplaceID:  m.WorkplaceID,
			PartyID:      m.PartyID,
			PurchaseDate: m.PurchaseDate,
			Amount:       m.Amount,
			Reference:    m.Reference,
			AuditFields:  domain.AuditFields{CreatedAt: m.CreatedAt, LastUpdatedAt: m.LastUpdatedAt},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating purchase rows: %w", err)
	}
	return purchases, nil
}
