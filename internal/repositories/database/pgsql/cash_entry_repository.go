package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/tradebook/internal/apperrors"
	"github.com/SscSPs/tradebook/internal/core/domain"
	"github.com/SscSPs/tradebook/internal/models"
	"github.com/SscSPs/tradebook/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// toModelCashEntry maps a payment onto the cashbook's cr_amt/dr_amt columns.
func toModelCashEntry(p domain.Payment) models.CashEntry {
	m := models.CashEntry{
		CashEntryID: p.CashEntryID,
		WorkplaceID: p.WorkplaceID,
		PartyID:     p.PartyID,
		EntryDate:   accounting.DateOnly(p.EntryDate),
		CrAmt:       decimal.Zero,
		DrAmt:       decimal.Zero,
		Narration:   p.Narration,
		Mode:        p.Mode,
		AuditFields: models.AuditFields{CreatedAt: p.CreatedAt, LastUpdatedAt: p.LastUpdatedAt},
	}
	if p.SaleID != "" {
		saleID := p.SaleID
		m.SaleID = &saleID
	}
	if p.Direction == domain.Receipt {
		m.CrAmt = p.Amount
	} else {
		m.DrAmt = p.Amount
	}
	return m
}

func toDomainPayment(m models.CashEntry) domain.Payment {
	p := domain.Payment{
		CashEntryID: m.CashEntryID,
		WorkplaceID: m.WorkplaceID,
		PartyID:     m.PartyID,
		EntryDate:   m.EntryDate,
		Amount:      m.CrAmt,
		Direction:   domain.Receipt,
		Narration:   m.Narration,
		Mode:        m.Mode,
		AuditFields: domain.AuditFields{CreatedAt: m.CreatedAt, LastUpdatedAt: m.LastUpdatedAt},
	}
	if m.SaleID != nil {
		p.SaleID = *m.SaleID
	}
	if m.DrAmt.IsPositive() {
		p.Amount = m.DrAmt
		p.Direction = domain.Issued
	}
	return p
}

// AppendPayment inserts a cash entry.
func (s *PgxTransactionStore) AppendPayment(ctx context.Context, payment domain.Payment) error {
	m := toModelCashEntry(payment)

	query := `
		INSERT INTO cash_entries (cash_entry_id, workplace_id, party_id, sale_id, entry_date, cr_amt, dr_amt, narration, mode, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := s.db().Exec(ctx, query,
		m.CashEntryID,
		m.WorkplaceID,
		m.PartyID,
		m.SaleID,
		m.EntryDate,
		m.CrAmt,
		m.DrAmt,
		m.Narration,
		m.Mode,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: cash entry with ID %s already exists", apperrors.ErrDuplicate, m.CashEntryID)
		}
		return fmt.Errorf("failed to save cash entry %s: %w", m.CashEntryID, err)
	}
	return nil
}

// ListPayments retrieves cash entries matching the filter ordered by date and creation time.
func (s *PgxTransactionStore) ListPayments(ctx context.Context, workplaceID string, filter domain.TransactionFilter) ([]domain.Payment, error) {
	query, args := appendFilter(`
		SELECT cash_entry_id, workplace_id, party_id, sale_id, entry_date, cr_amt, dr_amt, narration, mode, created_at, last_updated_at
		FROM cash_entries
		WHERE workplace_id = $1`, []any{workplaceID}, "entry_date", filter)
	query += ` ORDER BY entry_date, created_at, cash_entry_id;`

	rows, err := s.db().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list cash entries: %w", err)
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		var m models.CashEntry
		if err := rows.Scan(&m.CashEntryID, &m.WorkplaceID, &m.PartyID, &m.SaleID, &m.EntryDate, &m.CrAmt, &m.DrAmt, &m.Narration, &m.Mode, &m.CreatedAt, &m.LastUpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cash entry row: %w", err)
		}
		payments = append(payments, toDomainPayment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cash entry rows: %w", err)
	}
	return payments, nil
}
