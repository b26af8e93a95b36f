package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/tradebook/internal/apperrors"
	"github.com/SscSPs/tradebook/internal/core/domain"
	"github.com/SscSPs/tradebook/internal/models"
	"github.com/SscSPs/tradebook/internal/utils/accounting"
)

// AppendLedgerEntry inserts a ledger snapshot line.
func (s *PgxTransactionStore) AppendLedgerEntry(ctx context.Context, entry domain.LedgerEntry) error {
	m := models.LedgerEntry{
		LedgerEntryID: entry.LedgerEntryID,
		WorkplaceID:   entry.WorkplaceID,
		PartyID:       entry.PartyID,
		EntryDate:     accounting.DateOnly(entry.EntryDate),
		FinancialYear: accounting.FinancialYear(entry.EntryDate),
		Narration:     entry.Narration,
		Debit:         entry.Debit,
		Credit:        entry.Credit,
		Balance:       entry.Balance,
		BalanceType:   string(entry.BalanceType),
		VoucherType:   string(entry.VoucherType),
		VoucherRef:    entry.VoucherRef,
		CreatedAt:     entry.CreatedAt,
	}

	query := `
		INSERT INTO ledger_entries (ledger_entry_id, workplace_id, party_id, entry_date, financial_year, narration,
			debit, credit, balance, balance_type, voucher_type, voucher_ref, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := s.db().Exec(ctx, query,
		m.LedgerEntryID,
		m.WorkplaceID,
		m.PartyID,
		m.EntryDate,
		m.FinancialYear,
		m.Narration,
		m.Debit,
		m.Credit,
		m.Balance,
		m.BalanceType,
		m.VoucherType,
		m.VoucherRef,
		m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ledger entry with ID %s already exists", apperrors.ErrDuplicate, m.LedgerEntryID)
		}
		return fmt.Errorf("failed to save ledger entry %s: %w", m.LedgerEntryID, err)
	}
	return nil
}
