package dto

import (
	"github.com/SscSPs/tradebook/internal/core/domain"
	"github.com/SscSPs/tradebook/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// CreditCheckQuery binds the proposed sale amount of a credit check.
type CreditCheckQuery struct {
	Amount string `form:"amount" binding:"required,numeric"`
}

// PartyBalanceResponse is the wire shape of a computed party balance.
type PartyBalanceResponse struct {
	PartyID          string          `json:"partyID"`
	AsOf             string          `json:"asOf"`
	OpeningBalance   decimal.Decimal `json:"openingBalance"`
	TotalSales       decimal.Decimal `json:"totalSales"`
	TotalPayments    decimal.Decimal `json:"totalPayments"`
	CurrentBalance   decimal.Decimal `json:"currentBalance"`
	BalanceDirection string          `json:"balanceDirection"`
}

// LedgerEntryResponse is one statement line.
type LedgerEntryResponse struct {
	LedgerEntryID string          `json:"ledgerEntryID"`
	Date          string          `json:"date"`
	Narration     string          `json:"narration"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Balance       decimal.Decimal `json:"balance"`
	BalanceType   string          `json:"balanceType"`
	VoucherType   string          `json:"voucherType"`
	VoucherRef    string          `json:"voucherRef"`
	Informational bool            `json:"informational,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
}

// PartyStatementResponse is the wire shape of a party ledger.
type PartyStatementResponse struct {
	PartyID        string                `json:"partyID"`
	PartyName      string                `json:"partyName"`
	FinancialYear  string                `json:"financialYear"`
	FromDate       string                `json:"fromDate"`
	ToDate         string                `json:"toDate"`
	OpeningBalance decimal.Decimal       `json:"openingBalance"`
	OpeningType    string                `json:"openingType"`
	Entries        []LedgerEntryResponse `json:"entries"`
	TotalDebits    decimal.Decimal       `json:"totalDebits"`
	TotalCredits   decimal.Decimal       `json:"totalCredits"`
	ClosingBalance decimal.Decimal       `json:"closingBalance"`
	ClosingType    string                `json:"closingType"`
}

// CreditCheckResponse is the advisory outcome of a credit check.
type CreditCheckResponse struct {
	PartyID          string          `json:"partyID"`
	Allowed          bool            `json:"allowed"`
	CreditLimit      decimal.Decimal `json:"creditLimit"`
	CurrentExposure  decimal.Decimal `json:"currentExposure"`
	ProposedAmount   decimal.Decimal `json:"proposedAmount"`
	BalanceDirection string          `json:"balanceDirection"`
	Message          string          `json:"message"`
}

// ToPartyBalanceResponse converts a domain balance to its response.
func ToPartyBalanceResponse(b *domain.PartyBalance) PartyBalanceResponse {
	return PartyBalanceResponse{
		PartyID:          b.PartyID,
		AsOf:             b.AsOf.Format(accounting.DateLayout),
		OpeningBalance:   b.OpeningBalance,
		TotalSales:       b.TotalSales,
		TotalPayments:    b.TotalPayments,
		CurrentBalance:   b.CurrentBalance,
		BalanceDirection: string(b.BalanceDirection),
	}
}

// ToPartyStatementResponse converts a domain statement to its response.
func ToPartyStatementResponse(s *domain.PartyStatement) PartyStatementResponse {
	entries := make([]LedgerEntryResponse, len(s.Entries))
	for i, e := range s.Entries {
		entries[i] = LedgerEntryResponse{
			LedgerEntryID: e.LedgerEntryID,
			Date:          e.EntryDate.Format(accounting.DateLayout),
			Narration:     e.Narration,
			Debit:         e.Debit,
			Credit:        e.Credit,
			Balance:       e.Balance,
			BalanceType:   string(e.BalanceType),
			VoucherType:   string(e.VoucherType),
			VoucherRef:    e.VoucherRef,
			Informational: e.Informational,
			Amount:        e.Amount,
		}
	}
	return PartyStatementResponse{
		PartyID:        s.PartyID,
		PartyName:      s.PartyName,
		FinancialYear:  s.FinancialYear,
		FromDate:       s.From.Format(accounting.DateLayout),
		ToDate:         s.To.Format(accounting.DateLayout),
		OpeningBalance: s.OpeningBalance,
		OpeningType:    string(s.OpeningType),
		Entries:        entries,
		TotalDebits:    s.TotalDebits,
		TotalCredits:   s.TotalCredits,
		ClosingBalance: s.ClosingBalance,
		ClosingType:    string(s.ClosingType),
	}
}

// ToCreditCheckResponse converts a domain credit check to its response.
func ToCreditCheckResponse(r *domain.CreditCheckResult) CreditCheckResponse {
	return CreditCheckResponse{
		PartyID:          r.PartyID,
		Allowed:          r.Allowed,
		CreditLimit:      r.CreditLimit,
		CurrentExposure:  r.CurrentExposure,
		ProposedAmount:   r.ProposedAmount,
		BalanceDirection: string(r.BalanceDirection),
		Message:          r.Message,
	}
}
