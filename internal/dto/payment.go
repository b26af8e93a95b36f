package dto

import (
	"time"

	"github.com/SscSPs/tradebook/internal/core/domain"
	"github.com/SscSPs/tradebook/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// RecordPaymentRequest is the body of POST /sales/:sale_id/payments.
type RecordPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate string          `json:"paymentDate" binding:"omitempty,datetime=2006-01-02"`
	Narration   string          `json:"narration" binding:"max=255"`
	Mode        string          `json:"mode" binding:"omitempty,max=32"`
}

// ToRecordPaymentInput converts the request into the service input. A missing
// paymentDate leaves the date zero so the service applies today.
func (r RecordPaymentRequest) ToRecordPaymentInput(saleID string) (domain.RecordPaymentInput, error) {
	var paymentDate time.Time
	if r.PaymentDate != "" {
		d, err := accounting.ParseDate(r.PaymentDate)
		if err != nil {
			return domain.RecordPaymentInput{}, err
		}
		paymentDate = d
	}
	return domain.RecordPaymentInput{
		SaleID:      saleID,
		Amount:      r.Amount,
		PaymentDate: paymentDate,
		Narration:   r.Narration,
		Mode:        r.Mode,
	}, nil
}

// PaymentResponse is the outcome of a recorded payment.
type PaymentResponse struct {
	Success       bool                 `json:"success"`
	CashEntryID   string               `json:"cashEntryID"`
	SaleID        string               `json:"saleID"`
	AmountPaid    decimal.Decimal      `json:"amountPaid"`
	PaymentStatus string               `json:"paymentStatus"`
	AmountPosted  decimal.Decimal      `json:"amountPosted"`
	Overpaid      bool                 `json:"overpaid"`
	Excess        decimal.Decimal      `json:"excess"`
	Balance       PartyBalanceResponse `json:"balance"`
}

// ToPaymentResponse converts a domain payment result to its response.
func ToPaymentResponse(r *domain.PaymentResult) PaymentResponse {
	return PaymentResponse{
		Success:       r.Success,
		CashEntryID:   r.CashEntryID,
		SaleID:        r.Sale.SaleID,
		AmountPaid:    r.Sale.AmountPaid,
		PaymentStatus: string(r.Sale.PaymentStatus),
		AmountPosted:  r.AmountPosted,
		Overpaid:      r.Overpaid,
		Excess:        r.Excess,
		Balance:       ToPartyBalanceResponse(&r.Balance),
	}
}
