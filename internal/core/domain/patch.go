package domain

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// SalePatch enumerates the only fields of a Sale that may change after creation.
type SalePatch struct {
	AmountPaid    *decimal.Decimal `validate:"-"`
	PaymentStatus *PaymentStatus   `validate:"omitempty,oneof=PENDING PARTIAL PAID"`
	UpdatedAt     time.Time        `validate:"required"`
}

// Validate checks the patch before it is applied or persisted.
func (p SalePatch) Validate() error {
	if p.AmountPaid == nil && p.PaymentStatus == nil {
		return fmt.Errorf("sale patch is empty")
	}
	if p.AmountPaid != nil && p.AmountPaid.IsNegative() {
		return fmt.Errorf("amountPaid cannot be negative: %s", p.AmountPaid.String())
	}
	return validate.Struct(p)
}

// Apply copies the patched fields onto s.
func (p SalePatch) Apply(s *Sale) {
	if p.AmountPaid != nil {
		s.AmountPaid = *p.AmountPaid
	}
	if p.PaymentStatus != nil {
		s.PaymentStatus = *p.PaymentStatus
	}
	s.LastUpdatedAt = p.UpdatedAt
}

// AccountPatch enumerates the only fields of an Account the engine writes: the balance cache.
type AccountPatch struct {
	CurrentBalance   *decimal.Decimal  `validate:"-"`
	BalanceDirection *BalanceDirection `validate:"omitempty,oneof=DEBTOR CREDITOR"`
	UpdatedAt        time.Time         `validate:"required"`
}

// Validate checks the patch before it is applied or persisted.
func (p AccountPatch) Validate() error {
	if p.CurrentBalance == nil && p.BalanceDirection == nil {
		return fmt.Errorf("account patch is empty")
	}
	if p.CurrentBalance != nil && p.CurrentBalance.IsNegative() {
		return fmt.Errorf("currentBalance is a magnitude and cannot be negative: %s", p.CurrentBalance.String())
	}
	return validate.Struct(p)
}

// Apply copies the patched fields onto a.
func (p AccountPatch) Apply(a *Account) {
	if p.CurrentBalance != nil {
		a.CurrentBalance = *p.CurrentBalance
	}
	if p.BalanceDirection != nil {
		a.BalanceDirection = *p.BalanceDirection
	}
	a.LastUpdatedAt = p.UpdatedAt
}
