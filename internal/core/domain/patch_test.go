package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/tradebook/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSalePatch_Validate(t *testing.T) {
	now := time.Now()
	paid := decimal.NewFromInt(300)
	negative := decimal.NewFromInt(-1)
	partial := domain.PaymentPartial
	bogus := domain.PaymentStatus("REFUNDED")

	tests := []struct {
		name    string
		patch   domain.SalePatch
		wantErr bool
	}{
		{name: "amount and status", patch: domain.SalePatch{AmountPaid: &paid, PaymentStatus: &partial, UpdatedAt: now}},
		{name: "empty patch", patch: domain.SalePatch{UpdatedAt: now}, wantErr: true},
		{name: "negative amount", patch: domain.SalePatch{AmountPaid: &negative, UpdatedAt: now}, wantErr: true},
		{name: "unknown status", patch: domain.SalePatch{PaymentStatus: &bogus, UpdatedAt: now}, wantErr: true},
		{name: "missing timestamp", patch: domain.SalePatch{AmountPaid: &paid}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.patch.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSalePatch_Apply(t *testing.T) {
	now := time.Now()
	sale := domain.Sale{Amount: decimal.NewFromInt(1000), PaymentStatus: domain.PaymentPending}
	paid := decimal.NewFromInt(1000)
	status := domain.PaymentPaid

	domain.SalePatch{AmountPaid: &paid, PaymentStatus: &status, UpdatedAt: now}.Apply(&sale)

	assert.True(t, sale.AmountPaid.Equal(paid))
	assert.Equal(t, domain.PaymentPaid, sale.PaymentStatus)
	assert.Equal(t, now, sale.LastUpdatedAt)
	assert.True(t, sale.Outstanding().IsZero())
}

func TestAccountPatch_Validate(t *testing.T) {
	now := time.Now()
	balance := decimal.NewFromInt(600)
	debtor := domain.Debtor
	sideways := domain.BalanceDirection("SIDEWAYS")

	assert.NoError(t, domain.AccountPatch{CurrentBalance: &balance, BalanceDirection: &debtor, UpdatedAt: now}.Validate())
	assert.Error(t, domain.AccountPatch{UpdatedAt: now}.Validate())
	assert.Error(t, domain.AccountPatch{BalanceDirection: &sideways, UpdatedAt: now}.Validate())
}

func TestPaymentStatusFor(t *testing.T) {
	amount := decimal.NewFromInt(1000)

	assert.Equal(t, domain.PaymentPending, domain.PaymentStatusFor(amount, decimal.Zero))
	assert.Equal(t, domain.PaymentPartial, domain.PaymentStatusFor(amount, decimal.NewFromInt(300)))
	assert.Equal(t, domain.PaymentPaid, domain.PaymentStatusFor(amount, amount))
	assert.Equal(t, domain.PaymentPaid, domain.PaymentStatusFor(amount, decimal.NewFromInt(1200)))
}

func TestAccount_SignedOpening(t *testing.T) {
	dr := domain.Account{OpeningBalance: decimal.NewFromInt(500), OpeningDirection: domain.Debit}
	cr := domain.Account{OpeningBalance: decimal.NewFromInt(500), OpeningDirection: domain.Credit}

	assert.True(t, dr.SignedOpening().Equal(decimal.NewFromInt(500)))
	assert.True(t, cr.SignedOpening().Equal(decimal.NewFromInt(-500)))
	assert.Equal(t, domain.Asset, domain.Account{}.EffectiveType())
}

func TestAccount_ReportingType(t *testing.T) {
	party := domain.Account{IsParty: true}
	supplier := domain.Account{IsParty: true, AccountType: domain.Liability}
	bank := domain.Account{AccountType: domain.Asset}
	sales := domain.Account{IsParty: true, AccountType: domain.Income}

	assert.Equal(t, domain.Asset, party.ReportingType(decimal.NewFromInt(100)))
	assert.Equal(t, domain.Liability, party.ReportingType(decimal.NewFromInt(-100)))
	assert.Equal(t, domain.Asset, supplier.ReportingType(decimal.NewFromInt(50)))
	assert.Equal(t, domain.Liability, supplier.ReportingType(decimal.NewFromInt(-50)))
	assert.Equal(t, domain.Asset, bank.ReportingType(decimal.NewFromInt(-10)))
	assert.Equal(t, domain.Income, sales.ReportingType(decimal.NewFromInt(-10)))
}
