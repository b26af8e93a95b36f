package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/tradebook/internal/apperrors"
	"github.com/SscSPs/tradebook/internal/core/domain"
	portssvc "github.com/SscSPs/tradebook/internal/core/ports/services"
	"github.com/SscSPs/tradebook/internal/core/services"
	"github.com/SscSPs/tradebook/internal/repositories/memory"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	store     *memory.Store
	container *portssvc.ServiceContainer
}

func (suite *PaymentServiceTestSuite) newContainer(opts ...services.ServiceOption) *portssvc.ServiceContainer {
	opts = append([]services.ServiceOption{services.WithClock(fixedClock(date(2024, 6, 1)))}, opts...)
	return services.NewServiceContainer(suite.store, opts...)
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.store = memory.NewStore()
	suite.container = suite.newContainer()

	suite.store.AddAccount(party("P"))
	s := sale("S1", "P", date(2024, 5, 1), "1000")
	s.Reference = "INV-001"
	suite.store.AddSale(s)
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}

func (suite *PaymentServiceTestSuite) pay(svc portssvc.PaymentService, amount string) (*domain.PaymentResult, error) {
	return svc.RecordPayment(context.Background(), testWorkplace, domain.RecordPaymentInput{
		SaleID:      "S1",
		Amount:      dec(amount),
		PaymentDate: date(2024, 5, 20),
		Mode:        "cash",
	})
}

func (suite *PaymentServiceTestSuite) TestPartialThenFull() {
	first, err := suite.pay(suite.container.Payment, "300")
	suite.Require().NoError(err)
	suite.True(first.Success)
	suite.Equal(domain.PaymentPartial, first.Sale.PaymentStatus)
	suite.True(first.Sale.AmountPaid.Equal(dec("300")))
	suite.True(first.Balance.CurrentBalance.Equal(dec("700")))

	second, err := suite.pay(suite.container.Payment, "700")
	suite.Require().NoError(err)
	suite.Equal(domain.PaymentPaid, second.Sale.PaymentStatus)
	suite.True(second.Sale.AmountPaid.Equal(dec("1000")))
	suite.False(second.Overpaid)
	suite.True(second.Balance.CurrentBalance.IsZero())

	ctx := context.Background()
	stored, err := suite.store.GetSale(ctx, testWorkplace, "S1")
	suite.Require().NoError(err)
	suite.Equal(domain.PaymentPaid, stored.PaymentStatus)

	payments, err := suite.store.ListPayments(ctx, testWorkplace, domain.TransactionFilter{PartyID: "P"})
	suite.Require().NoError(err)
	suite.Require().Len(payments, 2)
	suite.Equal("S1", payments[0].SaleID)
	suite.Equal(domain.Receipt, payments[0].Direction)
	suite.Equal("Payment received against sale INV-001", payments[0].Narration)

	account, err := suite.store.GetAccount(ctx, testWorkplace, "P")
	suite.Require().NoError(err)
	suite.True(account.CurrentBalance.IsZero())
}

func (suite *PaymentServiceTestSuite) TestStatusNeverReverts() {
	rank := map[domain.PaymentStatus]int{domain.PaymentPending: 0, domain.PaymentPartial: 1, domain.PaymentPaid: 2}
	last := domain.PaymentPending
	for _, amount := range []string{"100", "0.01", "250", "649.99", "5"} {
		result, err := suite.pay(suite.container.Payment, amount)
		suite.Require().NoError(err)
		suite.GreaterOrEqual(rank[result.Sale.PaymentStatus], rank[last])
		last = result.Sale.PaymentStatus
	}
	suite.Equal(domain.PaymentPaid, last)
}

func (suite *PaymentServiceTestSuite) TestTrialBalanceStaysBalanced() {
	ctx := context.Background()
	for _, amount := range []string{"125.50", "300", "574.50"} {
		_, err := suite.pay(suite.container.Payment, amount)
		suite.Require().NoError(err)

		tb, err := suite.container.Reporting.TrialBalance(ctx, testWorkplace, nil)
		suite.Require().NoError(err)
		suite.True(tb.IsBalanced, "after paying %s", amount)
	}
}

func (suite *PaymentServiceTestSuite) TestInvalidAmount() {
	for _, amount := range []string{"0", "-10"} {
		_, err := suite.pay(suite.container.Payment, amount)
		suite.True(errors.Is(err, apperrors.ErrValidation), amount)
	}
}

func (suite *PaymentServiceTestSuite) TestUnknownSale() {
	_, err := suite.container.Payment.RecordPayment(context.Background(), testWorkplace, domain.RecordPaymentInput{SaleID: "missing", Amount: dec("1")})
	suite.True(errors.Is(err, apperrors.ErrNotFound))
}

func (suite *PaymentServiceTestSuite) TestOverpaymentAllowed() {
	result, err := suite.pay(suite.container.Payment, "1200")

	suite.Require().NoError(err)
	suite.True(result.Overpaid)
	suite.True(result.Excess.Equal(dec("200")))
	suite.True(result.AmountPosted.Equal(dec("1200")))
	suite.Equal(domain.PaymentPaid, result.Sale.PaymentStatus)
	suite.Equal(domain.Creditor, result.Balance.BalanceDirection)
	suite.True(result.Balance.CurrentBalance.Equal(dec("200")))
}

func (suite *PaymentServiceTestSuite) TestOverpaymentKeepsBalanceSheetBalanced() {
	_, err := suite.pay(suite.container.Payment, "1200")
	suite.Require().NoError(err)

	bs, err := suite.container.Reporting.BalanceSheet(context.Background(), testWorkplace, nil)
	suite.Require().NoError(err)
	suite.True(bs.IsBalanced)
	suite.True(bs.TotalAssets.Equal(dec("1200")), bs.TotalAssets.String())
	suite.Require().Len(bs.Liabilities, 1)
	suite.Equal("P", bs.Liabilities[0].AccountID)
	suite.True(bs.Liabilities[0].NetAmount.Equal(dec("200")))
	suite.True(bs.TotalEquity.Equal(dec("1000")), bs.TotalEquity.String())
}

func (suite *PaymentServiceTestSuite) TestOverpaymentRejected() {
	container := suite.newContainer(services.WithOverpaymentPolicy(services.OverpaymentReject))

	_, err := suite.pay(container.Payment, "1200")
	suite.True(errors.Is(err, apperrors.ErrValidation))

	payments, err := suite.store.ListPayments(context.Background(), testWorkplace, domain.TransactionFilter{})
	suite.Require().NoError(err)
	suite.Empty(payments)
}

func (suite *PaymentServiceTestSuite) TestOverpaymentClamped() {
	container := suite.newContainer(services.WithOverpaymentPolicy(services.OverpaymentClamp))

	result, err := suite.pay(container.Payment, "1200")
	suite.Require().NoError(err)
	suite.False(result.Overpaid)
	suite.True(result.AmountPosted.Equal(dec("1000")))
	suite.True(result.Excess.Equal(dec("200")))
	suite.True(result.Sale.AmountPaid.Equal(dec("1000")))

	_, err = suite.pay(container.Payment, "1")
	suite.True(errors.Is(err, apperrors.ErrValidation), "nothing left to clamp to")
}

func (suite *PaymentServiceTestSuite) TestLedgerSnapshots() {
	container := suite.newContainer(services.WithLedgerSnapshots(true))

	result, err := suite.pay(container.Payment, "400")
	suite.Require().NoError(err)

	entries := suite.store.LedgerEntries(testWorkplace, "P")
	suite.Require().Len(entries, 1)
	suite.Equal(result.CashEntryID, entries[0].VoucherRef)
	suite.True(entries[0].Credit.Equal(dec("400")))
	suite.True(entries[0].Balance.Equal(dec("600")))
	suite.Equal(domain.BalanceDebit, entries[0].BalanceType)
}

func (suite *PaymentServiceTestSuite) TestRollbackWhenPartyMissing() {
	suite.store.AddSale(sale("S9", "ghost", date(2024, 5, 1), "100"))

	_, err := suite.container.Payment.RecordPayment(context.Background(), testWorkplace, domain.RecordPaymentInput{SaleID: "S9", Amount: dec("50")})
	suite.True(errors.Is(err, apperrors.ErrNotFound))

	ctx := context.Background()
	payments, err := suite.store.ListPayments(ctx, testWorkplace, domain.TransactionFilter{})
	suite.Require().NoError(err)
	suite.Empty(payments)
	stored, err := suite.store.GetSale(ctx, testWorkplace, "S9")
	suite.Require().NoError(err)
	suite.True(stored.AmountPaid.IsZero())
	suite.Equal(domain.PaymentPending, stored.PaymentStatus)
}

func TestPaymentService_StopsAtFirstFailedWrite(t *testing.T) {
	store := new(MockTransactionStore)
	dbErr := errors.New("deadlock detected")
	s := sale("S1", "P", date(2024, 5, 1), "1000")

	store.On("RunInTx", mock.Anything).Return(nil).Once()
	store.On("GetSaleForUpdate", mock.Anything, testWorkplace, "S1").Return(&s, nil).Once()
	store.On("AppendPayment", mock.Anything, mock.AnythingOfType("domain.Payment")).Return(nil).Once()
	store.On("UpdateSale", mock.Anything, testWorkplace, "S1", mock.AnythingOfType("domain.SalePatch")).Return(dbErr).Once()

	svc := services.NewPaymentService(store, services.NewBalanceService(store))
	result, err := svc.RecordPayment(context.Background(), testWorkplace, domain.RecordPaymentInput{SaleID: "S1", Amount: dec("100")})

	if result != nil || !errors.Is(err, dbErr) {
		t.Fatalf("expected wrapped store error, got result=%v err=%v", result, err)
	}
	store.AssertNotCalled(t, "UpdateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func TestPaymentService_RefreshesBalanceCacheLast(t *testing.T) {
	store := new(MockTransactionStore)
	snapshotErr := errors.New("ledger table locked")
	s := sale("S1", "P", date(2024, 5, 1), "1000")
	p := party("P")

	store.On("RunInTx", mock.Anything).Return(nil).Once()
	store.On("GetSaleForUpdate", mock.Anything, testWorkplace, "S1").Return(&s, nil).Once()
	store.On("AppendPayment", mock.Anything, mock.AnythingOfType("domain.Payment")).Return(nil).Once()
	store.On("UpdateSale", mock.Anything, testWorkplace, "S1", mock.AnythingOfType("domain.SalePatch")).Return(nil).Once()
	store.On("GetAccount", mock.Anything, testWorkplace, "P").Return(&p, nil)
	store.On("ListSales", mock.Anything, testWorkplace, mock.Anything).Return([]domain.Sale{s}, nil)
	store.On("ListPayments", mock.Anything, testWorkplace, mock.Anything).Return([]domain.Payment{}, nil)
	store.On("AppendLedgerEntry", mock.Anything, mock.AnythingOfType("domain.LedgerEntry")).Return(snapshotErr).Once()

	svc := services.NewPaymentService(store, services.NewBalanceService(store), services.WithLedgerSnapshots(true))
	result, err := svc.RecordPayment(context.Background(), testWorkplace, domain.RecordPaymentInput{SaleID: "S1", Amount: dec("100")})

	if result != nil || !errors.Is(err, snapshotErr) {
		t.Fatalf("expected wrapped snapshot error, got result=%v err=%v", result, err)
	}
	store.AssertNotCalled(t, "UpdateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}
