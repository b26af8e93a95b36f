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
	"github.com/stretchr/testify/suite"
)

type CreditServiceTestSuite struct {
	suite.Suite
	store   *memory.Store
	service portssvc.CreditService
}

func (suite *CreditServiceTestSuite) SetupTest() {
	suite.store = memory.NewStore()
	balanceSvc := services.NewBalanceService(suite.store, services.WithClock(fixedClock(date(2024, 6, 1))))
	suite.service = services.NewCreditService(suite.store, balanceSvc)

	p := party("P")
	p.CreditLimit = dec("5000")
	suite.store.AddAccount(p)
	suite.store.AddSale(sale("S1", "P", date(2024, 5, 1), "4800"))
}

func TestCreditServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CreditServiceTestSuite))
}

func (suite *CreditServiceTestSuite) TestExceedsLimit() {
	result, err := suite.service.CheckCreditLimit(context.Background(), testWorkplace, "P", dec("300"))

	suite.Require().NoError(err)
	suite.False(result.Allowed)
	suite.True(result.CurrentExposure.Equal(dec("5100")))
	suite.Contains(result.Message, "exceeded")
	suite.True(errors.Is(result.Violation(), apperrors.ErrPolicyViolation))
}

func (suite *CreditServiceTestSuite) TestExactlyAtLimit() {
	result, err := suite.service.CheckCreditLimit(context.Background(), testWorkplace, "P", dec("200"))

	suite.Require().NoError(err)
	suite.True(result.Allowed)
	suite.True(result.CurrentExposure.Equal(dec("5000")))
	suite.NoError(result.Violation())
}

func (suite *CreditServiceTestSuite) TestOneCentAboveLimit() {
	result, err := suite.service.CheckCreditLimit(context.Background(), testWorkplace, "P", dec("200.01"))

	suite.Require().NoError(err)
	suite.False(result.Allowed)
}

func (suite *CreditServiceTestSuite) TestIgnoresStaleCache() {
	account, err := suite.store.GetAccount(context.Background(), testWorkplace, "P")
	suite.Require().NoError(err)
	account.CurrentBalance = dec("0")
	suite.store.AddAccount(*account)

	result, err := suite.service.CheckCreditLimit(context.Background(), testWorkplace, "P", dec("300"))

	suite.Require().NoError(err)
	suite.False(result.Allowed)
}

func (suite *CreditServiceTestSuite) TestCreditorAlwaysAllowed() {
	seedPayment(suite.store, receipt("C1", "P", date(2024, 5, 2), "5000"))

	result, err := suite.service.CheckCreditLimit(context.Background(), testWorkplace, "P", dec("9000"))

	suite.Require().NoError(err)
	suite.True(result.Allowed)
	suite.Equal(domain.Creditor, result.BalanceDirection)
}

func (suite *CreditServiceTestSuite) TestUnlimited() {
	suite.store.AddAccount(party("U"))
	suite.store.AddSale(sale("S2", "U", date(2024, 5, 1), "1000000"))

	result, err := suite.service.CheckCreditLimit(context.Background(), testWorkplace, "U", dec("1000000"))

	suite.Require().NoError(err)
	suite.True(result.Allowed)
}

func (suite *CreditServiceTestSuite) TestNegativeAmount() {
	_, err := suite.service.CheckCreditLimit(context.Background(), testWorkplace, "P", dec("-1"))
	suite.True(errors.Is(err, apperrors.ErrValidation))
}

func (suite *CreditServiceTestSuite) TestUnknownParty() {
	_, err := suite.service.CheckCreditLimit(context.Background(), testWorkplace, "missing", dec("1"))
	suite.True(errors.Is(err, apperrors.ErrNotFound))
}
