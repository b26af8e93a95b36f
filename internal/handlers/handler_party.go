package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/tradebook/internal/core/ports/services"
	"github.com/SscSPs/tradebook/internal/dto"
	"github.com/SscSPs/tradebook/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// partyHandler serves party balances, statements and credit checks.
type partyHandler struct {
	balanceService   portssvc.BalanceService
	statementService portssvc.StatementService
	creditService    portssvc.CreditService
}

func registerPartyRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := &partyHandler{
		balanceService:   services.Balance,
		statementService: services.Statement,
		creditService:    services.Credit,
	}

	parties := rg.Group("/parties/:party_id")
	{
		parties.GET("/balance", h.getBalance)
		parties.POST("/balance/refresh", h.refreshBalance)
		parties.GET("/statement", h.getStatement)
		parties.GET("/credit-check", h.checkCredit)
	}
}

// getBalance godoc
// @Summary Get a party balance
// @Description Returns the party balance as of the optional asOf date (default today)
// @Tags parties
// @Produce  json
// @Param   workplace_id path string true "Workplace ID"
// @Param   party_id path string true "Party ID"
// @Param   asOf query string false "As-of date (YYYY-MM-DD)"
// @Success 200 {object} dto.PartyBalanceResponse
// @Failure 400 {object} map[string]string "Invalid date format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "No access to workplace"
// @Failure 404 {object} map[string]string "Party not found"
// @Failure 500 {object} map[string]string "Failed to calculate balance"
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/parties/{party_id}/balance [get]
func (h *partyHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workplaceID, partyID := c.Param("workplace_id"), c.Param("party_id")

	var query dto.AsOfQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Invalid asOf query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}
	asOf, err := parseOptionalDate(query.AsOf)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	balance, err := h.balanceService.CalculatePartyBalance(c.Request.Context(), workplaceID, partyID, asOf)
	if err != nil {
		respondWithError(c, logger.With(slog.String("party_id", partyID)), err, "Calculate party balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToPartyBalanceResponse(balance))
}

// refreshBalance godoc
// @Summary Refresh a party balance
// @Description Recomputes the balance as of today and writes it to the account cache
// @Tags parties
// @Produce  json
// @Param   workplace_id path string true "Workplace ID"
// @Param   party_id path string true "Party ID"
// @Success 200 {object} dto.PartyBalanceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "No access to workplace"
// @Failure 404 {object} map[string]string "Party not found"
// @Failure 500 {object} map[string]string "Failed to update balance"
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/parties/{party_id}/balance/refresh [post]
func (h *partyHandler) refreshBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workplaceID, partyID := c.Param("workplace_id"), c.Param("party_id")

	balance, err := h.balanceService.UpdateAccountBalance(c.Request.Context(), workplaceID, partyID)
	if err != nil {
		respondWithError(c, logger.With(slog.String("party_id", partyID)), err, "Refresh party balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToPartyBalanceResponse(balance))
}

// getStatement godoc
// @Summary Get a party statement
// @Description Returns the party ledger with running balances. fromDate defaults to the start of the financial year containing toDate
// @Tags parties
// @Produce  json
// @Param   workplace_id path string true "Workplace ID"
// @Param   party_id path string true "Party ID"
// @Param   fromDate query string false "Start date (YYYY-MM-DD)"
// @Param   toDate query string false "End date (YYYY-MM-DD), default today"
// @Success 200 {object} dto.PartyStatementResponse
// @Failure 400 {object} map[string]string "Invalid date range"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "No access to workplace"
// @Failure 404 {object} map[string]string "Party not found"
// @Failure 500 {object} map[string]string "Failed to build statement"
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/parties/{party_id}/statement [get]
func (h *partyHandler) getStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workplaceID, partyID := c.Param("workplace_id"), c.Param("party_id")

	var query dto.DateRangeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Invalid statement query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}
	from, err := parseOptionalDate(query.FromDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fromDate format. Use YYYY-MM-DD"})
		return
	}
	to, err := parseOptionalDate(query.ToDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid toDate format. Use YYYY-MM-DD"})
		return
	}

	statement, err := h.statementService.BuildPartyStatement(c.Request.Context(), workplaceID, partyID, from, to)
	if err != nil {
		respondWithError(c, logger.With(slog.String("party_id", partyID)), err, "Build party statement")
		return
	}
	c.JSON(http.StatusOK, dto.ToPartyStatementResponse(statement))
}

// checkCredit godoc
// @Summary Check a party credit limit
// @Description Evaluates a proposed sale amount against the party credit limit. A denial is still a 200: the result is advisory
// @Tags parties
// @Produce  json
// @Param   workplace_id path string true "Workplace ID"
// @Param   party_id path string true "Party ID"
// @Param   amount query string true "Proposed sale amount"
// @Success 200 {object} dto.CreditCheckResponse
// @Failure 400 {object} map[string]string "Invalid amount"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "No access to workplace"
// @Failure 404 {object} map[string]string "Party not found"
// @Failure 500 {object} map[string]string "Failed to check credit"
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/parties/{party_id}/credit-check [get]
func (h *partyHandler) checkCredit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workplaceID, partyID := c.Param("workplace_id"), c.Param("party_id")

	var query dto.CreditCheckQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Invalid credit check query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount query parameter must be a number"})
		return
	}
	amount, err := decimal.NewFromString(query.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount query parameter must be a number"})
		return
	}

	result, err := h.creditService.CheckCreditLimit(c.Request.Context(), workplaceID, partyID, amount)
	if err != nil {
		respondWithError(c, logger.With(slog.String("party_id", partyID)), err, "Check credit limit")
		return
	}
	c.JSON(http.StatusOK, dto.ToCreditCheckResponse(result))
}
