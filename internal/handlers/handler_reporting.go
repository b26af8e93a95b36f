package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/tradebook/internal/core/ports/services"
	"github.com/SscSPs/tradebook/internal/dto"
	"github.com/SscSPs/tradebook/internal/middleware"
	"github.com/SscSPs/tradebook/internal/utils/accounting"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
	now              func() time.Time
}

// registerReportingRoutes registers routes related to financial reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := &reportingHandler{reportingService: reportingService, now: time.Now}

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/trial-balance", h.getTrialBalance)
		reportingGroup.GET("/profit-and-loss", h.getProfitAndLoss)
		reportingGroup.GET("/balance-sheet", h.getBalanceSheet)
	}
}

// getTrialBalance godoc
// @Summary Generate a trial balance
// @Description Generates a trial balance as of the optional asOf date (default today)
// @Tags reports
// @Produce  json
// @Param   workplace_id path string true "Workplace ID"
// @Param   asOf query string false "As-of date (YYYY-MM-DD)"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Invalid date format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "No access to workplace"
// @Failure 500 {object} map[string]string "Failed to generate trial balance"
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workplaceID := c.Param("workplace_id")

	var query dto.AsOfQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Invalid asOf date format", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}
	asOf, err := parseOptionalDate(query.AsOf)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	report, err := h.reportingService.TrialBalance(c.Request.Context(), workplaceID, asOf)
	if err != nil {
		respondWithError(c, logger, err, "Generate trial balance")
		return
	}
	if !report.IsBalanced {
		logger.Warn("Trial balance does not balance",
			slog.String("total_debit", report.TotalDebit.String()),
			slog.String("total_credit", report.TotalCredit.String()))
	}
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(report))
}

// getProfitAndLoss godoc
// @Summary Generate a profit and loss report
// @Description toDate defaults to today and fromDate to the start of the financial year containing toDate
// @Tags reports
// @Produce  json
// @Param   workplace_id path string true "Workplace ID"
// @Param   fromDate query string false "Start date (YYYY-MM-DD)"
// @Param   toDate query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.ProfitAndLossResponse
// @Failure 400 {object} map[string]string "Invalid date range"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "No access to workplace"
// @Failure 500 {object} map[string]string "Failed to generate profit and loss"
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/reports/profit-and-loss [get]
func (h *reportingHandler) getProfitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workplaceID := c.Param("workplace_id")

	var query dto.DateRangeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Invalid date range", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	to := accounting.DateOnly(h.now())
	if query.ToDate != "" {
		d, err := accounting.ParseDate(query.ToDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid toDate format. Use YYYY-MM-DD"})
			return
		}
		to = d
	}
	from := accounting.FinancialYearStart(to)
	if query.FromDate != "" {
		d, err := accounting.ParseDate(query.FromDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fromDate format. Use YYYY-MM-DD"})
			return
		}
		from = d
	}

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), workplaceID, from, to)
	if err != nil {
		respondWithError(c, logger, err, "Generate profit and loss")
		return
	}
	c.JSON(http.StatusOK, dto.ToProfitAndLossResponse(report))
}

// getBalanceSheet godoc
// @Summary Generate a balance sheet
// @Description Generates a balance sheet as of the optional asOf date (default today)
// @Tags reports
// @Produce  json
// @Param   workplace_id path string true "Workplace ID"
// @Param   asOf query string false "As-of date (YYYY-MM-DD)"
// @Success 200 {object} dto.BalanceSheetResponse
// @Failure 400 {object} map[string]string "Invalid date format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "No access to workplace"
// @Failure 500 {object} map[string]string "Failed to generate balance sheet"
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workplaceID := c.Param("workplace_id")

	var query dto.AsOfQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Invalid asOf date format", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}
	asOf, err := parseOptionalDate(query.AsOf)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), workplaceID, asOf)
	if err != nil {
		respondWithError(c, logger, err, "Generate balance sheet")
		return
	}
	if !report.IsBalanced {
		logger.Warn("Balance sheet does not balance",
			slog.String("total_assets", report.TotalAssets.String()),
			slog.String("total_liabilities", report.TotalLiabilities.String()),
			slog.String("total_equity", report.TotalEquity.String()))
	}
	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report))
}
