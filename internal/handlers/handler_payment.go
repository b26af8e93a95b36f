package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/tradebook/internal/core/ports/services"
	"github.com/SscSPs/tradebook/internal/dto"
	"github.com/SscSPs/tradebook/internal/middleware"
	"github.com/gin-gonic/gin"
)

type paymentHandler struct {
	paymentService portssvc.PaymentService
}

func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentService) {
	h := &paymentHandler{paymentService: paymentService}
	rg.POST("/sales/:sale_id/payments", h.recordPayment)
}

// recordPayment godoc
// @Summary Record a payment against a sale
// @Description Appends a receipt, updates the sale paid amount and status and refreshes the party balance in one unit of work
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   workplace_id path string true "Workplace ID"
// @Param   sale_id path string true "Sale ID"
// @Param   payment body dto.RecordPaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "No access to workplace"
// @Failure 404 {object} map[string]string "Sale not found"
// @Failure 409 {object} map[string]string "Overpayment rejected"
// @Failure 500 {object} map[string]string "Failed to record payment"
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/sales/{sale_id}/payments [post]
func (h *paymentHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workplaceID, saleID := c.Param("workplace_id"), c.Param("sale_id")
	logger = logger.With(slog.String("sale_id", saleID))

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind payment request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	input, err := req.ToRecordPaymentInput(saleID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid paymentDate format. Use YYYY-MM-DD"})
		return
	}

	result, err := h.paymentService.RecordPayment(c.Request.Context(), workplaceID, input)
	if err != nil {
		respondWithError(c, logger, err, "Record payment")
		return
	}

	logger.Info("Payment recorded", slog.String("cash_entry_id", result.CashEntryID))
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(result))
}
