package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/tradebook/internal/core/ports/services"
	"github.com/SscSPs/tradebook/internal/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(r *gin.Engine, jwtSecret string, services *portssvc.ServiceContainer) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	v1 := r.Group("/api/v1", middleware.AuthMiddleware(jwtSecret))
	workplace := v1.Group("/workplaces/:workplace_id", middleware.RequireWorkplaceAccess())

	registerPartyRoutes(workplace, services)
	registerPaymentRoutes(workplace, services.Payment)
	registerReportingRoutes(workplace, services.Reporting)
}
