package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing engine functionality and
// is used by the HTTP handlers and the operator CLI.
type ServiceContainer struct {
	Balance   BalanceService
	Statement StatementService
	Credit    CreditService
	Reporting ReportingService
	Payment   PaymentService
}
