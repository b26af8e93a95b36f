package services

import (
	portsrepo "github.com/SscSPs/tradebook/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/tradebook/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// Every service shares the same store and options.
func NewServiceContainer(store portsrepo.TransactionStore, opts ...ServiceOption) *portssvc.ServiceContainer {
	// Balance service first since the others depend on it
	balance := NewBalanceService(store, opts...)

	return &portssvc.ServiceContainer{
		Balance:   balance,
		Statement: NewStatementService(store, balance, opts...),
		Credit:    NewCreditService(store, balance),
		Reporting: NewReportingService(store, opts...),
		Payment:   NewPaymentService(store, balance, opts...),
	}
}
