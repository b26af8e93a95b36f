package config

import (
	"github.com/SscSPs/tradebook/internal/core/services"
	"github.com/SscSPs/tradebook/internal/utils/accounting"
)

// ServiceOptions translates the engine settings into service options.
func (c *Config) ServiceOptions() ([]services.ServiceOption, error) {
	policy, err := services.ParseOverpaymentPolicy(c.OverpaymentPolicy)
	if err != nil {
		return nil, err
	}
	return []services.ServiceOption{
		services.WithOverpaymentPolicy(policy),
		services.WithLedgerSnapshots(c.RecordLedgerSnapshots),
		services.WithSystemAccounts(accounting.SystemAccounts{
			Sales:     c.SystemAccountSales,
			Purchases: c.SystemAccountPurchases,
			Cash:      c.SystemAccountCash,
			Payables:  c.SystemAccountPayables,
		}),
	}, nil
}
