package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/tradebook/internal/utils/accounting"
)

// OverpaymentPolicy decides what RecordPayment does with a receipt larger than the sale's outstanding amount.
type OverpaymentPolicy string

const (
	// OverpaymentAllow records the full receipt and flags the result as overpaid.
	OverpaymentAllow OverpaymentPolicy = "ALLOW"
	// OverpaymentReject refuses the receipt with a validation error.
	OverpaymentReject OverpaymentPolicy = "REJECT"
	// OverpaymentClamp records only the outstanding amount.
	OverpaymentClamp OverpaymentPolicy = "CLAMP"
)

// ParseOverpaymentPolicy parses a policy name case-insensitively. An empty string yields ALLOW.
func ParseOverpaymentPolicy(s string) (OverpaymentPolicy, error) {
	switch p := OverpaymentPolicy(strings.ToUpper(strings.TrimSpace(s))); p {
	case "":
		return OverpaymentAllow, nil
	case OverpaymentAllow, OverpaymentReject, OverpaymentClamp:
		return p, nil
	default:
		return "", fmt.Errorf("unknown overpayment policy %q (want ALLOW, REJECT or CLAMP)", s)
	}
}

type serviceOptions struct {
	now               func() time.Time
	overpaymentPolicy OverpaymentPolicy
	recordSnapshots   bool
	systemAccounts    accounting.SystemAccounts
}

func defaultServiceOptions() serviceOptions {
	return serviceOptions{
		now:               time.Now,
		overpaymentPolicy: OverpaymentAllow,
		systemAccounts:    accounting.DefaultSystemAccounts(),
	}
}

func applyServiceOptions(opts []ServiceOption) serviceOptions {
	o := defaultServiceOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// today returns the current calendar date according to the configured clock.
func (o serviceOptions) today() time.Time {
	return accounting.DateOnly(o.now())
}

// ServiceOption is a functional option shared by the engine services
type ServiceOption func(*serviceOptions)

// WithClock replaces the wall clock used for default dates and audit timestamps.
func WithClock(now func() time.Time) ServiceOption {
	return func(o *serviceOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// WithOverpaymentPolicy sets how RecordPayment treats receipts above the outstanding amount.
func WithOverpaymentPolicy(policy OverpaymentPolicy) ServiceOption {
	return func(o *serviceOptions) {
		o.overpaymentPolicy = policy
	}
}

// WithLedgerSnapshots makes RecordPayment append a ledger snapshot line for every receipt.
func WithLedgerSnapshots(enabled bool) ServiceOption {
	return func(o *serviceOptions) {
		o.recordSnapshots = enabled
	}
}

// WithSystemAccounts overrides the account IDs receiving the contra side of postings.
// Empty fields keep their defaults.
func WithSystemAccounts(sys accounting.SystemAccounts) ServiceOption {
	return func(o *serviceOptions) {
		if sys.Sales != "" {
			o.systemAccounts.Sales = sys.Sales
		}
		if sys.Purchases != "" {
			o.systemAccounts.Purchases = sys.Purchases
		}
		if sys.Cash != "" {
			o.systemAccounts.Cash = sys.Cash
		}
		if sys.Payables != "" {
			o.systemAccounts.Payables = sys.Payables
		}
	}
}
