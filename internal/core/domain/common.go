package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// TransactionFilter narrows Transaction Store listings. A zero value lists everything in the workplace.
// From and To are inclusive calendar dates.
type TransactionFilter struct {
	PartyID string
	From    *time.Time
	To      *time.Time
}
