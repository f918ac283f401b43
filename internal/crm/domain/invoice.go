package domain

import "time"

// Invoice status values. The set is closed; anything else is rejected.
const (
	InvoiceDraft   = "draft"
	InvoiceSent    = "sent"
	InvoicePaid    = "paid"
	InvoiceOverdue = "overdue"
)

// Invoice bills a Client. Number is unique across all tenants so it can be
// quoted externally without ambiguity.
type Invoice struct {
	ID        string
	ClientID  string
	Number    string
	IssueDate time.Time // set at creation, immutable
	DueDate   *time.Time
	Status    string
	Total     float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidInvoiceStatus reports whether s is one of the four defined states.
func ValidInvoiceStatus(s string) bool {
	switch s {
	case InvoiceDraft, InvoiceSent, InvoicePaid, InvoiceOverdue:
		return true
	}
	return false
}
