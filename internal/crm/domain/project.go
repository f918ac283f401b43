package domain

import "time"

// Payment status values for projects.
const (
	PaymentPaid    = "paid"
	PaymentUnpaid  = "unpaid"
	PaymentPartial = "partial"
)

// Currencies accepted for project payments (3-letter ISO codes).
var SupportedCurrencies = []string{"USD", "KES", "EUR", "GBP"}

// DefaultProjectStatus is applied when a project is created without one.
// Status itself is free text; "active", "completed" and "on-hold" are the
// conventional values.
const DefaultProjectStatus = "active"

// Project is a piece of work for a Client. Its effective owner is the
// owning Client's owner; there is no owner column on the project itself.
type Project struct {
	ID              string
	ClientID        string
	Title           string
	Status          string
	StartDate       time.Time // set at creation, immutable
	DueDate         *time.Time
	PaymentCurrency string
	PaymentStatus   string
	PaymentAmount   float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ValidPaymentStatus reports whether s is one of the accepted payment states.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentPaid, PaymentUnpaid, PaymentPartial:
		return true
	}
	return false
}

// ValidCurrency reports whether c is a supported payment currency.
func ValidCurrency(c string) bool {
	for _, cur := range SupportedCurrencies {
		if c == cur {
			return true
		}
	}
	return false
}
