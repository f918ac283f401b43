package domain

import "time"

// Client is a customer record. OwnerID is never empty; ownership never
// transfers between accounts.
type Client struct {
	ID        string
	OwnerID   string
	Name      string
	Email     string
	Phone     string
	Company   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
