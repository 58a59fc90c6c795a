package domain

import "time"

// Customer is the stored contact profile for a customer identity supplied
// by the authentication collaborator. Phone is resolved through this
// profile rather than stored on every booking.
type Customer struct {
	ID        string
	Name      string
	Email     string
	Phone     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
