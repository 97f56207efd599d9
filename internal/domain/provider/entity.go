package provider

import "time"

// Provider is a service professional on the platform
type Provider struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Category  string // plumbing, electrical, cleaning, ...
	City      string
	Active    bool
	Rating    float64
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
