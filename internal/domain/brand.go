package domain

import "time"

// Team owns generations and carries the mutable credit balance. All balance
// changes go through the credit ledger.
type Team struct {
	ID        string
	Name      string
	Credits   int
	CreatedAt time.Time
}

// Brand holds the marketing identity fed into the product brief.
type Brand struct {
	ID             string
	TeamID         string
	Name           string
	Industry       string
	TargetAudience string
	Tonality       []string
	USPs           []string
	NoGos          []string
	CreatedAt      time.Time
}

// Product describes a single offer of a brand.
type Product struct {
	ID          string
	BrandID     string
	Name        string
	Description string
	Price       string
	Benefits    []string
	Objections  []string
	Reviews     []string
	CreatedAt   time.Time
}
