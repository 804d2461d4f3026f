package domain

import "time"

// Currency enumerates the display currencies a user can pick. Persisted as-is.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyAUD Currency = "AUD"
)

func (c Currency) Valid() bool {
	switch c {
	case CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyAUD:
		return true
	}
	return false
}

type Preferences struct {
	ID            string
	UserID        string
	Notifications bool
	DarkMode      bool
	Currency      Currency
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
