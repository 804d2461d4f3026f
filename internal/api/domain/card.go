package domain

import "time"

// CardType enumerates the supported card networks. The string values are
// persisted; do not rename them.
type CardType string

const (
	CardTypeVisa       CardType = "visa"
	CardTypeMastercard CardType = "mastercard"
	CardTypeAmex       CardType = "amex"
)

// Valid reports whether t is one of the known card networks.
func (t CardType) Valid() bool {
	switch t {
	case CardTypeVisa, CardTypeMastercard, CardTypeAmex:
		return true
	}
	return false
}

type Card struct {
	ID        string
	OwnerID   string
	Name      string
	Type      CardType
	Last4     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
