package domain

import "time"

type User struct {
	ID           string
	Email        string
	PasswordHash string // argon2 PHC string, or legacy hex-SHA256 for rows predating migration
	FirstName    string
	LastName     string
	HasOnboarded bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
