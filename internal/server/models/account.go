package models

import "time"

// Account is a login identity. UserName and Email are unique; Email is
// always stored lower-cased.
type Account struct {
	ID           string
	UserName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
