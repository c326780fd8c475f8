// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User is an account that owns a watchlist.
// The watchlist feature refers to it only through ID.
type User struct {
	ID uint `gorm:"primaryKey"`

	// Email is the login identity and the value carried in JWT claims.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password holds a bcrypt hash, never plaintext.
	Password string `gorm:"size:255;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
