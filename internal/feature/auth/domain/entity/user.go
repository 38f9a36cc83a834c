// Package entity defines the domain entities for the auth feature.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a registered user of the trading simulator.
// It holds the authentication credentials and the virtual cash balance
// that the portfolio feature debits and credits on trades.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Username is the unique login name. It is immutable after creation.
	Username string `gorm:"uniqueIndex;size:64;not null"`

	// Password is the bcrypt hash of the user's password.
	// This never stores the plaintext.
	Password string `gorm:"size:255;not null"`

	// Cash is the user's virtual cash balance. It must never go negative.
	Cash decimal.Decimal `gorm:"type:decimal(20,4);not null"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}
