// Package entity defines the domain entities for the portfolio feature.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one row of the append-only trade ledger.
// Shares is signed: positive for a buy, negative for a sell.
// Rows are never updated or deleted; a user's holdings are derived
// by summing the signed share counts per symbol.
type Transaction struct {
	ID        uint
	UserID    uint
	Symbol    string
	Shares    int64
	Price     decimal.Decimal // execution price at trade time, immutable
	CreatedAt time.Time
}
