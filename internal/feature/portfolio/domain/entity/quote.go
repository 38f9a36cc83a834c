package entity

import "github.com/shopspring/decimal"

// Quote is a point-in-time price for a ticker symbol.
// It is an ephemeral value obtained from the quote provider and never persisted.
type Quote struct {
	Symbol string
	Name   string
	Price  decimal.Decimal
}
