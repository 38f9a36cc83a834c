package entity

import "github.com/shopspring/decimal"

// Holding is the net share count of one symbol, derived from the ledger.
type Holding struct {
	Symbol string
	Shares int64
}

// Position is a holding valued at the current quote.
type Position struct {
	Symbol string
	Name   string
	Shares int64
	Price  decimal.Decimal
	Value  decimal.Decimal // Shares * Price
}

// Portfolio is the full valuation of a user's account:
// every non-zero position, the cash balance, and the grand total.
type Portfolio struct {
	Positions []Position
	Cash      decimal.Decimal
	Total     decimal.Decimal // sum of position values + cash
}
