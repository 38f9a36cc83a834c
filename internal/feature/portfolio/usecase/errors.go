// Package usecase implements the business logic for the portfolio feature.
package usecase

import "errors"

var (
	// ErrSymbolNotFound is returned when the quote provider does not know the symbol.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrInvalidQuantity is returned when a share count or cash amount is not positive.
	ErrInvalidQuantity = errors.New("quantity must be a positive number")

	// ErrInsufficientFunds is returned when a buy would drive the cash balance negative.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientShares is returned when a sell exceeds the currently held shares.
	ErrInsufficientShares = errors.New("insufficient shares")
)
