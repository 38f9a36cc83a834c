// Package entity defines the domain entities for the insights feature.
package entity

import "time"

// PortfolioInsight is an AI-generated plain-text commentary on a portfolio.
// It is advisory output only and is never persisted.
type PortfolioInsight struct {
	Summary     string
	GeneratedAt time.Time
}
