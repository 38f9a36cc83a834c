package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"trading_backend/internal/feature/portfolio/domain/entity"
)

// PositionRes is one valued holding line in the portfolio response.
type PositionRes struct {
	Symbol string          `json:"symbol"`
	Name   string          `json:"name"`
	Shares int64           `json:"shares"`
	Price  decimal.Decimal `json:"price"`
	Value  decimal.Decimal `json:"value"`
}

// PortfolioRes is the response body for GET /portfolio.
type PortfolioRes struct {
	Positions []PositionRes   `json:"positions"`
	Cash      decimal.Decimal `json:"cash"`
	Total     decimal.Decimal `json:"total"`
}

// QuoteRes is the response body for GET /quote/:symbol.
type QuoteRes struct {
	Symbol string          `json:"symbol"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
}

// TransactionRes is one ledger row in the history and trade responses.
type TransactionRes struct {
	ID        uint            `json:"id"`
	Symbol    string          `json:"symbol"`
	Shares    int64           `json:"shares"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
}

// FromPortfolio converts the domain portfolio to its response shape.
func FromPortfolio(p *entity.Portfolio) PortfolioRes {
	positions := make([]PositionRes, 0, len(p.Positions))
	for _, pos := range p.Positions {
		positions = append(positions, PositionRes{
			Symbol: pos.Symbol,
			Name:   pos.Name,
			Shares: pos.Shares,
			Price:  pos.Price,
			Value:  pos.Value,
		})
	}
	return PortfolioRes{Positions: positions, Cash: p.Cash, Total: p.Total}
}

// FromTransaction converts a ledger row to its response shape.
func FromTransaction(t entity.Transaction) TransactionRes {
	return TransactionRes{
		ID:        t.ID,
		Symbol:    t.Symbol,
		Shares:    t.Shares,
		Price:     t.Price,
		CreatedAt: t.CreatedAt,
	}
}
