// Package usecase はportfolioフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"trading_backend/internal/feature/portfolio/domain/entity"
)

// QuoteRepository は外部の株価プロバイダーを抽象化します。
// Goの慣例に従い、インターフェースはプロバイダーではなくコンシューマー（usecase）が定義します。
type QuoteRepository interface {
	// Lookup は銘柄の現在の株価と表示名を取得します。
	// 銘柄が存在しない場合、ErrSymbolNotFoundを返します。
	Lookup(ctx context.Context, symbol string) (*entity.Quote, error)
}

// LedgerRepository は取引台帳と現金残高の永続化層を抽象化します。
// ExecuteTradeは「残高・保有株数の読み取り → 検証 → 台帳追記 +
// 残高更新」を1つのアトミックな単位として実行します（ユーザー行単位で直列化）。
type LedgerRepository interface {
	// CashBalance はユーザーの現在の現金残高を取得します。
	CashBalance(ctx context.Context, userID uint) (decimal.Decimal, error)

	// HoldingsByUser は符号付き株数を銘柄ごとに合計し、ネットがゼロでない保有を返します。
	HoldingsByUser(ctx context.Context, userID uint) ([]entity.Holding, error)

	// TransactionsByUser はユーザーの全取引を時系列順（created_at ASC, id ASC）で返します。
	TransactionsByUser(ctx context.Context, userID uint) ([]entity.Transaction, error)

	// ExecuteTrade は符号付き株数の取引を検証付きでアトミックに記録します。
	// 買いで残高が不足する場合はErrInsufficientFunds、
	// 売りで保有株数が不足する場合はErrInsufficientSharesを返します。
	// 拒否時には台帳行も残高も一切変更されません。
	ExecuteTrade(ctx context.Context, userID uint, symbol string, shares int64, price decimal.Decimal) (*entity.Transaction, error)

	// Deposit は現金残高をアトミックに加算します。台帳行は作成されません。
	Deposit(ctx context.Context, userID uint, amount decimal.Decimal) error
}

// portfolioUsecase はポートフォリオ操作のユースケースを実装します。
type portfolioUsecase struct {
	ledger LedgerRepository
	quotes QuoteRepository
}

// NewPortfolioUsecase はportfolioUsecaseの新しいインスタンスを生成します。
func NewPortfolioUsecase(ledger LedgerRepository, quotes QuoteRepository) *portfolioUsecase {
	return &portfolioUsecase{ledger: ledger, quotes: quotes}
}

// normalizeSymbol は銘柄コードを正規化します（空白除去・大文字化）。
func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// GetQuote は1銘柄の現在の株価と表示名を取得します。
func (u *portfolioUsecase) GetQuote(ctx context.Context, symbol string) (*entity.Quote, error) {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return nil, ErrSymbolNotFound
	}
	return u.quotes.Lookup(ctx, symbol)
}

// GetPortfolio は保有銘柄を現在の株価で評価し、現金残高と総資産を返します。
// いずれかの銘柄の株価取得に失敗した場合、操作全体が失敗します
// （上流データの異常を示すため、部分的な結果は返しません）。
func (u *portfolioUsecase) GetPortfolio(ctx context.Context, userID uint) (*entity.Portfolio, error) {
	holdings, err := u.ledger.HoldingsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	cash, err := u.ledger.CashBalance(ctx, userID)
	if err != nil {
		return nil, err
	}

	total := cash
	positions := make([]entity.Position, 0, len(holdings))
	for _, h := range holdings {
		q, err := u.quotes.Lookup(ctx, h.Symbol)
		if err != nil {
			return nil, fmt.Errorf("valuate %s: %w", h.Symbol, err)
		}
		value := q.Price.Mul(decimal.NewFromInt(h.Shares))
		positions = append(positions, entity.Position{
			Symbol: h.Symbol,
			Name:   q.Name,
			Shares: h.Shares,
			Price:  q.Price,
			Value:  value,
		})
		total = total.Add(value)
	}

	return &entity.Portfolio{Positions: positions, Cash: cash, Total: total}, nil
}

// Buy は株式を購入します。
// 事前条件: sharesは正の整数、銘柄が株価プロバイダーで解決できること。
// コスト計算後の検証と台帳追記・残高引き落としはLedgerRepositoryの
// アトミックスコープ内で行われます。株価取得中に台帳ロックは保持しません。
func (u *portfolioUsecase) Buy(ctx context.Context, userID uint, symbol string, shares int64) (*entity.Transaction, error) {
	if shares <= 0 {
		return nil, ErrInvalidQuantity
	}
	q, err := u.quotes.Lookup(ctx, normalizeSymbol(symbol))
	if err != nil {
		return nil, err
	}
	return u.ledger.ExecuteTrade(ctx, userID, q.Symbol, shares, q.Price)
}

// Sell は株式を売却します。
// 事前条件: sharesは正の整数、銘柄が解決できること。
// 保有株数の検証と台帳追記・残高入金はアトミックスコープ内で行われます。
func (u *portfolioUsecase) Sell(ctx context.Context, userID uint, symbol string, shares int64) (*entity.Transaction, error) {
	if shares <= 0 {
		return nil, ErrInvalidQuantity
	}
	q, err := u.quotes.Lookup(ctx, normalizeSymbol(symbol))
	if err != nil {
		return nil, err
	}
	// 符号付き株数: 売りは負として記録される
	return u.ledger.ExecuteTrade(ctx, userID, q.Symbol, -shares, q.Price)
}

// Deposit は現金残高を加算します。台帳行は作成されません（入金は取引ではないため）。
func (u *portfolioUsecase) Deposit(ctx context.Context, userID uint, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidQuantity
	}
	return u.ledger.Deposit(ctx, userID, amount)
}

// History はユーザーの全取引を時系列順で返します。
func (u *portfolioUsecase) History(ctx context.Context, userID uint) ([]entity.Transaction, error) {
	return u.ledger.TransactionsByUser(ctx, userID)
}
