// Package usecase はinsightsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"trading_backend/internal/feature/insights/domain/entity"
	portfolioentity "trading_backend/internal/feature/portfolio/domain/entity"
)

// promptTemplate はポートフォリオ分析のプロンプトテンプレートです。
const promptTemplate = "You are a neutral financial commentator. In at most three short bullet points, " +
	"comment on the diversification and concentration risk of this simulated stock portfolio. " +
	"Do not give investment advice.\n\n%s"

// ErrEmptyPortfolio は保有銘柄がない場合に返されます。
var ErrEmptyPortfolio = errors.New("portfolio has no holdings to analyze")

// PortfolioReader はポートフォリオの現在の評価を取得するインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type PortfolioReader interface {
	GetPortfolio(ctx context.Context, userID uint) (*portfolioentity.Portfolio, error)
}

// Analyzer はプロンプトから分析サマリーを生成するインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type Analyzer interface {
	// Analyze はプロンプトから分析サマリーを生成します。
	Analyze(ctx context.Context, prompt string) (string, error)
}

// insightsUsecase はポートフォリオ分析のビジネスロジックを提供します。
type insightsUsecase struct {
	portfolio PortfolioReader
	analyzer  Analyzer
}

// NewInsightsUsecase はinsightsUsecaseの新しいインスタンスを生成します。
func NewInsightsUsecase(portfolio PortfolioReader, analyzer Analyzer) *insightsUsecase {
	return &insightsUsecase{portfolio: portfolio, analyzer: analyzer}
}

// describePortfolio はポートフォリオをプロンプト用のテキストに整形します。
func describePortfolio(p *portfolioentity.Portfolio) string {
	var b strings.Builder
	for _, pos := range p.Positions {
		fmt.Fprintf(&b, "- %s (%s): %d shares, value %s\n", pos.Symbol, pos.Name, pos.Shares, pos.Value)
	}
	fmt.Fprintf(&b, "Cash: %s\nTotal: %s\n", p.Cash, p.Total)
	return b.String()
}

// AnalyzePortfolio はユーザーの現在のポートフォリオに対する分析サマリーを生成します。
// 保有銘柄がない場合はErrEmptyPortfolioを返します。
func (u *insightsUsecase) AnalyzePortfolio(ctx context.Context, userID uint) (*entity.PortfolioInsight, error) {
	p, err := u.portfolio.GetPortfolio(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(p.Positions) == 0 {
		return nil, ErrEmptyPortfolio
	}

	prompt := fmt.Sprintf(promptTemplate, describePortfolio(p))
	summary, err := u.analyzer.Analyze(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("portfolio analyzer failed: %w", err)
	}

	return &entity.PortfolioInsight{
		Summary:     summary,
		GeneratedAt: time.Now(),
	}, nil
}
