// Package handler はportfolioフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"trading_backend/internal/api"
	"trading_backend/internal/feature/portfolio/domain/entity"
	"trading_backend/internal/feature/portfolio/transport/http/dto"
	"trading_backend/internal/feature/portfolio/usecase"
	jwtmw "trading_backend/internal/platform/jwt"
)

// PortfolioUsecase はポートフォリオ操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type PortfolioUsecase interface {
	GetPortfolio(ctx context.Context, userID uint) (*entity.Portfolio, error)
	GetQuote(ctx context.Context, symbol string) (*entity.Quote, error)
	Buy(ctx context.Context, userID uint, symbol string, shares int64) (*entity.Transaction, error)
	Sell(ctx context.Context, userID uint, symbol string, shares int64) (*entity.Transaction, error)
	Deposit(ctx context.Context, userID uint, amount decimal.Decimal) error
	History(ctx context.Context, userID uint) ([]entity.Transaction, error)
}

// PortfolioHandler はポートフォリオ操作のHTTPリクエストを処理します。
type PortfolioHandler struct {
	portfolio PortfolioUsecase
}

// NewPortfolioHandler はPortfolioHandlerの新しいインスタンスを生成します。
func NewPortfolioHandler(portfolio PortfolioUsecase) *PortfolioHandler {
	return &PortfolioHandler{portfolio: portfolio}
}

// userID は認証ミドルウェアが設定したユーザーIDをコンテキストから取得します。
// 未設定の場合は401を返してリクエストを中断します。
func userID(c *gin.Context) (uint, bool) {
	id := c.GetUint(jwtmw.ContextUserID)
	if id == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthenticated"})
		return 0, false
	}
	return id, true
}

// statusFromError は業務エラーをHTTPステータスコードへ対応付けます。
func statusFromError(err error) int {
	switch {
	case errors.Is(err, usecase.ErrSymbolNotFound),
		errors.Is(err, usecase.ErrInvalidQuantity),
		errors.Is(err, usecase.ErrInsufficientFunds),
		errors.Is(err, usecase.ErrInsufficientShares):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError は業務エラーを適切なステータスコードとメッセージで返却します。
// 内部エラーの詳細はクライアントに公開しません。
func respondError(c *gin.Context, err error) {
	status := statusFromError(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("portfolio operation failed", "error", err, "path", c.FullPath())
		msg = "internal error"
	}
	c.JSON(status, api.ErrorResponse{Error: msg})
}

// GetPortfolio はGET /portfolioを処理します。
// 台帳から導出した保有銘柄を現在の株価で評価して返します。
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	p, err := h.portfolio.GetPortfolio(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromPortfolio(p))
}

// GetQuote はGET /quote/:symbolを処理します。
func (h *PortfolioHandler) GetQuote(c *gin.Context) {
	if _, ok := userID(c); !ok {
		return
	}
	q, err := h.portfolio.GetQuote(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.QuoteRes{Symbol: q.Symbol, Name: q.Name, Price: q.Price})
}

// Buy はPOST /buyを処理します。
// - バリデーションエラー時は400を返却
// - 残高不足・未知の銘柄時は400を返却
// - 成功時は作成された取引を201で返却
func (h *PortfolioHandler) Buy(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var req dto.TradeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	tx, err := h.portfolio.Buy(c.Request.Context(), uid, req.Symbol, req.Shares)
	if err != nil {
		respondError(c, err)
		return
	}
	slog.Info("buy executed", "user_id", uid, "symbol", tx.Symbol, "shares", tx.Shares, "price", tx.Price)
	c.JSON(http.StatusCreated, dto.FromTransaction(*tx))
}

// Sell はPOST /sellを処理します。
// - 保有株数不足・未知の銘柄時は400を返却
// - 成功時は作成された取引を201で返却
func (h *PortfolioHandler) Sell(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var req dto.TradeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	tx, err := h.portfolio.Sell(c.Request.Context(), uid, req.Symbol, req.Shares)
	if err != nil {
		respondError(c, err)
		return
	}
	slog.Info("sell executed", "user_id", uid, "symbol", tx.Symbol, "shares", tx.Shares, "price", tx.Price)
	c.JSON(http.StatusCreated, dto.FromTransaction(*tx))
}

// Deposit はPOST /depositを処理します。
// 現金残高を加算します。台帳行は作成されません。
func (h *PortfolioHandler) Deposit(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var req dto.DepositReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	if err := h.portfolio.Deposit(c.Request.Context(), uid, req.Amount); err != nil {
		respondError(c, err)
		return
	}
	slog.Info("deposit executed", "user_id", uid, "amount", req.Amount)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "ok"})
}

// History はGET /historyを処理します。
// ユーザーの全取引を時系列順で返します。
func (h *PortfolioHandler) History(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	txs, err := h.portfolio.History(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.TransactionRes, 0, len(txs))
	for _, t := range txs {
		out = append(out, dto.FromTransaction(t))
	}
	c.JSON(http.StatusOK, out)
}
