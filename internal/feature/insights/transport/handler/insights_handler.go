// Package handler はinsightsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"trading_backend/internal/api"
	"trading_backend/internal/feature/insights/domain/entity"
	"trading_backend/internal/feature/insights/usecase"
	jwtmw "trading_backend/internal/platform/jwt"
)

// InsightsUsecase はポートフォリオ分析のユースケースを定義します。
type InsightsUsecase interface {
	AnalyzePortfolio(ctx context.Context, userID uint) (*entity.PortfolioInsight, error)
}

// InsightsHandler はポートフォリオ分析のHTTPリクエストを処理します。
type InsightsHandler struct {
	insights InsightsUsecase
}

// NewInsightsHandler はInsightsHandlerの新しいインスタンスを生成します。
func NewInsightsHandler(insights InsightsUsecase) *InsightsHandler {
	return &InsightsHandler{insights: insights}
}

// insightRes はGET /insightsのレスポンスボディです。
type insightRes struct {
	Summary     string    `json:"summary"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Analyze はGET /insightsを処理します。
// 現在のポートフォリオに対するAI生成のコメントを返します。
func (h *InsightsHandler) Analyze(c *gin.Context) {
	uid := c.GetUint(jwtmw.ContextUserID)
	if uid == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthenticated"})
		return
	}

	insight, err := h.insights.AnalyzePortfolio(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, usecase.ErrEmptyPortfolio) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		slog.Error("portfolio analysis failed", "error", err, "user_id", uid)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "analysis unavailable"})
		return
	}

	c.JSON(http.StatusOK, insightRes{Summary: insight.Summary, GeneratedAt: insight.GeneratedAt})
}
