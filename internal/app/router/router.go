package router

import (
	"github.com/gin-gonic/gin"

	authhandler "trading_backend/internal/feature/auth/transport/handler"
	insightshandler "trading_backend/internal/feature/insights/transport/handler"
	portfoliohandler "trading_backend/internal/feature/portfolio/transport/handler"
	"trading_backend/internal/platform/http/handler"
	jwtmw "trading_backend/internal/platform/jwt"
)

func NewRouter(authHandler *authhandler.AuthHandler, portfolio *portfoliohandler.PortfolioHandler,
	insights *insightshandler.InsightsHandler) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// 新規ユーザー登録
	r.POST("/signup", authHandler.Signup)
	// ログイン（アクセストークン + リフレッシュトークン発行）
	r.POST("/login", authHandler.Login)
	// トークンリフレッシュ（ローテーション）
	r.POST("/refresh", authHandler.Refresh)

	// 認証必須のルート
	auth := r.Group("/")
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になる
	auth.Use(jwtmw.AuthRequired())
	{
		auth.GET("/portfolio", portfolio.GetPortfolio)
		auth.GET("/quote/:symbol", portfolio.GetQuote)
		auth.POST("/buy", portfolio.Buy)
		auth.POST("/sell", portfolio.Sell)
		auth.POST("/deposit", portfolio.Deposit)
		auth.GET("/history", portfolio.History)
		auth.POST("/logout", authHandler.Logout)

		// Gemini未設定の環境では insights は無効
		if insights != nil {
			auth.GET("/insights", insights.Analyze)
		}
	}

	return r
}
