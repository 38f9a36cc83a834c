package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"trading_backend/internal/app/di"
	"trading_backend/internal/app/router"
	authadapters "trading_backend/internal/feature/auth/adapters"
	authhandler "trading_backend/internal/feature/auth/transport/handler"
	authusecase "trading_backend/internal/feature/auth/usecase"
	"trading_backend/internal/feature/insights/adapters/gemini"
	insightshandler "trading_backend/internal/feature/insights/transport/handler"
	insightsusecase "trading_backend/internal/feature/insights/usecase"
	portfolioadapters "trading_backend/internal/feature/portfolio/adapters"
	portfoliohandler "trading_backend/internal/feature/portfolio/transport/handler"
	portfoliousecase "trading_backend/internal/feature/portfolio/usecase"
	infradb "trading_backend/internal/platform/db"
	jwtmw "trading_backend/internal/platform/jwt"
	infraredis "trading_backend/internal/platform/redis"
)

const accessTokenTTL = 15 * time.Minute

func main() {
	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// JWT_SECRETチェック（開発中の注意喚起）
	secret := os.Getenv(jwtmw.EnvKeyJWTSecret)
	if secret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	// Repository
	userRepo := authadapters.NewUserMySQL(db)
	sessionRepo := di.NewSessionRepository(rdb, db)
	ledgerRepo := portfolioadapters.NewLedgerMySQL(db)
	quoteRepo := di.NewQuoteProvider(rdb)

	// Usecase
	jwtGen := jwtmw.NewGenerator(secret, accessTokenTTL)
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, jwtGen)
	portfolioUC := portfoliousecase.NewPortfolioUsecase(ledgerRepo, quoteRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	portfolioH := portfoliohandler.NewPortfolioHandler(portfolioUC)

	// Gemini分析はオプション（ADC未設定の環境では無効化）
	var insightsH *insightshandler.InsightsHandler
	if analyzer, err := gemini.NewGeminiAnalyzer(context.Background()); err != nil {
		slog.Warn("insights disabled: gemini client unavailable", "error", err)
	} else {
		insightsUC := insightsusecase.NewInsightsUsecase(portfolioUC, analyzer)
		insightsH = insightshandler.NewInsightsHandler(insightsUC)
	}

	// ルータ生成
	router := router.NewRouter(authH, portfolioH, insightsH)

	if err := router.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
