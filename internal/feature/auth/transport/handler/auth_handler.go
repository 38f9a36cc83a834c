// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"trading_backend/internal/api"
	"trading_backend/internal/feature/auth/transport/http/dto"
	"trading_backend/internal/feature/auth/usecase"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Signup は指定されたユーザー名とパスワードで新規ユーザーを登録します。
	Signup(ctx context.Context, username, password string) error
	// Login はユーザーを認証し、成功時にトークンの組を返します。
	Login(ctx context.Context, username, password string, client usecase.ClientInfo) (*usecase.TokenPair, error)
	// Refresh はリフレッシュトークンを検証し、新しいトークンの組を発行します。
	Refresh(ctx context.Context, refreshToken string, client usecase.ClientInfo) (*usecase.TokenPair, error)
	// Logout はリフレッシュトークンに対応するセッションを失効させます。
	Logout(ctx context.Context, refreshToken string) error
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseを注入します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// clientInfo はリクエストからセッション監査用のクライアント情報を抽出します。
func clientInfo(c *gin.Context) usecase.ClientInfo {
	return usecase.ClientInfo{
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	}
}

// Signup はユーザー登録APIエンドポイントを処理します。
// - リクエストJSONをSignupReqにバインド
// - バリデーションエラー時は400を返却
// - ユーザー名重複時は409を返却
// - 成功時は201を返却
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	if err := h.auth.Signup(c.Request.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, usecase.ErrUsernameAlreadyExists) {
			slog.Warn("signup rejected", "username", req.Username, "remote_addr", c.ClientIP())
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "username already taken"})
			return
		}
		slog.Warn("signup failed", "error", err, "username", req.Username, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "signup failed"})
		return
	}
	slog.Info("user signup successful", "username", req.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, api.MessageResponse{Message: "ok"})
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - 認証失敗時は401を返却
// - 成功時はアクセストークンとリフレッシュトークン付きで200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	tokens, err := h.auth.Login(c.Request.Context(), req.Username, req.Password, clientInfo(c))
	if err != nil {
		// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
		slog.Warn("login failed", "error", err, "username", req.Username, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid username or password"})
		return
	}
	slog.Info("user login successful", "username", req.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
	})
}

// Refresh はトークンリフレッシュAPIエンドポイントを処理します。
// 使用されたリフレッシュトークンは失効し、新しいトークンに置き換えられます。
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	tokens, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken, clientInfo(c))
	if err != nil {
		slog.Warn("token refresh failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid refresh token"})
		return
	}
	c.JSON(http.StatusOK, api.TokenResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
	})
}

// Logout はログアウトAPIエンドポイントを処理します。
// リフレッシュトークンに対応するセッションを失効させます。
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.RefreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	if err := h.auth.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		slog.Warn("logout failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid refresh token"})
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "ok"})
}
