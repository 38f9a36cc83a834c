package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trading_backend/internal/api"
	"trading_backend/internal/feature/auth/usecase"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockAuthUsecase はAuthUsecaseインターフェースのモック実装です。
type mockAuthUsecase struct {
	SignupFunc  func(ctx context.Context, username, password string) error
	LoginFunc   func(ctx context.Context, username, password string, client usecase.ClientInfo) (*usecase.TokenPair, error)
	RefreshFunc func(ctx context.Context, refreshToken string, client usecase.ClientInfo) (*usecase.TokenPair, error)
	LogoutFunc  func(ctx context.Context, refreshToken string) error
}

func (m *mockAuthUsecase) Signup(ctx context.Context, username, password string) error {
	return m.SignupFunc(ctx, username, password)
}

func (m *mockAuthUsecase) Login(ctx context.Context, username, password string, client usecase.ClientInfo) (*usecase.TokenPair, error) {
	return m.LoginFunc(ctx, username, password, client)
}

func (m *mockAuthUsecase) Refresh(ctx context.Context, refreshToken string, client usecase.ClientInfo) (*usecase.TokenPair, error) {
	return m.RefreshFunc(ctx, refreshToken, client)
}

func (m *mockAuthUsecase) Logout(ctx context.Context, refreshToken string) error {
	return m.LogoutFunc(ctx, refreshToken)
}

func setupAuthRouter(uc AuthUsecase) *gin.Engine {
	h := NewAuthHandler(uc)
	r := gin.New()
	r.POST("/signup", h.Signup)
	r.POST("/login", h.Login)
	r.POST("/refresh", h.Refresh)
	r.POST("/logout", h.Logout)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Signup(t *testing.T) {
	t.Run("成功時は201を返す", func(t *testing.T) {
		var gotUsername string
		uc := &mockAuthUsecase{
			SignupFunc: func(ctx context.Context, username, password string) error {
				gotUsername = username
				return nil
			},
		}
		r := setupAuthRouter(uc)

		w := postJSON(r, "/signup", `{"username":"alice","password":"password123"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "alice", gotUsername)
	})

	t.Run("ユーザー名重複時は409を返す", func(t *testing.T) {
		uc := &mockAuthUsecase{
			SignupFunc: func(ctx context.Context, username, password string) error {
				return usecase.ErrUsernameAlreadyExists
			},
		}
		r := setupAuthRouter(uc)

		w := postJSON(r, "/signup", `{"username":"alice","password":"password123"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "username already taken")
	})

	t.Run("短いパスワードはバインディングで400を返す", func(t *testing.T) {
		uc := &mockAuthUsecase{
			SignupFunc: func(ctx context.Context, username, password string) error {
				t.Error("usecase should not be called")
				return nil
			},
		}
		r := setupAuthRouter(uc)

		w := postJSON(r, "/signup", `{"username":"alice","password":"short"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ユーザー名欠落時は400を返す", func(t *testing.T) {
		r := setupAuthRouter(&mockAuthUsecase{})

		w := postJSON(r, "/signup", `{"password":"password123"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("成功時はトークンの組を返す", func(t *testing.T) {
		uc := &mockAuthUsecase{
			LoginFunc: func(ctx context.Context, username, password string, client usecase.ClientInfo) (*usecase.TokenPair, error) {
				return &usecase.TokenPair{
					AccessToken:  "access-token",
					RefreshToken: "refresh-token",
					ExpiresIn:    900,
				}, nil
			},
		}
		r := setupAuthRouter(uc)

		w := postJSON(r, "/login", `{"username":"alice","password":"password123"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		var res api.TokenResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, "access-token", res.AccessToken)
		assert.Equal(t, "refresh-token", res.RefreshToken)
		assert.Equal(t, int64(900), res.ExpiresIn)
	})

	t.Run("認証失敗時は詳細を伏せた401を返す", func(t *testing.T) {
		uc := &mockAuthUsecase{
			LoginFunc: func(ctx context.Context, username, password string, client usecase.ClientInfo) (*usecase.TokenPair, error) {
				return nil, usecase.ErrInvalidCredentials
			},
		}
		r := setupAuthRouter(uc)

		w := postJSON(r, "/login", `{"username":"alice","password":"wrong"}`)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid username or password")
	})
}

func TestAuthHandler_Refresh(t *testing.T) {
	t.Run("成功時は新しいトークンの組を返す", func(t *testing.T) {
		uc := &mockAuthUsecase{
			RefreshFunc: func(ctx context.Context, refreshToken string, client usecase.ClientInfo) (*usecase.TokenPair, error) {
				return &usecase.TokenPair{
					AccessToken:  "new-access-token",
					RefreshToken: "new-refresh-token",
					ExpiresIn:    900,
				}, nil
			},
		}
		r := setupAuthRouter(uc)

		w := postJSON(r, "/refresh", `{"refresh_token":"old-token"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		var res api.TokenResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, "new-refresh-token", res.RefreshToken)
	})

	t.Run("無効なトークン時は401を返す", func(t *testing.T) {
		uc := &mockAuthUsecase{
			RefreshFunc: func(ctx context.Context, refreshToken string, client usecase.ClientInfo) (*usecase.TokenPair, error) {
				return nil, usecase.ErrInvalidRefreshToken
			},
		}
		r := setupAuthRouter(uc)

		w := postJSON(r, "/refresh", `{"refresh_token":"bad-token"}`)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("トークン欠落時は400を返す", func(t *testing.T) {
		r := setupAuthRouter(&mockAuthUsecase{})

		w := postJSON(r, "/refresh", `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	t.Run("成功時は200を返す", func(t *testing.T) {
		var revoked string
		uc := &mockAuthUsecase{
			LogoutFunc: func(ctx context.Context, refreshToken string) error {
				revoked = refreshToken
				return nil
			},
		}
		r := setupAuthRouter(uc)

		w := postJSON(r, "/logout", `{"refresh_token":"token"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "token", revoked)
	})

	t.Run("無効なトークン時は401を返す", func(t *testing.T) {
		uc := &mockAuthUsecase{
			LogoutFunc: func(ctx context.Context, refreshToken string) error {
				return usecase.ErrInvalidRefreshToken
			},
		}
		r := setupAuthRouter(uc)

		w := postJSON(r, "/logout", `{"refresh_token":"bad-token"}`)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
