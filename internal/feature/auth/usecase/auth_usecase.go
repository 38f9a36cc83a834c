// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"trading_backend/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8

	// refreshTokenTTL はリフレッシュトークン（セッション）の有効期間です。
	refreshTokenTTL = 30 * 24 * time.Hour

	// maxSessionsPerUser は1ユーザーが同時に保持できるセッション数の上限です。
	// 超過した場合は最も古いセッションが削除されます。
	maxSessionsPerUser = 5
)

// validUsername はユーザー名に許可される文字パターンです（英数字・アンダースコア、3〜32文字）。
var validUsername = regexp.MustCompile(`^[a-zA-Z0-9_]{3,32}$`)

// startingCash は新規登録ユーザーに付与される仮想現金残高です。
var startingCash = decimal.NewFromInt(10000)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じユーザー名のユーザーが既に存在する場合、ErrUsernameAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByUsername は指定されたユーザー名に一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// JWTGenerator はJWTトークン生成のインターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type JWTGenerator interface {
	// GenerateToken は指定されたユーザーの署名済みJWTトークンを生成します。
	GenerateToken(userID uint, username string) (string, error)

	// Expiration はアクセストークンの有効期間を返します。
	Expiration() time.Duration
}

// TokenPair はログイン・リフレッシュ成功時に返されるトークンの組です。
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // アクセストークンの有効期間（秒）
}

// ClientInfo はセッション監査用のクライアント情報です。
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users        UserRepository
	sessions     SessionRepository
	jwtGenerator JWTGenerator
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, sessions SessionRepository, jwtGenerator JWTGenerator) *authUsecase {
	return &authUsecase{
		users:        users,
		sessions:     sessions,
		jwtGenerator: jwtGenerator,
	}
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

// Signup はハッシュ化されたパスワードと初期現金残高で新規ユーザーを登録します。
func (u *authUsecase) Signup(ctx context.Context, username, password string) error {
	if !validUsername.MatchString(username) {
		return errors.New("username must be 3-32 alphanumeric characters")
	}
	if err := validatePassword(password); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{
		Username: username,
		Password: string(hashed),
		Cash:     startingCash,
	}
	return u.users.Create(ctx, user)
}

// Login はユーザーを認証し、成功時にアクセストークンとリフレッシュトークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, username, password string, client ClientInfo) (*TokenPair, error) {
	user, err := u.users.FindByUsername(ctx, username)

	// ユーザー未検出時のタイミング攻撃緩和用ダミーハッシュ
	// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証する
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if err == nil {
		passwordHash = user.Password
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if err != nil || compareErr != nil {
		return nil, ErrInvalidCredentials
	}

	return u.issueTokens(ctx, user, client)
}

// Refresh はリフレッシュトークンを検証し、新しいトークンの組を発行します。
// 使用されたセッションは失効し、新しいセッションに置き換えられます（ローテーション）。
func (u *authUsecase) Refresh(ctx context.Context, refreshToken string, client ClientInfo) (*TokenPair, error) {
	session, err := u.sessions.FindByID(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	if !session.IsValid() {
		return nil, ErrInvalidRefreshToken
	}

	user, err := u.users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	if err := u.sessions.Revoke(ctx, session.ID); err != nil {
		return nil, err
	}
	return u.issueTokens(ctx, user, client)
}

// Logout はリフレッシュトークンに対応するセッションを失効させます。
func (u *authUsecase) Logout(ctx context.Context, refreshToken string) error {
	if err := u.sessions.Revoke(ctx, refreshToken); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return ErrInvalidRefreshToken
		}
		return err
	}
	return nil
}

// issueTokens はアクセストークンを生成し、新しいセッションを作成します。
// セッション数が上限を超える場合は最も古いセッションを削除します。
func (u *authUsecase) issueTokens(ctx context.Context, user *entity.User, client ClientInfo) (*TokenPair, error) {
	access, err := u.jwtGenerator.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	id, err := newSessionID()
	if err != nil {
		return nil, err
	}

	count, err := u.sessions.CountByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if count >= maxSessionsPerUser {
		if err := u.sessions.DeleteOldestByUserID(ctx, user.ID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	session := &entity.Session{
		ID:        id,
		UserID:    user.ID,
		UserAgent: client.UserAgent,
		IPAddress: client.IPAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(refreshTokenTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: session.ID,
		ExpiresIn:    int64(u.jwtGenerator.Expiration().Seconds()),
	}, nil
}

// newSessionID は暗号論的に安全な64文字の16進セッションIDを生成します。
func newSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	return hex.EncodeToString(b), nil
}
