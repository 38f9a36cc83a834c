package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"trading_backend/internal/feature/auth/domain/entity"
	"trading_backend/internal/feature/auth/usecase"
)

// sessionMySQL はSessionRepositoryインターフェースのGORM実装です。
// Redisが利用できない場合のフォールバックとして使用されます。
type sessionMySQL struct {
	db *gorm.DB
}

// sessionMySQLがSessionRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.SessionRepository = (*sessionMySQL)(nil)

// NewSessionMySQL は指定されたgorm.DB接続でsessionMySQLの新しいインスタンスを生成します。
func NewSessionMySQL(db *gorm.DB) *sessionMySQL {
	return &sessionMySQL{db: db}
}

// Create は新しいセッションをデータベースに追加します。
func (r *sessionMySQL) Create(ctx context.Context, s *entity.Session) error {
	m := sessionToModel(s)
	return r.db.WithContext(ctx).Create(&m).Error
}

// FindByID はIDでセッションを取得します。
// セッションが存在しない場合、usecase.ErrSessionNotFoundを返します。
func (r *sessionMySQL) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	var m SessionModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}
	return sessionToEntity(m), nil
}

// Revoke はセッションのRevokedAtを設定して失効させます。
func (r *sessionMySQL) Revoke(ctx context.Context, id string) error {
	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&SessionModel{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", &now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrSessionNotFound
	}
	return nil
}

// CountByUserID はユーザーの有効なセッション数を返します。
func (r *sessionMySQL) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&SessionModel{}).
		Where("user_id = ? AND revoked_at IS NULL AND expires_at > ?", userID, time.Now()).
		Count(&count).Error
	return count, err
}

// DeleteOldestByUserID はユーザーの最も古いセッションを削除します。
func (r *sessionMySQL) DeleteOldestByUserID(ctx context.Context, userID uint) error {
	var m SessionModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return r.db.WithContext(ctx).Delete(&m).Error
}
