package adapters

import (
	"time"

	"trading_backend/internal/feature/auth/domain/entity"
)

// SessionModel はセッション（リフレッシュトークン）のデータベースモデルです。
// Redisが利用できない環境でのSQLフォールバックとして使用されます。
type SessionModel struct {
	ID        string `gorm:"primaryKey;size:64"`
	UserID    uint   `gorm:"not null;index"`
	UserAgent string `gorm:"size:255"`
	IPAddress string `gorm:"size:64"`
	CreatedAt time.Time
	ExpiresAt time.Time  `gorm:"not null;index"`
	RevokedAt *time.Time `gorm:""`
}

func (SessionModel) TableName() string {
	return "sessions"
}

func sessionToModel(s *entity.Session) SessionModel {
	return SessionModel{
		ID:        s.ID,
		UserID:    s.UserID,
		UserAgent: s.UserAgent,
		IPAddress: s.IPAddress,
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
		RevokedAt: s.RevokedAt,
	}
}

func sessionToEntity(m SessionModel) *entity.Session {
	return &entity.Session{
		ID:        m.ID,
		UserID:    m.UserID,
		UserAgent: m.UserAgent,
		IPAddress: m.IPAddress,
		CreatedAt: m.CreatedAt,
		ExpiresAt: m.ExpiresAt,
		RevokedAt: m.RevokedAt,
	}
}
