// Package session provides a Redis-backed session store.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"trading_backend/internal/feature/auth/domain/entity"
	"trading_backend/internal/feature/auth/usecase"
)

// SessionRedis implements usecase.SessionRepository using Redis.
// Expiration is delegated to Redis TTLs.
type SessionRedis struct {
	client *redis.Client
	prefix string
}

var _ usecase.SessionRepository = (*SessionRedis)(nil)

// NewSessionRedis creates a new SessionRedis instance.
func NewSessionRedis(client *redis.Client, prefix string) *SessionRedis {
	return &SessionRedis{
		client: client,
		prefix: prefix,
	}
}

// sessionKey returns the Redis key for a session.
func (r *SessionRedis) sessionKey(id string) string {
	return fmt.Sprintf("%s:%s", r.prefix, id)
}

// userSessionsKey returns the Redis key for a user's session set.
func (r *SessionRedis) userSessionsKey(userID uint) string {
	return fmt.Sprintf("%s:user:%d", r.prefix, userID)
}

// Create persists a new session to Redis with a TTL matching its expiration.
func (r *SessionRedis) Create(ctx context.Context, session *entity.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}

	if err := r.client.Set(ctx, r.sessionKey(session.ID), data, ttl).Err(); err != nil {
		return err
	}

	// Track session membership per user
	return r.client.SAdd(ctx, r.userSessionsKey(session.UserID), session.ID).Err()
}

// FindByID retrieves a session by its ID.
func (r *SessionRedis) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	data, err := r.client.Get(ctx, r.sessionKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}

	var session entity.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// Revoke marks a session as revoked.
func (r *SessionRedis) Revoke(ctx context.Context, id string) error {
	session, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}

	now := time.Now()
	session.RevokedAt = &now

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	// Keep short TTL for revoked sessions (for audit purposes)
	return r.client.Set(ctx, r.sessionKey(id), data, 24*time.Hour).Err()
}

// CountByUserID returns the number of active sessions for a user.
// Expired entries found along the way are pruned from the user's set.
func (r *SessionRedis) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	ids, err := r.client.SMembers(ctx, r.userSessionsKey(userID)).Result()
	if err != nil {
		return 0, err
	}

	var count int64
	for _, id := range ids {
		session, err := r.FindByID(ctx, id)
		if err != nil {
			if err == usecase.ErrSessionNotFound {
				r.client.SRem(ctx, r.userSessionsKey(userID), id)
				continue
			}
			return 0, err
		}
		if session.IsValid() {
			count++
		}
	}
	return count, nil
}

// DeleteOldestByUserID deletes the oldest session for a user.
func (r *SessionRedis) DeleteOldestByUserID(ctx context.Context, userID uint) error {
	ids, err := r.client.SMembers(ctx, r.userSessionsKey(userID)).Result()
	if err != nil {
		return err
	}

	var oldest *entity.Session
	for _, id := range ids {
		session, err := r.FindByID(ctx, id)
		if err != nil {
			if err == usecase.ErrSessionNotFound {
				r.client.SRem(ctx, r.userSessionsKey(userID), id)
				continue
			}
			return err
		}
		if oldest == nil || session.CreatedAt.Before(oldest.CreatedAt) {
			oldest = session
		}
	}
	if oldest == nil {
		return nil
	}

	if err := r.client.Del(ctx, r.sessionKey(oldest.ID)).Err(); err != nil {
		return err
	}
	return r.client.SRem(ctx, r.userSessionsKey(userID), oldest.ID).Err()
}
