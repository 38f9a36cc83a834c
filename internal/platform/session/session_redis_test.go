package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trading_backend/internal/feature/auth/domain/entity"
	"trading_backend/internal/feature/auth/usecase"
)

func TestSessionRedis_Keys(t *testing.T) {
	repo := NewSessionRedis(nil, "sessions")

	assert.Equal(t, "sessions:abc", repo.sessionKey("abc"))
	assert.Equal(t, "sessions:user:7", repo.userSessionsKey(7))
}

func TestSessionRedis_Create_AlreadyExpired(t *testing.T) {
	rdb, _ := redismock.NewClientMock()
	repo := NewSessionRedis(rdb, "sessions")

	err := repo.Create(context.Background(), &entity.Session{
		ID:        "expired",
		UserID:    1,
		ExpiresAt: time.Now().Add(-time.Hour),
	})

	assert.Error(t, err, "storing an already expired session must fail before touching Redis")
}

func TestSessionRedis_FindByID(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	repo := NewSessionRedis(rdb, "sessions")

	stored := &entity.Session{
		ID:        "session-1",
		UserID:    1,
		UserAgent: "test-agent",
		CreatedAt: time.Now().Truncate(time.Second),
		ExpiresAt: time.Now().Add(time.Hour).Truncate(time.Second),
	}
	data, err := json.Marshal(stored)
	require.NoError(t, err)
	mock.ExpectGet("sessions:session-1").SetVal(string(data))

	found, err := repo.FindByID(context.Background(), "session-1")

	require.NoError(t, err)
	assert.Equal(t, uint(1), found.UserID)
	assert.Equal(t, "test-agent", found.UserAgent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRedis_FindByID_NotFound(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	repo := NewSessionRedis(rdb, "sessions")

	mock.ExpectGet("sessions:missing").RedisNil()

	_, err := repo.FindByID(context.Background(), "missing")

	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRedis_Revoke_NotFound(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	repo := NewSessionRedis(rdb, "sessions")

	mock.ExpectGet("sessions:missing").RedisNil()

	err := repo.Revoke(context.Background(), "missing")

	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRedis_CountByUserID_PrunesStaleMembers(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	repo := NewSessionRedis(rdb, "sessions")

	valid := &entity.Session{
		ID:        "live",
		UserID:    1,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	data, err := json.Marshal(valid)
	require.NoError(t, err)

	mock.ExpectSMembers("sessions:user:1").SetVal([]string{"live", "gone"})
	mock.ExpectGet("sessions:live").SetVal(string(data))
	mock.ExpectGet("sessions:gone").RedisNil()
	mock.ExpectSRem("sessions:user:1", "gone").SetVal(1)

	count, err := repo.CountByUserID(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRedis_DeleteOldestByUserID(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	repo := NewSessionRedis(rdb, "sessions")

	now := time.Now()
	oldest := &entity.Session{ID: "old", UserID: 1, CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(time.Hour)}
	newest := &entity.Session{ID: "new", UserID: 1, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	oldData, err := json.Marshal(oldest)
	require.NoError(t, err)
	newData, err := json.Marshal(newest)
	require.NoError(t, err)

	mock.ExpectSMembers("sessions:user:1").SetVal([]string{"old", "new"})
	mock.ExpectGet("sessions:old").SetVal(string(oldData))
	mock.ExpectGet("sessions:new").SetVal(string(newData))
	mock.ExpectDel("sessions:old").SetVal(1)
	mock.ExpectSRem("sessions:user:1", "old").SetVal(1)

	err = repo.DeleteOldestByUserID(context.Background(), 1)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRedis_DeleteOldestByUserID_NoSessions(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	repo := NewSessionRedis(rdb, "sessions")

	mock.ExpectSMembers("sessions:user:42").SetVal([]string{})

	err := repo.DeleteOldestByUserID(context.Background(), 42)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
