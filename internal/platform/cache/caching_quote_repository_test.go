package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trading_backend/internal/feature/portfolio/domain/entity"
	"trading_backend/internal/feature/portfolio/usecase"
)

// stubQuoteRepository はinner側の呼び出しを記録するスタブです。
type stubQuoteRepository struct {
	calls int
	quote *entity.Quote
	err   error
}

func (s *stubQuoteRepository) Lookup(ctx context.Context, symbol string) (*entity.Quote, error) {
	s.calls++
	return s.quote, s.err
}

func testQuote() *entity.Quote {
	return &entity.Quote{Symbol: "AAPL", Name: "Apple Inc", Price: decimal.NewFromInt(150)}
}

func TestNewCachingQuoteRepository_Defaults(t *testing.T) {
	repo := NewCachingQuoteRepository(nil, 0, &stubQuoteRepository{}, "")

	assert.Equal(t, time.Minute, repo.ttl)
	assert.Equal(t, "quotes", repo.namespace)
	assert.Equal(t, "quotes:AAPL", repo.cacheKey("AAPL"))
}

func TestCachingQuoteRepository_NilRedisBypassesCache(t *testing.T) {
	inner := &stubQuoteRepository{quote: testQuote()}
	repo := NewCachingQuoteRepository(nil, time.Minute, inner, "quotes")

	quote, err := repo.Lookup(context.Background(), "AAPL")

	require.NoError(t, err)
	assert.Equal(t, "AAPL", quote.Symbol)
	assert.Equal(t, 1, inner.calls)
}

func TestCachingQuoteRepository_CacheHit(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	cached, err := json.Marshal(testQuote())
	require.NoError(t, err)
	mock.ExpectGet("quotes:AAPL").SetVal(string(cached))

	inner := &stubQuoteRepository{quote: testQuote()}
	repo := NewCachingQuoteRepository(rdb, time.Minute, inner, "quotes")

	quote, err := repo.Lookup(context.Background(), "AAPL")

	require.NoError(t, err)
	assert.True(t, quote.Price.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, 0, inner.calls, "the provider must not be called on a cache hit")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingQuoteRepository_CacheMissStoresQuote(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	expected, err := json.Marshal(testQuote())
	require.NoError(t, err)
	mock.ExpectGet("quotes:AAPL").RedisNil()
	mock.ExpectSet("quotes:AAPL", expected, time.Minute).SetVal("OK")

	inner := &stubQuoteRepository{quote: testQuote()}
	repo := NewCachingQuoteRepository(rdb, time.Minute, inner, "quotes")

	quote, err := repo.Lookup(context.Background(), "AAPL")

	require.NoError(t, err)
	assert.Equal(t, "AAPL", quote.Symbol)
	assert.Equal(t, 1, inner.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingQuoteRepository_ProviderErrorIsNotCached(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet("quotes:NOPE").RedisNil()

	inner := &stubQuoteRepository{err: usecase.ErrSymbolNotFound}
	repo := NewCachingQuoteRepository(rdb, time.Minute, inner, "quotes")

	_, err := repo.Lookup(context.Background(), "NOPE")

	assert.ErrorIs(t, err, usecase.ErrSymbolNotFound)
	// Set expectationを登録していないため、キャッシュ書き込みがあれば検証で失敗する
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingQuoteRepository_CorruptEntryFallsThrough(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	expected, err := json.Marshal(testQuote())
	require.NoError(t, err)
	mock.ExpectGet("quotes:AAPL").SetVal("not json")
	mock.ExpectSet("quotes:AAPL", expected, time.Minute).SetVal("OK")

	inner := &stubQuoteRepository{quote: testQuote()}
	repo := NewCachingQuoteRepository(rdb, time.Minute, inner, "quotes")

	quote, err := repo.Lookup(context.Background(), "AAPL")

	require.NoError(t, err)
	assert.Equal(t, "AAPL", quote.Symbol)
	assert.Equal(t, 1, inner.calls, "a corrupt cache entry should fall through to the provider")
	assert.NoError(t, mock.ExpectationsWereMet())
}
