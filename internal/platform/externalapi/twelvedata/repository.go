package twelvedata

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"trading_backend/internal/feature/portfolio/domain/entity"
	"trading_backend/internal/feature/portfolio/usecase"
	"trading_backend/internal/platform/externalapi/twelvedata/dto"
	"trading_backend/internal/shared/ratelimiter"
)

// TwelveDataQuotes はTwelve Data外部APIから株価を取得するQuoteRepository実装です。
type TwelveDataQuotes struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.RateLimiterInterface
}

// TwelveDataQuotesがQuoteRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.QuoteRepository = (*TwelveDataQuotes)(nil)

// NewTwelveDataQuotes は指定された設定とHTTPクライアントでTwelveDataQuotesの新しいインスタンスを生成します。
// limiterがnilの場合、レート制限は行われません。
func NewTwelveDataQuotes(cfg Config, client *http.Client, limiter ratelimiter.RateLimiterInterface) *TwelveDataQuotes {
	return &TwelveDataQuotes{cfg: cfg, client: client, limiter: limiter}
}

// Lookup はTwelve Data APIから銘柄の現在の株価と表示名を取得します。
// 銘柄が存在しない場合、usecase.ErrSymbolNotFoundを返します。
func (t *TwelveDataQuotes) Lookup(ctx context.Context, symbol string) (*entity.Quote, error) {
	if t.limiter != nil {
		t.limiter.WaitIfNeeded()
	}

	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("apikey", t.cfg.TwelveDataAPIKey)

	u := fmt.Sprintf("%s/quote?%s", t.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("twelvedata http %d", res.StatusCode)
	}

	var body dto.QuoteResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Status == "error" {
		// 400/404 は未知の銘柄を示す
		if body.Code == 400 || body.Code == 404 {
			return nil, usecase.ErrSymbolNotFound
		}
		return nil, fmt.Errorf("twelvedata: %s", body.Message)
	}

	price, err := decimal.NewFromString(body.Close)
	if err != nil {
		return nil, fmt.Errorf("parse price %q: %w", body.Close, err)
	}
	if !price.IsPositive() {
		return nil, fmt.Errorf("twelvedata: non-positive price %s for %s", body.Close, symbol)
	}

	return &entity.Quote{
		Symbol: body.Symbol,
		Name:   body.Name,
		Price:  price,
	}, nil
}
