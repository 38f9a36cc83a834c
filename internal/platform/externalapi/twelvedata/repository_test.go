package twelvedata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"trading_backend/internal/feature/portfolio/usecase"
)

func testConfig(baseURL string) Config {
	return Config{
		TwelveDataAPIKey: "test-api-key",
		BaseURL:          baseURL,
		Timeout:          5 * time.Second,
	}
}

func TestTwelveDataQuotes_Lookup(t *testing.T) {
	var gotSymbol, gotAPIKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSymbol = r.URL.Query().Get("symbol")
		gotAPIKey = r.URL.Query().Get("apikey")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"symbol":"AAPL","name":"Apple Inc","close":"150.2500"}`))
	}))
	defer server.Close()

	repo := NewTwelveDataQuotes(testConfig(server.URL), server.Client(), nil)

	quote, err := repo.Lookup(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotSymbol != "AAPL" {
		t.Errorf("expected symbol query AAPL, got %q", gotSymbol)
	}
	if gotAPIKey != "test-api-key" {
		t.Errorf("expected apikey query to be sent, got %q", gotAPIKey)
	}
	if quote.Symbol != "AAPL" || quote.Name != "Apple Inc" {
		t.Errorf("unexpected quote: %+v", quote)
	}
	if !quote.Price.Equal(decimal.RequireFromString("150.25")) {
		t.Errorf("expected price 150.25, got %s", quote.Price)
	}
}

func TestTwelveDataQuotes_Lookup_UnknownSymbol(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"error","code":404,"message":"symbol not found"}`))
	}))
	defer server.Close()

	repo := NewTwelveDataQuotes(testConfig(server.URL), server.Client(), nil)

	_, err := repo.Lookup(context.Background(), "NOPE")
	if !errors.Is(err, usecase.ErrSymbolNotFound) {
		t.Errorf("expected ErrSymbolNotFound, got: %v", err)
	}
}

func TestTwelveDataQuotes_Lookup_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"error","code":429,"message":"rate limit exceeded"}`))
	}))
	defer server.Close()

	repo := NewTwelveDataQuotes(testConfig(server.URL), server.Client(), nil)

	_, err := repo.Lookup(context.Background(), "AAPL")
	if err == nil {
		t.Fatal("expected an error")
	}
	if errors.Is(err, usecase.ErrSymbolNotFound) {
		t.Error("a rate limit error must not be reported as an unknown symbol")
	}
}

func TestTwelveDataQuotes_Lookup_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	repo := NewTwelveDataQuotes(testConfig(server.URL), server.Client(), nil)

	if _, err := repo.Lookup(context.Background(), "AAPL"); err == nil {
		t.Fatal("expected an error for HTTP 500")
	}
}

func TestTwelveDataQuotes_Lookup_NonPositivePrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"symbol":"AAPL","name":"Apple Inc","close":"0"}`))
	}))
	defer server.Close()

	repo := NewTwelveDataQuotes(testConfig(server.URL), server.Client(), nil)

	if _, err := repo.Lookup(context.Background(), "AAPL"); err == nil {
		t.Fatal("expected an error for a non-positive price")
	}
}
