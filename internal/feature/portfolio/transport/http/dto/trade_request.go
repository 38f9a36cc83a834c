// Package dto はportfolioフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import "github.com/shopspring/decimal"

// TradeReq は/buyおよび/sellエンドポイントのリクエストボディを表します。
// 株数は正の整数でなければなりません。
type TradeReq struct {
	Symbol string `json:"symbol" binding:"required"`
	Shares int64  `json:"shares" binding:"required,gt=0"`
}

// DepositReq は/depositエンドポイントのリクエストボディを表します。
// 金額は文字列または数値のJSON表現を受け付けます（例: "250.50"）。
type DepositReq struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}
