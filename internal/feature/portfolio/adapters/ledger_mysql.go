// Package adapters はportfolioフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	authentity "trading_backend/internal/feature/auth/domain/entity"
	"trading_backend/internal/feature/portfolio/domain/entity"
	"trading_backend/internal/feature/portfolio/usecase"
)

// ledgerMySQL はLedgerRepositoryインターフェースのGORM実装です。
// usersテーブルの現金残高とtransactionsテーブルの取引台帳を管理します。
type ledgerMySQL struct {
	db *gorm.DB
}

// ledgerMySQLがLedgerRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.LedgerRepository = (*ledgerMySQL)(nil)

// NewLedgerMySQL は指定されたgorm.DB接続でledgerMySQLの新しいインスタンスを生成します。
func NewLedgerMySQL(db *gorm.DB) *ledgerMySQL {
	return &ledgerMySQL{db: db}
}

// TransactionModel は取引台帳のデータベースモデルです。追記専用です。
type TransactionModel struct {
	ID     uint   `gorm:"primaryKey"`
	UserID uint   `gorm:"not null;index:tx_user_symbol,priority:1"`
	Symbol string `gorm:"size:32;not null;index:tx_user_symbol,priority:2"`

	// Shares は符号付き株数です（買い: 正、売り: 負）。
	Shares    int64           `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	CreatedAt time.Time       `gorm:"not null"`
}

func (TransactionModel) TableName() string {
	return "transactions"
}

func toEntity(m TransactionModel) entity.Transaction {
	return entity.Transaction{
		ID:        m.ID,
		UserID:    m.UserID,
		Symbol:    m.Symbol,
		Shares:    m.Shares,
		Price:     m.Price,
		CreatedAt: m.CreatedAt,
	}
}

// lockUser はユーザー行を取得します。sqlite以外ではSELECT ... FOR UPDATEで
// 行ロックを取り、同一ユーザーの read-validate-write を直列化します。
// sqliteはFOR UPDATE構文を持たず、書き込みがエンジン側で直列化されます。
func lockUser(tx *gorm.DB, userID uint) (*authentity.User, error) {
	q := tx
	if tx.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var user authentity.User
	if err := q.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CashBalance はユーザーの現在の現金残高を取得します。
func (r *ledgerMySQL) CashBalance(ctx context.Context, userID uint) (decimal.Decimal, error) {
	var user authentity.User
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		return decimal.Zero, err
	}
	return user.Cash, nil
}

// holdingRow は保有株数集計クエリのスキャン先です。
type holdingRow struct {
	Symbol string
	Shares int64
}

// HoldingsByUser は符号付き株数を銘柄ごとに合計して保有銘柄を導出します。
// ネットがゼロの銘柄はポートフォリオに現れないため除外します。
func (r *ledgerMySQL) HoldingsByUser(ctx context.Context, userID uint) ([]entity.Holding, error) {
	var rows []holdingRow
	err := r.db.WithContext(ctx).
		Model(&TransactionModel{}).
		Select("symbol, SUM(shares) AS shares").
		Where("user_id = ?", userID).
		Group("symbol").
		Having("SUM(shares) <> 0").
		Order("symbol ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.Holding, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.Holding{Symbol: row.Symbol, Shares: row.Shares})
	}
	return out, nil
}

// heldShares は1銘柄のネット保有株数を集計します。取引がない場合は0です。
func heldShares(tx *gorm.DB, userID uint, symbol string) (int64, error) {
	var row holdingRow
	err := tx.Model(&TransactionModel{}).
		Select("COALESCE(SUM(shares), 0) AS shares").
		Where("user_id = ? AND symbol = ?", userID, symbol).
		Scan(&row).Error
	if err != nil {
		return 0, err
	}
	return row.Shares, nil
}

// TransactionsByUser はユーザーの全取引を明示的な時系列順で返します。
func (r *ledgerMySQL) TransactionsByUser(ctx context.Context, userID uint) ([]entity.Transaction, error) {
	var rows []TransactionModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.Transaction, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}

// ExecuteTrade は1つのSQLトランザクション内で「ユーザー行ロック →
// 残高・保有株数の検証 → 台帳追記 + 残高更新」を実行します。
// 検証に失敗した場合はトランザクション全体がロールバックされ、
// 台帳行も残高も一切変更されません。
func (r *ledgerMySQL) ExecuteTrade(ctx context.Context, userID uint, symbol string, shares int64, price decimal.Decimal) (*entity.Transaction, error) {
	var out entity.Transaction
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := lockUser(tx, userID)
		if err != nil {
			return err
		}

		// 売りの場合はロック内で保有株数を再集計して検証する
		if shares < 0 {
			held, err := heldShares(tx, userID, symbol)
			if err != nil {
				return err
			}
			if held+shares < 0 {
				return usecase.ErrInsufficientShares
			}
		}

		// 符号付きコスト: 買いは正（引き落とし）、売りは負（入金）
		cost := price.Mul(decimal.NewFromInt(shares))
		newCash := user.Cash.Sub(cost)
		if newCash.IsNegative() {
			return usecase.ErrInsufficientFunds
		}

		m := TransactionModel{
			UserID: userID,
			Symbol: symbol,
			Shares: shares,
			Price:  price,
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		if err := tx.Model(&authentity.User{}).
			Where("id = ?", userID).
			Update("cash", newCash).Error; err != nil {
			return err
		}

		out = toEntity(m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Deposit はユーザー行をロックして現金残高を加算します。台帳行は作成されません。
// 加算はdecimalで行い、結果の正確な値を書き込みます。SQL側での加算は
// 文字列オペランドが浮動小数点に変換されるため使用しません。
func (r *ledgerMySQL) Deposit(ctx context.Context, userID uint, amount decimal.Decimal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := lockUser(tx, userID)
		if err != nil {
			return err
		}
		newCash := user.Cash.Add(amount)
		return tx.Model(&authentity.User{}).
			Where("id = ?", userID).
			Update("cash", newCash).Error
	})
}
