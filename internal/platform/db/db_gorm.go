// Package db opens the application's relational database connection.
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gmysql "gorm.io/driver/mysql"
	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	authadapters "trading_backend/internal/feature/auth/adapters"
	authentity "trading_backend/internal/feature/auth/domain/entity"
	portfolioadapters "trading_backend/internal/feature/portfolio/adapters"
)

// OpenDB opens the database configured by environment variables and retries
// for up to 60 seconds while the database container is coming up.
// DB_DRIVER selects "mysql" (default) or "postgres".
func OpenDB() *gorm.DB {
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASSWORD")
	name := os.Getenv("DB_NAME")
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")

	var dialector gorm.Dialector
	switch os.Getenv("DB_DRIVER") {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			host, user, pass, name, port)
		dialector = gpostgres.Open(dsn)
	default:
		instance := os.Getenv("INSTANCE_CONNECTION_NAME")
		var dsn string
		if instance != "" {
			dsn = fmt.Sprintf("%s:%s@unix(/cloudsql/%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
				user, pass, instance, name)
		} else {
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
				user, pass, host, port, name)
		}
		dialector = gmysql.Open(dsn)
	}

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(dialector, &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		// マイグレーション（User, Transaction, Session）
		if err := db.AutoMigrate(
			&authentity.User{},
			&portfolioadapters.TransactionModel{},
			&authadapters.SessionModel{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
