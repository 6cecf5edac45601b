package configs

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	maxRetries = 10
	retryDelay = 5 * time.Second
)

func OpenConnection(env ENV) (*gorm.DB, error) {
	dialector, err := dialectorFor(env)
	if err != nil {
		return nil, err
	}

	// sqlite is a local file, nothing to wait for
	attempts := maxRetries
	if env.DBDriver == "sqlite" {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		db, err := gorm.Open(dialector, &gorm.Config{})
		if err == nil {
			sqlDB, pingErr := db.DB()
			if pingErr == nil {
				pingErr = sqlDB.Ping()
				if pingErr == nil {
					if env.DBDriver == "sqlite" {
						// single writer; avoids SQLITE_BUSY under concurrent requests
						sqlDB.SetMaxOpenConns(1)
					}
					log.Printf("✅ Database connection successful (%s)", env.DBDriver)
					return db, nil
				}
			}
			lastErr = pingErr
			log.Printf("❌ Failed to ping database: %v. Retrying in %v...", pingErr, retryDelay)
		} else {
			lastErr = err
			log.Printf("❌ Failed to open GORM connection: %v. Retrying in %v...", err, retryDelay)
		}

		if i < attempts-1 {
			time.Sleep(retryDelay)
		}
	}

	return nil, fmt.Errorf("failed to connect to the %s database after %d attempts: %w", env.DBDriver, attempts, lastErr)
}

func dialectorFor(env ENV) (gorm.Dialector, error) {
	switch env.DBDriver {
	case "", "sqlite":
		if dir := filepath.Dir(env.DBPath); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
			}
		}
		return sqlite.Open(env.DBPath), nil
	case "mysql":
		dsn := fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			env.DBUser,
			env.DBPassword,
			env.DBHost,
			env.DBPort,
			env.DBName,
		)
		return mysql.Open(dsn), nil
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			env.DBHost,
			env.DBUser,
			env.DBPassword,
			env.DBName,
			env.DBPort,
		)
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", env.DBDriver)
	}
}
