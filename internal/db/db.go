package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite" // Registers the "sqlite" driver.

	"github.com/mysticpicks/picks-api/internal/config"
	"github.com/mysticpicks/picks-api/internal/repository/dao"
)

func OpenPostgres(conf *config.PostgresConfig) (*gorm.DB, error) {
	return OpenPostgresWithURL(conf.DSN())
}

func OpenPostgresWithURL(url string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(url), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open -> %w", err)
	}

	if err = dao.InitTables(db); err != nil {
		return nil, fmt.Errorf("dao.InitTables -> %w", err)
	}

	return db, nil
}

// OpenBolt opens the bolt file at path, creating its directory if needed.
func OpenBolt(path string) (*bbolt.DB, error) {
	cleanPath, err := prepare(path)
	if err != nil {
		return nil, err
	}

	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt.Open -> %w", err)
	}

	return db, nil
}

// OpenSQLite opens the SQLite file at path, creating its directory if needed.
func OpenSQLite(path string) (*sql.DB, error) {
	cleanPath, err := prepare(path)
	if err != nil {
		return nil, err
	}

	dsn := cleanPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open -> %w", err)
	}

	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db.Ping -> %w", err)
	}

	return db, nil
}

func prepare(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return "", fmt.Errorf("os.MkdirAll -> %w", err)
	}

	return cleanPath, nil
}
