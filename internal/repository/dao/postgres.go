package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StoredDocument struct {
	Key       string    `gorm:"column:doc_key;primaryKey"`
	Body      []byte    `gorm:"not null"`
	Version   string    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (StoredDocument) TableName() string {
	return "documents"
}

// PostgresDAO keeps documents as rows of the documents table.
type PostgresDAO struct {
	db *gorm.DB
}

func NewPostgresDAO(db *gorm.DB) *PostgresDAO {
	return &PostgresDAO{
		db: db,
	}
}

func (d *PostgresDAO) Get(ctx context.Context, key string) (Document, error) {
	var stored StoredDocument
	result := d.db.WithContext(ctx).Where("doc_key = ?", key).First(&stored)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Document{}, ErrDocumentNotFound
		}
		return Document{}, result.Error
	}

	return Document{Key: stored.Key, Body: stored.Body, Version: stored.Version}, nil
}

func (d *PostgresDAO) Put(ctx context.Context, key string, body []byte, cond Condition) error {
	stored := StoredDocument{
		Key:       key,
		Body:      body,
		Version:   Checksum(body),
		UpdatedAt: time.Now().UTC(),
	}
	db := d.db.WithContext(ctx)

	switch {
	case !cond.Check:
		result := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "doc_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"body", "version", "updated_at"}),
		}).Create(&stored)
		return result.Error

	case cond.Version == "":
		result := db.Create(&stored)
		if result.Error != nil {
			var err *pgconn.PgError
			if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
				return ErrVersionMismatch
			}
			return result.Error
		}
		return nil

	default:
		result := db.Model(&StoredDocument{}).
			Where("doc_key = ? AND version = ?", key, cond.Version).
			Updates(map[string]interface{}{
				"body":       stored.Body,
				"version":    stored.Version,
				"updated_at": stored.UpdatedAt,
			})
		if result.Error != nil {
			return fmt.Errorf("d.db.Updates -> %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrVersionMismatch
		}
		return nil
	}
}
