package dao

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS documents (
	key        TEXT PRIMARY KEY,
	body       BLOB NOT NULL,
	version    TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

// SQLiteDAO keeps documents in a single SQLite table.
type SQLiteDAO struct {
	db *sql.DB
}

func NewSQLiteDAO(ctx context.Context, db *sql.DB) (*SQLiteDAO, error) {
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return nil, fmt.Errorf("create documents table -> %w", err)
	}

	return &SQLiteDAO{db: db}, nil
}

func (d *SQLiteDAO) Get(ctx context.Context, key string) (Document, error) {
	doc := Document{Key: key}
	err := d.db.QueryRowContext(ctx,
		`SELECT body, version FROM documents WHERE key = ?`, key,
	).Scan(&doc.Body, &doc.Version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrDocumentNotFound
		}
		return Document{}, fmt.Errorf("d.db.QueryRowContext -> %w", err)
	}

	return doc, nil
}

func (d *SQLiteDAO) Put(ctx context.Context, key string, body []byte, cond Condition) error {
	version := Checksum(body)
	now := time.Now().UTC()

	var (
		res sql.Result
		err error
	)
	switch {
	case !cond.Check:
		res, err = d.db.ExecContext(ctx,
			`INSERT INTO documents (key, body, version, updated_at) VALUES (?, ?, ?, ?)
			 ON CONFLICT(key) DO UPDATE SET body = excluded.body, version = excluded.version, updated_at = excluded.updated_at`,
			key, body, version, now)
	case cond.Version == "":
		res, err = d.db.ExecContext(ctx,
			`INSERT INTO documents (key, body, version, updated_at) VALUES (?, ?, ?, ?)
			 ON CONFLICT(key) DO NOTHING`,
			key, body, version, now)
	default:
		res, err = d.db.ExecContext(ctx,
			`UPDATE documents SET body = ?, version = ?, updated_at = ? WHERE key = ? AND version = ?`,
			body, version, now, key, cond.Version)
	}
	if err != nil {
		return fmt.Errorf("d.db.ExecContext -> %w", err)
	}

	if cond.Check {
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("res.RowsAffected -> %w", err)
		}
		if n == 0 {
			return ErrVersionMismatch
		}
	}

	return nil
}
