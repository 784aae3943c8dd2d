package dao

import (
	"context"
	"errors"
	"fmt"

	"go.etcd.io/bbolt"
)

const documentBucket = "documents"

var errBucketMissing = errors.New("documents bucket is missing")

// BoltDAO keeps documents as values of a single bucket.
type BoltDAO struct {
	db *bbolt.DB
}

// NewBoltDAO ensures the documents bucket exists.
func NewBoltDAO(db *bbolt.DB) (*BoltDAO, error) {
	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(documentBucket))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create bucket %q -> %w", documentBucket, err)
	}

	return &BoltDAO{db: db}, nil
}

func (d *BoltDAO) Get(ctx context.Context, key string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}

	var body []byte
	err := d.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(documentBucket))
		if bucket == nil {
			return errBucketMissing
		}

		value := bucket.Get([]byte(key))
		if value == nil {
			return ErrDocumentNotFound
		}
		// value is only valid for the life of the transaction.
		body = append([]byte(nil), value...)
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return Document{}, err
		}
		return Document{}, fmt.Errorf("d.db.View -> %w", err)
	}

	return Document{Key: key, Body: body, Version: Checksum(body)}, nil
}

func (d *BoltDAO) Put(ctx context.Context, key string, body []byte, cond Condition) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := d.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(documentBucket))
		if bucket == nil {
			return errBucketMissing
		}

		current := bucket.Get([]byte(key))
		if !cond.satisfiedBy(Checksum(current), current != nil) {
			return ErrVersionMismatch
		}

		return bucket.Put([]byte(key), body)
	})
	if err != nil {
		if errors.Is(err, ErrVersionMismatch) {
			return err
		}
		return fmt.Errorf("d.db.Update -> %w", err)
	}

	return nil
}
