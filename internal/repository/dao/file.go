package dao

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

// FileDAO stores each document as a file under root. Writes go to a
// temporary file that is renamed over the target, so readers observe
// either the old or the new body.
type FileDAO struct {
	fs   afero.Fs
	root string

	// mu serialises conditional writes within this process only.
	mu sync.Mutex
}

func NewFileDAO(fsys afero.Fs, root string) *FileDAO {
	return &FileDAO{
		fs:   fsys,
		root: root,
	}
}

func (d *FileDAO) Get(ctx context.Context, key string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}

	body, err := afero.ReadFile(d.fs, d.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Document{}, ErrDocumentNotFound
		}
		return Document{}, fmt.Errorf("afero.ReadFile -> %w", err)
	}

	return Document{Key: key, Body: body, Version: Checksum(body)}, nil
}

func (d *FileDAO) Put(ctx context.Context, key string, body []byte, cond Condition) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if cond.Check {
		d.mu.Lock()
		defer d.mu.Unlock()

		current, err := d.Get(ctx, key)
		exists := err == nil
		if err != nil && !errors.Is(err, ErrDocumentNotFound) {
			return err
		}
		if !cond.satisfiedBy(current.Version, exists) {
			return ErrVersionMismatch
		}
	}

	target := d.path(key)
	dir := filepath.Dir(target)
	if err := d.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("d.fs.MkdirAll -> %w", err)
	}

	tmp, err := afero.TempFile(d.fs, dir, "."+filepath.Base(target)+".tmp-*")
	if err != nil {
		return fmt.Errorf("afero.TempFile -> %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(body); err != nil {
		_ = tmp.Close()
		_ = d.fs.Remove(tmpName)
		return fmt.Errorf("tmp.Write -> %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = d.fs.Remove(tmpName)
		return fmt.Errorf("tmp.Close -> %w", err)
	}

	if err := d.fs.Rename(tmpName, target); err != nil {
		_ = d.fs.Remove(tmpName)
		return fmt.Errorf("d.fs.Rename -> %w", err)
	}

	return nil
}

func (d *FileDAO) path(key string) string {
	return filepath.Join(d.root, filepath.FromSlash(key))
}
