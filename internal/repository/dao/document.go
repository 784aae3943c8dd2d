package dao

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrVersionMismatch  = errors.New("document version mismatch")
)

// Document is one stored blob addressed by Key.
type Document struct {
	Key     string
	Body    []byte
	Version string
}

// Condition guards a Put. The zero value overwrites unconditionally.
// With Check set, the write happens only if the stored version equals
// Version; an empty Version requires the document to be absent.
type Condition struct {
	Check   bool
	Version string
}

// Checksum is the version stamp for body.
func Checksum(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

func (c Condition) satisfiedBy(current string, exists bool) bool {
	if !c.Check {
		return true
	}
	if c.Version == "" {
		return !exists
	}
	return exists && current == c.Version
}
