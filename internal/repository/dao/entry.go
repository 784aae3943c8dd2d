package dao

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// SchemaVersion is stamped on every persisted entry as "v".
const SchemaVersion = 1

var ErrMalformedDocument = errors.New("malformed entries document")

// legacyNamespace seeds ids for legacy rows that were stored without one,
// so the same row decodes to the same id on every load.
var legacyNamespace = uuid.MustParse("0b5c6f43-6a0c-4f5e-9a43-2f1d1f7a9c11")

var (
	legacyIDFields     = []string{"id", "ID", "entryId", "EntryId", "entryID", "key", "Key"}
	legacyPlayedFields = []string{"played", "Played", "isPlayed", "IsPlayed", "wasPlayed", "WasPlayed", "meta.played", "meta.Played"}
)

type Pick struct {
	Number    int     `json:"Number"`
	IsSpecial bool    `json:"IsSpecial"`
	Name      *string `json:"Name"`
}

type Meta struct {
	SourceIP  string `json:"sourceIp,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`
}

// Entry is the canonical persisted record.
type Entry struct {
	V        int     `json:"v"`
	ID       string  `json:"id"`
	Game     string  `json:"game"`
	Picks    []Pick  `json:"picks"`
	Played   bool    `json:"played"`
	PickedAt string  `json:"pickedAt"`
	PlayedAt *string `json:"playedAt,omitempty"`
	Meta     *Meta   `json:"meta,omitempty"`
}

// DecodeEntries parses a stored document. An empty body or a JSON value that
// is not an array decodes to no entries; rows without a schema version are
// migrated from the legacy field names.
func DecodeEntries(body []byte) ([]Entry, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return []Entry{}, nil
	}
	if !gjson.ValidBytes(body) {
		return nil, ErrMalformedDocument
	}

	root := gjson.ParseBytes(body)
	if !root.IsArray() {
		return []Entry{}, nil
	}

	entries := make([]Entry, 0, len(root.Array()))
	var decodeErr error
	root.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			return true
		}

		e, err := decodeEntry(item)
		if err != nil {
			decodeErr = err
			return false
		}
		entries = append(entries, e)
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}

	return entries, nil
}

// EncodeEntries serialises entries as a JSON array with a trailing newline.
func EncodeEntries(entries []Entry) ([]byte, error) {
	if entries == nil {
		entries = []Entry{}
	}

	b, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal -> %w", err)
	}

	return append(b, '\n'), nil
}

func decodeEntry(item gjson.Result) (Entry, error) {
	if item.Get("v").Int() >= SchemaVersion {
		var e Entry
		if err := json.Unmarshal([]byte(item.Raw), &e); err != nil {
			return Entry{}, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
		}
		return e, nil
	}

	return migrateLegacy(item), nil
}

func migrateLegacy(item gjson.Result) Entry {
	e := Entry{
		V:        SchemaVersion,
		ID:       firstString(item, legacyIDFields...),
		Game:     firstString(item, "game", "Game"),
		PickedAt: firstString(item, "pickedAt", "PickedAt", "createdAt"),
		Played:   firstBool(item, legacyPlayedFields...),
		Picks:    []Pick{},
	}
	if e.ID == "" {
		e.ID = uuid.NewSHA1(legacyNamespace, []byte(item.Raw)).String()
	}

	if playedAt := firstString(item, "playedAt", "PlayedAt"); e.Played && playedAt != "" {
		e.PlayedAt = &playedAt
	}

	picks := item.Get("picks")
	if !picks.Exists() {
		picks = item.Get("Picks")
	}
	for _, p := range picks.Array() {
		number := p.Get("Number")
		if !number.Exists() {
			number = p.Get("number")
		}
		e.Picks = append(e.Picks, Pick{
			Number:    int(number.Int()),
			IsSpecial: p.Get("IsSpecial").Bool() || p.Get("isSpecial").Bool(),
		})
	}

	if meta := item.Get("meta"); meta.IsObject() {
		m := Meta{
			SourceIP:  meta.Get("sourceIp").String(),
			UserAgent: meta.Get("userAgent").String(),
		}
		if m != (Meta{}) {
			e.Meta = &m
		}
	}

	return e
}

func firstString(item gjson.Result, fields ...string) string {
	for _, f := range fields {
		r := item.Get(f)
		if r.Type == gjson.Null {
			continue
		}
		if s := strings.TrimSpace(r.String()); s != "" {
			return s
		}
	}
	return ""
}

// firstBool coerces the first present field the way the history page did.
func firstBool(item gjson.Result, fields ...string) bool {
	for _, f := range fields {
		r := item.Get(f)
		if !r.Exists() {
			continue
		}

		switch r.Type {
		case gjson.True:
			return true
		case gjson.Number:
			return r.Num != 0
		case gjson.String:
			switch strings.ToLower(strings.TrimSpace(r.Str)) {
			case "", "false", "0", "no", "n":
				return false
			default:
				return true
			}
		default:
			return false
		}
	}
	return false
}
