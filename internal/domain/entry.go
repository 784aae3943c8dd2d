package domain

import (
	"errors"
	"time"
)

// TimestampLayout is the UTC millisecond form used for server-assigned timestamps.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

const (
	GameFantasy5   = "fantasy5"
	GameSuperLotto = "superlotto"
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

type Entry struct {
	ID       string  `json:"id"`
	Game     string  `json:"game"`
	Picks    []Pick  `json:"picks"`
	Played   bool    `json:"played"`
	PickedAt string  `json:"pickedAt"`
	PlayedAt *string `json:"playedAt,omitempty"`
	Meta     *Meta   `json:"meta,omitempty"`
}

// timestampLayouts are the ISO 8601 forms accepted for client-supplied
// timestamps. Fractional seconds are accepted by every layout with seconds.
// Forms without an offset are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02",
}

var ErrInvalidTimestamp = errors.New("not an ISO 8601 timestamp")

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp reads an ISO 8601 date or date-time.
func ParseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidTimestamp
}
