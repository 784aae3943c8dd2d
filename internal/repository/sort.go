package repository

import (
	"slices"
	"time"

	"github.com/mysticpicks/picks-api/internal/domain"
	"github.com/mysticpicks/picks-api/internal/repository/dao"
)

type datedEntry struct {
	entry dao.Entry
	at    time.Time
	ok    bool
}

// sortNewestFirst orders entries by pickedAt descending. The sort is stable.
// Entries whose pickedAt does not parse compare equal to each other and
// after every dated entry, so they are the first to be trimmed.
func sortNewestFirst(entries []dao.Entry) []dao.Entry {
	dated := make([]datedEntry, 0, len(entries))
	for _, e := range entries {
		at, err := domain.ParseTimestamp(e.PickedAt)
		dated = append(dated, datedEntry{entry: e, at: at, ok: err == nil})
	}

	slices.SortStableFunc(dated, func(a, b datedEntry) int {
		switch {
		case a.ok && b.ok:
			return b.at.Compare(a.at)
		case a.ok:
			return -1
		case b.ok:
			return 1
		default:
			return 0
		}
	})

	sorted := make([]dao.Entry, 0, len(dated))
	for _, d := range dated {
		sorted = append(sorted, d.entry)
	}
	return sorted
}
