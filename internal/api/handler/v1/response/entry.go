package response

import "github.com/mysticpicks/picks-api/internal/domain"

// Entry is an entry as served over HTTP. key and Key repeat the id for
// clients written against the earlier object-per-entry API.
type Entry struct {
	domain.Entry
	LowerKey string `json:"key"`
	UpperKey string `json:"Key,omitempty"`
}

func NewEntry(e domain.Entry, withUpperKey bool) Entry {
	out := Entry{Entry: e, LowerKey: e.ID}
	if withUpperKey {
		out.UpperKey = e.ID
	}
	return out
}

func NewEntries(entries []domain.Entry, withUpperKey bool) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, NewEntry(e, withUpperKey))
	}
	return out
}

type CreateEntryResponse struct {
	OK       bool   `json:"ok"`
	ID       string `json:"id"`
	Key      string `json:"key"`
	PickedAt string `json:"pickedAt"`
}

type ListEntriesResponse struct {
	Items      []Entry `json:"items"`
	Count      int     `json:"count"`
	GameFilter *string `json:"gameFilter"`
}

type ListAllEntriesResponse struct {
	Items []Entry `json:"items"`
	Count int     `json:"count"`
}

type GetEntryResponse struct {
	Item Entry `json:"item"`
}

type SetPlayedResponse struct {
	OK       bool    `json:"ok"`
	ID       string  `json:"id"`
	Key      string  `json:"key"`
	Played   bool    `json:"played"`
	PlayedAt *string `json:"playedAt,omitempty"`
}
