package request

import (
	"bytes"
	"encoding/json"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/tidwall/gjson"

	"github.com/mysticpicks/picks-api/internal/domain"
	"github.com/mysticpicks/picks-api/internal/lottery"
)

type CreateEntryRequest struct {
	Game     string          `json:"game"`
	Picks    json.RawMessage `json:"picks" swaggertype:"array,object"`
	PickedAt string          `json:"pickedAt"`
	Played   json.RawMessage `json:"played" swaggertype:"boolean"`
}

func (req *CreateEntryRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.PickedAt, validation.By(isTimestamp)),
	)
}

func isTimestamp(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := domain.ParseTimestamp(s); err != nil {
		return errors.New("must be an ISO 8601 timestamp")
	}
	return nil
}

// PickList returns the submitted picks, or nil when picks is absent or not
// an array. Elements are read leniently; type errors on Number are left for
// the game rules to report.
func (req *CreateEntryRequest) PickList() []lottery.RawPick {
	picks := gjson.ParseBytes(req.Picks)
	if !picks.IsArray() {
		return nil
	}

	out := make([]lottery.RawPick, 0, len(picks.Array()))
	for _, p := range picks.Array() {
		var raw lottery.RawPick
		if number := p.Get("Number"); number.Exists() {
			raw.Number = json.RawMessage(number.Raw)
		}
		raw.IsSpecial = p.Get("IsSpecial").Bool()
		out = append(out, raw)
	}
	return out
}

// IsPlayed is true only for a literal JSON true.
func (req *CreateEntryRequest) IsPlayed() bool {
	return bytes.Equal(bytes.TrimSpace(req.Played), []byte("true"))
}
