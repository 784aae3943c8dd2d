package request

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEntryRequest_Validate(t *testing.T) {
	valid := []string{
		"",
		"2025-01-02T03:04:05Z",
		"2025-01-02T03:04:05.678Z",
		"2025-01-02T03:04:05+02:00",
		"2025-01-02T03:04:05.678",
		"2025-01-02T03:04",
		"2025-01-02",
	}
	for _, at := range valid {
		req := CreateEntryRequest{PickedAt: at}
		assert.NoError(t, req.Validate(), at)
	}

	for _, at := range []string{"yesterday", "02/01/2025", "2025-13-01", "2025-01-02 03:04:05"} {
		req := CreateEntryRequest{PickedAt: at}
		err := req.Validate()
		if assert.Error(t, err, at) {
			assert.Equal(t, "pickedAt: must be an ISO 8601 timestamp.", err.Error())
		}
	}
}

func TestCreateEntryRequest_PickList(t *testing.T) {
	var req CreateEntryRequest

	assert.Nil(t, req.PickList())

	req.Picks = json.RawMessage(`"1,2,3"`)
	assert.Nil(t, req.PickList())

	req.Picks = json.RawMessage(`[]`)
	got := req.PickList()
	assert.NotNil(t, got)
	assert.Empty(t, got)

	req.Picks = json.RawMessage(`[{"Number":7,"IsSpecial":true,"Name":null},{"Number":"8"},{},3]`)
	got = req.PickList()
	require.Len(t, got, 4)
	assert.Equal(t, "7", string(got[0].Number))
	assert.True(t, got[0].IsSpecial)
	assert.Equal(t, `"8"`, string(got[1].Number))
	assert.False(t, got[1].IsSpecial)
	assert.Nil(t, got[2].Number)
	assert.Nil(t, got[3].Number)
}

func TestCreateEntryRequest_IsPlayed(t *testing.T) {
	cases := map[string]bool{
		"":        false,
		"true":    true,
		" true ":  true,
		"false":   false,
		`"true"`:  false,
		"1":       false,
	}
	for raw, want := range cases {
		req := CreateEntryRequest{Played: json.RawMessage(raw)}
		assert.Equal(t, want, req.IsPlayed(), raw)
	}
}
