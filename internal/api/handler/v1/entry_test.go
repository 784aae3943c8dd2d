package v1

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mysticpicks/picks-api/internal/service"
)

func TestParseLimit(t *testing.T) {
	assert.Equal(t, service.DefaultListLimit, parseLimit("", false))

	tests := map[string]int{
		"":                         1,
		"abc":                      1,
		"-":                        1,
		"0":                        1,
		"-4":                       1,
		"7":                        7,
		" 7 ":                      7,
		"+7":                       7,
		"5abc":                     5,
		"5.9":                      5,
		"250":                      service.MaxListLimit,
		"99999999999999999999999":  service.MaxListLimit,
		"-99999999999999999999999": 1,
	}
	for raw, want := range tests {
		assert.Equal(t, want, parseLimit(raw, true), "limit=%q", raw)
	}
}
