package lottery

import (
	"strings"

	"github.com/mysticpicks/picks-api/internal/domain"
)

// Special describes a game's bonus number.
type Special struct {
	Label string
	Max   int
}

// Game is the ruleset for one lottery draw type.
type Game struct {
	ID        string
	Name      string
	MainCount int
	MainMax   int
	Special   *Special
}

// PickCount is the number of picks a submission must contain.
func (g Game) PickCount() int {
	if g.Special != nil {
		return g.MainCount + 1
	}
	return g.MainCount
}

var (
	Fantasy5 = Game{
		ID:        domain.GameFantasy5,
		Name:      "Fantasy 5",
		MainCount: 5,
		MainMax:   39,
	}

	SuperLotto = Game{
		ID:        domain.GameSuperLotto,
		Name:      "SuperLotto Plus",
		MainCount: 5,
		MainMax:   47,
		Special:   &Special{Label: "Mega", Max: 27},
	}

	games = map[string]Game{
		Fantasy5.ID:   Fantasy5,
		SuperLotto.ID: SuperLotto,
	}
)

// Lookup resolves a game id case-insensitively, ignoring surrounding space.
func Lookup(id string) (Game, bool) {
	g, ok := games[strings.ToLower(strings.TrimSpace(id))]
	return g, ok
}
