package lottery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/mysticpicks/picks-api/internal/domain"
)

// ValidationError carries a client-facing reason for rejecting a submission.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

var (
	ErrMissingPicks    = &ValidationError{Reason: "missing picks"}
	ErrUnsupportedGame = &ValidationError{Reason: "unsupported or missing game type"}
)

// RawPick is a pick as submitted, before its number has been type checked.
type RawPick struct {
	Number    json.RawMessage `json:"Number"`
	IsSpecial bool            `json:"IsSpecial"`
}

// Validate checks picks against the rules of gameID and returns them
// normalised. Checks run in order: count, per-number type and range,
// uniqueness, special count. The first failure is returned.
func Validate(gameID string, picks []RawPick) ([]domain.Pick, error) {
	if picks == nil {
		return nil, ErrMissingPicks
	}

	game, ok := Lookup(gameID)
	if !ok {
		return nil, ErrUnsupportedGame
	}

	s := &submission{game: game}
	err := validation.Validate(picks,
		validation.By(s.checkCount),
		validation.By(s.checkNumbers),
		validation.By(s.checkUnique),
		validation.By(s.checkSpecials),
	)
	if err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}

	return s.picks, nil
}

// submission holds the state carried between the ordered rules.
type submission struct {
	game  Game
	picks []domain.Pick
}

func (s *submission) checkCount(value interface{}) error {
	picks := value.([]RawPick)
	if len(picks) == s.game.PickCount() {
		return nil
	}

	if s.game.Special != nil {
		return fmt.Errorf("exactly %d picks required for %s (%d numbers + 1 %s)",
			s.game.PickCount(), s.game.Name, s.game.MainCount, s.game.Special.Label)
	}
	return fmt.Errorf("exactly %d picks required for %s", s.game.PickCount(), s.game.Name)
}

func (s *submission) checkNumbers(value interface{}) error {
	picks := value.([]RawPick)
	s.picks = make([]domain.Pick, 0, len(picks))

	for i, p := range picks {
		n, err := parseNumber(p.Number)
		if err != nil {
			return fmt.Errorf("picks[%d].Number must be an integer", i)
		}

		switch {
		case p.IsSpecial && s.game.Special != nil:
			if n < 1 || n > s.game.Special.Max {
				return fmt.Errorf("%s number out of range (1..%d)", s.game.Special.Label, s.game.Special.Max)
			}
		case s.game.Special != nil:
			if n < 1 || n > s.game.MainMax {
				return fmt.Errorf("regular number out of range (1..%d)", s.game.MainMax)
			}
		default:
			if n < 1 || n > s.game.MainMax {
				return fmt.Errorf("number out of range (1..%d)", s.game.MainMax)
			}
		}

		s.picks = append(s.picks, domain.Pick{Number: n, IsSpecial: p.IsSpecial})
	}

	return nil
}

func (s *submission) checkUnique(interface{}) error {
	seen := make(map[int]struct{}, len(s.picks))
	for _, p := range s.picks {
		if p.IsSpecial && s.game.Special != nil {
			continue
		}
		if _, dup := seen[p.Number]; dup {
			if s.game.Special != nil {
				return fmt.Errorf("regular numbers must be unique")
			}
			return fmt.Errorf("numbers must be unique")
		}
		seen[p.Number] = struct{}{}
	}

	return nil
}

func (s *submission) checkSpecials(interface{}) error {
	count := 0
	for _, p := range s.picks {
		if p.IsSpecial {
			count++
		}
	}

	if s.game.Special == nil {
		if count > 0 {
			return fmt.Errorf("%s does not have special numbers", s.game.Name)
		}
		return nil
	}

	if count != 1 {
		return fmt.Errorf("exactly one pick must have IsSpecial=true")
	}
	return nil
}

func parseNumber(raw json.RawMessage) (int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] == '"' || bytes.Equal(raw, []byte("null")) {
		return 0, fmt.Errorf("not a number: %s", raw)
	}

	var num json.Number
	if err := json.Unmarshal(raw, &num); err != nil {
		return 0, err
	}

	n, err := strconv.Atoi(num.String())
	if err != nil {
		// Accept integral floats such as 7.0.
		f, ferr := num.Float64()
		if ferr != nil || f != float64(int(f)) {
			return 0, err
		}
		return int(f), nil
	}

	return n, nil
}
