package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mysticpicks/picks-api/internal/domain"
	"github.com/mysticpicks/picks-api/internal/lottery"
	"github.com/mysticpicks/picks-api/internal/repository"
)

const (
	DefaultListLimit = 10
	MaxListLimit     = 100
)

var (
	ErrEntryNotFound      = repository.ErrEntryNotFound
	ErrStorageUnavailable = repository.ErrStorageUnavailable
	ErrWriteConflict      = repository.ErrWriteConflict
)

type EntryRepository interface {
	LoadAll(ctx context.Context) ([]domain.Entry, error)
	Insert(ctx context.Context, entry domain.Entry) (domain.Entry, error)
	FindByID(ctx context.Context, id string) (domain.Entry, error)
	UpdateField(ctx context.Context, id string, mutate func(domain.Entry) domain.Entry) (domain.Entry, error)
}

// NewEntry is a pick submission that has not been validated yet.
type NewEntry struct {
	Game     string
	Picks    []lottery.RawPick
	PickedAt string
	Played   bool
	Meta     *domain.Meta
}

type EntryService struct {
	repo  EntryRepository
	now   func() time.Time
	newID func() string
}

func NewEntryService(repo EntryRepository) *EntryService {
	return &EntryService{
		repo:  repo,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// CreateEntry validates the submission and stores it as a new entry.
// Validation failures are returned as *lottery.ValidationError.
func (s *EntryService) CreateEntry(ctx context.Context, in NewEntry) (domain.Entry, error) {
	picks, err := lottery.Validate(in.Game, in.Picks)
	if err != nil {
		return domain.Entry{}, err
	}
	game, _ := lottery.Lookup(in.Game)

	now := domain.FormatTimestamp(s.now())
	entry := domain.Entry{
		ID:       s.newID(),
		Game:     game.ID,
		Picks:    picks,
		Played:   in.Played,
		PickedAt: in.PickedAt,
		Meta:     in.Meta,
	}
	if entry.PickedAt == "" {
		entry.PickedAt = now
	}
	if entry.Played {
		entry.PlayedAt = &now
	}

	created, err := s.repo.Insert(ctx, entry)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("s.repo.Insert -> %w", err)
	}

	return created, nil
}

// ListEntries returns up to limit entries, newest first. game is matched
// case-insensitively; a value that names no known game disables the
// filter, and the returned filter is empty in that case.
func (s *EntryService) ListEntries(ctx context.Context, limit int, game string) ([]domain.Entry, string, error) {
	limit = ClampLimit(limit)

	filter := ""
	if g, ok := lottery.Lookup(game); ok {
		filter = g.ID
	}

	all, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("s.repo.LoadAll -> %w", err)
	}

	items := make([]domain.Entry, 0, min(limit, len(all)))
	for _, e := range all {
		if len(items) == limit {
			break
		}
		if filter != "" && strings.ToLower(e.Game) != filter {
			continue
		}
		items = append(items, e)
	}

	return items, filter, nil
}

// ListAllEntries returns every stored entry, newest first.
func (s *EntryService) ListAllEntries(ctx context.Context) ([]domain.Entry, error) {
	all, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.LoadAll -> %w", err)
	}

	return all, nil
}

func (s *EntryService) GetEntry(ctx context.Context, id string) (domain.Entry, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return entry, nil
}

// SetPlayed marks an entry as played now, or clears its played state.
func (s *EntryService) SetPlayed(ctx context.Context, id string, played bool) (domain.Entry, error) {
	now := domain.FormatTimestamp(s.now())

	updated, err := s.repo.UpdateField(ctx, id, func(e domain.Entry) domain.Entry {
		e.Played = played
		if played {
			e.PlayedAt = &now
		} else {
			e.PlayedAt = nil
		}
		return e
	})
	if err != nil {
		return domain.Entry{}, fmt.Errorf("s.repo.UpdateField -> %w", err)
	}

	return updated, nil
}

// ClampLimit bounds a requested page size to [1, MaxListLimit].
func ClampLimit(limit int) int {
	return max(1, min(limit, MaxListLimit))
}
