package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/mysticpicks/picks-api/internal/config"
	"github.com/mysticpicks/picks-api/internal/domain"
	"github.com/mysticpicks/picks-api/internal/repository/dao"
)

var (
	ErrEntryNotFound      = errors.New("entry not found")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrWriteConflict      = errors.New("entries document changed during update")
)

type DocumentDAO interface {
	Get(ctx context.Context, key string) (dao.Document, error)
	Put(ctx context.Context, key string, body []byte, cond dao.Condition) error
}

// EntryRepository keeps every entry in one document. Each mutation loads the
// whole document, changes it in memory and writes it back.
//
// Two mutations running at the same time can both load the same document,
// and the second write then drops the first one's change. That lost update
// is the intended behaviour unless StoreConfig.ConditionalWrites is set, in
// which case the later writer gets ErrWriteConflict instead.
type EntryRepository struct {
	dao  DocumentDAO
	conf config.StoreConfig
}

func NewEntryRepository(dao DocumentDAO, conf config.StoreConfig) *EntryRepository {
	return &EntryRepository{
		dao:  dao,
		conf: conf,
	}
}

// LoadAll returns the stored entries, newest first. A document that was
// never written yields an empty slice.
func (r *EntryRepository) LoadAll(ctx context.Context) ([]domain.Entry, error) {
	stored, _, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	return r.daoToDomainAll(stored), nil
}

// SaveAll sorts entries newest first, trims them to the configured cap and
// overwrites the document. It returns what was written.
func (r *EntryRepository) SaveAll(ctx context.Context, entries []domain.Entry) ([]domain.Entry, error) {
	stored, err := r.save(ctx, r.domainToDaoAll(entries), dao.Condition{})
	if err != nil {
		return nil, err
	}

	return r.daoToDomainAll(stored), nil
}

// Insert prepends entry so that it wins ties on pickedAt, then saves.
func (r *EntryRepository) Insert(ctx context.Context, entry domain.Entry) (domain.Entry, error) {
	stored, version, err := r.load(ctx)
	if err != nil {
		return domain.Entry{}, err
	}

	all := make([]dao.Entry, 0, len(stored)+1)
	all = append(all, r.domainToDao(entry))
	all = append(all, stored...)

	if _, err := r.save(ctx, all, r.condition(version)); err != nil {
		return domain.Entry{}, err
	}

	return entry, nil
}

func (r *EntryRepository) FindByID(ctx context.Context, id string) (domain.Entry, error) {
	stored, _, err := r.load(ctx)
	if err != nil {
		return domain.Entry{}, err
	}

	i := slices.IndexFunc(stored, func(e dao.Entry) bool { return e.ID == id })
	if i < 0 {
		return domain.Entry{}, ErrEntryNotFound
	}

	return r.daoToDomain(stored[i]), nil
}

// UpdateField replaces the entry with id by mutate's result, keeping its
// position, id and meta. Nothing is written when id is unknown.
func (r *EntryRepository) UpdateField(ctx context.Context, id string, mutate func(domain.Entry) domain.Entry) (domain.Entry, error) {
	stored, version, err := r.load(ctx)
	if err != nil {
		return domain.Entry{}, err
	}

	i := slices.IndexFunc(stored, func(e dao.Entry) bool { return e.ID == id })
	if i < 0 {
		return domain.Entry{}, ErrEntryNotFound
	}

	current := r.daoToDomain(stored[i])
	updated := mutate(current)
	updated.ID = current.ID
	updated.Meta = current.Meta

	all := slices.Clone(stored)
	all[i] = r.domainToDao(updated)

	if _, err := r.save(ctx, all, r.condition(version)); err != nil {
		return domain.Entry{}, err
	}

	return updated, nil
}

func (r *EntryRepository) load(ctx context.Context) ([]dao.Entry, string, error) {
	doc, err := r.dao.Get(ctx, r.conf.DocumentKey())
	if err != nil {
		if errors.Is(err, dao.ErrDocumentNotFound) {
			return []dao.Entry{}, "", nil
		}
		return nil, "", fmt.Errorf("%w: r.dao.Get -> %w", ErrStorageUnavailable, err)
	}

	entries, err := dao.DecodeEntries(doc.Body)
	if err != nil {
		return nil, "", fmt.Errorf("%w: dao.DecodeEntries -> %w", ErrStorageUnavailable, err)
	}

	return entries, doc.Version, nil
}

func (r *EntryRepository) save(ctx context.Context, entries []dao.Entry, cond dao.Condition) ([]dao.Entry, error) {
	sorted := sortNewestFirst(entries)
	if limit := r.conf.Capacity(); len(sorted) > limit {
		sorted = sorted[:limit]
	}

	body, err := dao.EncodeEntries(sorted)
	if err != nil {
		return nil, fmt.Errorf("dao.EncodeEntries -> %w", err)
	}

	if err := r.dao.Put(ctx, r.conf.DocumentKey(), body, cond); err != nil {
		if errors.Is(err, dao.ErrVersionMismatch) {
			return nil, ErrWriteConflict
		}
		return nil, fmt.Errorf("%w: r.dao.Put -> %w", ErrStorageUnavailable, err)
	}

	return sorted, nil
}

func (r *EntryRepository) condition(version string) dao.Condition {
	if !r.conf.ConditionalWrites {
		return dao.Condition{}
	}
	return dao.Condition{Check: true, Version: version}
}

func (r *EntryRepository) domainToDao(e domain.Entry) dao.Entry {
	picks := make([]dao.Pick, 0, len(e.Picks))
	for _, p := range e.Picks {
		picks = append(picks, dao.Pick{Number: p.Number, IsSpecial: p.IsSpecial})
	}

	var meta *dao.Meta
	if e.Meta != nil {
		meta = &dao.Meta{SourceIP: e.Meta.SourceIP, UserAgent: e.Meta.UserAgent}
	}

	return dao.Entry{
		V:        dao.SchemaVersion,
		ID:       e.ID,
		Game:     e.Game,
		Picks:    picks,
		Played:   e.Played,
		PickedAt: e.PickedAt,
		PlayedAt: e.PlayedAt,
		Meta:     meta,
	}
}

func (r *EntryRepository) daoToDomain(e dao.Entry) domain.Entry {
	picks := make([]domain.Pick, 0, len(e.Picks))
	for _, p := range e.Picks {
		picks = append(picks, domain.Pick{Number: p.Number, IsSpecial: p.IsSpecial})
	}

	var meta *domain.Meta
	if e.Meta != nil {
		meta = &domain.Meta{SourceIP: e.Meta.SourceIP, UserAgent: e.Meta.UserAgent}
	}

	return domain.Entry{
		ID:       e.ID,
		Game:     e.Game,
		Picks:    picks,
		Played:   e.Played,
		PickedAt: e.PickedAt,
		PlayedAt: e.PlayedAt,
		Meta:     meta,
	}
}

func (r *EntryRepository) domainToDaoAll(entries []domain.Entry) []dao.Entry {
	out := make([]dao.Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, r.domainToDao(e))
	}
	return out
}

func (r *EntryRepository) daoToDomainAll(entries []dao.Entry) []domain.Entry {
	out := make([]domain.Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, r.daoToDomain(e))
	}
	return out
}
