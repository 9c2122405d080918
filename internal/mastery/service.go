package mastery

import (
	"context"
	"fmt"

	"github.com/abhisek/wordiz/internal/sentence"
	"github.com/abhisek/wordiz/internal/store"
)

// Service reads and writes level progress records. It is the progress
// store used by level attempts and the source of the level overview.
type Service struct {
	repo store.ProgressRepo
}

// NewService creates a mastery service backed by repo.
func NewService(repo store.ProgressRepo) *Service {
	return &Service{repo: repo}
}

// Load returns the record for (mode, level), or nil if none was saved.
func (s *Service) Load(ctx context.Context, mode Mode, level int) (*LevelProgressRecord, error) {
	data, err := s.repo.GetProgress(ctx, string(mode), level)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	if data == nil {
		return nil, nil
	}
	rec := recordFromData(*data)
	return &rec, nil
}

// Save persists the record for (mode, level).
func (s *Service) Save(ctx context.Context, mode Mode, level int, rec LevelProgressRecord) error {
	rec.Level = level
	if err := s.repo.UpsertProgress(ctx, dataFromRecord(mode, rec)); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// Unlock marks (mode, level) as playable without touching an existing
// completion.
func (s *Service) Unlock(ctx context.Context, mode Mode, level, totalItems int) error {
	if err := s.repo.UnlockLevel(ctx, string(mode), level, totalItems); err != nil {
		return fmt.Errorf("unlock level %d: %w", level, err)
	}
	return nil
}

// Records returns every saved record of a mode, ordered by level.
func (s *Service) Records(ctx context.Context, mode Mode) ([]LevelProgressRecord, error) {
	rows, err := s.repo.ListProgress(ctx, string(mode))
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	recs := make([]LevelProgressRecord, len(rows))
	for i, r := range rows {
		recs[i] = recordFromData(r)
	}
	return recs, nil
}

// Overview loads the records of all modes and merges them per level.
func (s *Service) Overview(ctx context.Context, set *sentence.Set) ([]LevelSummary, error) {
	records := make(map[Mode][]LevelProgressRecord, len(Modes))
	for _, mode := range Modes {
		recs, err := s.Records(ctx, mode)
		if err != nil {
			return nil, err
		}
		records[mode] = recs
	}
	return BuildOverview(set, records), nil
}

// ResetLevel clears completion and correct counts of a level in every
// mode. Unlock state is kept.
func (s *Service) ResetLevel(ctx context.Context, level int) error {
	if err := s.repo.ResetProgress(ctx, "", level); err != nil {
		return fmt.Errorf("reset level %d: %w", level, err)
	}
	return nil
}

// ResetAll deletes every record, relocking all but the first level.
func (s *Service) ResetAll(ctx context.Context) error {
	if err := s.repo.DeleteProgress(ctx, ""); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	return nil
}

func recordFromData(d store.LevelProgressData) LevelProgressRecord {
	return LevelProgressRecord{
		Level:        d.Level,
		Completed:    d.Completed,
		TotalItems:   d.TotalItems,
		CorrectCount: d.CorrectCount,
		Unlocked:     d.Unlocked,
	}
}

func dataFromRecord(mode Mode, r LevelProgressRecord) store.LevelProgressData {
	return store.LevelProgressData{
		Mode:         string(mode),
		Level:        r.Level,
		Completed:    r.Completed,
		TotalItems:   r.TotalItems,
		CorrectCount: r.CorrectCount,
		Unlocked:     r.Unlocked,
	}
}
