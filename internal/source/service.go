// Package source provides the sentence set to the rest of the app. It
// loads from the configured file, keeps the result in memory for a while,
// caches it in the store and falls back to the cache or the built-in
// sample set when the file cannot be read.
package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"golang.org/x/sync/singleflight"

	"github.com/abhisek/wordiz/internal/sentence"
	"github.com/abhisek/wordiz/internal/store"
)

// DefaultCacheTTL is how long a loaded set is served from memory.
const DefaultCacheTTL = 5 * time.Minute

// Origin tells where the current set came from.
type Origin string

const (
	OriginNone   Origin = ""
	OriginFile   Origin = "file"
	OriginCache  Origin = "cache"
	OriginSample Origin = "sample"
)

// Status describes the last load.
type Status struct {
	Origin    Origin
	Source    string
	Count     int
	Skipped   int
	LoadedAt  time.Time
	FetchedAt time.Time // when the cached set was written, for OriginCache
	LastError error
}

// Option configures a Service.
type Option func(*Service)

// WithCacheTTL overrides DefaultCacheTTL.
func WithCacheTTL(d time.Duration) Option {
	return func(s *Service) { s.ttl = d }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// Service loads sentences once and shares the result between callers.
type Service struct {
	loader Loader
	repo   store.SentenceRepo
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger

	group singleflight.Group

	mu     sync.RWMutex
	set    *sentence.Set
	status Status

	schedMu sync.Mutex
	sched   *gocron.Scheduler
}

// NewService creates a source service. loader and repo may be nil: without
// a loader the cache and sample set are used, without a repo nothing is
// cached across runs.
func NewService(loader Loader, repo store.SentenceRepo, opts ...Option) *Service {
	s := &Service{
		loader: loader,
		repo:   repo,
		ttl:    DefaultCacheTTL,
		now:    time.Now,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sentences returns the current set, loading it if nothing is in memory or
// the in-memory copy is older than the cache TTL.
func (s *Service) Sentences(ctx context.Context) (*sentence.Set, error) {
	s.mu.RLock()
	set, loadedAt := s.set, s.status.LoadedAt
	s.mu.RUnlock()

	if set != nil && s.now().Sub(loadedAt) < s.ttl {
		return set, nil
	}
	return s.load(ctx)
}

// Refresh reloads the set regardless of its age.
func (s *Service) Refresh(ctx context.Context) (*sentence.Set, error) {
	return s.load(ctx)
}

// Status returns a snapshot of the last load.
func (s *Service) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *Service) load(ctx context.Context) (*sentence.Set, error) {
	v, err, _ := s.group.Do("sentences", func() (any, error) {
		set, status, err := s.fetch(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.set = set
		s.status = status
		s.mu.Unlock()
		return set, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*sentence.Set), nil
}

// fetch tries the loader, then the store cache, then the sample set.
func (s *Service) fetch(ctx context.Context) (*sentence.Set, Status, error) {
	var loadErr error

	if s.loader != nil {
		res, err := s.loader.Load(ctx)
		if err == nil {
			if errs := sentence.NewSet(res.Items).Validate(); len(errs) > 0 {
				err = fmt.Errorf("validate: %w", errors.Join(errs...))
			}
		}
		if err == nil {
			s.writeCache(ctx, res.Items)
			for _, skipped := range res.Skipped {
				s.logger.Warn("skipped sentence row", "source", s.loader.Describe(), "row", skipped.Row, "error", skipped.Err)
			}
			return sentence.NewSet(res.Items), Status{
				Origin:   OriginFile,
				Source:   s.loader.Describe(),
				Count:    len(res.Items),
				Skipped:  len(res.Skipped),
				LoadedAt: s.now(),
			}, nil
		}
		if ctx.Err() != nil {
			return nil, Status{}, ctx.Err()
		}
		loadErr = fmt.Errorf("load %s: %w", s.loader.Describe(), err)
		s.logger.Warn("primary sentence source failed", "error", err)
	}

	if s.repo != nil {
		cached, fetchedAt, err := s.repo.LoadSentences(ctx)
		switch {
		case err != nil:
			s.logger.Warn("read sentence cache", "error", err)
		case len(cached) > 0:
			items := make([]sentence.Item, len(cached))
			for i, c := range cached {
				items[i] = itemFromCache(c)
			}
			return sentence.NewSet(items), Status{
				Origin:    OriginCache,
				Source:    "store",
				Count:     len(items),
				LoadedAt:  s.now(),
				FetchedAt: fetchedAt,
				LastError: loadErr,
			}, nil
		}
	}

	items := sentence.Sample()
	return sentence.NewSet(items), Status{
		Origin:    OriginSample,
		Source:    "built-in",
		Count:     len(items),
		LoadedAt:  s.now(),
		LastError: loadErr,
	}, nil
}

func (s *Service) writeCache(ctx context.Context, items []sentence.Item) {
	if s.repo == nil {
		return
	}
	cached := make([]store.CachedSentenceData, len(items))
	for i, it := range items {
		cached[i] = cacheFromItem(it)
	}
	if err := s.repo.ReplaceSentences(ctx, cached); err != nil {
		s.logger.Warn("write sentence cache", "error", err)
	}
}

// Import parses path and replaces the store cache with its items, without
// touching the in-memory set.
func Import(ctx context.Context, repo store.SentenceRepo, path string) (*sentence.ParseResult, error) {
	res, err := FileLoader{Path: path}.Load(ctx)
	if err != nil {
		return nil, err
	}
	if errs := sentence.NewSet(res.Items).Validate(); len(errs) > 0 {
		return res, fmt.Errorf("validate %s: %w", path, errs[0])
	}
	cached := make([]store.CachedSentenceData, len(res.Items))
	for i, it := range res.Items {
		cached[i] = cacheFromItem(it)
	}
	if err := repo.ReplaceSentences(ctx, cached); err != nil {
		return res, err
	}
	return res, nil
}

// StartAutoRefresh reloads the set every interval until Stop is called.
func (s *Service) StartAutoRefresh(interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("refresh interval must be positive, got %s", interval)
	}

	s.schedMu.Lock()
	defer s.schedMu.Unlock()
	if s.sched != nil {
		return nil
	}

	sched := gocron.NewScheduler(time.UTC)
	_, err := sched.Every(interval).WaitForSchedule().SingletonMode().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), interval)
		defer cancel()
		if _, err := s.Refresh(ctx); err != nil {
			s.logger.Warn("scheduled sentence refresh", "error", err)
			return
		}
		st := s.Status()
		s.logger.Info("sentences refreshed", "origin", st.Origin, "count", st.Count)
	})
	if err != nil {
		return fmt.Errorf("schedule refresh: %w", err)
	}
	sched.StartAsync()
	s.sched = sched
	return nil
}

// Stop ends the auto refresh started by StartAutoRefresh.
func (s *Service) Stop() {
	s.schedMu.Lock()
	defer s.schedMu.Unlock()
	if s.sched != nil {
		s.sched.Stop()
		s.sched = nil
	}
}

func itemFromCache(c store.CachedSentenceData) sentence.Item {
	return sentence.Item{
		ID:       c.ItemID,
		Level:    c.Level,
		Category: c.Category,
		Source:   c.Source,
		Target:   c.Target,
		Note:     c.Note,
	}
}

func cacheFromItem(it sentence.Item) store.CachedSentenceData {
	return store.CachedSentenceData{
		ItemID:   it.ID,
		Level:    it.Level,
		Category: it.Category,
		Source:   it.Source,
		Target:   it.Target,
		Note:     it.Note,
	}
}
