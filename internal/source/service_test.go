package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wordiz/internal/sentence"
	"github.com/abhisek/wordiz/internal/store"
)

type memSentenceRepo struct {
	mu    sync.Mutex
	items []store.CachedSentenceData
	at    time.Time
}

func (m *memSentenceRepo) ReplaceSentences(_ context.Context, items []store.CachedSentenceData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append([]store.CachedSentenceData(nil), items...)
	m.at = time.Now()
	return nil
}

func (m *memSentenceRepo) LoadSentences(_ context.Context) ([]store.CachedSentenceData, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items, m.at, nil
}

func staticLoader(calls *atomic.Int32, items ...sentence.Item) Loader {
	return LoaderFunc(func(context.Context) (*sentence.ParseResult, error) {
		calls.Add(1)
		return &sentence.ParseResult{Items: items}, nil
	})
}

func failingLoader() Loader {
	return LoaderFunc(func(context.Context) (*sentence.ParseResult, error) {
		return nil, errors.New("sheet unavailable")
	})
}

var fileItems = []sentence.Item{
	{ID: "f-1", Level: 1, Target: "From the file."},
	{ID: "f-2", Level: 2, Target: "Second level."},
}

func TestSentencesFromLoaderWritesCache(t *testing.T) {
	var calls atomic.Int32
	repo := &memSentenceRepo{}
	svc := NewService(staticLoader(&calls, fileItems...), repo)

	set, err := svc.Sentences(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, set.Len())

	st := svc.Status()
	assert.Equal(t, OriginFile, st.Origin)
	assert.Equal(t, 2, st.Count)
	assert.NoError(t, st.LastError)
	assert.Len(t, repo.items, 2, "loaded set is written through to the cache")
}

func TestSentencesServedFromMemoryWithinTTL(t *testing.T) {
	var calls atomic.Int32
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := NewService(staticLoader(&calls, fileItems...), nil,
		WithCacheTTL(5*time.Minute),
		WithClock(func() time.Time { return now }),
	)
	ctx := context.Background()

	_, err := svc.Sentences(ctx)
	require.NoError(t, err)
	now = now.Add(4 * time.Minute)
	_, err = svc.Sentences(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())

	now = now.Add(2 * time.Minute)
	_, err = svc.Sentences(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load(), "expired set is reloaded")

	_, err = svc.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestConcurrentCallersShareOneLoad(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	loader := LoaderFunc(func(context.Context) (*sentence.ParseResult, error) {
		calls.Add(1)
		<-release
		return &sentence.ParseResult{Items: fileItems}, nil
	})
	svc := NewService(loader, nil)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			set, err := svc.Sentences(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, 2, set.Len())
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestFallbackToCache(t *testing.T) {
	repo := &memSentenceRepo{}
	require.NoError(t, repo.ReplaceSentences(context.Background(), []store.CachedSentenceData{
		{ItemID: "c-1", Level: 1, Target: "Cached one."},
	}))
	svc := NewService(failingLoader(), repo)

	set, err := svc.Sentences(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())
	assert.Equal(t, "c-1", set.Items()[0].ID)

	st := svc.Status()
	assert.Equal(t, OriginCache, st.Origin)
	assert.Error(t, st.LastError)
	assert.False(t, st.FetchedAt.IsZero())
}

func TestInvalidLoadedSetFallsBackWithoutCaching(t *testing.T) {
	var calls atomic.Int32
	repo := &memSentenceRepo{}
	require.NoError(t, repo.ReplaceSentences(context.Background(), []store.CachedSentenceData{
		{ItemID: "c-1", Level: 1, Target: "Cached one."},
	}))
	dup := []sentence.Item{
		{ID: "1", Level: 1, Target: "First."},
		{ID: "1", Level: 1, Target: "Second."},
	}
	svc := NewService(staticLoader(&calls, dup...), repo)

	set, err := svc.Sentences(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())
	assert.Equal(t, "c-1", set.Items()[0].ID)

	st := svc.Status()
	assert.Equal(t, OriginCache, st.Origin)
	require.Error(t, st.LastError)
	assert.Contains(t, st.LastError.Error(), "duplicate sentence id")
	require.Len(t, repo.items, 1, "invalid set must not replace the cache")
	assert.Equal(t, "c-1", repo.items[0].ItemID)
}

func TestInvalidLoadedSetFallsBackToSample(t *testing.T) {
	var calls atomic.Int32
	svc := NewService(staticLoader(&calls, sentence.Item{ID: "x", Level: 0, Target: "Bad level."}), nil)

	set, err := svc.Sentences(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(sentence.Sample()), set.Len())
	assert.Equal(t, OriginSample, svc.Status().Origin)
	assert.Error(t, svc.Status().LastError)
}

func TestFallbackToSample(t *testing.T) {
	svc := NewService(failingLoader(), &memSentenceRepo{})

	set, err := svc.Sentences(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(sentence.Sample()), set.Len())
	assert.Equal(t, OriginSample, svc.Status().Origin)
	assert.Error(t, svc.Status().LastError)
}

func TestNoLoaderUsesSampleWithoutError(t *testing.T) {
	svc := NewService(nil, nil)

	set, err := svc.Sentences(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, set.Levels())
	assert.NoError(t, svc.Status().LastError)
}

func TestFileLoaderAndImport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sentences.csv")
	csv := "level,id,category,source,target,note\n1,a,greeting,안녕,Hello.,\n1,b,,,,missing target\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	res, err := FileLoader{Path: path}.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, res.Items, 1)
	assert.Len(t, res.Skipped, 1)

	repo := &memSentenceRepo{}
	_, err = Import(context.Background(), repo, path)
	require.NoError(t, err)
	assert.Len(t, repo.items, 1)

	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, []byte("level,id,category,source,target\n"), 0o644))
	_, err = FileLoader{Path: empty}.Load(context.Background())
	assert.ErrorIs(t, err, ErrNoSentences)
}

func TestAutoRefresh(t *testing.T) {
	var calls atomic.Int32
	svc := NewService(staticLoader(&calls, fileItems...), nil)

	require.Error(t, svc.StartAutoRefresh(0))
	require.NoError(t, svc.StartAutoRefresh(20*time.Millisecond))
	t.Cleanup(svc.Stop)

	assert.Eventually(t, func() bool { return calls.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)

	svc.Stop()
	stopped := calls.Load()
	time.Sleep(100 * time.Millisecond)
	assert.LessOrEqual(t, calls.Load(), stopped+1)
}
