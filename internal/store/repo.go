package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	After     int64     // sequence > After
	Before    int64     // sequence < Before
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
	Mode      string    // exact mode match, empty for all
	AttemptID string    // exact attempt match, empty for all
}

// LevelProgressData is the persisted progress of one level in one mode.
type LevelProgressData struct {
	Mode         string
	Level        int
	Completed    bool
	TotalItems   int
	CorrectCount int
	Unlocked     bool
	UpdatedAt    time.Time
}

// ProgressRepo manages per-level progress records.
type ProgressRepo interface {
	// GetProgress returns the record for (mode, level), or nil if none exists.
	GetProgress(ctx context.Context, mode string, level int) (*LevelProgressData, error)

	// UpsertProgress inserts or replaces the record for (data.Mode, data.Level).
	UpsertProgress(ctx context.Context, data LevelProgressData) error

	// UnlockLevel marks a level unlocked, creating the record if needed.
	// Completion and counts of an existing record are kept.
	UnlockLevel(ctx context.Context, mode string, level, totalItems int) error

	// ListProgress returns the records of mode ordered by level. An empty
	// mode lists every mode.
	ListProgress(ctx context.Context, mode string) ([]LevelProgressData, error)

	// ResetProgress clears completion and correct counts. An empty mode
	// matches every mode and level 0 matches every level.
	ResetProgress(ctx context.Context, mode string, level int) error

	// DeleteProgress removes the records of mode, or all records when mode
	// is empty.
	DeleteProgress(ctx context.Context, mode string) error
}

// AnswerEventData captures a single checked answer.
type AnswerEventData struct {
	AttemptID string
	Mode      string
	Level     int
	ItemID    string
	Phase     string
	Cycle     int
	Expected  string
	Given     string
	Correct   bool
	Mistake   string
	TimeMs    int
}

// AnswerEventRecord is a stored answer event.
type AnswerEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	AnswerEventData
}

// AttemptEventData captures a level attempt transition.
type AttemptEventData struct {
	AttemptID  string
	Mode       string
	Level      int
	Action     string
	TotalItems int
	Missed     int
	Cycle      int
}

// AttemptEventRecord is a stored attempt event.
type AttemptEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	AttemptEventData
}

// MissedItemStat aggregates answers for one item.
type MissedItemStat struct {
	ItemID   string
	Level    int
	Answers  int
	Misses   int
	Expected string
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMPurposeUsage aggregates token usage for a purpose.
type LLMPurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates token usage for a model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendAnswerEvent records a checked answer.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// AppendAttemptEvent records a level attempt transition.
	AppendAttemptEvent(ctx context.Context, data AttemptEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryAnswerEvents returns answer events, newest first.
	QueryAnswerEvents(ctx context.Context, opts QueryOpts) ([]AnswerEventRecord, error)

	// QueryAttemptEvents returns attempt events, newest first.
	QueryAttemptEvents(ctx context.Context, opts QueryOpts) ([]AttemptEventRecord, error)

	// MissedItems returns the items with at least one wrong answer, most
	// missed first.
	MissedItems(ctx context.Context, mode string, limit int) ([]MissedItemStat, error)

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns a single LLM event, or nil if not found.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	// LLMUsageByPurpose aggregates LLM usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMPurposeUsage, error)

	// LLMUsageByModel aggregates LLM usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}

// CachedSentenceData is one cached sentence item.
type CachedSentenceData struct {
	ItemID   string
	Level    int
	Category string
	Source   string
	Target   string
	Note     string
}

// SentenceRepo caches the last loaded sentence set.
type SentenceRepo interface {
	// ReplaceSentences atomically replaces the cached set.
	ReplaceSentences(ctx context.Context, items []CachedSentenceData) error

	// LoadSentences returns the cached set in load order together with the
	// time it was written. An empty cache returns no items and a zero time.
	LoadSentences(ctx context.Context) ([]CachedSentenceData, time.Time, error)
}
