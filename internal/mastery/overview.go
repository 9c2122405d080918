package mastery

import "github.com/abhisek/wordiz/internal/sentence"

// LevelSummary is the cross-mode view of one level shown by the level
// selector.
type LevelSummary struct {
	Level        int
	TotalItems   int
	CorrectCount int
	Completed    bool
	Unlocked     bool
	Categories   []string
	ByMode       map[Mode]LevelProgressRecord
}

// CompletionRate returns CorrectCount/TotalItems in [0, 1].
func (s LevelSummary) CompletionRate() float64 {
	return LevelProgressRecord{TotalItems: s.TotalItems, CorrectCount: s.CorrectCount}.CompletionRate()
}

// BuildOverview merges per-mode records into one summary per level of set.
// A level counts as completed when either mode completed it, its correct
// count is the sum over modes capped at the level size, and it is unlocked
// when it is the first level, a mode unlocked it, or the previous level is
// completed.
func BuildOverview(set *sentence.Set, records map[Mode][]LevelProgressRecord) []LevelSummary {
	byLevel := make(map[int]map[Mode]LevelProgressRecord)
	for mode, recs := range records {
		for _, r := range recs {
			if byLevel[r.Level] == nil {
				byLevel[r.Level] = make(map[Mode]LevelProgressRecord)
			}
			byLevel[r.Level][mode] = r
		}
	}

	levels := set.Levels()
	out := make([]LevelSummary, 0, len(levels))
	for i, level := range levels {
		sum := LevelSummary{
			Level:      level,
			TotalItems: len(set.ByLevel(level)),
			Categories: set.Categories(level),
			ByMode:     byLevel[level],
		}

		correct := 0
		for _, r := range byLevel[level] {
			correct += r.CorrectCount
			if r.Completed {
				sum.Completed = true
			}
			if r.Unlocked {
				sum.Unlocked = true
			}
		}
		sum.CorrectCount = min(correct, sum.TotalItems)

		if i == 0 || out[i-1].Completed {
			sum.Unlocked = true
		}
		out = append(out, sum)
	}
	return out
}
