package sentence

import "errors"

// ErrNoLevel is returned when a level has no items in the set.
var ErrNoLevel = errors.New("level has no sentences")

// Item is a single source/target sentence pair. Items are immutable once
// loaded; consumers only read them.
type Item struct {
	ID       string `json:"id"`
	Level    int    `json:"level"`
	Category string `json:"category"`
	Source   string `json:"source"` // prompt language
	Target   string `json:"target"` // language the learner produces
	Note     string `json:"note"`
}

// IDs returns the item IDs in order.
func IDs(items []Item) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}
