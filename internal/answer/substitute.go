package answer

import (
	"sort"
	"strings"
)

// Substituter rewrites a raw speech transcript before normalization, e.g.
// to undo common misrecognitions of target-language words.
type Substituter interface {
	Substitute(text string) string
}

// SubstituterFunc adapts a plain function to Substituter.
type SubstituterFunc func(string) string

func (f SubstituterFunc) Substitute(text string) string { return f(text) }

// NopSubstituter leaves transcripts untouched.
var NopSubstituter Substituter = SubstituterFunc(func(s string) string { return s })

// Substitution maps one misrecognized fragment to its intended text.
type Substitution struct {
	From string
	To   string
}

// SubstitutionTable replaces fragments in a single left-to-right pass,
// preferring the longest match at each position.
type SubstitutionTable struct {
	pairs    []Substitution
	replacer *strings.Replacer
}

// NewSubstitutionTable builds a table. Replacements are padded with spaces
// so that a fragment glued to its neighbours still yields separate words.
func NewSubstitutionTable(pairs ...Substitution) *SubstitutionTable {
	sorted := make([]Substitution, len(pairs))
	copy(sorted, pairs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].From) > len(sorted[j].From)
	})

	args := make([]string, 0, 2*len(sorted))
	for _, p := range sorted {
		if p.From == "" {
			continue
		}
		args = append(args, p.From, " "+p.To+" ")
	}
	return &SubstitutionTable{pairs: sorted, replacer: strings.NewReplacer(args...)}
}

// Substitute applies the table.
func (t *SubstitutionTable) Substitute(text string) string {
	return t.replacer.Replace(text)
}

// Len returns the number of entries.
func (t *SubstitutionTable) Len() int {
	return len(t.pairs)
}

// KoreanMisrecognitions covers English words that Korean-locale recognizers
// commonly transcribe phonetically in Hangul.
var KoreanMisrecognitions = []Substitution{
	{"아임", "I am"},
	{"아이 앰", "I am"},
	{"아이앰", "I am"},
	{"어", "a"},
	{"에이", "a"},
	{"안", "an"},
	{"스튜던트", "student"},
	{"스투던트", "student"},
	{"헬로", "hello"},
	{"헬로우", "hello"},
	{"하이", "hi"},
	{"굿바이", "goodbye"},
	{"시유", "see you"},
	{"땡큐", "thank you"},
	{"예스", "yes"},
	{"노", "no"},
	{"소리", "sorry"},
	{"플리즈", "please"},
	{"익스큐즈미", "excuse me"},
}

// DefaultSubstitutions returns the table used for speech input unless
// configured otherwise.
func DefaultSubstitutions() *SubstitutionTable {
	return NewSubstitutionTable(KoreanMisrecognitions...)
}

// SubstitutionsByName resolves a configured table name ("ko", "none").
func SubstitutionsByName(name string) (Substituter, bool) {
	switch strings.ToLower(name) {
	case "", "ko", "korean":
		return DefaultSubstitutions(), true
	case "none", "off":
		return NopSubstituter, true
	}
	return nil, false
}
