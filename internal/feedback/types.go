// Package feedback explains wrong answers: rule-based classifiers name the
// kind of mistake, and an optional LLM adds a short explanation and tip.
package feedback

import (
	"strings"

	"github.com/abhisek/wordiz/internal/answer"
)

// Category classifies a wrong answer.
type Category string

const (
	CategoryWordOrder    Category = "word-order"
	CategoryMissingWords Category = "missing-words"
	CategoryExtraWords   Category = "extra-words"
	CategoryWrongWord    Category = "wrong-word"
	CategoryUnclassified Category = "unclassified"
)

// Label returns a short learner-facing description.
func (c Category) Label() string {
	switch c {
	case CategoryWordOrder:
		return "Right words, wrong order"
	case CategoryMissingWords:
		return "Some words are missing"
	case CategoryExtraWords:
		return "There are extra words"
	case CategoryWrongWord:
		return "Some words are different"
	default:
		return "Not quite"
	}
}

// ClassifyInput holds the normalized answer and target as token lists.
type ClassifyInput struct {
	Given    []string
	Expected []string
}

// NewClassifyInput builds the input from a verdict's normalized strings.
func NewClassifyInput(v answer.Verdict) *ClassifyInput {
	return &ClassifyInput{
		Given:    strings.Fields(v.Given),
		Expected: strings.Fields(v.Expected),
	}
}

// Result is the feedback for a wrong answer.
type Result struct {
	Category       Category
	Confidence     float64  // 0.0–1.0
	ClassifierName string   // which classifier or "llm" produced this result
	Words          []string // the missing, extra or differing words, when known
	Explanation    string   // LLM explanation (empty for rule-based)
	Tip            string   // LLM tip (empty for rule-based)
}
