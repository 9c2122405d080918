package answer

import (
	"fmt"
	"strings"
)

// Policy selects how normalized answers are compared.
type Policy int

const (
	// PolicyExact requires the normalized forms to be identical.
	PolicyExact Policy = iota

	// PolicyFuzzy additionally accepts answers whose word overlap with the
	// canonical answer reaches FuzzyThreshold.
	//
	// Deprecated: kept for old content sets only; it changes pass/fail
	// outcomes and is never enabled by default.
	PolicyFuzzy
)

// FuzzyThreshold is the minimum Similarity accepted under PolicyFuzzy.
const FuzzyThreshold = 0.8

func (p Policy) String() string {
	switch p {
	case PolicyExact:
		return "exact"
	case PolicyFuzzy:
		return "fuzzy"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy resolves a configured policy name.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "exact":
		return PolicyExact, nil
	case "fuzzy":
		return PolicyFuzzy, nil
	}
	return PolicyExact, fmt.Errorf("unknown match policy %q", s)
}

// Input identifies where an answer came from.
type Input int

const (
	InputTyped  Input = iota // word bank selection or typed text
	InputSpeech              // recognized speech transcript
)

// Evaluate reports whether userAnswer matches canonical exactly after
// normalization.
func Evaluate(userAnswer, canonical string) bool {
	return Normalize(userAnswer) == Normalize(canonical)
}

// EvaluateTokens checks a word bank selection, in the order selected.
func EvaluateTokens(selected []string, canonical string) bool {
	return Evaluate(Join(selected), canonical)
}

// Verdict is the outcome of checking one answer.
type Verdict struct {
	Correct    bool
	Empty      bool    // the answer normalized to nothing
	Fuzzy      bool    // accepted only through the fuzzy policy
	Similarity float64 // computed only under PolicyFuzzy
	Given      string  // normalized learner answer
	Expected   string  // normalized canonical answer
}

// Evaluator checks answers under a policy. The zero value uses exact
// matching and no speech substitution.
type Evaluator struct {
	Policy      Policy
	Substituter Substituter // speech input only; nil disables
}

// NewEvaluator returns an exact-match evaluator using the default speech
// substitutions.
func NewEvaluator() *Evaluator {
	return &Evaluator{Policy: PolicyExact, Substituter: DefaultSubstitutions()}
}

// Check evaluates an answer against the canonical sentence.
func (e *Evaluator) Check(input Input, answer, canonical string) Verdict {
	var given, expected string
	if input == InputSpeech {
		given = NormalizeSpeech(answer, e.Substituter)
		expected = NormalizeSpeech(canonical, nil)
	} else {
		given = Normalize(answer)
		expected = Normalize(canonical)
	}

	v := Verdict{Given: given, Expected: expected}
	if given == "" {
		v.Empty = true
		return v
	}
	if given == expected {
		v.Correct = true
		return v
	}
	if e.Policy == PolicyFuzzy {
		v.Similarity = Similarity(given, expected)
		if v.Similarity >= FuzzyThreshold {
			v.Correct = true
			v.Fuzzy = true
		}
	}
	return v
}
