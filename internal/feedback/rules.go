package feedback

import "slices"

// WordOrderClassifier matches answers with exactly the target's words in
// another order.
type WordOrderClassifier struct{}

func (c *WordOrderClassifier) Name() string { return "word-order" }

func (c *WordOrderClassifier) Classify(in *ClassifyInput) *Result {
	if len(in.Given) != len(in.Expected) || slices.Equal(in.Given, in.Expected) {
		return nil
	}
	if len(subtract(in.Given, in.Expected)) != 0 {
		return nil
	}
	var moved []string
	for i, w := range in.Given {
		if in.Expected[i] != w {
			moved = append(moved, w)
		}
	}
	return &Result{Category: CategoryWordOrder, Confidence: 0.95, Words: moved}
}

// MissingWordsClassifier matches answers that leave out target words and
// add nothing else.
type MissingWordsClassifier struct{}

func (c *MissingWordsClassifier) Name() string { return "missing-words" }

func (c *MissingWordsClassifier) Classify(in *ClassifyInput) *Result {
	if len(in.Given) >= len(in.Expected) || len(subtract(in.Given, in.Expected)) != 0 {
		return nil
	}
	conf := 0.7
	if isSubsequence(in.Given, in.Expected) {
		conf = 0.9
	}
	return &Result{
		Category:   CategoryMissingWords,
		Confidence: conf,
		Words:      subtract(in.Expected, in.Given),
	}
}

// ExtraWordsClassifier matches answers that contain every target word plus
// some more.
type ExtraWordsClassifier struct{}

func (c *ExtraWordsClassifier) Name() string { return "extra-words" }

func (c *ExtraWordsClassifier) Classify(in *ClassifyInput) *Result {
	if len(in.Given) <= len(in.Expected) || len(subtract(in.Expected, in.Given)) != 0 {
		return nil
	}
	conf := 0.7
	if isSubsequence(in.Expected, in.Given) {
		conf = 0.9
	}
	return &Result{
		Category:   CategoryExtraWords,
		Confidence: conf,
		Words:      subtract(in.Given, in.Expected),
	}
}

// WrongWordClassifier matches answers of the right length where some
// positions hold a different word.
type WrongWordClassifier struct{}

func (c *WrongWordClassifier) Name() string { return "wrong-word" }

func (c *WrongWordClassifier) Classify(in *ClassifyInput) *Result {
	if len(in.Given) != len(in.Expected) {
		return nil
	}
	var wrong []string
	for i, w := range in.Given {
		if in.Expected[i] != w {
			wrong = append(wrong, w)
		}
	}
	if len(wrong) == 0 || len(wrong) > (len(in.Expected)+1)/2 {
		return nil
	}
	return &Result{
		Category:   CategoryWrongWord,
		Confidence: 1 - float64(len(wrong))/float64(len(in.Expected)),
		Words:      wrong,
	}
}

// subtract returns the words of a not matched by words of b, as multisets,
// in a's order.
func subtract(a, b []string) []string {
	counts := make(map[string]int, len(b))
	for _, w := range b {
		counts[w]++
	}
	var out []string
	for _, w := range a {
		if counts[w] > 0 {
			counts[w]--
			continue
		}
		out = append(out, w)
	}
	return out
}

// isSubsequence reports whether sub appears in seq in order.
func isSubsequence(sub, seq []string) bool {
	i := 0
	for _, w := range seq {
		if i < len(sub) && sub[i] == w {
			i++
		}
	}
	return i == len(sub)
}
