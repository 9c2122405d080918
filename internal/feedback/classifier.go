package feedback

// Classifier is a rule-based mistake classifier.
// Returns nil if the rule doesn't apply.
type Classifier interface {
	Name() string
	Classify(input *ClassifyInput) *Result
}

// DefaultClassifiers returns classifiers in priority order. Word order is
// checked first since a reordering also has every word in the wrong place.
func DefaultClassifiers() []Classifier {
	return []Classifier{
		&WordOrderClassifier{},
		&MissingWordsClassifier{},
		&ExtraWordsClassifier{},
		&WrongWordClassifier{},
	}
}

// RunClassifiers executes rule-based classifiers in order.
// Returns the first match, or nil if no rules apply.
func RunClassifiers(classifiers []Classifier, input *ClassifyInput) *Result {
	if len(input.Given) == 0 || len(input.Expected) == 0 {
		return nil
	}
	for _, c := range classifiers {
		if r := c.Classify(input); r != nil {
			r.ClassifierName = c.Name()
			return r
		}
	}
	return nil
}
