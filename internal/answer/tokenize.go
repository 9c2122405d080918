// Package answer turns target sentences and learner input into comparable
// forms and decides whether an answer is correct.
package answer

import "strings"

// punctuation is stripped from every word. Apostrophes are kept so that
// contractions can be split into stem and suffix.
const punctuation = `.,!?;:"()[]{}-`

// contractionSuffixes split off a word as a separate token.
var contractionSuffixes = []string{"'s", "'t", "'re", "'ve", "'ll", "'d"}

// apostrophes folds typographic apostrophes into the ASCII one.
var apostrophes = strings.NewReplacer("’", "'", "‘", "'", "ʼ", "'")

// Tokenize splits a sentence into ordered word tokens. Punctuation is
// stripped from each word (a hyphen merges a compound into one token),
// contractions become stem plus suffix ("don't" -> "don", "'t"), and empty
// tokens are dropped. Case is preserved.
func Tokenize(sentence string) []string {
	words := strings.Fields(apostrophes.Replace(sentence))
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		w = stripPunctuation(w)
		if w == "" {
			continue
		}
		tokens = append(tokens, splitContraction(w)...)
	}
	return tokens
}

// Join rebuilds answer text from tokens the way the word bank does.
func Join(tokens []string) string {
	return strings.Join(tokens, " ")
}

func stripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(punctuation, r) {
			return -1
		}
		return r
	}, s)
}

// splitContraction splits a word only when it has exactly one apostrophe
// with text on both sides; possessives like "James'" and irregular uses
// stay whole.
func splitContraction(w string) []string {
	if !strings.Contains(w, "'") {
		return []string{w}
	}
	lower := strings.ToLower(w)
	for _, suffix := range contractionSuffixes {
		if !strings.HasSuffix(lower, suffix) {
			continue
		}
		parts := strings.Split(w, "'")
		if len(parts) == 2 && parts[0] != "" && parts[1] != "" {
			return []string{parts[0], "'" + parts[1]}
		}
		break
	}
	return []string{w}
}
