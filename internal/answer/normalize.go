package answer

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// quotes folds typographic quote marks into their ASCII forms.
var quotes = strings.NewReplacer(
	"’", "'", "‘", "'", "ʼ", "'",
	"“", `"`, "”", `"`, "«", `"`, "»", `"`,
)

// Normalize produces the comparison key for a piece of text: tokens joined
// by single spaces, lowercased and NFC composed. Because it goes through
// Tokenize, Normalize(Join(Tokenize(s))) == Normalize(s) for every s.
// Stripping punctuation can leave a combining mark next to a base letter,
// so composition runs again on the joined key.
func Normalize(text string) string {
	key := strings.Join(Tokenize(norm.NFC.String(text)), " ")
	return norm.NFC.String(cases.Lower(language.Und).String(key))
}

// NormalizeSpeech normalizes a recognized transcript. The substituter runs
// first (nil skips it); stray quote characters at word edges are then
// dropped before the regular normalization.
func NormalizeSpeech(text string, sub Substituter) string {
	if sub != nil {
		text = sub.Substitute(text)
	}
	words := strings.Fields(quotes.Replace(norm.NFC.String(text)))
	for i, w := range words {
		words[i] = strings.Trim(stripPunctuation(w), "'")
	}
	return Normalize(strings.Join(words, " "))
}
