package sentence

import "strings"

// Token represents a word of the sentence, with POS and dependency metadata.
//
// Taggers fill Text and Tag. Dependency parsers additionally fill Id, Head
// and Dep.
type Token struct {
	// Address of the token in the sentence, starting at 1 (0 is the
	// artificial dependency root).
	Id   int    `json:"id"`
	Head int    `json:"head"`
	Pos  string `json:"pos"`
	Dep  string `json:"dep"`

	// Tag is the tag of the token under the tagger's tagset.
	Tag string `json:"tag"`

	// The unmodified word
	Text string `json:"text"`

	// The lemma of the word
	Lemma string `json:"lemma"`

	// The index of the word in the sentence, starting at 0.
	Index int `json:"index"`
}

// Tagged returns a Token carrying only a surface form and a tag.
func Tagged(text, tag string) Token {
	return Token{Text: text, Tag: tag}
}

// Words returns the surface forms of the tokens.
func Words(tokens []Token) []string {
	words := make([]string, len(tokens))
	for i, t := range tokens {
		words[i] = t.Text
	}
	return words
}

// Join joins the surface forms of the tokens with single spaces.
func Join(tokens []Token) string {
	return strings.Join(Words(tokens), " ")
}

// Flatten concatenates the sentences in order.
func Flatten(sents [][]Token) []Token {
	n := 0
	for _, s := range sents {
		n += len(s)
	}

	all := make([]Token, 0, n)
	for _, s := range sents {
		all = append(all, s...)
	}
	return all
}

// Filter returns the tokens for which keep returns true, preserving order.
func Filter(tokens []Token, keep func(Token) bool) []Token {
	var kept []Token
	for _, t := range tokens {
		if keep(t) {
			kept = append(kept, t)
		}
	}
	return kept
}
