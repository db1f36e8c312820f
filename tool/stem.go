package tool

import (
	"fmt"
	"strings"

	"github.com/kljensen/snowball"
)

// DefaultStemmerLanguage is the closest language to Portuguese the
// snowball library ships a stemmer for.
const DefaultStemmerLanguage = "spanish"

// SnowballStemmer stems words with a Snowball stemmer.
type SnowballStemmer struct {
	language string
}

var _ Stemmer = (*SnowballStemmer)(nil)

// NewSnowballStemmer returns a stemmer for language, failing for languages
// the library does not support.
func NewSnowballStemmer(language string) (*SnowballStemmer, error) {
	if language == "" {
		language = DefaultStemmerLanguage
	}
	if _, err := snowball.Stem("palavras", language, true); err != nil {
		return nil, fmt.Errorf("snowball stemmer %q: %w", language, err)
	}
	return &SnowballStemmer{language: language}, nil
}

// Stem returns the stem of word, or the lowercased word when it cannot be
// stemmed.
func (s *SnowballStemmer) Stem(word string) string {
	stem, err := snowball.Stem(word, s.language, true)
	if err != nil || stem == "" {
		return strings.ToLower(word)
	}
	return stem
}
