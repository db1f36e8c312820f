// Package tagset defines part-of-speech tag vocabularies and the predicates
// metrics use to classify tagged tokens.
package tagset

import (
	"unicode"

	sent "github.com/revelaction/cohmetrix/sentence"
)

// Tagset classifies tagged tokens.
type Tagset interface {
	Name() string

	IsVerb(t sent.Token) bool
	IsAuxiliaryVerb(t sent.Token) bool
	IsParticiple(t sent.Token) bool
	IsNoun(t sent.Token) bool
	IsAdjective(t sent.Token) bool
	IsAdverb(t sent.Token) bool

	// IsDenotativeWord reports words the tagset sets apart from adverbs
	// but that behave like them (MacMorpho PDEN).
	IsDenotativeWord(t sent.Token) bool
	IsPronoun(t sent.Token) bool
	IsPunctuation(t sent.Token) bool

	// IsContentWord reports nouns, verbs, adjectives and adverbs.
	IsContentWord(t sent.Token) bool

	// IsFunctionWord reports articles, prepositions, pronouns, conjunctions
	// and interjections.
	IsFunctionWord(t sent.Token) bool
}

type tags map[string]struct{}

func newTags(values ...string) tags {
	t := make(tags, len(values))
	for _, v := range values {
		t[v] = struct{}{}
	}
	return t
}

func (t tags) has(tag string) bool {
	_, ok := t[tag]
	return ok
}

// Set is a Tagset driven by tag tables.
type Set struct {
	name string

	verbs       tags
	auxiliaries tags
	participles tags
	nouns       tags
	adjectives  tags
	adverbs     tags
	denotative  tags
	pronouns    tags
	punctuation tags
	function    tags
}

var _ Tagset = (*Set)(nil)

func (s *Set) Name() string {
	return s.name
}

func (s *Set) IsVerb(t sent.Token) bool {
	return s.verbs.has(t.Tag)
}

func (s *Set) IsAuxiliaryVerb(t sent.Token) bool {
	return s.auxiliaries.has(t.Tag)
}

func (s *Set) IsParticiple(t sent.Token) bool {
	return s.participles.has(t.Tag)
}

func (s *Set) IsNoun(t sent.Token) bool {
	return s.nouns.has(t.Tag)
}

func (s *Set) IsAdjective(t sent.Token) bool {
	return s.adjectives.has(t.Tag)
}

func (s *Set) IsAdverb(t sent.Token) bool {
	return s.adverbs.has(t.Tag)
}

func (s *Set) IsDenotativeWord(t sent.Token) bool {
	return s.denotative.has(t.Tag)
}

func (s *Set) IsPronoun(t sent.Token) bool {
	return s.pronouns.has(t.Tag)
}

// IsPunctuation reports listed punctuation tags, and tags made only of
// punctuation or symbol characters (some taggers tag "," as ",").
func (s *Set) IsPunctuation(t sent.Token) bool {
	if s.punctuation.has(t.Tag) {
		return true
	}
	return isPunctString(t.Tag)
}

func (s *Set) IsContentWord(t sent.Token) bool {
	return s.IsNoun(t) || s.IsVerb(t) || s.IsAuxiliaryVerb(t) || s.IsParticiple(t) ||
		s.IsAdjective(t) || s.IsAdverb(t)
}

func (s *Set) IsFunctionWord(t sent.Token) bool {
	return s.function.has(t.Tag)
}

func isPunctString(tag string) bool {
	if tag == "" {
		return false
	}
	for _, r := range tag {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}
