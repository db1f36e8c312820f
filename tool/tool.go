// Package tool defines the interfaces of the NLP engines metrics depend on
// and their backends: external processes (OpenNLP, LX-Parser, MaltParser)
// and in-process Go libraries.
package tool

import (
	"context"
	"errors"
	"fmt"

	"github.com/revelaction/cohmetrix/dep"
	sent "github.com/revelaction/cohmetrix/sentence"
	"github.com/revelaction/cohmetrix/tagset"
	"github.com/revelaction/cohmetrix/tree"
)

// ErrFailure is matched by every error a tool returns because it failed to
// run or printed output that could not be read.
var ErrFailure = errors.New("tool failure")

// SentenceSplitter splits a paragraph into sentences.
type SentenceSplitter interface {
	Split(paragraph string) []string
}

// WordTokenizer splits a sentence into tokens.
type WordTokenizer interface {
	Tokenize(sentence string) []string
}

// Tagger assigns a part of speech tag to every token of a batch of
// sentences. The result has one tagged sentence per input sentence.
type Tagger interface {
	Tagset() tagset.Tagset
	TagSents(ctx context.Context, sents [][]string) ([][]sent.Token, error)
}

// Parser returns a constituency tree per sentence. Sentences are tokens
// joined by spaces.
type Parser interface {
	Phrases() tagset.Phrases
	ParseSents(ctx context.Context, sents []string) ([]*tree.Tree, error)
}

// DepParser returns a dependency graph per tokenized sentence. Node tags
// belong to the tagset of its Tagger.
type DepParser interface {
	Tagger() Tagger
	ParseSents(ctx context.Context, sents [][]string) ([]*dep.Graph, error)
}

// Stemmer returns the stem, or lemma, of a word.
type Stemmer interface {
	Stem(word string) string
}

// SyllableSeparator splits a word in syllables.
type SyllableSeparator interface {
	Separate(word string) []string
}

// SemanticSpace projects documents, given as words, into a latent
// semantic space.
type SemanticSpace interface {
	Dims() int
	Vector(doc []string) []float64
}

// Failure describes a failed tool invocation.
type Failure struct {
	Tool   string
	Stderr string
	Err    error
}

func (f *Failure) Error() string {
	if f.Stderr != "" {
		return fmt.Sprintf("%s: %v: %s", f.Tool, f.Err, f.Stderr)
	}
	return fmt.Sprintf("%s: %v", f.Tool, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func (f *Failure) Is(target error) bool {
	return target == ErrFailure
}

// Malformed returns the Failure for unreadable tool output.
func Malformed(tool, format string, args ...any) *Failure {
	return &Failure{Tool: tool, Err: fmt.Errorf("malformed output: "+format, args...)}
}
