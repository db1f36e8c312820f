package tool

import (
	"context"

	"github.com/jdkato/prose/tag"
	"github.com/jdkato/prose/tokenize"
	"golang.org/x/text/unicode/norm"

	sent "github.com/revelaction/cohmetrix/sentence"
	"github.com/revelaction/cohmetrix/tagset"
)

// WordPattern matches words, numbers and single punctuation marks,
// keeping Portuguese clitics (e.g. "fazê-lo") and contractions together.
const WordPattern = `[\p{L}\p{N}]+(?:[-'’][\p{L}\p{N}]+)*|[^\s\p{L}\p{N}]`

// ProseTagger is the in-process English averaged perceptron tagger. Its
// tags are Penn Treebank tags.
type ProseTagger struct {
	tagger *tag.PerceptronTagger
	tagset tagset.Tagset
}

var _ Tagger = (*ProseTagger)(nil)

func NewProseTagger() *ProseTagger {
	return &ProseTagger{
		tagger: tag.NewPerceptronTagger(),
		tagset: tagset.PennTreebank(),
	}
}

func (p *ProseTagger) Tagset() tagset.Tagset {
	return p.tagset
}

func (p *ProseTagger) TagSents(ctx context.Context, sents [][]string) ([][]sent.Token, error) {
	tagged := make([][]sent.Token, len(sents))
	for i, s := range sents {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tokens := p.tagger.Tag(s)
		tagged[i] = make([]sent.Token, len(tokens))
		for j, tok := range tokens {
			t := sent.Tagged(tok.Text, tok.Tag)
			t.Index = j
			tagged[i][j] = t
		}
	}
	return tagged, nil
}

// PunktSplitter splits sentences with the Punkt algorithm.
type PunktSplitter struct {
	punkt *tokenize.PunktSentenceTokenizer
}

var _ SentenceSplitter = (*PunktSplitter)(nil)

func NewPunktSplitter() *PunktSplitter {
	return &PunktSplitter{punkt: tokenize.NewPunktSentenceTokenizer()}
}

func (p *PunktSplitter) Split(paragraph string) []string {
	return p.punkt.Tokenize(norm.NFC.String(paragraph))
}

// RegexpTokenizer splits sentences in the tokens matched by a pattern.
type RegexpTokenizer struct {
	re *tokenize.RegexpTokenizer
}

var _ WordTokenizer = (*RegexpTokenizer)(nil)

// NewRegexpTokenizer returns a tokenizer keeping the matches of pattern.
// An empty pattern means WordPattern.
func NewRegexpTokenizer(pattern string) *RegexpTokenizer {
	if pattern == "" {
		pattern = WordPattern
	}
	return &RegexpTokenizer{re: tokenize.NewRegexpTokenizer(pattern, false, true)}
}

func (r *RegexpTokenizer) Tokenize(sentence string) []string {
	return r.re.Tokenize(norm.NFC.String(sentence))
}
