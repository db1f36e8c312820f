// Package tooltest provides fixture driven NLP engines for tests. Every
// engine counts its invocations.
package tooltest

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"unicode"

	"github.com/revelaction/cohmetrix/dep"
	sent "github.com/revelaction/cohmetrix/sentence"
	"github.com/revelaction/cohmetrix/tagset"
	"github.com/revelaction/cohmetrix/tool"
	"github.com/revelaction/cohmetrix/tree"
)

// Splitter cuts a paragraph after '.', '!' or '?' followed by a space.
type Splitter struct {
	Calls atomic.Int64
}

func (s *Splitter) Split(paragraph string) []string {
	s.Calls.Add(1)

	var (
		sents []string
		start int
	)
	runes := []rune(paragraph)
	for i, r := range runes {
		if !strings.ContainsRune(".!?", r) {
			continue
		}
		if i+1 == len(runes) || unicode.IsSpace(runes[i+1]) {
			if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
				sents = append(sents, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		sents = append(sents, s)
	}
	return sents
}

// Tokenizer splits on white space and detaches trailing punctuation.
type Tokenizer struct {
	Calls atomic.Int64
}

func (t *Tokenizer) Tokenize(sentence string) []string {
	t.Calls.Add(1)

	var tokens []string
	for _, f := range strings.Fields(sentence) {
		var trailing []string
		for len(f) > 1 && strings.ContainsAny(f[len(f)-1:], ",.!?;:") {
			trailing = append([]string{f[len(f)-1:]}, trailing...)
			f = f[:len(f)-1]
		}
		tokens = append(tokens, f)
		tokens = append(tokens, trailing...)
	}
	return tokens
}

// Tagger tags words from a lexicon. Unknown words get Default.
type Tagger struct {
	Set     tagset.Tagset
	Lexicon map[string]string
	Default string

	// Err, if set, is returned by every call.
	Err   error
	Calls atomic.Int64
}

func (t *Tagger) Tagset() tagset.Tagset {
	return t.Set
}

func (t *Tagger) TagSents(ctx context.Context, sents [][]string) ([][]sent.Token, error) {
	t.Calls.Add(1)
	if t.Err != nil {
		return nil, t.Err
	}

	tagged := make([][]sent.Token, len(sents))
	for i, s := range sents {
		tagged[i] = make([]sent.Token, len(s))
		for j, w := range s {
			tag, ok := t.Lexicon[w]
			if !ok {
				tag = t.Default
			}
			tok := sent.Tagged(w, tag)
			tok.Index = j
			tagged[i][j] = tok
		}
	}
	return tagged, nil
}

// Parser returns the tree registered for a sentence.
type Parser struct {
	Labels tagset.Phrases

	// Trees maps sentences to bracketed trees.
	Trees map[string]string

	Err   error
	Calls atomic.Int64
}

func (p *Parser) Phrases() tagset.Phrases {
	return p.Labels
}

func (p *Parser) ParseSents(ctx context.Context, sents []string) ([]*tree.Tree, error) {
	p.Calls.Add(1)
	if p.Err != nil {
		return nil, p.Err
	}

	trees := make([]*tree.Tree, len(sents))
	for i, s := range sents {
		bracketed, ok := p.Trees[s]
		if !ok {
			return nil, tool.Malformed("tooltest parser", "no tree for %q", s)
		}
		t, err := tree.Parse(bracketed)
		if err != nil {
			return nil, fmt.Errorf("tooltest parser: %w", err)
		}
		trees[i] = t
	}
	return trees, nil
}

// DepParser returns the CoNLL graph registered for a sentence, keyed by its
// tokens joined by spaces.
type DepParser struct {
	Tags tool.Tagger

	Graphs map[string]string

	Err   error
	Calls atomic.Int64
}

func (d *DepParser) Tagger() tool.Tagger {
	if d.Tags == nil {
		return &Tagger{Set: tagset.Universal()}
	}
	return d.Tags
}

func (d *DepParser) ParseSents(ctx context.Context, sents [][]string) ([]*dep.Graph, error) {
	d.Calls.Add(1)
	if d.Err != nil {
		return nil, d.Err
	}

	graphs := make([]*dep.Graph, len(sents))
	for i, s := range sents {
		key := strings.Join(s, " ")
		conll, ok := d.Graphs[key]
		if !ok {
			return nil, tool.Malformed("tooltest dep parser", "no graph for %q", key)
		}
		gs, err := dep.ParseConll(conll)
		if err != nil {
			return nil, fmt.Errorf("tooltest dep parser: %w", err)
		}
		if len(gs) != 1 {
			return nil, tool.Malformed("tooltest dep parser", "%d graphs for %q", len(gs), key)
		}
		graphs[i] = gs[0]
	}
	return graphs, nil
}

// Stemmer lowercases and cuts words to at most Len runes.
type Stemmer struct {
	Len   int
	Calls atomic.Int64
}

func (s *Stemmer) Stem(word string) string {
	s.Calls.Add(1)
	r := []rune(strings.ToLower(word))
	if s.Len > 0 && len(r) > s.Len {
		r = r[:s.Len]
	}
	return string(r)
}

// Space is a semantic space over fixed word vectors. Unknown words are
// ignored.
type Space struct {
	Vectors map[string][]float64
	Calls   atomic.Int64
}

func (s *Space) Dims() int {
	for _, v := range s.Vectors {
		return len(v)
	}
	return 0
}

func (s *Space) Vector(doc []string) []float64 {
	s.Calls.Add(1)
	v := make([]float64, s.Dims())
	for _, w := range doc {
		for i, x := range s.Vectors[strings.ToLower(w)] {
			v[i] += x
		}
	}
	return v
}

// Tools returns a complete set of fakes around the given engines. Nil
// engines are replaced by empty fakes.
func Tools(tagger tool.Tagger, parser tool.Parser, depParser tool.DepParser) tool.Tools {
	if tagger == nil {
		tagger = &Tagger{Set: tagset.MacMorpho()}
	}
	if parser == nil {
		parser = &Parser{Labels: tagset.LXParser()}
	}
	if depParser == nil {
		depParser = &DepParser{}
	}

	return tool.Tools{
		Splitter:  &Splitter{},
		Tokenizer: &Tokenizer{},
		Tagger:    tagger,
		Parser:    parser,
		DepParser: depParser,
		Stemmer:   &Stemmer{Len: 4},
		Syllables: tool.VowelGroupSyllables{},
	}
}

// Registry is like Tools but returns the registry.
func Registry(tagger tool.Tagger, parser tool.Parser, depParser tool.DepParser) *tool.Registry {
	r, err := tool.NewRegistry(Tools(tagger, parser, depParser))
	if err != nil {
		panic(err)
	}
	return r
}

var (
	_ tool.SentenceSplitter = (*Splitter)(nil)
	_ tool.WordTokenizer    = (*Tokenizer)(nil)
	_ tool.Tagger           = (*Tagger)(nil)
	_ tool.Parser           = (*Parser)(nil)
	_ tool.DepParser        = (*DepParser)(nil)
	_ tool.Stemmer          = (*Stemmer)(nil)
	_ tool.SemanticSpace    = (*Space)(nil)
)
