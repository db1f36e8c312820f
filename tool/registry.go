package tool

import (
	"errors"
	"fmt"

	"github.com/revelaction/cohmetrix/config"
	"github.com/revelaction/cohmetrix/tagset"
)

// ErrNoSemanticSpace is returned by Registry.LSA when no space was
// configured.
var ErrNoSemanticSpace = errors.New("no LSA space configured")

// Tools are the engines a Registry is built from. All of them but LSA are
// required.
type Tools struct {
	Splitter  SentenceSplitter
	Tokenizer WordTokenizer
	Tagger    Tagger
	Parser    Parser
	DepParser DepParser
	Stemmer   Stemmer
	Syllables SyllableSeparator
	LSA       SemanticSpace
}

// Registry gives access to the NLP engines. It is read only once built and
// safe for concurrent use as long as the engines are.
type Registry struct {
	tools Tools
}

// NewRegistry checks that every tool is set.
func NewRegistry(t Tools) (*Registry, error) {
	var missing []error
	check := func(name string, ok bool) {
		if !ok {
			missing = append(missing, fmt.Errorf("missing %s", name))
		}
	}

	check("sentence splitter", t.Splitter != nil)
	check("word tokenizer", t.Tokenizer != nil)
	check("tagger", t.Tagger != nil)
	check("parser", t.Parser != nil)
	check("dependency parser", t.DepParser != nil)
	check("stemmer", t.Stemmer != nil)
	check("syllable separator", t.Syllables != nil)

	if err := errors.Join(missing...); err != nil {
		return nil, fmt.Errorf("tool registry: %w", err)
	}

	return &Registry{tools: t}, nil
}

func (r *Registry) Splitter() SentenceSplitter   { return r.tools.Splitter }
func (r *Registry) Tokenizer() WordTokenizer     { return r.tools.Tokenizer }
func (r *Registry) Tagger() Tagger               { return r.tools.Tagger }
func (r *Registry) Parser() Parser               { return r.tools.Parser }
func (r *Registry) DepParser() DepParser         { return r.tools.DepParser }
func (r *Registry) Stemmer() Stemmer             { return r.tools.Stemmer }
func (r *Registry) Syllables() SyllableSeparator { return r.tools.Syllables }

// LSA returns the latent semantic space, or ErrNoSemanticSpace.
func (r *Registry) LSA() (SemanticSpace, error) {
	if r.tools.LSA == nil {
		return nil, ErrNoSemanticSpace
	}
	return r.tools.LSA, nil
}

// Default builds the registry of the configured engines: the OpenNLP
// MacMorpho tagger (or the prose one), LX-Parser, MaltParser over a
// universal tags tagger, Punkt sentences, regexp tokens, a snowball
// stemmer and, if a file is configured, an LSA space.
func Default(cfg *config.Config) (*Registry, error) {
	stemmer, err := NewSnowballStemmer(cfg.Stemmer.Language)
	if err != nil {
		return nil, err
	}

	var lsa SemanticSpace
	if cfg.LSA.Path != "" {
		space, err := LoadLSASpace(cfg.LSA.Path)
		if err != nil {
			return nil, err
		}
		lsa = space
	}

	tagger := newTagger(cfg.Tagger, tagset.MacMorpho(), cfg)
	univ := newTagger(cfg.UniversalTagger, tagset.Universal(), cfg)

	return NewRegistry(Tools{
		Splitter:  NewPunktSplitter(),
		Tokenizer: NewRegexpTokenizer(""),
		Tagger:    tagger,
		Parser:    NewLXParser(cfg.Parser.Path, cfg.Parser.Args, cfg.ToolTimeout),
		DepParser: NewMaltParser(cfg.DepParser.Path, cfg.DepParser.Args, univ, cfg.ToolTimeout),
		Stemmer:   stemmer,
		Syllables: VowelGroupSyllables{},
		LSA:       lsa,
	})
}

func newTagger(tc config.TaggerConfig, ts tagset.Tagset, cfg *config.Config) Tagger {
	if tc.Backend == config.TaggerProse {
		return NewProseTagger()
	}
	return NewOpenNLPTagger(tc.Path, tc.Model, ts, cfg.ToolTimeout)
}
