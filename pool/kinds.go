package pool

import (
	"context"
	"strings"

	"github.com/revelaction/cohmetrix/dep"
	sent "github.com/revelaction/cohmetrix/sentence"
	"github.com/revelaction/cohmetrix/tool"
	"github.com/revelaction/cohmetrix/tree"
)

// Kind names a resource of a text.
type Kind string

const (
	Paragraphs Kind = "paragraphs"
	Sentences  Kind = "sentences"
	Tokens     Kind = "tokens"

	TaggedSentences     Kind = "tagged_sentences"
	TaggedTokens        Kind = "tagged_tokens"
	TaggedWords         Kind = "tagged_words"
	TaggedWordsInSents  Kind = "tagged_words_in_sents"
	AllWords            Kind = "all_words"
	ContentWords        Kind = "content_words"
	StemmedContentWords Kind = "stemmed_content_words"
	TokenTypes          Kind = "token_types"

	ParseTrees             Kind = "parse_trees"
	DepTrees               Kind = "dep_trees"
	ToplevelNPsPerSentence Kind = "toplevel_nps_per_sentence"
	LeavesInToplevelNPs    Kind = "leaves_in_toplevel_nps"
)

type computeFunc func(ctx context.Context, p *Pool, t *sent.Text) (any, error)

// resources is set in init, since its functions call back into Pool.Get.
var resources map[Kind]computeFunc

func init() {
	resources = map[Kind]computeFunc{
		Paragraphs: func(_ context.Context, _ *Pool, t *sent.Text) (any, error) {
			return t.Paragraphs(), nil
		},
		Sentences:              computeSentences,
		Tokens:                 computeTokens,
		TaggedSentences:        persisted(TaggedSentences, computeTaggedSentences, checkTaggedSentences),
		TaggedTokens:           computeTaggedTokens,
		TaggedWords:            computeTaggedWords,
		TaggedWordsInSents:     computeTaggedWordsInSents,
		AllWords:               computeAllWords,
		ContentWords:           computeContentWords,
		StemmedContentWords:    computeStemmedContentWords,
		TokenTypes:             computeTokenTypes,
		ParseTrees:             persisted(ParseTrees, computeParseTrees, checkParseTrees),
		DepTrees:               persisted(DepTrees, computeDepTrees, checkDepTrees),
		ToplevelNPsPerSentence: computeToplevelNPs,
		LeavesInToplevelNPs:    computeLeavesInToplevelNPs,
	}
}

// Kinds returns every resource kind a pool computes.
func Kinds() []Kind {
	return []Kind{
		Paragraphs, Sentences, Tokens,
		TaggedSentences, TaggedTokens, TaggedWords, TaggedWordsInSents, AllWords,
		ContentWords, StemmedContentWords, TokenTypes,
		ParseTrees, DepTrees, ToplevelNPsPerSentence, LeavesInToplevelNPs,
	}
}

func computeSentences(ctx context.Context, p *Pool, t *sent.Text) (any, error) {
	paragraphs, err := p.Paragraphs(ctx, t)
	if err != nil {
		return nil, err
	}

	splitter := p.tools.Splitter()
	var sentences []string
	for _, par := range paragraphs {
		for _, s := range splitter.Split(par) {
			if s = strings.TrimSpace(s); s != "" {
				sentences = append(sentences, s)
			}
		}
	}
	return sentences, nil
}

// computeTokens drops sentences without tokens, so that every tool sees
// the same sentences.
func computeTokens(ctx context.Context, p *Pool, t *sent.Text) (any, error) {
	sentences, err := p.Sentences(ctx, t)
	if err != nil {
		return nil, err
	}

	tokenizer := p.tools.Tokenizer()
	tokens := make([][]string, 0, len(sentences))
	for _, s := range sentences {
		if toks := tokenizer.Tokenize(s); len(toks) > 0 {
			tokens = append(tokens, toks)
		}
	}
	return tokens, nil
}

func computeTaggedSentences(ctx context.Context, p *Pool, t *sent.Text) (any, error) {
	tokens, err := p.Tokens(ctx, t)
	if err != nil {
		return nil, err
	}

	tctx, cancel := p.toolContext(ctx)
	defer cancel()

	tagged, err := p.tools.Tagger().TagSents(tctx, tokens)
	if err != nil {
		return nil, err
	}

	if err := matchTagged(tokens, tagged); err != nil {
		return nil, err
	}
	return tagged, nil
}

func matchTagged(tokens [][]string, tagged [][]sent.Token) error {
	if len(tagged) != len(tokens) {
		return tool.Malformed("tagger", "%d tagged sentences for %d sentences", len(tagged), len(tokens))
	}
	for i := range tokens {
		if len(tagged[i]) != len(tokens[i]) {
			return tool.Malformed("tagger", "sentence %d: %d tags for %d tokens", i, len(tagged[i]), len(tokens[i]))
		}
	}
	return nil
}

func computeTaggedTokens(ctx context.Context, p *Pool, t *sent.Text) (any, error) {
	tagged, err := p.TaggedSentences(ctx, t)
	if err != nil {
		return nil, err
	}
	return sent.Flatten(tagged), nil
}

func computeTaggedWords(ctx context.Context, p *Pool, t *sent.Text) (any, error) {
	tokens, err := p.TaggedTokens(ctx, t)
	if err != nil {
		return nil, err
	}

	ts := p.tools.Tagger().Tagset()
	return sent.Filter(tokens, func(tok sent.Token) bool { return !ts.IsPunctuation(tok) }), nil
}

func computeTaggedWordsInSents(ctx context.Context, p *Pool, t *sent.Text) (any, error) {
	tagged, err := p.TaggedSentences(ctx, t)
	if err != nil {
		return nil, err
	}

	ts := p.tools.Tagger().Tagset()
	words := make([][]sent.Token, len(tagged))
	for i, s := range tagged {
		words[i] = sent.Filter(s, func(tok sent.Token) bool { return !ts.IsPunctuation(tok) })
	}
	return words, nil
}

func computeAllWords(ctx context.Context, p *Pool, t *sent.Text) (any, error) {
	words, err := p.TaggedWords(ctx, t)
	if err != nil {
		return nil, err
	}
	return sent.Words(words), nil
}

func computeContentWords(ctx context.Context, p *Pool, t *sent.Text) (any, error) {
	tagged, err := p.TaggedSentences(ctx, t)
	if err != nil {
		return nil, err
	}

	ts := p.tools.Tagger().Tagset()
	content := make([][]string, len(tagged))
	for i, s := range tagged {
		content[i] = sent.Words(sent.Filter(s, ts.IsContentWord))
	}
	return content, nil
}

func computeStemmedContentWords(ctx context.Context, p *Pool, t *sent.Text) (any, error) {
	content, err := p.ContentWords(ctx, t)
	if err != nil {
		return nil, err
	}

	stemmer := p.tools.Stemmer()
	stemmed := make([][]string, len(content))
	for i, s := range content {
		stemmed[i] = make([]string, len(s))
		for j, w := range s {
			if stem := stemmer.Stem(w); stem != "" {
				stemmed[i][j] = stem
			} else {
				stemmed[i][j] = w
			}
		}
	}
	return stemmed, nil
}

func computeTokenTypes(ctx context.Context, p *Pool, t *sent.Text) (any, error) {
	words, err := p.AllWords(ctx, t)
	if err != nil {
		return nil, err
	}

	types := make(map[string]struct{}, len(words))
	for _, w := range words {
		types[strings.ToLower(w)] = struct{}{}
	}
	return types, nil
}

func computeParseTrees(ctx context.Context, p *Pool, t *sent.Text) (any, error) {
	tokens, err := p.Tokens(ctx, t)
	if err != nil {
		return nil, err
	}

	sentences := make([]string, len(tokens))
	for i, s := range tokens {
		sentences[i] = strings.Join(s, " ")
	}

	tctx, cancel := p.toolContext(ctx)
	defer cancel()

	trees, err := p.tools.Parser().ParseSents(tctx, sentences)
	if err != nil {
		return nil, err
	}

	if len(trees) != len(tokens) {
		return nil, tool.Malformed("parser", "%d trees for %d sentences", len(trees), len(tokens))
	}
	return trees, nil
}

func computeDepTrees(ctx context.Context, p *Pool, t *sent.Text) (any, error) {
	tokens, err := p.Tokens(ctx, t)
	if err != nil {
		return nil, err
	}

	tctx, cancel := p.toolContext(ctx)
	defer cancel()

	graphs, err := p.tools.DepParser().ParseSents(tctx, tokens)
	if err != nil {
		return nil, err
	}

	if len(graphs) != len(tokens) {
		return nil, tool.Malformed("dependency parser", "%d graphs for %d sentences", len(graphs), len(tokens))
	}
	return graphs, nil
}

func computeToplevelNPs(ctx context.Context, p *Pool, t *sent.Text) (any, error) {
	trees, err := p.ParseTrees(ctx, t)
	if err != nil {
		return nil, err
	}

	np := p.tools.Parser().Phrases().NounPhrase
	nps := make([][]*tree.Tree, len(trees))
	for i, tr := range trees {
		nps[i] = tr.TopLevel(np)
	}
	return nps, nil
}

// computeLeavesInToplevelNPs keeps the word of every non punctuation
// preterminal in the top level noun phrases.
func computeLeavesInToplevelNPs(ctx context.Context, p *Pool, t *sent.Text) (any, error) {
	nps, err := p.ToplevelNPsPerSentence(ctx, t)
	if err != nil {
		return nil, err
	}

	punct := p.tools.Parser().Phrases().Punctuation
	leaves := make([][][]string, len(nps))
	for i, sentNPs := range nps {
		leaves[i] = make([][]string, len(sentNPs))
		for j, np := range sentNPs {
			pre := np.Subtrees(func(n *tree.Tree) bool {
				return n.Label != punct && n.IsPreterminal()
			})

			words := make([]string, len(pre))
			for k, n := range pre {
				words[k] = n.Children[0].Label
			}
			leaves[i][j] = words
		}
	}
	return leaves, nil
}

func (p *Pool) Paragraphs(ctx context.Context, t *sent.Text) ([]string, error) {
	return get[[]string](ctx, p, t, Paragraphs)
}

func (p *Pool) Sentences(ctx context.Context, t *sent.Text) ([]string, error) {
	return get[[]string](ctx, p, t, Sentences)
}

func (p *Pool) Tokens(ctx context.Context, t *sent.Text) ([][]string, error) {
	return get[[][]string](ctx, p, t, Tokens)
}

func (p *Pool) TaggedSentences(ctx context.Context, t *sent.Text) ([][]sent.Token, error) {
	return get[[][]sent.Token](ctx, p, t, TaggedSentences)
}

func (p *Pool) TaggedTokens(ctx context.Context, t *sent.Text) ([]sent.Token, error) {
	return get[[]sent.Token](ctx, p, t, TaggedTokens)
}

// TaggedWords returns the tagged tokens that are not punctuation.
func (p *Pool) TaggedWords(ctx context.Context, t *sent.Text) ([]sent.Token, error) {
	return get[[]sent.Token](ctx, p, t, TaggedWords)
}

func (p *Pool) TaggedWordsInSents(ctx context.Context, t *sent.Text) ([][]sent.Token, error) {
	return get[[][]sent.Token](ctx, p, t, TaggedWordsInSents)
}

func (p *Pool) AllWords(ctx context.Context, t *sent.Text) ([]string, error) {
	return get[[]string](ctx, p, t, AllWords)
}

func (p *Pool) ContentWords(ctx context.Context, t *sent.Text) ([][]string, error) {
	return get[[][]string](ctx, p, t, ContentWords)
}

func (p *Pool) StemmedContentWords(ctx context.Context, t *sent.Text) ([][]string, error) {
	return get[[][]string](ctx, p, t, StemmedContentWords)
}

// TokenTypes returns the distinct lowercased words.
func (p *Pool) TokenTypes(ctx context.Context, t *sent.Text) (map[string]struct{}, error) {
	return get[map[string]struct{}](ctx, p, t, TokenTypes)
}

func (p *Pool) ParseTrees(ctx context.Context, t *sent.Text) ([]*tree.Tree, error) {
	return get[[]*tree.Tree](ctx, p, t, ParseTrees)
}

func (p *Pool) DepTrees(ctx context.Context, t *sent.Text) ([]*dep.Graph, error) {
	return get[[]*dep.Graph](ctx, p, t, DepTrees)
}

// ToplevelNPsPerSentence returns, per sentence, the noun phrases not
// contained in another noun phrase.
func (p *Pool) ToplevelNPsPerSentence(ctx context.Context, t *sent.Text) ([][]*tree.Tree, error) {
	return get[[][]*tree.Tree](ctx, p, t, ToplevelNPsPerSentence)
}

// LeavesInToplevelNPs returns, per sentence and top level noun phrase, its
// words without punctuation.
func (p *Pool) LeavesInToplevelNPs(ctx context.Context, t *sent.Text) ([][][]string, error) {
	return get[[][][]string](ctx, p, t, LeavesInToplevelNPs)
}
