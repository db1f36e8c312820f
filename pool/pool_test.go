package pool

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sent "github.com/revelaction/cohmetrix/sentence"
	"github.com/revelaction/cohmetrix/storage"
	"github.com/revelaction/cohmetrix/storage/filesystem"
	"github.com/revelaction/cohmetrix/tagset"
	"github.com/revelaction/cohmetrix/tool"
	"github.com/revelaction/cohmetrix/tool/tooltest"
)

type fakes struct {
	tagger    *tooltest.Tagger
	parser    *tooltest.Parser
	depParser *tooltest.DepParser
}

func newFakes() fakes {
	f := tooltest.NewFixture().AddSentence()
	return fakes{tagger: f.Tagger(), parser: f.Parser(), depParser: f.DepParser()}
}

func (f fakes) pool(t *testing.T, opts ...Option) *Pool {
	t.Helper()
	p, err := New(tooltest.Registry(f.tagger, f.parser, f.depParser), opts...)
	require.NoError(t, err)
	return p
}

func TestResources(t *testing.T) {
	f := newFakes()
	p := f.pool(t)
	ctx := context.Background()
	text := sent.NewText(tooltest.Sentence)

	sentences, err := p.Sentences(ctx, text)
	require.NoError(t, err)
	assert.Equal(t, []string{tooltest.Sentence}, sentences)

	tokens, err := p.Tokens(ctx, text)
	require.NoError(t, err)
	assert.Equal(t, [][]string{tooltest.SentenceTokens}, tokens)

	words, err := p.TaggedWords(ctx, text)
	require.NoError(t, err)
	assert.Len(t, words, 17)

	inSents, err := p.TaggedWordsInSents(ctx, text)
	require.NoError(t, err)
	require.Len(t, inSents, 1)
	assert.Equal(t, "é", inSents[0][6].Text)

	all, err := p.AllWords(ctx, text)
	require.NoError(t, err)
	assert.Equal(t, "Acessório", all[0])

	content, err := p.ContentWords(ctx, text)
	require.NoError(t, err)
	assert.Equal(t, []string{"Acessório", "utilizado", "adolescentes", "boné", "é", "itens",
		"compõem", "vestimenta", "idealizada", "proposta"}, content[0])

	stemmed, err := p.StemmedContentWords(ctx, text)
	require.NoError(t, err)
	assert.Equal(t, "aces", stemmed[0][0])

	types, err := p.TokenTypes(ctx, text)
	require.NoError(t, err)
	assert.Contains(t, types, "acessório")
	assert.Len(t, types, 17)

	nps, err := p.ToplevelNPsPerSentence(ctx, text)
	require.NoError(t, err)
	assert.Len(t, nps[0], 3)

	leaves, err := p.LeavesInToplevelNPs(ctx, text)
	require.NoError(t, err)
	require.Len(t, leaves[0], 3)
	assert.Equal(t, []string{"o", "boné"}, leaves[0][1])
	assert.Len(t, leaves[0][0], 4)
	assert.Len(t, leaves[0][2], 10)

	graphs, err := p.DepTrees(ctx, text)
	require.NoError(t, err)
	root, err := graphs[0].Root()
	require.NoError(t, err)
	assert.Equal(t, "utilizado", root.Word)
}

func TestIdempotence(t *testing.T) {
	f := newFakes()
	p := f.pool(t)
	ctx := context.Background()
	text := sent.NewText(tooltest.Sentence)

	first, err := p.TaggedSentences(ctx, text)
	require.NoError(t, err)
	second, err := p.TaggedSentences(ctx, text)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// every tagged derived kind reuses the tagged sentences
	for _, k := range []Kind{TaggedTokens, TaggedWords, TaggedWordsInSents, AllWords, ContentWords, TokenTypes} {
		_, err := p.Get(ctx, text, k)
		require.NoError(t, err, k)
	}
	assert.Equal(t, int64(1), f.tagger.Calls.Load())

	_, err = p.ParseTrees(ctx, text)
	require.NoError(t, err)
	_, err = p.LeavesInToplevelNPs(ctx, text)
	require.NoError(t, err)
	assert.Equal(t, int64(1), f.parser.Calls.Load())
}

func TestConcurrentGet(t *testing.T) {
	f := newFakes()
	p := f.pool(t)
	text := sent.NewText(tooltest.Sentence)

	var wg sync.WaitGroup
	errs := make([]error, 32)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = p.ParseTrees(context.Background(), text)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int64(1), f.parser.Calls.Load())
}

// gatedTagger tags once released.
type gatedTagger struct {
	*tooltest.Tagger
	started chan struct{}
	release chan struct{}
}

func (g gatedTagger) TagSents(ctx context.Context, sents [][]string) ([][]sent.Token, error) {
	close(g.started)
	select {
	case <-g.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return g.Tagger.TagSents(ctx, sents)
}

func TestCanceledCallerDoesNotFailOthers(t *testing.T) {
	f := newFakes()
	g := gatedTagger{Tagger: f.tagger, started: make(chan struct{}), release: make(chan struct{})}
	p, err := New(tooltest.Registry(g, f.parser, f.depParser))
	require.NoError(t, err)
	text := sent.NewText(tooltest.Sentence)

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := p.TaggedSentences(ctx, text)
		firstErr <- err
	}()
	<-g.started

	secondErr := make(chan error, 1)
	go func() {
		tagged, err := p.TaggedSentences(context.Background(), text)
		if err == nil && len(tagged) != 1 {
			err = errors.New("unexpected tagged sentences")
		}
		secondErr <- err
	}()

	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(g.release)
	require.NoError(t, <-secondErr)
	assert.Equal(t, int64(1), f.tagger.Calls.Load())
}

func TestCanceledBeforeCompute(t *testing.T) {
	f := newFakes()
	p := f.pool(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.TaggedSentences(ctx, sent.NewText(tooltest.Sentence))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int64(0), f.tagger.Calls.Load())
}

func TestFailureNotCached(t *testing.T) {
	f := newFakes()
	f.tagger.Err = &tool.Failure{Tool: "tagger", Err: errors.New("crashed")}
	p := f.pool(t)
	ctx := context.Background()
	text := sent.NewText(tooltest.Sentence)

	_, err := p.TaggedWords(ctx, text)
	require.Error(t, err)
	assert.ErrorIs(t, err, tool.ErrFailure)

	var re *ResourceError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, TaggedSentences, re.Kind)
	assert.Equal(t, text.ID, re.TextID)

	f.tagger.Err = nil
	words, err := p.TaggedWords(ctx, text)
	require.NoError(t, err)
	assert.Len(t, words, 17)
	assert.Equal(t, int64(2), f.tagger.Calls.Load())
}

// shortTagger loses the last sentence.
type shortTagger struct {
	*tooltest.Tagger
}

func (s shortTagger) TagSents(ctx context.Context, sents [][]string) ([][]sent.Token, error) {
	tagged, err := s.Tagger.TagSents(ctx, sents)
	if err != nil || len(tagged) == 0 {
		return tagged, err
	}
	return tagged[:len(tagged)-1], nil
}

func TestMalformedToolOutput(t *testing.T) {
	f := newFakes()
	p, err := New(tooltest.Registry(shortTagger{f.tagger}, f.parser, f.depParser))
	require.NoError(t, err)

	_, err = p.TaggedSentences(context.Background(), sent.NewText(tooltest.Sentence))
	assert.ErrorIs(t, err, tool.ErrFailure)

	_, err = p.ParseTrees(context.Background(), sent.NewText("Frase sem árvore."))
	assert.ErrorIs(t, err, tool.ErrFailure)
}

// blockingTagger waits for the context to end.
type blockingTagger struct{}

func (blockingTagger) Tagset() tagset.Tagset { return tagset.MacMorpho() }

func (blockingTagger) TagSents(ctx context.Context, _ [][]string) ([][]sent.Token, error) {
	<-ctx.Done()
	return nil, &tool.Failure{Tool: "blocking", Err: ctx.Err()}
}

func TestTimeout(t *testing.T) {
	f := newFakes()
	p, err := New(tooltest.Registry(blockingTagger{}, f.parser, f.depParser), WithTimeout(10*time.Millisecond))
	require.NoError(t, err)

	_, err = p.TaggedSentences(context.Background(), sent.NewText(tooltest.Sentence))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.ErrorIs(t, err, tool.ErrFailure)
}

func TestCacheLimit(t *testing.T) {
	_, err := New(tooltest.Registry(nil, nil, nil), WithCacheLimit(-1))
	require.Error(t, err)

	f := newFakes()
	p := f.pool(t, WithCacheLimit(1))
	ctx := context.Background()

	a := sent.NewText(tooltest.Sentence)
	b := sent.NewText("Maria saiu.")

	_, err = p.TaggedSentences(ctx, a)
	require.NoError(t, err)
	_, err = p.TaggedSentences(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Len())

	// a was evicted by b
	_, err = p.TaggedSentences(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, int64(3), f.tagger.Calls.Load())
}

func TestNoCache(t *testing.T) {
	f := newFakes()
	p := f.pool(t, WithCacheLimit(0))
	text := sent.NewText(tooltest.Sentence)

	for i := 0; i < 2; i++ {
		_, err := p.TaggedSentences(context.Background(), text)
		require.NoError(t, err)
	}
	assert.Equal(t, int64(2), f.tagger.Calls.Load())
	assert.Equal(t, 0, p.Len())
}

func TestForget(t *testing.T) {
	f := newFakes()
	p := f.pool(t)
	text := sent.NewText(tooltest.Sentence)

	_, err := p.TaggedSentences(context.Background(), text)
	require.NoError(t, err)
	p.Forget(text)
	assert.Equal(t, 0, p.Len())

	_, err = p.TaggedSentences(context.Background(), text)
	require.NoError(t, err)
	assert.Equal(t, int64(2), f.tagger.Calls.Load())
}

func TestUnknownKind(t *testing.T) {
	p := newFakes().pool(t)
	_, err := p.Get(context.Background(), sent.NewText("x"), Kind("lsa_space"))
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestKinds(t *testing.T) {
	for _, k := range Kinds() {
		assert.Contains(t, resources, k)
	}
	assert.Len(t, resources, len(Kinds()))
}

func TestStore(t *testing.T) {
	store, err := filesystem.NewAnnotationStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	f := newFakes()
	p := f.pool(t, WithStore(store))
	text := sent.NewText(tooltest.Sentence)

	for _, k := range []Kind{TaggedSentences, ParseTrees, DepTrees} {
		_, err := p.Get(ctx, text, k)
		require.NoError(t, err, k)

		_, err = store.Read(storage.Key{Version: text.Version(), Kind: string(k)})
		require.NoError(t, err, k)
	}

	// a new pool, and a new text with the same body, read the store
	g := newFakes()
	q := g.pool(t, WithStore(store))
	again := sent.NewText(tooltest.Sentence)

	leaves, err := q.LeavesInToplevelNPs(ctx, again)
	require.NoError(t, err)
	assert.Len(t, leaves[0], 3)

	graphs, err := q.DepTrees(ctx, again)
	require.NoError(t, err)
	assert.Len(t, graphs[0].Nodes, 19)

	words, err := q.TaggedWords(ctx, again)
	require.NoError(t, err)
	assert.Len(t, words, 17)

	assert.Zero(t, g.tagger.Calls.Load())
	assert.Zero(t, g.parser.Calls.Load())
	assert.Zero(t, g.depParser.Calls.Load())
}

func TestStoreCorruption(t *testing.T) {
	store, err := filesystem.NewAnnotationStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()
	text := sent.NewText(tooltest.Sentence)

	key := storage.Key{Version: text.Version(), Kind: string(ParseTrees)}
	require.NoError(t, store.Write(key, []byte("{not json")))

	f := newFakes()
	p := f.pool(t, WithStore(store))

	_, err = p.ParseTrees(ctx, text)
	assert.ErrorIs(t, err, ErrCacheCorruption)

	var re *ResourceError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, ParseTrees, re.Kind)

	_, err = store.Read(key)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// the next request computes again
	trees, err := p.ParseTrees(ctx, text)
	require.NoError(t, err)
	assert.Len(t, trees, 1)
	assert.Equal(t, int64(1), f.parser.Calls.Load())
}

func TestStoreInconsistent(t *testing.T) {
	store, err := filesystem.NewAnnotationStore(t.TempDir())
	require.NoError(t, err)
	text := sent.NewText(tooltest.Sentence)

	// two tagged sentences stored for a one sentence text
	key := storage.Key{Version: text.Version(), Kind: string(TaggedSentences)}
	require.NoError(t, store.Write(key, []byte(`[[],[]]`)))

	p := newFakes().pool(t, WithStore(store))
	_, err = p.TaggedSentences(context.Background(), text)
	assert.ErrorIs(t, err, ErrCacheCorruption)
}
