package batch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revelaction/cohmetrix/config"
	"github.com/revelaction/cohmetrix/pool"
	sent "github.com/revelaction/cohmetrix/sentence"
	"github.com/revelaction/cohmetrix/storage"
	"github.com/revelaction/cohmetrix/tokens"
	"github.com/revelaction/cohmetrix/tool"
	"github.com/revelaction/cohmetrix/tool/tooltest"
)

const catSentence = "O gato dorme."

func fixture() *tooltest.Fixture {
	return tooltest.NewFixture().
		AddSentence().
		Add([]string{"O", "gato", "dorme", "."}, []string{"ART", "N", "V", "PU"},
			"(ROOT (S (NP (ART O) (N gato)) (VP (V dorme)) (PNT .)))",
			"1\tO\t_\tDET\tDET\t_\t2\tdet\t_\t_\n"+
				"2\tgato\t_\tNOUN\tNOUN\t_\t3\tnsubj\t_\t_\n"+
				"3\tdorme\t_\tVERB\tVERB\t_\t0\troot\t_\t_\n"+
				"4\t.\t_\tPUNCT\tPUNCT\t_\t3\tpunct\t_\t_\n")
}

// pools returns a factory of pools over the fixture and the number of
// pools it built.
func pools(f *tooltest.Fixture) (PoolFactory, *atomic.Int64) {
	var built atomic.Int64
	return func() (*pool.Pool, error) {
		built.Add(1)
		return pool.New(tooltest.Registry(f.Tagger(), f.Parser(), f.DepParser()))
	}, &built
}

func texts(n int) []*sent.Text {
	ts := make([]*sent.Text, n)
	for i := range ts {
		content := catSentence
		if i%2 == 1 {
			content = tooltest.Sentence
		}
		ts[i] = sent.NewText(content, sent.WithTitle(fmt.Sprintf("text %d", i)))
	}
	return ts
}

func TestRun(t *testing.T) {
	factory, built := pools(fixture())
	d, err := New(DefaultSet(), factory, WithWorkers(3))
	require.NoError(t, err)

	in := texts(10)
	reports, err := d.Run(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, reports, 10)
	assert.Equal(t, int64(3), built.Load())

	for i, r := range reports {
		assert.Same(t, in[i], r.Text)
		assert.Equal(t, DefaultSet().Len(), len(r.Values))

		words, ok := r.Values.Get("words")
		require.True(t, ok)
		if i%2 == 1 {
			assert.Equal(t, 17.0, words.Value)
		} else {
			assert.Equal(t, 3.0, words.Value)
		}
	}

	// one sentence texts compute every metric but Honore's, undefined
	// when no word repeats
	for _, r := range reports {
		require.Equal(t, 1, r.Failed)
		assert.ErrorIs(t, r.Values.Failed()[0].Err, tokens.ErrAllHapax)
	}
	incidence, _ := reports[1].Values.Get("np_incidence")
	assert.InDelta(t, 294.1176, incidence.Value, 1e-4)
}

func TestRunFewTexts(t *testing.T) {
	factory, built := pools(fixture())
	d, err := New(DefaultSet(), factory, WithWorkers(8))
	require.NoError(t, err)

	reports, err := d.Run(context.Background(), texts(2))
	require.NoError(t, err)
	assert.Len(t, reports, 2)
	assert.Equal(t, int64(2), built.Load())

	reports, err = d.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestRunFailedMetrics(t *testing.T) {
	f := fixture()
	boom := errors.New("parser crashed")

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	d, err := New(DefaultSet(), func() (*pool.Pool, error) {
		parser := f.Parser()
		parser.Err = boom
		return pool.New(tooltest.Registry(f.Tagger(), parser, f.DepParser()))
	}, WithLogger(logger))
	require.NoError(t, err)

	reports, err := d.Run(context.Background(), texts(1))
	require.NoError(t, err)
	require.Len(t, reports, 1)

	// the parse tree metrics: 5 noun phrase ones, Yngve, Frazier, pronouns
	// per noun phrase and clauses; Honore fails on its own
	assert.Equal(t, 10, reports[0].Failed)
	parseFailures := 0
	for _, v := range reports[0].Values.Failed() {
		if errors.Is(v.Err, boom) {
			parseFailures++
		}
	}
	assert.Equal(t, 9, parseFailures)
	assert.Contains(t, logs.String(), "metric failed")
	assert.Contains(t, logs.String(), "parser crashed")
}

func TestRunPoolFailure(t *testing.T) {
	boom := errors.New("no tools")
	d, err := New(DefaultSet(), func() (*pool.Pool, error) { return nil, boom })
	require.NoError(t, err)

	_, err = d.Run(context.Background(), texts(3))
	assert.ErrorIs(t, err, boom)
}

func TestRunCanceled(t *testing.T) {
	factory, _ := pools(fixture())
	d, err := New(DefaultSet(), factory, WithWorkers(2))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = d.Run(ctx, texts(20))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewInvalid(t *testing.T) {
	factory, _ := pools(fixture())

	_, err := New(nil, factory)
	assert.Error(t, err)

	_, err = New(DefaultSet(), nil)
	assert.Error(t, err)

	_, err = New(DefaultSet(), factory, WithWorkers(0))
	assert.Error(t, err)
}

func TestDefaultSet(t *testing.T) {
	set := DefaultSet()

	var tables []string
	for _, c := range set.Categories() {
		tables = append(tables, c.TableName())
	}
	assert.Equal(t, []string{"basic_counts", "constituents", "syntax", "tokens", "logic_operators", "coreference"}, tables)
	assert.Equal(t, 14+6+3+6+5+5, set.Len())
}

func TestSetFor(t *testing.T) {
	f := fixture()
	tools := tooltest.Tools(f.Tagger(), f.Parser(), f.DepParser())

	r, err := tool.NewRegistry(tools)
	require.NoError(t, err)
	assert.Equal(t, DefaultSet().Len(), SetFor(r).Len())
	_, ok := SetFor(r).Category("lsa")
	assert.False(t, ok)

	tools.LSA = &tooltest.Space{Vectors: map[string][]float64{"gato": {1, 0}}}
	r, err = tool.NewRegistry(tools)
	require.NoError(t, err)
	assert.Equal(t, DefaultSet().Len()+3, SetFor(r).Len())
	_, ok = SetFor(r).Category("lsa")
	assert.True(t, ok)
}

func TestOpenStore(t *testing.T) {
	dir := t.TempDir()

	s, err := OpenStore(config.StoreConfig{Kind: config.StoreNone})
	require.NoError(t, err)
	assert.Nil(t, s)

	for _, sc := range []config.StoreConfig{
		{Kind: config.StoreSqlite, Path: filepath.Join(dir, "annotations.db")},
		{Kind: config.StoreFilesystem, Path: filepath.Join(dir, "annotations")},
	} {
		s, err := OpenStore(sc)
		require.NoError(t, err, sc.Kind)

		key := storage.Key{Version: "abc", Kind: "tagged_sentences"}
		require.NoError(t, s.Write(key, []byte(`[]`)), sc.Kind)
		data, err := s.Read(key)
		require.NoError(t, err, sc.Kind)
		assert.Equal(t, []byte(`[]`), data, sc.Kind)
		require.NoError(t, s.Close(), sc.Kind)
	}

	_, err = OpenStore(config.StoreConfig{Kind: "redis"})
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestStoreSharedByWorkers(t *testing.T) {
	f := fixture()
	store, err := OpenStore(config.StoreConfig{Kind: config.StoreSqlite, Path: filepath.Join(t.TempDir(), "a.db")})
	require.NoError(t, err)
	defer store.Close()

	cfg := &config.Config{CacheLimit: 10, ToolTimeout: time.Minute}
	tagger := f.Tagger()
	d, err := New(DefaultSet(), func() (*pool.Pool, error) {
		return PoolsFor(cfg, tooltest.Registry(tagger, f.Parser(), f.DepParser()), store, nil)()
	}, WithWorkers(2))
	require.NoError(t, err)

	in := []*sent.Text{sent.NewText(catSentence)}
	_, err = d.Run(context.Background(), in)
	require.NoError(t, err)
	calls := tagger.Calls.Load()

	// same body, another text: the tags come from the store
	_, err = d.Run(context.Background(), []*sent.Text{sent.NewText(catSentence)})
	require.NoError(t, err)
	assert.Equal(t, calls, tagger.Calls.Load())
}

func TestFromConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		DataDir:         dir,
		CacheLimit:      10,
		ToolTimeout:     10 * time.Second,
		Workers:         2,
		LogLevel:        "debug",
		Store:           config.StoreConfig{Kind: config.StoreFilesystem, Path: filepath.Join(dir, "cache")},
		Tagger:          config.TaggerConfig{Backend: config.TaggerOpenNLP, Path: filepath.Join(dir, "missing-opennlp")},
		UniversalTagger: config.TaggerConfig{Backend: config.TaggerOpenNLP, Path: filepath.Join(dir, "missing-opennlp")},
		Parser:          config.ProgramConfig{Path: filepath.Join(dir, "missing-lx")},
		DepParser:       config.ProgramConfig{Path: filepath.Join(dir, "missing-malt")},
		Stemmer:         config.StemmerConfig{Language: "spanish"},
	}

	d, store, err := FromConfig(cfg, nil)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer store.Close()

	// the engines are not installed: only the counts without tags survive
	reports, err := d.Run(context.Background(), []*sent.Text{sent.NewText(catSentence)})
	require.NoError(t, err)
	require.Len(t, reports, 1)

	sentences, _ := reports[0].Values.Get("sentences")
	assert.NoError(t, sentences.Err)
	assert.Equal(t, 1.0, sentences.Value)

	words, _ := reports[0].Values.Get("words")
	assert.Error(t, words.Err)
	assert.Positive(t, reports[0].Failed)

	cfg.Workers = 0
	_, _, err = FromConfig(cfg, nil)
	assert.ErrorIs(t, err, config.ErrInvalid)
}
