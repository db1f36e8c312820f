// Package constituents has the metrics over the constituents of the
// sentences: noun phrases and the position of the main verb.
package constituents

import (
	"context"

	"golang.org/x/text/unicode/norm"

	"github.com/revelaction/cohmetrix/dep"
	"github.com/revelaction/cohmetrix/metric"
	"github.com/revelaction/cohmetrix/pool"
	sent "github.com/revelaction/cohmetrix/sentence"
	"github.com/revelaction/cohmetrix/stat"
	"github.com/revelaction/cohmetrix/tagset"
	"github.com/revelaction/cohmetrix/tree"
)

// New returns the Constituents category.
func New() *metric.Category {
	return metric.MustCategory("Constituents", "constituents",
		NounPhraseIncidence{},
		MeanNounPhrase{},
		MaxNounPhrase{},
		MinNounPhrase{},
		StdNounPhrase{},
		WordsBeforeMainVerb{},
	)
}

// NounPhraseIncidence is the number of noun phrases per 1000 words,
// averaged over the sentences. Nested noun phrases count. Sentences made
// only of punctuation have no ratio and are left out of the mean.
//
// "Acessório utilizado por adolescentes, o boné é um dos itens que compõem
// a vestimenta idealizada pela proposta." has 5 noun phrases and 17 words:
// 5/(17/1000) = 294.11.
type NounPhraseIncidence struct{}

func (NounPhraseIncidence) Name() string   { return "Noun Phrase Incidence" }
func (NounPhraseIncidence) Column() string { return "np_incidence" }

func (NounPhraseIncidence) ValueForText(ctx context.Context, t *sent.Text, rp *pool.Pool) (float64, error) {
	trees, err := rp.ParseTrees(ctx, t)
	if err != nil {
		return 0, err
	}
	tagged, err := rp.TaggedSentences(ctx, t)
	if err != nil {
		return 0, err
	}

	np := rp.Tools().Parser().Phrases().NounPhrase
	ts := rp.Tools().Tagger().Tagset()

	return stat.MeanOrZero(npIncidences(trees, tagged, np, ts)), nil
}

// npIncidences skips sentences without words.
func npIncidences(trees []*tree.Tree, tagged [][]sent.Token, np string, ts tagset.Tagset) []float64 {
	var incidences []float64
	for i, tr := range trees {
		if i >= len(tagged) {
			break
		}

		words := 0
		for _, tok := range tagged[i] {
			if !ts.IsPunctuation(tok) {
				words++
			}
		}
		if words == 0 {
			continue
		}

		nps := len(tr.Find(np))
		incidences = append(incidences, float64(nps)/(float64(words)/1000))
	}
	return incidences
}

// npSizes returns the word counts of the top level noun phrases of each
// sentence.
func npSizes(ctx context.Context, t *sent.Text, rp *pool.Pool) ([][]int, error) {
	leaves, err := rp.LeavesInToplevelNPs(ctx, t)
	if err != nil {
		return nil, err
	}

	sizes := make([][]int, len(leaves))
	for i, nps := range leaves {
		sizes[i] = make([]int, len(nps))
		for j, words := range nps {
			sizes[i][j] = len(words)
		}
	}
	return sizes, nil
}

func flatNPSizes(ctx context.Context, t *sent.Text, rp *pool.Pool) ([]float64, error) {
	sizes, err := npSizes(ctx, t, rp)
	if err != nil {
		return nil, err
	}

	var flat []float64
	for _, s := range sizes {
		flat = append(flat, stat.Ints(s)...)
	}
	return flat, nil
}

// MeanNounPhrase is the mean over the sentences of the mean size of their
// top level noun phrases. Sentences without noun phrases have no mean and
// are left out; a text without any noun phrase fails with
// metric.ErrEmptyInput.
type MeanNounPhrase struct{}

func (MeanNounPhrase) Name() string   { return "Mean Noun Phrase" }
func (MeanNounPhrase) Column() string { return "mean_noun_phrase" }

func (MeanNounPhrase) ValueForText(ctx context.Context, t *sent.Text, rp *pool.Pool) (float64, error) {
	sizes, err := npSizes(ctx, t, rp)
	if err != nil {
		return 0, err
	}

	var means []float64
	for _, s := range sizes {
		if len(s) == 0 {
			continue
		}
		m, _ := stat.Mean(stat.Ints(s))
		means = append(means, m)
	}

	return stat.Mean(means)
}

// MaxNounPhrase is the size of the largest top level noun phrase.
type MaxNounPhrase struct{}

func (MaxNounPhrase) Name() string   { return "Maximum Noun Phrase" }
func (MaxNounPhrase) Column() string { return "max_noun_phrase" }

func (MaxNounPhrase) ValueForText(ctx context.Context, t *sent.Text, rp *pool.Pool) (float64, error) {
	sizes, err := flatNPSizes(ctx, t, rp)
	if err != nil {
		return 0, err
	}
	return stat.Max(sizes)
}

// MinNounPhrase is the size of the smallest top level noun phrase.
type MinNounPhrase struct{}

func (MinNounPhrase) Name() string   { return "Minimum Noun Phrase" }
func (MinNounPhrase) Column() string { return "min_noun_phrase" }

func (MinNounPhrase) ValueForText(ctx context.Context, t *sent.Text, rp *pool.Pool) (float64, error) {
	sizes, err := flatNPSizes(ctx, t, rp)
	if err != nil {
		return 0, err
	}
	return stat.Min(sizes)
}

// StdNounPhrase is the population standard deviation of the top level
// noun phrase sizes.
type StdNounPhrase struct{}

func (StdNounPhrase) Name() string   { return "Std Noun Phrase" }
func (StdNounPhrase) Column() string { return "std_noun_phrase" }

func (StdNounPhrase) ValueForText(ctx context.Context, t *sent.Text, rp *pool.Pool) (float64, error) {
	sizes, err := flatNPSizes(ctx, t, rp)
	if err != nil {
		return 0, err
	}
	return stat.PopStdDev(sizes)
}

// WordsBeforeMainVerb is the mean number of words before the main verb of
// the sentences.
//
// The main verb is the dependency root when it is tagged as a verb.
// Otherwise it is the first verb not ending like an infinitive, gerund or
// participle (-ar, -er, -ir, -do). Sentences without one count 0. This is
// a heuristic for Portuguese.
type WordsBeforeMainVerb struct{}

func (WordsBeforeMainVerb) Name() string   { return "Words before Main Verb" }
func (WordsBeforeMainVerb) Column() string { return "words_before_main_verb" }

func (WordsBeforeMainVerb) ValueForText(ctx context.Context, t *sent.Text, rp *pool.Pool) (float64, error) {
	graphs, err := rp.DepTrees(ctx, t)
	if err != nil {
		return 0, err
	}
	words, err := rp.TaggedWordsInSents(ctx, t)
	if err != nil {
		return 0, err
	}

	depTagset := rp.Tools().DepParser().Tagger().Tagset()
	posTagset := rp.Tools().Tagger().Tagset()

	var scores []float64
	for i, g := range graphs {
		if i >= len(words) {
			break
		}

		idx, err := mainVerbIndex(g, words[i], depTagset, posTagset)
		if err != nil {
			return 0, err
		}
		scores = append(scores, float64(idx))
	}

	return stat.MeanOrZero(scores), nil
}

var nonFiniteEndings = map[string]bool{"do": true, "ar": true, "er": true, "ir": true}

func mainVerbIndex(g *dep.Graph, words []sent.Token, depTagset, posTagset tagset.Tagset) (int, error) {
	root, err := g.FirstRoot()
	if err != nil {
		return 0, err
	}

	if depTagset.IsVerb(root.Token()) {
		return root.Address - 1, nil
	}

	for i, w := range words {
		if posTagset.IsVerb(w) && !nonFiniteEndings[lastRunes(w.Text, 2)] {
			return i, nil
		}
	}
	return 0, nil
}

func lastRunes(s string, n int) string {
	r := []rune(norm.NFC.String(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[len(r)-n:])
}
