// Package coref has the referential cohesion metrics: how often the
// arguments, stems or content words of a sentence reappear in another.
package coref

import (
	"context"
	"strings"

	"github.com/revelaction/cohmetrix/metric"
	"github.com/revelaction/cohmetrix/pool"
	sent "github.com/revelaction/cohmetrix/sentence"
)

func New() *metric.Category {
	return metric.MustCategory("Referential Cohesion", "coreference",
		AdjacentArgumentOverlap,
		ArgumentOverlap,
		AdjacentStemOverlap,
		StemOverlap,
		AdjacentContentWordOverlap,
	)
}

// wordsFunc returns the words of every sentence an overlap looks at.
type wordsFunc func(ctx context.Context, t *sent.Text, rp *pool.Pool) ([][]string, error)

// Overlap is the number of equal word pairs, compared lowercased, per
// sentence pair. Adjacent overlaps pair every sentence with the one
// before; the others pair every two sentences. Texts with one sentence or
// none have 0.
type Overlap struct {
	name     string
	column   string
	adjacent bool
	words    wordsFunc
}

func (o Overlap) Name() string   { return o.name }
func (o Overlap) Column() string { return o.column }

func (o Overlap) ValueForText(ctx context.Context, t *sent.Text, rp *pool.Pool) (float64, error) {
	sentences, err := rp.Sentences(ctx, t)
	if err != nil {
		return 0, err
	}
	if len(sentences) <= 1 {
		return 0, nil
	}

	words, err := o.words(ctx, t, rp)
	if err != nil {
		return 0, err
	}

	matches, pairs := 0, 0
	for i := range words {
		for j := i + 1; j < len(words); j++ {
			if o.adjacent && j > i+1 {
				break
			}
			matches += overlap(words[i], words[j])
			pairs++
		}
	}

	if pairs == 0 {
		return 0, nil
	}
	return float64(matches) / float64(pairs), nil
}

func overlap(s1, s2 []string) int {
	n := 0
	for _, w1 := range s1 {
		for _, w2 := range s2 {
			if strings.EqualFold(w1, w2) {
				n++
			}
		}
	}
	return n
}

// arguments returns the nouns and pronouns of every sentence.
func arguments(ctx context.Context, t *sent.Text, rp *pool.Pool) ([][]string, error) {
	tagged, err := rp.TaggedSentences(ctx, t)
	if err != nil {
		return nil, err
	}

	ts := rp.Tools().Tagger().Tagset()
	args := make([][]string, len(tagged))
	for i, s := range tagged {
		args[i] = sent.Words(sent.Filter(s, func(tok sent.Token) bool {
			return ts.IsNoun(tok) || ts.IsPronoun(tok)
		}))
	}
	return args, nil
}

func stems(ctx context.Context, t *sent.Text, rp *pool.Pool) ([][]string, error) {
	return rp.StemmedContentWords(ctx, t)
}

func contentWords(ctx context.Context, t *sent.Text, rp *pool.Pool) ([][]string, error) {
	return rp.ContentWords(ctx, t)
}

var (
	AdjacentArgumentOverlap    = Overlap{"Adjacent argument overlap", "adj_arg_ovl", true, arguments}
	ArgumentOverlap            = Overlap{"Argument overlap", "arg_ovl", false, arguments}
	AdjacentStemOverlap        = Overlap{"Adjacent stem overlap", "adj_stem_ovl", true, stems}
	StemOverlap                = Overlap{"Stem overlap", "stem_ovl", false, stems}
	AdjacentContentWordOverlap = Overlap{"Adjacent content word overlap", "adj_cw_ovl", true, contentWords}
)
