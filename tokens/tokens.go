// Package tokens has the lexical richness metrics, over word types and
// tokens, and the pronoun and clause counts.
package tokens

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/revelaction/cohmetrix/metric"
	"github.com/revelaction/cohmetrix/pool"
	sent "github.com/revelaction/cohmetrix/sentence"
	"github.com/revelaction/cohmetrix/stat"
)

// ErrAllHapax is returned by HonoreStatistic when every word type occurs
// once.
var ErrAllHapax = errors.New("every word type occurs once")

func New() *metric.Category {
	return metric.MustCategory("Pronouns, Types, and Tokens", "tokens",
		PersonalPronounsIncidence{},
		PronounsPerNounPhrase{},
		TypeTokenRatio{},
		BrunetIndex{},
		HonoreStatistic{},
		MeanClauseSentence{},
	)
}

var personalPronouns = map[string]bool{
	"eu": true, "tu": true, "ele": true, "ela": true, "nós": true, "vós": true,
	"eles": true, "elas": true, "você": true, "vocês": true,
}

// PersonalPronounsIncidence is the number of personal pronouns per 1000
// words, 0 for a text without words.
type PersonalPronounsIncidence struct{}

func (PersonalPronounsIncidence) Name() string   { return "Personal pronouns incidence" }
func (PersonalPronounsIncidence) Column() string { return "personal_pronouns" }

func (PersonalPronounsIncidence) ValueForText(ctx context.Context, t *sent.Text, rp *pool.Pool) (float64, error) {
	words, err := rp.AllWords(ctx, t)
	if err != nil {
		return 0, err
	}
	if len(words) == 0 {
		return 0, nil
	}

	n := 0
	for _, w := range words {
		if personalPronouns[strings.ToLower(w)] {
			n++
		}
	}
	return float64(n) / (float64(len(words)) / 1000), nil
}

// PronounsPerNounPhrase is the mean over the sentences of the pronouns
// heading a noun phrase per noun phrase. Sentences without noun phrases
// are left out, and the value is 0 when no sentence has one.
type PronounsPerNounPhrase struct{}

func (PronounsPerNounPhrase) Name() string   { return "Mean pronouns per noun phrase" }
func (PronounsPerNounPhrase) Column() string { return "pronouns_per_np" }

func (PronounsPerNounPhrase) ValueForText(ctx context.Context, t *sent.Text, rp *pool.Pool) (float64, error) {
	trees, err := rp.ParseTrees(ctx, t)
	if err != nil {
		return 0, err
	}

	phrases := rp.Tools().Parser().Phrases()

	var ratios []float64
	for _, tr := range trees {
		nps := tr.Find(phrases.NounPhrase)
		if len(nps) == 0 {
			continue
		}

		prons := 0
		for _, np := range nps {
			for _, c := range np.Children {
				if !c.IsLeaf() && c.Label == phrases.Pronoun {
					prons++
				}
			}
		}
		ratios = append(ratios, float64(prons)/float64(len(nps)))
	}

	return stat.MeanOrZero(ratios), nil
}

// TypeTokenRatio is the number of distinct lowercased words over the
// number of words. Words are not lemmatized.
type TypeTokenRatio struct{}

func (TypeTokenRatio) Name() string   { return "Type to token ratio" }
func (TypeTokenRatio) Column() string { return "ttr" }

func (TypeTokenRatio) ValueForText(ctx context.Context, t *sent.Text, rp *pool.Pool) (float64, error) {
	words, types, err := wordsAndTypes(ctx, t, rp)
	if err != nil {
		return 0, err
	}
	if len(words) == 0 {
		return 0, nil
	}
	return float64(len(types)) / float64(len(words)), nil
}

// BrunetIndex is W = N^(V^-0.165), N the number of words and V the number
// of types. Richer speech gives lower values, usually between 10 and 20.
type BrunetIndex struct{}

func (BrunetIndex) Name() string   { return "Brunet Index" }
func (BrunetIndex) Column() string { return "brunet" }

func (BrunetIndex) ValueForText(ctx context.Context, t *sent.Text, rp *pool.Pool) (float64, error) {
	words, types, err := wordsAndTypes(ctx, t, rp)
	if err != nil {
		return 0, err
	}
	if len(words) == 0 {
		return 0, metric.ErrEmptyInput
	}
	return math.Pow(float64(len(words)), math.Pow(float64(len(types)), -0.165)), nil
}

// HonoreStatistic is R = 100*log10(N)/(1 - V1/V), N the number of words,
// V the number of types and V1 the number of types occurring once.
type HonoreStatistic struct{}

func (HonoreStatistic) Name() string   { return "Honore Statistic" }
func (HonoreStatistic) Column() string { return "honore" }

func (HonoreStatistic) ValueForText(ctx context.Context, t *sent.Text, rp *pool.Pool) (float64, error) {
	words, types, err := wordsAndTypes(ctx, t, rp)
	if err != nil {
		return 0, err
	}
	if len(words) == 0 {
		return 0, metric.ErrEmptyInput
	}

	counts := make(map[string]int, len(types))
	for _, w := range words {
		counts[strings.ToLower(w)]++
	}

	once := 0
	for _, c := range counts {
		if c == 1 {
			once++
		}
	}
	if once == len(types) {
		return 0, ErrAllHapax
	}

	return 100 * math.Log10(float64(len(words))) / (1 - float64(once)/float64(len(types))), nil
}

func wordsAndTypes(ctx context.Context, t *sent.Text, rp *pool.Pool) ([]string, map[string]struct{}, error) {
	words, err := rp.AllWords(ctx, t)
	if err != nil {
		return nil, nil, err
	}
	types, err := rp.TokenTypes(ctx, t)
	if err != nil {
		return nil, nil, err
	}
	return words, types, nil
}

// MeanClauseSentence is the mean number of clauses per sentence. A clause
// is a verb phrase directly under a clause node.
type MeanClauseSentence struct{}

func (MeanClauseSentence) Name() string   { return "Mean Clauses per Sentence" }
func (MeanClauseSentence) Column() string { return "mcu" }

func (MeanClauseSentence) ValueForText(ctx context.Context, t *sent.Text, rp *pool.Pool) (float64, error) {
	trees, err := rp.ParseTrees(ctx, t)
	if err != nil {
		return 0, err
	}

	phrases := rp.Tools().Parser().Phrases()

	clauses := make([]int, len(trees))
	for i, tr := range trees {
		for _, s := range tr.Find(phrases.Clause) {
			for _, c := range s.Children {
				if c.Label == phrases.VerbPhrase && !c.IsLeaf() {
					clauses[i]++
				}
			}
		}
	}

	return stat.Mean(stat.Ints(clauses))
}
