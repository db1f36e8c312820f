// Package semantic has the latent semantic analysis metrics: the
// similarity of the sentences of a text in an LSA space.
package semantic

import (
	"context"
	"strings"

	"github.com/revelaction/cohmetrix/metric"
	"github.com/revelaction/cohmetrix/pool"
	sent "github.com/revelaction/cohmetrix/sentence"
	"github.com/revelaction/cohmetrix/stat"
	"github.com/revelaction/cohmetrix/tool"
)

// New returns the LSA category. Its metrics fail with
// tool.ErrNoSemanticSpace when the registry has no LSA space.
func New() *metric.Category {
	return metric.MustCategory("Latent Semantic Analysis", "lsa",
		AdjacentSentencesMean{},
		AdjacentSentencesStd{},
		AllSentencesMean{},
	)
}

// similarities returns the cosine similarity of every pair of sentences,
// or of every sentence and the next one if adjacent. Sentences are their
// lowercased words.
func similarities(ctx context.Context, t *sent.Text, rp *pool.Pool, adjacent bool) ([]float64, error) {
	space, err := rp.Tools().LSA()
	if err != nil {
		return nil, err
	}

	tagged, err := rp.TaggedWordsInSents(ctx, t)
	if err != nil {
		return nil, err
	}

	docs := make([][]string, len(tagged))
	for i, s := range tagged {
		docs[i] = sent.Words(s)
		for j, w := range docs[i] {
			docs[i][j] = strings.ToLower(w)
		}
	}

	var sims []float64
	for i := range docs {
		for j := i + 1; j < len(docs); j++ {
			if adjacent && j > i+1 {
				break
			}
			sims = append(sims, tool.Similarity(space, docs[i], docs[j]))
		}
	}
	return sims, nil
}

// AdjacentSentencesMean is the mean LSA similarity of adjacent sentences.
// Texts with less than two sentences fail with metric.ErrEmptyInput.
type AdjacentSentencesMean struct{}

func (AdjacentSentencesMean) Name() string   { return "LSA adjacent sentences" }
func (AdjacentSentencesMean) Column() string { return "lsa_adj_mean" }

func (AdjacentSentencesMean) ValueForText(ctx context.Context, t *sent.Text, rp *pool.Pool) (float64, error) {
	sims, err := similarities(ctx, t, rp, true)
	if err != nil {
		return 0, err
	}
	return stat.Mean(sims)
}

type AdjacentSentencesStd struct{}

func (AdjacentSentencesStd) Name() string   { return "LSA adjacent sentences std" }
func (AdjacentSentencesStd) Column() string { return "lsa_adj_std" }

func (AdjacentSentencesStd) ValueForText(ctx context.Context, t *sent.Text, rp *pool.Pool) (float64, error) {
	sims, err := similarities(ctx, t, rp, true)
	if err != nil {
		return 0, err
	}
	return stat.PopStdDev(sims)
}

// AllSentencesMean is the mean LSA similarity of every two sentences.
type AllSentencesMean struct{}

func (AllSentencesMean) Name() string   { return "LSA all sentences" }
func (AllSentencesMean) Column() string { return "lsa_all_mean" }

func (AllSentencesMean) ValueForText(ctx context.Context, t *sent.Text, rp *pool.Pool) (float64, error) {
	sims, err := similarities(ctx, t, rp, false)
	if err != nil {
		return 0, err
	}
	return stat.Mean(sims)
}
