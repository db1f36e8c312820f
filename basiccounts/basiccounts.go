// Package basiccounts has the word, sentence and paragraph counts of a
// text, their ratios and the incidence of the parts of speech.
package basiccounts

import (
	"context"

	"github.com/revelaction/cohmetrix/metric"
	"github.com/revelaction/cohmetrix/pool"
	sent "github.com/revelaction/cohmetrix/sentence"
	"github.com/revelaction/cohmetrix/stat"
	"github.com/revelaction/cohmetrix/tagset"
)

func New() *metric.Category {
	return metric.MustCategory("Basic Counts", "basic_counts",
		Words{},
		Sentences{},
		Paragraphs{},
		WordsPerSentence{},
		SentencesPerParagraph{},
		SyllablesPerContentWord{},
		Flesch{},
		VerbIncidence,
		NounIncidence,
		AdjectiveIncidence,
		AdverbIncidence,
		PronounIncidence,
		ContentWordIncidence,
		FunctionWordIncidence,
	)
}

// Words is the number of tagged tokens that are not punctuation.
type Words struct{}

func (Words) Name() string   { return "Number of Words" }
func (Words) Column() string { return "words" }

func (Words) ValueForText(ctx context.Context, t *sent.Text, rp *pool.Pool) (float64, error) {
	words, err := rp.TaggedWords(ctx, t)
	if err != nil {
		return 0, err
	}
	return float64(len(words)), nil
}

type Sentences struct{}

func (Sentences) Name() string   { return "Number of Sentences" }
func (Sentences) Column() string { return "sentences" }

func (Sentences) ValueForText(ctx context.Context, t *sent.Text, rp *pool.Pool) (float64, error) {
	sentences, err := rp.Sentences(ctx, t)
	if err != nil {
		return 0, err
	}
	return float64(len(sentences)), nil
}

// Paragraphs is the number of non blank lines.
type Paragraphs struct{}

func (Paragraphs) Name() string   { return "Number of Paragraphs" }
func (Paragraphs) Column() string { return "paragraphs" }

func (Paragraphs) ValueForText(ctx context.Context, t *sent.Text, rp *pool.Pool) (float64, error) {
	paragraphs, err := rp.Paragraphs(ctx, t)
	if err != nil {
		return 0, err
	}
	return float64(len(paragraphs)), nil
}

type WordsPerSentence struct{}

func (WordsPerSentence) Name() string   { return "Mean words per sentence" }
func (WordsPerSentence) Column() string { return "words_per_sentence" }

func (WordsPerSentence) ValueForText(ctx context.Context, t *sent.Text, rp *pool.Pool) (float64, error) {
	return wordsPerSentence(ctx, t, rp)
}

func wordsPerSentence(ctx context.Context, t *sent.Text, rp *pool.Pool) (float64, error) {
	words, err := rp.TaggedWordsInSents(ctx, t)
	if err != nil {
		return 0, err
	}

	h := stat.NewHandler()
	h.Aggregate(words)

	st := h.Get()
	if st.NumSentences == 0 {
		return 0, metric.ErrEmptyInput
	}
	return st.TokensPerSentenceMean, nil
}

type SentencesPerParagraph struct{}

func (SentencesPerParagraph) Name() string   { return "Mean sentences per paragraph" }
func (SentencesPerParagraph) Column() string { return "sentences_per_paragraph" }

func (SentencesPerParagraph) ValueForText(ctx context.Context, t *sent.Text, rp *pool.Pool) (float64, error) {
	sentences, err := rp.Sentences(ctx, t)
	if err != nil {
		return 0, err
	}
	paragraphs, err := rp.Paragraphs(ctx, t)
	if err != nil {
		return 0, err
	}
	return ratio(len(sentences), len(paragraphs))
}

// SyllablesPerContentWord is the mean number of syllables of the nouns,
// verbs, adjectives and adverbs.
type SyllablesPerContentWord struct{}

func (SyllablesPerContentWord) Name() string   { return "Mean syllables per content word" }
func (SyllablesPerContentWord) Column() string { return "syllables_per_content_word" }

func (SyllablesPerContentWord) ValueForText(ctx context.Context, t *sent.Text, rp *pool.Pool) (float64, error) {
	content, err := rp.ContentWords(ctx, t)
	if err != nil {
		return 0, err
	}

	sep := rp.Tools().Syllables()
	words, syllables := 0, 0
	for _, s := range content {
		for _, w := range s {
			words++
			syllables += len(sep.Separate(w))
		}
	}
	return ratio(syllables, words)
}

// Flesch is the Flesch reading ease index adapted to Portuguese by Martins
// et al. (1996):
//
//	248.835 - 1.015*(words/sentences) - 84.6*(syllables/words)
type Flesch struct{}

func (Flesch) Name() string   { return "Flesch index" }
func (Flesch) Column() string { return "flesch" }

func (Flesch) ValueForText(ctx context.Context, t *sent.Text, rp *pool.Pool) (float64, error) {
	wps, err := wordsPerSentence(ctx, t, rp)
	if err != nil {
		return 0, err
	}

	words, err := rp.AllWords(ctx, t)
	if err != nil {
		return 0, err
	}

	sep := rp.Tools().Syllables()
	syllables := 0
	for _, w := range words {
		syllables += len(sep.Separate(w))
	}

	spw, err := ratio(syllables, len(words))
	if err != nil {
		return 0, err
	}
	return 248.835 - 1.015*wps - 84.6*spw, nil
}

// Incidence is the number of words of a class per 1000 words.
type Incidence struct {
	name   string
	column string
	is     func(tagset.Tagset, sent.Token) bool
}

func (i Incidence) Name() string   { return i.name }
func (i Incidence) Column() string { return i.column }

func (i Incidence) ValueForText(ctx context.Context, t *sent.Text, rp *pool.Pool) (float64, error) {
	words, err := rp.TaggedWords(ctx, t)
	if err != nil {
		return 0, err
	}
	if len(words) == 0 {
		return 0, metric.ErrEmptyInput
	}

	ts := rp.Tools().Tagger().Tagset()
	n := 0
	for _, w := range words {
		if i.is(ts, w) {
			n++
		}
	}
	return float64(n) / (float64(len(words)) / 1000), nil
}

var (
	// VerbIncidence counts auxiliaries and participles as verbs.
	VerbIncidence = Incidence{"Verb incidence", "verbs", func(ts tagset.Tagset, t sent.Token) bool {
		return ts.IsVerb(t) || ts.IsAuxiliaryVerb(t) || ts.IsParticiple(t)
	}}

	NounIncidence = Incidence{"Noun incidence", "nouns", tagset.Tagset.IsNoun}

	AdjectiveIncidence = Incidence{"Adjective incidence", "adjectives", tagset.Tagset.IsAdjective}

	// AdverbIncidence counts denotative words as adverbs.
	AdverbIncidence = Incidence{"Adverb incidence", "adverbs", func(ts tagset.Tagset, t sent.Token) bool {
		return ts.IsAdverb(t) || ts.IsDenotativeWord(t)
	}}

	PronounIncidence = Incidence{"Pronoun incidence", "pronouns", tagset.Tagset.IsPronoun}

	ContentWordIncidence = Incidence{"Content word incidence", "content_words", tagset.Tagset.IsContentWord}

	FunctionWordIncidence = Incidence{"Function word incidence", "function_words", tagset.Tagset.IsFunctionWord}
)

func ratio(num, den int) (float64, error) {
	if den == 0 {
		return 0, metric.ErrEmptyInput
	}
	return float64(num) / float64(den), nil
}
