// Package stat has the descriptive statistics metrics aggregate with.
package stat

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	gstat "gonum.org/v1/gonum/stat"

	sent "github.com/revelaction/cohmetrix/sentence"
)

// ErrEmpty is returned by statistics undefined for an empty sample.
var ErrEmpty = errors.New("empty input")

// Mean returns the arithmetic mean of xs.
func Mean(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, ErrEmpty
	}
	return gstat.Mean(xs, nil), nil
}

// MeanOrZero returns the mean of xs, or 0 for an empty sample.
func MeanOrZero(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return gstat.Mean(xs, nil)
}

func Max(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, ErrEmpty
	}
	return floats.Max(xs), nil
}

func Min(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, ErrEmpty
	}
	return floats.Min(xs), nil
}

// PopStdDev returns the population standard deviation of xs, dividing by
// n and not n-1.
func PopStdDev(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, ErrEmpty
	}
	_, std := gstat.PopMeanStdDev(xs, nil)
	if math.IsNaN(std) {
		return 0, nil
	}
	return std, nil
}

// Ints converts counts to a float sample.
func Ints(ns []int) []float64 {
	xs := make([]float64, len(ns))
	for i, n := range ns {
		xs[i] = float64(n)
	}
	return xs
}

// Summary describes a sample.
type Summary struct {
	N    int
	Mean float64
	Std  float64
	Min  float64
	Max  float64
}

// Summarize returns the summary of xs.
func Summarize(xs []float64) (Summary, error) {
	if len(xs) == 0 {
		return Summary{}, ErrEmpty
	}

	mean, std := gstat.PopMeanStdDev(xs, nil)
	if math.IsNaN(std) {
		std = 0
	}

	return Summary{
		N:    len(xs),
		Mean: mean,
		Std:  std,
		Min:  floats.Min(xs),
		Max:  floats.Max(xs),
	}, nil
}

type Handler struct {
	stats Stats
}

// Stats describes the sentence lengths of a text.
type Stats struct {
	NumSentences          int
	NumTokens             int
	TokensPerSentenceMean float64
	TokensPerSentenceDis  map[int]int
}

func (h *Handler) Get() Stats {
	return h.stats
}

func NewHandler() *Handler {
	stats := Stats{TokensPerSentenceDis: map[int]int{}}
	return &Handler{
		stats: stats,
	}
}

// Aggregate adds the sentences to the stats.
func (h *Handler) Aggregate(sents [][]sent.Token) {
	h.stats.NumSentences += len(sents)
	for _, s := range sents {
		h.stats.NumTokens += len(s)
		h.stats.TokensPerSentenceDis[len(s)]++
	}

	if h.stats.NumSentences > 0 {
		h.stats.TokensPerSentenceMean = float64(h.stats.NumTokens) / float64(h.stats.NumSentences)
	}
}
