// Package syntax has the syntactical complexity metrics.
package syntax

import (
	"context"

	"github.com/revelaction/cohmetrix/dep"
	"github.com/revelaction/cohmetrix/metric"
	"github.com/revelaction/cohmetrix/pool"
	sent "github.com/revelaction/cohmetrix/sentence"
	"github.com/revelaction/cohmetrix/stat"
	"github.com/revelaction/cohmetrix/tagset"
	"github.com/revelaction/cohmetrix/tree"
)

func New() *metric.Category {
	return metric.MustCategory("Syntactical Complexity", "syntax",
		YngveComplexity{},
		FrazierComplexity{},
		DependencyDistance{},
	)
}

// YngveComplexity is the mean over the sentences of the mean Yngve score
// of their words. The score of a word is the sum of its tree position in
// the tree with the children of every node reversed, that is, the number
// of right siblings along its path.
type YngveComplexity struct{}

func (YngveComplexity) Name() string   { return "Yngve Complexity" }
func (YngveComplexity) Column() string { return "yngve" }

func (YngveComplexity) ValueForText(ctx context.Context, t *sent.Text, rp *pool.Pool) (float64, error) {
	trees, err := rp.ParseTrees(ctx, t)
	if err != nil {
		return 0, err
	}

	var scores []float64
	for _, tr := range trees {
		if s, ok := yngve(tr); ok {
			scores = append(scores, s)
		}
	}
	return stat.MeanOrZero(scores), nil
}

func yngve(tr *tree.Tree) (float64, bool) {
	positions := tr.Reversed().LeafPositions()
	if len(positions) == 0 {
		return 0, false
	}

	words := make([]float64, len(positions))
	for i, pos := range positions {
		for _, idx := range pos {
			words[i] += float64(idx)
		}
	}

	m, _ := stat.Mean(words)
	return m, true
}

// FrazierComplexity is the mean over the sentences of the largest Frazier
// score of three consecutive words.
//
// A word scores 1 for every node it opens as the leftmost descendant, 1.5
// if the node is a clause.
type FrazierComplexity struct{}

func (FrazierComplexity) Name() string   { return "Frazier Complexity" }
func (FrazierComplexity) Column() string { return "frazier" }

func (FrazierComplexity) ValueForText(ctx context.Context, t *sent.Text, rp *pool.Pool) (float64, error) {
	trees, err := rp.ParseTrees(ctx, t)
	if err != nil {
		return 0, err
	}

	phrases := rp.Tools().Parser().Phrases()
	scores := make([]float64, len(trees))
	for i, tr := range trees {
		scores[i] = frazier(tr, phrases)
	}
	return stat.MeanOrZero(scores), nil
}

func frazier(tr *tree.Tree, phrases tagset.Phrases) float64 {
	if tr.Label == phrases.Root && !tr.IsLeaf() {
		tr = tr.Children[0]
	}

	positions := tr.LeafPositions()
	words := make([]float64, len(positions))
	for i, pos := range positions {
		// the last index points to the word inside its preterminal
		for k := len(pos) - 2; k >= 0 && pos[k] == 0; k-- {
			if phrases.IsSentenceNode(tr.At(pos[:k]).Label) {
				words[i] += 1.5
			} else {
				words[i]++
			}
		}
	}

	if len(words) < 3 {
		sum := 0.0
		for _, w := range words {
			sum += w
		}
		return sum
	}

	max := 0.0
	for i := 0; i+2 < len(words); i++ {
		if s := words[i] + words[i+1] + words[i+2]; s > max {
			max = s
		}
	}
	return max
}

// DependencyDistance is the mean over the sentences of the summed distance
// between the words of every dependency relation. Root and punctuation
// relations, as named by MaltParser or by UD parsers, are left out.
type DependencyDistance struct{}

func (DependencyDistance) Name() string   { return "Dependency Distance" }
func (DependencyDistance) Column() string { return "dep_distance" }

func (DependencyDistance) ValueForText(ctx context.Context, t *sent.Text, rp *pool.Pool) (float64, error) {
	graphs, err := rp.DepTrees(ctx, t)
	if err != nil {
		return 0, err
	}

	distances := make([]float64, len(graphs))
	for i, g := range graphs {
		distances[i] = float64(distance(g))
	}
	return stat.MeanOrZero(distances), nil
}

var skippedRelations = map[string]bool{
	"TOP":   true,
	"ROOT":  true,
	"root":  true,
	"p":     true,
	"punct": true,
}

func distance(g *dep.Graph) int {
	d := 0
	for _, n := range g.Nodes {
		if skippedRelations[n.Rel] {
			continue
		}
		if n.Address > n.Head {
			d += n.Address - n.Head
		} else {
			d += n.Head - n.Address
		}
	}
	return d
}
