package tool

import (
	"context"
	"strings"
	"time"

	"github.com/revelaction/cohmetrix/dep"
)

// MaltParser runs a MaltParser model. Sentences are first tagged with its
// own tagger, usually a universal tags one, since the model was trained
// over those tags.
type MaltParser struct {
	cmd    *Command
	tagger Tagger
}

var _ DepParser = (*MaltParser)(nil)

// NewMaltParser returns a dependency parser running the program at path
// with args. The program reads CoNLL-X on stdin and prints CoNLL-X.
func NewMaltParser(path string, args []string, tagger Tagger, timeout time.Duration) *MaltParser {
	return &MaltParser{
		cmd: &Command{
			Name:    "maltparser",
			Path:    path,
			Args:    args,
			Timeout: timeout,
		},
		tagger: tagger,
	}
}

func (m *MaltParser) Tagger() Tagger {
	return m.tagger
}

func (m *MaltParser) ParseSents(ctx context.Context, sents [][]string) ([]*dep.Graph, error) {
	if len(sents) == 0 {
		return []*dep.Graph{}, nil
	}

	tagged, err := m.tagger.TagSents(ctx, sents)
	if err != nil {
		return nil, err
	}
	if len(tagged) != len(sents) {
		return nil, Malformed(m.cmd.Name, "tagger returned %d sentences for %d", len(tagged), len(sents))
	}

	var input strings.Builder
	for _, s := range tagged {
		g := &dep.Graph{Nodes: make([]dep.Node, len(s))}
		for i, tok := range s {
			g.Nodes[i] = dep.Node{Address: i + 1, Word: tok.Text, CTag: tok.Tag, Tag: tok.Tag}
		}
		input.WriteString(g.Input())
		input.WriteString("\n")
	}

	out, err := m.cmd.Run(ctx, input.String())
	if err != nil {
		return nil, err
	}

	graphs, err := dep.ParseConll(out)
	if err != nil {
		return nil, &Failure{Tool: m.cmd.Name, Err: err}
	}
	if len(graphs) != len(sents) {
		return nil, Malformed(m.cmd.Name, "%d graphs for %d sentences", len(graphs), len(sents))
	}
	return graphs, nil
}
