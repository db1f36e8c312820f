package tool

import (
	"context"
	"strings"
	"time"

	"github.com/revelaction/cohmetrix/tagset"
	"github.com/revelaction/cohmetrix/tree"
)

// LXParser runs the LX-Parser Portuguese constituency parser. It reads one
// tokenized sentence per line and prints bracketed trees.
type LXParser struct {
	cmd     *Command
	phrases tagset.Phrases
}

var _ Parser = (*LXParser)(nil)

// NewLXParser returns a parser running the program at path with args, e.g.
// the lx-parser run script, or java with the Stanford parser jar and the
// LX model.
func NewLXParser(path string, args []string, timeout time.Duration) *LXParser {
	return &LXParser{
		cmd: &Command{
			Name:    "lx-parser",
			Path:    path,
			Args:    args,
			Timeout: timeout,
		},
		phrases: tagset.LXParser(),
	}
}

func (p *LXParser) Phrases() tagset.Phrases {
	return p.phrases
}

func (p *LXParser) ParseSents(ctx context.Context, sents []string) ([]*tree.Tree, error) {
	if len(sents) == 0 {
		return []*tree.Tree{}, nil
	}

	out, err := p.cmd.Run(ctx, strings.Join(sents, "\n")+"\n")
	if err != nil {
		return nil, err
	}

	trees, err := tree.ParseAll(out)
	if err != nil {
		return nil, &Failure{Tool: p.cmd.Name, Err: err}
	}
	return trees, nil
}
