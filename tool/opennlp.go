package tool

import (
	"context"
	"strings"
	"time"

	sent "github.com/revelaction/cohmetrix/sentence"
	"github.com/revelaction/cohmetrix/tagset"
)

// OpenNLP prints one line before the tagged sentences (model loading) and
// three after them (average, total and runtime).
const (
	openNLPHeader = 1
	openNLPFooter = 3
)

// OpenNLPTagger runs the Apache OpenNLP POSTagger command line tool.
type OpenNLPTagger struct {
	cmd    *Command
	tagset tagset.Tagset
}

var _ Tagger = (*OpenNLPTagger)(nil)

// NewOpenNLPTagger returns a tagger running the opennlp script at path with
// the given model. Tags are read under ts.
func NewOpenNLPTagger(path, model string, ts tagset.Tagset, timeout time.Duration) *OpenNLPTagger {
	return &OpenNLPTagger{
		cmd: &Command{
			Name:     "opennlp",
			Path:     path,
			Args:     []string{"POSTagger", model},
			Timeout:  timeout,
			Combined: true,
		},
		tagset: ts,
	}
}

func (o *OpenNLPTagger) Tagset() tagset.Tagset {
	return o.tagset
}

func (o *OpenNLPTagger) TagSents(ctx context.Context, sents [][]string) ([][]sent.Token, error) {
	if len(sents) == 0 {
		return [][]sent.Token{}, nil
	}

	lines := make([]string, len(sents))
	for i, s := range sents {
		lines[i] = strings.Join(s, " ")
	}

	out, err := o.cmd.Run(ctx, strings.Join(lines, "\n")+"\n")
	if err != nil {
		return nil, err
	}

	return parseOpenNLP(out)
}

func parseOpenNLP(out string) ([][]sent.Token, error) {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) < openNLPHeader+openNLPFooter {
		return nil, Malformed("opennlp", "%d lines", len(lines))
	}
	lines = lines[openNLPHeader : len(lines)-openNLPFooter]

	tagged := make([][]sent.Token, len(lines))
	for i, line := range lines {
		for j, field := range strings.Fields(line) {
			tok := splitTagged(field, '_')
			tok.Index = j
			tagged[i] = append(tagged[i], tok)
		}
	}
	return tagged, nil
}

// splitTagged splits "word_TAG" at the last separator. Without separator
// the tag is empty.
func splitTagged(field string, sep byte) sent.Token {
	i := strings.LastIndexByte(field, sep)
	if i < 0 {
		return sent.Tagged(field, "")
	}
	return sent.Tagged(field[:i], strings.ToUpper(field[i+1:]))
}
