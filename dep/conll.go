package dep

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

const blank = "_"

// ParseConll reads one graph per blank-line separated block. Lines have the
// 10 tab separated CoNLL-X columns, or the 4 column "word tag head rel"
// Malt format.
func ParseConll(s string) ([]*Graph, error) {
	var (
		graphs []*Graph
		cur    *Graph
		lineNo int
	)

	sc := bufio.NewScanner(strings.NewReader(s))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			if cur != nil {
				graphs = append(graphs, cur)
				cur = nil
			}
			continue
		}

		if cur == nil {
			cur = &Graph{}
		}

		n, err := parseLine(line, len(cur.Nodes)+1)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		cur.Nodes = append(cur.Nodes, n)
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}

	if cur != nil {
		graphs = append(graphs, cur)
	}

	return graphs, nil
}

func parseLine(line string, address int) (Node, error) {
	cols := strings.Split(line, "\t")
	if len(cols) == 1 {
		cols = strings.Fields(line)
	}

	switch len(cols) {
	case 4:
		head, err := strconv.Atoi(cols[2])
		if err != nil {
			return Node{}, fmt.Errorf("%w: head %q", ErrMalformed, cols[2])
		}
		return Node{
			Address: address,
			Word:    cols[0],
			CTag:    cols[1],
			Tag:     cols[1],
			Head:    head,
			Rel:     cols[3],
		}, nil

	case 10:
		addr, err := strconv.Atoi(cols[0])
		if err != nil {
			return Node{}, fmt.Errorf("%w: address %q", ErrMalformed, cols[0])
		}
		head, err := strconv.Atoi(cols[6])
		if err != nil {
			return Node{}, fmt.Errorf("%w: head %q", ErrMalformed, cols[6])
		}
		return Node{
			Address: addr,
			Word:    cols[1],
			Lemma:   unblank(cols[2]),
			CTag:    unblank(cols[3]),
			Tag:     unblank(cols[4]),
			Feats:   unblank(cols[5]),
			Head:    head,
			Rel:     cols[7],
		}, nil
	}

	return Node{}, fmt.Errorf("%w: %d columns", ErrMalformed, len(cols))
}

func unblank(s string) string {
	if s == blank {
		return ""
	}
	return s
}

func orBlank(s string) string {
	if s == "" {
		return blank
	}
	return s
}

// Conll writes g in the 10 column CoNLL-X format, without the trailing
// blank line.
func (g *Graph) Conll() string {
	var b strings.Builder
	for _, n := range g.Nodes {
		fmt.Fprintf(&b, "%d\t%s\t%s\t%s\t%s\t%s\t%d\t%s\t_\t_\n",
			n.Address, n.Word, orBlank(n.Lemma), orBlank(n.CTag), orBlank(n.Tag),
			orBlank(n.Feats), n.Head, orBlank(n.Rel))
	}
	return b.String()
}

// Input writes g as parser input: CoNLL-X with head and relation blanked.
func (g *Graph) Input() string {
	var b strings.Builder
	for _, n := range g.Nodes {
		fmt.Fprintf(&b, "%d\t%s\t%s\t%s\t%s\t%s\t_\t_\t_\t_\n",
			n.Address, n.Word, orBlank(n.Lemma), orBlank(n.CTag), orBlank(n.Tag), orBlank(n.Feats))
	}
	return b.String()
}
