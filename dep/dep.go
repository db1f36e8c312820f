// Package dep implements dependency graphs as produced by CoNLL speaking
// dependency parsers such as MaltParser.
package dep

import (
	"errors"
	"fmt"
	"strings"

	sent "github.com/revelaction/cohmetrix/sentence"
)

var (
	ErrNoRoot        = errors.New("dependency graph has no ROOT node")
	ErrMultipleRoots = errors.New("dependency graph has more than one ROOT node")
	ErrMalformed     = errors.New("malformed CoNLL input")
)

// Node is a word of a dependency graph. Address is 1-based; a Head of 0
// points at the artificial top node.
type Node struct {
	Address int    `json:"address"`
	Word    string `json:"word"`
	Lemma   string `json:"lemma,omitempty"`
	CTag    string `json:"ctag,omitempty"`
	Tag     string `json:"tag"`
	Feats   string `json:"feats,omitempty"`
	Head    int    `json:"head"`
	Rel     string `json:"rel"`
}

// Token returns n as a tagged token.
func (n Node) Token() sent.Token {
	return sent.Token{
		Id:    n.Address,
		Head:  n.Head,
		Pos:   n.CTag,
		Dep:   n.Rel,
		Tag:   n.Tag,
		Text:  n.Word,
		Lemma: n.Lemma,
		Index: n.Address - 1,
	}
}

// Graph is the dependency graph of one sentence, nodes ordered by address.
type Graph struct {
	Nodes []Node `json:"nodes"`
}

// Root returns the node whose relation is ROOT, in any case.
func (g *Graph) Root() (Node, error) {
	var (
		root  Node
		found int
	)

	for _, n := range g.Nodes {
		if strings.EqualFold(n.Rel, "root") {
			root = n
			found++
		}
	}

	switch found {
	case 0:
		return Node{}, ErrNoRoot
	case 1:
		return root, nil
	default:
		return Node{}, fmt.Errorf("%w: %d roots", ErrMultipleRoots, found)
	}
}

// FirstRoot returns the first node, by address, whose relation is ROOT.
// MaltParser labels unattached tokens ROOT too, so a graph may have more
// than one.
func (g *Graph) FirstRoot() (Node, error) {
	for _, n := range g.Nodes {
		if strings.EqualFold(n.Rel, "root") {
			return n, nil
		}
	}
	return Node{}, ErrNoRoot
}

// Words returns the surface forms in address order.
func (g *Graph) Words() []string {
	words := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		words[i] = n.Word
	}
	return words
}

// FromTokens builds a graph from parsed tokens, as returned by spaCy like
// parsers. Token.Id is the address and Token.Head the head address.
func FromTokens(tokens []sent.Token) *Graph {
	g := &Graph{Nodes: make([]Node, 0, len(tokens))}
	for _, t := range tokens {
		g.Nodes = append(g.Nodes, Node{
			Address: t.Id,
			Word:    t.Text,
			Lemma:   t.Lemma,
			CTag:    t.Pos,
			Tag:     t.Tag,
			Head:    t.Head,
			Rel:     t.Dep,
		})
	}
	return g
}
