package tree

import (
	"errors"
	"fmt"
	"unicode"
)

// ErrMalformed is returned for input that is not a bracketed tree.
var ErrMalformed = errors.New("malformed tree")

type tokenKind int

const (
	open tokenKind = iota
	closing
	atom
)

type token struct {
	kind  tokenKind
	value string
	pos   int
}

// Parse parses a single bracketed tree, e.g. "(S (NP (N Maria)) (VP (V foi)))".
func Parse(s string) (*Tree, error) {
	trees, err := ParseAll(s)
	if err != nil {
		return nil, err
	}
	if len(trees) != 1 {
		return nil, fmt.Errorf("%w: expected 1 tree, got %d", ErrMalformed, len(trees))
	}
	return trees[0], nil
}

// ParseAll parses a stream of bracketed trees, as printed by a parser for
// a batch of sentences. Trees may span several lines.
func ParseAll(s string) ([]*Tree, error) {
	p := &parser{tokens: lex(s)}

	var trees []*Tree
	for !p.done() {
		t, err := p.tree()
		if err != nil {
			return nil, err
		}
		trees = append(trees, t)
	}
	return trees, nil
}

func lex(s string) []token {
	var tokens []token
	runes := []rune(s)

	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '(':
			tokens = append(tokens, token{kind: open, pos: i})
			i++
		case r == ')':
			tokens = append(tokens, token{kind: closing, pos: i})
			i++
		default:
			start := i
			for i < len(runes) && !unicode.IsSpace(runes[i]) && runes[i] != '(' && runes[i] != ')' {
				i++
			}
			tokens = append(tokens, token{kind: atom, value: string(runes[start:i]), pos: start})
		}
	}
	return tokens
}

type parser struct {
	tokens []token
	next   int
}

func (p *parser) done() bool {
	return p.next >= len(p.tokens)
}

func (p *parser) tree() (*Tree, error) {
	if p.done() || p.tokens[p.next].kind != open {
		return nil, p.errorf("expected '('")
	}
	p.next++

	label := ""
	if !p.done() && p.tokens[p.next].kind == atom {
		label = p.tokens[p.next].value
		p.next++
	}

	var children []*Tree
	for {
		if p.done() {
			return nil, p.errorf("unbalanced brackets")
		}

		tok := p.tokens[p.next]
		switch tok.kind {
		case closing:
			p.next++
			return build(label, children, tok.pos)
		case atom:
			children = append(children, Leaf(tok.value))
			p.next++
		case open:
			child, err := p.tree()
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
	}
}

func build(label string, children []*Tree, pos int) (*Tree, error) {
	if len(children) == 0 {
		return nil, fmt.Errorf("%w: empty constituent %q at %d", ErrMalformed, label, pos)
	}

	// Penn style unlabeled wrapper: ( (S ...) )
	if label == "" {
		if len(children) == 1 && !children[0].IsLeaf() {
			return children[0], nil
		}
		return nil, fmt.Errorf("%w: unlabeled constituent at %d", ErrMalformed, pos)
	}

	return Node(label, children...), nil
}

func (p *parser) errorf(msg string) error {
	pos := -1
	if !p.done() {
		pos = p.tokens[p.next].pos
	}
	return fmt.Errorf("%w: %s at %d", ErrMalformed, msg, pos)
}
