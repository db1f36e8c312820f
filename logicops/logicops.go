// Package logicops has the incidence of logic operators: conjunctions,
// disjunctions, conditionals and negations.
package logicops

import (
	"context"
	"strings"

	"github.com/revelaction/cohmetrix/metric"
	"github.com/revelaction/cohmetrix/pool"
	sent "github.com/revelaction/cohmetrix/sentence"
	"github.com/revelaction/cohmetrix/tagset"
)

func New() *metric.Category {
	return metric.MustCategory("Logic operators", "logic_operators",
		LogicOperatorsIncidence,
		AndIncidence,
		OrIncidence,
		IfIncidence,
		NegationIncidence,
	)
}

// Word matches a token by its lowercased text and, if Accept is set, by
// its tag.
type Word struct {
	Text   string
	Accept func(tagset.Tagset, sent.Token) bool
}

func (w Word) matches(ts tagset.Tagset, tok sent.Token) bool {
	if strings.ToLower(tok.Text) != w.Text {
		return false
	}
	return w.Accept == nil || w.Accept(ts, tok)
}

// Operator is a sequence of consecutive words, e.g. "contanto que".
type Operator []Word

// Count returns the number of occurrences of o in the tagged sentence.
// Occurrences may overlap.
func (o Operator) Count(ts tagset.Tagset, sentence []sent.Token) int {
	n := 0
	for i := 0; i+len(o) <= len(sentence); i++ {
		match := len(o) > 0
		for j, w := range o {
			if !w.matches(ts, sentence[i+j]) {
				match = false
				break
			}
		}
		if match {
			n++
		}
	}
	return n
}

func seq(ws ...string) Operator {
	o := make(Operator, len(ws))
	for i, w := range ws {
		o[i] = Word{Text: w}
	}
	return o
}

func notPronoun(ts tagset.Tagset, t sent.Token) bool {
	return !ts.IsPronoun(t)
}

var (
	And = []Operator{seq("e")}
	Or  = []Operator{seq("ou")}

	// If leaves out the pronoun "se".
	If = []Operator{{{Text: "se", Accept: notPronoun}}}

	Negations = []Operator{
		seq("não"), seq("nem"), seq("nenhum"), seq("nenhuma"),
		seq("nada"), seq("nunca"), seq("jamais"),
	}

	Conditions = []Operator{
		seq("caso"), seq("contanto", "que"), seq("desde", "que"),
		seq("a", "menos", "que"), seq("a", "não", "ser", "que"),
		seq("salvo", "se"), seq("exceto", "se"),
	}

	// LogicOperators counts every operator above. Operators overlapping in
	// the text count once each.
	LogicOperators = concat(And, Or, If, Negations, Conditions)
)

func concat(lists ...[]Operator) []Operator {
	var all []Operator
	for _, l := range lists {
		all = append(all, l...)
	}
	return all
}

// Incidence is the number of occurrences of a set of operators per 1000
// words, 0 for a text without words.
type Incidence struct {
	name      string
	column    string
	operators []Operator
}

func (i Incidence) Name() string   { return i.name }
func (i Incidence) Column() string { return i.column }

func (i Incidence) ValueForText(ctx context.Context, t *sent.Text, rp *pool.Pool) (float64, error) {
	tagged, err := rp.TaggedSentences(ctx, t)
	if err != nil {
		return 0, err
	}
	words, err := rp.AllWords(ctx, t)
	if err != nil {
		return 0, err
	}
	if len(words) == 0 {
		return 0, nil
	}

	ts := rp.Tools().Tagger().Tagset()
	n := 0
	for _, s := range tagged {
		for _, o := range i.operators {
			n += o.Count(ts, s)
		}
	}
	return float64(n) / (float64(len(words)) / 1000), nil
}

var (
	LogicOperatorsIncidence = Incidence{"Logic operators incidence", "logic_operators", LogicOperators}
	AndIncidence            = Incidence{"Incidence of ANDs.", "and_incidence", And}
	OrIncidence             = Incidence{"Incidence of ORs.", "or_incidence", Or}
	IfIncidence             = Incidence{"Incidence of IFs.", "if_incidence", If}
	NegationIncidence       = Incidence{"Incidence of negations", "negation_incidence", Negations}
)
