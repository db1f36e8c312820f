package logicops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revelaction/cohmetrix/pool"
	sent "github.com/revelaction/cohmetrix/sentence"
	"github.com/revelaction/cohmetrix/tagset"
	"github.com/revelaction/cohmetrix/tool/tooltest"
)

// 12 words: one conditional "Se", a reflexive "se", two negations
const text = "Se Ana não dorme, ela se cansa e nunca lê ou escreve."

func newPool(t *testing.T) *pool.Pool {
	t.Helper()
	f := tooltest.NewFixture().Add(
		[]string{"Se", "Ana", "não", "dorme", ",", "ela", "se", "cansa", "e", "nunca", "lê", "ou", "escreve", "."},
		[]string{"KS", "NPROP", "ADV", "V", "PU", "PROPESS", "PROPESS", "V", "KC", "ADV", "V", "KC", "V", "PU"},
		"", "")
	p, err := pool.New(tooltest.Registry(f.Tagger(), f.Parser(), f.DepParser()))
	require.NoError(t, err)
	return p
}

func TestCategory(t *testing.T) {
	c := New()
	assert.Equal(t, "logic_operators", c.TableName())
	assert.Len(t, c.Metrics(), 5)
}

func TestValues(t *testing.T) {
	vs := New().ValuesForText(context.Background(), sent.NewText(text), newPool(t))
	require.NoError(t, vs.Err())

	per1000 := 1000 / 12.0
	want := map[string]float64{
		"and_incidence":      1 * per1000,
		"or_incidence":       1 * per1000,
		"if_incidence":       1 * per1000,
		"negation_incidence": 2 * per1000,
		"logic_operators":    5 * per1000,
	}
	got := vs.Map(false)
	for column, v := range want {
		assert.InDelta(t, v, got[column], 1e-9, column)
	}
}

func TestEmptyText(t *testing.T) {
	vs := New().ValuesForText(context.Background(), sent.NewText(""), newPool(t))
	require.NoError(t, vs.Err())
	for _, v := range vs {
		assert.Equal(t, 0.0, v.Value, v.Name)
	}
}

func TestOperatorCount(t *testing.T) {
	ts := tagset.MacMorpho()
	tagged := func(pairs ...string) []sent.Token {
		var s []sent.Token
		for i := 0; i < len(pairs); i += 2 {
			s = append(s, sent.Tagged(pairs[i], pairs[i+1]))
		}
		return s
	}

	s := tagged("Ele", "PROPESS", "entra", "V", ",", "PU", "contanto", "KS", "que", "KS", "saia", "V", ".", "PU")
	assert.Equal(t, 1, seq("contanto", "que").Count(ts, s))
	assert.Equal(t, 0, seq("que", "contanto").Count(ts, s))
	assert.Equal(t, 0, Operator{}.Count(ts, s))

	// the negation inside the condition counts too
	s = tagged("Saio", "V", "a", "PREP", "não", "ADV", "ser", "V", "que", "KS", "chova", "V")
	n := 0
	for _, o := range LogicOperators {
		n += o.Count(ts, s)
	}
	assert.Equal(t, 2, n)

	assert.Equal(t, 0, If[0].Count(ts, tagged("se", "PROPESS")))
	assert.Equal(t, 1, If[0].Count(ts, tagged("SE", "KS")))
}
