package tree

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const boneTree = `(ROOT (S (NP (N Acessório) (AP (A utilizado) (PP (P por) (NP (N adolescentes))))) (PNT ,) (NP (ART o) (N boné)) (VP (V é) (NP (ART um) (PP (P dos) (N itens) (CP (REL que) (VP (V compõem) (NP (ART a) (N vestimenta) (AP (A idealizada) (PP (P pela) (N proposta))))))))) (PNT .)))`

func TestParse(t *testing.T) {
	tr, err := Parse("(S (NP (N Maria)) (VP (V foi)))")
	require.NoError(t, err)

	assert.Equal(t, "S", tr.Label)
	assert.Len(t, tr.Children, 2)
	assert.Equal(t, []string{"Maria", "foi"}, tr.Leaves())
	assert.Equal(t, 4, tr.Height())
	assert.Equal(t, "(S (NP (N Maria)) (VP (V foi)))", tr.String())
}

func TestParsePennWrapper(t *testing.T) {
	tr, err := Parse("( (S (NP (NNP John)) (VP (VBZ runs))) )")
	require.NoError(t, err)
	assert.Equal(t, "S", tr.Label)
}

func TestParseMultiline(t *testing.T) {
	input := `(ROOT
  (S
    (NP (N Maria))
    (VP (V saiu))))
(ROOT (S (NP (N João)) (VP (V ficou))))
`
	trees, err := ParseAll(input)
	require.NoError(t, err)
	require.Len(t, trees, 2)
	assert.Equal(t, []string{"João", "ficou"}, trees[1].Leaves())
}

func TestParseMalformed(t *testing.T) {
	for _, input := range []string{
		"(S (NP (N Maria))",
		"(S (NP))",
		"Maria",
		"(S (N a)) )",
		"( (N a) (N b) )",
	} {
		_, err := ParseAll(input)
		assert.ErrorIs(t, err, ErrMalformed, input)
	}

	_, err := Parse("(N a) (N b)")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestFindAndTopLevel(t *testing.T) {
	tr, err := Parse(boneTree)
	require.NoError(t, err)

	assert.Len(t, tr.Find("NP"), 5)

	top := tr.TopLevel("NP")
	require.Len(t, top, 3)

	var sizes []int
	for _, np := range top {
		sizes = append(sizes, len(np.Leaves()))
	}
	assert.Equal(t, []int{4, 2, 10}, sizes)
}

func TestTopLevelIncludesRoot(t *testing.T) {
	tr, err := Parse("(NP (ART o) (NP (N boné)))")
	require.NoError(t, err)

	top := tr.TopLevel("NP")
	require.Len(t, top, 1)
	assert.Same(t, tr, top[0])
}

func TestPreterminal(t *testing.T) {
	tr, err := Parse("(NP (ART o) (N boné))")
	require.NoError(t, err)

	assert.False(t, tr.IsPreterminal())
	assert.True(t, tr.Children[0].IsPreterminal())
	assert.True(t, tr.Children[0].Children[0].IsLeaf())
}

func TestLeafPositions(t *testing.T) {
	tr, err := Parse("(S (NP (N Maria)) (VP (V comprou) (NP (N ovos))))")
	require.NoError(t, err)

	pos := tr.LeafPositions()
	assert.Equal(t, [][]int{{0, 0, 0}, {1, 0, 0}, {1, 1, 0, 0}}, pos)

	for i, p := range pos {
		assert.Equal(t, tr.Leaves()[i], tr.At(p).Label)
	}
	assert.Nil(t, tr.At([]int{5}))
}

func TestReversed(t *testing.T) {
	tr, err := Parse("(S (NP (N Maria)) (VP (V comprou) (NP (N ovos))))")
	require.NoError(t, err)

	r := tr.Reversed()
	assert.Equal(t, []string{"ovos", "comprou", "Maria"}, r.Leaves())
	// the receiver is untouched
	assert.Equal(t, []string{"Maria", "comprou", "ovos"}, tr.Leaves())
}

func TestJSON(t *testing.T) {
	tr, err := Parse(boneTree)
	require.NoError(t, err)

	b, err := json.Marshal(tr)
	require.NoError(t, err)

	var got Tree
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, tr.String(), got.String())
}
