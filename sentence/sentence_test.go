package sentence

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextParagraphs(t *testing.T) {
	txt := NewText("Maria foi ao mercado.\n\n   \n  No mercado, comprou ovos e pão.  \n")

	assert.Equal(t, []string{"Maria foi ao mercado.", "No mercado, comprou ovos e pão."}, txt.Paragraphs())
}

func TestTextRevisionWins(t *testing.T) {
	txt := NewText("eh... a menina ((risos)) foi", WithRevision("A menina foi."), WithTitle("t1"))

	assert.Equal(t, "A menina foi.", txt.Body())
	assert.Equal(t, []string{"A menina foi."}, txt.Paragraphs())
	assert.Equal(t, "t1", txt.Title)
}

func TestTextVersion(t *testing.T) {
	a := NewText("Maria foi ao mercado.")
	b := NewText("Maria foi ao mercado.")
	c := NewText("Maria foi à feira.")

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.Version(), b.Version())
	assert.NotEqual(t, a.Version(), c.Version())
	assert.NotEqual(t, a.Key(), b.Key())
}

func TestTextWithID(t *testing.T) {
	id := uuid.New()
	txt := NewText("x", WithID(id))
	require.Equal(t, id, txt.ID)
}

func TestTextString(t *testing.T) {
	short := NewText("Maria foi ao mercado.")
	assert.Equal(t, `<Text: "Maria foi ao mercado.">`, short.String())

	long := NewText("Acessório utilizado por adolescentes, o boné é um dos itens que compõem a vestimenta idealizada pela proposta.")
	assert.Contains(t, long.String(), "...")
}

func TestWordsAndJoin(t *testing.T) {
	tokens := []Token{Tagged("Maria", "NPROP"), Tagged("foi", "V"), Tagged(".", "PU")}

	assert.Equal(t, []string{"Maria", "foi", "."}, Words(tokens))
	assert.Equal(t, "Maria foi .", Join(tokens))
}

func TestFlattenAndFilter(t *testing.T) {
	sents := [][]Token{
		{Tagged("Maria", "NPROP"), Tagged(".", "PU")},
		{Tagged("Comprou", "V")},
	}

	all := Flatten(sents)
	require.Len(t, all, 3)

	words := Filter(all, func(t Token) bool { return t.Tag != "PU" })
	assert.Equal(t, []string{"Maria", "Comprou"}, Words(words))
}
