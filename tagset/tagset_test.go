package tagset

import (
	"testing"

	"github.com/stretchr/testify/assert"

	sent "github.com/revelaction/cohmetrix/sentence"
)

func TestMacMorpho(t *testing.T) {
	ts := MacMorpho()

	tests := []struct {
		tok      sent.Token
		verb     bool
		punct    bool
		content  bool
		function bool
	}{
		{sent.Tagged("é", "V"), true, false, true, false},
		{sent.Tagged("utilizado", "PCP"), false, false, true, false},
		{sent.Tagged("boné", "N"), false, false, true, false},
		{sent.Tagged("o", "ART"), false, false, false, true},
		{sent.Tagged("que", "PRO-KS"), false, false, false, true},
		{sent.Tagged(",", "PU"), false, true, false, false},
		{sent.Tagged(".", "."), false, true, false, false},
		{sent.Tagged("foi", "VAUX"), false, false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.tok.Text+"/"+tt.tok.Tag, func(t *testing.T) {
			assert.Equal(t, tt.verb, ts.IsVerb(tt.tok))
			assert.Equal(t, tt.punct, ts.IsPunctuation(tt.tok))
			assert.Equal(t, tt.content, ts.IsContentWord(tt.tok))
			assert.Equal(t, tt.function, ts.IsFunctionWord(tt.tok))
		})
	}
}

func TestUniversal(t *testing.T) {
	ts := Universal()

	assert.True(t, ts.IsVerb(sent.Token{Tag: "VERB"}))
	assert.False(t, ts.IsVerb(sent.Token{Tag: "AUX"}))
	assert.True(t, ts.IsAuxiliaryVerb(sent.Token{Tag: "AUX"}))
	assert.True(t, ts.IsPunctuation(sent.Token{Tag: "PUNCT"}))
	assert.True(t, ts.IsPunctuation(sent.Token{Tag: "."}))
	assert.True(t, ts.IsNoun(sent.Token{Tag: "PROPN"}))
	assert.Equal(t, "universal", ts.Name())
}

func TestPennTreebank(t *testing.T) {
	ts := PennTreebank()

	assert.True(t, ts.IsVerb(sent.Token{Tag: "VBZ"}))
	assert.True(t, ts.IsParticiple(sent.Token{Tag: "VBN"}))
	assert.True(t, ts.IsPunctuation(sent.Token{Tag: ","}))
	assert.True(t, ts.IsPunctuation(sent.Token{Tag: "-LRB-"}))
	assert.False(t, ts.IsPunctuation(sent.Token{Tag: "NN"}))
}

func TestPhrases(t *testing.T) {
	lx := LXParser()

	assert.Equal(t, "NP", lx.NounPhrase)
	assert.Equal(t, "PNT", lx.Punctuation)
	assert.True(t, lx.IsSentenceNode("S"))
	assert.False(t, lx.IsSentenceNode("NP"))
	assert.True(t, PennPhrases().IsSentenceNode("SBAR"))
}
