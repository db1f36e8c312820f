package tagset

// Phrases names the constituent labels of a constituency parser.
type Phrases struct {
	// NounPhrase labels noun phrase constituents.
	NounPhrase string

	// Punctuation labels punctuation preterminals.
	Punctuation string

	// Pronoun labels personal pronoun preterminals.
	Pronoun string

	VerbPhrase string

	// Clause labels the clauses counted by their verb phrases.
	Clause string

	// Root labels the artificial root some parsers wrap trees with.
	Root string

	sentence tags
}

// IsSentenceNode reports whether label marks a clause/sentence node.
func (p Phrases) IsSentenceNode(label string) bool {
	return p.sentence.has(label)
}

// LXParser returns the labels of the LX-Parser Portuguese constituency
// parser.
func LXParser() Phrases {
	return Phrases{
		NounPhrase:  "NP",
		Punctuation: "PNT",
		Pronoun:     "PRS",
		VerbPhrase:  "VP",
		Clause:      "S",
		Root:        "ROOT",
		sentence:    newTags("S", "SNS", "SQ"),
	}
}

// PennPhrases returns the labels of Penn Treebank style parsers.
func PennPhrases() Phrases {
	return Phrases{
		NounPhrase:  "NP",
		Punctuation: ".",
		Pronoun:     "PRP",
		VerbPhrase:  "VP",
		Clause:      "S",
		Root:        "ROOT",
		sentence:    newTags("S", "SBAR", "SBARQ", "SINV", "SQ"),
	}
}
