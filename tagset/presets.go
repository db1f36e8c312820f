package tagset

// MacMorpho returns the tagset of the Portuguese nlpnet/OpenNLP taggers
// trained on the Mac-Morpho corpus.
func MacMorpho() *Set {
	return &Set{
		name:        "macmorpho",
		verbs:       newTags("V"),
		auxiliaries: newTags("VAUX"),
		participles: newTags("PCP"),
		nouns:       newTags("N", "NPROP"),
		adjectives:  newTags("ADJ"),
		adverbs:     newTags("ADV", "ADV-KS", "ADV-KS-REL"),
		denotative:  newTags("PDEN"),
		pronouns:    newTags("PROADJ", "PROPESS", "PROSUB", "PRO-KS", "PRO-KS-REL"),
		punctuation: newTags("PU"),
		function: newTags("ART", "PREP", "PREP+ART", "PREP+PROADJ", "PREP+PROPESS",
			"PREP+PROSUB", "PREP+PRO-KS", "PROADJ", "PROPESS", "PROSUB", "PRO-KS",
			"PRO-KS-REL", "KC", "KS", "IN"),
	}
}

// Universal returns the Universal Dependencies UPOS tagset. The legacy
// universal tags "." and "CONJ" are accepted too.
func Universal() *Set {
	return &Set{
		name:        "universal",
		verbs:       newTags("VERB"),
		auxiliaries: newTags("AUX"),
		participles: newTags(),
		nouns:       newTags("NOUN", "PROPN"),
		adjectives:  newTags("ADJ"),
		adverbs:     newTags("ADV"),
		denotative:  newTags(),
		pronouns:    newTags("PRON"),
		punctuation: newTags("PUNCT", "."),
		function:    newTags("DET", "ADP", "PRON", "CCONJ", "SCONJ", "CONJ", "INTJ"),
	}
}

// PennTreebank returns the English Penn Treebank tagset.
func PennTreebank() *Set {
	return &Set{
		name:        "penn",
		verbs:       newTags("VB", "VBD", "VBP", "VBZ"),
		auxiliaries: newTags("MD"),
		participles: newTags("VBG", "VBN"),
		nouns:       newTags("NN", "NNS", "NNP", "NNPS"),
		adjectives:  newTags("JJ", "JJR", "JJS"),
		adverbs:     newTags("RB", "RBR", "RBS", "WRB"),
		denotative:  newTags(),
		pronouns:    newTags("PRP", "PRP$", "WP", "WP$"),
		punctuation: newTags("-LRB-", "-RRB-", "``", "''"),
		function:    newTags("DT", "PDT", "WDT", "IN", "TO", "CC", "PRP", "PRP$", "WP", "WP$", "UH"),
	}
}
