package tooltest

import (
	"strings"

	"github.com/revelaction/cohmetrix/tagset"
)

// Sentence is a Portuguese sentence with 17 words, 5 noun phrases and
// "utilizado" as dependency root.
const Sentence = "Acessório utilizado por adolescentes, o boné é um dos itens que compõem a vestimenta idealizada pela proposta."

// SentenceTokens are the tokens Tokenizer returns for Sentence.
var SentenceTokens = []string{
	"Acessório", "utilizado", "por", "adolescentes", ",", "o", "boné", "é", "um", "dos",
	"itens", "que", "compõem", "a", "vestimenta", "idealizada", "pela", "proposta", ".",
}

// SentenceTags are the MacMorpho tags of SentenceTokens.
var SentenceTags = []string{
	"N", "PCP", "PREP", "N", "PU", "ART", "N", "V", "ART", "PREP",
	"N", "PRO-KS", "V", "ART", "N", "PCP", "PREP", "N", "PU",
}

// SentenceTree is the LX-Parser tree of Sentence. Its top level noun
// phrases have 4, 2 and 10 words.
const SentenceTree = `(ROOT (S (NP (N Acessório) (AP (A utilizado) (PP (P por) (NP (N adolescentes))))) (PNT ,) (NP (ART o) (N boné)) (VP (V é) (NP (ART um) (PP (P dos) (N itens) (CP (REL que) (VP (V compõem) (NP (ART a) (N vestimenta) (AP (A idealizada) (PP (P pela) (N proposta))))))))) (PNT .)))`

// SentenceConll is the dependency graph of Sentence.
const SentenceConll = "1\tAcessório\t_\tNOUN\tNOUN\t_\t2\tnsubj\t_\t_\n" +
	"2\tutilizado\t_\tVERB\tVERB\t_\t0\tROOT\t_\t_\n" +
	"3\tpor\t_\tADP\tADP\t_\t4\tcase\t_\t_\n" +
	"4\tadolescentes\t_\tNOUN\tNOUN\t_\t2\tobl\t_\t_\n" +
	"5\t,\t_\tPUNCT\tPUNCT\t_\t2\tpunct\t_\t_\n" +
	"6\to\t_\tDET\tDET\t_\t7\tdet\t_\t_\n" +
	"7\tboné\t_\tNOUN\tNOUN\t_\t2\tnsubj\t_\t_\n" +
	"8\té\t_\tAUX\tAUX\t_\t2\tcop\t_\t_\n" +
	"9\tum\t_\tPRON\tPRON\t_\t2\tdep\t_\t_\n" +
	"10\tdos\t_\tADP\tADP\t_\t11\tcase\t_\t_\n" +
	"11\titens\t_\tNOUN\tNOUN\t_\t9\tnmod\t_\t_\n" +
	"12\tque\t_\tPRON\tPRON\t_\t13\tnsubj\t_\t_\n" +
	"13\tcompõem\t_\tVERB\tVERB\t_\t11\tacl:relcl\t_\t_\n" +
	"14\ta\t_\tDET\tDET\t_\t15\tdet\t_\t_\n" +
	"15\tvestimenta\t_\tNOUN\tNOUN\t_\t13\tobj\t_\t_\n" +
	"16\tidealizada\t_\tVERB\tVERB\t_\t15\tacl\t_\t_\n" +
	"17\tpela\t_\tADP\tADP\t_\t18\tcase\t_\t_\n" +
	"18\tproposta\t_\tNOUN\tNOUN\t_\t16\tobl\t_\t_\n" +
	"19\t.\t_\tPUNCT\tPUNCT\t_\t2\tpunct\t_\t_\n"

// Fixture bundles the tool outputs for a set of sentences.
type Fixture struct {
	Lexicon map[string]string
	Trees   map[string]string
	Graphs  map[string]string
}

// NewFixture returns an empty fixture.
func NewFixture() *Fixture {
	return &Fixture{
		Lexicon: map[string]string{},
		Trees:   map[string]string{},
		Graphs:  map[string]string{},
	}
}

// Add registers the tags, tree and dependency graph of a tokenized
// sentence. Empty tree or graph are not registered.
func (f *Fixture) Add(tokens, tags []string, bracketed, conll string) *Fixture {
	for i, tok := range tokens {
		f.Lexicon[tok] = tags[i]
	}

	key := strings.Join(tokens, " ")
	if bracketed != "" {
		f.Trees[key] = bracketed
	}
	if conll != "" {
		f.Graphs[key] = conll
	}
	return f
}

// AddSentence registers Sentence.
func (f *Fixture) AddSentence() *Fixture {
	return f.Add(SentenceTokens, SentenceTags, SentenceTree, SentenceConll)
}

// Tagger returns a MacMorpho tagger over the fixture lexicon.
func (f *Fixture) Tagger() *Tagger {
	return &Tagger{Set: tagset.MacMorpho(), Lexicon: f.Lexicon, Default: "N"}
}

// Parser returns an LX-Parser over the fixture trees.
func (f *Fixture) Parser() *Parser {
	return &Parser{Labels: tagset.LXParser(), Trees: f.Trees}
}

// DepParser returns a dependency parser over the fixture graphs.
func (f *Fixture) DepParser() *DepParser {
	return &DepParser{Graphs: f.Graphs}
}
