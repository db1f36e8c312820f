package tool

import (
	"strings"
	"unicode"
)

const vowels = "aeiouyáéíóúâêôãõàü"

// onsets are consonant pairs that start a syllable together.
var onsets = map[string]bool{
	"ch": true, "lh": true, "nh": true,
}

// VowelGroupSyllables separates Portuguese words in syllables around vowel
// nuclei. Diphthongs count as one nucleus, so hiatus are not split.
type VowelGroupSyllables struct{}

var _ SyllableSeparator = VowelGroupSyllables{}

func (VowelGroupSyllables) Separate(word string) []string {
	if word == "" {
		return nil
	}

	runes := []rune(word)

	// nuclei as [start, end) rune ranges
	var nuclei [][2]int
	for i := 0; i < len(runes); {
		if !isVowel(runes[i]) {
			i++
			continue
		}
		start := i
		for i < len(runes) && isVowel(runes[i]) {
			i++
		}
		nuclei = append(nuclei, [2]int{start, i})
	}

	if len(nuclei) < 2 {
		return []string{word}
	}

	var (
		syllables []string
		from      int
	)
	for k := 0; k < len(nuclei)-1; k++ {
		end, next := nuclei[k][1], nuclei[k+1][0]
		cut := next - 1
		if next-end >= 2 && isOnset(runes[next-2], runes[next-1]) {
			cut = next - 2
		}
		syllables = append(syllables, string(runes[from:cut]))
		from = cut
	}
	syllables = append(syllables, string(runes[from:]))

	return syllables
}

func isVowel(r rune) bool {
	return strings.ContainsRune(vowels, unicode.ToLower(r))
}

func isOnset(a, b rune) bool {
	a, b = unicode.ToLower(a), unicode.ToLower(b)
	if onsets[string([]rune{a, b})] {
		return true
	}
	return (b == 'l' || b == 'r') && strings.ContainsRune("bcdfgkptv", a)
}
