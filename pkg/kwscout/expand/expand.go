// Package expand builds the query lists submitted to the autocomplete endpoint.
package expand

import "strings"

// DefaultAlphabet drives the alphabet-soup expansion. Autocomplete endpoints
// are prefix-sensitive, so "<seed> a".."<seed> 9" each surface different
// suggestions.
const DefaultAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// DefaultQuestionWords are prepended and appended to the seed.
var DefaultQuestionWords = []string{
	"who", "what", "where", "when", "why", "how",
	"can", "do", "does", "is", "are",
}

// DefaultPrepositions are appended to the seed only.
var DefaultPrepositions = []string{
	"for", "with", "without", "near", "to", "vs", "versus", "like", "and", "or",
}

// Config overrides the modifier sets. Zero values fall back to the defaults,
// so tests can substitute smaller sets.
type Config struct {
	Alphabet      string
	QuestionWords []string
	Prepositions  []string
}

// Expander produces query variants for a seed phrase.
type Expander struct {
	alphabet      string
	questionWords []string
	prepositions  []string
}

// New creates an Expander from the given config.
func New(cfg Config) *Expander {
	e := &Expander{
		alphabet:      cfg.Alphabet,
		questionWords: cfg.QuestionWords,
		prepositions:  cfg.Prepositions,
	}
	if e.alphabet == "" {
		e.alphabet = DefaultAlphabet
	}
	if e.questionWords == nil {
		e.questionWords = DefaultQuestionWords
	}
	if e.prepositions == nil {
		e.prepositions = DefaultPrepositions
	}
	return e
}

// SplitSeeds splits a raw comma-separated seed input into trimmed, non-empty
// seed phrases.
func SplitSeeds(raw string) []string {
	var seeds []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		seeds = append(seeds, part)
	}
	return seeds
}

// Queries returns the ordered query list for one seed: the bare seed first,
// then the alphabet soup, then question pairs, then prepositions. Duplicates
// across seeds are tolerated here; dedup happens at the keyword level after
// the suggestion fetch.
func (e *Expander) Queries(seed string, deep, questions, prepositions bool) []string {
	queries := []string{seed}

	if deep {
		for _, r := range e.alphabet {
			queries = append(queries, seed+" "+string(r))
		}
	}

	if questions {
		for _, word := range e.questionWords {
			queries = append(queries, word+" "+seed, seed+" "+word)
		}
	}

	if prepositions {
		for _, word := range e.prepositions {
			queries = append(queries, seed+" "+word)
		}
	}

	return queries
}
