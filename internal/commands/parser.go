package commands

import (
	"regexp"
	"strings"

	"github.com/pixil98/go-peril/internal/lexicon"
)

// Internal verbs produced by the parser for phrases that need their own
// handler.
const (
	verbLookIn = "look in"
)

// Instruction is one parsed clause: a canonical verb, the noun phrase it acts
// on, and an optional target phrase.
type Instruction struct {
	Verb   string
	Noun   string
	Target string
}

var clauseSplitter = regexp.MustCompile(`\s*;\s*|,?\s+and\s+then\s+|,?\s+then\s+|\s+and\s+`)

// Each verb checks its own prepositions, in order, before the generic " on ".
var verbPrepositions = map[string][]string{
	lexicon.VerbTake:   {" from ", " out of "},
	lexicon.VerbPut:    {" into ", " inside ", " in "},
	lexicon.VerbUse:    {" on ", " with "},
	lexicon.VerbUnlock: {" with "},
}

const genericPreposition = " on "

var articles = []string{"the ", "a ", "an ", "some "}

// Parse turns raw player text into instructions. Compound input joined by
// "and", "then" or ";" yields one instruction per clause. Empty input yields
// none.
func Parse(raw string) []Instruction {
	text := lexicon.Fold(raw)
	if text == "" {
		return nil
	}

	var out []Instruction
	for _, clause := range clauseSplitter.Split(text, -1) {
		clause = strings.TrimSpace(strings.Trim(clause, ".,!"))
		if clause == "" {
			continue
		}
		out = append(out, parseClause(clause))
	}
	return out
}

func parseClause(clause string) Instruction {
	if dir, ok := lexicon.ResolveDirection(clause); ok {
		return Instruction{Verb: lexicon.VerbGo, Noun: dir}
	}

	tokens := strings.Fields(clause)
	verb, rest := tokens[0], tokens[1:]
	if len(tokens) > 1 && lexicon.IsVerbPhrase(tokens[0]+" "+tokens[1]) {
		verb, rest = tokens[0]+" "+tokens[1], tokens[2:]
	}
	verb = lexicon.ResolveVerb(verb)
	remainder := strings.Join(rest, " ")

	switch verb {
	case lexicon.VerbLook:
		return parseLook(remainder)
	case lexicon.VerbGo:
		return Instruction{Verb: verb, Noun: remainder}
	case lexicon.VerbTalk:
		for _, p := range []string{"to ", "with "} {
			remainder = strings.TrimPrefix(remainder, p)
		}
		return Instruction{Verb: verb, Noun: stripArticle(remainder)}
	case lexicon.VerbUnlock:
		// "unlock door with key" is "use key on door".
		noun, target := splitPrepositions(verb, remainder)
		if target == "" {
			return Instruction{Verb: lexicon.VerbUse, Noun: noun}
		}
		return Instruction{Verb: lexicon.VerbUse, Noun: target, Target: noun}
	}

	noun, target := splitPrepositions(verb, remainder)
	return Instruction{Verb: verb, Noun: noun, Target: target}
}

func parseLook(remainder string) Instruction {
	for _, p := range []string{"at ", "in ", "inside ", "into "} {
		phrase, ok := strings.CutPrefix(remainder, p)
		if !ok && remainder == strings.TrimSpace(p) {
			phrase, ok = "", true
		}
		if ok {
			if p == "at " {
				return Instruction{Verb: lexicon.VerbExamine, Noun: stripArticle(phrase)}
			}
			return Instruction{Verb: verbLookIn, Noun: stripArticle(phrase)}
		}
	}
	if remainder == "" || remainder == "around" {
		return Instruction{Verb: lexicon.VerbLook}
	}
	return Instruction{Verb: lexicon.VerbExamine, Noun: stripArticle(remainder)}
}

// splitPrepositions splits the remainder of a clause into noun and target.
func splitPrepositions(verb, remainder string) (string, string) {
	padded := " " + remainder + " "
	preps := append(append([]string{}, verbPrepositions[verb]...), genericPreposition)
	for _, p := range preps {
		if before, after, ok := strings.Cut(padded, p); ok {
			return stripArticle(before), stripArticle(after)
		}
	}
	return stripArticle(remainder), ""
}

func stripArticle(phrase string) string {
	phrase = strings.TrimSpace(phrase)
	for _, a := range articles {
		if rest, ok := strings.CutPrefix(phrase, a); ok {
			return strings.TrimSpace(rest)
		}
	}
	return phrase
}
