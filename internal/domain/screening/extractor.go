package screening

import (
	"strings"
)

// Token is a single word produced by a part-of-speech tagger, using
// Penn Treebank tags (NN, NNS, NNP, NNPS for nouns).
type Token struct {
	Text string
	Tag  string
}

// Tagger turns free text into tagged tokens. The production
// implementation wraps the prose NLP library; tests supply fakes.
type Tagger interface {
	Tag(text string) ([]Token, error)
}

// SkillSet is a set of lowercase skill terms.
type SkillSet map[string]struct{}

func (s SkillSet) Has(term string) bool {
	_, ok := s[term]
	return ok
}

func (s SkillSet) Add(term string) {
	s[term] = struct{}{}
}

type Extractor struct {
	tagger Tagger
}

func NewExtractor(tagger Tagger) *Extractor {
	return &Extractor{tagger: tagger}
}

// Extract returns the lowercase noun and proper-noun tokens of the text.
// No synonym normalization and no multi-word term detection happen here.
// Empty input yields an empty set, not an error.
func (e *Extractor) Extract(text string) (SkillSet, error) {
	out := make(SkillSet)

	if e == nil || e.tagger == nil {
		return out, nil
	}
	if strings.TrimSpace(text) == "" {
		return out, nil
	}

	tokens, err := e.tagger.Tag(text)
	if err != nil {
		return nil, err
	}

	for _, tok := range tokens {
		if !isNounTag(tok.Tag) {
			continue
		}
		term := strings.ToLower(strings.TrimSpace(tok.Text))
		if term == "" {
			continue
		}
		out.Add(term)
	}
	return out, nil
}

func isNounTag(tag string) bool {
	switch tag {
	case "NN", "NNS", "NNP", "NNPS":
		return true
	default:
		return false
	}
}
