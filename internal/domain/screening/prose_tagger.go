package screening

import (
	prose "github.com/jdkato/prose/v2"
)

// ProseTagger tags text with the prose NLP library. Named-entity
// extraction is disabled; only tokenization and tagging are needed.
type ProseTagger struct{}

func NewProseTagger() ProseTagger {
	return ProseTagger{}
}

func (ProseTagger) Tag(text string) ([]Token, error) {
	doc, err := prose.NewDocument(text,
		prose.WithExtraction(false),
		prose.WithSegmentation(false),
	)
	if err != nil {
		return nil, err
	}

	toks := doc.Tokens()
	out := make([]Token, 0, len(toks))
	for _, t := range toks {
		out = append(out, Token{Text: t.Text, Tag: t.Tag})
	}
	return out, nil
}
