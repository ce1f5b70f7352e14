package screening

import (
	"errors"
	"testing"
)

type fakeTagger struct {
	tokens []Token
	err    error
}

func (f fakeTagger) Tag(string) ([]Token, error) {
	return f.tokens, f.err
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name   string
		tokens []Token
		input  string
		want   []string
	}{
		{
			name:  "nouns only",
			input: "We need Python and strong SQL skills",
			tokens: []Token{
				{Text: "We", Tag: "PRP"},
				{Text: "need", Tag: "VBP"},
				{Text: "Python", Tag: "NNP"},
				{Text: "and", Tag: "CC"},
				{Text: "strong", Tag: "JJ"},
				{Text: "SQL", Tag: "NNP"},
				{Text: "skills", Tag: "NNS"},
			},
			want: []string{"python", "sql", "skills"},
		},
		{
			name:  "duplicates collapse",
			input: "sql sql sql",
			tokens: []Token{
				{Text: "sql", Tag: "NN"},
				{Text: "SQL", Tag: "NNP"},
				{Text: "Sql", Tag: "NN"},
			},
			want: []string{"sql"},
		},
		{
			name:   "no nouns",
			input:  "run quickly",
			tokens: []Token{{Text: "run", Tag: "VB"}, {Text: "quickly", Tag: "RB"}},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := NewExtractor(fakeTagger{tokens: tt.tokens})

			got, err := ex.Extract(tt.input)
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}

			if len(got) != len(tt.want) {
				t.Fatalf("Extract() = %v, want %v terms", got, len(tt.want))
			}
			for _, term := range tt.want {
				if !got.Has(term) {
					t.Errorf("Extract() missing term %q", term)
				}
			}
		})
	}
}

func TestExtractEmptyInput(t *testing.T) {
	ex := NewExtractor(fakeTagger{err: errors.New("should not be called")})

	got, err := ex.Extract("   ")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Extract() = %v, want empty set", got)
	}
}

func TestExtractTaggerError(t *testing.T) {
	wantErr := errors.New("tagger broke")
	ex := NewExtractor(fakeTagger{err: wantErr})

	if _, err := ex.Extract("text"); !errors.Is(err, wantErr) {
		t.Errorf("Extract() error = %v, want %v", err, wantErr)
	}
}
