package greeklish

import (
	"slices"
	"testing"
)

func TestFold(t *testing.T) {
	tests := []struct {
		word string
		want []rune
	}{
		{"", []rune{}},
		{"α", []rune{'α'}},
		{"αυτοκινητο", []rune{phAU, 'τ', 'ο', 'κ', 'ι', 'ν', 'η', 'τ', 'ο'}},
		{"ομπρελα", []rune{'ο', phMP, 'ρ', 'ε', 'λ', 'α'}},
		{"μπαμπουλασ", []rune{phMP, 'α', phMP, phOU, 'λ', 'α', 'σ'}},
		// A folded pair is not split again: γγ wins over γκ.
		{"γγκ", []rune{phGG, 'κ'}},
		{"αει", []rune{'α', phEI}},
		{"ευαι", []rune{phEU, phAI}},
		{"ντοι", []rune{phNT, phOI}},
		{"εγκυοσ", []rune{'ε', phGK, 'υ', 'ο', 'σ'}},
	}
	for _, tt := range tests {
		got := Fold(tt.word)
		if !slices.Equal(got, tt.want) {
			t.Errorf("Fold(%q) = %q, want %q", tt.word, got, tt.want)
		}
	}
}

func TestFold_EveryDigraph(t *testing.T) {
	d := Digraphs()
	for i := 0; i < d.Len(); i++ {
		r := d.At(i)
		got := Fold(r.Key)
		if len(got) != 1 || string(got) != r.Replacements[0] {
			t.Errorf("Fold(%q) = %q, want single placeholder", r.Key, got)
		}
		if IsTransliterable(string(got)) {
			t.Errorf("placeholder for %q is inside the alphabet", r.Key)
		}
	}
}
