package greeklish

import (
	"fmt"
)

// Alphabet is the set of characters a word must consist of to be
// transliterated: the 24 lowercase Greek letters, without accents and
// without final sigma.
const Alphabet = "αβγδεζηθικλμνξοπρστυφχψω"

// Digraph placeholders. They live in the Private Use Area so they can never
// collide with a letter of an accepted word.
const (
	phAI rune = '\uE000' + iota
	phEI
	phOI
	phOU
	phEU
	phAU
	phMP
	phGG
	phGK
	phNT
)

func ph(r rune) []string { return []string{string(r)} }

// digraphs maps each two-letter sequence to its single-rune placeholder.
var digraphs = MustRuleTable([]Rule[string]{
	{"αι", ph(phAI)},
	{"ει", ph(phEI)},
	{"οι", ph(phOI)},
	{"ου", ph(phOU)},
	{"ευ", ph(phEU)},
	{"αυ", ph(phAU)},
	{"μπ", ph(phMP)},
	{"γγ", ph(phGG)},
	{"γκ", ph(phGK)},
	{"ντ", ph(phNT)},
})

// digraphIndex maps the first letter of a digraph to its possible second
// letters and the resulting placeholder, for single-pass folding.
var digraphIndex = func() map[rune]map[rune]rune {
	idx := make(map[rune]map[rune]rune)
	for i := 0; i < digraphs.Len(); i++ {
		r := digraphs.rules[i]
		pair := []rune(r.Key)
		if idx[pair[0]] == nil {
			idx[pair[0]] = make(map[rune]rune)
		}
		idx[pair[0]][pair[1]] = []rune(r.Replacements[0])[0]
	}
	return idx
}()

// defaultMapping lists the Latin renderings of every letter and placeholder.
// The first replacement of each entry is the primary one.
var defaultMapping = MustRuleTable([]Rule[rune]{
	{phAI, []string{"ai", "e"}},
	{phEI, []string{"ei", "i"}},
	{phOI, []string{"oi", "i"}},
	{phOU, []string{"ou", "oy", "u"}},
	{phEU, []string{"eu", "ef", "ev", "ey"}},
	{phAU, []string{"au", "af", "av", "ay"}},
	{phMP, []string{"mp", "b"}},
	{phGG, []string{"gg", "g"}},
	{phGK, []string{"gk", "g"}},
	{phNT, []string{"nt", "d"}},
	{'α', []string{"a"}},
	{'β', []string{"b", "v"}},
	{'γ', []string{"g"}},
	{'δ', []string{"d"}},
	{'ε', []string{"e"}},
	{'ζ', []string{"z"}},
	{'η', []string{"h", "i"}},
	{'θ', []string{"th"}},
	{'ι', []string{"i"}},
	{'κ', []string{"k"}},
	{'λ', []string{"l"}},
	{'μ', []string{"m"}},
	{'ν', []string{"n"}},
	{'ξ', []string{"ks", "x"}},
	{'ο', []string{"o"}},
	{'π', []string{"p"}},
	{'ρ', []string{"r"}},
	{'σ', []string{"s"}},
	{'τ', []string{"t"}},
	{'υ', []string{"y", "u", "i"}},
	{'φ', []string{"f", "ph"}},
	{'χ', []string{"x", "h", "ch"}},
	{'ψ', []string{"ps"}},
	{'ω', []string{"w", "o", "v"}},
})

// specialMapping follows the Greek keyboard layout, where ψ sits on the
// "c" key. Every other entry is the default one.
var specialMapping = defaultMapping.with([]Rule[rune]{
	{'ψ', []string{"c", "ps"}},
})

// suffixRules is scanned in declaration order and the first rule whose key
// ends the word wins. Longer suffixes must precede the shorter ones they
// contain.
var suffixRules = MustRuleTable([]Rule[string]{
	{"ματοσ", []string{"μα", "ματων", "ματα"}},
	{"ματα", []string{"μα", "ματων", "ματοσ"}},
	{"ματων", []string{"μα", "ματα", "ματοσ"}},
	{"ασ", []string{"α", "ων", "εσ"}},
	{"εια", []string{"ειο", "ειων", "ειου", "ειασ"}},
	{"ειο", []string{"εια", "ειων", "ειου"}},
	{"ειου", []string{"εια", "ειου", "ειο", "ειων"}},
	{"ειων", []string{"εια", "ειου", "ειο", "ειασ"}},
	{"ιου", []string{"ι", "ια", "ιων", "ιο"}},
	{"ια", []string{"ιου", "ι", "ιων", "ιασ", "ιο"}},
	{"ιων", []string{"ιου", "ια", "ι", "ιο"}},
	{"οσ", []string{"η", "ουσ", "ου", "οι", "ων"}},
	{"οι", []string{"οσ", "ου", "ων"}},
	{"εισ", []string{"η", "ησ", "εων"}},
	{"εσ", []string{"η", "ασ", "ων", "ησ", "α"}},
	{"ησ", []string{"ων", "εσ", "η", "εων"}},
	{"ων", []string{"οσ", "εσ", "α", "η", "ησ", "ου", "οι", "ο", "α"}},
	{"ου", []string{"ων", "α", "ο", "οσ"}},
	{"ο", []string{"α", "ου", "εων", "ων"}},
	{"η", []string{"οσ", "ουσ", "εων", "εισ", "ησ", "ων"}},
	{"α", []string{"ο", "ου", "ων", "ασ", "εσ"}},
	{"ι", []string{"ιου", "ια", "ιων"}},
})

func init() {
	if err := verifyTables(); err != nil {
		panic("greeklish: " + err.Error())
	}
}

// verifyTables checks that the mapping tables are total over the alphabet
// and the digraph placeholders, so generation can never meet an unmapped
// character.
func verifyTables() error {
	for _, m := range []struct {
		name  string
		table *RuleTable[rune]
	}{
		{"default", defaultMapping},
		{"special", specialMapping},
	} {
		if err := checkMapping(m.table); err != nil {
			return fmt.Errorf("%s mapping: %w", m.name, err)
		}
	}
	for i := 0; i < digraphs.Len(); i++ {
		for _, r := range digraphs.rules[i].Key {
			if !isGreekLetter(r) {
				return fmt.Errorf("digraph %q: %q is outside the alphabet", digraphs.rules[i].Key, r)
			}
		}
	}
	for i := 0; i < suffixRules.Len(); i++ {
		r := suffixRules.rules[i]
		for _, s := range append([]string{r.Key}, r.Replacements...) {
			if !IsTransliterable(s) {
				return fmt.Errorf("suffix rule %q: %q is outside the alphabet", r.Key, s)
			}
		}
	}
	return nil
}

func checkMapping(t *RuleTable[rune]) error {
	for _, r := range Alphabet {
		if _, ok := t.Lookup(r); !ok {
			return fmt.Errorf("no entry for %q", r)
		}
	}
	for i := 0; i < digraphs.Len(); i++ {
		p := []rune(digraphs.rules[i].Replacements[0])[0]
		if _, ok := t.Lookup(p); !ok {
			return fmt.Errorf("no entry for digraph %q", digraphs.rules[i].Key)
		}
	}
	return nil
}

// Mapping returns the character table selected by the special-mapping toggle.
func Mapping(special bool) *RuleTable[rune] {
	if special {
		return specialMapping
	}
	return defaultMapping
}

// Digraphs returns the declared digraph table, mapping each pair to its
// placeholder.
func Digraphs() *RuleTable[string] { return digraphs }

// SuffixRules returns the ordered reverse-stemmer rules.
func SuffixRules() *RuleTable[string] { return suffixRules }
