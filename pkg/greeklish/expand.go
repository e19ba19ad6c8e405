package greeklish

import "fmt"

// Expand computes the bounded Cartesian product of the Latin renderings of
// every character in folded, looked up in table.
//
// Characters are processed left to right with Extend, starting from a single
// empty spelling. At most max(maxExpansions, 1) spellings are returned; the
// cap limits how many spellings exist, never how long they are.
//
// Expand panics if a character has no entry in table. The package tables are
// total over Alphabet and the digraph placeholders, so this cannot happen
// for words accepted by IsTransliterable.
func Expand(folded []rune, table *RuleTable[rune], maxExpansions int) []string {
	partials, _ := expand(folded, table, maxExpansions)
	return partials
}

// expand is Expand that also reports whether the cap refused a branch.
func expand(folded []rune, table *RuleTable[rune], maxExpansions int) ([]string, bool) {
	partials := []string{""}
	truncated := false
	for _, r := range folded {
		candidates, ok := table.Lookup(r)
		if !ok {
			panic(fmt.Sprintf("greeklish: no mapping for %q", r))
		}
		var cut bool
		partials, cut = extend(partials, candidates, maxExpansions)
		truncated = truncated || cut
	}
	return partials, truncated
}

// Extend performs one expansion step and returns the new frontier.
//
// Every existing partial spelling gets candidates[0] appended in place. For
// each existing partial, in order, a copy ending in each further candidate is
// appended to the frontier, as long as the frontier holds fewer than limit
// spellings. Once the limit is reached no more copies are made, but the
// existing spellings are still extended with the primary candidate.
//
// Extend reuses the backing array of partials.
func Extend(partials []string, candidates []string, limit int) []string {
	partials, _ = extend(partials, candidates, limit)
	return partials
}

// extend is Extend that also reports whether a branch was refused.
func extend(partials []string, candidates []string, limit int) ([]string, bool) {
	if len(candidates) == 0 {
		return partials, false
	}
	primary, rest := candidates[0], candidates[1:]
	truncated := false
	n := len(partials)
	for i := 0; i < n; i++ {
		base := partials[i]
		for _, c := range rest {
			if len(partials) >= limit {
				truncated = true
				break
			}
			partials = append(partials, base+c)
		}
		partials[i] = base + primary
	}
	return partials, truncated
}
