package greeklish

import "strings"

// Variants returns word followed by the sibling inflected forms produced by
// the first suffix rule matching the end of word. The result is always a
// fresh slice starting with the unmodified word; when no rule matches it
// holds only word.
//
// This is a heuristic approximation of noun and adjective inflection
// (nominative, genitive, plural). Forms may repeat and some will not be
// real Greek words.
func Variants(word string) []string {
	for i := 0; i < suffixRules.Len(); i++ {
		rule := suffixRules.rules[i]
		if !strings.HasSuffix(word, rule.Key) {
			continue
		}
		stem := word[:len(word)-len(rule.Key)]
		out := make([]string, 0, 1+len(rule.Replacements))
		out = append(out, word)
		for _, suffix := range rule.Replacements {
			out = append(out, stem+suffix)
		}
		return out
	}
	return []string{word}
}
