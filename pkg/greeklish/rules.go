package greeklish

import (
	"fmt"
	"strconv"
)

// Rule maps a key (suffix, digraph or character) to its ordered replacements.
type Rule[K comparable] struct {
	Key          K
	Replacements []string
}

// RuleTable is an immutable, ordered lookup table built once from a literal
// list of rules. Declaration order is kept for callers that scan it
// (first-match-wins suffix rules); Lookup is by exact key.
type RuleTable[K comparable] struct {
	rules []Rule[K]
	index map[K]int
}

// NewRuleTable validates rules and builds the lookup index.
// Every key must be unique and carry at least one non-empty replacement.
func NewRuleTable[K comparable](rules []Rule[K]) (*RuleTable[K], error) {
	t := &RuleTable[K]{
		rules: make([]Rule[K], 0, len(rules)),
		index: make(map[K]int, len(rules)),
	}
	for _, r := range rules {
		if _, dup := t.index[r.Key]; dup {
			return nil, fmt.Errorf("duplicate rule key %s", quoteKey(r.Key))
		}
		if len(r.Replacements) == 0 {
			return nil, fmt.Errorf("rule %s: no replacements", quoteKey(r.Key))
		}
		repl := make([]string, len(r.Replacements))
		for i, s := range r.Replacements {
			if s == "" {
				return nil, fmt.Errorf("rule %s: empty replacement at %d", quoteKey(r.Key), i)
			}
			repl[i] = s
		}
		t.index[r.Key] = len(t.rules)
		t.rules = append(t.rules, Rule[K]{Key: r.Key, Replacements: repl})
	}
	return t, nil
}

func quoteKey[K comparable](k K) string {
	switch v := any(k).(type) {
	case rune:
		return strconv.QuoteRune(v)
	case string:
		return strconv.Quote(v)
	}
	return fmt.Sprint(k)
}

// MustRuleTable is like NewRuleTable but panics on invalid rules.
// It is meant for package-level table literals.
func MustRuleTable[K comparable](rules []Rule[K]) *RuleTable[K] {
	t, err := NewRuleTable(rules)
	if err != nil {
		panic("greeklish: " + err.Error())
	}
	return t
}

// Lookup returns the replacements registered for key.
// The returned slice is shared and must not be modified.
func (t *RuleTable[K]) Lookup(key K) ([]string, bool) {
	i, ok := t.index[key]
	if !ok {
		return nil, false
	}
	return t.rules[i].Replacements, true
}

// Len returns the number of rules.
func (t *RuleTable[K]) Len() int { return len(t.rules) }

// At returns the i-th rule in declaration order.
func (t *RuleTable[K]) At(i int) Rule[K] {
	r := t.rules[i]
	return Rule[K]{Key: r.Key, Replacements: append([]string(nil), r.Replacements...)}
}

// with returns a copy of t where the given rules replace existing entries
// in place; keys not yet present are appended.
func (t *RuleTable[K]) with(overrides []Rule[K]) *RuleTable[K] {
	rules := make([]Rule[K], len(t.rules))
	copy(rules, t.rules)
	for _, o := range overrides {
		if i, ok := t.index[o.Key]; ok {
			rules[i] = o
			continue
		}
		rules = append(rules, o)
	}
	return MustRuleTable(rules)
}
