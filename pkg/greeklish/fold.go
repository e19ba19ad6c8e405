package greeklish

// Fold replaces every digraph of word with its placeholder rune, scanning
// left to right without overlap, and returns the resulting characters.
// A folded pair is never split again, so "γγκ" folds to [γγ-placeholder, κ].
func Fold(word string) []rune {
	in := []rune(word)
	out := make([]rune, 0, len(in))
	for i := 0; i < len(in); i++ {
		if i+1 < len(in) {
			if seconds, ok := digraphIndex[in[i]]; ok {
				if p, ok := seconds[in[i+1]]; ok {
					out = append(out, p)
					i++
					continue
				}
			}
		}
		out = append(out, in[i])
	}
	return out
}
