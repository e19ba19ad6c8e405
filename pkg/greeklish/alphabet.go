package greeklish

var alphabetSet = func() map[rune]struct{} {
	set := make(map[rune]struct{}, len(Alphabet))
	for _, r := range Alphabet {
		set[r] = struct{}{}
	}
	return set
}()

func isGreekLetter(r rune) bool {
	_, ok := alphabetSet[r]
	return ok
}

// IsTransliterable reports whether word is non-empty and made only of the
// lowercase letters in Alphabet. Uppercase, accented, Latin and digit
// characters all fail the check.
func IsTransliterable(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !isGreekLetter(r) {
			return false
		}
	}
	return true
}
