package profile

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizer transforms a term before the alphabet check.
type Normalizer func(string) string

// Normalizer modes accepted in a manifest.
const (
	NormalizeModeNone           = "none"
	NormalizeModeGreekLowercase = "greek_lowercase"
)

var normalizers = map[string]Normalizer{
	"":                          NormalizeNone,
	NormalizeModeNone:           NormalizeNone,
	NormalizeModeGreekLowercase: NormalizeGreekLowercase,
}

// NormalizeNone returns the term unchanged.
func NormalizeNone(s string) string {
	return s
}

// NormalizeGreekLowercase lowercases with Greek rules, strips tonos and
// dialytika, and folds final sigma (e.g. ΚΑΛΆΘΙ -> καλαθι, Δρόμος -> δρομοσ).
func NormalizeGreekLowercase(s string) string {
	// Casers and chains keep state, so each call builds its own.
	t := transform.Chain(
		cases.Lower(language.Greek),
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Map(foldFinalSigma),
		norm.NFC,
	)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

func foldFinalSigma(r rune) rune {
	if r == 'ς' {
		return 'σ'
	}
	return r
}

// GetNormalizer returns the normalizer for the given mode.
// Unknown modes fall back to none.
func GetNormalizer(mode string) Normalizer {
	if n, ok := normalizers[mode]; ok {
		return n
	}
	return NormalizeNone
}
