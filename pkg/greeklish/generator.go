package greeklish

import (
	"errors"
	"fmt"
)

// DefaultMaxExpansions is the per-word spelling budget used when none is
// configured.
const DefaultMaxExpansions = 20

// Config selects how spellings are generated.
type Config struct {
	// MaxExpansions caps the spellings produced for each candidate word.
	// The cap is per word: with variants enabled the total may exceed it.
	MaxExpansions int
	// GenerateVariants enables the reverse stemmer.
	GenerateVariants bool
	// UseSpecialMapping selects the alternate character table.
	UseSpecialMapping bool
}

// DefaultConfig returns the configuration used by the built-in profile.
func DefaultConfig() Config {
	return Config{
		MaxExpansions:    DefaultMaxExpansions,
		GenerateVariants: true,
	}
}

// ErrInvalidMaxExpansions is returned by Config.Validate for a budget below one.
var ErrInvalidMaxExpansions = errors.New("max_expansions must be greater than zero")

// Validate rejects configurations that callers should not pass to the
// generator. The generator itself tolerates them.
func (c Config) Validate() error {
	if c.MaxExpansions <= 0 {
		return fmt.Errorf("%w (got %d)", ErrInvalidMaxExpansions, c.MaxExpansions)
	}
	return nil
}

// Generate folds and expands every candidate word in order and concatenates
// the results. Each word is expanded with its own budget of
// cfg.MaxExpansions spellings and duplicates across words are kept.
func Generate(words []string, cfg Config) []string {
	table := Mapping(cfg.UseSpecialMapping)
	var out []string
	for _, w := range words {
		out = append(out, Expand(Fold(w), table, cfg.MaxExpansions)...)
	}
	return out
}

// Transliterate returns the Latin spellings of word. The boolean is false,
// and the slice nil, when word is not made only of lowercase Greek letters;
// otherwise at least one spelling is returned.
func Transliterate(word string, cfg Config) ([]string, bool) {
	if !IsTransliterable(word) {
		return nil, false
	}
	return Generate(candidates(word, cfg), cfg), true
}

func candidates(word string, cfg Config) []string {
	if cfg.GenerateVariants {
		return Variants(word)
	}
	return []string{word}
}
