package greeklish

import (
	"log/slog"
)

// Converter binds a Config to a logger. It holds no per-call state and is
// safe for concurrent use.
type Converter struct {
	cfg    Config
	table  *RuleTable[rune]
	logger *slog.Logger
}

// NewConverter returns a Converter for cfg. A nil logger uses slog.Default().
func NewConverter(cfg Config, logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("greeklish converter",
		"max_expansions", cfg.MaxExpansions,
		"greek_variants", cfg.GenerateVariants,
		"use_special_mapping", cfg.UseSpecialMapping,
	)
	return &Converter{
		cfg:    cfg,
		table:  Mapping(cfg.UseSpecialMapping),
		logger: logger,
	}
}

// Config returns the converter's configuration.
func (c *Converter) Config() Config { return c.cfg }

// Convert is Transliterate with logging. Candidate words whose expansion
// was cut short by the budget are logged at debug level.
func (c *Converter) Convert(word string) ([]string, bool) {
	if !IsTransliterable(word) {
		c.logger.Debug("token not transliterable", "token", word)
		return nil, false
	}
	var out []string
	for _, w := range candidates(word, c.cfg) {
		spellings, truncated := expand(Fold(w), c.table, c.cfg.MaxExpansions)
		if truncated {
			c.logger.Debug("expansion budget reached", "token", word, "candidate", w, "spellings", len(spellings))
		}
		out = append(out, spellings...)
	}
	return out, true
}
