package profile

import (
	"log/slog"

	"github.com/hazyhaar/greeklish/pkg/greeklish"
)

// Profile is one loaded filter definition: its manifest, its normalizer and
// a converter bound to its settings.
type Profile struct {
	Manifest  *Manifest
	normalize Normalizer
	converter *greeklish.Converter
}

// New builds a profile from a validated manifest.
func New(m *Manifest, logger *slog.Logger) (*Profile, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Profile{
		Manifest:  m,
		normalize: GetNormalizer(m.Normalize),
		converter: greeklish.NewConverter(m.Config(), logger.With("profile", m.ID)),
	}, nil
}

// Result is the response for a single term.
type Result struct {
	Term       string   `json:"term"`
	Normalized string   `json:"normalized"`
	Profile    string   `json:"profile"`
	Applicable bool     `json:"applicable"`
	Spellings  []string `json:"spellings"`
}

// VariantsResult lists the candidate Greek words generated for a term.
type VariantsResult struct {
	Term       string   `json:"term"`
	Normalized string   `json:"normalized"`
	Applicable bool     `json:"applicable"`
	Variants   []string `json:"variants"`
}

// NormalizeTerm applies this profile's normalizer to a term.
func (p *Profile) NormalizeTerm(term string) string {
	return p.normalize(term)
}

// Convert normalizes term and returns its spellings. It satisfies the
// converter contract of the token filter.
func (p *Profile) Convert(term string) ([]string, bool) {
	return p.converter.Convert(p.normalize(term))
}

// Transliterate returns the spellings of term. Spellings is empty, never
// nil, when the term is not applicable.
func (p *Profile) Transliterate(term string) *Result {
	normalized := p.normalize(term)
	res := &Result{
		Term:       term,
		Normalized: normalized,
		Profile:    p.Manifest.ID,
		Spellings:  []string{},
	}
	if spellings, ok := p.converter.Convert(normalized); ok {
		res.Applicable = true
		res.Spellings = spellings
	}
	return res
}

// Variants returns the reverse-stemmer candidates for term, whether or not
// the profile enables them.
func (p *Profile) Variants(term string) *VariantsResult {
	normalized := p.normalize(term)
	res := &VariantsResult{
		Term:       term,
		Normalized: normalized,
		Variants:   []string{},
	}
	if greeklish.IsTransliterable(normalized) {
		res.Applicable = true
		res.Variants = greeklish.Variants(normalized)
	}
	return res
}
