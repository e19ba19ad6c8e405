package profile

import (
	"fmt"
	"os"

	"github.com/hazyhaar/greeklish/pkg/greeklish"
	"gopkg.in/yaml.v3"
)

// Manifest describes a filter profile: the generation settings of one
// greeklish filter definition.
type Manifest struct {
	ID                string `yaml:"id" json:"id"`
	Description       string `yaml:"description" json:"description,omitempty"`
	MaxExpansions     int    `yaml:"max_expansions" json:"max_expansions"`
	GreekVariants     bool   `yaml:"greek_variants" json:"greek_variants"`
	UseSpecialMapping bool   `yaml:"use_special_mapping" json:"use_special_mapping"`
	Normalize         string `yaml:"normalize" json:"normalize"`
}

// DefaultManifest returns the settings of the built-in profile. Fields absent
// from a manifest file keep these values.
func DefaultManifest() *Manifest {
	cfg := greeklish.DefaultConfig()
	return &Manifest{
		ID:                DefaultID,
		Description:       "built-in greeklish filter",
		MaxExpansions:     cfg.MaxExpansions,
		GreekVariants:     cfg.GenerateVariants,
		UseSpecialMapping: cfg.UseSpecialMapping,
		Normalize:         NormalizeModeNone,
	}
}

// LoadManifest reads and parses a profile YAML file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return m, nil
}

// ParseManifest decodes a manifest, applies defaults and validates it.
func ParseManifest(data []byte) (*Manifest, error) {
	m := DefaultManifest()
	m.ID = ""
	m.Description = ""
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate rejects settings the generator must never see.
func (m *Manifest) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("missing id")
	}
	if err := m.Config().Validate(); err != nil {
		return fmt.Errorf("profile %s: %w", m.ID, err)
	}
	if _, ok := normalizers[m.Normalize]; !ok {
		return fmt.Errorf("profile %s: unknown normalizer %q", m.ID, m.Normalize)
	}
	return nil
}

// Config converts the manifest to generator settings.
func (m *Manifest) Config() greeklish.Config {
	return greeklish.Config{
		MaxExpansions:     m.MaxExpansions,
		GenerateVariants:  m.GreekVariants,
		UseSpecialMapping: m.UseSpecialMapping,
	}
}
