package profile

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// DefaultID is the id of the built-in profile, always present unless a
// manifest overrides it.
const DefaultID = "greeklish"

// ErrUnknownProfile is returned when a request names a profile that is not
// loaded.
var ErrUnknownProfile = errors.New("unknown profile")

// Registry holds all loaded profiles and serves transliteration queries.
type Registry struct {
	mu        sync.RWMutex
	profiles  map[string]*Profile
	defaultID string
	dir       string
	logger    *slog.Logger
}

// NewRegistry creates a registry holding only the built-in profile.
// Call Load to read manifests from dir.
func NewRegistry(dir string, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registry{dir: dir, defaultID: DefaultID, logger: logger}
	r.profiles = map[string]*Profile{DefaultID: r.builtin()}
	return r
}

func (r *Registry) builtin() *Profile {
	p, err := New(DefaultManifest(), r.logger)
	if err != nil {
		panic("profile: invalid built-in manifest: " + err.Error())
	}
	return p
}

// Load scans the profiles directory and loads every *.yaml and *.yml file.
// A missing directory leaves only the built-in profile. On error the
// previously loaded profiles stay in place.
func (r *Registry) Load() error {
	loaded := map[string]*Profile{DefaultID: r.builtin()}
	sources := make(map[string]string)

	entries, err := os.ReadDir(r.dir)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("read profiles dir %s: %w", r.dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		path := filepath.Join(r.dir, entry.Name())
		m, err := LoadManifest(path)
		if err != nil {
			return fmt.Errorf("load profile %s: %w", entry.Name(), err)
		}
		if prev, dup := sources[m.ID]; dup {
			return fmt.Errorf("profile %s defined in both %s and %s", m.ID, prev, entry.Name())
		}
		p, err := New(m, r.logger)
		if err != nil {
			return fmt.Errorf("load profile %s: %w", entry.Name(), err)
		}
		sources[m.ID] = entry.Name()
		loaded[m.ID] = p
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := loaded[r.defaultID]; !ok {
		return fmt.Errorf("default profile %s no longer defined", r.defaultID)
	}
	r.profiles = loaded
	return nil
}

// Reload reloads all profiles from disk (hot reload).
func (r *Registry) Reload() error {
	return r.Load()
}

// SetDefault selects the profile used when a request names none.
// The profile must already be loaded.
func (r *Registry) SetDefault(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[id]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownProfile, id)
	}
	r.defaultID = id
	return nil
}

// Default returns the id of the default profile.
func (r *Registry) Default() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaultID
}

// Get returns the profile with the given id. An empty id selects the
// default profile.
func (r *Registry) Get(id string) (*Profile, error) {
	r.mu.RLock()
	if id == "" {
		id = r.defaultID
	}
	p, ok := r.profiles[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProfile, id)
	}
	return p, nil
}

// Transliterate converts term with the named profile.
func (r *Registry) Transliterate(term, profileID string) (*Result, error) {
	p, err := r.Get(profileID)
	if err != nil {
		return nil, err
	}
	return p.Transliterate(term), nil
}

// Variants returns the reverse-stemmer candidates of term, normalized by the
// named profile.
func (r *Registry) Variants(term, profileID string) (*VariantsResult, error) {
	p, err := r.Get(profileID)
	if err != nil {
		return nil, err
	}
	return p.Variants(term), nil
}

// Info is the public description of a loaded profile.
type Info struct {
	ID                string `json:"id"`
	Description       string `json:"description,omitempty"`
	MaxExpansions     int    `json:"max_expansions"`
	GreekVariants     bool   `json:"greek_variants"`
	UseSpecialMapping bool   `json:"use_special_mapping"`
	Normalize         string `json:"normalize"`
}

// ListProfiles returns all loaded profiles, sorted by ID.
func (r *Registry) ListProfiles() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]Info, 0, len(r.profiles))
	for _, p := range r.profiles {
		m := p.Manifest
		infos = append(infos, Info{
			ID:                m.ID,
			Description:       m.Description,
			MaxExpansions:     m.MaxExpansions,
			GreekVariants:     m.GreekVariants,
			UseSpecialMapping: m.UseSpecialMapping,
			Normalize:         m.Normalize,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

// Count returns the number of loaded profiles.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.profiles)
}
