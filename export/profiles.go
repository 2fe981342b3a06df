package export

import (
	"fmt"
	"sort"

	"github.com/c360studio/semonto/vocabulary/relation"
)

// Profile determines which relations and annotations are exported.
type Profile string

const (
	// ProfileCanonical exports canonical relation kinds only, as the OBO
	// serializer does.
	ProfileCanonical Profile = "canonical"

	// ProfileFull exports every relation kind, derived inverses included,
	// and the remaining term annotations.
	ProfileFull Profile = "full"
)

// ProfileConfig contains configuration for an export profile.
type ProfileConfig struct {
	// Name is the profile identifier.
	Name Profile

	// Description describes the profile.
	Description string

	// AllRelations includes relation kinds that are not canonical.
	AllRelations bool

	// Annotations includes the terms' other metadata.
	Annotations bool
}

// Profiles contains the configuration for all available export profiles.
var Profiles = map[Profile]ProfileConfig{
	ProfileCanonical: {
		Name:        ProfileCanonical,
		Description: "Canonical relations, labels and definitions",
	},
	ProfileFull: {
		Name:         ProfileFull,
		Description:  "Every relation kind plus term annotations",
		AllRelations: true,
		Annotations:  true,
	},
}

// GetProfileConfig returns the configuration for a profile, falling back to
// the canonical profile.
func GetProfileConfig(profile Profile) ProfileConfig {
	if config, ok := Profiles[profile]; ok {
		return config
	}
	return Profiles[ProfileCanonical]
}

// ParseProfile validates a profile name.
func ParseProfile(s string) (Profile, error) {
	p := Profile(s)
	if _, ok := Profiles[p]; !ok {
		return "", fmt.Errorf("unknown export profile %q", s)
	}
	return p, nil
}

// ProfileNames returns the available profile names, sorted.
func ProfileNames() []string {
	names := make([]string, 0, len(Profiles))
	for p := range Profiles {
		names = append(names, string(p))
	}
	sort.Strings(names)
	return names
}

// includes reports whether kind is exported under the profile.
func (c ProfileConfig) includes(table *relation.Table, kind relation.Kind) bool {
	return c.AllRelations || table.IsCanonical(kind)
}
