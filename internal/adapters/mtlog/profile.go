package mtlog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile adapts a nonstandard statement export to the canonical column set.
// Columns maps export headers onto canonical names, TimeLayouts lists extra
// timestamp layouts tried before the built-in chain, and Delimiter pins the
// field delimiter instead of sniffing it per file.
type Profile struct {
	Columns     map[string]string `yaml:"columns"`
	TimeLayouts []string          `yaml:"time_layouts"`
	Delimiter   string            `yaml:"delimiter"`
}

func (p *Profile) Validate() error {
	known := make(map[string]bool, len(canonicalColumns))
	for _, name := range canonicalColumns {
		known[name] = true
	}
	for alias, canonical := range p.Columns {
		if !known[canonical] {
			return fmt.Errorf("column alias %q maps to unknown column %q", alias, canonical)
		}
	}
	switch p.Delimiter {
	case "", ",", ";":
	default:
		return fmt.Errorf("unsupported delimiter %q: must be \",\" or \";\"", p.Delimiter)
	}
	return nil
}

// LoadProfile reads a report profile from a YAML file.
func LoadProfile(path string) (*Profile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Profile
	if err := yaml.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("profile validation failed: %w", err)
	}
	return &p, nil
}

// delimiterRune returns the pinned delimiter, or 0 when the profile leaves
// the delimiter to be sniffed.
func (p *Profile) delimiterRune() rune {
	if p == nil || p.Delimiter == "" {
		return 0
	}
	return rune(p.Delimiter[0])
}
