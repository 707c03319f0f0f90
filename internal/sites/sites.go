package sites

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Site is one storefront site the service can publish to.
type Site struct {
	SiteID string `yaml:"site_id"`
	Name   string `yaml:"name"`
}

// Table is the static site lookup, read-only at runtime. One key is the
// default used when a request carries no explicit site key.
type Table struct {
	DefaultKey string          `yaml:"default_site"`
	Sites      map[string]Site `yaml:"sites"`
}

// BuiltIn returns the compiled-in site table used when no SITES_FILE is
// configured.
func BuiltIn() Table {
	return Table{
		DefaultKey: "dev",
		Sites: map[string]Site{
			"dev": {
				SiteID: "63a7b738-6d1c-447a-849a-fab973366a06",
				Name:   "Dev Site",
			},
			"kokofresh": {
				SiteID: "a57521a4-3ecd-40b8-852c-462f2af558d2",
				Name:   "kokofresh",
			},
			"byte_catalyst": {
				SiteID: "bc24ec89-d58d-4b00-9c00-997dc4bb2025",
				Name:   "The Byte Catalyst",
			},
		},
	}
}

// LoadFile reads a site table from YAML.
func LoadFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, err
	}
	defer f.Close()

	var t Table
	if err := yaml.NewDecoder(f).Decode(&t); err != nil {
		return Table{}, fmt.Errorf("parse sites file failed: %w", err)
	}

	if err := t.Validate(); err != nil {
		return Table{}, err
	}
	return t, nil
}

func (t Table) Validate() error {
	if len(t.Sites) == 0 {
		return fmt.Errorf("no sites configured")
	}
	if strings.TrimSpace(t.DefaultKey) == "" {
		return fmt.Errorf("default_site is required")
	}
	def, ok := t.Sites[t.DefaultKey]
	if !ok {
		return fmt.Errorf("default site %q not found in configured sites", t.DefaultKey)
	}
	if strings.TrimSpace(def.SiteID) == "" {
		return fmt.Errorf("no site id configured for %q", t.DefaultKey)
	}
	return nil
}

// Get resolves a site by key.
func (t Table) Get(key string) (Site, bool) {
	s, ok := t.Sites[key]
	return s, ok
}

// Default returns the designated default site.
func (t Table) Default() Site {
	return t.Sites[t.DefaultKey]
}

// Resolve returns the site for key, falling back to the default when key is
// empty. Unknown keys are an error so typos do not silently publish to the
// default site.
func (t Table) Resolve(key string) (Site, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return t.Default(), nil
	}
	s, ok := t.Sites[key]
	if !ok {
		return Site{}, fmt.Errorf("unknown site key %q", key)
	}
	return s, nil
}
