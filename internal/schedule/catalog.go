package schedule

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Catalog is the static, versioned list of offerable appointment times.
// Every entry is an ISO-8601 timestamp carrying the sales-office offset.
// The catalog is loaded once at startup and never mutated at runtime; in
// production the real source of truth is an external scheduling system.
type Catalog struct {
	Version string   `yaml:"version"`
	Slots   []string `yaml:"slots"`
}

// DefaultCatalog returns the compiled-in offer week: Mon-Fri at 10:00,
// 13:00 and 16:00, Saturday at 10:00 and 12:00, all at UTC+10.
func DefaultCatalog() Catalog {
	return Catalog{
		Version: "2025-09-22",
		Slots: []string{
			"2025-09-22T10:00:00+10:00",
			"2025-09-22T13:00:00+10:00",
			"2025-09-22T16:00:00+10:00",
			"2025-09-23T10:00:00+10:00",
			"2025-09-23T13:00:00+10:00",
			"2025-09-23T16:00:00+10:00",
			"2025-09-24T10:00:00+10:00",
			"2025-09-24T13:00:00+10:00",
			"2025-09-24T16:00:00+10:00",
			"2025-09-25T10:00:00+10:00",
			"2025-09-25T13:00:00+10:00",
			"2025-09-25T16:00:00+10:00",
			"2025-09-26T10:00:00+10:00",
			"2025-09-26T13:00:00+10:00",
			"2025-09-26T16:00:00+10:00",
			"2025-09-27T10:00:00+10:00",
			"2025-09-27T12:00:00+10:00",
		},
	}
}

// LoadCatalog reads a yaml slot catalog, falling back to the compiled-in
// catalog when path is empty.
func LoadCatalog(path string) (Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("slot catalog read: %w", err)
	}

	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return Catalog{}, fmt.Errorf("slot catalog parse: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

func (c Catalog) Validate() error {
	if len(c.Slots) == 0 {
		return fmt.Errorf("slot catalog: at least one slot is required")
	}
	for _, s := range c.Slots {
		if _, err := time.Parse(time.RFC3339, s); err != nil {
			return fmt.Errorf("slot catalog: slot %q is not a valid timestamp: %w", s, err)
		}
	}
	return nil
}

// First returns the default offer when the caller has no preference.
func (c Catalog) First() string {
	if len(c.Slots) == 0 {
		return ""
	}
	return c.Slots[0]
}
