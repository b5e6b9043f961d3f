package intent

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// KnowledgePack is the static project fact sheet behind every scripted
// answer. It is loaded once at startup and immutable afterwards; scripted
// compliance answers must never depend on anything that can drift at runtime.
type KnowledgePack struct {
	Project          string `yaml:"project"`
	Suburb           string `yaml:"suburb"`
	Developer        string `yaml:"developer"`
	Builder          string `yaml:"builder"`
	CompletionTarget string `yaml:"completion_target"`
	DisplaySuite     string `yaml:"display_suite"`

	Amenities []string `yaml:"amenities"`

	// StrataPerYear maps a bed count label ("1-bed") to the annual range.
	StrataPerYear map[string]string `yaml:"strata_per_year"`

	DepositTerms string `yaml:"deposit_terms"`
	HandoffEmail string `yaml:"handoff_email"`
}

// DefaultKnowledgePack returns the compiled-in Riverstone Place fact sheet.
func DefaultKnowledgePack() KnowledgePack {
	return KnowledgePack{
		Project:          "Riverstone Place",
		Suburb:           "Abbotsford, VIC",
		Developer:        "Harbourline Developments",
		Builder:          "Apex Construct",
		CompletionTarget: "Q4 2027",
		DisplaySuite:     "123 Swan St, Richmond",
		Amenities: []string{
			"Rooftop pool",
			"Gym",
			"Co-working lounge",
			"Residents' dining",
			"Parcel lockers",
			"EV chargers",
			"Bike storage",
		},
		StrataPerYear: map[string]string{
			"1-bed": "2.8-3.6k/yr",
			"2-bed": "3.6-4.6k/yr",
			"3-bed": "4.8-6.2k/yr",
		},
		DepositTerms: "10% on exchange, 1% pilot holding allowed",
		HandoffEmail: "sales@riverstoneplace.example",
	}
}

// LoadKnowledgePack reads a yaml fact sheet, falling back to the compiled-in
// pack when path is empty.
func LoadKnowledgePack(path string) (KnowledgePack, error) {
	if path == "" {
		return DefaultKnowledgePack(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return KnowledgePack{}, fmt.Errorf("knowledge pack read: %w", err)
	}

	var kp KnowledgePack
	if err := yaml.Unmarshal(raw, &kp); err != nil {
		return KnowledgePack{}, fmt.Errorf("knowledge pack parse: %w", err)
	}
	if err := kp.Validate(); err != nil {
		return KnowledgePack{}, err
	}
	return kp, nil
}

func (kp KnowledgePack) Validate() error {
	if kp.Project == "" {
		return fmt.Errorf("knowledge pack: project is required")
	}
	if kp.CompletionTarget == "" {
		return fmt.Errorf("knowledge pack: completion_target is required")
	}
	if kp.HandoffEmail == "" {
		return fmt.Errorf("knowledge pack: handoff_email is required")
	}
	return nil
}
