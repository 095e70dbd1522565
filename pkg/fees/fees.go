// Package fees provides permit fee estimation from a YAML fee schedule.
//
// Fee schedules are static data owned by each jurisdiction: a flat base fee
// per project type plus an optional rate per $1,000 of project valuation,
// bounded below by a minimum. Estimates are indicative, not quotes.
package fees

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ErrJurisdictionUnknown is returned when a jurisdiction has no fee schedule.
var ErrJurisdictionUnknown = errors.New("no fee schedule for jurisdiction")

// ErrNoFeeRule is returned when a jurisdiction has no rule for a project type.
var ErrNoFeeRule = errors.New("no fee rule for project type")

// Rule is the fee formula for one project type in one jurisdiction.
type Rule struct {
	// Flat is the base fee charged regardless of valuation.
	Flat float64 `yaml:"flat"`

	// PerThousand is charged per $1,000 of project valuation.
	PerThousand float64 `yaml:"per_thousand"`

	// Minimum bounds the total from below. Zero means no minimum.
	Minimum float64 `yaml:"minimum"`
}

// Estimate is the result of a fee lookup.
type Estimate struct {
	Jurisdiction string  `json:"jurisdiction"`
	ProjectType  string  `json:"project_type"`
	Valuation    float64 `json:"valuation"`
	Total        float64 `json:"total"`
}

// Schedule holds fee rules keyed by jurisdiction, then project type.
type Schedule struct {
	rules map[string]map[string]Rule
}

// scheduleFile is the YAML document shape.
type scheduleFile struct {
	Jurisdictions map[string]map[string]Rule `yaml:"jurisdictions"`
}

// Load reads a fee schedule from a YAML file.
func Load(path string) (*Schedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fee schedule: %w", err)
	}
	return Parse(data)
}

// Parse builds a schedule from YAML bytes.
func Parse(data []byte) (*Schedule, error) {
	var file scheduleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse fee schedule: %w", err)
	}
	if len(file.Jurisdictions) == 0 {
		return nil, fmt.Errorf("fee schedule has no jurisdictions")
	}
	return &Schedule{rules: file.Jurisdictions}, nil
}

// Estimate computes the fee for a project type in a jurisdiction at a given
// valuation. Totals are rounded to whole cents.
func (s *Schedule) Estimate(jurisdiction, projectType string, valuation float64) (Estimate, error) {
	byType, ok := s.rules[jurisdiction]
	if !ok {
		return Estimate{}, fmt.Errorf("%w: %s", ErrJurisdictionUnknown, jurisdiction)
	}
	rule, ok := byType[projectType]
	if !ok {
		return Estimate{}, fmt.Errorf("%w: %s", ErrNoFeeRule, projectType)
	}

	total := rule.Flat + rule.PerThousand*valuation/1000
	if total < rule.Minimum {
		total = rule.Minimum
	}
	total = math.Round(total*100) / 100

	return Estimate{
		Jurisdiction: jurisdiction,
		ProjectType:  projectType,
		Valuation:    valuation,
		Total:        total,
	}, nil
}

// Jurisdictions returns the covered jurisdiction IDs in sorted order.
func (s *Schedule) Jurisdictions() []string {
	keys := make([]string, 0, len(s.rules))
	for k := range s.rules {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
