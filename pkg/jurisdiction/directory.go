// Package jurisdiction provides the permit-office directory: where to submit
// paperwork for each jurisdiction, loaded from a YAML data file.
package jurisdiction

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ErrOfficeNotFound is returned when a jurisdiction has no directory entry.
var ErrOfficeNotFound = errors.New("permit office not found")

// Office describes where and how to submit permit paperwork.
type Office struct {
	Name             string `yaml:"name" json:"name"`
	Agency           string `yaml:"agency" json:"agency"`
	Address          string `yaml:"address" json:"address"`
	Phone            string `yaml:"phone,omitempty" json:"phone,omitempty"`
	Email            string `yaml:"email,omitempty" json:"email,omitempty"`
	PortalURL        string `yaml:"portal_url,omitempty" json:"portal_url,omitempty"`
	OnlineSubmission bool   `yaml:"online_submission" json:"online_submission"`
}

// Directory maps jurisdiction IDs to permit offices.
type Directory struct {
	offices map[string]Office
}

type directoryFile struct {
	Offices map[string]Office `yaml:"offices"`
}

// Load reads a directory from a YAML file.
func Load(path string) (*Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}
	return Parse(data)
}

// Parse builds a directory from YAML bytes.
func Parse(data []byte) (*Directory, error) {
	var file directoryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse directory: %w", err)
	}
	if len(file.Offices) == 0 {
		return nil, fmt.Errorf("directory has no offices")
	}
	return &Directory{offices: file.Offices}, nil
}

// Get returns the office for a jurisdiction.
func (d *Directory) Get(jurisdictionID string) (Office, error) {
	office, ok := d.offices[jurisdictionID]
	if !ok {
		return Office{}, fmt.Errorf("%w: %s", ErrOfficeNotFound, jurisdictionID)
	}
	return office, nil
}

// List returns the covered jurisdiction IDs in sorted order.
func (d *Directory) List() []string {
	keys := make([]string, 0, len(d.offices))
	for k := range d.offices {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
