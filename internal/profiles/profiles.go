package profiles

import (
	_ "embed"
	"fmt"

	"github.com/benvon/day-planner/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

type seedFile struct {
	Profiles map[string]*models.Profile `yaml:"profiles"`
}

// Seed returns the embedded demo profiles keyed by profile id
func Seed() (map[string]*models.Profile, error) {
	var f seedFile
	if err := yaml.Unmarshal(seedYAML, &f); err != nil {
		return nil, fmt.Errorf("failed to parse profile seed: %w", err)
	}
	if len(f.Profiles) == 0 {
		return nil, fmt.Errorf("profile seed is empty")
	}
	return f.Profiles, nil
}
