package taxonomy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fairyhunter13/ats-matcher/internal/domain"
)

// File is the YAML shape of an external taxonomy override.
type File struct {
	Categories map[string]float64 `yaml:"categories"`
	Skills     []Entry            `yaml:"skills"`
}

// LoadFile reads a YAML taxonomy file and builds a Registry from it.
// Category weights missing from the file fall back to the defaults.
func LoadFile(path string) (*Registry, error) {
	b, err := os.ReadFile(path) //nolint:gosec // Path comes from operator configuration.
	if err != nil {
		return nil, fmt.Errorf("op=taxonomy.LoadFile: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", domain.ErrTaxonomyInvalid, path, err)
	}
	if len(f.Skills) == 0 {
		return nil, fmt.Errorf("%w: %s declares no skills", domain.ErrTaxonomyInvalid, path)
	}
	weights := DefaultCategoryWeights()
	for cat, w := range f.Categories {
		weights[cat] = w
	}
	return Build(f.Skills, weights)
}
