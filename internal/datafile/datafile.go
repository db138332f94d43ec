// Package datafile loads the data context a template is rendered against.
//
// The context comes from a YAML or JSON file; when no file is given a
// deterministic demo context is generated instead so templates can always be
// previewed.
package datafile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/partirhq/partir/internal/mockdata"
)

// DemoSeed is the seed used for generated demo contexts. Fixed so repeated
// renders of the same template look identical.
const DemoSeed = 7

// Load reads the data context from path. An empty path yields the generated
// demo context.
func Load(path string) (map[string]interface{}, error) {
	if path == "" {
		return mockdata.Generate(DemoSeed), nil
	}

	raw, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("reading data file: %w", err)
	}

	data := make(map[string]interface{})
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("parsing JSON data file %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("parsing YAML data file %s: %w", path, err)
		}
	}

	return data, nil
}
