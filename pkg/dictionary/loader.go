// Package dictionary loads the raw command dictionary that feeds the
// tree normalizer. The dictionary is a static asset bundled into the
// binary; an on-disk override can be supplied for custom dialects.
// Interpretation of the shape (flat versus nested) is left entirely to
// cmdtree.Build; this package only deserializes.
package dictionary

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-yaml"
)

//go:embed data/commands.yaml
var embeddedDictionary []byte

// Load returns the raw dictionary mapping. With an empty path the
// embedded asset is used; otherwise the file at path replaces it
// wholesale. YAML is a superset of JSON, so both asset styles parse.
func Load(path string) (map[string]any, error) {
	data := embeddedDictionary
	source := "embedded"
	if path != "" {
		fileData, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading dictionary %s: %w", path, err)
		}
		data = fileData
		source = path
	}

	raw, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing dictionary from %s: %w", source, err)
	}
	log.Debugf("loaded dictionary from %s: %d top-level entries", source, len(raw))
	return raw, nil
}

// Parse deserializes dictionary bytes into the generic mapping shape
// the normalizer consumes.
func Parse(data []byte) (map[string]any, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("dictionary is empty")
	}
	return raw, nil
}
