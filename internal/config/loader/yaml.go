package loader

import (
	"gopkg.in/yaml.v3"
)

// parseYAML decodes a YAML mapping and flattens it into pairs.
func parseYAML(source string, data []byte) ([]Pair, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{
			Path:    source,
			Message: err.Error(),
			Err:     err,
		}
	}
	return flatten(doc), nil
}
