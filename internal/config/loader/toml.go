package loader

import (
	"github.com/pelletier/go-toml/v2"
)

// parseTOML decodes TOML data and flattens it into pairs.
//
//	speed = 300
//	[grid]
//	nr = 3
//	keys = ["u", "i", "j", "k"]
//
// yields speed=300, grid_keys="u i j k", grid_nr=3.
func parseTOML(source string, data []byte) ([]Pair, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{
			Path:    source,
			Message: err.Error(),
			Err:     err,
		}
	}
	return flatten(doc), nil
}
