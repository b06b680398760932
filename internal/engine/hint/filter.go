package hint

import (
	"strings"

	"github.com/dshills/keywarp/internal/platform"
)

// Filter returns the hints whose label starts with prefix. Matching is
// case sensitive.
func Filter(hints []platform.Hint, prefix string) []platform.Hint {
	out := make([]platform.Hint, 0, len(hints))
	for _, h := range hints {
		if strings.HasPrefix(h.Label, prefix) {
			out = append(out, h)
		}
	}
	return out
}
