package loader

import (
	"bufio"
	"bytes"
	"strings"
)

// parseLines splits the native format. Blank lines, lines starting with
// '#' and lines without a ':' are skipped. Only the first ':' separates
// key from value, so values may themselves contain colons.
func parseLines(data []byte) []Pair {
	var pairs []Pair
	sc := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		k, v, ok := strings.Cut(text, ":")
		if !ok {
			continue
		}
		pairs = append(pairs, Pair{
			Key:   strings.TrimSpace(k),
			Value: strings.TrimSpace(v),
			Line:  line,
		})
	}
	return pairs
}
