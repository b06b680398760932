package hint

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dshills/keywarp/internal/platform"
)

// ErrBadSpec is returned for malformed hint specification lines.
var ErrBadSpec = errors.New("bad hint spec")

// ParseSpec reads "label x y" lines, where x and y are the target center,
// and returns w x h hints centered on them. Blank lines are skipped.
func ParseSpec(r io.Reader, w, h int) ([]platform.Hint, error) {
	var hints []platform.Hint

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: line %d: want \"label x y\"", ErrBadSpec, line)
		}

		label := fields[0]
		if len(label) > platform.MaxLabel {
			return nil, fmt.Errorf("%w: line %d: label %q longer than %d", ErrBadSpec, line, label, platform.MaxLabel)
		}
		x, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: x: %w", ErrBadSpec, line, err)
		}
		y, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: y: %w", ErrBadSpec, line, err)
		}

		hints = append(hints, platform.Hint{X: x - w/2, Y: y - h/2, W: w, H: h, Label: label})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read hint spec: %w", err)
	}
	return hints, nil
}
