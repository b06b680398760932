package loader

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// flatten turns a decoded document into pairs sorted by key. Nested maps
// join their keys with '_', arrays join their items with a space.
func flatten(doc map[string]any) []Pair {
	var pairs []Pair
	flattenInto(&pairs, "", doc)
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Key < pairs[j].Key
	})
	return pairs
}

func flattenInto(pairs *[]Pair, prefix string, m map[string]any) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "_" + k
		}
		if sub, ok := v.(map[string]any); ok {
			flattenInto(pairs, key, sub)
			continue
		}
		*pairs = append(*pairs, Pair{Key: key, Value: scalar(v)})
	}
}

func scalar(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if x {
			return "1"
		}
		return "0"
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1e15 {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case []any:
		parts := make([]string, 0, len(x))
		for _, item := range x {
			parts = append(parts, scalar(item))
		}
		return strings.Join(parts, " ")
	default:
		return fmt.Sprint(x)
	}
}
