package statute

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotIdempotent is returned when a mapping table would rewrite one of its
// own normalized values.
var ErrNotIdempotent = errors.New("mapping is not idempotent")

// Normalizer renames raw headers and raw statute-type labels to their
// normalized form. Unmapped entries pass through unchanged: normalization is
// best effort, not validation.
type Normalizer struct {
	headers map[string]string
	types   map[string]string
}

// NewNormalizer builds a Normalizer from the header map and the statute map.
// Either map may be nil.
func NewNormalizer(headers, types map[string]string) *Normalizer {
	return &Normalizer{headers: headers, types: types}
}

// Header returns the normalized name for a raw column header.
func (n *Normalizer) Header(raw string) string {
	if n == nil {
		return raw
	}
	if mapped, ok := n.headers[raw]; ok {
		return mapped
	}
	return raw
}

// Type returns the normalized statute type for a raw Type cell.
func (n *Normalizer) Type(raw string) Type {
	if n == nil {
		return Type(raw)
	}
	if mapped, ok := n.types[raw]; ok {
		return Type(mapped)
	}
	return Type(raw)
}

// Headers normalizes a whole header row.
func (n *Normalizer) Headers(raw []string) []string {
	out := make([]string, len(raw))
	for i, h := range raw {
		out[i] = n.Header(h)
	}
	return out
}

// CheckIdempotent verifies that normalizing an already-normalized value
// returns it unchanged: every value that is also a key must map to itself.
func CheckIdempotent(name string, m map[string]string) error {
	var bad []string
	for _, v := range m {
		if again, ok := m[v]; ok && again != v {
			bad = append(bad, fmt.Sprintf("%q -> %q", v, again))
		}
	}
	if len(bad) == 0 {
		return nil
	}
	sort.Strings(bad)
	return fmt.Errorf("%s: %w: %s", name, ErrNotIdempotent, strings.Join(bad, ", "))
}
