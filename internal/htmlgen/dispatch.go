package htmlgen

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ginjaninja78/loc-sal-tools/internal/statute"
)

// ErrUnknownFormatter is returned when the generator map names a formatter
// that is not registered.
var ErrUnknownFormatter = errors.New("unknown formatter")

// Dispatch maps statute types to formatters. Build it with NewDispatch so
// every binding is checked once, at configuration time.
type Dispatch struct {
	bindings map[statute.Type]Formatter
	names    map[statute.Type]string

	// roman marks types whose formatter prefixes the title with a numeral.
	roman map[statute.Type]bool
}

// NewDispatch resolves every formatter name in the generator map.
//
// PARAMETERS:
//   - generators: normalized statute type -> formatter name.
//
// RETURNS:
//   - The dispatch table.
//   - ErrUnknownFormatter listing every unresolved binding.
func NewDispatch(generators map[string]string) (*Dispatch, error) {
	d := &Dispatch{
		bindings: make(map[statute.Type]Formatter, len(generators)),
		names:    make(map[statute.Type]string, len(generators)),
		roman:    make(map[statute.Type]bool),
	}

	var unknown []string
	for typ, name := range generators {
		f, ok := Lookup(name)
		if !ok {
			unknown = append(unknown, fmt.Sprintf("%s: %q", typ, name))
			continue
		}
		d.bindings[statute.Type(typ)] = f
		d.names[statute.Type(typ)] = name
		if romanFormatters[name] {
			d.roman[statute.Type(typ)] = true
		}
	}

	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormatter, strings.Join(unknown, ", "))
	}

	return d, nil
}

// For returns the formatter bound to a statute type.
func (d *Dispatch) For(t statute.Type) (Formatter, bool) {
	if d == nil {
		return nil, false
	}
	f, ok := d.bindings[t]
	return f, ok
}

func (d *Dispatch) usesRoman(t statute.Type) bool {
	return d != nil && d.roman[t]
}

// Binding is one statute type and the formatter name it resolves to.
type Binding struct {
	Type      statute.Type
	Formatter string
}

// Bindings lists the table sorted by statute type.
func (d *Dispatch) Bindings() []Binding {
	out := make([]Binding, 0, len(d.names))
	for t, name := range d.names {
		out = append(out, Binding{Type: t, Formatter: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}
