package perfdata

import (
	"fmt"
	"iter"
	"regexp"
	"strings"
)

// Table holds monitors in insertion order with unique names.
type Table struct {
	byName map[string]*Monitor
	order  []*Monitor
}

func newTable() *Table {
	return &Table{byName: make(map[string]*Monitor)}
}

// add inserts m unless a monitor with the same name is already present.
func (t *Table) add(m *Monitor) bool {
	if _, ok := t.byName[m.name]; ok {
		return false
	}
	t.byName[m.name] = m
	t.order = append(t.order, m)
	return true
}

// Get returns the monitor with the given name.
func (t *Table) Get(name string) (*Monitor, bool) {
	m, ok := t.byName[name]
	return m, ok
}

// Len returns the number of monitors, pseudo-monitors included.
func (t *Table) Len() int { return len(t.order) }

// Monitors returns a copy of the monitors in insertion order.
func (t *Table) Monitors() []*Monitor {
	out := make([]*Monitor, len(t.order))
	copy(out, t.order)
	return out
}

// All iterates the monitors in insertion order.
func (t *Table) All() iter.Seq[*Monitor] {
	return func(yield func(*Monitor) bool) {
		for _, m := range t.order {
			if !yield(m) {
				return
			}
		}
	}
}

// FindByPattern returns the monitors whose names match pattern at their
// start, in insertion order. The match need not cover the whole name.
func (t *Table) FindByPattern(pattern string) ([]*Monitor, error) {
	re, err := regexp.Compile(`^(?:` + pattern + `)`)
	if err != nil {
		return nil, fmt.Errorf("monitor pattern %q: %w", pattern, err)
	}
	var out []*Monitor
	for _, m := range t.order {
		if re.MatchString(m.name) {
			out = append(out, m)
		}
	}
	return out, nil
}

// FindByPrefix returns the monitors whose names start with prefix.
func (t *Table) FindByPrefix(prefix string) []*Monitor {
	var out []*Monitor
	for _, m := range t.order {
		if strings.HasPrefix(m.name, prefix) {
			out = append(out, m)
		}
	}
	return out
}
