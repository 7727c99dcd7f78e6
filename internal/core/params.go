// Package core implements the statement builders, the two-mode renderer and
// the execution path behind the public myquery package.
package core

import (
	"sort"
	"strings"
)

// Params holds named values for a raw WHERE fragment.
// Keys may be written with or without the leading colon.
//
// Example:
//
//	Where("created_at > :since AND status <> :status", Params{
//	    "since":  "2024-01-01",
//	    ":status": "archived",
//	})
type Params map[string]interface{}

// sortedNames returns the normalized parameter names in sorted order.
func (p Params) sortedNames() []string {
	names := make([]string, 0, len(p))
	for k := range p {
		names = append(names, normalizeName(k))
	}
	sort.Strings(names)
	return names
}

// normalized returns a copy of p keyed by names without the leading colon.
func (p Params) normalized() map[string]interface{} {
	out := make(map[string]interface{}, len(p))
	for k, v := range p {
		out[normalizeName(k)] = v
	}
	return out
}

func normalizeName(name string) string {
	return strings.TrimPrefix(name, ":")
}

// Bind is one placeholder name and its value.
type Bind struct {
	Name  string
	Value interface{}
}

// Binds is the ordered bind map produced by a placeholder-mode render.
// Names are unique; setting an existing name replaces its value in place.
type Binds struct {
	list  []Bind
	index map[string]int
}

func newBinds() *Binds {
	return &Binds{index: make(map[string]int)}
}

func (b *Binds) set(name string, value interface{}) {
	if i, ok := b.index[name]; ok {
		b.list[i].Value = value
		return
	}
	b.index[name] = len(b.list)
	b.list = append(b.list, Bind{Name: name, Value: value})
}

func (b *Binds) merge(other *Binds) {
	if other == nil {
		return
	}
	for _, bind := range other.list {
		b.set(bind.Name, bind.Value)
	}
}

// Len returns the number of binds.
func (b *Binds) Len() int {
	return len(b.list)
}

// Get returns the value bound to name (with or without the leading colon).
func (b *Binds) Get(name string) (interface{}, bool) {
	i, ok := b.index[normalizeName(name)]
	if !ok {
		return nil, false
	}
	return b.list[i].Value, true
}

// List returns a copy of the binds in render order.
func (b *Binds) List() []Bind {
	out := make([]Bind, len(b.list))
	copy(out, b.list)
	return out
}

// Names returns the placeholder names in render order, without colons.
func (b *Binds) Names() []string {
	names := make([]string, len(b.list))
	for i, bind := range b.list {
		names[i] = bind.Name
	}
	return names
}

// Values returns the bound values in render order.
func (b *Binds) Values() []interface{} {
	values := make([]interface{}, len(b.list))
	for i, bind := range b.list {
		values[i] = bind.Value
	}
	return values
}

// Map returns the binds as a name → value map.
func (b *Binds) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(b.list))
	for _, bind := range b.list {
		m[bind.Name] = bind.Value
	}
	return m
}
