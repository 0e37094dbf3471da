// Package design holds the named parts produced by evaluating a script.
package design

import (
	"fmt"

	"github.com/chazu/fidgo/pkg/shape"
)

// DefaultPartName names the part created from a script's final shape
// expression when the script defines no parts itself.
const DefaultPartName = "main"

// Part is a named shape.
type Part struct {
	Name  string      `json:"name"`
	Shape shape.Shape `json:"-"`
}

// Design is an ordered collection of parts. Each evaluation produces a new
// Design; it is not mutated once returned to callers.
type Design struct {
	parts     []*Part
	nameIndex map[string]*Part
}

// New creates an empty Design.
func New() *Design {
	return &Design{nameIndex: make(map[string]*Part)}
}

// AddPart appends a part. It does not check for duplicates; Validate
// reports them. Lookup returns the first part with a given name.
func (d *Design) AddPart(name string, s shape.Shape) *Part {
	p := &Part{Name: name, Shape: s}
	d.parts = append(d.parts, p)
	if _, ok := d.nameIndex[name]; !ok {
		d.nameIndex[name] = p
	}
	return p
}

// Lookup returns the part with the given name, or nil.
func (d *Design) Lookup(name string) *Part {
	return d.nameIndex[name]
}

// MustLookup returns the part with the given name, or panics.
func (d *Design) MustLookup(name string) *Part {
	p := d.Lookup(name)
	if p == nil {
		panic(fmt.Sprintf("design: no part named %q", name))
	}
	return p
}

// Parts returns the parts in definition order.
func (d *Design) Parts() []*Part {
	out := make([]*Part, len(d.parts))
	copy(out, d.parts)
	return out
}

// PartCount returns the number of parts.
func (d *Design) PartCount() int {
	return len(d.parts)
}
