// Package part defines the node type shared by the production pipeline and
// the rendered documents.
//
// A [Part] is either a leaf carrying a pre-rendered literal (int, double or
// string) or a container (array or object) holding an ordered list of child
// parts. Parts are immutable once built; the only exception is that a part
// adopted into an array loses its key, which happens at most once.
//
// # Ownership
//
// Whichever queue currently holds a part owns it until the part is popped.
// A container exclusively owns its children: a part never appears in two
// containers, nor in two queues, at the same time.
//
// # Rendering
//
// [Part.String] emits compact JSON:
//
//	p := part.NewObject("", part.NewInt(1).WithKey("k"))
//	p.String() // {"k":1}
package part

import (
	"encoding/json"
	"strconv"
	"strings"
	"sync/atomic"
)

// Kind identifies the JSON shape of a part.
type Kind int

const (
	Int Kind = iota
	Double
	String
	Array
	Object
)

// Kinds lists every kind in declaration order.
var Kinds = []Kind{Int, Double, String, Array, Object}

var kindNames = [...]string{
	Int:    "INT",
	Double: "DOUBLE",
	String: "STRING",
	Array:  "ARRAY",
	Object: "OBJECT",
}

// String returns the upper-case kind name used in log lines.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "UNKNOWN"
	}
	return kindNames[k]
}

// IsLeaf reports whether k is one of the terminal value kinds.
func (k Kind) IsLeaf() bool {
	return k == Int || k == Double || k == String
}

// Serial identifies a part in creation order. Serials are never reused.
type Serial uint64

var serials atomic.Uint64

func nextSerial() Serial {
	return Serial(serials.Add(1))
}

// Counts holds the number of terminal values contained in a part, by type.
type Counts struct {
	Ints    int `json:"ints"`
	Doubles int `json:"doubles"`
	Strings int `json:"strings"`
}

// Add returns the element-wise sum of c and o.
func (c Counts) Add(o Counts) Counts {
	return Counts{
		Ints:    c.Ints + o.Ints,
		Doubles: c.Doubles + o.Doubles,
		Strings: c.Strings + o.Strings,
	}
}

// Total returns the number of values across all types.
func (c Counts) Total() int {
	return c.Ints + c.Doubles + c.Strings
}

// Of returns the count for a leaf kind, or 0 for container kinds.
func (c Counts) Of(k Kind) int {
	switch k {
	case Int:
		return c.Ints
	case Double:
		return c.Doubles
	case String:
		return c.Strings
	}
	return 0
}

// Covers reports whether every count in c is at least the one in target.
func (c Counts) Covers(target Counts) bool {
	return c.Ints >= target.Ints && c.Doubles >= target.Doubles && c.Strings >= target.Strings
}

func leafCounts(k Kind) Counts {
	switch k {
	case Int:
		return Counts{Ints: 1}
	case Double:
		return Counts{Doubles: 1}
	case String:
		return Counts{Strings: 1}
	}
	return Counts{}
}

// Part is a leaf value or a container of parts.
type Part struct {
	serial   Serial
	kind     Kind
	key      string
	value    string
	children []*Part
	counts   Counts
}

// NewLeaf creates a leaf of kind k holding the already rendered literal.
// It panics if k is not a leaf kind.
func NewLeaf(k Kind, literal string) *Part {
	if !k.IsLeaf() {
		panic("part: NewLeaf called with container kind " + k.String())
	}
	return &Part{serial: nextSerial(), kind: k, value: literal, counts: leafCounts(k)}
}

// NewInt creates an unkeyed integer leaf.
func NewInt(v int64) *Part {
	return NewLeaf(Int, strconv.FormatInt(v, 10))
}

// NewDouble creates an unkeyed double leaf.
func NewDouble(v float64) *Part {
	return NewLeaf(Double, FormatDouble(v))
}

// NewString creates an unkeyed string leaf. The value is quoted and escaped.
func NewString(v string) *Part {
	return NewLeaf(String, Quote(v))
}

// NewArray creates an array with the given key (empty for none) and children.
func NewArray(key string, children ...*Part) *Part {
	return newContainer(Array, key, children)
}

// NewObject creates an object with the given key (empty for none) and children.
func NewObject(key string, children ...*Part) *Part {
	return newContainer(Object, key, children)
}

func newContainer(k Kind, key string, children []*Part) *Part {
	p := &Part{serial: nextSerial(), kind: k, key: key, children: children}
	if p.children == nil {
		p.children = []*Part{}
	}
	for _, c := range children {
		if c != nil {
			p.counts = p.counts.Add(c.counts)
		}
	}
	return p
}

// WithKey returns a new leaf with the same kind and value and the given key.
// The result has its own serial. WithKey panics on containers.
func (p *Part) WithKey(key string) *Part {
	n := NewLeaf(p.kind, p.value)
	n.key = key
	return n
}

// Adopt prepares p to become a child of a container of kind parent.
// Array elements lose their key.
func (p *Part) Adopt(parent Kind) *Part {
	if parent == Array {
		p.key = ""
	}
	return p
}

// Serial returns the creation-order identifier.
func (p *Part) Serial() Serial { return p.serial }

// Kind returns the JSON shape.
func (p *Part) Kind() Kind { return p.kind }

// Key returns the member name, or "" when the part is unkeyed.
func (p *Part) Key() string { return p.key }

// HasKey reports whether the part carries a member name.
func (p *Part) HasKey() bool { return p.key != "" }

// Value returns the rendered literal of a leaf, or "" for containers.
func (p *Part) Value() string { return p.value }

// HasValue reports whether p is a leaf carrying a literal.
func (p *Part) HasValue() bool { return p.kind.IsLeaf() && p.value != "" }

// IsLeaf reports whether p is a terminal value.
func (p *Part) IsLeaf() bool { return p.kind.IsLeaf() }

// Children returns the ordered children of a container. The slice must not
// be modified.
func (p *Part) Children() []*Part { return p.children }

// Count returns the number of terminal values contained transitively.
func (p *Part) Count() int { return p.counts.Total() }

// Counts returns the per-type number of terminal values contained transitively.
func (p *Part) Counts() Counts { return p.counts }

// String renders p as compact JSON, prefixed with "key": when keyed.
func (p *Part) String() string {
	var b strings.Builder
	p.AppendTo(&b)
	return b.String()
}

// AppendTo appends the rendering of p to b.
func (p *Part) AppendTo(b *strings.Builder) {
	if p.key != "" {
		b.WriteString(Quote(p.key))
		b.WriteByte(':')
	}
	switch p.kind {
	case Array:
		writeChildren(b, '[', ']', p.children)
	case Object:
		writeChildren(b, '{', '}', p.children)
	default:
		b.WriteString(p.value)
	}
}

func writeChildren(b *strings.Builder, open, close byte, children []*Part) {
	b.WriteByte(open)
	first := true
	for _, c := range children {
		if c == nil {
			continue
		}
		if !first {
			b.WriteByte(',')
		}
		first = false
		c.AppendTo(b)
	}
	b.WriteByte(close)
}

// Quote renders s as a JSON string literal.
func Quote(s string) string {
	data, err := json.Marshal(s)
	if err != nil {
		return strconv.Quote(s)
	}
	return string(data)
}

// FormatDouble renders v as a JSON number that always reads back as a double.
func FormatDouble(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
