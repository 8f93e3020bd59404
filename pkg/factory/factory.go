// Package factory implements the pattern-matching factories of the assembly
// line.
//
// A factory looks at the head of the work queue and either takes it or leaves
// the queue untouched. Keyed-pair factories turn unkeyed leaves into keyed
// ones. Container factories accumulate matching heads until a randomly drawn
// target length is reached and then emit an array or object.
//
// The set of factories is closed: [KeyedPair] and [Container], the latter
// parameterized by a [Shape] that selects its match rule. Both satisfy
// [Factory] so the producer can drive them uniformly.
package factory

import (
	"github.com/matzehuels/jsonizer/pkg/keys"
	"github.com/matzehuels/jsonizer/pkg/part"
	"github.com/matzehuels/jsonizer/pkg/random"
)

// Queue is the view of the work queue a factory needs.
type Queue interface {
	Front() (*part.Part, bool)
	PopFront()
}

// Factory inspects the head of a queue and possibly emits a new part.
//
// Take never blocks. It pops at most one part, and only when that part is
// consumed into the factory's output. A nil result means nothing was emitted.
type Factory interface {
	Take(q Queue) *part.Part
}

// KeyedPair wraps unkeyed leaves of one kind into keyed leaves.
type KeyedPair struct {
	kind  part.Kind
	keys  *keys.Allocator
	token keys.Token
}

// NewKeyedPair registers a keyed-pair factory for leaves of kind k.
func NewKeyedPair(k part.Kind, alloc *keys.Allocator) *KeyedPair {
	return &KeyedPair{kind: k, keys: alloc, token: alloc.Register()}
}

// Kind returns the leaf kind the factory accepts.
func (f *KeyedPair) Kind() part.Kind { return f.kind }

// Take pops the head if it is an unkeyed leaf of the factory's kind and
// returns a keyed copy of it.
func (f *KeyedPair) Take(q Queue) *part.Part {
	p, ok := q.Front()
	if !ok || p == nil {
		return nil
	}
	if p.Kind() != f.kind || p.HasKey() || !p.HasValue() {
		return nil
	}
	q.PopFront()
	return p.WithKey(f.keys.Key(f.token))
}

// Container accumulates matching parts into arrays or objects.
type Container struct {
	shape    Shape
	leaf     part.Kind
	minLen   int
	maxLen   int
	expected int
	pending  []*part.Part
	keys     *keys.Allocator
	token    keys.Token
	rng      *random.Source
}

// NewContainer registers a container factory. The leaf kind is only used by
// the simple shapes. Lengths are inclusive; when maxLen <= minLen every
// container has exactly minLen children.
func NewContainer(shape Shape, leaf part.Kind, minLen, maxLen int, alloc *keys.Allocator, rng *random.Source) *Container {
	f := &Container{
		shape:  shape,
		leaf:   leaf,
		minLen: max(minLen, 0),
		maxLen: maxLen,
		keys:   alloc,
		token:  alloc.Register(),
		rng:    rng,
	}
	f.expected = f.drawLen()
	return f
}

// Shape returns the factory's match rule.
func (f *Container) Shape() Shape { return f.shape }

// Expected returns the child count of the container being built.
func (f *Container) Expected() int { return f.expected }

// Pending returns the number of children accumulated so far.
func (f *Container) Pending() int { return len(f.pending) }

// Bounds returns the inclusive child-count range.
func (f *Container) Bounds() (int, int) {
	if f.maxLen <= f.minLen {
		return f.minLen, f.minLen
	}
	return f.minLen, f.maxLen
}

func (f *Container) drawLen() int {
	lo, hi := f.Bounds()
	return f.rng.Between(lo, hi)
}

// Take adopts the head if it matches and emits the container once the
// target length is reached.
func (f *Container) Take(q Queue) *part.Part {
	if len(f.pending) < f.expected {
		if p, ok := q.Front(); ok && f.Match(p) {
			f.pending = append(f.pending, p.Adopt(f.shape.Target()))
			q.PopFront()
		}
		if len(f.pending) < f.expected {
			return nil
		}
	}

	key := f.keys.Key(f.token)
	var out *part.Part
	if f.shape.Target() == part.Array {
		out = part.NewArray(key, f.pending...)
	} else {
		out = part.NewObject(key, f.pending...)
	}
	f.pending = nil
	f.expected = f.drawLen()
	return out
}

// Match reports whether p can be adopted into the container being built.
func (f *Container) Match(p *part.Part) bool {
	if p == nil {
		return false
	}
	switch f.shape {
	case SimpleArray:
		return p.Kind() == f.leaf && !p.HasKey() && p.HasValue()
	case SimpleObject:
		return p.Kind() == f.leaf && p.HasKey() && p.HasValue() && f.unusedKey(p.Key())
	case ArrayOfObjects:
		return p.Kind() == part.Object
	case ArrayOfArrays:
		if p.Kind() != part.Array {
			return false
		}
		c := p.Children()
		return len(c) == 0 || (c[0] != nil && c[0].Kind() != part.Array)
	case MixedArray:
		return true
	case ObjectOfArrays:
		return p.Kind() == part.Array && p.HasKey() && f.unusedKey(p.Key())
	case ObjectOfObjects:
		return p.Kind() == part.Object && p.HasKey() && f.unusedKey(p.Key())
	case MixedObject:
		return p.HasKey() && f.unusedKey(p.Key())
	}
	return false
}

func (f *Container) unusedKey(k string) bool {
	for _, c := range f.pending {
		if c != nil && c.Key() == k {
			return false
		}
	}
	return true
}

var (
	_ Factory = (*KeyedPair)(nil)
	_ Factory = (*Container)(nil)
)
