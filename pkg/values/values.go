// Package values holds the raw leaf-value pools the producer draws from.
//
// A pool is partitioned into groups of pre-rendered literals of one kind.
// An order picks one group uniformly and draws every value of the batch
// uniformly from it. Pools without groups, or with empty groups, simply
// offer nothing.
package values

import (
	"github.com/matzehuels/jsonizer/pkg/part"
	"github.com/matzehuels/jsonizer/pkg/random"
)

// Pool is a set of literal groups of a single leaf kind.
type Pool struct {
	kind   part.Kind
	groups [][]string
}

// NewInts builds an integer pool.
func NewInts(groups [][]int64) *Pool {
	return build(part.Int, groups, func(v int64) string { return part.NewInt(v).Value() })
}

// NewDoubles builds a double pool.
func NewDoubles(groups [][]float64) *Pool {
	return build(part.Double, groups, part.FormatDouble)
}

// NewStrings builds a string pool. Values are quoted and escaped once here.
func NewStrings(groups [][]string) *Pool {
	return build(part.String, groups, part.Quote)
}

func build[T any](k part.Kind, groups [][]T, render func(T) string) *Pool {
	p := &Pool{kind: k}
	for _, g := range groups {
		lits := make([]string, 0, len(g))
		for _, v := range g {
			lits = append(lits, render(v))
		}
		p.groups = append(p.groups, lits)
	}
	return p
}

// Kind returns the leaf kind of the pool.
func (p *Pool) Kind() part.Kind { return p.kind }

// Groups returns the number of groups.
func (p *Pool) Groups() int { return len(p.groups) }

// Draw returns n unkeyed leaves drawn from one randomly chosen group.
// It returns nil when n <= 0 or the chosen group is empty.
func (p *Pool) Draw(rng *random.Source, n int) []*part.Part {
	if p == nil || n <= 0 || len(p.groups) == 0 {
		return nil
	}
	g := p.groups[rng.IntN(len(p.groups))]
	if len(g) == 0 {
		return nil
	}
	out := make([]*part.Part, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, part.NewLeaf(p.kind, g[rng.IntN(len(g))]))
	}
	return out
}
