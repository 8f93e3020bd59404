// Package keys partitions a pool of member names among the factories that
// need unique keys.
//
// The pool is built from a list of name stems, optionally multiplied by
// appending alphabetic suffixes ("stem", "stem_a" ... "stem_z", "stem_aa" ...).
// Each factory registers once and receives a [Token]; after [Allocator.Activate]
// every token owns a disjoint contiguous slice of the pool, so keys drawn by
// different factories never collide.
package keys

import (
	"github.com/matzehuels/jsonizer/pkg/random"
)

// Token identifies a registered consumer of keys. Tokens are handed out in
// registration order starting at 0 and are never reused.
type Token int

// Allocator hands out keys from per-token slices of a shared pool.
//
// Register and Activate must complete before any concurrent use; afterwards
// the allocator is read-only and Key is safe to call from any goroutine.
type Allocator struct {
	keys   []string
	tokens int
	slice  int
	active bool
	rng    *random.Source
}

// New builds an allocator over stems expanded by multiplier suffix rounds.
// A multiplier of 0 or 1 keeps only the bare stems.
func New(stems []string, multiplier int, rng *random.Source) *Allocator {
	return &Allocator{keys: Expand(stems, multiplier), rng: rng}
}

// Expand returns stems followed by stems suffixed with the first
// multiplier-1 non-empty alphabetic suffixes.
func Expand(stems []string, multiplier int) []string {
	if multiplier < 1 {
		multiplier = 1
	}
	out := make([]string, 0, len(stems)*multiplier)
	for i := 0; i < multiplier; i++ {
		s := Suffix(i)
		for _, stem := range stems {
			if s == "" {
				out = append(out, stem)
			} else {
				out = append(out, stem+"_"+s)
			}
		}
	}
	return out
}

// Suffix renders n in bijective base 26: 0 is "", 1 is "a", 26 is "z",
// 27 is "aa", 702 is "zz", 703 is "aaa".
func Suffix(n int) string {
	var buf []byte
	for n > 0 {
		n--
		buf = append(buf, byte('a'+n%26))
		n /= 26
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// Register reserves a slice of the pool for a new consumer.
// Registering after Activate still returns a fresh token, but its slice wraps
// around the pool and may overlap another token's slice.
func (a *Allocator) Register() Token {
	t := Token(a.tokens)
	a.tokens++
	return t
}

// Activate fixes the slice sizes. Leftover keys fold into the last slice.
// It is safe to call more than once; only the first call has an effect.
func (a *Allocator) Activate() {
	if a.active {
		return
	}
	a.active = true
	if a.tokens == 0 {
		a.slice = len(a.keys)
		return
	}
	a.slice = max(len(a.keys)/a.tokens, 1)
}

// Len returns the size of the expanded pool.
func (a *Allocator) Len() int { return len(a.keys) }

// Tokens returns the number of registered consumers.
func (a *Allocator) Tokens() int { return a.tokens }

// Slice returns the [start,end) bounds of t's slice in the pool.
func (a *Allocator) Slice(t Token) (start, end int) {
	if len(a.keys) == 0 {
		return 0, 0
	}
	if !a.active {
		a.Activate()
	}
	start = (int(t) * a.slice) % len(a.keys)
	end = start + a.slice
	if int(t) == a.tokens-1 || end > len(a.keys) {
		end = len(a.keys)
	}
	return start, end
}

// Key draws a uniformly random key from t's slice.
// It returns "" when the pool is empty.
func (a *Allocator) Key(t Token) string {
	start, end := a.Slice(t)
	if end <= start {
		return ""
	}
	return a.keys[start+a.rng.IntN(end-start)]
}
