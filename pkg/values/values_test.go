package values

import (
	"testing"

	"github.com/matzehuels/jsonizer/pkg/part"
	"github.com/matzehuels/jsonizer/pkg/random"
)

func TestDrawFromOneGroup(t *testing.T) {
	p := NewInts([][]int64{{1, 2, 3}, {110, 111, 112}})
	rng := random.New(7)

	for round := 0; round < 20; round++ {
		got := p.Draw(rng, 10)
		if len(got) != 10 {
			t.Fatalf("Draw() returned %d parts, want 10", len(got))
		}
		small := len(got[0].Value()) == 1
		for _, leaf := range got {
			if leaf.Kind() != part.Int || leaf.HasKey() {
				t.Fatalf("unexpected leaf %v", leaf)
			}
			if (len(leaf.Value()) == 1) != small {
				t.Fatalf("batch mixes groups: %v", got)
			}
		}
	}
}

func TestDrawRendersLiterals(t *testing.T) {
	rng := random.New(1)

	d := NewDoubles([][]float64{{0.5}}).Draw(rng, 1)
	if len(d) != 1 || d[0].Value() != "0.5" || d[0].Kind() != part.Double {
		t.Errorf("double draw = %v", d)
	}
	s := NewStrings([][]string{{"A-0001"}}).Draw(rng, 1)
	if len(s) != 1 || s[0].Value() != `"A-0001"` {
		t.Errorf("string draw = %v", s)
	}
}

func TestEmptyPoolsOfferNothing(t *testing.T) {
	rng := random.New(1)
	tests := []struct {
		name string
		pool *Pool
		n    int
	}{
		{"no groups", NewInts(nil), 3},
		{"empty group", NewStrings([][]string{{}}), 3},
		{"nil pool", nil, 3},
		{"zero count", NewInts([][]int64{{1}}), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pool.Draw(rng, tt.n); got != nil {
				t.Errorf("Draw() = %v, want nil", got)
			}
		})
	}
}
