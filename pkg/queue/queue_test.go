package queue

import (
	"sync"
	"testing"

	"github.com/matzehuels/jsonizer/pkg/part"
)

func TestFIFO(t *testing.T) {
	var q Queue
	if !q.Empty() {
		t.Fatal("zero queue should be empty")
	}
	if _, ok := q.Front(); ok {
		t.Error("Front on empty queue should report false")
	}

	a, b, c := part.NewInt(1), part.NewInt(2), part.NewInt(3)
	q.PushBack(a)
	q.PushBackAll([]*part.Part{b, nil, c})
	q.PushBack(nil)

	if q.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", q.Len())
	}
	if p, _ := q.Front(); p != a {
		t.Error("Front should return the first pushed part")
	}

	q.PopFront()
	if p, ok := q.TryGet(); !ok || p != b {
		t.Error("TryGet should return the second part")
	}
	if p, _ := q.Front(); p != c {
		t.Error("Front should return the third part")
	}
}

func TestRotate(t *testing.T) {
	var q Queue
	a, b := part.NewInt(1), part.NewInt(2)
	q.PushBackAll([]*part.Part{a, b})

	q.Rotate()
	if p, _ := q.Front(); p != b {
		t.Error("Rotate should move the head to the back")
	}
	got := q.Drain()
	if len(got) != 2 || got[0] != b || got[1] != a {
		t.Errorf("Drain() order wrong: %v", got)
	}
	if !q.Empty() {
		t.Error("queue should be empty after Drain")
	}
}

func TestPopFrontOnEmpty(t *testing.T) {
	var q Queue
	q.PopFront()
	q.Rotate()
	if _, ok := q.TryGet(); ok {
		t.Error("TryGet on empty queue should report false")
	}
}

func TestCompactionKeepsOrder(t *testing.T) {
	var q Queue
	var want []*part.Part
	for i := 0; i < 200; i++ {
		p := part.NewInt(int64(i))
		q.PushBack(p)
		want = append(want, p)
	}
	for i := 0; i < 150; i++ {
		p, ok := q.TryGet()
		if !ok || p != want[i] {
			t.Fatalf("TryGet #%d returned wrong part", i)
		}
	}
	rest := q.Drain()
	if len(rest) != 50 {
		t.Fatalf("Drain() returned %d parts, want 50", len(rest))
	}
	for i, p := range rest {
		if p != want[150+i] {
			t.Fatalf("Drain()[%d] out of order", i)
		}
	}
}

func TestConcurrentTryGetDeliversOnce(t *testing.T) {
	var q Queue
	const n = 1000
	for i := 0; i < n; i++ {
		q.PushBack(part.NewInt(int64(i)))
	}

	var mu sync.Mutex
	seen := make(map[part.Serial]bool)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				p, ok := q.TryGet()
				if !ok {
					return
				}
				mu.Lock()
				if seen[p.Serial()] {
					t.Errorf("part %d delivered twice", p.Serial())
				}
				seen[p.Serial()] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != n {
		t.Errorf("delivered %d parts, want %d", len(seen), n)
	}
}
