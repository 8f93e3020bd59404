package factory

import (
	"fmt"
	"testing"

	"github.com/matzehuels/jsonizer/pkg/keys"
	"github.com/matzehuels/jsonizer/pkg/part"
	"github.com/matzehuels/jsonizer/pkg/queue"
	"github.com/matzehuels/jsonizer/pkg/random"
)

func newAlloc(n int) *keys.Allocator {
	stems := make([]string, n)
	for i := range stems {
		stems[i] = fmt.Sprintf("k%d", i)
	}
	return keys.New(stems, 1, random.New(3))
}

func TestKeyedPairAcceptsMatchingLeaf(t *testing.T) {
	alloc := newAlloc(4)
	f := NewKeyedPair(part.Int, alloc)
	alloc.Activate()

	var q queue.Queue
	leaf := part.NewInt(5)
	q.PushBack(leaf)

	out := f.Take(&q)
	if out == nil {
		t.Fatal("Take should emit a keyed leaf")
	}
	if !out.HasKey() || out.Value() != "5" || out.Kind() != part.Int {
		t.Errorf("unexpected output %v", out)
	}
	if !q.Empty() {
		t.Error("accepted leaf should be popped")
	}
}

func TestKeyedPairRejectsWithoutPopping(t *testing.T) {
	alloc := newAlloc(4)
	f := NewKeyedPair(part.Int, alloc)
	alloc.Activate()

	rejects := []*part.Part{
		part.NewDouble(1.5),
		part.NewInt(1).WithKey("already"),
		part.NewArray(""),
	}
	for _, p := range rejects {
		var q queue.Queue
		q.PushBack(p)
		if out := f.Take(&q); out != nil {
			t.Errorf("Take(%v) emitted %v", p, out)
		}
		if head, _ := q.Front(); head != p {
			t.Errorf("Take(%v) changed the queue", p)
		}
	}

	var empty queue.Queue
	if f.Take(&empty) != nil {
		t.Error("Take on empty queue should emit nothing")
	}
}

func TestContainerMatchRules(t *testing.T) {
	keyedInt := part.NewInt(1).WithKey("a")
	keyedDouble := part.NewDouble(1).WithKey("b")
	intLeaf := part.NewInt(2)
	flatArray := part.NewArray("arr", part.NewInt(1))
	emptyArray := part.NewArray("empty")
	nestedArray := part.NewArray("nested", part.NewArray("", part.NewInt(1)))
	unkeyedArray := part.NewArray("", part.NewInt(1))
	object := part.NewObject("obj")
	unkeyedObject := part.NewObject("")

	tests := []struct {
		shape Shape
		p     *part.Part
		want  bool
	}{
		{SimpleArray, intLeaf, true},
		{SimpleArray, keyedInt, false},
		{SimpleArray, part.NewDouble(1), false},
		{SimpleArray, flatArray, false},
		{SimpleObject, keyedInt, true},
		{SimpleObject, intLeaf, false},
		{SimpleObject, keyedDouble, false},
		{ArrayOfObjects, object, true},
		{ArrayOfObjects, unkeyedObject, true},
		{ArrayOfObjects, flatArray, false},
		{ArrayOfArrays, flatArray, true},
		{ArrayOfArrays, emptyArray, true},
		{ArrayOfArrays, nestedArray, false},
		{ArrayOfArrays, object, false},
		{MixedArray, intLeaf, true},
		{MixedArray, object, true},
		{MixedArray, nil, false},
		{ObjectOfArrays, flatArray, true},
		{ObjectOfArrays, unkeyedArray, false},
		{ObjectOfArrays, object, false},
		{ObjectOfObjects, object, true},
		{ObjectOfObjects, unkeyedObject, false},
		{MixedObject, keyedInt, true},
		{MixedObject, object, true},
		{MixedObject, intLeaf, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%v", tt.shape, tt.p), func(t *testing.T) {
			alloc := newAlloc(4)
			f := NewContainer(tt.shape, part.Int, 3, 3, alloc, random.New(1))
			alloc.Activate()
			if got := f.Match(tt.p); got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContainerRejectsDuplicateKeys(t *testing.T) {
	alloc := newAlloc(4)
	f := NewContainer(SimpleObject, part.String, 3, 3, alloc, random.New(1))
	alloc.Activate()

	var q queue.Queue
	q.PushBack(part.NewString("x").WithKey("dup"))
	q.PushBack(part.NewString("y").WithKey("dup"))

	if f.Take(&q) != nil {
		t.Fatal("nothing should be emitted before the target length")
	}
	if f.Take(&q) != nil {
		t.Fatal("duplicate key should not complete the object")
	}
	if f.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", f.Pending())
	}
	if q.Len() != 1 {
		t.Errorf("duplicate should stay queued, queue has %d parts", q.Len())
	}
}

func TestContainerEmitsAtTargetLength(t *testing.T) {
	alloc := newAlloc(4)
	f := NewContainer(SimpleArray, part.Int, 2, 2, alloc, random.New(1))
	alloc.Activate()

	var q queue.Queue
	for i := 0; i < 3; i++ {
		q.PushBack(part.NewInt(int64(i)))
	}

	if out := f.Take(&q); out != nil {
		t.Fatalf("first Take emitted %v", out)
	}
	out := f.Take(&q)
	if out == nil {
		t.Fatal("second Take should emit the array")
	}
	if out.Kind() != part.Array || len(out.Children()) != 2 || !out.HasKey() {
		t.Errorf("unexpected container %v", out)
	}
	if f.Pending() != 0 {
		t.Error("accumulator should be cleared after emission")
	}
	if q.Len() != 1 {
		t.Errorf("queue has %d parts, want 1", q.Len())
	}
}

func TestArrayAdoptionStripsKeys(t *testing.T) {
	alloc := newAlloc(4)
	f := NewContainer(MixedArray, part.Int, 1, 1, alloc, random.New(1))
	alloc.Activate()

	var q queue.Queue
	q.PushBack(part.NewInt(1).WithKey("gone"))
	out := f.Take(&q)
	if out == nil {
		t.Fatal("Take should emit")
	}
	if out.Children()[0].HasKey() {
		t.Error("array children must be unkeyed")
	}
	if got := out.Children()[0].String(); got != "1" {
		t.Errorf("child rendered as %s", got)
	}
}

func TestContainerLengthsStayInBounds(t *testing.T) {
	for _, bounds := range [][2]int{{1, 1}, {2, 5}, {4, 12}, {3, 2}} {
		alloc := newAlloc(50)
		f := NewContainer(SimpleArray, part.Double, bounds[0], bounds[1], alloc, random.New(uint64(bounds[1])))
		alloc.Activate()
		lo, hi := f.Bounds()

		var q queue.Queue
		emitted := 0
		for i := 0; i < 2000 && emitted < 50; i++ {
			if q.Empty() {
				q.PushBack(part.NewDouble(float64(i)))
			}
			out := f.Take(&q)
			if out == nil {
				continue
			}
			emitted++
			if n := len(out.Children()); n < lo || n > hi {
				t.Fatalf("bounds %v: emitted %d children", bounds, n)
			}
		}
		if emitted == 0 {
			t.Errorf("bounds %v: nothing emitted", bounds)
		}
	}
}

func TestShapeTargets(t *testing.T) {
	arrays := []Shape{SimpleArray, ArrayOfObjects, ArrayOfArrays, MixedArray}
	objects := []Shape{SimpleObject, ObjectOfArrays, ObjectOfObjects, MixedObject}
	for _, s := range arrays {
		if s.Target() != part.Array {
			t.Errorf("%s should build arrays", s)
		}
	}
	for _, s := range objects {
		if s.Target() != part.Object {
			t.Errorf("%s should build objects", s)
		}
	}
}
