package factory

import "github.com/matzehuels/jsonizer/pkg/part"

// Shape selects a container factory's match rule and output kind.
type Shape int

const (
	// SimpleArray accepts unkeyed leaves of one kind.
	SimpleArray Shape = iota
	// SimpleObject accepts keyed leaves of one kind with keys not yet used.
	SimpleObject
	// ArrayOfObjects accepts any object.
	ArrayOfObjects
	// ArrayOfArrays accepts arrays that are empty or whose first child is not
	// itself an array, which bounds nesting depth.
	ArrayOfArrays
	// MixedArray accepts anything.
	MixedArray
	// ObjectOfArrays accepts keyed arrays with keys not yet used.
	ObjectOfArrays
	// ObjectOfObjects accepts keyed objects with keys not yet used.
	ObjectOfObjects
	// MixedObject accepts any keyed part with a key not yet used.
	MixedObject
)

var shapeNames = [...]string{
	SimpleArray:     "simple-array",
	SimpleObject:    "simple-object",
	ArrayOfObjects:  "array-of-objects",
	ArrayOfArrays:   "array-of-arrays",
	MixedArray:      "mixed-array",
	ObjectOfArrays:  "object-of-arrays",
	ObjectOfObjects: "object-of-objects",
	MixedObject:     "mixed-object",
}

func (s Shape) String() string {
	if s < 0 || int(s) >= len(shapeNames) {
		return "unknown"
	}
	return shapeNames[s]
}

// Target returns the kind of container the shape produces.
func (s Shape) Target() part.Kind {
	switch s {
	case SimpleObject, ObjectOfArrays, ObjectOfObjects, MixedObject:
		return part.Object
	}
	return part.Array
}
