package tensor

// Vector is a 1-D view into a Tensor's shared storage: the cells at
// offset, offset+stride, offset+2*stride, ..., length of them. Multiple
// Vectors may share the same underlying storage without overlap so long as
// their (offset, stride) tuples scan disjoint cells -- this is how the
// transition operators apply the same operator independently to every
// slice along one axis.
type Vector struct {
	values []float64
	offset int
	length int
	stride int
}

// NewVector builds a Vector view directly from raw parts. Most callers
// should use Slice instead.
func NewVector(values []float64, offset, length, stride int) Vector {
	return Vector{values: values, offset: offset, length: length, stride: stride}
}

// Len returns the number of entries in the vector.
func (v Vector) Len() int {
	return v.length
}

// At returns entry i.
func (v Vector) At(i int) float64 {
	return v.values[v.offset+i*v.stride]
}

// Set writes entry i.
func (v Vector) Set(i int, x float64) {
	v.values[v.offset+i*v.stride] = x
}

// Sum adds every entry in the vector.
func (v Vector) Sum() float64 {
	var s float64
	for i := 0; i < v.length; i++ {
		s += v.At(i)
	}
	return s
}

// Slice fixes every axis of t except axis, producing the 1-D view along
// that axis. fixed must have len(fixed) == t.Order(), with fixed[axis]
// ignored (by convention callers pass 0, but any value works since Slice
// only reads the other entries).
func Slice(t *Tensor, axis int, fixed []int) Vector {
	off := 0
	for i, l := range fixed {
		if i == axis {
			continue
		}
		off += l * t.Stride[i]
	}
	return Vector{
		values: t.Values,
		offset: off,
		length: t.Shape[axis],
		stride: t.Stride[axis],
	}
}
