package tensor

import "testing"

func TestTensorAtSet(t *testing.T) {
	tn := New([]int{2, 3})
	tn.Set([]int{1, 2}, 5)
	if got := tn.At([]int{1, 2}); got != 5 {
		t.Fatalf("At = %v, want 5", got)
	}
	if got := tn.At([]int{0, 0}); got != 0 {
		t.Fatalf("At = %v, want 0", got)
	}
}

func TestTensorSum(t *testing.T) {
	tn := New([]int{2, 2})
	tn.Values = []float64{1, 2, 3, 4}
	if got := tn.Sum(); got != 10 {
		t.Fatalf("Sum = %v, want 10", got)
	}
}

func TestSliceAlongAxis(t *testing.T) {
	// shape [2,3]: rows are axis 0, cols axis 1.
	tn := New([]int{2, 3})
	tn.Values = []float64{1, 2, 3, 4, 5, 6}

	row1 := Slice(tn, 1, []int{1, 0}) // fix axis 0 = 1, vary axis 1
	if row1.Len() != 3 {
		t.Fatalf("row1 len = %d, want 3", row1.Len())
	}
	want := []float64{4, 5, 6}
	for i, w := range want {
		if got := row1.At(i); got != w {
			t.Fatalf("row1.At(%d) = %v, want %v", i, got, w)
		}
	}

	col0 := Slice(tn, 0, []int{0, 0}) // fix axis 1 = 0, vary axis 0
	if col0.Len() != 2 {
		t.Fatalf("col0 len = %d, want 2", col0.Len())
	}
	if col0.At(0) != 1 || col0.At(1) != 4 {
		t.Fatalf("col0 = [%v, %v], want [1, 4]", col0.At(0), col0.At(1))
	}
}

func TestRestrictedIteratorRange(t *testing.T) {
	tn := New([]int{4, 2}) // axis0 size T=4
	for i := range tn.Values {
		tn.Values[i] = float64(i)
	}
	it := NewRestrictedIterator(tn, 1) // only axis-0 coords 0,1 are visited
	count := 0
	for it.Next() {
		if it.Loc()[0] > 1 {
			t.Fatalf("visited axis-0 coord %d, want <= 1", it.Loc()[0])
		}
		count++
	}
	if count != 2*2 {
		t.Fatalf("visited %d cells, want 4", count)
	}
}

func TestRestrictedIteratorEmpty(t *testing.T) {
	tn := New([]int{3})
	it := NewRestrictedIterator(tn, -1)
	if it.Next() {
		t.Fatalf("expected no cells for edmans=-1")
	}
}
