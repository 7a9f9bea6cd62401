package kdtree

import "testing"

func TestQueryFindsNearest(t *testing.T) {
	points := [][]float64{
		{0, 0},
		{5, 5},
		{1, 1},
		{9, 9},
		{1, 0},
	}
	tree := New(points)
	got := tree.Query([]float64{0, 0}, 3)
	if len(got) != 3 {
		t.Fatalf("len(got) = %d, want 3", len(got))
	}
	if got[0].Index != 0 {
		t.Fatalf("nearest index = %d, want 0 (exact match)", got[0].Index)
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Dist > got[i].Dist {
			t.Fatalf("results not sorted ascending by distance: %+v", got)
		}
	}
}

func TestQueryKLargerThanTreeReturnsAll(t *testing.T) {
	points := [][]float64{{0}, {1}}
	tree := New(points)
	got := tree.Query([]float64{0}, 5)
	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2", len(got))
	}
}

func TestQueryEmptyTree(t *testing.T) {
	tree := New(nil)
	if got := tree.Query([]float64{0}, 3); got != nil {
		t.Fatalf("expected nil for empty tree, got %v", got)
	}
}

func TestBuildSplitsOnWidestAxis(t *testing.T) {
	// Axis 0 spans 1 unit, axis 1 spans 100 -- the root split must pick
	// axis 1 regardless of depth, not axis 0 by round-robin-at-depth-0.
	points := [][]float64{
		{0, 0},
		{1, 100},
		{0.5, 50},
		{0.2, 20},
	}
	tree := New(points)
	if tree.root.axis != 1 {
		t.Fatalf("root.axis = %d, want 1 (widest-spread axis)", tree.root.axis)
	}
}

func TestWidestAxisBreaksTiesTowardLowestIndex(t *testing.T) {
	points := [][]float64{
		{0, 0, 0},
		{1, 1, 0},
	}
	tree := New(points)
	if tree.root.axis != 0 {
		t.Fatalf("root.axis = %d, want 0 (tie broken toward lowest index)", tree.root.axis)
	}
}
