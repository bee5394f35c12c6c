package ansimate

import (
	"math/rand"
	"testing"
)

// bruteNearest is the reference implementation the tree must agree
// with, including the smaller-index tie rule.
func bruteNearest(points []ShapeVec, q ShapeVec) int {
	best, bestDist := -1, 0.0
	for i, p := range points {
		d := sqDist(p, q)
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func TestShapeTreeMatchesBruteForce(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	points := make([]ShapeVec, 100)
	for i := range points {
		for d := 0; d < ShapeDims; d++ {
			points[i][d] = rng.Float64()
		}
	}
	tree := newShapeTree(points)

	for i := 0; i < 300; i++ {
		var q ShapeVec
		for d := 0; d < ShapeDims; d++ {
			q[d] = rng.Float64() * 1.2
		}
		got := tree.Nearest(q)
		want := bruteNearest(points, q)
		if sqDist(points[got], q) != sqDist(points[want], q) {
			t.Fatalf("query %v: tree found %d (d=%f), brute force %d (d=%f)",
				q, got, sqDist(points[got], q), want, sqDist(points[want], q))
		}
	}
}

func TestShapeTreeTiesBreakByInsertionOrder(t *testing.T) {
	t.Parallel()

	// Two identical points: the earlier index must win.
	points := []ShapeVec{
		{0.5, 0.5, 0.5, 0.5, 0.5, 0.5},
		{0.5, 0.5, 0.5, 0.5, 0.5, 0.5},
		{0.9, 0.9, 0.9, 0.9, 0.9, 0.9},
	}
	tree := newShapeTree(points)

	if got := tree.Nearest(ShapeVec{0.5, 0.5, 0.5, 0.5, 0.5, 0.5}); got != 0 {
		t.Errorf("tie resolved to index %d, want 0", got)
	}
}

func TestShapeTreeSinglePoint(t *testing.T) {
	t.Parallel()

	tree := newShapeTree([]ShapeVec{{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}})
	if got := tree.Nearest(ShapeVec{0.9, 0.9, 0.9, 0.9, 0.9, 0.9}); got != 0 {
		t.Errorf("single-point tree returned %d", got)
	}
}
