package tessellate

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/hexpanel/hexpanel/internal/core/model"
	"github.com/hexpanel/hexpanel/internal/grid"
)

// unit square, the reference fixture for fill/boundary behavior
var unitSquare = model.Ring{
	{0, 0}, {0, 1}, {1, 1}, {1, 0}, {0, 0},
}

func newEngine(t *testing.T) *Engine {
	t.Helper()
	ix, err := grid.Detect()
	if err != nil {
		t.Fatalf("grid.Detect: %v", err)
	}
	return New(ix)
}

func TestFill_NonEmptyAndIdempotent(t *testing.T) {
	e := newEngine(t)

	fill, err := e.Fill(unitSquare, 7)
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if len(fill) == 0 {
		t.Fatalf("expected non-empty fill for unit square at res 7")
	}

	fill2, err := e.Fill(unitSquare, 7)
	if err != nil {
		t.Fatalf("Fill second call: %v", err)
	}
	if !reflect.DeepEqual(fill, fill2) {
		t.Fatalf("expected identical fill for identical inputs")
	}
}

func TestBoundary_StrictSubsetOfLargeFill(t *testing.T) {
	e := newEngine(t)

	fill, err := e.Fill(unitSquare, 7)
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if len(fill) <= 6 {
		t.Fatalf("fixture too small: |fill|=%d", len(fill))
	}

	boundary, err := e.Boundary(fill)
	if err != nil {
		t.Fatalf("Boundary: %v", err)
	}
	if len(boundary) == 0 {
		t.Fatalf("expected non-empty boundary")
	}
	if len(boundary) >= len(fill) {
		t.Fatalf("boundary must be a strict subset: |boundary|=%d |fill|=%d", len(boundary), len(fill))
	}

	member := make(map[string]struct{}, len(fill))
	for _, c := range fill {
		member[c] = struct{}{}
	}
	for _, c := range boundary {
		if _, ok := member[c]; !ok {
			t.Fatalf("boundary cell %s not in fill", c)
		}
	}
}

func TestBoundary_EmptyFill(t *testing.T) {
	e := newEngine(t)

	boundary, err := e.Boundary(model.Cells{})
	if err != nil {
		t.Fatalf("Boundary: %v", err)
	}
	if len(boundary) != 0 {
		t.Fatalf("boundary of empty fill must be empty, got %d", len(boundary))
	}
}

func TestBoundary_SingleCellIsItsOwnBoundary(t *testing.T) {
	e := newEngine(t)

	fill, err := e.Fill(unitSquare, 7)
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}

	single := model.Cells{fill[0]}
	boundary, err := e.Boundary(single)
	if err != nil {
		t.Fatalf("Boundary: %v", err)
	}
	if !reflect.DeepEqual(boundary, single) {
		t.Fatalf("single-cell fill must be all boundary, got %v", boundary)
	}
}

func TestBoundary_InteriorOnlyDegenerateIsEmpty(t *testing.T) {
	// synthetic grid where every neighbor of every member is a member
	fake := fakeIndex{disks: map[string]model.Cells{
		"a": {"a", "b", "c"},
		"b": {"a", "b", "c"},
		"c": {"a", "b", "c"},
	}}
	e := New(fake)

	boundary, err := e.Boundary(model.Cells{"a", "b", "c"})
	if err != nil {
		t.Fatalf("Boundary: %v", err)
	}
	if len(boundary) != 0 {
		t.Fatalf("interior-only fill must have empty boundary, got %v", boundary)
	}
}

func TestBoundary_SelfExclusionDoesNotMarkInterior(t *testing.T) {
	// "x" sits in the interior; its disk includes itself, which must not
	// count as an outside neighbor
	fake := fakeIndex{disks: map[string]model.Cells{
		"x": {"x", "y"},
		"y": {"x", "z"},
	}}
	e := New(fake)

	boundary, err := e.Boundary(model.Cells{"x", "y"})
	if err != nil {
		t.Fatalf("Boundary: %v", err)
	}
	if !reflect.DeepEqual(boundary, model.Cells{"y"}) {
		t.Fatalf("want boundary [y], got %v", boundary)
	}
}

func TestLayers_CoverageIsBoundaryOfPolyfill(t *testing.T) {
	e := newEngine(t)

	ls, err := e.Layers(unitSquare, 6)
	if err != nil {
		t.Fatalf("Layers: %v", err)
	}
	boundary, err := e.Boundary(ls.PolyfillCells)
	if err != nil {
		t.Fatalf("Boundary: %v", err)
	}
	if !reflect.DeepEqual(ls.CoverageCells, boundary) {
		t.Fatalf("coverage must equal boundary of polyfill")
	}
	if !reflect.DeepEqual(ls.OriginalRing, unitSquare) {
		t.Fatalf("layer set must carry the original ring")
	}
}

type fakeIndex struct {
	disks map[string]model.Cells
}

func (f fakeIndex) Name() string { return "fake" }

func (f fakeIndex) FillPolygon(model.Ring, int) (model.Cells, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f fakeIndex) Neighbors(cell string, _ int) (model.Cells, error) {
	d, ok := f.disks[cell]
	if !ok {
		return nil, fmt.Errorf("unknown cell %q", cell)
	}
	return d, nil
}
