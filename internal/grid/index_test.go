package grid

import (
	"errors"
	"reflect"
	"sort"
	"testing"

	"github.com/hexpanel/hexpanel/internal/core/model"
)

var squareRing = model.Ring{
	{0, 0}, {0, 0.1}, {0.1, 0.1}, {0.1, 0}, {0, 0},
}

func TestDetect_SelectsAConvention(t *testing.T) {
	ix, err := Detect()
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if ix.Name() == "" {
		t.Fatalf("detected index must name its convention")
	}
}

func TestFillPolygon_SortedUniqueAtRequestedResolution(t *testing.T) {
	ix, err := Detect()
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}

	cells, err := ix.FillPolygon(squareRing, 7)
	if err != nil {
		t.Fatalf("FillPolygon: %v", err)
	}
	if len(cells) == 0 {
		t.Fatalf("expected non-empty fill")
	}
	if !sort.StringsAreSorted([]string(cells)) {
		t.Fatalf("cells must be sorted")
	}
	if hasDups(cells) {
		t.Fatalf("cells must be de-duplicated")
	}
	for _, s := range cells {
		c, err := parseCell(s)
		if err != nil {
			t.Fatalf("fill returned unparseable cell %q: %v", s, err)
		}
		if c.Resolution() != 7 {
			t.Fatalf("cell %s resolution=%d want 7", s, c.Resolution())
		}
	}
}

func TestConventions_AgreeOnFill(t *testing.T) {
	typed, err := newTypedIndex().FillPolygon(squareRing, 6)
	if err != nil {
		t.Fatalf("typed fill: %v", err)
	}
	positional, err := newFuncIndex().FillPolygon(squareRing, 6)
	if err != nil {
		t.Fatalf("positional fill: %v", err)
	}
	if !reflect.DeepEqual(typed, positional) {
		t.Fatalf("conventions disagree: typed=%d cells, positional=%d cells", len(typed), len(positional))
	}
}

func TestInvalidResolution_FailsBeforeIndexCall(t *testing.T) {
	ix, err := Detect()
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	for _, res := range []int{-1, 16} {
		_, err := ix.FillPolygon(squareRing, res)
		if !errors.Is(err, ErrInvalidResolution) {
			t.Fatalf("res=%d: expected ErrInvalidResolution, got %v", res, err)
		}
	}
}

func TestNeighbors_ReturnsImmediateDisk(t *testing.T) {
	ix, err := Detect()
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	cells, err := ix.FillPolygon(squareRing, 7)
	if err != nil {
		t.Fatalf("FillPolygon: %v", err)
	}

	disk, err := ix.Neighbors(cells[0], 1)
	if err != nil {
		t.Fatalf("Neighbors: %v", err)
	}
	// 6 neighbors, plus possibly the origin itself
	if len(disk) < 6 {
		t.Fatalf("disk size=%d want >= 6", len(disk))
	}
	if hasDups(disk) {
		t.Fatalf("disk must be de-duplicated")
	}
}

func TestNeighbors_BadCellRejected(t *testing.T) {
	ix, err := Detect()
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if _, err := ix.Neighbors("not-a-cell", 1); err == nil {
		t.Fatalf("expected error for unparseable cell")
	}
}

func TestProbe_RejectsBrokenIndex(t *testing.T) {
	if err := probe(brokenIndex{}); err == nil {
		t.Fatalf("expected probe failure for broken index")
	}
}

type brokenIndex struct{}

func (brokenIndex) Name() string { return "broken" }

func (brokenIndex) FillPolygon(model.Ring, int) (model.Cells, error) {
	return model.Cells{}, nil
}

func (brokenIndex) Neighbors(string, int) (model.Cells, error) {
	return nil, errors.New("unreachable")
}

func hasDups(s model.Cells) bool {
	seen := map[string]struct{}{}
	for _, v := range s {
		if _, ok := seen[v]; ok {
			return true
		}
		seen[v] = struct{}{}
	}
	return false
}
