// Package tessellate derives the coverage and polyfill cell sets for a
// polygon's exterior ring at a given H3 resolution.
package tessellate

import (
	"fmt"
	"sort"

	"github.com/hexpanel/hexpanel/internal/core/model"
	"github.com/hexpanel/hexpanel/internal/grid"
)

type Engine struct {
	idx grid.Index
}

func New(idx grid.Index) *Engine { return &Engine{idx: idx} }

// Fill returns the polyfill set: every cell the index's canonical
// polygon-to-cells algorithm assigns to the ring at res. Sorted, unique.
func (e *Engine) Fill(ring model.Ring, res int) (model.Cells, error) {
	cells, err := e.idx.FillPolygon(ring, res)
	if err != nil {
		return nil, fmt.Errorf("fill polygon: %w", err)
	}
	return cells, nil
}

// Boundary returns the cells of fill with at least one radius-1 neighbor
// outside fill. The origin cell is always stripped from each neighbor disk
// before the membership test; the index does not guarantee whether it is
// included. Pure in fill; cost is O(|fill|) disk lookups.
func (e *Engine) Boundary(fill model.Cells) (model.Cells, error) {
	if len(fill) == 0 {
		return model.Cells{}, nil
	}
	member := make(map[string]struct{}, len(fill))
	for _, c := range fill {
		member[c] = struct{}{}
	}

	boundary := make([]string, 0, len(fill))
	for _, c := range fill {
		disk, err := e.idx.Neighbors(c, 1)
		if err != nil {
			return nil, fmt.Errorf("neighbors of %s: %w", c, err)
		}
		for _, n := range disk {
			if n == c {
				continue
			}
			if _, ok := member[n]; !ok {
				boundary = append(boundary, c)
				break
			}
		}
	}
	sort.Strings(boundary)
	return boundary, nil
}

// Layers computes both cell sets for one render pass. Coverage is defined as
// the boundary of the polyfill set of the selected polygon (the
// self-contained semantic; see DESIGN.md). Both sets are derived from the
// same fill computation, so they always agree on (resolution, scale).
func (e *Engine) Layers(ring model.Ring, res int) (model.LayerSet, error) {
	fill, err := e.Fill(ring, res)
	if err != nil {
		return model.LayerSet{}, err
	}
	boundary, err := e.Boundary(fill)
	if err != nil {
		return model.LayerSet{}, err
	}
	return model.LayerSet{
		CoverageCells: boundary,
		PolyfillCells: fill,
		OriginalRing:  ring,
	}, nil
}
