package grid

import (
	"errors"
	"fmt"

	h3 "github.com/uber/h3-go/v4"

	"github.com/hexpanel/hexpanel/internal/core/model"
)

// typedIndex is the newer calling convention: polygons are typed values
// (GeoLoop/GeoPolygon in lat/lng order) and traversal is done through
// methods on Cell.
type typedIndex struct{}

func newTypedIndex() *typedIndex { return &typedIndex{} }

func (ix *typedIndex) Name() string { return "typed-polygon" }

func (ix *typedIndex) FillPolygon(ring model.Ring, res int) (model.Cells, error) {
	if err := ValidateResolution(res); err != nil {
		return nil, err
	}
	loop := toLoop(ring)
	if len(loop) < 3 {
		return nil, errors.New("exterior ring has < 3 distinct vertices")
	}
	poly := h3.GeoPolygon{GeoLoop: loop}
	cells, err := h3.PolygonToCells(poly, res)
	if err != nil {
		return nil, fmt.Errorf("h3 polygon to cells: %w", err)
	}
	return cellStrings(cells), nil
}

func (ix *typedIndex) Neighbors(cell string, radius int) (model.Cells, error) {
	c, err := parseCell(cell)
	if err != nil {
		return nil, err
	}
	disk, err := c.GridDisk(radius)
	if err != nil {
		return nil, fmt.Errorf("h3 grid disk: %w", err)
	}
	return cellStrings(disk), nil
}

// toLoop converts a GeoJSON-ordered ring [[lon,lat], ...] to an h3.GeoLoop.
// The duplicated closing vertex is dropped; the typed API wants open loops.
func toLoop(ring model.Ring) h3.GeoLoop {
	loop := make(h3.GeoLoop, 0, len(ring))
	for _, p := range ring {
		loop = append(loop, h3.LatLng{Lat: p.Lat(), Lng: p.Lon()})
	}
	if len(loop) >= 2 {
		first, last := loop[0], loop[len(loop)-1]
		if first.Lat == last.Lat && first.Lng == last.Lng {
			loop = loop[:len(loop)-1]
		}
	}
	return loop
}
