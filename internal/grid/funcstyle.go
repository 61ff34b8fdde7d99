package grid

import (
	"errors"
	"fmt"

	h3 "github.com/uber/h3-go/v4"

	"github.com/hexpanel/hexpanel/internal/core/model"
)

// funcIndex is the older positional convention: coordinates travel as raw
// GeoJSON pairs together with an ordering flag, and traversal goes through
// the package-level functions rather than methods on Cell.
type funcIndex struct {
	// geoJSONOrder marks the pair order of incoming coordinates:
	// [lon,lat] when set, [lat,lng] otherwise. Fixed at construction,
	// matching the flag argument of the positional signature.
	geoJSONOrder bool
}

func newFuncIndex() *funcIndex { return &funcIndex{geoJSONOrder: true} }

func (ix *funcIndex) Name() string { return "positional-geojson" }

func (ix *funcIndex) FillPolygon(ring model.Ring, res int) (model.Cells, error) {
	if err := ValidateResolution(res); err != nil {
		return nil, err
	}
	coords := make([][2]float64, 0, len(ring))
	for _, p := range ring {
		coords = append(coords, [2]float64(p))
	}
	// the positional signature keeps the explicit closing vertex; drop it here
	if len(coords) >= 2 && coords[0] == coords[len(coords)-1] {
		coords = coords[:len(coords)-1]
	}
	if len(coords) < 3 {
		return nil, errors.New("exterior ring has < 3 distinct vertices")
	}
	loop := make(h3.GeoLoop, 0, len(coords))
	for _, xy := range coords {
		if ix.geoJSONOrder {
			loop = append(loop, h3.LatLng{Lat: xy[1], Lng: xy[0]})
		} else {
			loop = append(loop, h3.LatLng{Lat: xy[0], Lng: xy[1]})
		}
	}
	cells, err := h3.PolygonToCells(h3.GeoPolygon{GeoLoop: loop}, res)
	if err != nil {
		return nil, fmt.Errorf("h3 polygon to cells: %w", err)
	}
	return cellStrings(cells), nil
}

func (ix *funcIndex) Neighbors(cell string, radius int) (model.Cells, error) {
	c, err := parseCell(cell)
	if err != nil {
		return nil, err
	}
	disk, err := h3.GridDisk(c, radius)
	if err != nil {
		return nil, fmt.Errorf("h3 grid disk: %w", err)
	}
	return cellStrings(disk), nil
}
