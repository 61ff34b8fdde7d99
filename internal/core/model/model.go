// Package model defines core domain types shared across the service.
package model

import "fmt"

// Point is a single vertex in GeoJSON coordinate order: [longitude, latitude].
type Point [2]float64

func (p Point) Lon() float64 { return p[0] }
func (p Point) Lat() float64 { return p[1] }

// Ring is the exterior ring of a polygon, closed (first vertex == last vertex).
type Ring []Point

// Closed reports whether the ring's first and last vertices coincide.
func (r Ring) Closed() bool {
	if len(r) < 2 {
		return false
	}
	return r[0] == r[len(r)-1]
}

// Scale selects which stored polygon drives the tessellation.
type Scale string

const (
	ScaleGlobal Scale = "Global"
	ScaleLocal  Scale = "Local"
)

func ParseScale(s string) (Scale, error) {
	switch Scale(s) {
	case ScaleGlobal:
		return ScaleGlobal, nil
	case ScaleLocal:
		return ScaleLocal, nil
	default:
		return "", fmt.Errorf("unknown scale %q (must be %q or %q)", s, ScaleGlobal, ScaleLocal)
	}
}

type Cells []string

// LayerSet is the render handoff: the two derived cell sets plus the ring
// they were derived from, all computed at the same (resolution, scale).
type LayerSet struct {
	CoverageCells Cells `json:"coverage_cells"`
	PolyfillCells Cells `json:"polyfill_cells"`
	OriginalRing  Ring  `json:"original_ring"`
}

// LayersRequest is a validated request for one render pass.
type LayersRequest struct {
	Scale      Scale
	Resolution int
	ShowShape  bool
}
