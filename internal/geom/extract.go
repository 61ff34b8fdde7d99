// Package geom extracts exterior rings from stored GeoJSON geometries.
package geom

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/hexpanel/hexpanel/internal/core/model"
)

// UnsupportedGeometryTypeError reports a GeoJSON type the extractor does not
// handle, carrying the offending type string.
type UnsupportedGeometryTypeError struct {
	Type string
}

func (e *UnsupportedGeometryTypeError) Error() string {
	return fmt.Sprintf("unsupported geometry type %q (must be Polygon or MultiPolygon)", e.Type)
}

var ErrEmptyGeometry = errors.New("geometry has no coordinates")

// ExtractExteriorRing returns the exterior ring of a GeoJSON Polygon, or the
// first polygon's exterior ring of a MultiPolygon. Holes and any additional
// polygons are discarded; that mirrors the stored dataset, which keys exactly
// one display polygon per scale.
func ExtractExteriorRing(raw string) (model.Ring, error) {
	var hdr struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal([]byte(raw), &hdr); err != nil {
		return nil, fmt.Errorf("parse geojson: %w", err)
	}
	switch hdr.Type {
	case "Polygon", "MultiPolygon":
	default:
		return nil, &UnsupportedGeometryTypeError{Type: hdr.Type}
	}

	g, err := geojson.UnmarshalGeometry([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("parse geojson coordinates: %w", err)
	}

	var outer orb.Ring
	switch geo := g.Geometry().(type) {
	case orb.Polygon:
		if len(geo) == 0 {
			return nil, ErrEmptyGeometry
		}
		outer = geo[0]
	case orb.MultiPolygon:
		if len(geo) == 0 || len(geo[0]) == 0 {
			return nil, ErrEmptyGeometry
		}
		outer = geo[0][0]
	default:
		return nil, &UnsupportedGeometryTypeError{Type: g.Type}
	}

	ring := make(model.Ring, 0, len(outer)+1)
	for _, pt := range outer {
		ring = append(ring, model.Point{pt[0], pt[1]})
	}
	// close the ring if the source geometry left it open
	if len(ring) > 0 && !ring.Closed() {
		ring = append(ring, ring[0])
	}
	if err := validateRing(ring); err != nil {
		return nil, err
	}
	return ring, nil
}

func validateRing(r model.Ring) error {
	if len(r) < 4 {
		return fmt.Errorf("exterior ring has %d vertices, need at least 4 (closed)", len(r))
	}
	for i, p := range r {
		if p.Lon() < -180 || p.Lon() > 180 {
			return fmt.Errorf("vertex %d: longitude %v out of [-180,180]", i, p.Lon())
		}
		if p.Lat() < -90 || p.Lat() > 90 {
			return fmt.Errorf("vertex %d: latitude %v out of [-90,90]", i, p.Lat())
		}
	}
	return nil
}
