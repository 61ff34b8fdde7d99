package geom

import (
	"errors"
	"testing"

	"github.com/hexpanel/hexpanel/internal/core/model"
)

func TestPolygon_ExtractsClosedExteriorRing(t *testing.T) {
	raw := `{"type":"Polygon","coordinates":[[[0,0],[0,1],[1,1],[1,0],[0,0]]]}`

	ring, err := ExtractExteriorRing(raw)
	if err != nil {
		t.Fatalf("ExtractExteriorRing: %v", err)
	}
	if len(ring) != 5 {
		t.Fatalf("ring length=%d want 5", len(ring))
	}
	if !ring.Closed() {
		t.Fatalf("ring must be closed (first == last)")
	}
	if ring[1] != (model.Point{0, 1}) {
		t.Fatalf("vertex order not preserved: %v", ring[1])
	}
}

func TestPolygon_OpenRingGetsClosed(t *testing.T) {
	raw := `{"type":"Polygon","coordinates":[[[0,0],[0,1],[1,1],[1,0]]]}`

	ring, err := ExtractExteriorRing(raw)
	if err != nil {
		t.Fatalf("ExtractExteriorRing: %v", err)
	}
	if !ring.Closed() {
		t.Fatalf("ring must be closed after extraction")
	}
}

func TestMultiPolygon_TakesFirstPolygonOnly(t *testing.T) {
	raw := `{"type":"MultiPolygon","coordinates":[
		[[[0,0],[0,1],[1,1],[1,0],[0,0]]],
		[[[50,50],[50,51],[51,51],[51,50],[50,50]]]
	]}`

	ring, err := ExtractExteriorRing(raw)
	if err != nil {
		t.Fatalf("ExtractExteriorRing: %v", err)
	}
	for _, p := range ring {
		if p.Lon() >= 50 || p.Lat() >= 50 {
			t.Fatalf("second polygon's coordinates leaked into result: %v", p)
		}
	}
}

func TestUnsupportedType_CarriesTypeString(t *testing.T) {
	raw := `{"type":"LineString","coordinates":[[0,0],[1,1]]}`

	_, err := ExtractExteriorRing(raw)
	if err == nil {
		t.Fatalf("expected error for LineString")
	}
	var ute *UnsupportedGeometryTypeError
	if !errors.As(err, &ute) {
		t.Fatalf("expected UnsupportedGeometryTypeError, got %T: %v", err, err)
	}
	if ute.Type != "LineString" {
		t.Fatalf("error type=%q want %q", ute.Type, "LineString")
	}
}

func TestInvalidCoordinates_Rejected(t *testing.T) {
	raw := `{"type":"Polygon","coordinates":[[[0,0],[0,91],[1,1],[0,0]]]}`
	if _, err := ExtractExteriorRing(raw); err == nil {
		t.Fatalf("expected error for latitude out of range")
	}

	raw = `{"type":"Polygon","coordinates":[[[181,0],[0,1],[1,1],[181,0]]]}`
	if _, err := ExtractExteriorRing(raw); err == nil {
		t.Fatalf("expected error for longitude out of range")
	}
}

func TestMalformedJSON_Rejected(t *testing.T) {
	if _, err := ExtractExteriorRing(`{"type":`); err == nil {
		t.Fatalf("expected error for malformed json")
	}
	if _, err := ExtractExteriorRing(`{"type":"Polygon","coordinates":[]}`); err == nil {
		t.Fatalf("expected error for polygon without rings")
	}
}
