// Package render assembles the payload the map front end consumes: two
// independently visible layer stacks (coverage and polyfill panels), each
// optionally including the original polygon outline.
package render

import (
	"github.com/hexpanel/hexpanel/internal/core/model"
)

// line colors, carried over from the reference panels
var (
	shapeLineColor    = [3]int{217, 102, 255}
	coverageLineColor = [3]int{18, 100, 129}
	polyfillLineColor = [3]int{36, 191, 242}
)

// ViewState is the initial camera for both panels.
type ViewState struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zoom      int     `json:"zoom"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
}

// Preset holds the per-scale UI defaults: the allowed resolution sub-range
// and the camera.
type Preset struct {
	MinRes     int
	MaxRes     int
	DefaultRes int
	View       ViewState
}

var presets = map[model.Scale]Preset{
	model.ScaleGlobal: {
		MinRes: 2, MaxRes: 5, DefaultRes: 4,
		View: ViewState{
			Latitude:  38.51405689475766,
			Longitude: -94.50284957885742,
			Zoom:      2, Width: 350, Height: 250,
		},
	},
	model.ScaleLocal: {
		MinRes: 7, MaxRes: 10, DefaultRes: 9,
		View: ViewState{
			Latitude:  40.74258515841464,
			Longitude: -73.98452997207642,
			Zoom:      9, Width: 350, Height: 250,
		},
	},
}

func PresetFor(scale model.Scale) (Preset, bool) {
	p, ok := presets[scale]
	return p, ok
}

// ClampRes forces res into the preset's sub-range, the way the UI slider
// constrains its value per scale.
func (p Preset) ClampRes(res int) int {
	if res < p.MinRes {
		return p.MinRes
	}
	if res > p.MaxRes {
		return p.MaxRes
	}
	return res
}

// Layer is a deck.gl-style layer descriptor. Data carries either cells (hex
// layers, accessor "H3") or a single ring (polygon layer, accessor
// "coordinates").
type Layer struct {
	Type               string      `json:"type"`
	ID                 string      `json:"id"`
	Data               interface{} `json:"data"`
	GetHexagon         string      `json:"get_hexagon,omitempty"`
	GetPolygon         string      `json:"get_polygon,omitempty"`
	GetLineColor       [3]int      `json:"get_line_color"`
	Stroked            bool        `json:"stroked"`
	Filled             bool        `json:"filled"`
	Extruded           bool        `json:"extruded"`
	Wireframe          bool        `json:"wireframe,omitempty"`
	Opacity            float64     `json:"opacity,omitempty"`
	LineWidthMinPixels int         `json:"line_width_min_pixels"`
	Pickable           bool        `json:"pickable,omitempty"`
}

// Panel is one of the two side-by-side map views.
type Panel struct {
	Caption string  `json:"caption"`
	Layers  []Layer `json:"layers"`
}

// Payload is the full render handoff for one pass.
type Payload struct {
	Scale      model.Scale       `json:"scale"`
	Resolution int               `json:"resolution"`
	ShowShape  bool              `json:"show_shape"`
	View       ViewState         `json:"view"`
	LayerSet   model.LayerSet    `json:"layer_set"`
	Coverage   Panel             `json:"coverage"`
	Polyfill   Panel             `json:"polyfill"`
	Tooltip    map[string]string `json:"tooltip"`
}

func hexLayer(id string, cells model.Cells, color [3]int) Layer {
	return Layer{
		Type:               "H3HexagonLayer",
		ID:                 id,
		Data:               cells,
		GetHexagon:         "H3",
		GetLineColor:       color,
		Stroked:            true,
		Filled:             false,
		Extruded:           false,
		LineWidthMinPixels: 1,
		Pickable:           true,
	}
}

func shapeLayer(ring model.Ring) Layer {
	return Layer{
		Type:               "PolygonLayer",
		ID:                 "original-shape",
		Data:               []model.Ring{ring},
		GetPolygon:         "coordinates",
		GetLineColor:       shapeLineColor,
		Stroked:            true,
		Filled:             false,
		Extruded:           false,
		Wireframe:          true,
		Opacity:            0.9,
		LineWidthMinPixels: 1,
	}
}

// Build assembles the payload. showShape only toggles the outline layer's
// presence in each panel's visible stack; the derived sets are untouched.
func Build(scale model.Scale, res int, view ViewState, ls model.LayerSet, showShape bool) Payload {
	coverage := []Layer{hexLayer("coverage-cells", ls.CoverageCells, coverageLineColor)}
	polyfill := []Layer{hexLayer("polyfill-cells", ls.PolyfillCells, polyfillLineColor)}
	if showShape {
		shape := shapeLayer(ls.OriginalRing)
		coverage = append(coverage, shape)
		polyfill = append(polyfill, shape)
	}
	return Payload{
		Scale:      scale,
		Resolution: res,
		ShowShape:  showShape,
		View:       view,
		LayerSet:   ls,
		Coverage:   Panel{Caption: "H3_COVERAGE (boundary)", Layers: coverage},
		Polyfill:   Panel{Caption: "H3_POLYGON_TO_CELLS (polyfill)", Layers: polyfill},
		Tooltip:    map[string]string{"html": "<b>ID:</b> {H3}"},
	}
}
