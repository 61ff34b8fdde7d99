// Package panel orchestrates one render pass: resolve the scale's geometry,
// extract its exterior ring, derive the polyfill and coverage cell sets
// (memoized), and assemble the render payload.
package panel

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hexpanel/hexpanel/internal/cache/keys"
	"github.com/hexpanel/hexpanel/internal/cache/memo"
	"github.com/hexpanel/hexpanel/internal/core/model"
	"github.com/hexpanel/hexpanel/internal/core/observability"
	"github.com/hexpanel/hexpanel/internal/geom"
	"github.com/hexpanel/hexpanel/internal/grid"
	"github.com/hexpanel/hexpanel/internal/render"
	"github.com/hexpanel/hexpanel/internal/source"
	"github.com/hexpanel/hexpanel/internal/tessellate"
)

const (
	opPolyfill = "polyfill"
	opCoverage = "coverage"
)

type Engine struct {
	logger *slog.Logger
	src    source.Interface
	tess   *tessellate.Engine
	memo   memo.Backend
}

func New(logger *slog.Logger, src source.Interface, idx grid.Index, store memo.Backend) *Engine {
	return &Engine{
		logger: logger,
		src:    src,
		tess:   tessellate.New(idx),
		memo:   store,
	}
}

// Layers runs one full derivation pass. Any failure aborts the pass; no
// partial payload is ever returned.
func (e *Engine) Layers(ctx context.Context, req model.LayersRequest) (render.Payload, error) {
	start := time.Now()

	preset, ok := render.PresetFor(req.Scale)
	if !ok {
		return render.Payload{}, fmt.Errorf("no view preset for scale %q", req.Scale)
	}
	if err := grid.ValidateResolution(req.Resolution); err != nil {
		return render.Payload{}, err
	}

	geomJSON, err := e.src.GeometryForScale(ctx, req.Scale)
	if err != nil {
		return render.Payload{}, err
	}
	ring, err := geom.ExtractExteriorRing(geomJSON)
	if err != nil {
		return render.Payload{}, err
	}

	fill, boundary, hit, err := e.derive(ctx, req, geomJSON, ring)
	if err != nil {
		return render.Payload{}, err
	}

	ls := model.LayerSet{
		CoverageCells: boundary,
		PolyfillCells: fill,
		OriginalRing:  ring,
	}
	payload := render.Build(req.Scale, req.Resolution, preset.View, ls, req.ShowShape)

	e.logger.Info("layers derived",
		"scale", string(req.Scale), "res", req.Resolution,
		"polyfill_cells", len(fill), "coverage_cells", len(boundary),
		"cache_hit", hit,
		"dur", time.Since(start).String())
	return payload, nil
}

// derive returns the polyfill and coverage sets, consulting the memo first.
// Both sets are keyed by (op, res, scale, geometry hash) so a cached
// coverage set can never be paired with a fill computed at different
// parameters. Outcomes are counted per key: a pass that reuses the fill but
// rebuilds the boundary records one hit and one miss.
func (e *Engine) derive(ctx context.Context, req model.LayersRequest, geomJSON string, ring model.Ring) (fill, boundary model.Cells, hit bool, err error) {
	fillKey := keys.Key(opPolyfill, req.Resolution, string(req.Scale), geomJSON)
	covKey := keys.Key(opCoverage, req.Resolution, string(req.Scale), geomJSON)

	fill, fillOK := e.lookup(ctx, fillKey)
	boundary, covOK := e.lookup(ctx, covKey)
	// a cached boundary is only usable alongside the fill it was derived from
	covOK = covOK && fillOK
	countOutcome(fillOK)
	countOutcome(covOK)
	if fillOK && covOK {
		return fill, boundary, true, nil
	}

	if !fillOK {
		t := time.Now()
		fill, err = e.tess.Fill(ring, req.Resolution)
		observability.ObserveTessellation(opPolyfill, string(req.Scale), time.Since(t).Seconds())
		if err != nil {
			return nil, nil, false, err
		}
		e.store(ctx, fillKey, fill)
	}

	t := time.Now()
	boundary, err = e.tess.Boundary(fill)
	observability.ObserveTessellation(opCoverage, string(req.Scale), time.Since(t).Seconds())
	if err != nil {
		return nil, nil, false, err
	}
	e.store(ctx, covKey, boundary)

	return fill, boundary, false, nil
}

func countOutcome(hit bool) {
	if hit {
		observability.IncCacheHit()
	} else {
		observability.IncCacheMiss()
	}
}

// lookup decodes a memoized cell set; memo failures degrade to a recompute.
func (e *Engine) lookup(ctx context.Context, key string) (model.Cells, bool) {
	raw, ok, err := e.memo.Get(ctx, key)
	if err != nil {
		e.logger.Warn("memo get failed, recomputing", "key", key, "err", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var cells model.Cells
	if err := json.Unmarshal(raw, &cells); err != nil {
		e.logger.Warn("memo entry corrupt, recomputing", "key", key, "err", err)
		return nil, false
	}
	return cells, true
}

func (e *Engine) store(ctx context.Context, key string, cells model.Cells) {
	raw, err := json.Marshal(cells)
	if err != nil {
		e.logger.Warn("memo encode failed", "key", key, "err", err)
		return
	}
	if err := e.memo.Set(ctx, key, raw); err != nil {
		e.logger.Warn("memo set failed", "key", key, "err", err)
	}
}
