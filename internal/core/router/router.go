package router

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hexpanel/hexpanel/internal/core/model"
	"github.com/hexpanel/hexpanel/internal/core/observability"
	"github.com/hexpanel/hexpanel/internal/geom"
	"github.com/hexpanel/hexpanel/internal/grid"
	"github.com/hexpanel/hexpanel/internal/render"
	"github.com/hexpanel/hexpanel/internal/source"
)

// LayersHandler serves one validated render pass.
type LayersHandler interface {
	Layers(ctx context.Context, req model.LayersRequest) (render.Payload, error)
}

// HandleLayers validates query params and serves the layer payload.
func HandleLayers(logger *slog.Logger, h LayersHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}

		req, err := ParseLayersRequest(r)
		if err != nil {
			http.Error(sw, err.Error(), http.StatusBadRequest)
			observability.ObserveHTTP(r.Method, "/layers", sw.code, time.Since(start).Seconds())
			return
		}

		payload, err := h.Layers(r.Context(), req)
		if err != nil {
			logger.Error("layers derivation failed",
				"scale", string(req.Scale), "res", req.Resolution, "err", err)
			http.Error(sw, err.Error(), statusFor(err))
			observability.ObserveHTTP(r.Method, "/layers", sw.code, time.Since(start).Seconds())
			return
		}

		sw.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(sw).Encode(payload); err != nil {
			logger.Warn("encode payload", "err", err)
		}
		observability.ObserveHTTP(r.Method, "/layers", sw.code, time.Since(start).Seconds())
	}
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

// ParseLayersRequest validates scale, resolution and the shape toggle.
// Resolution defaults to the scale's preset and is clamped into the preset's
// sub-range, the way the UI slider constrains its value.
func ParseLayersRequest(r *http.Request) (model.LayersRequest, error) {
	q := r.URL.Query()

	rawScale := strings.TrimSpace(q.Get("scale"))
	if rawScale == "" {
		rawScale = string(model.ScaleLocal)
	}
	scale, err := model.ParseScale(rawScale)
	if err != nil {
		return model.LayersRequest{}, err
	}

	preset, ok := render.PresetFor(scale)
	if !ok {
		return model.LayersRequest{}, fmt.Errorf("no view preset for scale %q", scale)
	}

	res := preset.DefaultRes
	if rawRes := strings.TrimSpace(q.Get("res")); rawRes != "" {
		n, err := strconv.Atoi(rawRes)
		if err != nil {
			return model.LayersRequest{}, fmt.Errorf("invalid res %q: %w", rawRes, err)
		}
		if err := grid.ValidateResolution(n); err != nil {
			return model.LayersRequest{}, err
		}
		res = preset.ClampRes(n)
	}

	showShape := true
	if rawShow := strings.TrimSpace(q.Get("show_shape")); rawShow != "" {
		switch strings.ToLower(rawShow) {
		case "yes", "true", "1":
			showShape = true
		case "no", "false", "0":
			showShape = false
		default:
			return model.LayersRequest{}, fmt.Errorf("invalid show_shape %q (yes/no)", rawShow)
		}
	}

	return model.LayersRequest{Scale: scale, Resolution: res, ShowShape: showShape}, nil
}

func statusFor(err error) int {
	var noGeom *source.NoGeometryForScaleError
	if errors.As(err, &noGeom) {
		return http.StatusNotFound
	}
	var badType *geom.UnsupportedGeometryTypeError
	if errors.As(err, &badType) {
		return http.StatusUnprocessableEntity
	}
	if errors.Is(err, grid.ErrInvalidResolution) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
