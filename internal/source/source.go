// Package source resolves a scale selector to a stored polygon geometry.
package source

import (
	"context"
	"fmt"

	"github.com/hexpanel/hexpanel/internal/core/model"
)

// Interface is the single capability the derivation pipeline needs from its
// backing store: exactly one GeoJSON geometry per scale, or
// NoGeometryForScaleError when none exists.
type Interface interface {
	GeometryForScale(ctx context.Context, scale model.Scale) (string, error)
}

type NoGeometryForScaleError struct {
	Scale string
}

func (e *NoGeometryForScaleError) Error() string {
	return fmt.Sprintf("no geometry stored for scale %q", e.Scale)
}
