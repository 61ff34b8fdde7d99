// Package grid wraps the H3 index behind a single interface so the rest of
// the service never branches on which calling convention of the library is
// in use. Two conventions exist in the wild: an older positional style that
// takes GeoJSON-ordered coordinates plus an ordering flag, and a newer style
// built around typed polygon values. Detect probes both once at startup; the
// winner is fixed for the process lifetime.
package grid

import (
	"errors"
	"fmt"
	"sort"

	h3 "github.com/uber/h3-go/v4"

	"github.com/hexpanel/hexpanel/internal/core/model"
)

type Index interface {
	// Name identifies the selected calling convention, for logs.
	Name() string

	// FillPolygon returns the cells covering the ring's polygon at res,
	// sorted and de-duplicated.
	FillPolygon(ring model.Ring, res int) (model.Cells, error)

	// Neighbors returns the grid disk of the given radius around cell.
	// Whether the origin cell itself appears in the result is not uniform
	// across conventions; callers that need neighbors-only must strip it.
	Neighbors(cell string, radius int) (model.Cells, error)
}

var (
	ErrInvalidResolution = errors.New("resolution out of range 0..15")
	ErrUnavailable       = errors.New("no usable H3 calling convention detected")
)

func ValidateResolution(res int) error {
	if res < 0 || res > 15 {
		return fmt.Errorf("%w: got %d", ErrInvalidResolution, res)
	}
	return nil
}

// Detect probes the known conventions in order of preference and returns the
// first one that produces sane output. It must run before any fill work; a
// failure here is fatal for the process rather than a per-request condition.
func Detect() (Index, error) {
	candidates := []Index{newTypedIndex(), newFuncIndex()}
	var errs []error
	for _, c := range candidates {
		if err := probe(c); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c.Name(), err))
			continue
		}
		return c, nil
	}
	return nil, fmt.Errorf("%w: %w", ErrUnavailable, errors.Join(errs...))
}

// A small closed square near the equator, big enough to contain cell
// centroids at the probe resolution.
var probeRing = model.Ring{
	{0, 0}, {0, 0.1}, {0.1, 0.1}, {0.1, 0}, {0, 0},
}

const probeRes = 7

func probe(ix Index) error {
	cells, err := ix.FillPolygon(probeRing, probeRes)
	if err != nil {
		return fmt.Errorf("probe fill: %w", err)
	}
	if len(cells) == 0 {
		return errors.New("probe fill returned no cells")
	}
	c, err := parseCell(cells[0])
	if err != nil {
		return fmt.Errorf("probe fill returned unparseable cell: %w", err)
	}
	if c.Resolution() != probeRes {
		return fmt.Errorf("probe fill returned cell at resolution %d, want %d", c.Resolution(), probeRes)
	}
	disk, err := ix.Neighbors(cells[0], 1)
	if err != nil {
		return fmt.Errorf("probe neighbors: %w", err)
	}
	if len(disk) == 0 {
		return errors.New("probe neighbors returned no cells")
	}
	return nil
}

// --- helpers shared by both conventions ---

func parseCell(s string) (h3.Cell, error) {
	var c h3.Cell
	if err := c.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("parse cell: %w", err)
	}
	if !c.IsValid() {
		return 0, fmt.Errorf("invalid h3 cell %q", s)
	}
	return c, nil
}

// cellStrings de-duplicates and sorts for determinism.
func cellStrings(cells []h3.Cell) model.Cells {
	out := make([]string, 0, len(cells))
	seen := make(map[string]struct{}, len(cells))
	for _, c := range cells {
		s := c.String()
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
